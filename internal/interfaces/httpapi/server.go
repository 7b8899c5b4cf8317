package httpapi

import (
	"net/http"

	"github.com/riskibarqy/cricket-fantasy/internal/platform/logging"
)

// RouterConfig carries the transport-level switches of NewRouter.
type RouterConfig struct {
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	InternalJobToken   string
}

// NewRouter mounts every route and wraps the mux, outermost first, in
// tracing, access logging, CORS and panic recovery.
func NewRouter(handler *Handler, verifier TokenVerifier, logger *logging.Logger, cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.SwaggerEnabled)
	registerCatalogRoutes(mux, handler)
	registerTeamRoutes(mux, handler, verifier)
	registerInternalJobRoutes(mux, handler, cfg.InternalJobToken)

	var h http.Handler = mux
	h = recoverPanic(logger, h)
	h = CORS(cfg.CORSAllowedOrigins, h)
	h = RequestLogging(logger, h)
	return RequestTracing(h)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
			writeInternalError(w)
		}()
		next.ServeHTTP(w, r)
	})
}
