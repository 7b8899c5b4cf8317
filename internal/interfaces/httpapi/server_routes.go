package httpapi

import (
	"net/http"

	"github.com/riskibarqy/cricket-fantasy/internal/usecase"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET "+openAPIPath, handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/players", handler.ListMatchPlayers)
	mux.HandleFunc("GET /v1/matches/{matchID}/players/{playerID}", handler.GetMatchPlayer)
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.ListMyTeams)))
	mux.Handle("POST /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("GET /v1/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.GetTeam)))
	mux.Handle("PUT /v1/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.ReplaceTeam)))
	mux.Handle("DELETE /v1/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteTeam)))
	mux.Handle("GET /v1/teams/{teamID}/score", RequireAuth(verifier, http.HandlerFunc(handler.GetTeamScore)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/matches/{matchID}/points", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.IngestMatchPoints)))
	mux.Handle("POST "+usecase.RecomputeScoresJobPath, RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecomputeScoresJob)))
}
