package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/user"
	"github.com/riskibarqy/cricket-fantasy/internal/usecase"
)

type principalKey struct{}

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// requirePrincipal writes a 401 and reports false when RequireAuth did not run.
func requirePrincipal(ctx context.Context, w http.ResponseWriter) (user.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(user.Principal)
	if !ok || p.UserID == "" {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return user.Principal{}, false
	}
	return p, true
}
