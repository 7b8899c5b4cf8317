package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrConflict              = errors.New("conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrInvalidTeam wraps a *team.Violation; errors.As still reaches the violation.
	ErrInvalidTeam      = errors.New("invalid team")
	ErrEditWindowClosed = errors.New("editing window closed")
	// ErrScoreUnavailable means some selected player has no points yet. It is never a zero score.
	ErrScoreUnavailable = errors.New("score not yet available")
)

var clientErrors = []error{
	ErrInvalidInput, ErrNotFound, ErrUnauthorized, ErrForbidden, ErrConflict,
	ErrInvalidTeam, ErrEditWindowClosed, ErrScoreUnavailable,
}

// isClientError reports errors caused by the request rather than the service.
func isClientError(err error) bool {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
