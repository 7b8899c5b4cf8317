package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/team"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/logging"
	"github.com/riskibarqy/cricket-fantasy/internal/usecase"
)

// Responses follow the Google JSON style guide: {"apiVersion", "data"} on
// success and {"apiVersion", "error"} on failure.
const (
	apiVersion  = "2.0"
	errorDomain = "cricket-fantasy"

	internalErrorMessage = "internal server error"
)

type responseEnvelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Status  string        `json:"status"`
	Errors  []errorDetail `json:"errors,omitempty"`
}

type errorDetail struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var internalError = mappedError{http.StatusInternalServerError, "internalError", "INTERNAL"}

// errorRules is checked in order; the first sentinel matched with errors.Is wins.
var errorRules = []struct {
	target error
	mapped mappedError
}{
	{usecase.ErrInvalidInput, mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{usecase.ErrInvalidTeam, mappedError{http.StatusUnprocessableEntity, "invalidTeam", "INVALID_ARGUMENT"}},
	{usecase.ErrEditWindowClosed, mappedError{http.StatusConflict, "editWindowClosed", "FAILED_PRECONDITION"}},
	{usecase.ErrConflict, mappedError{http.StatusConflict, "conflict", "ABORTED"}},
	{usecase.ErrScoreUnavailable, mappedError{http.StatusServiceUnavailable, "scoreUnavailable", "UNAVAILABLE"}},
	{usecase.ErrNotFound, mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{usecase.ErrForbidden, mappedError{http.StatusForbidden, "forbidden", "PERMISSION_DENIED"}},
	{usecase.ErrUnauthorized, mappedError{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"}},
	{usecase.ErrDependencyUnavailable, mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
}

// mapError turns a usecase error into its HTTP form. Composition violations
// report their kind as the reason so clients can branch on it.
func mapError(err error) mappedError {
	if v, ok := team.AsViolation(err); ok {
		return mappedError{http.StatusUnprocessableEntity, string(v.Kind), "INVALID_ARGUMENT"}
	}
	for _, rule := range errorRules {
		if errors.Is(err, rule.target) {
			return rule.mapped
		}
	}
	return internalError
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, responseEnvelope{APIVersion: apiVersion, Data: data})
}

// writeError never exposes the message of an unmapped error; it is logged instead.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	msg := err.Error()
	if mapped == internalError {
		logging.Default().ErrorContext(ctx, "unhandled request error", "error", err)
		msg = internalErrorMessage
	}
	writeErrorBody(w, mapped, msg)
}

func writeInternalError(w http.ResponseWriter) {
	writeErrorBody(w, internalError, internalErrorMessage)
}

func writeErrorBody(w http.ResponseWriter, mapped mappedError, msg string) {
	writeJSON(w, mapped.HTTPStatus, responseEnvelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    mapped.HTTPStatus,
			Message: msg,
			Status:  mapped.Status,
			Errors:  []errorDetail{{Domain: errorDomain, Reason: mapped.Reason, Message: msg}},
		},
	})
}
