package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/team"
	"github.com/riskibarqy/cricket-fantasy/internal/usecase"
)

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestMapError_Taxonomy(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
		wantCode   string
	}{
		{
			name:       "roster size violation",
			err:        fmt.Errorf("%w: %w", usecase.ErrInvalidTeam, &team.Violation{Kind: team.KindRosterSizeInvalid, Expected: 11, Distinct: 10, Given: 10}),
			wantStatus: http.StatusUnprocessableEntity,
			wantReason: "rosterSizeInvalid",
			wantCode:   "INVALID_ARGUMENT",
		},
		{
			name:       "credit cap violation",
			err:        fmt.Errorf("%w: %w", usecase.ErrInvalidTeam, &team.Violation{Kind: team.KindCreditCapExceeded}),
			wantStatus: http.StatusUnprocessableEntity,
			wantReason: "creditCapExceeded",
			wantCode:   "INVALID_ARGUMENT",
		},
		{
			name:       "edit window closed",
			err:        fmt.Errorf("%w: match started", usecase.ErrEditWindowClosed),
			wantStatus: http.StatusConflict,
			wantReason: "editWindowClosed",
			wantCode:   "FAILED_PRECONDITION",
		},
		{
			name:       "version conflict",
			err:        fmt.Errorf("%w: modified concurrently", usecase.ErrConflict),
			wantStatus: http.StatusConflict,
			wantReason: "conflict",
			wantCode:   "ABORTED",
		},
		{
			name:       "score unavailable",
			err:        usecase.ErrScoreUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantReason: "scoreUnavailable",
			wantCode:   "UNAVAILABLE",
		},
		{
			name:       "forbidden",
			err:        usecase.ErrForbidden,
			wantStatus: http.StatusForbidden,
			wantReason: "forbidden",
			wantCode:   "PERMISSION_DENIED",
		},
		{
			name:       "unknown",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantReason: "internalError",
			wantCode:   "INTERNAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err)
			if got.HTTPStatus != tt.wantStatus || got.Reason != tt.wantReason || got.Status != tt.wantCode {
				t.Fatalf("mapError(%v)=%+v want status=%d reason=%s code=%s", tt.err, got, tt.wantStatus, tt.wantReason, tt.wantCode)
			}
		})
	}
}

func TestWriteError_InternalHidesMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, errors.New("pq: connection refused to 10.0.0.3"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "10.0.0.3") {
		t.Fatalf("internal error detail leaked: %s", rec.Body.String())
	}
}
