package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestIsClientError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "wrapped not found", err: fmt.Errorf("%w: team=t1", ErrNotFound), want: true},
		{name: "edit window", err: ErrEditWindowClosed, want: true},
		{name: "dependency", err: fmt.Errorf("%w: qstash", ErrDependencyUnavailable), want: false},
		{name: "plain", err: errors.New("pq: connection reset"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isClientError(tt.err); got != tt.want {
				t.Fatalf("isClientError(%v)=%v want=%v", tt.err, got, tt.want)
			}
		})
	}
}

func TestStartSpan_WithoutParentIsNoop(t *testing.T) {
	ctx := context.Background()
	got, span := startSpan(ctx, "TeamService.CreateTeam")
	defer span.End()

	if got != ctx || span.SpanContext().IsValid() {
		t.Fatalf("expected no span without a parent")
	}
	failSpan(span, errors.New("boom"))
}
