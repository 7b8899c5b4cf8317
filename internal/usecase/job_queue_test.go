package usecase

import (
	"strings"
	"testing"
)

func TestDedupKey(t *testing.T) {
	a := dedupKey("recompute-scores", "ipl/2026 m01", []byte(`{"p1":10}`))
	b := dedupKey("recompute-scores", "ipl/2026 m01", []byte(`{"p1":10}`))
	c := dedupKey("recompute-scores", "ipl/2026 m01", []byte(`{"p1":12}`))

	if a != b {
		t.Fatalf("same content must give the same key: %s vs %s", a, b)
	}
	if a == c {
		t.Fatalf("different content must give a different key")
	}
	if !strings.HasPrefix(a, "recompute-scores-ipl-2026-m01-") {
		t.Fatalf("unsafe characters must be replaced, got %s", a)
	}
	if got := dedupSegment("  "); got != "unknown" {
		t.Fatalf("empty segment=%q want unknown", got)
	}
}
