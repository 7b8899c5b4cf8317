package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// JobQueue publishes internal jobs that are delivered back to this service as
// HTTP callbacks. A nil queue on ScoringService means jobs run inline.
type JobQueue interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

// dedupKey is stable for identical job content, so a redelivered ingestion
// posts the same deduplication id. Only [A-Za-z0-9_-] survive in the segments.
func dedupKey(job, subject string, content []byte) string {
	sum := sha256.Sum256(content)
	return dedupSegment(job) + "-" + dedupSegment(subject) + "-" + hex.EncodeToString(sum[:8])
}

func dedupSegment(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "unknown"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '-'
		}
	}, v)
}
