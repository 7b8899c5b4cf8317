package match

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a match.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
	StatusDelayed   Status = "delayed"
)

// NormalizeStatus lowercases v and maps provider spellings onto the four known states.
func NormalizeStatus(v string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "upcoming", "scheduled", "not_started":
		return StatusUpcoming, true
	case "live", "in_progress", "innings_break", "stumps":
		return StatusLive, true
	case "completed", "finished", "result", "abandoned":
		return StatusCompleted, true
	case "delayed", "rain_delay", "toss_delayed":
		return StatusDelayed, true
	default:
		return "", false
	}
}

func (s Status) Known() bool {
	switch s {
	case StatusUpcoming, StatusLive, StatusCompleted, StatusDelayed:
		return true
	default:
		return false
	}
}

// Side is one of the two competing real-world teams.
type Side struct {
	Name  string
	Short string
	Color string
}

// Match owns a roster catalog; players reference it by MatchID.
type Match struct {
	ID          string
	Home        Side
	Away        Side
	Venue       string
	StartTime   time.Time
	Status      Status
	StatusNote  string
	PrizePool   string
	EntryFee    int64
	SpotsTotal  int
	SpotsFilled int
	Format      string
}

func (m Match) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("match id is required")
	}
	if strings.TrimSpace(m.Home.Name) == "" || strings.TrimSpace(m.Away.Name) == "" {
		return fmt.Errorf("match sides are required")
	}
	if m.StartTime.IsZero() {
		return fmt.Errorf("match start time is required")
	}
	if !m.Status.Known() {
		return fmt.Errorf("invalid match status: %q", m.Status)
	}
	if m.EntryFee < 0 {
		return fmt.Errorf("entry fee cannot be negative")
	}
	if m.SpotsTotal < 0 || m.SpotsFilled < 0 {
		return fmt.Errorf("contest spots cannot be negative")
	}
	if m.SpotsFilled > m.SpotsTotal {
		return fmt.Errorf("spots filled %d exceeds spots total %d", m.SpotsFilled, m.SpotsTotal)
	}

	return nil
}

// SpotsLeft is never negative for a valid match.
func (m Match) SpotsLeft() int {
	left := m.SpotsTotal - m.SpotsFilled
	if left < 0 {
		return 0
	}
	return left
}
