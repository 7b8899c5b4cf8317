package match

import (
	"fmt"
	"time"
)

// VisibilityHorizon is how far ahead of start a match is shown to users.
const VisibilityHorizon = 48 * time.Hour

// Policy decides whether teams for a match may still be created, replaced or deleted.
// MinLead is the lockout before start; zero means editing closes exactly at start.
type Policy struct {
	MinLead time.Duration
}

func NewPolicy(minLead time.Duration) Policy {
	if minLead < 0 {
		minLead = 0
	}
	return Policy{MinLead: minLead}
}

// CanEdit must be evaluated against a fresh read of the match on every mutating request.
func (p Policy) CanEdit(m Match, now time.Time) bool {
	switch m.Status {
	case StatusLive, StatusCompleted:
		return false
	}

	return m.StartTime.Sub(now) > p.MinLead
}

// VisibilityWindow is a display gate only: 0 < start-now <= 48h.
func VisibilityWindow(m Match, now time.Time) bool {
	lead := m.StartTime.Sub(now)
	return lead > 0 && lead <= VisibilityHorizon
}

type RemainingState string

const (
	RemainingDelayed   RemainingState = "delayed"
	RemainingStarted   RemainingState = "started"
	RemainingCountdown RemainingState = "countdown"
)

// Remaining is a floored countdown. Days is set only when the lead is at
// least 24h; Minutes only when it is under 24h.
type Remaining struct {
	State   RemainingState
	Days    int
	Hours   int
	Minutes int
}

func (r Remaining) String() string {
	switch r.State {
	case RemainingDelayed:
		return "Delayed"
	case RemainingStarted:
		return "Started"
	}
	if r.Days > 0 {
		return fmt.Sprintf("%dd %dh", r.Days, r.Hours)
	}
	return fmt.Sprintf("%dh %dm", r.Hours, r.Minutes)
}

// TimeRemaining reports Delayed before any time math, then Started once start <= now.
func TimeRemaining(m Match, now time.Time) Remaining {
	if m.Status == StatusDelayed {
		return Remaining{State: RemainingDelayed}
	}

	lead := m.StartTime.Sub(now)
	if lead <= 0 {
		return Remaining{State: RemainingStarted}
	}

	if lead >= 24*time.Hour {
		days := int(lead / (24 * time.Hour))
		hours := int((lead % (24 * time.Hour)) / time.Hour)
		return Remaining{State: RemainingCountdown, Days: days, Hours: hours}
	}

	hours := int(lead / time.Hour)
	minutes := int((lead % time.Hour) / time.Minute)
	return Remaining{State: RemainingCountdown, Hours: hours, Minutes: minutes}
}
