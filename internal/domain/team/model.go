package team

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Selection is the roster part of a team that users author and replace.
type Selection struct {
	PlayerIDs     []string
	CaptainID     string
	ViceCaptainID string
}

// Normalize trims ids and sorts PlayerIDs. Duplicates are kept so the
// validator can still report them.
func (s Selection) Normalize() Selection {
	out := Selection{
		PlayerIDs:     make([]string, 0, len(s.PlayerIDs)),
		CaptainID:     strings.TrimSpace(s.CaptainID),
		ViceCaptainID: strings.TrimSpace(s.ViceCaptainID),
	}
	for _, id := range s.PlayerIDs {
		out.PlayerIDs = append(out.PlayerIDs, strings.TrimSpace(id))
	}
	sort.Strings(out.PlayerIDs)
	return out
}

func (s Selection) Contains(playerID string) bool {
	for _, id := range s.PlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// Team is a user's fantasy entry for exactly one match.
type Team struct {
	ID               string
	UserID           string
	MatchID          string
	Name             string
	PlayerIDs        []string
	CaptainID        string
	ViceCaptainID    string
	TotalPoints      int64
	PointsComputedAt *time.Time
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (t Team) Selection() Selection {
	return Selection{
		PlayerIDs:     append([]string(nil), t.PlayerIDs...),
		CaptainID:     t.CaptainID,
		ViceCaptainID: t.ViceCaptainID,
	}
}

// WithSelection replaces only the roster fields.
func (t Team) WithSelection(s Selection) Team {
	out := t.Clone()
	out.PlayerIDs = append([]string(nil), s.PlayerIDs...)
	out.CaptainID = s.CaptainID
	out.ViceCaptainID = s.ViceCaptainID
	return out
}

func (t Team) Clone() Team {
	out := t
	out.PlayerIDs = append([]string(nil), t.PlayerIDs...)
	if t.PointsComputedAt != nil {
		at := *t.PointsComputedAt
		out.PointsComputedAt = &at
	}
	return out
}

func (t Team) ValidateBasic() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.UserID) == "" {
		return fmt.Errorf("team user id is required")
	}
	if strings.TrimSpace(t.MatchID) == "" {
		return fmt.Errorf("team match id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if len(t.PlayerIDs) == 0 {
		return fmt.Errorf("team players are required")
	}

	return nil
}
