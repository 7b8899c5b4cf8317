package player

import (
	"fmt"
	"strings"
	"time"
)

// Role is a cricket playing role used by contest constraints.
type Role string

const (
	RoleWicketKeeper Role = "WK"
	RoleBatter       Role = "BAT"
	RoleAllRounder   Role = "AR"
	RoleBowler       Role = "BOWL"
)

// Roles lists the known roles in canonical display and validation order.
var Roles = []Role{RoleWicketKeeper, RoleBatter, RoleAllRounder, RoleBowler}

// ParseRole accepts short codes and the common long spellings.
func ParseRole(v string) (Role, bool) {
	normalized := strings.ToLower(strings.TrimSpace(v))
	normalized = strings.NewReplacer("-", "", "_", "", " ", "").Replace(normalized)

	switch normalized {
	case "wk", "wicketkeeper", "keeper":
		return RoleWicketKeeper, true
	case "bat", "batter", "batsman":
		return RoleBatter, true
	case "ar", "allrounder":
		return RoleAllRounder, true
	case "bowl", "bowler":
		return RoleBowler, true
	default:
		return "", false
	}
}

func IsKnownRole(r Role) bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Player is one eligible pick in a match's roster catalog.
type Player struct {
	ID             string
	MatchID        string
	Name           string
	TeamName       string
	TeamShort      string
	Role           Role
	Credits        Credits
	Points         int64
	RecentForm     []int64
	IsImpactPlayer bool
	IsInStartingXI bool

	// PointsUpdatedAt is nil until live scoring has reported this player.
	PointsUpdatedAt *time.Time
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.MatchID) == "" {
		return fmt.Errorf("player match id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if !IsKnownRole(p.Role) {
		return fmt.Errorf("invalid player role: %q", p.Role)
	}
	if p.Credits <= 0 {
		return fmt.Errorf("player credits must be greater than zero")
	}

	return nil
}

// HasPoints reports whether live scoring has produced a value for the player.
func (p Player) HasPoints() bool {
	return p.PointsUpdatedAt != nil
}

// Clone returns a copy that shares no pointers with p.
func (p Player) Clone() Player {
	copied := p
	copied.RecentForm = append([]int64(nil), p.RecentForm...)
	if p.PointsUpdatedAt != nil {
		at := *p.PointsUpdatedAt
		copied.PointsUpdatedAt = &at
	}
	return copied
}
