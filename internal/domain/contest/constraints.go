package contest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/player"
)

const DefaultFormatKey = "t20"

var (
	ErrInvalidConstraints = errors.New("invalid contest constraints")
	ErrUnknownFormat      = errors.New("unknown contest format")
)

// Bounds is an inclusive [Min, Max] selection count for one role.
type Bounds struct {
	Min int
	Max int
}

func (b Bounds) Contains(n int) bool {
	return n >= b.Min && n <= b.Max
}

// Constraints is one versioned contest format. Roles absent from RoleBounds
// cannot be selected at all.
type Constraints struct {
	Key        string
	Version    int
	RosterSize int
	CreditCap  player.Credits
	RoleBounds map[player.Role]Bounds
}

func DefaultConstraints() Constraints {
	return Constraints{
		Key:        DefaultFormatKey,
		Version:    1,
		RosterSize: 11,
		CreditCap:  100 * player.CreditScale,
		RoleBounds: map[player.Role]Bounds{
			player.RoleWicketKeeper: {Min: 1, Max: 4},
			player.RoleBatter:       {Min: 3, Max: 6},
			player.RoleAllRounder:   {Min: 1, Max: 4},
			player.RoleBowler:       {Min: 3, Max: 6},
		},
	}
}

func (c Constraints) Validate() error {
	if strings.TrimSpace(c.Key) == "" {
		return fmt.Errorf("%w: format key is required", ErrInvalidConstraints)
	}
	if c.RosterSize < 1 {
		return fmt.Errorf("%w: format=%s roster size must be >= 1", ErrInvalidConstraints, c.Key)
	}
	if c.CreditCap <= 0 {
		return fmt.Errorf("%w: format=%s credit cap must be > 0", ErrInvalidConstraints, c.Key)
	}
	if len(c.RoleBounds) == 0 {
		return fmt.Errorf("%w: format=%s role bounds are required", ErrInvalidConstraints, c.Key)
	}

	sumMin, sumMax := 0, 0
	for role, b := range c.RoleBounds {
		if !player.IsKnownRole(role) {
			return fmt.Errorf("%w: format=%s unknown role %q", ErrInvalidConstraints, c.Key, role)
		}
		if b.Min < 0 || b.Max < b.Min {
			return fmt.Errorf("%w: format=%s role=%s bounds [%d,%d]", ErrInvalidConstraints, c.Key, role, b.Min, b.Max)
		}
		sumMin += b.Min
		sumMax += b.Max
	}
	if sumMin > c.RosterSize || sumMax < c.RosterSize {
		return fmt.Errorf("%w: format=%s role bounds [%d,%d] cannot fill roster of %d", ErrInvalidConstraints, c.Key, sumMin, sumMax, c.RosterSize)
	}

	return nil
}

// OrderedRoles returns the bounded roles in canonical order.
func (c Constraints) OrderedRoles() []player.Role {
	out := make([]player.Role, 0, len(c.RoleBounds))
	for _, role := range player.Roles {
		if _, ok := c.RoleBounds[role]; ok {
			out = append(out, role)
		}
	}
	return out
}

func (c Constraints) Clone() Constraints {
	copied := c
	copied.RoleBounds = make(map[player.Role]Bounds, len(c.RoleBounds))
	for role, b := range c.RoleBounds {
		copied.RoleBounds[role] = b
	}
	return copied
}
