package team

import (
	"errors"
	"fmt"
	"sort"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/contest"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/player"
)

var (
	ErrRosterSizeInvalid          = errors.New("roster size invalid")
	ErrUnknownPlayer              = errors.New("unknown player")
	ErrCreditCapExceeded          = errors.New("credit cap exceeded")
	ErrRoleCountOutOfRange        = errors.New("role count out of range")
	ErrCaptainViceCaptainConflict = errors.New("captain vice-captain conflict")
)

type ViolationKind string

const (
	KindRosterSizeInvalid          ViolationKind = "rosterSizeInvalid"
	KindUnknownPlayer              ViolationKind = "unknownPlayer"
	KindCreditCapExceeded          ViolationKind = "creditCapExceeded"
	KindRoleCountOutOfRange        ViolationKind = "roleCountOutOfRange"
	KindCaptainViceCaptainConflict ViolationKind = "captainViceCaptainConflict"
)

// Violation is the first structural rule a proposed team breaks. Only the
// fields relevant to Kind are set.
type Violation struct {
	Kind ViolationKind

	// RosterSizeInvalid
	Expected int
	Distinct int
	Given    int

	// UnknownPlayer
	PlayerID string

	// CreditCapExceeded
	Total player.Credits
	Cap   player.Credits

	// RoleCountOutOfRange
	Role  player.Role
	Count int
	Min   int
	Max   int

	// CaptainViceCaptainConflict
	Reason string
}

func (v *Violation) Error() string {
	switch v.Kind {
	case KindRosterSizeInvalid:
		return fmt.Sprintf("%s: expected %d distinct players, got %d of %d", ErrRosterSizeInvalid, v.Expected, v.Distinct, v.Given)
	case KindUnknownPlayer:
		return fmt.Sprintf("%s: %s", ErrUnknownPlayer, v.PlayerID)
	case KindCreditCapExceeded:
		return fmt.Sprintf("%s: used=%s cap=%s", ErrCreditCapExceeded, v.Total, v.Cap)
	case KindRoleCountOutOfRange:
		return fmt.Sprintf("%s: role=%s count=%d allowed=[%d,%d]", ErrRoleCountOutOfRange, v.Role, v.Count, v.Min, v.Max)
	case KindCaptainViceCaptainConflict:
		return fmt.Sprintf("%s: %s", ErrCaptainViceCaptainConflict, v.Reason)
	default:
		return "team violation: " + string(v.Kind)
	}
}

func (v *Violation) Unwrap() error {
	switch v.Kind {
	case KindRosterSizeInvalid:
		return ErrRosterSizeInvalid
	case KindUnknownPlayer:
		return ErrUnknownPlayer
	case KindCreditCapExceeded:
		return ErrCreditCapExceeded
	case KindRoleCountOutOfRange:
		return ErrRoleCountOutOfRange
	case KindCaptainViceCaptainConflict:
		return ErrCaptainViceCaptainConflict
	default:
		return nil
	}
}

// AsViolation extracts the typed violation from a wrapped error.
func AsViolation(err error) (*Violation, bool) {
	var v *Violation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// Validate checks a proposed selection against a match roster and a contest
// format. It returns nil or a *Violation for the first failing rule, in order:
// size, membership, credit cap, role bounds, captaincy.
//
// A nil roster or invalid constraints are caller bugs and panic.
func Validate(proposed Selection, roster []player.Player, constraints contest.Constraints) error {
	if roster == nil {
		panic("team.Validate: nil roster")
	}
	if err := constraints.Validate(); err != nil {
		panic("team.Validate: " + err.Error())
	}

	distinct := make(map[string]struct{}, len(proposed.PlayerIDs))
	for _, id := range proposed.PlayerIDs {
		distinct[id] = struct{}{}
	}
	if len(proposed.PlayerIDs) != constraints.RosterSize || len(distinct) != len(proposed.PlayerIDs) {
		return &Violation{
			Kind:     KindRosterSizeInvalid,
			Expected: constraints.RosterSize,
			Distinct: len(distinct),
			Given:    len(proposed.PlayerIDs),
		}
	}

	byID := make(map[string]player.Player, len(roster))
	for _, p := range roster {
		byID[p.ID] = p
	}

	selected := make([]player.Player, 0, len(proposed.PlayerIDs))
	for _, id := range proposed.PlayerIDs {
		p, ok := byID[id]
		if !ok {
			return &Violation{Kind: KindUnknownPlayer, PlayerID: id}
		}
		selected = append(selected, p)
	}

	var total player.Credits
	for _, p := range selected {
		total += p.Credits
	}
	if total > constraints.CreditCap {
		return &Violation{Kind: KindCreditCapExceeded, Total: total, Cap: constraints.CreditCap}
	}

	counts := make(map[player.Role]int, len(constraints.RoleBounds))
	for _, p := range selected {
		counts[p.Role]++
	}
	for _, role := range rolesToCheck(counts, constraints) {
		bounds, bounded := constraints.RoleBounds[role]
		count := counts[role]
		if !bounded {
			return &Violation{Kind: KindRoleCountOutOfRange, Role: role, Count: count}
		}
		if !bounds.Contains(count) {
			return &Violation{Kind: KindRoleCountOutOfRange, Role: role, Count: count, Min: bounds.Min, Max: bounds.Max}
		}
	}

	switch {
	case proposed.CaptainID == "" || proposed.ViceCaptainID == "":
		return &Violation{Kind: KindCaptainViceCaptainConflict, Reason: "captain and vice-captain are required"}
	case proposed.CaptainID == proposed.ViceCaptainID:
		return &Violation{Kind: KindCaptainViceCaptainConflict, Reason: "captain and vice-captain must differ"}
	}
	if _, ok := distinct[proposed.CaptainID]; !ok {
		return &Violation{Kind: KindCaptainViceCaptainConflict, Reason: "captain is not in the selection"}
	}
	if _, ok := distinct[proposed.ViceCaptainID]; !ok {
		return &Violation{Kind: KindCaptainViceCaptainConflict, Reason: "vice-captain is not in the selection"}
	}

	return nil
}

// rolesToCheck yields the bounded roles in canonical order followed by any
// selected role without bounds, sorted.
func rolesToCheck(counts map[player.Role]int, constraints contest.Constraints) []player.Role {
	out := constraints.OrderedRoles()

	var extra []player.Role
	for role := range counts {
		if _, ok := constraints.RoleBounds[role]; !ok {
			extra = append(extra, role)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })

	return append(out, extra...)
}
