package scoring

import (
	"errors"
	"fmt"
	"sort"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/team"
)

var (
	ErrUnknownPlayerScore = errors.New("unknown player score")
	ErrInvalidTeamShape   = errors.New("invalid team shape")
)

type Multiplier string

const (
	MultiplierNone        Multiplier = "none"
	MultiplierCaptain     Multiplier = "captain"
	MultiplierViceCaptain Multiplier = "vice_captain"
)

// Contribution is one selected player's share of a team total.
type Contribution struct {
	PlayerID   string
	BasePoints int64
	Multiplier Multiplier
	Points     int64
}

type Breakdown struct {
	Total         int64
	Contributions []Contribution
}

// CaptainPoints doubles base points.
func CaptainPoints(base int64) int64 {
	return base * 2
}

// ViceCaptainPoints is base*1.5 rounded half up toward positive infinity:
// 51 -> 77, -3 -> -4.5 -> -4.
func ViceCaptainPoints(base int64) int64 {
	n := 3*base + 1
	q := n / 2
	if n%2 != 0 && n < 0 {
		q--
	}
	return q
}

// Score totals a team selection from current per-player points. It keeps no
// state, so equal inputs always produce equal output regardless of id order.
// A nil points map means no scores are available yet.
func Score(selection team.Selection, rosterSize int, points map[string]int64) (Breakdown, error) {
	if err := checkShape(selection, rosterSize); err != nil {
		return Breakdown{}, err
	}

	ids := append([]string(nil), selection.PlayerIDs...)
	sort.Strings(ids)

	out := Breakdown{Contributions: make([]Contribution, 0, len(ids))}
	for _, id := range ids {
		base, ok := points[id]
		if !ok {
			return Breakdown{}, fmt.Errorf("%w: player=%s", ErrUnknownPlayerScore, id)
		}

		c := Contribution{PlayerID: id, BasePoints: base, Multiplier: MultiplierNone, Points: base}
		switch id {
		case selection.CaptainID:
			c.Multiplier = MultiplierCaptain
			c.Points = CaptainPoints(base)
		case selection.ViceCaptainID:
			c.Multiplier = MultiplierViceCaptain
			c.Points = ViceCaptainPoints(base)
		}

		out.Total += c.Points
		out.Contributions = append(out.Contributions, c)
	}

	return out, nil
}

func checkShape(selection team.Selection, rosterSize int) error {
	if rosterSize < 1 {
		panic(fmt.Sprintf("scoring.Score: roster size must be >= 1, got %d", rosterSize))
	}
	if selection.CaptainID == "" || selection.ViceCaptainID == "" {
		return fmt.Errorf("%w: captain and vice-captain are required", ErrInvalidTeamShape)
	}
	if selection.CaptainID == selection.ViceCaptainID {
		return fmt.Errorf("%w: captain equals vice-captain", ErrInvalidTeamShape)
	}

	distinct := make(map[string]struct{}, len(selection.PlayerIDs))
	for _, id := range selection.PlayerIDs {
		distinct[id] = struct{}{}
	}
	if len(distinct) != rosterSize || len(selection.PlayerIDs) != rosterSize {
		return fmt.Errorf("%w: expected %d distinct players, got %d of %d", ErrInvalidTeamShape, rosterSize, len(distinct), len(selection.PlayerIDs))
	}
	if _, ok := distinct[selection.CaptainID]; !ok {
		return fmt.Errorf("%w: captain %s not selected", ErrInvalidTeamShape, selection.CaptainID)
	}
	if _, ok := distinct[selection.ViceCaptainID]; !ok {
		return fmt.Errorf("%w: vice-captain %s not selected", ErrInvalidTeamShape, selection.ViceCaptainID)
	}

	return nil
}
