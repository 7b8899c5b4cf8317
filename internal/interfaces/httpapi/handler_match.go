package httpapi

import (
	"net/http"
	"time"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/player"
	"github.com/riskibarqy/cricket-fantasy/internal/usecase"
)

type sideDTO struct {
	Name  string `json:"name"`
	Short string `json:"short"`
	Color string `json:"color,omitempty"`
}

type matchDTO struct {
	ID            string    `json:"id"`
	Home          sideDTO   `json:"home"`
	Away          sideDTO   `json:"away"`
	Venue         string    `json:"venue"`
	StartTime     time.Time `json:"startTime"`
	Status        string    `json:"status"`
	StatusNote    string    `json:"statusNote,omitempty"`
	PrizePool     string    `json:"prizePool,omitempty"`
	EntryFee      int64     `json:"entryFee"`
	SpotsTotal    int       `json:"spotsTotal"`
	SpotsLeft     int       `json:"spotsLeft"`
	Format        string    `json:"format"`
	TimeRemaining string    `json:"timeRemaining"`
	CanEdit       bool      `json:"canEdit"`
}

type playerDTO struct {
	ID              string     `json:"id"`
	MatchID         string     `json:"matchId"`
	Name            string     `json:"name"`
	TeamName        string     `json:"teamName"`
	TeamShort       string     `json:"teamShort"`
	Role            string     `json:"role"`
	Credits         float64    `json:"credits"`
	Points          *int64     `json:"points"`
	RecentForm      []int64    `json:"recentForm"`
	IsImpactPlayer  bool       `json:"isImpactPlayer"`
	IsInStartingXI  bool       `json:"isInStartingXI"`
	PointsUpdatedAt *time.Time `json:"pointsUpdatedAt,omitempty"`
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r.Context(), "ListMatches")
	defer span.End()

	items, err := h.catalogService.ListVisibleMatches(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r.Context(), "GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	view, err := h.catalogService.GetMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(view))
}

func (h *Handler) ListMatchPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r.Context(), "ListMatchPlayers")
	defer span.End()

	matchID := r.PathValue("matchID")
	roster, err := h.catalogService.PlayersForMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match players failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]playerDTO, 0, len(roster))
	for _, item := range roster {
		out = append(out, playerToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetMatchPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r.Context(), "GetMatchPlayer")
	defer span.End()

	matchID := r.PathValue("matchID")
	playerID := r.PathValue("playerID")
	item, err := h.catalogService.Player(ctx, matchID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match player failed", "match_id", matchID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func matchToDTO(v usecase.MatchView) matchDTO {
	m := v.Match
	return matchDTO{
		ID:            m.ID,
		Home:          sideToDTO(m.Home),
		Away:          sideToDTO(m.Away),
		Venue:         m.Venue,
		StartTime:     m.StartTime.UTC(),
		Status:        string(m.Status),
		StatusNote:    m.StatusNote,
		PrizePool:     m.PrizePool,
		EntryFee:      m.EntryFee,
		SpotsTotal:    m.SpotsTotal,
		SpotsLeft:     m.SpotsLeft(),
		Format:        m.Format,
		TimeRemaining: v.Remaining.String(),
		CanEdit:       v.CanEdit,
	}
}

func sideToDTO(s match.Side) sideDTO {
	return sideDTO{Name: s.Name, Short: s.Short, Color: s.Color}
}

// playerToDTO leaves points null until live scoring reports the player, so
// clients can tell "no score yet" apart from zero.
func playerToDTO(p player.Player) playerDTO {
	out := playerDTO{
		ID:              p.ID,
		MatchID:         p.MatchID,
		Name:            p.Name,
		TeamName:        p.TeamName,
		TeamShort:       p.TeamShort,
		Role:            string(p.Role),
		Credits:         p.Credits.Float64(),
		RecentForm:      append([]int64{}, p.RecentForm...),
		IsImpactPlayer:  p.IsImpactPlayer,
		IsInStartingXI:  p.IsInStartingXI,
		PointsUpdatedAt: p.PointsUpdatedAt,
	}
	if p.HasPoints() {
		points := p.Points
		out.Points = &points
	}
	return out
}
