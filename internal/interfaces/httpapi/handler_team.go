package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/team"
	"github.com/riskibarqy/cricket-fantasy/internal/usecase"
)

type createTeamRequest struct {
	MatchID       string   `json:"matchId" validate:"required"`
	Name          string   `json:"name" validate:"required,max=100"`
	PlayerIDs     []string `json:"playerIds" validate:"max=50"`
	CaptainID     string   `json:"captainId"`
	ViceCaptainID string   `json:"viceCaptainId"`
}

type replaceTeamRequest struct {
	PlayerIDs     []string `json:"playerIds" validate:"max=50"`
	CaptainID     string   `json:"captainId"`
	ViceCaptainID string   `json:"viceCaptainId"`
}

type teamDTO struct {
	ID               string     `json:"id"`
	UserID           string     `json:"userId"`
	MatchID          string     `json:"matchId"`
	Name             string     `json:"name"`
	PlayerIDs        []string   `json:"playerIds"`
	CaptainID        string     `json:"captainId"`
	ViceCaptainID    string     `json:"viceCaptainId"`
	TotalPoints      int64      `json:"totalPoints"`
	PointsComputedAt *time.Time `json:"pointsComputedAt,omitempty"`
	Version          int64      `json:"version"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type contributionDTO struct {
	PlayerID   string `json:"playerId"`
	BasePoints int64  `json:"basePoints"`
	Multiplier string `json:"multiplier"`
	Points     int64  `json:"points"`
}

type teamScoreDTO struct {
	TeamID        string            `json:"teamId"`
	MatchID       string            `json:"matchId"`
	Total         int64             `json:"total"`
	Contributions []contributionDTO `json:"contributions"`
	StoredTotal   int64             `json:"storedTotal"`
	ComputedAt    *time.Time        `json:"computedAt,omitempty"`
}

func (h *Handler) ListMyTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r.Context(), "ListMyTeams")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	matchID := strings.TrimSpace(r.URL.Query().Get("match_id"))
	items, err := h.teamService.ListUserTeams(ctx, principal.UserID, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "user_id", principal.UserID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r.Context(), "CreateTeam")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req createTeamRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.teamService.CreateTeam(ctx, usecase.CreateTeamInput{
		UserID:        principal.UserID,
		MatchID:       req.MatchID,
		Name:          req.Name,
		PlayerIDs:     req.PlayerIDs,
		CaptainID:     req.CaptainID,
		ViceCaptainID: req.ViceCaptainID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "user_id", principal.UserID, "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(created))
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r.Context(), "GetTeam")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	teamID := r.PathValue("teamID")
	item, err := h.teamService.GetTeam(ctx, principal.UserID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "user_id", principal.UserID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) ReplaceTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r.Context(), "ReplaceTeam")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req replaceTeamRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := r.PathValue("teamID")
	updated, err := h.teamService.ReplaceTeam(ctx, usecase.ReplaceTeamInput{
		UserID:        principal.UserID,
		TeamID:        teamID,
		PlayerIDs:     req.PlayerIDs,
		CaptainID:     req.CaptainID,
		ViceCaptainID: req.ViceCaptainID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "replace team failed", "user_id", principal.UserID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(updated))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r.Context(), "DeleteTeam")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	teamID := r.PathValue("teamID")
	if err := h.teamService.DeleteTeam(ctx, principal.UserID, teamID); err != nil {
		h.logger.WarnContext(ctx, "delete team failed", "user_id", principal.UserID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": teamID, "status": "deleted"})
}

func (h *Handler) GetTeamScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r.Context(), "GetTeamScore")
	defer span.End()

	principal, ok := requirePrincipal(ctx, w)
	if !ok {
		return
	}

	teamID := r.PathValue("teamID")
	view, err := h.scoringService.TeamScore(ctx, principal.UserID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team score failed", "user_id", principal.UserID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamScoreToDTO(view))
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:               v.ID,
		UserID:           v.UserID,
		MatchID:          v.MatchID,
		Name:             v.Name,
		PlayerIDs:        append([]string{}, v.PlayerIDs...),
		CaptainID:        v.CaptainID,
		ViceCaptainID:    v.ViceCaptainID,
		TotalPoints:      v.TotalPoints,
		PointsComputedAt: v.PointsComputedAt,
		Version:          v.Version,
		CreatedAt:        v.CreatedAt.UTC(),
		UpdatedAt:        v.UpdatedAt.UTC(),
	}
}

func teamScoreToDTO(v usecase.TeamScoreView) teamScoreDTO {
	out := teamScoreDTO{
		TeamID:        v.TeamID,
		MatchID:       v.MatchID,
		Total:         v.Breakdown.Total,
		Contributions: make([]contributionDTO, 0, len(v.Breakdown.Contributions)),
		StoredTotal:   v.StoredTotal,
		ComputedAt:    v.ComputedAt,
	}
	for _, c := range v.Breakdown.Contributions {
		out.Contributions = append(out.Contributions, contributionDTO{
			PlayerID:   c.PlayerID,
			BasePoints: c.BasePoints,
			Multiplier: string(c.Multiplier),
			Points:     c.Points,
		})
	}
	return out
}
