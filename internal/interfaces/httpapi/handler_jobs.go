package httpapi

import (
	"net/http"

	"github.com/riskibarqy/cricket-fantasy/internal/usecase"
)

type ingestPointsRequest struct {
	Points map[string]int64 `json:"points" validate:"required,min=1"`
}

type recomputeScoresRequest struct {
	MatchIDs []string `json:"matchIds" validate:"required,min=1,max=100,dive,required"`
}

// IngestMatchPoints stores live player points pushed by the scoring feed.
func (h *Handler) IngestMatchPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r.Context(), "IngestMatchPoints")
	defer span.End()

	var req ingestPointsRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	result, err := h.scoringService.IngestPoints(ctx, usecase.IngestPointsInput{
		MatchID: matchID,
		Points:  req.Points,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "ingest match points failed", "match_id", matchID, "players", len(req.Points), "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if result.Queued {
		status = http.StatusAccepted
	}
	writeSuccess(ctx, w, status, result)
}

// RunRecomputeScoresJob is the QStash callback target. Reruns are harmless.
func (h *Handler) RunRecomputeScoresJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r.Context(), "RunRecomputeScoresJob")
	defer span.End()

	var req recomputeScoresRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoringService.RecomputeMatches(ctx, req.MatchIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "run recompute scores job failed", "match_ids", req.MatchIDs, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "recompute scores job completed",
		"matches", len(result.Matches),
		"scored", result.Scored,
		"pending", result.Pending,
		"failed", result.Failed,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}
