package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/player"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/team"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

const RecomputeScoresJobPath = "/v1/internal/jobs/recompute-scores"

type ScoringServiceConfig struct {
	Workers          int
	MatchConcurrency int
}

type IngestPointsInput struct {
	MatchID string
	Points  map[string]int64
}

type IngestPointsResult struct {
	MatchID   string           `json:"matchId"`
	Updated   int              `json:"updated"`
	Queued    bool             `json:"queued"`
	Recompute *RecomputeResult `json:"recompute,omitempty"`
}

type RecomputeResult struct {
	MatchID    string    `json:"matchId"`
	TeamCount  int       `json:"teamCount"`
	Scored     int       `json:"scored"`
	Pending    int       `json:"pending"`
	// Invalid teams cannot be scored in their stored shape; Failed teams were
	// scored but their total could not be written.
	Invalid    int       `json:"invalid"`
	Failed     int       `json:"failed"`
	ComputedAt time.Time `json:"computedAt"`
	Error      string    `json:"error,omitempty"`
}

type RecomputeBatchResult struct {
	Matches []RecomputeResult `json:"matches"`
	Scored  int               `json:"scored"`
	Pending int               `json:"pending"`
	Invalid int               `json:"invalid"`
	Failed  int               `json:"failed"`
}

type TeamScoreView struct {
	TeamID      string
	MatchID     string
	Breakdown   scoring.Breakdown
	StoredTotal int64
	ComputedAt  *time.Time
}

// pointsFingerprint keys the recompute dedup id. The ingest time keeps a
// correction back to an earlier payload from being dropped as a duplicate.
type pointsFingerprint struct {
	Points map[string]int64 `json:"points"`
	At     time.Time        `json:"at"`
}

type recomputeJobPayload struct {
	MatchIDs []string `json:"matchIds"`
}

type ScoringService struct {
	matchRepo  match.Repository
	playerRepo player.Repository
	teamRepo   team.Repository
	formats    FormatResolver
	queue      JobQueue
	inline     bool
	cfg        ScoringServiceConfig
	logger     *logging.Logger
	now        func() time.Time
}

// NewScoringService recomputes inline after ingestion when queue is nil.
func NewScoringService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	teamRepo team.Repository,
	formats FormatResolver,
	queue JobQueue,
	cfg ScoringServiceConfig,
	logger *logging.Logger,
) *ScoringService {
	inline := queue == nil
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 8
	}
	if cfg.MatchConcurrency < 1 {
		cfg.MatchConcurrency = 4
	}

	return &ScoringService{
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		formats:    formats,
		queue:      queue,
		inline:     inline,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

// IngestPoints stores live points for a match and schedules team recomputation.
func (s *ScoringService) IngestPoints(ctx context.Context, input IngestPointsInput) (IngestPointsResult, error) {
	ctx, span := startSpan(ctx, "ScoringService.IngestPoints", attribute.String("match_id", input.MatchID), attribute.Int("players", len(input.Points)))
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	if input.MatchID == "" {
		return IngestPointsResult{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if len(input.Points) == 0 {
		return IngestPointsResult{}, fmt.Errorf("%w: points are required", ErrInvalidInput)
	}

	if _, err := s.getMatch(ctx, input.MatchID); err != nil {
		return IngestPointsResult{}, err
	}

	roster, err := s.playerRepo.ListByMatch(ctx, input.MatchID)
	if err != nil {
		return IngestPointsResult{}, fmt.Errorf("list roster: %w", err)
	}
	known := make(map[string]struct{}, len(roster))
	for _, p := range roster {
		known[p.ID] = struct{}{}
	}

	cleaned := make(map[string]int64, len(input.Points))
	for rawID, value := range input.Points {
		id := strings.TrimSpace(rawID)
		if _, ok := known[id]; !ok {
			return IngestPointsResult{}, fmt.Errorf("%w: player=%s is not in match=%s", ErrInvalidInput, id, input.MatchID)
		}
		cleaned[id] = value
	}

	ingestedAt := s.now().UTC()
	if err := s.playerRepo.UpdatePoints(ctx, input.MatchID, cleaned, ingestedAt); err != nil {
		return IngestPointsResult{}, fmt.Errorf("update player points: %w", err)
	}

	result := IngestPointsResult{MatchID: input.MatchID, Updated: len(cleaned)}
	if s.inline {
		recomputed, err := s.RecomputeMatch(ctx, input.MatchID)
		if err != nil {
			return IngestPointsResult{}, err
		}
		if recomputed.Failed > 0 {
			return IngestPointsResult{}, fmt.Errorf("%w: %d team totals not written for match=%s", ErrDependencyUnavailable, recomputed.Failed, input.MatchID)
		}
		result.Recompute = &recomputed
		return result, nil
	}

	payload := recomputeJobPayload{MatchIDs: []string{input.MatchID}}
	fingerprint, err := sonic.ConfigStd.Marshal(pointsFingerprint{Points: cleaned, At: ingestedAt})
	if err != nil {
		return IngestPointsResult{}, fmt.Errorf("encode points fingerprint: %w", err)
	}
	dedupID := dedupKey("recompute-scores", input.MatchID, fingerprint)
	if err := s.queue.Enqueue(ctx, RecomputeScoresJobPath, payload, 0, dedupID); err != nil {
		failSpan(span, err)
		return IngestPointsResult{}, fmt.Errorf("%w: enqueue recompute-scores match=%s: %v", ErrDependencyUnavailable, input.MatchID, err)
	}
	result.Queued = true

	s.logger.InfoContext(ctx, "points ingested",
		"match_id", input.MatchID,
		"updated", result.Updated,
		"dedup_id", dedupID,
	)

	return result, nil
}

// RecomputeMatch rescores every team of a match. Teams with missing player
// points are left untouched and counted as pending. Safe to re-run.
func (s *ScoringService) RecomputeMatch(ctx context.Context, matchID string) (RecomputeResult, error) {
	ctx, span := startSpan(ctx, "ScoringService.RecomputeMatch", attribute.String("match_id", matchID))
	defer span.End()

	m, err := s.getMatch(ctx, matchID)
	if err != nil {
		return RecomputeResult{}, err
	}
	constraints, err := s.formats.Resolve(m.Format)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("resolve contest format for match=%s: %w", m.ID, err)
	}

	// Stamped before the roster read so a slower run over older points loses
	// the conditional write to a later one.
	computedAt := s.now().UTC()
	roster, err := s.playerRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		failSpan(span, err)
		return RecomputeResult{}, fmt.Errorf("list roster: %w", err)
	}
	points := pointsFromRoster(roster)

	teams, err := s.teamRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("list teams by match: %w", err)
	}

	result := RecomputeResult{MatchID: m.ID, TeamCount: len(teams), ComputedAt: computedAt}
	if len(teams) == 0 {
		return result, nil
	}

	workerCount := s.cfg.Workers
	if workerCount > len(teams) {
		workerCount = len(teams)
	}
	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var scored, pending, invalid, failed atomic.Int32
	var workers sync.WaitGroup
	for _, item := range teams {
		item := item
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			breakdown, err := scoring.Score(item.Selection(), constraints.RosterSize, points)
			switch {
			case errors.Is(err, scoring.ErrUnknownPlayerScore):
				pending.Add(1)
				return
			case err != nil:
				invalid.Add(1)
				s.logger.WarnContext(ctx, "team cannot be scored",
					"team_id", item.ID,
					"match_id", item.MatchID,
					"error", err,
				)
				return
			}

			if err := s.teamRepo.UpdateTotalPoints(ctx, item.ID, breakdown.Total, computedAt); err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "update team total points failed",
					"team_id", item.ID,
					"error", err,
				)
				return
			}
			scored.Add(1)
		}); err != nil {
			workers.Done()
			return RecomputeResult{}, fmt.Errorf("submit team to worker pool: %w", err)
		}
	}
	workers.Wait()

	result.Scored = int(scored.Load())
	result.Pending = int(pending.Load())
	result.Invalid = int(invalid.Load())
	result.Failed = int(failed.Load())

	s.logger.InfoContext(ctx, "match scores recomputed",
		"match_id", m.ID,
		"teams", result.TeamCount,
		"scored", result.Scored,
		"pending", result.Pending,
		"invalid", result.Invalid,
		"failed", result.Failed,
	)

	return result, nil
}

// RecomputeMatches fans out across matches; one failing match does not stop the
// others. The batch result is always returned. The error wraps
// ErrDependencyUnavailable when a match hit an upstream error or a team total
// could not be written, so the job is redelivered. Unknown matches and
// unscorable teams are not retried.
func (s *ScoringService) RecomputeMatches(ctx context.Context, matchIDs []string) (RecomputeBatchResult, error) {
	ctx, span := startSpan(ctx, "ScoringService.RecomputeMatches", attribute.Int("matches", len(matchIDs)))
	defer span.End()

	ids := uniqueTrimmed(matchIDs)
	if len(ids) == 0 {
		return RecomputeBatchResult{}, fmt.Errorf("%w: match ids are required", ErrInvalidInput)
	}

	type outcome struct {
		row   RecomputeResult
		retry bool
	}
	p := pool.NewWithResults[outcome]().WithMaxGoroutines(s.cfg.MatchConcurrency)
	for _, id := range ids {
		id := id
		p.Go(func() outcome {
			res, err := s.RecomputeMatch(ctx, id)
			if err != nil {
				failSpan(span, err)
				s.logger.WarnContext(ctx, "recompute match failed", "match_id", id, "error", err)
				return outcome{row: RecomputeResult{MatchID: id, Error: err.Error()}, retry: !isClientError(err)}
			}
			return outcome{row: res, retry: res.Failed > 0}
		})
	}
	outcomes := p.Wait()

	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].row.MatchID < outcomes[j].row.MatchID })

	out := RecomputeBatchResult{Matches: make([]RecomputeResult, 0, len(outcomes))}
	var failedMatches []string
	for _, o := range outcomes {
		row := o.row
		out.Matches = append(out.Matches, row)
		out.Scored += row.Scored
		out.Pending += row.Pending
		out.Invalid += row.Invalid
		out.Failed += row.Failed
		if row.Error != "" {
			out.Failed++
		}
		if o.retry {
			failedMatches = append(failedMatches, row.MatchID)
		}
	}
	if len(failedMatches) > 0 {
		return out, fmt.Errorf("%w: recompute incomplete for matches=%s", ErrDependencyUnavailable, strings.Join(failedMatches, ","))
	}
	return out, nil
}

// TeamScore computes a live breakdown without persisting it.
func (s *ScoringService) TeamScore(ctx context.Context, userID, teamID string) (TeamScoreView, error) {
	ctx, span := startSpan(ctx, "ScoringService.TeamScore", attribute.String("team_id", teamID))
	defer span.End()

	userID = strings.TrimSpace(userID)
	teamID = strings.TrimSpace(teamID)
	if userID == "" || teamID == "" {
		return TeamScoreView{}, fmt.Errorf("%w: user_id and team_id are required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return TeamScoreView{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return TeamScoreView{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	if item.UserID != userID {
		return TeamScoreView{}, fmt.Errorf("%w: team=%s belongs to another user", ErrForbidden, teamID)
	}

	m, err := s.getMatch(ctx, item.MatchID)
	if err != nil {
		return TeamScoreView{}, err
	}
	constraints, err := s.formats.Resolve(m.Format)
	if err != nil {
		return TeamScoreView{}, fmt.Errorf("resolve contest format for match=%s: %w", m.ID, err)
	}
	roster, err := s.playerRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return TeamScoreView{}, fmt.Errorf("list roster: %w", err)
	}

	breakdown, err := scoring.Score(item.Selection(), constraints.RosterSize, pointsFromRoster(roster))
	if err != nil {
		if errors.Is(err, scoring.ErrUnknownPlayerScore) {
			return TeamScoreView{}, fmt.Errorf("%w: %w", ErrScoreUnavailable, err)
		}
		return TeamScoreView{}, fmt.Errorf("score team=%s: %w", item.ID, err)
	}

	return TeamScoreView{
		TeamID:      item.ID,
		MatchID:     item.MatchID,
		Breakdown:   breakdown,
		StoredTotal: item.TotalPoints,
		ComputedAt:  item.PointsComputedAt,
	}, nil
}

func (s *ScoringService) getMatch(ctx context.Context, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return m, nil
}

// pointsFromRoster only includes players live scoring has reported.
func pointsFromRoster(roster []player.Player) map[string]int64 {
	out := make(map[string]int64, len(roster))
	for _, p := range roster {
		if p.HasPoints() {
			out[p.ID] = p.Points
		}
	}
	return out
}

func uniqueTrimmed(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
