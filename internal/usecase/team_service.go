package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/contest"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/player"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/team"
	idgen "github.com/riskibarqy/cricket-fantasy/internal/platform/id"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// FormatResolver looks up contest constraints by format key; an empty key is the default format.
type FormatResolver interface {
	Resolve(key string) (contest.Constraints, error)
}

type CreateTeamInput struct {
	UserID        string
	MatchID       string
	Name          string
	PlayerIDs     []string
	CaptainID     string
	ViceCaptainID string
}

// ReplaceTeamInput replaces roster fields only; id, match, name and creation time never change.
type ReplaceTeamInput struct {
	UserID        string
	TeamID        string
	PlayerIDs     []string
	CaptainID     string
	ViceCaptainID string
}

type TeamServiceConfig struct {
	// DeleteRespectsEditWindow makes DeleteTeam fail once editing has closed.
	DeleteRespectsEditWindow bool
}

type TeamService struct {
	matchRepo  match.Repository
	playerRepo player.Repository
	teamRepo   team.Repository
	formats    FormatResolver
	policy     match.Policy
	idGen      idgen.Generator
	cfg        TeamServiceConfig
	logger     *logging.Logger
	now        func() time.Time
}

// NewTeamService expects an uncached match repository: the edit window is a
// fresh read on every mutation.
func NewTeamService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	teamRepo team.Repository,
	formats FormatResolver,
	policy match.Policy,
	idGen idgen.Generator,
	cfg TeamServiceConfig,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	if formats == nil {
		formats = contest.DefaultCatalog()
	}
	if idGen == nil {
		idGen = idgen.NewUUIDGenerator()
	}

	return &TeamService{
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		formats:    formats,
		policy:     policy,
		idGen:      idGen,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startSpan(ctx, "TeamService.CreateTeam", attribute.String("match_id", input.MatchID))
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.MatchID = strings.TrimSpace(input.MatchID)
	input.Name = strings.TrimSpace(input.Name)
	if input.UserID == "" {
		return team.Team{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.MatchID == "" {
		return team.Team{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	m, err := s.loadEditableMatch(ctx, input.MatchID)
	if err != nil {
		return team.Team{}, err
	}

	selection := team.Selection{
		PlayerIDs:     input.PlayerIDs,
		CaptainID:     input.CaptainID,
		ViceCaptainID: input.ViceCaptainID,
	}.Normalize()
	if err := s.validateSelection(ctx, m, selection); err != nil {
		return team.Team{}, err
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	now := s.now().UTC()
	created := team.Team{
		ID:            teamID,
		UserID:        input.UserID,
		MatchID:       m.ID,
		Name:          input.Name,
		PlayerIDs:     selection.PlayerIDs,
		CaptainID:     selection.CaptainID,
		ViceCaptainID: selection.ViceCaptainID,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := created.ValidateBasic(); err != nil {
		return team.Team{}, fmt.Errorf("validate team: %w", err)
	}

	if err := s.teamRepo.Create(ctx, created); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created",
		"team_id", created.ID,
		"user_id", created.UserID,
		"match_id", created.MatchID,
	)

	return created, nil
}

func (s *TeamService) ReplaceTeam(ctx context.Context, input ReplaceTeamInput) (team.Team, error) {
	ctx, span := startSpan(ctx, "TeamService.ReplaceTeam", attribute.String("team_id", input.TeamID))
	defer span.End()

	existing, err := s.getOwnedTeam(ctx, input.UserID, input.TeamID)
	if err != nil {
		return team.Team{}, err
	}

	m, err := s.loadEditableMatch(ctx, existing.MatchID)
	if err != nil {
		return team.Team{}, err
	}

	selection := team.Selection{
		PlayerIDs:     input.PlayerIDs,
		CaptainID:     input.CaptainID,
		ViceCaptainID: input.ViceCaptainID,
	}.Normalize()
	if err := s.validateSelection(ctx, m, selection); err != nil {
		return team.Team{}, err
	}

	updated := existing.WithSelection(selection)
	updated.UpdatedAt = s.now().UTC()
	if err := s.teamRepo.ReplaceSelection(ctx, updated, existing.Version); err != nil {
		if errors.Is(err, team.ErrVersionConflict) {
			return team.Team{}, fmt.Errorf("%w: team=%s was modified concurrently", ErrConflict, existing.ID)
		}
		return team.Team{}, fmt.Errorf("replace team selection: %w", err)
	}

	stored, exists, err := s.teamRepo.GetByID(ctx, existing.ID)
	if err != nil {
		return team.Team{}, fmt.Errorf("reload team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s deleted during update", ErrConflict, existing.ID)
	}
	if err := s.validateSelection(ctx, m, stored.Selection()); err != nil {
		s.logger.ErrorContext(ctx, "stored team failed validation after replace",
			"team_id", stored.ID,
			"error", err,
		)
		s.restoreSelection(ctx, existing, stored.Version)
		return team.Team{}, fmt.Errorf("%w: stored team=%s is not valid: %v", ErrConflict, stored.ID, err)
	}

	s.logger.InfoContext(ctx, "team replaced",
		"team_id", stored.ID,
		"user_id", stored.UserID,
		"version", stored.Version,
	)

	return stored, nil
}

// restoreSelection puts previous back when the stored team is still at version.
// A writer that got in first keeps its state.
func (s *TeamService) restoreSelection(ctx context.Context, previous team.Team, version int64) {
	previous.UpdatedAt = s.now().UTC()
	if err := s.teamRepo.ReplaceSelection(ctx, previous, version); err != nil {
		s.logger.ErrorContext(ctx, "restore previous team selection failed",
			"team_id", previous.ID,
			"version", version,
			"error", err,
		)
		return
	}
	s.logger.WarnContext(ctx, "previous team selection restored",
		"team_id", previous.ID,
		"version", version,
	)
}

func (s *TeamService) DeleteTeam(ctx context.Context, userID, teamID string) error {
	ctx, span := startSpan(ctx, "TeamService.DeleteTeam", attribute.String("team_id", teamID))
	defer span.End()

	existing, err := s.getOwnedTeam(ctx, userID, teamID)
	if err != nil {
		return err
	}

	if s.cfg.DeleteRespectsEditWindow {
		if _, err := s.loadEditableMatch(ctx, existing.MatchID); err != nil {
			return err
		}
	}

	if err := s.teamRepo.Delete(ctx, existing.ID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}

	s.logger.InfoContext(ctx, "team deleted",
		"team_id", existing.ID,
		"user_id", existing.UserID,
	)

	return nil
}

// ListUserTeams returns every team owned by userID, narrowed to one match when matchID is set.
func (s *TeamService) ListUserTeams(ctx context.Context, userID, matchID string) ([]team.Team, error) {
	ctx, span := startSpan(ctx, "TeamService.ListUserTeams")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.teamRepo.ListByUser(ctx, userID, strings.TrimSpace(matchID))
	if err != nil {
		return nil, fmt.Errorf("list user teams: %w", err)
	}
	return items, nil
}

func (s *TeamService) GetTeam(ctx context.Context, userID, teamID string) (team.Team, error) {
	ctx, span := startSpan(ctx, "TeamService.GetTeam", attribute.String("team_id", teamID))
	defer span.End()

	return s.getOwnedTeam(ctx, userID, teamID)
}

func (s *TeamService) getOwnedTeam(ctx context.Context, userID, teamID string) (team.Team, error) {
	userID = strings.TrimSpace(userID)
	teamID = strings.TrimSpace(teamID)
	if userID == "" || teamID == "" {
		return team.Team{}, fmt.Errorf("%w: user_id and team_id are required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	if item.UserID != userID {
		return team.Team{}, fmt.Errorf("%w: team=%s belongs to another user", ErrForbidden, teamID)
	}
	return item, nil
}

func (s *TeamService) loadEditableMatch(ctx context.Context, matchID string) (match.Match, error) {
	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	if !s.policy.CanEdit(m, s.now()) {
		return match.Match{}, fmt.Errorf("%w: match=%s status=%s start=%s", ErrEditWindowClosed, m.ID, m.Status, m.StartTime.UTC().Format(time.RFC3339))
	}
	return m, nil
}

func (s *TeamService) validateSelection(ctx context.Context, m match.Match, selection team.Selection) error {
	constraints, err := s.formats.Resolve(m.Format)
	if err != nil {
		return fmt.Errorf("resolve contest format for match=%s: %w", m.ID, err)
	}

	roster, err := s.playerRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("list roster: %w", err)
	}
	if roster == nil {
		roster = []player.Player{}
	}

	if err := team.Validate(selection, roster, constraints); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTeam, err)
	}
	return nil
}
