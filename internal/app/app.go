package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-fantasy/internal/config"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/contest"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/player"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/team"
	"github.com/riskibarqy/cricket-fantasy/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/cricket-fantasy/internal/infrastructure/account/jwtauth"
	"github.com/riskibarqy/cricket-fantasy/internal/infrastructure/jobqueue"
	cacherepo "github.com/riskibarqy/cricket-fantasy/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/cricket-fantasy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/cricket-fantasy/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/cricket-fantasy/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/cricket-fantasy/internal/platform/cache"
	idgen "github.com/riskibarqy/cricket-fantasy/internal/platform/id"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/logging"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/resilience"
	"github.com/riskibarqy/cricket-fantasy/internal/usecase"
)

type repositories struct {
	// matchesFresh bypasses the cache; edit-window checks read through it.
	matchesFresh match.Repository
	// playersFresh reads rosters uncached; scoring reads through it.
	playersFresh player.Repository
	matches      match.Repository
	players      player.Repository
	teams        team.Repository
}

// NewHTTPServer wires storage, auth, jobs and the router. The returned
// cleanup closes the database when one was opened.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, cleanup, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	formats, err := loadFormats(cfg)
	if err != nil {
		_ = cleanup()
		return nil, nil, err
	}

	verifier, err := newTokenVerifier(cfg, logger)
	if err != nil {
		_ = cleanup()
		return nil, nil, err
	}

	queue, err := newJobQueue(cfg, logger)
	if err != nil {
		_ = cleanup()
		return nil, nil, err
	}

	policy := match.NewPolicy(cfg.EditWindowMinLead)
	catalogSvc := usecase.NewCatalogService(repos.matches, repos.players, policy)
	teamSvc := usecase.NewTeamService(
		repos.matchesFresh,
		repos.players,
		repos.teams,
		formats,
		policy,
		idgen.PrefixedGenerator{Prefix: "team_", Next: idgen.NewUUIDGenerator()},
		usecase.TeamServiceConfig{DeleteRespectsEditWindow: cfg.TeamDeleteRespectsEditWindow},
		logger,
	)
	scoringSvc := usecase.NewScoringService(
		repos.matches,
		repos.playersFresh,
		repos.teams,
		formats,
		queue,
		usecase.ScoringServiceConfig{
			Workers:          cfg.ScoringWorkers,
			MatchConcurrency: cfg.ScoringMatchConcurrency,
		},
		logger,
	)

	handler := httpapi.NewHandler(catalogSvc, teamSvc, scoringSvc, logger)
	router := httpapi.NewRouter(handler, verifier, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("http server wired",
		"storage", cfg.StorageDriver,
		"auth_mode", cfg.AuthMode,
		"qstash_enabled", cfg.QStashEnabled,
		"cache_enabled", cfg.CacheEnabled,
		"formats", formats.Keys(),
	)

	return server, cleanup, nil
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	noop := func() error { return nil }

	var repos repositories
	cleanup := noop
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDatabase(ctx, cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		if err := postgres.BootstrapSeed(ctx, db, time.Now().UTC()); err != nil {
			_ = db.Close()
			return repositories{}, nil, fmt.Errorf("bootstrap seed data: %w", err)
		}
		repos = repositories{
			matches: postgres.NewMatchRepository(db),
			players: postgres.NewPlayerRepository(db),
			teams:   postgres.NewTeamRepository(db),
		}
		cleanup = db.Close
		logger.Info("postgres storage ready", "db_name", dbNameFromURL(cfg.DBURL))
	default:
		matches := memory.SeedMatches(time.Now().UTC())
		repos = repositories{
			matches: memory.NewMatchRepository(matches),
			players: memory.NewPlayerRepository(memory.SeedPlayers(matches)),
			teams:   memory.NewTeamRepository(nil),
		}
		logger.Info("memory storage ready", "matches", len(matches))
	}

	repos.matchesFresh = repos.matches
	repos.playersFresh = repos.players
	if cfg.CacheEnabled {
		repos.matches = cacherepo.NewMatchRepository(repos.matches, basecache.NewStore(cfg.CacheTTL))
		cachedPlayers := cacherepo.NewPlayerRepository(repos.players, basecache.NewStore(cfg.CacheTTL))
		repos.players = cachedPlayers
		repos.playersFresh = cachedPlayers.Bypass()
	}

	return repos, cleanup, nil
}

func loadFormats(cfg config.Config) (*contest.Catalog, error) {
	if cfg.ContestFormatsPath == "" {
		return contest.DefaultCatalog(), nil
	}

	formats, err := contest.LoadCatalogFile(cfg.ContestFormatsPath)
	if err != nil {
		return nil, fmt.Errorf("load contest formats: %w", err)
	}
	return formats, nil
}

func newTokenVerifier(cfg config.Config, logger *logging.Logger) (httpapi.TokenVerifier, error) {
	if cfg.AuthMode == config.AuthModeAnubis {
		return anubis.NewClient(
			&http.Client{Timeout: cfg.AnubisTimeout},
			cfg.AnubisBaseURL,
			cfg.AnubisIntrospectURL,
			cfg.AnubisAdminKey,
			anubis.CircuitBreakerConfig{
				Enabled:          cfg.AnubisCircuitEnabled,
				FailureThreshold: cfg.AnubisCircuitFailureCount,
				OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
			},
			logger,
		), nil
	}

	verifier, err := jwtauth.NewVerifier(jwtauth.Config{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		Leeway:   cfg.JWTLeeway,
	})
	if err != nil {
		return nil, fmt.Errorf("create jwt verifier: %w", err)
	}
	return verifier, nil
}

// newJobQueue returns nil when QStash is off so scoring recomputes inline.
func newJobQueue(cfg config.Config, logger *logging.Logger) (usecase.JobQueue, error) {
	if !cfg.QStashEnabled {
		return nil, nil
	}

	publisher, err := jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
		BaseURL:          cfg.QStashBaseURL,
		Token:            cfg.QStashToken,
		TargetBaseURL:    cfg.QStashTargetBaseURL,
		Retries:          cfg.QStashRetries,
		InternalJobToken: cfg.InternalJobToken,
		Timeout:          cfg.QStashTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.QStashCircuitEnabled,
			FailureThreshold: cfg.QStashCircuitFailureCount,
			OpenTimeout:      cfg.QStashCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create qstash publisher: %w", err)
	}
	return publisher, nil
}
