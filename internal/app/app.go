package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/golf-tournament/internal/config"
	"github.com/riskibarqy/golf-tournament/internal/domain/jobscheduler"
	"github.com/riskibarqy/golf-tournament/internal/domain/round"
	"github.com/riskibarqy/golf-tournament/internal/domain/standing"
	"github.com/riskibarqy/golf-tournament/internal/domain/tournament"
	"github.com/riskibarqy/golf-tournament/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/golf-tournament/internal/infrastructure/jobqueue"
	cacherepo "github.com/riskibarqy/golf-tournament/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/golf-tournament/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/golf-tournament/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/golf-tournament/internal/interfaces/httpapi"
	"github.com/riskibarqy/golf-tournament/internal/observability"
	"github.com/riskibarqy/golf-tournament/internal/platform/cache"
	"github.com/riskibarqy/golf-tournament/internal/platform/logging"
	"github.com/riskibarqy/golf-tournament/internal/usecase"
)

const dbPingTimeout = 5 * time.Second

// App is the assembled HTTP service. Close releases storage handles after the server stops.
type App struct {
	Server  *http.Server
	closers []func() error
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type repositories struct {
	tournaments tournament.Repository
	rounds      round.Repository
	standings   standing.Repository
	dispatches  jobscheduler.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{}
	repos, err := a.buildRepositories(ctx, cfg, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}
	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		if err := metrics.RegisterCache("standings", store); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("register cache metrics: %w", err)
		}
		repos.standings = cacherepo.NewStandingRepository(repos.standings, store)
	}

	standingsSvc := usecase.NewStandingsService(
		repos.tournaments,
		repos.rounds,
		repos.standings,
		usecase.StandingsConfig{
			FetchWorkers: cfg.StandingsFetchWorkers,
			BatchWorkers: cfg.StandingsBatchWorkers,
		},
		logger,
	)
	querySvc := usecase.NewStandingsQueryService(repos.tournaments, repos.standings)

	var dispatcher *usecase.RecalculationDispatcher
	if cfg.QStashEnabled {
		publisher := jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker:   cfg.QStashCircuit,
		}, logger)
		dispatcher = usecase.NewRecalculationDispatcher(standingsSvc, publisher, repos.dispatches, usecase.DispatcherConfig{
			DedupWindow: cfg.RecalculateDedup,
			Delay:       cfg.RecalculateDelay,
		}, logger)
	}

	routerCfg := httpapi.RouterConfig{
		RecalculateLimiter: httpapi.NewIPRateLimiter(cfg.RecalculateRateLimit, cfg.RecalculateBurst),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
	}
	if cfg.AuthEnabled {
		routerCfg.Verifier = anubis.NewClient(&http.Client{Timeout: cfg.AnubisTimeout}, anubis.Config{
			BaseURL:        cfg.AnubisBaseURL,
			IntrospectPath: cfg.AnubisIntrospectURL,
			AdminKey:       cfg.AnubisAdminKey,
			CacheTTL:       cfg.CacheTTL,
			CircuitBreaker: cfg.AnubisCircuit,
		}, logger)
	}
	if metrics != nil {
		standingsSvc.WithObserver(metrics)
		routerCfg.Metrics = metrics
	}

	handler := httpapi.NewHandler(standingsSvc, querySvc, dispatcher, logger)
	a.Server = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(handler, routerCfg, logger),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	logger.Info("app assembled",
		"storage", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"auth_enabled", cfg.AuthEnabled,
		"qstash_enabled", cfg.QStashEnabled,
		"metrics_enabled", cfg.MetricsEnabled,
	)
	return a, nil
}

func (a *App) buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		a.closers = append(a.closers, db.Close)
		logger.Info("postgres storage connected", "db_name", dbNameFromURL(cfg.DBURL))

		return repositories{
			tournaments: postgres.NewTournamentRepository(db),
			rounds:      postgres.NewRoundRepository(db),
			standings:   postgres.NewStandingRepository(db),
			dispatches:  postgres.NewJobDispatchRepository(db),
		}, nil
	case config.StorageMemory, "":
		logger.Warn("using seeded in-memory storage", "tournaments", len(memory.SeedTournaments()))
		return repositories{
			tournaments: memory.NewTournamentRepository(memory.SeedTournaments(), memory.SeedRounds(), memory.SeedPlayers()),
			rounds:      memory.NewRoundRepository(memory.SeedRoundFacts()),
			standings:   memory.NewStandingRepository(),
			dispatches:  memory.NewJobDispatchRepository(),
		}, nil
	default:
		return repositories{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := NormalizeDBURL(cfg.DBURL, cfg.DBBinaryParameters, cfg.ServiceName)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}
