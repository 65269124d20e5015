package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	contestantservice "ovation/contexts/event-voting/contestant-service"
	contestantpostgres "ovation/contexts/event-voting/contestant-service/adapters/postgres"
	votingengine "ovation/contexts/event-voting/voting-engine"
	votingpostgres "ovation/contexts/event-voting/voting-engine/adapters/postgres"
	votingworkers "ovation/contexts/event-voting/voting-engine/application/workers"
	adminservice "ovation/contexts/identity-access/admin-service"
	adminpostgres "ovation/contexts/identity-access/admin-service/adapters/postgres"
	admintoken "ovation/contexts/identity-access/admin-service/adapters/token"
	"ovation/internal/platform/config"
	"ovation/internal/platform/db"
	"ovation/internal/platform/httpserver"
	"ovation/internal/platform/mailer"

	"github.com/robfig/cron/v3"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres *db.Postgres
	cron     *cron.Cron
	expirer  votingworkers.RecordExpirer
	schedule string
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if err := migrate(pg); err != nil {
		_ = pg.Close()
		return nil, err
	}

	adminRepo := adminpostgres.NewRepository(pg.DB, logger)
	adminModule := adminservice.NewModule(adminservice.Dependencies{
		Admins: adminRepo,
		Tokens: admintoken.NewJWTCodec(cfg.JWTSecret),
		Clock:  adminpostgres.SystemClock{},
		IDGen:  adminpostgres.UUIDGenerator{},
		Logger: logger,
	})

	contestantRepo := contestantpostgres.NewRepository(pg.DB, logger)
	contestantModule := contestantservice.NewModule(contestantservice.Dependencies{
		Contestants: contestantRepo,
		Clock:       contestantpostgres.SystemClock{},
		IDGen:       contestantpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	votingRepo := votingpostgres.NewRepository(pg.DB, logger)
	votingModule := votingengine.NewModule(votingengine.Dependencies{
		Ledger:      votingRepo,
		Tally:       votingRepo,
		Contestants: votingRepo,
		Weights:     adminservice.WeightResolver{Resolver: adminModule.Handler.Resolver},
		Delivery: mailer.Mailer{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			DevMode:  cfg.IsDevelopment(),
			Logger:   logger,
		},
		Clock:     votingpostgres.SystemClock{},
		IDGen:     votingpostgres.UUIDGenerator{},
		CodeGen:   votingpostgres.NewNumericCodeGenerator(),
		RecordTTL: cfg.RecordTTL,
		Logger:    logger,
	})

	server := httpserver.New(votingModule, contestantModule, adminModule, logger, httpserver.Options{
		Addr:           normalizeAddr(cfg.HTTPPort),
		Environment:    cfg.Environment,
		VoteRateBurst:  cfg.VoteRateBurst,
		VoteRateWindow: cfg.VoteRateWindow,
	})
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if err := migrate(pg); err != nil {
		_ = pg.Close()
		return nil, err
	}

	repo := votingpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		cron:     cron.New(),
		expirer: votingworkers.RecordExpirer{
			Ledger: repo,
			Clock:  votingpostgres.SystemClock{},
			Logger: logger,
		},
		schedule: cfg.SweepSchedule,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	_, err := w.cron.AddFunc(w.schedule, func() {
		if err := w.expirer.RunOnce(ctx); err != nil {
			w.logger.Error("record sweep failed",
				"event", "record_sweep_failed",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"error", err.Error(),
			)
		}
	})
	if err != nil {
		return err
	}

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"schedule", w.schedule,
	)

	// One pass up front so a restart never leaves expired records waiting
	// a full schedule interval.
	if err := w.expirer.RunOnce(ctx); err != nil {
		return err
	}

	w.cron.Start()
	<-ctx.Done()

	stopCtx := w.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
	}
	return nil
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

// migrate keeps the schema current on every process start, so a fresh
// deployment works without running cmd/seed first.
func migrate(pg *db.Postgres) error {
	if err := votingpostgres.AutoMigrate(pg.DB); err != nil {
		return err
	}
	if err := contestantpostgres.AutoMigrate(pg.DB); err != nil {
		return err
	}
	return adminpostgres.AutoMigrate(pg.DB)
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
