package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"strings"

	contestantpostgres "ovation/contexts/event-voting/contestant-service/adapters/postgres"
	contestantcommands "ovation/contexts/event-voting/contestant-service/application/commands"
	contestanterrors "ovation/contexts/event-voting/contestant-service/domain/errors"
	votingpostgres "ovation/contexts/event-voting/voting-engine/adapters/postgres"
	adminpostgres "ovation/contexts/identity-access/admin-service/adapters/postgres"
	admincommands "ovation/contexts/identity-access/admin-service/application/commands"
	adminerrors "ovation/contexts/identity-access/admin-service/domain/errors"
	"ovation/internal/platform/config"
	"ovation/internal/platform/db"
)

// Seed process. Migrates the schema and loads a development data set:
// a handful of contestants plus one weighted admin account.
func main() {
	log.Println("ovation seed starting")
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("connect postgres failed: %v", err)
	}
	defer func() { _ = pg.Close() }()

	if err := votingpostgres.AutoMigrate(pg.DB); err != nil {
		log.Fatalf("migrate voting schema failed: %v", err)
	}
	if err := contestantpostgres.AutoMigrate(pg.DB); err != nil {
		log.Fatalf("migrate contestant schema failed: %v", err)
	}
	if err := adminpostgres.AutoMigrate(pg.DB); err != nil {
		log.Fatalf("migrate admin schema failed: %v", err)
	}

	ctx := context.Background()
	logger := slog.Default().With("service", cfg.ServiceName, "process", "seed")

	contestants := contestantcommands.ContestantUseCase{
		Contestants: contestantpostgres.NewRepository(pg.DB, logger),
		Clock:       contestantpostgres.SystemClock{},
		IDGen:       contestantpostgres.UUIDGenerator{},
		Logger:      logger,
	}
	seedContestants := []contestantcommands.CreateContestantCommand{
		{Name: "Aurora Belle", Description: "Vocalist from the northern heats.", AvatarURL: "/uploads/aurora.png"},
		{Name: "Marcus Vane", Description: "Spoken word finalist, two seasons running.", AvatarURL: "/uploads/marcus.png"},
		{Name: "The Kindred Duo", Description: "Acoustic duo, audience favorite.", AvatarURL: "/uploads/kindred.png"},
	}
	for _, cmd := range seedContestants {
		if _, err := contestants.Create(ctx, cmd); err != nil {
			if errors.Is(err, contestanterrors.ErrNameTaken) {
				log.Printf("contestant %q already seeded, skipping", cmd.Name)
				continue
			}
			log.Fatalf("seed contestant %q failed: %v", cmd.Name, err)
		}
	}

	admins := admincommands.AdminUseCase{
		Admins: adminpostgres.NewRepository(pg.DB, logger),
		Clock:  adminpostgres.SystemClock{},
		IDGen:  adminpostgres.UUIDGenerator{},
		Logger: logger,
	}
	adminEmail := envOr("SEED_ADMIN_EMAIL", "admin@ovation.local")
	adminPassword := envOr("SEED_ADMIN_PASSWORD", "change-me-now")
	if _, err := admins.Register(ctx, adminEmail, adminPassword, 10); err != nil {
		if errors.Is(err, adminerrors.ErrEmailTaken) {
			log.Printf("admin %s already seeded, skipping", adminEmail)
		} else {
			log.Fatalf("seed admin failed: %v", err)
		}
	}

	log.Println("ovation seed finished")
}

func envOr(name string, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(name)); value != "" {
		return value
	}
	return fallback
}
