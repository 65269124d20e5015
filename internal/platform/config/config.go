package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	Environment string
	HTTPPort    string
	PostgresDSN string
	JWTSecret   string

	RecordTTL     time.Duration
	SweepSchedule string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// Vote endpoints allow VoteRateBurst requests per source address per
	// VoteRateWindow, matching the upstream abuse policy.
	VoteRateBurst  int
	VoteRateWindow time.Duration
}

func Load() (Config, error) {
	// Local development convenience only; missing .env is not an error.
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "ovation"
	}

	environment := strings.ToLower(strings.TrimSpace(os.Getenv("ENVIRONMENT")))
	if environment == "" {
		environment = "development"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		ServiceName: service,
		Environment: environment,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		RecordTTL:     envDuration("VERIFICATION_TTL", time.Hour),
		SweepSchedule: envString("SWEEP_SCHEDULE", "@every 1m"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     envString("SMTP_PORT", "587"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),

		VoteRateBurst:  envInt("VOTE_RATE_BURST", 50),
		VoteRateWindow: envDuration("VOTE_RATE_WINDOW", 15*time.Minute),
	}, nil
}

func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func envString(name string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	return value
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
