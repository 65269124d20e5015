package workers

import (
	"context"
	"log/slog"
	"time"

	application "ovation/contexts/event-voting/voting-engine/application"
	"ovation/contexts/event-voting/voting-engine/ports"
)

// RecordExpirer sweeps verification records that crossed expires_at. Postgres
// has no TTL index, so the worker process runs this on a schedule; SubmitCode
// still checks expiry itself so a not-yet-swept record cannot verify.
type RecordExpirer struct {
	Ledger ports.VerificationLedger
	Clock  ports.Clock
	Logger *slog.Logger
}

func (e RecordExpirer) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(e.Logger)
	now := time.Now().UTC()
	if e.Clock != nil {
		now = e.Clock.Now().UTC()
	}

	expired, err := e.Ledger.DeleteExpired(ctx, now)
	if err != nil {
		logger.Error("record expiry sweep failed",
			"event", "voting_record_expiry_failed",
			"module", "event-voting/voting-engine",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if expired > 0 {
		logger.Info("record expiry sweep completed",
			"event", "voting_record_expiry_completed",
			"module", "event-voting/voting-engine",
			"layer", "worker",
			"expired_count", expired,
		)
	}
	return nil
}
