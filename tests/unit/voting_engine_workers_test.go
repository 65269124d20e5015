package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	votingengine "ovation/contexts/event-voting/voting-engine"
	"ovation/contexts/event-voting/voting-engine/application/workers"
	domainerrors "ovation/contexts/event-voting/voting-engine/domain/errors"
	httptransport "ovation/contexts/event-voting/voting-engine/transport/http"
)

func TestRecordExpirerSweepsOnlyExpired(t *testing.T) {
	module := votingengine.NewInMemoryModule(nil, nil)
	module.Store.SetContestant(activeContestant("contestant-1", "Aurora Belle"))

	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	module.Store.SetNow(issuedAt)
	staleCode := issueAndFetchCode(t, module, "stale@example.com", "contestant-1")

	module.Store.SetNow(issuedAt.Add(45 * time.Minute))
	freshCode := issueAndFetchCode(t, module, "fresh@example.com", "contestant-1")

	module.Store.SetNow(issuedAt.Add(70 * time.Minute))
	expirer := workers.RecordExpirer{Ledger: module.Store, Clock: module.Store}
	if err := expirer.RunOnce(context.Background()); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	// The stale code is gone even if the voter presents it in time terms
	// later; the fresh one still works.
	_, err := module.Handler.SubmitCodeHandler(context.Background(), httptransport.SubmitCodeRequest{
		Email:            "stale@example.com",
		ContestantID:     "contestant-1",
		VerificationCode: staleCode,
	})
	if !errors.Is(err, domainerrors.ErrInvalidOrUsedCode) {
		t.Fatalf("expected swept code to be rejected, got %v", err)
	}

	if _, err := module.Handler.SubmitCodeHandler(context.Background(), httptransport.SubmitCodeRequest{
		Email:            "fresh@example.com",
		ContestantID:     "contestant-1",
		VerificationCode: freshCode,
	}); err != nil {
		t.Fatalf("fresh code submit failed: %v", err)
	}
}

func TestRecordExpirerSweepsVerifiedButTallySurvives(t *testing.T) {
	module := votingengine.NewInMemoryModule(nil, nil)
	module.Store.SetContestant(activeContestant("contestant-1", "Aurora Belle"))

	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	module.Store.SetNow(issuedAt)
	code := issueAndFetchCode(t, module, "alice@example.com", "contestant-1")
	if _, err := module.Handler.SubmitCodeHandler(context.Background(), httptransport.SubmitCodeRequest{
		Email:            "alice@example.com",
		ContestantID:     "contestant-1",
		VerificationCode: code,
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// Verified records age out with the same TTL; the ledger is a buffer,
	// the committed tally is the durable record.
	module.Store.SetNow(issuedAt.Add(2 * time.Hour))
	expirer := workers.RecordExpirer{Ledger: module.Store, Clock: module.Store}
	if err := expirer.RunOnce(context.Background()); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	dashboard, err := module.Handler.DashboardHandler(context.Background())
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	if len(dashboard.Contestants) != 1 || dashboard.Contestants[0].Votes != 1 {
		t.Fatalf("expected tally to survive the sweep, got %+v", dashboard.Contestants)
	}
}
