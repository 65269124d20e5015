package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ovation/contexts/event-voting/voting-engine/domain/entities"
	domainerrors "ovation/contexts/event-voting/voting-engine/domain/errors"
)

func TestConsumeFlipsExactlyOnceUnderConcurrency(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore([]entities.VerificationRecord{{
		RecordID:     "record-1",
		ContestantID: "contestant-1",
		VoterEmail:   "alice@example.com",
		Code:         "123456",
		CreatedAt:    now,
		ExpiresAt:    now.Add(time.Hour),
	}})

	const submitters = 32
	var wg sync.WaitGroup
	results := make(chan error, submitters)
	for i := 0; i < submitters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Consume(context.Background(), "alice@example.com", "contestant-1", "123456", now)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domainerrors.ErrInvalidOrUsedCode):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one successful flip, got %d", succeeded)
	}
	if rejected != submitters-1 {
		t.Fatalf("expected %d rejections, got %d", submitters-1, rejected)
	}
}

func TestCreateRecordSupersedesUnverifiedPair(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(nil)

	first := entities.VerificationRecord{
		RecordID:     "record-1",
		ContestantID: "contestant-1",
		VoterEmail:   "alice@example.com",
		Code:         "111111",
		CreatedAt:    now,
		ExpiresAt:    now.Add(time.Hour),
	}
	if err := store.CreateRecord(context.Background(), first); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	second := first
	second.RecordID = "record-2"
	second.Code = "222222"
	if err := store.CreateRecord(context.Background(), second); err != nil {
		t.Fatalf("supersede failed: %v", err)
	}

	if _, err := store.Consume(context.Background(), "alice@example.com", "contestant-1", "111111", now); !errors.Is(err, domainerrors.ErrInvalidOrUsedCode) {
		t.Fatalf("expected superseded code rejected, got %v", err)
	}
	if _, err := store.Consume(context.Background(), "alice@example.com", "contestant-1", "222222", now); err != nil {
		t.Fatalf("expected latest code accepted, got %v", err)
	}
}

func TestCreateRecordConflictsWithVerifiedPair(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(nil)

	record := entities.VerificationRecord{
		RecordID:     "record-1",
		ContestantID: "contestant-1",
		VoterEmail:   "alice@example.com",
		Code:         "111111",
		CreatedAt:    now,
		ExpiresAt:    now.Add(time.Hour),
	}
	if err := store.CreateRecord(context.Background(), record); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := store.Consume(context.Background(), "alice@example.com", "contestant-1", "111111", now); err != nil {
		t.Fatalf("consume failed: %v", err)
	}

	replacement := record
	replacement.RecordID = "record-2"
	replacement.Code = "333333"
	if err := store.CreateRecord(context.Background(), replacement); !errors.Is(err, domainerrors.ErrConflict) {
		t.Fatalf("expected ErrConflict against verified pair, got %v", err)
	}
}
