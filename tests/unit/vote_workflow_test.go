package unit

import (
	"context"
	"testing"
	"time"

	votingengine "ovation/contexts/event-voting/voting-engine"
	votingmemory "ovation/contexts/event-voting/voting-engine/adapters/memory"
	httptransport "ovation/contexts/event-voting/voting-engine/transport/http"
	adminservice "ovation/contexts/identity-access/admin-service"
)

// Wires the voting engine against the real admin-service resolver instead of
// the voting store's own stub, covering the cross-context weight handoff.
func TestVoteWorkflowWithAdminServiceWeights(t *testing.T) {
	admins := adminservice.NewInMemoryModule(nil, "test-secret", nil)
	if _, err := admins.Handler.Admins.Register(context.Background(), "boss@example.com", "s3cret", 20); err != nil {
		t.Fatalf("register admin failed: %v", err)
	}

	store := votingmemory.NewStore(nil)
	voting := votingengine.NewModule(votingengine.Dependencies{
		Ledger:      store,
		Tally:       store,
		Contestants: store,
		Weights:     adminservice.WeightResolver{Resolver: admins.Handler.Resolver},
		Delivery:    store,
		Clock:       store,
		IDGen:       store,
		CodeGen:     store,
		RecordTTL:   time.Hour,
	})
	voting.Store = store
	store.SetContestant(activeContestant("contestant-1", "Aurora Belle"))

	aliceCode := issueAndFetchCode(t, voting, "alice@example.com", "contestant-1")
	resp, err := voting.Handler.SubmitCodeHandler(context.Background(), httptransport.SubmitCodeRequest{
		Email:            "alice@example.com",
		ContestantID:     "contestant-1",
		VerificationCode: aliceCode,
	})
	if err != nil {
		t.Fatalf("alice submit failed: %v", err)
	}
	if resp.TotalVotes != 1 || resp.IsAdmin {
		t.Fatalf("expected public total 1, got %+v", resp)
	}

	bossCode := issueAndFetchCode(t, voting, "boss@example.com", "contestant-1")
	resp, err = voting.Handler.SubmitCodeHandler(context.Background(), httptransport.SubmitCodeRequest{
		Email:            "boss@example.com",
		ContestantID:     "contestant-1",
		VerificationCode: bossCode,
	})
	if err != nil {
		t.Fatalf("boss submit failed: %v", err)
	}
	if resp.TotalVotes != 21 || !resp.IsAdmin || resp.VoteWeight != 20 {
		t.Fatalf("expected weighted total 21, got %+v", resp)
	}
}
