package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	votingengine "ovation/contexts/event-voting/voting-engine"
	"ovation/contexts/event-voting/voting-engine/domain/entities"
	domainerrors "ovation/contexts/event-voting/voting-engine/domain/errors"
	httptransport "ovation/contexts/event-voting/voting-engine/transport/http"
)

func activeContestant(id string, name string) entities.ContestantProjection {
	return entities.ContestantProjection{ContestantID: id, Name: name, IsActive: true}
}

func issueAndFetchCode(t *testing.T, module votingengine.Module, email string, contestantID string) string {
	t.Helper()
	_, err := module.Handler.IssueCodeHandler(context.Background(), httptransport.IssueCodeRequest{
		Email:        email,
		ContestantID: contestantID,
	}, "127.0.0.1", "unit-test")
	if err != nil {
		t.Fatalf("issue code failed: %v", err)
	}
	sent := module.Store.SentCodes()
	if len(sent) == 0 {
		t.Fatalf("expected a delivered code")
	}
	return sent[len(sent)-1].Code
}

func TestVotingTwoPhaseHappyPath(t *testing.T) {
	module := votingengine.NewInMemoryModule(nil, nil)
	module.Store.SetContestant(activeContestant("contestant-1", "Aurora Belle"))

	issueResp, err := module.Handler.IssueCodeHandler(context.Background(), httptransport.IssueCodeRequest{
		Email:        "Alice@Example.COM",
		ContestantID: "contestant-1",
	}, "127.0.0.1", "unit-test")
	if err != nil {
		t.Fatalf("issue code failed: %v", err)
	}
	if issueResp.IsAdmin || issueResp.VoteWeight != 1 {
		t.Fatalf("expected public weight 1, got admin=%v weight=%d", issueResp.IsAdmin, issueResp.VoteWeight)
	}

	sent := module.Store.SentCodes()
	if len(sent) != 1 {
		t.Fatalf("expected one delivered code, got %d", len(sent))
	}
	if sent[0].Email != "alice@example.com" {
		t.Fatalf("expected normalized recipient, got %s", sent[0].Email)
	}
	if sent[0].ContestantName != "Aurora Belle" {
		t.Fatalf("expected contestant name in delivery, got %s", sent[0].ContestantName)
	}

	submitResp, err := module.Handler.SubmitCodeHandler(context.Background(), httptransport.SubmitCodeRequest{
		Email:            "alice@example.com",
		ContestantID:     "contestant-1",
		VerificationCode: sent[0].Code,
	})
	if err != nil {
		t.Fatalf("submit code failed: %v", err)
	}
	if submitResp.TotalVotes != 1 {
		t.Fatalf("expected total 1, got %d", submitResp.TotalVotes)
	}

	voters := module.Store.Voters("contestant-1")
	if len(voters) != 1 || voters[0].Email != "alice@example.com" {
		t.Fatalf("expected voter entry for alice, got %+v", voters)
	}
}

func TestVotingCodeIsSingleUse(t *testing.T) {
	module := votingengine.NewInMemoryModule(nil, nil)
	module.Store.SetContestant(activeContestant("contestant-1", "Aurora Belle"))

	code := issueAndFetchCode(t, module, "alice@example.com", "contestant-1")
	if _, err := module.Handler.SubmitCodeHandler(context.Background(), httptransport.SubmitCodeRequest{
		Email:            "alice@example.com",
		ContestantID:     "contestant-1",
		VerificationCode: code,
	}); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	_, err := module.Handler.SubmitCodeHandler(context.Background(), httptransport.SubmitCodeRequest{
		Email:            "alice@example.com",
		ContestantID:     "contestant-1",
		VerificationCode: code,
	})
	if !errors.Is(err, domainerrors.ErrInvalidOrUsedCode) {
		t.Fatalf("expected ErrInvalidOrUsedCode on replay, got %v", err)
	}
}

func TestVotingOneVotePerVoterAcrossContestants(t *testing.T) {
	module := votingengine.NewInMemoryModule(nil, nil)
	module.Store.SetContestant(activeContestant("contestant-1", "Aurora Belle"))
	module.Store.SetContestant(activeContestant("contestant-2", "Marcus Vane"))

	code := issueAndFetchCode(t, module, "alice@example.com", "contestant-1")
	if _, err := module.Handler.SubmitCodeHandler(context.Background(), httptransport.SubmitCodeRequest{
		Email:            "alice@example.com",
		ContestantID:     "contestant-1",
		VerificationCode: code,
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	_, err := module.Handler.IssueCodeHandler(context.Background(), httptransport.IssueCodeRequest{
		Email:        "alice@example.com",
		ContestantID: "contestant-2",
	}, "127.0.0.1", "unit-test")
	if !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted for second contestant, got %v", err)
	}
}

func TestVotingReissueSupersedesEarlierCode(t *testing.T) {
	module := votingengine.NewInMemoryModule(nil, nil)
	module.Store.SetContestant(activeContestant("contestant-1", "Aurora Belle"))

	first := issueAndFetchCode(t, module, "alice@example.com", "contestant-1")
	second := issueAndFetchCode(t, module, "alice@example.com", "contestant-1")
	if first == second {
		t.Fatalf("expected a fresh code on re-issuance")
	}

	_, err := module.Handler.SubmitCodeHandler(context.Background(), httptransport.SubmitCodeRequest{
		Email:            "alice@example.com",
		ContestantID:     "contestant-1",
		VerificationCode: first,
	})
	if !errors.Is(err, domainerrors.ErrInvalidOrUsedCode) {
		t.Fatalf("expected superseded code to be rejected, got %v", err)
	}

	resp, err := module.Handler.SubmitCodeHandler(context.Background(), httptransport.SubmitCodeRequest{
		Email:            "alice@example.com",
		ContestantID:     "contestant-1",
		VerificationCode: second,
	})
	if err != nil {
		t.Fatalf("submit with latest code failed: %v", err)
	}
	if resp.TotalVotes != 1 {
		t.Fatalf("expected total 1, got %d", resp.TotalVotes)
	}
}

func TestVotingAdminWeightApplied(t *testing.T) {
	module := votingengine.NewInMemoryModule(nil, nil)
	module.Store.SetContestant(activeContestant("contestant-1", "Aurora Belle"))
	module.Store.SetAdminWeight("boss@example.com", 20)

	issueResp, err := module.Handler.IssueCodeHandler(context.Background(), httptransport.IssueCodeRequest{
		Email:        "boss@example.com",
		ContestantID: "contestant-1",
	}, "127.0.0.1", "unit-test")
	if err != nil {
		t.Fatalf("issue code failed: %v", err)
	}
	if !issueResp.IsAdmin || issueResp.VoteWeight != 20 {
		t.Fatalf("expected admin weight 20, got admin=%v weight=%d", issueResp.IsAdmin, issueResp.VoteWeight)
	}

	sent := module.Store.SentCodes()
	submitResp, err := module.Handler.SubmitCodeHandler(context.Background(), httptransport.SubmitCodeRequest{
		Email:            "boss@example.com",
		ContestantID:     "contestant-1",
		VerificationCode: sent[0].Code,
	})
	if err != nil {
		t.Fatalf("submit code failed: %v", err)
	}
	if submitResp.TotalVotes != 20 {
		t.Fatalf("expected weighted total 20, got %d", submitResp.TotalVotes)
	}
}

func TestVotingWeightFrozenAtIssuance(t *testing.T) {
	module := votingengine.NewInMemoryModule(nil, nil)
	module.Store.SetContestant(activeContestant("contestant-1", "Aurora Belle"))
	module.Store.SetAdminWeight("boss@example.com", 5)

	code := issueAndFetchCode(t, module, "boss@example.com", "contestant-1")

	// Weight change between issuance and verification must not affect the
	// committed vote.
	module.Store.SetAdminWeight("boss@example.com", 50)

	resp, err := module.Handler.SubmitCodeHandler(context.Background(), httptransport.SubmitCodeRequest{
		Email:            "boss@example.com",
		ContestantID:     "contestant-1",
		VerificationCode: code,
	})
	if err != nil {
		t.Fatalf("submit code failed: %v", err)
	}
	if resp.TotalVotes != 5 {
		t.Fatalf("expected issuance-time weight 5, got %d", resp.TotalVotes)
	}
}

func TestVotingExpiredCodeRejected(t *testing.T) {
	module := votingengine.NewInMemoryModule(nil, nil)
	module.Store.SetContestant(activeContestant("contestant-1", "Aurora Belle"))

	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	module.Store.SetNow(issuedAt)
	code := issueAndFetchCode(t, module, "alice@example.com", "contestant-1")

	module.Store.SetNow(issuedAt.Add(61 * time.Minute))
	_, err := module.Handler.SubmitCodeHandler(context.Background(), httptransport.SubmitCodeRequest{
		Email:            "alice@example.com",
		ContestantID:     "contestant-1",
		VerificationCode: code,
	})
	if !errors.Is(err, domainerrors.ErrInvalidOrUsedCode) {
		t.Fatalf("expected expired code to be rejected, got %v", err)
	}
}

func TestVotingDeliveryFailureKeepsRecord(t *testing.T) {
	module := votingengine.NewInMemoryModule(nil, nil)
	module.Store.SetContestant(activeContestant("contestant-1", "Aurora Belle"))
	module.Store.FailDelivery(true)

	_, err := module.Handler.IssueCodeHandler(context.Background(), httptransport.IssueCodeRequest{
		Email:        "alice@example.com",
		ContestantID: "contestant-1",
	}, "127.0.0.1", "unit-test")
	if !errors.Is(err, domainerrors.ErrDeliveryFailure) {
		t.Fatalf("expected ErrDeliveryFailure, got %v", err)
	}

	// A retry after the mailer recovers issues a fresh code for the same pair.
	module.Store.FailDelivery(false)
	code := issueAndFetchCode(t, module, "alice@example.com", "contestant-1")
	if _, err := module.Handler.SubmitCodeHandler(context.Background(), httptransport.SubmitCodeRequest{
		Email:            "alice@example.com",
		ContestantID:     "contestant-1",
		VerificationCode: code,
	}); err != nil {
		t.Fatalf("submit after retry failed: %v", err)
	}
}

func TestVotingInactiveContestantRefused(t *testing.T) {
	module := votingengine.NewInMemoryModule(nil, nil)
	module.Store.SetContestant(entities.ContestantProjection{
		ContestantID: "contestant-1",
		Name:         "Aurora Belle",
		IsActive:     false,
	})

	_, err := module.Handler.IssueCodeHandler(context.Background(), httptransport.IssueCodeRequest{
		Email:        "alice@example.com",
		ContestantID: "contestant-1",
	}, "127.0.0.1", "unit-test")
	if !errors.Is(err, domainerrors.ErrContestantNotFound) {
		t.Fatalf("expected ErrContestantNotFound, got %v", err)
	}
}

func TestVotingInvalidEmailRefused(t *testing.T) {
	module := votingengine.NewInMemoryModule(nil, nil)
	module.Store.SetContestant(activeContestant("contestant-1", "Aurora Belle"))

	for _, email := range []string{"", "not-an-email", "a@b", "two words@example.com"} {
		_, err := module.Handler.IssueCodeHandler(context.Background(), httptransport.IssueCodeRequest{
			Email:        email,
			ContestantID: "contestant-1",
		}, "127.0.0.1", "unit-test")
		if !errors.Is(err, domainerrors.ErrInvalidVoteInput) {
			t.Fatalf("expected ErrInvalidVoteInput for %q, got %v", email, err)
		}
	}
}

func TestVotingResetClearsTalliesAndLedger(t *testing.T) {
	module := votingengine.NewInMemoryModule(nil, nil)
	module.Store.SetContestant(activeContestant("contestant-1", "Aurora Belle"))

	code := issueAndFetchCode(t, module, "alice@example.com", "contestant-1")
	if _, err := module.Handler.SubmitCodeHandler(context.Background(), httptransport.SubmitCodeRequest{
		Email:            "alice@example.com",
		ContestantID:     "contestant-1",
		VerificationCode: code,
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// An unverified code issued before the reset must die with the ledger.
	preResetCode := issueAndFetchCode(t, module, "bob@example.com", "contestant-1")

	if _, err := module.Handler.ResetVotesHandler(context.Background()); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	if _, err := module.Handler.SubmitCodeHandler(context.Background(), httptransport.SubmitCodeRequest{
		Email:            "bob@example.com",
		ContestantID:     "contestant-1",
		VerificationCode: preResetCode,
	}); !errors.Is(err, domainerrors.ErrInvalidOrUsedCode) {
		t.Fatalf("expected pre-reset code rejected, got %v", err)
	}

	// After a reset the voter can go through the whole flow again.
	code = issueAndFetchCode(t, module, "alice@example.com", "contestant-1")
	resp, err := module.Handler.SubmitCodeHandler(context.Background(), httptransport.SubmitCodeRequest{
		Email:            "alice@example.com",
		ContestantID:     "contestant-1",
		VerificationCode: code,
	})
	if err != nil {
		t.Fatalf("submit after reset failed: %v", err)
	}
	if resp.TotalVotes != 1 {
		t.Fatalf("expected total 1 after reset, got %d", resp.TotalVotes)
	}
}

func TestVotingStatisticsAndDashboard(t *testing.T) {
	module := votingengine.NewInMemoryModule(nil, nil)
	module.Store.SetContestant(activeContestant("contestant-1", "Aurora Belle"))
	module.Store.SetContestant(activeContestant("contestant-2", "Marcus Vane"))
	module.Store.SetAdminWeight("boss@example.com", 10)

	for _, voter := range []struct {
		email        string
		contestantID string
	}{
		{"alice@example.com", "contestant-1"},
		{"bob@example.com", "contestant-1"},
		{"boss@example.com", "contestant-2"},
	} {
		code := issueAndFetchCode(t, module, voter.email, voter.contestantID)
		if _, err := module.Handler.SubmitCodeHandler(context.Background(), httptransport.SubmitCodeRequest{
			Email:            voter.email,
			ContestantID:     voter.contestantID,
			VerificationCode: code,
		}); err != nil {
			t.Fatalf("submit for %s failed: %v", voter.email, err)
		}
	}

	stats, err := module.Handler.StatisticsHandler(context.Background())
	if err != nil {
		t.Fatalf("statistics failed: %v", err)
	}
	byContestant := make(map[string]httptransport.ContestantStatisticsItem, len(stats.Items))
	for _, item := range stats.Items {
		byContestant[item.ContestantID] = item
	}
	if item := byContestant["contestant-1"]; item.TotalVotes != 2 || item.VoterCount != 2 || item.AdminVotes != 0 {
		t.Fatalf("unexpected contestant-1 statistics: %+v", item)
	}
	// Admin votes report weighted totals, same as the overall sum.
	if item := byContestant["contestant-2"]; item.TotalVotes != 10 || item.VoterCount != 1 || item.AdminVotes != 10 {
		t.Fatalf("unexpected contestant-2 statistics: %+v", item)
	}

	dashboard, err := module.Handler.DashboardHandler(context.Background())
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	// Total votes counts verified records, not weight.
	if dashboard.Statistics.TotalVotes != 3 {
		t.Fatalf("expected 3 verified votes, got %d", dashboard.Statistics.TotalVotes)
	}
	if dashboard.Statistics.TotalVoters != 3 {
		t.Fatalf("expected 3 distinct voters, got %d", dashboard.Statistics.TotalVoters)
	}
	if dashboard.Statistics.TotalContestants != 2 {
		t.Fatalf("expected 2 contestants, got %d", dashboard.Statistics.TotalContestants)
	}
	if len(dashboard.Contestants) != 2 || dashboard.Contestants[0].ContestantID != "contestant-2" {
		t.Fatalf("expected contestant-2 leading the standings, got %+v", dashboard.Contestants)
	}
	if len(dashboard.RecentVotes) != 3 {
		t.Fatalf("expected 3 recent votes, got %d", len(dashboard.RecentVotes))
	}
}
