package commands

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	application "ovation/contexts/event-voting/voting-engine/application"
	"ovation/contexts/event-voting/voting-engine/domain/entities"
	domainerrors "ovation/contexts/event-voting/voting-engine/domain/errors"
	"ovation/contexts/event-voting/voting-engine/ports"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IssueCodeCommand is the write-model input for verification-code issuance.
type IssueCodeCommand struct {
	Email        string
	ContestantID string
	IPAddress    string
	UserAgent    string
}

// IssueCodeResult echoes the issuance-time weight snapshot. The code itself
// travels out-of-band and is never part of the result.
type IssueCodeResult struct {
	IsAdmin    bool
	VoteWeight int
}

type SubmitCodeCommand struct {
	Email        string
	ContestantID string
	Code         string
}

type SubmitCodeResult struct {
	VoteWeight int
	IsAdmin    bool
	TotalVotes int
}

// VoteUseCase orchestrates the two-phase vote workflow: code issuance with a
// frozen weight snapshot, the exactly-once ledger flip, and the weighted tally
// increment that only a successful flip can trigger.
type VoteUseCase struct {
	Ledger      ports.VerificationLedger
	Tally       ports.TallyRepository
	Contestants ports.ContestantDirectory
	Weights     ports.WeightResolver
	Delivery    ports.CodeDelivery
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	CodeGen     ports.CodeGenerator
	RecordTTL   time.Duration
	Logger      *slog.Logger
}

// IssueCode creates an unverified ledger record and then attempts delivery.
// The record is committed before the email leaves the process: a delivery
// failure surfaces as ErrDeliveryFailure while the record stays and expires
// naturally, so the caller may retry issuance.
func (uc VoteUseCase) IssueCode(ctx context.Context, cmd IssueCodeCommand) (IssueCodeResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	email, err := NormalizeEmail(cmd.Email)
	if err != nil {
		logger.Warn("code issuance validation failed",
			"event", "voting_issue_validation_failed",
			"module", "event-voting/voting-engine",
			"layer", "application",
			"contestant_id", strings.TrimSpace(cmd.ContestantID),
		)
		return IssueCodeResult{}, err
	}
	contestantID := strings.TrimSpace(cmd.ContestantID)
	if contestantID == "" {
		return IssueCodeResult{}, domainerrors.ErrInvalidVoteInput
	}

	voted, err := uc.Ledger.HasVerifiedRecord(ctx, email)
	if err != nil {
		return IssueCodeResult{}, err
	}
	if voted {
		logger.Info("code issuance refused for verified voter",
			"event", "voting_issue_already_voted",
			"module", "event-voting/voting-engine",
			"layer", "application",
			"contestant_id", contestantID,
		)
		return IssueCodeResult{}, domainerrors.ErrAlreadyVoted
	}

	contestant, err := uc.Contestants.GetContestant(ctx, contestantID)
	if err != nil {
		return IssueCodeResult{}, err
	}
	if !contestant.IsActive {
		return IssueCodeResult{}, domainerrors.ErrContestantNotFound
	}

	grant, err := uc.Weights.Resolve(ctx, email)
	if err != nil {
		return IssueCodeResult{}, err
	}

	now := uc.now()
	recordID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return IssueCodeResult{}, err
	}
	code, err := uc.CodeGen.NewCode(ctx)
	if err != nil {
		return IssueCodeResult{}, err
	}
	record := entities.VerificationRecord{
		RecordID:     recordID,
		ContestantID: contestantID,
		VoterEmail:   email,
		Code:         code,
		IsVerified:   false,
		IsAdmin:      grant.IsAdmin,
		VoteWeight:   grant.Weight,
		IPAddress:    strings.TrimSpace(cmd.IPAddress),
		UserAgent:    strings.TrimSpace(cmd.UserAgent),
		CreatedAt:    now,
		ExpiresAt:    now.Add(uc.resolveRecordTTL()),
	}
	if err := uc.Ledger.CreateRecord(ctx, record); err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			// Lost a race against a concurrent verification for the same
			// pair; treat the voter as already served.
			return IssueCodeResult{}, domainerrors.ErrAlreadyVoted
		}
		return IssueCodeResult{}, err
	}
	logger.Info("verification code issued",
		"event", "voting_code_issued",
		"module", "event-voting/voting-engine",
		"layer", "application",
		"record_id", record.RecordID,
		"contestant_id", contestantID,
		"is_admin", grant.IsAdmin,
		"vote_weight", grant.Weight,
		"expires_at", record.ExpiresAt.Format(time.RFC3339),
	)

	if err := uc.Delivery.SendVerificationCode(ctx, email, code, contestant.Name); err != nil {
		logger.Error("verification code delivery failed",
			"event", "voting_code_delivery_failed",
			"module", "event-voting/voting-engine",
			"layer", "application",
			"record_id", record.RecordID,
			"contestant_id", contestantID,
			"error", err.Error(),
		)
		return IssueCodeResult{}, domainerrors.ErrDeliveryFailure
	}
	return IssueCodeResult{IsAdmin: grant.IsAdmin, VoteWeight: grant.Weight}, nil
}

// SubmitCode performs the verify-and-commit phase. The ledger flip is the
// gate: the tally increment runs only after the flip succeeds, and the flip
// succeeds at most once per record.
func (uc VoteUseCase) SubmitCode(ctx context.Context, cmd SubmitCodeCommand) (SubmitCodeResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	email, err := NormalizeEmail(cmd.Email)
	if err != nil {
		return SubmitCodeResult{}, err
	}
	contestantID := strings.TrimSpace(cmd.ContestantID)
	code := strings.TrimSpace(cmd.Code)
	if contestantID == "" || code == "" {
		return SubmitCodeResult{}, domainerrors.ErrInvalidVoteInput
	}

	now := uc.now()
	record, err := uc.Ledger.Consume(ctx, email, contestantID, code, now)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidOrUsedCode) {
			logger.Info("code submission rejected",
				"event", "voting_code_rejected",
				"module", "event-voting/voting-engine",
				"layer", "application",
				"contestant_id", contestantID,
			)
		}
		return SubmitCodeResult{}, err
	}

	total, err := uc.Tally.ApplyVote(ctx, contestantID, record.VoteWeight, entities.VoterEntry{
		Email:   email,
		VotedAt: now,
		IsAdmin: record.IsAdmin,
	})
	if err != nil {
		return SubmitCodeResult{}, err
	}
	logger.Info("vote committed",
		"event", "voting_vote_committed",
		"module", "event-voting/voting-engine",
		"layer", "application",
		"record_id", record.RecordID,
		"contestant_id", contestantID,
		"vote_weight", record.VoteWeight,
		"is_admin", record.IsAdmin,
		"total_votes", total,
	)
	return SubmitCodeResult{
		VoteWeight: record.VoteWeight,
		IsAdmin:    record.IsAdmin,
		TotalVotes: total,
	}, nil
}

// ResetAll zeroes every active contestant tally and discards the entire
// ledger, verified and unverified alike. Irreversible administrative action.
func (uc VoteUseCase) ResetAll(ctx context.Context) error {
	logger := application.ResolveLogger(uc.Logger)
	if err := uc.Tally.ResetTallies(ctx); err != nil {
		return err
	}
	if err := uc.Ledger.DeleteAll(ctx); err != nil {
		return err
	}
	logger.Info("all votes reset",
		"event", "voting_reset_completed",
		"module", "event-voting/voting-engine",
		"layer", "application",
	)
	return nil
}

func (uc VoteUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

func (uc VoteUseCase) resolveRecordTTL() time.Duration {
	if uc.RecordTTL <= 0 {
		return time.Hour
	}
	return uc.RecordTTL
}

// NormalizeEmail lowercases and trims the address and enforces basic syntax.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" || !emailPattern.MatchString(email) {
		return "", domainerrors.ErrInvalidVoteInput
	}
	return email, nil
}
