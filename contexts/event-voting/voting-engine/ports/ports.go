package ports

import (
	"context"
	"time"

	"ovation/contexts/event-voting/voting-engine/domain/entities"
)

// VerificationLedger stores one verification record per issuance attempt and
// owns the single-use flip that gates the tally.
type VerificationLedger interface {
	// CreateRecord persists a fresh unverified record. A prior unverified
	// record for the same (contestant, email) pair is superseded so the
	// newest code is the only one that can verify.
	CreateRecord(ctx context.Context, record entities.VerificationRecord) error
	// HasVerifiedRecord reports whether any contestant holds a verified
	// record for the email. Issuance is refused globally once true.
	HasVerifiedRecord(ctx context.Context, voterEmail string) (bool, error)
	// Consume flips the matching unverified, unexpired record to verified.
	// The flip is a conditional update: a concurrent duplicate submission of
	// the same code loses the race and gets ErrInvalidOrUsedCode.
	Consume(ctx context.Context, voterEmail string, contestantID string, code string, now time.Time) (entities.VerificationRecord, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	DeleteAll(ctx context.Context) error

	StatisticsByContestant(ctx context.Context) ([]entities.ContestantStatistics, error)
	CountVerified(ctx context.Context) (int, error)
	CountDistinctVerifiedVoters(ctx context.Context) (int, error)
	ListRecentVerified(ctx context.Context, limit int) ([]entities.RecentVote, error)
}

// TallyRepository is the only writer of contestant vote totals. ApplyVote is
// invoked strictly after a successful ledger flip.
type TallyRepository interface {
	// ApplyVote atomically increments the contestant tally by weight and
	// appends the voter entry, returning the new total.
	ApplyVote(ctx context.Context, contestantID string, weight int, voter entities.VoterEntry) (int, error)
	// ResetTallies zeroes votes and clears voter entries for every active
	// contestant.
	ResetTallies(ctx context.Context) error
}

// ContestantDirectory resolves contestants for issuance checks and dashboard
// reads without owning contestant lifecycle.
type ContestantDirectory interface {
	GetContestant(ctx context.Context, contestantID string) (entities.ContestantProjection, error)
	ListActiveByVotes(ctx context.Context) ([]entities.ContestantProjection, error)
}

// WeightGrant is the issuance-time snapshot of a voter's weight. It is frozen
// into the record and never re-resolved at submit time.
type WeightGrant struct {
	IsAdmin bool
	Weight  int
}

type WeightResolver interface {
	Resolve(ctx context.Context, email string) (WeightGrant, error)
}

// CodeDelivery sends the verification code out-of-band. The ledger record is
// committed before delivery is attempted, so a failure never requires rollback.
type CodeDelivery interface {
	SendVerificationCode(ctx context.Context, email string, code string, contestantName string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// CodeGenerator produces short numeric verification codes. Codes are shared
// secrets over the email channel, not a cryptographic boundary.
type CodeGenerator interface {
	NewCode(ctx context.Context) (string, error)
}
