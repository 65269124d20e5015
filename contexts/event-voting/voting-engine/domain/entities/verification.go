package entities

import "time"

// VerificationRecord authorizes exactly one weighted vote. It is created
// unverified when a code is issued and flips to verified exactly once when the
// voter submits the matching code before the record expires.
type VerificationRecord struct {
	RecordID     string
	ContestantID string
	VoterEmail   string
	Code         string
	IsVerified   bool
	IsAdmin      bool
	VoteWeight   int
	IPAddress    string
	UserAgent    string
	CreatedAt    time.Time
	ExpiresAt    time.Time
	VerifiedAt   *time.Time
}

func (r VerificationRecord) Expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && !r.ExpiresAt.After(now)
}

// VoterEntry is the audit row appended to a contestant tally on each
// successful verification.
type VoterEntry struct {
	Email   string
	VotedAt time.Time
	IsAdmin bool
}

// ContestantProjection is the slice of contestant state the voting engine
// needs: existence, active flag, display name, and the running tally.
type ContestantProjection struct {
	ContestantID string
	Name         string
	Votes        int
	IsActive     bool
}

type ContestantStatistics struct {
	ContestantID string
	TotalVotes   int
	VoterCount   int
	AdminVotes   int
}

type RecentVote struct {
	VoterEmail     string
	ContestantID   string
	ContestantName string
	VoteWeight     int
	IsAdmin        bool
	VerifiedAt     time.Time
}

type DashboardTotals struct {
	TotalVotes       int
	TotalVoters      int
	TotalContestants int
}
