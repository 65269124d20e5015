package entities

import "time"

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
)

// Contestant is the durable aggregate of voting outcome: profile fields plus
// the running tally and its append-only voter audit list.
type Contestant struct {
	ContestantID string
	Name         string
	Description  string
	AvatarURL    string
	Votes        int
	Voters       []VoterRecord
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type VoterRecord struct {
	Email   string
	VotedAt time.Time
	IsAdmin bool
}
