package ports

import (
	"context"
	"time"

	"ovation/contexts/event-voting/contestant-service/domain/entities"
)

type ContestantRepository interface {
	// CreateContestant persists a new contestant. Duplicate names fail with
	// ErrNameTaken via the storage uniqueness constraint.
	CreateContestant(ctx context.Context, contestant entities.Contestant) error
	UpdateContestant(ctx context.Context, contestant entities.Contestant) error
	// GetContestant resolves by id regardless of the active flag; listing is
	// the only read filtered to active contestants.
	GetContestant(ctx context.Context, contestantID string) (entities.Contestant, error)
	ListActive(ctx context.Context) ([]entities.Contestant, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
