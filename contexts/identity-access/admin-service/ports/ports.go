package ports

import (
	"context"
	"time"

	"ovation/contexts/identity-access/admin-service/domain/entities"
)

type AdminRepository interface {
	CreateAdmin(ctx context.Context, admin entities.Admin) error
	// GetActiveByEmail resolves case-insensitively among active admins only.
	GetActiveByEmail(ctx context.Context, email string) (entities.Admin, bool, error)
	GetByID(ctx context.Context, adminID string) (entities.Admin, error)
	RecordLogin(ctx context.Context, adminID string, at time.Time) error
	UpdateVoteWeight(ctx context.Context, adminID string, voteWeight int, at time.Time) (entities.Admin, error)
}

// SessionClaims is what a bearer token decodes to.
type SessionClaims struct {
	AdminID string
	Email   string
}

// TokenCodec issues and verifies admin session tokens. Verification failure
// reasons are collapsed by callers into a single unauthorized signal.
type TokenCodec interface {
	Issue(admin entities.Admin, now time.Time) (string, error)
	Verify(token string) (SessionClaims, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
