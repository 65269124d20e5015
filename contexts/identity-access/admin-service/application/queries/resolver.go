package queries

import (
	"context"
	"strings"

	"ovation/contexts/identity-access/admin-service/domain/entities"
	domainerrors "ovation/contexts/identity-access/admin-service/domain/errors"
	"ovation/contexts/identity-access/admin-service/ports"
)

// WeightGrant mirrors the voting engine's issuance snapshot: admin flag plus
// the multiplier to freeze into the verification record.
type WeightGrant struct {
	IsAdmin bool
	Weight  int
}

// ResolverUseCase is the Admin Weight Resolver: a pure lookup with no side
// effects. Unknown emails vote with weight 1.
type ResolverUseCase struct {
	Admins ports.AdminRepository
}

func (uc ResolverUseCase) Resolve(ctx context.Context, email string) (WeightGrant, error) {
	admin, found, err := uc.Admins.GetActiveByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return WeightGrant{}, err
	}
	if !found {
		return WeightGrant{IsAdmin: false, Weight: 1}, nil
	}
	return WeightGrant{IsAdmin: true, Weight: admin.VoteWeight}, nil
}

// AuthUseCase authenticates bearer tokens for management operations. Every
// failure mode collapses to ErrUnauthorized.
type AuthUseCase struct {
	Admins ports.AdminRepository
	Tokens ports.TokenCodec
}

func (uc AuthUseCase) Authenticate(ctx context.Context, token string) (entities.Admin, error) {
	claims, err := uc.Tokens.Verify(strings.TrimSpace(token))
	if err != nil {
		return entities.Admin{}, domainerrors.ErrUnauthorized
	}
	admin, err := uc.Admins.GetByID(ctx, claims.AdminID)
	if err != nil {
		return entities.Admin{}, domainerrors.ErrUnauthorized
	}
	if !admin.IsActive {
		return entities.Admin{}, domainerrors.ErrUnauthorized
	}
	return admin, nil
}
