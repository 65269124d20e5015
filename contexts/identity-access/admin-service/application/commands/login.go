package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "ovation/contexts/identity-access/admin-service/application"
	"ovation/contexts/identity-access/admin-service/domain/entities"
	domainerrors "ovation/contexts/identity-access/admin-service/domain/errors"
	"ovation/contexts/identity-access/admin-service/ports"

	"golang.org/x/crypto/bcrypt"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token      string
	AdminID    string
	Email      string
	VoteWeight int
}

type UpdateSettingsCommand struct {
	AdminID    string
	VoteWeight int
}

// AdminUseCase covers management-principal commands: credential login with
// token issuance and vote-weight settings. Weight changes never touch
// already-issued verification codes; those carry their issuance snapshot.
type AdminUseCase struct {
	Admins ports.AdminRepository
	Tokens ports.TokenCodec
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc AdminUseCase) Login(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" || cmd.Password == "" {
		return LoginResult{}, domainerrors.ErrInvalidAdminInput
	}

	admin, found, err := uc.Admins.GetActiveByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, err
	}
	if !found {
		return LoginResult{}, domainerrors.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(cmd.Password)) != nil {
		logger.Warn("admin login rejected",
			"event", "admin_login_rejected",
			"module", "identity-access/admin-service",
			"layer", "application",
			"admin_id", admin.AdminID,
		)
		return LoginResult{}, domainerrors.ErrInvalidCredentials
	}

	now := uc.now()
	if err := uc.Admins.RecordLogin(ctx, admin.AdminID, now); err != nil {
		return LoginResult{}, err
	}
	token, err := uc.Tokens.Issue(admin, now)
	if err != nil {
		return LoginResult{}, err
	}
	logger.Info("admin logged in",
		"event", "admin_login_succeeded",
		"module", "identity-access/admin-service",
		"layer", "application",
		"admin_id", admin.AdminID,
	)
	return LoginResult{
		Token:      token,
		AdminID:    admin.AdminID,
		Email:      admin.Email,
		VoteWeight: admin.VoteWeight,
	}, nil
}

func (uc AdminUseCase) UpdateSettings(ctx context.Context, cmd UpdateSettingsCommand) (entities.Admin, error) {
	logger := application.ResolveLogger(uc.Logger)
	adminID := strings.TrimSpace(cmd.AdminID)
	if adminID == "" || cmd.VoteWeight < 1 {
		return entities.Admin{}, domainerrors.ErrInvalidAdminInput
	}
	admin, err := uc.Admins.UpdateVoteWeight(ctx, adminID, cmd.VoteWeight, uc.now())
	if err != nil {
		return entities.Admin{}, err
	}
	logger.Info("admin settings updated",
		"event", "admin_settings_updated",
		"module", "identity-access/admin-service",
		"layer", "application",
		"admin_id", admin.AdminID,
		"vote_weight", admin.VoteWeight,
	)
	return admin, nil
}

// Register creates a new active admin with a bcrypt-hashed password. Used by
// seeding; there is no self-service signup surface.
func (uc AdminUseCase) Register(ctx context.Context, email string, password string, voteWeight int) (entities.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" || voteWeight < 1 {
		return entities.Admin{}, domainerrors.ErrInvalidAdminInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return entities.Admin{}, err
	}
	now := uc.now()
	adminID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Admin{}, err
	}
	admin := entities.Admin{
		AdminID:      adminID,
		Email:        email,
		PasswordHash: string(hash),
		VoteWeight:   voteWeight,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.Admins.CreateAdmin(ctx, admin); err != nil {
		return entities.Admin{}, err
	}
	return admin, nil
}

func (uc AdminUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
