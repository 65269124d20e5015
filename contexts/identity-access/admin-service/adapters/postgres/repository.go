package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"ovation/contexts/identity-access/admin-service/domain/entities"
	domainerrors "ovation/contexts/identity-access/admin-service/domain/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&adminModel{})
}

func (r *Repository) CreateAdmin(ctx context.Context, admin entities.Admin) error {
	row := adminModelFromEntity(admin)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrEmailTaken
		}
		return r.logError("admin_repo_create_failed", err, "admin_id", strings.TrimSpace(admin.AdminID))
	}
	return nil
}

func (r *Repository) GetActiveByEmail(ctx context.Context, email string) (entities.Admin, bool, error) {
	var row adminModel
	err := r.db.WithContext(ctx).
		Where("email = ? AND is_active = ?", strings.ToLower(strings.TrimSpace(email)), true).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Admin{}, false, nil
		}
		return entities.Admin{}, false, r.logError("admin_repo_get_by_email_failed", err)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) GetByID(ctx context.Context, adminID string) (entities.Admin, error) {
	var row adminModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(adminID)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Admin{}, domainerrors.ErrAdminNotFound
		}
		return entities.Admin{}, r.logError("admin_repo_get_by_id_failed", err, "admin_id", strings.TrimSpace(adminID))
	}
	return row.toEntity(), nil
}

func (r *Repository) RecordLogin(ctx context.Context, adminID string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&adminModel{}).
		Where("id = ?", strings.TrimSpace(adminID)).
		Updates(map[string]any{
			"last_login": at.UTC(),
			"updated_at": at.UTC(),
		})
	if result.Error != nil {
		return r.logError("admin_repo_record_login_failed", result.Error, "admin_id", strings.TrimSpace(adminID))
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAdminNotFound
	}
	return nil
}

func (r *Repository) UpdateVoteWeight(ctx context.Context, adminID string, voteWeight int, at time.Time) (entities.Admin, error) {
	result := r.db.WithContext(ctx).Model(&adminModel{}).
		Where("id = ?", strings.TrimSpace(adminID)).
		Updates(map[string]any{
			"vote_weight": voteWeight,
			"updated_at":  at.UTC(),
		})
	if result.Error != nil {
		return entities.Admin{}, r.logError("admin_repo_update_weight_failed", result.Error,
			"admin_id", strings.TrimSpace(adminID),
		)
	}
	if result.RowsAffected == 0 {
		return entities.Admin{}, domainerrors.ErrAdminNotFound
	}
	return r.GetByID(ctx, adminID)
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "identity-access/admin-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("admin repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type adminModel struct {
	ID           string     `gorm:"column:id;primaryKey"`
	Email        string     `gorm:"column:email;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash"`
	VoteWeight   int        `gorm:"column:vote_weight"`
	IsActive     bool       `gorm:"column:is_active"`
	LastLogin    *time.Time `gorm:"column:last_login"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (adminModel) TableName() string {
	return "admins"
}

func adminModelFromEntity(admin entities.Admin) adminModel {
	return adminModel{
		ID:           strings.TrimSpace(admin.AdminID),
		Email:        strings.ToLower(strings.TrimSpace(admin.Email)),
		PasswordHash: admin.PasswordHash,
		VoteWeight:   admin.VoteWeight,
		IsActive:     admin.IsActive,
		LastLogin:    admin.LastLogin,
		CreatedAt:    admin.CreatedAt.UTC(),
		UpdatedAt:    admin.UpdatedAt.UTC(),
	}
}

func (m adminModel) toEntity() entities.Admin {
	return entities.Admin{
		AdminID:      m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		VoteWeight:   m.VoteWeight,
		IsActive:     m.IsActive,
		LastLogin:    m.LastLogin,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
