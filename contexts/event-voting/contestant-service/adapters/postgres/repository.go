package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"ovation/contexts/event-voting/contestant-service/domain/entities"
	domainerrors "ovation/contexts/event-voting/contestant-service/domain/errors"

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
	return db.AutoMigrate(&contestantModel{})
}

func (r *Repository) CreateContestant(ctx context.Context, contestant entities.Contestant) error {
	row := contestantModelFromEntity(contestant)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrNameTaken
		}
		return r.logError("contestant_repo_create_failed", err,
			"contestant_id", strings.TrimSpace(contestant.ContestantID),
		)
	}
	return nil
}

func (r *Repository) UpdateContestant(ctx context.Context, contestant entities.Contestant) error {
	result := r.db.WithContext(ctx).Model(&contestantModel{}).
		Where("id = ?", strings.TrimSpace(contestant.ContestantID)).
		Updates(map[string]any{
			"name":        strings.TrimSpace(contestant.Name),
			"description": strings.TrimSpace(contestant.Description),
			"avatar_url":  strings.TrimSpace(contestant.AvatarURL),
			"is_active":   contestant.IsActive,
			"updated_at":  contestant.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerrors.ErrNameTaken
		}
		return r.logError("contestant_repo_update_failed", result.Error,
			"contestant_id", strings.TrimSpace(contestant.ContestantID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrContestantNotFound
	}
	return nil
}

func (r *Repository) GetContestant(ctx context.Context, contestantID string) (entities.Contestant, error) {
	var row contestantModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(contestantID)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Contestant{}, domainerrors.ErrContestantNotFound
		}
		return entities.Contestant{}, r.logError("contestant_repo_get_failed", err,
			"contestant_id", strings.TrimSpace(contestantID),
		)
	}
	contestant := row.toEntity()
	voters, err := r.loadVoters(ctx, contestant.ContestantID)
	if err != nil {
		return entities.Contestant{}, err
	}
	contestant.Voters = voters
	return contestant, nil
}

func (r *Repository) ListActive(ctx context.Context) ([]entities.Contestant, error) {
	var rows []contestantModel
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("contestant_repo_list_failed", err)
	}
	items := make([]entities.Contestant, 0, len(rows))
	for _, row := range rows {
		contestant := row.toEntity()
		voters, err := r.loadVoters(ctx, contestant.ContestantID)
		if err != nil {
			return nil, err
		}
		contestant.Voters = voters
		items = append(items, contestant)
	}
	return items, nil
}

func (r *Repository) loadVoters(ctx context.Context, contestantID string) ([]entities.VoterRecord, error) {
	var rows []voterRow
	err := r.db.WithContext(ctx).
		Table("contestant_voters").
		Where("contestant_id = ?", contestantID).
		Order("voted_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, r.logError("contestant_repo_load_voters_failed", err,
			"contestant_id", contestantID,
		)
	}
	voters := make([]entities.VoterRecord, 0, len(rows))
	for _, row := range rows {
		voters = append(voters, entities.VoterRecord{
			Email:   row.Email,
			VotedAt: row.VotedAt,
			IsAdmin: row.IsAdmin,
		})
	}
	return voters, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "event-voting/contestant-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("contestant repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type contestantModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex"`
	Description string    `gorm:"column:description"`
	AvatarURL   string    `gorm:"column:avatar_url"`
	Votes       int       `gorm:"column:votes"`
	IsActive    bool      `gorm:"column:is_active;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (contestantModel) TableName() string {
	return "contestants"
}

func contestantModelFromEntity(contestant entities.Contestant) contestantModel {
	return contestantModel{
		ID:          strings.TrimSpace(contestant.ContestantID),
		Name:        strings.TrimSpace(contestant.Name),
		Description: strings.TrimSpace(contestant.Description),
		AvatarURL:   strings.TrimSpace(contestant.AvatarURL),
		Votes:       contestant.Votes,
		IsActive:    contestant.IsActive,
		CreatedAt:   contestant.CreatedAt.UTC(),
		UpdatedAt:   contestant.UpdatedAt.UTC(),
	}
}

func (m contestantModel) toEntity() entities.Contestant {
	return entities.Contestant{
		ContestantID: m.ID,
		Name:         m.Name,
		Description:  m.Description,
		AvatarURL:    m.AvatarURL,
		Votes:        m.Votes,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

type voterRow struct {
	Email   string    `gorm:"column:email"`
	VotedAt time.Time `gorm:"column:voted_at"`
	IsAdmin bool      `gorm:"column:is_admin"`
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
