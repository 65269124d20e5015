package postgresadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"ovation/contexts/event-voting/voting-engine/domain/entities"
	domainerrors "ovation/contexts/event-voting/voting-engine/domain/errors"

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

// AutoMigrate creates the voting-engine tables and the per-pair uniqueness
// constraint that closes the double-vote race at the storage layer.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&verificationRecordModel{}, &contestantVoterModel{})
}

func (r *Repository) CreateRecord(ctx context.Context, record entities.VerificationRecord) error {
	row := verificationRecordModelFromEntity(record)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Supersede any unverified code for the same pair; a verified row
		// survives and trips the unique index below.
		if err := tx.
			Where("contestant_id = ? AND voter_email = ? AND is_verified = ?", row.ContestantID, row.VoterEmail, false).
			Delete(&verificationRecordModel{}).Error; err != nil {
			return err
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrConflict
		}
		return r.logError("voting_repo_create_record_failed", err,
			"record_id", strings.TrimSpace(record.RecordID),
			"contestant_id", strings.TrimSpace(record.ContestantID),
		)
	}
	return nil
}

func (r *Repository) HasVerifiedRecord(ctx context.Context, voterEmail string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&verificationRecordModel{}).
		Where("voter_email = ? AND is_verified = ?", normalizeEmail(voterEmail), true).
		Count(&count).Error
	if err != nil {
		return false, r.logError("voting_repo_has_verified_failed", err)
	}
	return count > 0, nil
}

func (r *Repository) Consume(
	ctx context.Context,
	voterEmail string,
	contestantID string,
	code string,
	now time.Time,
) (entities.VerificationRecord, error) {
	// Conditional update is the compare-and-swap: only one of two concurrent
	// submitters of the same code observes RowsAffected == 1.
	update := r.db.WithContext(ctx).Model(&verificationRecordModel{}).
		Where("voter_email = ?", normalizeEmail(voterEmail)).
		Where("contestant_id = ?", strings.TrimSpace(contestantID)).
		Where("verification_code = ?", strings.TrimSpace(code)).
		Where("is_verified = ?", false).
		Where("expires_at > ?", now.UTC()).
		Updates(map[string]any{
			"is_verified": true,
			"verified_at": now.UTC(),
			"updated_at":  now.UTC(),
		})
	if update.Error != nil {
		return entities.VerificationRecord{}, r.logError("voting_repo_consume_failed", update.Error,
			"contestant_id", strings.TrimSpace(contestantID),
		)
	}
	if update.RowsAffected == 0 {
		return entities.VerificationRecord{}, domainerrors.ErrInvalidOrUsedCode
	}

	var row verificationRecordModel
	err := r.db.WithContext(ctx).
		Where("voter_email = ?", normalizeEmail(voterEmail)).
		Where("contestant_id = ?", strings.TrimSpace(contestantID)).
		Where("verification_code = ?", strings.TrimSpace(code)).
		First(&row).Error
	if err != nil {
		return entities.VerificationRecord{}, r.logError("voting_repo_consume_readback_failed", err,
			"contestant_id", strings.TrimSpace(contestantID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", now.UTC()).
		Delete(&verificationRecordModel{})
	if result.Error != nil {
		return 0, r.logError("voting_repo_delete_expired_failed", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *Repository) DeleteAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&verificationRecordModel{}).Error; err != nil {
		return r.logError("voting_repo_delete_all_failed", err)
	}
	return nil
}

func (r *Repository) StatisticsByContestant(ctx context.Context) ([]entities.ContestantStatistics, error) {
	var rows []contestantStatisticsRow
	err := r.db.WithContext(ctx).Model(&verificationRecordModel{}).
		Select("contestant_id",
			"SUM(vote_weight) AS total_votes",
			"COUNT(*) AS voter_count",
			"SUM(CASE WHEN is_admin THEN vote_weight ELSE 0 END) AS admin_votes").
		Where("is_verified = ?", true).
		Group("contestant_id").
		Order("total_votes DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, r.logError("voting_repo_statistics_failed", err)
	}
	items := make([]entities.ContestantStatistics, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.ContestantStatistics{
			ContestantID: row.ContestantID,
			TotalVotes:   row.TotalVotes,
			VoterCount:   row.VoterCount,
			AdminVotes:   row.AdminVotes,
		})
	}
	return items, nil
}

func (r *Repository) CountVerified(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&verificationRecordModel{}).
		Where("is_verified = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, r.logError("voting_repo_count_verified_failed", err)
	}
	return int(count), nil
}

func (r *Repository) CountDistinctVerifiedVoters(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&verificationRecordModel{}).
		Where("is_verified = ?", true).
		Distinct("voter_email").
		Count(&count).Error
	if err != nil {
		return 0, r.logError("voting_repo_count_voters_failed", err)
	}
	return int(count), nil
}

func (r *Repository) ListRecentVerified(ctx context.Context, limit int) ([]entities.RecentVote, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []recentVoteRow
	err := r.db.WithContext(ctx).
		Table("verification_records AS v").
		Select("v.voter_email", "v.contestant_id", "c.name AS contestant_name",
			"v.vote_weight", "v.is_admin", "v.verified_at").
		Joins("JOIN contestants AS c ON c.id = v.contestant_id").
		Where("v.is_verified = ?", true).
		Order("v.verified_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, r.logError("voting_repo_recent_verified_failed", err)
	}
	items := make([]entities.RecentVote, 0, len(rows))
	for _, row := range rows {
		item := entities.RecentVote{
			VoterEmail:     row.VoterEmail,
			ContestantID:   row.ContestantID,
			ContestantName: row.ContestantName,
			VoteWeight:     row.VoteWeight,
			IsAdmin:        row.IsAdmin,
		}
		if row.VerifiedAt != nil {
			item.VerifiedAt = row.VerifiedAt.UTC()
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) ApplyVote(
	ctx context.Context,
	contestantID string,
	weight int,
	voter entities.VoterEntry,
) (int, error) {
	var total int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Atomic in-database increment; never read-modify-write in process.
		update := tx.Model(&tallyContestantModel{}).
			Where("id = ? AND is_active = ?", strings.TrimSpace(contestantID), true).
			Updates(map[string]any{
				"votes":      gorm.Expr("votes + ?", weight),
				"updated_at": voter.VotedAt.UTC(),
			})
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			return domainerrors.ErrContestantNotFound
		}
		if err := tx.Create(&contestantVoterModel{
			ID:           uuid.NewString(),
			ContestantID: strings.TrimSpace(contestantID),
			Email:        normalizeEmail(voter.Email),
			VotedAt:      voter.VotedAt.UTC(),
			IsAdmin:      voter.IsAdmin,
		}).Error; err != nil {
			return err
		}
		var row tallyContestantModel
		if err := tx.Where("id = ?", strings.TrimSpace(contestantID)).Take(&row).Error; err != nil {
			return err
		}
		total = row.Votes
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrContestantNotFound) {
			return 0, err
		}
		return 0, r.logError("voting_repo_apply_vote_failed", err,
			"contestant_id", strings.TrimSpace(contestantID),
		)
	}
	return total, nil
}

func (r *Repository) ResetTallies(ctx context.Context) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&tallyContestantModel{}).
			Where("is_active = ?", true).
			Update("votes", 0).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&contestantVoterModel{}).Error
	})
	if err != nil {
		return r.logError("voting_repo_reset_tallies_failed", err)
	}
	return nil
}

func (r *Repository) GetContestant(ctx context.Context, contestantID string) (entities.ContestantProjection, error) {
	var row tallyContestantModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(contestantID)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ContestantProjection{}, domainerrors.ErrContestantNotFound
		}
		return entities.ContestantProjection{}, r.logError("voting_repo_get_contestant_failed", err,
			"contestant_id", strings.TrimSpace(contestantID),
		)
	}
	return row.toProjection(), nil
}

func (r *Repository) ListActiveByVotes(ctx context.Context) ([]entities.ContestantProjection, error) {
	var rows []tallyContestantModel
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("votes DESC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("voting_repo_list_contestants_failed", err)
	}
	items := make([]entities.ContestantProjection, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toProjection())
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "event-voting/voting-engine",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("voting repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type verificationRecordModel struct {
	ID               string     `gorm:"column:id;primaryKey"`
	ContestantID     string     `gorm:"column:contestant_id;uniqueIndex:idx_records_pair"`
	VoterEmail       string     `gorm:"column:voter_email;uniqueIndex:idx_records_pair;index"`
	VerificationCode string     `gorm:"column:verification_code;index"`
	IsVerified       bool       `gorm:"column:is_verified"`
	IsAdmin          bool       `gorm:"column:is_admin"`
	VoteWeight       int        `gorm:"column:vote_weight"`
	IPAddress        string     `gorm:"column:ip_address"`
	UserAgent        string     `gorm:"column:user_agent"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
	ExpiresAt        time.Time  `gorm:"column:expires_at;index"`
	VerifiedAt       *time.Time `gorm:"column:verified_at"`
}

func (verificationRecordModel) TableName() string {
	return "verification_records"
}

func verificationRecordModelFromEntity(record entities.VerificationRecord) verificationRecordModel {
	return verificationRecordModel{
		ID:               strings.TrimSpace(record.RecordID),
		ContestantID:     strings.TrimSpace(record.ContestantID),
		VoterEmail:       normalizeEmail(record.VoterEmail),
		VerificationCode: strings.TrimSpace(record.Code),
		IsVerified:       record.IsVerified,
		IsAdmin:          record.IsAdmin,
		VoteWeight:       record.VoteWeight,
		IPAddress:        strings.TrimSpace(record.IPAddress),
		UserAgent:        strings.TrimSpace(record.UserAgent),
		CreatedAt:        record.CreatedAt.UTC(),
		UpdatedAt:        record.CreatedAt.UTC(),
		ExpiresAt:        record.ExpiresAt.UTC(),
		VerifiedAt:       record.VerifiedAt,
	}
}

func (m verificationRecordModel) toEntity() entities.VerificationRecord {
	return entities.VerificationRecord{
		RecordID:     m.ID,
		ContestantID: m.ContestantID,
		VoterEmail:   m.VoterEmail,
		Code:         m.VerificationCode,
		IsVerified:   m.IsVerified,
		IsAdmin:      m.IsAdmin,
		VoteWeight:   m.VoteWeight,
		IPAddress:    m.IPAddress,
		UserAgent:    m.UserAgent,
		CreatedAt:    m.CreatedAt,
		ExpiresAt:    m.ExpiresAt,
		VerifiedAt:   m.VerifiedAt,
	}
}

type contestantVoterModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	ContestantID string    `gorm:"column:contestant_id;index"`
	Email        string    `gorm:"column:email"`
	VotedAt      time.Time `gorm:"column:voted_at"`
	IsAdmin      bool      `gorm:"column:is_admin"`
}

func (contestantVoterModel) TableName() string {
	return "contestant_voters"
}

// tallyContestantModel maps the contestant columns the voting engine touches.
// Contestant lifecycle is owned by the contestant-service adapter.
type tallyContestantModel struct {
	ID       string `gorm:"column:id;primaryKey"`
	Name     string `gorm:"column:name"`
	Votes    int    `gorm:"column:votes"`
	IsActive bool   `gorm:"column:is_active"`
}

func (tallyContestantModel) TableName() string {
	return "contestants"
}

func (m tallyContestantModel) toProjection() entities.ContestantProjection {
	return entities.ContestantProjection{
		ContestantID: m.ID,
		Name:         m.Name,
		Votes:        m.Votes,
		IsActive:     m.IsActive,
	}
}

type contestantStatisticsRow struct {
	ContestantID string `gorm:"column:contestant_id"`
	TotalVotes   int    `gorm:"column:total_votes"`
	VoterCount   int    `gorm:"column:voter_count"`
	AdminVotes   int    `gorm:"column:admin_votes"`
}

type recentVoteRow struct {
	VoterEmail     string     `gorm:"column:voter_email"`
	ContestantID   string     `gorm:"column:contestant_id"`
	ContestantName string     `gorm:"column:contestant_name"`
	VoteWeight     int        `gorm:"column:vote_weight"`
	IsAdmin        bool       `gorm:"column:is_admin"`
	VerifiedAt     *time.Time `gorm:"column:verified_at"`
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// NumericCodeGenerator produces six-digit codes from a seeded PRNG. Treated
// as a shared secret over the email channel, not unpredictable material.
type NumericCodeGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewNumericCodeGenerator() *NumericCodeGenerator {
	return &NumericCodeGenerator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (g *NumericCodeGenerator) NewCode(_ context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fmt.Sprintf("%06d", 100000+g.rng.Intn(900000)), nil
}
