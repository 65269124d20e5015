package commands

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	application "ovation/contexts/event-voting/contestant-service/application"
	"ovation/contexts/event-voting/contestant-service/domain/entities"
	domainerrors "ovation/contexts/event-voting/contestant-service/domain/errors"
	"ovation/contexts/event-voting/contestant-service/ports"
)

// Avatar references are stored as URLs; file upload storage is handled
// outside this service and resolves to a /uploads path.
var avatarPattern = regexp.MustCompile(`^(https?://.+|/uploads/.+)$`)

type CreateContestantCommand struct {
	Name        string
	Description string
	AvatarURL   string
}

type UpdateContestantCommand struct {
	ContestantID string
	Name         string
	Description  string
	AvatarURL    string
}

// ContestantUseCase owns contestant lifecycle: creation, profile updates, and
// soft deletion via the active flag. Tallies are written only by the voting
// engine.
type ContestantUseCase struct {
	Contestants ports.ContestantRepository
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func (uc ContestantUseCase) Create(ctx context.Context, cmd CreateContestantCommand) (entities.Contestant, error) {
	logger := application.ResolveLogger(uc.Logger)
	name := strings.TrimSpace(cmd.Name)
	description := strings.TrimSpace(cmd.Description)
	avatar := strings.TrimSpace(cmd.AvatarURL)
	if name == "" || len(name) > entities.MaxNameLength ||
		description == "" || len(description) > entities.MaxDescriptionLength {
		return entities.Contestant{}, domainerrors.ErrInvalidContestantInput
	}
	if !avatarPattern.MatchString(avatar) {
		return entities.Contestant{}, domainerrors.ErrInvalidAvatar
	}

	now := uc.now()
	contestantID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Contestant{}, err
	}
	contestant := entities.Contestant{
		ContestantID: contestantID,
		Name:         name,
		Description:  description,
		AvatarURL:    avatar,
		Votes:        0,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.Contestants.CreateContestant(ctx, contestant); err != nil {
		return entities.Contestant{}, err
	}
	logger.Info("contestant created",
		"event", "contestant_created",
		"module", "event-voting/contestant-service",
		"layer", "application",
		"contestant_id", contestant.ContestantID,
		"name", contestant.Name,
	)
	return contestant, nil
}

// Update applies the provided non-empty fields to an existing contestant.
func (uc ContestantUseCase) Update(ctx context.Context, cmd UpdateContestantCommand) (entities.Contestant, error) {
	logger := application.ResolveLogger(uc.Logger)
	contestant, err := uc.Contestants.GetContestant(ctx, strings.TrimSpace(cmd.ContestantID))
	if err != nil {
		return entities.Contestant{}, err
	}
	if name := strings.TrimSpace(cmd.Name); name != "" {
		if len(name) > entities.MaxNameLength {
			return entities.Contestant{}, domainerrors.ErrInvalidContestantInput
		}
		contestant.Name = name
	}
	if description := strings.TrimSpace(cmd.Description); description != "" {
		if len(description) > entities.MaxDescriptionLength {
			return entities.Contestant{}, domainerrors.ErrInvalidContestantInput
		}
		contestant.Description = description
	}
	if avatar := strings.TrimSpace(cmd.AvatarURL); avatar != "" {
		if !avatarPattern.MatchString(avatar) {
			return entities.Contestant{}, domainerrors.ErrInvalidAvatar
		}
		contestant.AvatarURL = avatar
	}
	contestant.UpdatedAt = uc.now()
	if err := uc.Contestants.UpdateContestant(ctx, contestant); err != nil {
		return entities.Contestant{}, err
	}
	logger.Info("contestant updated",
		"event", "contestant_updated",
		"module", "event-voting/contestant-service",
		"layer", "application",
		"contestant_id", contestant.ContestantID,
	)
	return contestant, nil
}

// Deactivate soft-deletes: the contestant disappears from public listings but
// the row and its tally survive.
func (uc ContestantUseCase) Deactivate(ctx context.Context, contestantID string) error {
	logger := application.ResolveLogger(uc.Logger)
	contestant, err := uc.Contestants.GetContestant(ctx, strings.TrimSpace(contestantID))
	if err != nil {
		return err
	}
	if !contestant.IsActive {
		return nil
	}
	contestant.IsActive = false
	contestant.UpdatedAt = uc.now()
	if err := uc.Contestants.UpdateContestant(ctx, contestant); err != nil {
		return err
	}
	logger.Info("contestant deactivated",
		"event", "contestant_deactivated",
		"module", "event-voting/contestant-service",
		"layer", "application",
		"contestant_id", contestant.ContestantID,
	)
	return nil
}

func (uc ContestantUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
