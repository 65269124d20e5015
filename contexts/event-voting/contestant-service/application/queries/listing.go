package queries

import (
	"context"
	"sort"
	"strings"
	"time"

	"ovation/contexts/event-voting/contestant-service/domain/entities"
	"ovation/contexts/event-voting/contestant-service/ports"
)

// PublicContestant is the outward contestant view. Voter entries keep their
// timestamps and admin flags but never expose emails.
type PublicContestant struct {
	ContestantID string
	Name         string
	Description  string
	AvatarURL    string
	Votes        int
	Voters       []PublicVoter
	IsActive     bool
	CreatedAt    time.Time
}

type PublicVoter struct {
	VotedAt time.Time
	IsAdmin bool
}

type ListingUseCase struct {
	Contestants ports.ContestantRepository
}

// ListPublic returns active contestants newest first, emails stripped.
func (uc ListingUseCase) ListPublic(ctx context.Context) ([]PublicContestant, error) {
	contestants, err := uc.Contestants.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(contestants, func(i, j int) bool {
		return contestants[i].CreatedAt.After(contestants[j].CreatedAt)
	})
	items := make([]PublicContestant, 0, len(contestants))
	for _, contestant := range contestants {
		items = append(items, toPublic(contestant))
	}
	return items, nil
}

// GetPublic resolves a single contestant, inactive ones included so direct
// links keep working after a soft delete.
func (uc ListingUseCase) GetPublic(ctx context.Context, contestantID string) (PublicContestant, error) {
	contestant, err := uc.Contestants.GetContestant(ctx, strings.TrimSpace(contestantID))
	if err != nil {
		return PublicContestant{}, err
	}
	return toPublic(contestant), nil
}

func toPublic(contestant entities.Contestant) PublicContestant {
	voters := make([]PublicVoter, 0, len(contestant.Voters))
	for _, voter := range contestant.Voters {
		voters = append(voters, PublicVoter{VotedAt: voter.VotedAt, IsAdmin: voter.IsAdmin})
	}
	return PublicContestant{
		ContestantID: contestant.ContestantID,
		Name:         contestant.Name,
		Description:  contestant.Description,
		AvatarURL:    contestant.AvatarURL,
		Votes:        contestant.Votes,
		Voters:       voters,
		IsActive:     contestant.IsActive,
		CreatedAt:    contestant.CreatedAt,
	}
}
