package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"ovation/contexts/event-voting/contestant-service/application/commands"
	"ovation/contexts/event-voting/contestant-service/application/queries"
	httptransport "ovation/contexts/event-voting/contestant-service/transport/http"
)

type Handler struct {
	Contestants commands.ContestantUseCase
	Listing     queries.ListingUseCase
	Logger      *slog.Logger
}

func (h Handler) ListContestantsHandler(ctx context.Context) (httptransport.ContestantListResponse, error) {
	contestants, err := h.Listing.ListPublic(ctx)
	if err != nil {
		return httptransport.ContestantListResponse{}, err
	}
	items := make([]httptransport.ContestantResponse, 0, len(contestants))
	for _, contestant := range contestants {
		items = append(items, toResponse(contestant))
	}
	return httptransport.ContestantListResponse{Items: items}, nil
}

func (h Handler) GetContestantHandler(ctx context.Context, contestantID string) (httptransport.ContestantResponse, error) {
	contestant, err := h.Listing.GetPublic(ctx, contestantID)
	if err != nil {
		return httptransport.ContestantResponse{}, err
	}
	return toResponse(contestant), nil
}

func (h Handler) CreateContestantHandler(
	ctx context.Context,
	req httptransport.CreateContestantRequest,
) (httptransport.ContestantResponse, error) {
	contestant, err := h.Contestants.Create(ctx, commands.CreateContestantCommand{
		Name:        req.Name,
		Description: req.Description,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		return httptransport.ContestantResponse{}, err
	}
	return httptransport.ContestantResponse{
		ContestantID: contestant.ContestantID,
		Name:         contestant.Name,
		Description:  contestant.Description,
		AvatarURL:    contestant.AvatarURL,
		Votes:        contestant.Votes,
		Voters:       []httptransport.VoterView{},
		IsActive:     contestant.IsActive,
		CreatedAt:    contestant.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

func (h Handler) UpdateContestantHandler(
	ctx context.Context,
	contestantID string,
	req httptransport.UpdateContestantRequest,
) (httptransport.ContestantResponse, error) {
	contestant, err := h.Contestants.Update(ctx, commands.UpdateContestantCommand{
		ContestantID: contestantID,
		Name:         req.Name,
		Description:  req.Description,
		AvatarURL:    req.AvatarURL,
	})
	if err != nil {
		return httptransport.ContestantResponse{}, err
	}
	return httptransport.ContestantResponse{
		ContestantID: contestant.ContestantID,
		Name:         contestant.Name,
		Description:  contestant.Description,
		AvatarURL:    contestant.AvatarURL,
		Votes:        contestant.Votes,
		Voters:       []httptransport.VoterView{},
		IsActive:     contestant.IsActive,
		CreatedAt:    contestant.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

func (h Handler) DeleteContestantHandler(ctx context.Context, contestantID string) (httptransport.DeleteResponse, error) {
	if err := h.Contestants.Deactivate(ctx, contestantID); err != nil {
		return httptransport.DeleteResponse{}, err
	}
	return httptransport.DeleteResponse{Message: "Contestant deactivated successfully"}, nil
}

func toResponse(contestant queries.PublicContestant) httptransport.ContestantResponse {
	voters := make([]httptransport.VoterView, 0, len(contestant.Voters))
	for _, voter := range contestant.Voters {
		voters = append(voters, httptransport.VoterView{
			VotedAt: voter.VotedAt.UTC().Format(time.RFC3339),
			IsAdmin: voter.IsAdmin,
		})
	}
	return httptransport.ContestantResponse{
		ContestantID: contestant.ContestantID,
		Name:         contestant.Name,
		Description:  contestant.Description,
		AvatarURL:    contestant.AvatarURL,
		Votes:        contestant.Votes,
		Voters:       voters,
		IsActive:     contestant.IsActive,
		CreatedAt:    contestant.CreatedAt.UTC().Format(time.RFC3339),
	}
}
