package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"ovation/contexts/event-voting/voting-engine/application/commands"
	"ovation/contexts/event-voting/voting-engine/application/queries"
	httptransport "ovation/contexts/event-voting/voting-engine/transport/http"
)

type Handler struct {
	Votes      commands.VoteUseCase
	Statistics queries.StatisticsUseCase
	Dashboard  queries.DashboardUseCase
	Logger     *slog.Logger
}

func (h Handler) IssueCodeHandler(
	ctx context.Context,
	req httptransport.IssueCodeRequest,
	clientIP string,
	userAgent string,
) (httptransport.IssueCodeResponse, error) {
	result, err := h.Votes.IssueCode(ctx, commands.IssueCodeCommand{
		Email:        req.Email,
		ContestantID: req.ContestantID,
		IPAddress:    clientIP,
		UserAgent:    userAgent,
	})
	if err != nil {
		return httptransport.IssueCodeResponse{}, err
	}
	return httptransport.IssueCodeResponse{
		Message:    "Verification code sent successfully",
		IsAdmin:    result.IsAdmin,
		VoteWeight: result.VoteWeight,
	}, nil
}

func (h Handler) SubmitCodeHandler(
	ctx context.Context,
	req httptransport.SubmitCodeRequest,
) (httptransport.SubmitCodeResponse, error) {
	result, err := h.Votes.SubmitCode(ctx, commands.SubmitCodeCommand{
		Email:        req.Email,
		ContestantID: req.ContestantID,
		Code:         req.VerificationCode,
	})
	if err != nil {
		return httptransport.SubmitCodeResponse{}, err
	}
	return httptransport.SubmitCodeResponse{
		Message:    "Vote submitted successfully",
		VoteWeight: result.VoteWeight,
		IsAdmin:    result.IsAdmin,
		TotalVotes: result.TotalVotes,
	}, nil
}

func (h Handler) StatisticsHandler(ctx context.Context) (httptransport.StatisticsResponse, error) {
	stats, err := h.Statistics.Statistics(ctx)
	if err != nil {
		return httptransport.StatisticsResponse{}, err
	}
	items := make([]httptransport.ContestantStatisticsItem, 0, len(stats))
	for _, item := range stats {
		items = append(items, httptransport.ContestantStatisticsItem{
			ContestantID: item.ContestantID,
			TotalVotes:   item.TotalVotes,
			VoterCount:   item.VoterCount,
			AdminVotes:   item.AdminVotes,
		})
	}
	return httptransport.StatisticsResponse{Items: items}, nil
}

func (h Handler) DashboardHandler(ctx context.Context) (httptransport.DashboardResponse, error) {
	result, err := h.Dashboard.Dashboard(ctx)
	if err != nil {
		return httptransport.DashboardResponse{}, err
	}
	contestants := make([]httptransport.DashboardContestant, 0, len(result.Contestants))
	for _, item := range result.Contestants {
		contestants = append(contestants, httptransport.DashboardContestant{
			ContestantID: item.ContestantID,
			Name:         item.Name,
			Votes:        item.Votes,
		})
	}
	recent := make([]httptransport.RecentVoteItem, 0, len(result.RecentVotes))
	for _, item := range result.RecentVotes {
		recent = append(recent, httptransport.RecentVoteItem{
			VoterEmail:     item.VoterEmail,
			ContestantID:   item.ContestantID,
			ContestantName: item.ContestantName,
			VoteWeight:     item.VoteWeight,
			IsAdmin:        item.IsAdmin,
			VerifiedAt:     item.VerifiedAt.UTC().Format(time.RFC3339),
		})
	}
	return httptransport.DashboardResponse{
		Contestants: contestants,
		Statistics: httptransport.DashboardTotals{
			TotalVotes:       result.Totals.TotalVotes,
			TotalVoters:      result.Totals.TotalVoters,
			TotalContestants: result.Totals.TotalContestants,
		},
		RecentVotes: recent,
	}, nil
}

func (h Handler) ResetVotesHandler(ctx context.Context) (httptransport.ResetResponse, error) {
	if err := h.Votes.ResetAll(ctx); err != nil {
		return httptransport.ResetResponse{}, err
	}
	return httptransport.ResetResponse{Message: "All votes have been reset successfully"}, nil
}
