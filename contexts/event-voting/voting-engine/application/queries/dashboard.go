package queries

import (
	"context"

	"ovation/contexts/event-voting/voting-engine/domain/entities"
	"ovation/contexts/event-voting/voting-engine/ports"
)

const recentVotesLimit = 10

// StatisticsUseCase aggregates verified records per contestant: weighted
// totals, voter counts, and the admin-weighted share.
type StatisticsUseCase struct {
	Ledger ports.VerificationLedger
}

func (uc StatisticsUseCase) Statistics(ctx context.Context) ([]entities.ContestantStatistics, error) {
	return uc.Ledger.StatisticsByContestant(ctx)
}

// DashboardResult is the admin overview: standings plus ledger totals and the
// most recent verified votes.
type DashboardResult struct {
	Contestants []entities.ContestantProjection
	Totals      entities.DashboardTotals
	RecentVotes []entities.RecentVote
}

type DashboardUseCase struct {
	Ledger      ports.VerificationLedger
	Contestants ports.ContestantDirectory
}

func (uc DashboardUseCase) Dashboard(ctx context.Context) (DashboardResult, error) {
	contestants, err := uc.Contestants.ListActiveByVotes(ctx)
	if err != nil {
		return DashboardResult{}, err
	}
	totalVotes, err := uc.Ledger.CountVerified(ctx)
	if err != nil {
		return DashboardResult{}, err
	}
	totalVoters, err := uc.Ledger.CountDistinctVerifiedVoters(ctx)
	if err != nil {
		return DashboardResult{}, err
	}
	recent, err := uc.Ledger.ListRecentVerified(ctx, recentVotesLimit)
	if err != nil {
		return DashboardResult{}, err
	}
	return DashboardResult{
		Contestants: contestants,
		Totals: entities.DashboardTotals{
			TotalVotes:       totalVotes,
			TotalVoters:      totalVoters,
			TotalContestants: len(contestants),
		},
		RecentVotes: recent,
	}, nil
}
