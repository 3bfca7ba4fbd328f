package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"boliche/models"
)

type statsService struct {
	bettors BettorRepository
	wagers  WagerRepository
}

// NewStatsService creates a new stats service
func NewStatsService(bettors BettorRepository, wagers WagerRepository) StatsService {
	return &statsService{bettors: bettors, wagers: wagers}
}

// GetStats fetches the bettor and wager collections in parallel and
// computes the dashboard rollup.
func (s *statsService) GetStats(ctx context.Context) (*models.Stats, error) {
	var (
		bettors []*models.Bettor
		wagers  []*models.Wager
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bettors, err = s.bettors.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		wagers, err = s.wagers.List(gctx, models.WagerFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load statistics inputs: %w", err)
	}
	return ComputeStats(bettors, wagers), nil
}

// ComputeStats is the pure rollup over the full collections. No side
// effects, no caching beyond what the repositories already do.
func ComputeStats(bettors []*models.Bettor, wagers []*models.Wager) *models.Stats {
	stats := &models.Stats{
		TotalBettors: len(bettors),
		TotalWagers:  len(wagers),
	}
	for _, b := range bettors {
		if b.Active {
			stats.ActiveBettors++
		}
	}
	for _, w := range wagers {
		stats.TotalAmountWagered += w.Amount
		stats.TotalRealizedGain += w.RealizedGain
		switch w.State {
		case models.WagerStatePending:
			stats.PendingWagers++
			stats.PendingAmount += w.Amount
			stats.PendingPotentialGain += w.PotentialGain
		case models.WagerStateWon:
			stats.WonWagers++
		case models.WagerStateLost:
			stats.LostWagers++
		}
	}
	return stats
}
