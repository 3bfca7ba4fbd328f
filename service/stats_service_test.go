package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"boliche/models"
)

func TestComputeStats(t *testing.T) {
	bettors := []*models.Bettor{
		{ID: "rec1", Active: true},
		{ID: "rec2", Active: true},
		{ID: "rec3", Active: false},
	}
	wagers := []*models.Wager{
		{Amount: 100, State: models.WagerStatePending, PotentialGain: 150},
		{Amount: 50, State: models.WagerStatePending, PotentialGain: 100},
		{Amount: 200, State: models.WagerStateWon, PotentialGain: 400, RealizedGain: 400},
		{Amount: 80, State: models.WagerStateLost, PotentialGain: 120, RealizedGain: -80},
	}

	stats := ComputeStats(bettors, wagers)

	assert.Equal(t, 3, stats.TotalBettors)
	assert.Equal(t, 2, stats.ActiveBettors)
	assert.Equal(t, 4, stats.TotalWagers)
	assert.Equal(t, 2, stats.PendingWagers)
	assert.Equal(t, 1, stats.WonWagers)
	assert.Equal(t, 1, stats.LostWagers)
	assert.Equal(t, 430.0, stats.TotalAmountWagered)
	assert.Equal(t, 150.0, stats.PendingAmount)
	assert.Equal(t, 250.0, stats.PendingPotentialGain)
	assert.Equal(t, 320.0, stats.TotalRealizedGain)
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil, nil)
	assert.Equal(t, &models.Stats{}, stats)
}

func TestGetStatsCombinesBothCollections(t *testing.T) {
	bettors := new(MockBettorRepository)
	wagers := new(MockWagerRepository)

	bettors.On("List", mock.Anything).Return([]*models.Bettor{{ID: "rec1", Active: true}}, nil)
	wagers.On("List", mock.Anything, models.WagerFilter{}).Return([]*models.Wager{
		{Amount: 100, State: models.WagerStatePending, PotentialGain: 150},
	}, nil)

	svc := NewStatsService(bettors, wagers)
	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalBettors)
	assert.Equal(t, 1, stats.PendingWagers)
	assert.Equal(t, 150.0, stats.PendingPotentialGain)
}

func TestGetStatsFailsWhenEitherFetchFails(t *testing.T) {
	bettors := new(MockBettorRepository)
	wagers := new(MockWagerRepository)

	bettors.On("List", mock.Anything).Return([]*models.Bettor{}, nil)
	wagers.On("List", mock.Anything, models.WagerFilter{}).Return(nil, fmt.Errorf("record store down"))

	svc := NewStatsService(bettors, wagers)
	_, err := svc.GetStats(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statistics")
}
