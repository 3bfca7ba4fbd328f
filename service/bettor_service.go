package service

import (
	"context"
	"fmt"

	"boliche/models"
	"boliche/schema"
)

type bettorService struct {
	bettors BettorRepository
}

// NewBettorService creates a new bettor service
func NewBettorService(bettors BettorRepository) BettorService {
	return &bettorService{bettors: bettors}
}

// List returns all bettors.
func (s *bettorService) List(ctx context.Context) ([]*models.Bettor, error) {
	return s.bettors.List(ctx)
}

// Get retrieves a bettor by id.
func (s *bettorService) Get(ctx context.Context, id string) (*models.Bettor, error) {
	return s.bettors.GetByID(ctx, id)
}

// Create validates and stores a new bettor with zeroed totals.
func (s *bettorService) Create(ctx context.Context, in *models.BettorCreate) (*models.Bettor, error) {
	if err := schema.ValidateBettorCreate(in); err != nil {
		return nil, err
	}
	bettor, err := s.bettors.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create bettor: %w", err)
	}
	return bettor, nil
}

// Update validates and applies a partial profile edit. The derived totals
// are not editable through this path.
func (s *bettorService) Update(ctx context.Context, id string, in *models.BettorUpdate) (*models.Bettor, error) {
	if err := schema.ValidateBettorUpdate(in); err != nil {
		return nil, err
	}
	bettor, err := s.bettors.Update(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("failed to update bettor %s: %w", id, err)
	}
	return bettor, nil
}

// Delete removes a bettor. The repository's referential-integrity guard is
// surfaced unchanged so callers can branch on its error code.
func (s *bettorService) Delete(ctx context.Context, id string) error {
	return s.bettors.Delete(ctx, id)
}
