package service

import (
	"context"
	"fmt"

	"boliche/events"
	"boliche/models"
	"boliche/schema"
)

type penaltyService struct {
	penalties PenaltyRepository
	publisher EventPublisher
}

// NewPenaltyService creates a new bocana service
func NewPenaltyService(penalties PenaltyRepository, publisher EventPublisher) PenaltyService {
	return &penaltyService{penalties: penalties, publisher: publisher}
}

// List returns bocanas matching the filter.
func (s *penaltyService) List(ctx context.Context, filter models.PenaltyFilter) ([]*models.Penalty, error) {
	return s.penalties.List(ctx, filter)
}

// Page returns one page of bocanas plus a continuation token.
func (s *penaltyService) Page(ctx context.Context, filter models.PenaltyFilter, offset string) ([]*models.Penalty, string, error) {
	return s.penalties.Page(ctx, filter, offset)
}

// Create validates and stores a new bocana, pending by default.
func (s *penaltyService) Create(ctx context.Context, in *models.PenaltyCreate) (*models.Penalty, error) {
	if err := schema.ValidatePenaltyCreate(in); err != nil {
		return nil, err
	}
	penalty, err := s.penalties.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	return penalty, nil
}

// Update validates and applies a partial bocana edit.
func (s *penaltyService) Update(ctx context.Context, id string, in *models.PenaltyUpdate) (*models.Penalty, error) {
	if err := schema.ValidatePenaltyUpdate(in); err != nil {
		return nil, err
	}
	return s.penalties.Update(ctx, id, in)
}

// MarkPaid settles a bocana: state and food item go out in one write so the
// record is never paid without its food or vice versa.
func (s *penaltyService) MarkPaid(ctx context.Context, id, food string) (*models.Penalty, error) {
	state := models.PenaltyStatePaid
	update := &models.PenaltyUpdate{State: &state, Food: &food}
	if err := schema.ValidatePenaltyUpdate(update); err != nil {
		return nil, err
	}
	penalty, err := s.penalties.Update(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("failed to settle penalty %s: %w", id, err)
	}
	if s.publisher != nil {
		s.publisher.Emit(ctx, events.PenaltyPaidEvent{
			PenaltyID: penalty.ID,
			PlayerID:  penalty.PlayerID,
			Food:      penalty.Food,
		})
	}
	return penalty, nil
}

// Delete removes a bocana by id.
func (s *penaltyService) Delete(ctx context.Context, id string) error {
	return s.penalties.Delete(ctx, id)
}

// FoodOptions returns the advisory food list merged with whatever items
// already appear in the data.
func (s *penaltyService) FoodOptions(ctx context.Context) ([]string, error) {
	return s.penalties.FoodOptions(ctx, schema.RecommendedFoods)
}
