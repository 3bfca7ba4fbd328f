package service

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"boliche/events"
	"boliche/models"
	"boliche/schema"
)

type wagerService struct {
	bettors    BettorRepository
	wagers     WagerRepository
	reconciler Reconciler
	publisher  EventPublisher
}

// NewWagerService creates a new wager service
func NewWagerService(bettors BettorRepository, wagers WagerRepository, reconciler Reconciler, publisher EventPublisher) WagerService {
	return &wagerService{
		bettors:    bettors,
		wagers:     wagers,
		reconciler: reconciler,
		publisher:  publisher,
	}
}

// List returns wagers, optionally filtered by state and owner.
func (s *wagerService) List(ctx context.Context, filter models.WagerFilter) ([]*models.Wager, error) {
	return s.wagers.List(ctx, filter)
}

// Get retrieves a wager by id.
func (s *wagerService) Get(ctx context.Context, id string) (*models.Wager, error) {
	return s.wagers.GetByID(ctx, id)
}

// Create validates the payload, fixes the potential gain at amount*odds,
// fills the owner display name best-effort, writes the wager and then
// reconciles the owner's totals. A reconciliation failure after the write
// propagates as a hard failure.
func (s *wagerService) Create(ctx context.Context, in *models.WagerCreate) (*models.Wager, error) {
	if err := schema.ValidateWagerCreate(in); err != nil {
		return nil, err
	}

	w := &models.Wager{
		BettorID:       in.BettorID,
		Tournament:     in.Tournament,
		WagerType:      in.WagerType,
		Description:    in.Description,
		Amount:         in.Amount,
		Odds:           in.Odds,
		ExpectedResult: in.ExpectedResult,
		State:          in.State,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
		PotentialGain:  in.Amount * in.Odds,
		RealizedGain:   0,
	}

	// Best effort: a missing display name never blocks the write.
	if bettor, err := s.bettors.GetByID(ctx, in.BettorID); err == nil {
		w.BettorName = bettor.Name
	} else {
		log.WithError(err).WithField("bettorID", in.BettorID).Warn("could not resolve bettor name for new wager")
	}

	created, err := s.wagers.Create(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("failed to create wager: %w", err)
	}

	if err := s.reconciler.Reconcile(ctx, in.BettorID); err != nil {
		return nil, fmt.Errorf("wager created but totals reconciliation failed: %w", err)
	}
	return created, nil
}

// Update validates a partial payload, auto-computes realized gain and the
// resolution timestamp on a transition to won or lost, writes the patch and
// reconciles the old owner (and the new one when ownership changed). The
// potential gain is never recomputed.
func (s *wagerService) Update(ctx context.Context, id string, in *models.WagerUpdate) (*models.Wager, error) {
	if err := schema.ValidateWagerUpdate(in); err != nil {
		return nil, err
	}

	existing, err := s.wagers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load wager %s before update: %w", id, err)
	}

	patch := *in
	if patch.BettorID != nil {
		if bettor, err := s.bettors.GetByID(ctx, *patch.BettorID); err == nil {
			patch.BettorName = &bettor.Name
		} else {
			log.WithError(err).WithField("bettorID", *patch.BettorID).Warn("could not resolve bettor name for wager reassignment")
		}
	}

	if patch.State != nil && *patch.State != existing.State {
		amount := existing.Amount
		if patch.Amount != nil {
			amount = *patch.Amount
		}
		odds := existing.Odds
		if patch.Odds != nil {
			odds = *patch.Odds
		}
		switch *patch.State {
		case models.WagerStateWon:
			gain := amount * odds
			now := time.Now().UTC().Format(time.RFC3339)
			patch.RealizedGain = &gain
			patch.ResolvedAt = &now
		case models.WagerStateLost:
			gain := -amount
			now := time.Now().UTC().Format(time.RFC3339)
			patch.RealizedGain = &gain
			patch.ResolvedAt = &now
		}
	}

	updated, err := s.wagers.Update(ctx, id, &patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update wager %s: %w", id, err)
	}

	oldOwner := existing.BettorID
	newOwner := oldOwner
	if in.BettorID != nil {
		newOwner = *in.BettorID
	}
	if err := s.reconciler.Reconcile(ctx, oldOwner); err != nil {
		return nil, fmt.Errorf("wager updated but totals reconciliation failed: %w", err)
	}
	if newOwner != oldOwner {
		if err := s.reconciler.Reconcile(ctx, newOwner); err != nil {
			return nil, fmt.Errorf("wager updated but totals reconciliation failed: %w", err)
		}
	}

	if s.publisher != nil && patch.State != nil && *patch.State != existing.State && updated.IsResolved() {
		s.publisher.Emit(ctx, events.WagerResolvedEvent{
			WagerID:      updated.ID,
			BettorID:     updated.BettorID,
			State:        updated.State,
			RealizedGain: updated.RealizedGain,
		})
	}
	return updated, nil
}

// Delete removes a wager and reconciles its former owner's totals.
func (s *wagerService) Delete(ctx context.Context, id string) error {
	existing, err := s.wagers.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load wager %s before delete: %w", id, err)
	}
	if err := s.wagers.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete wager %s: %w", id, err)
	}
	if err := s.reconciler.Reconcile(ctx, existing.BettorID); err != nil {
		return fmt.Errorf("wager deleted but totals reconciliation failed: %w", err)
	}
	return nil
}
