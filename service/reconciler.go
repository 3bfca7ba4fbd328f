package service

import (
	"context"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"boliche/events"
	"boliche/models"
)

// reconciler is the only writer of a bettor's derived totals. It performs a
// full re-read of the owner's wager set followed by a write; two
// reconciliations racing for the same bettor are last-write-wins since the
// backend offers no transactions.
type reconciler struct {
	bettors   BettorRepository
	wagers    WagerRepository
	publisher EventPublisher
}

// NewReconciler creates the totals reconciler.
func NewReconciler(bettors BettorRepository, wagers WagerRepository, publisher EventPublisher) Reconciler {
	return &reconciler{bettors: bettors, wagers: wagers, publisher: publisher}
}

// Reconcile recomputes total wagered, total won and balance for a bettor
// from its current wager set and writes them back rounded to two decimals.
// Total won counts winnings only: a lost wager's negative realized gain is
// not subtracted here, the balance nets it out through total wagered.
func (r *reconciler) Reconcile(ctx context.Context, bettorID string) error {
	wagers, err := r.wagers.List(ctx, models.WagerFilter{BettorID: bettorID})
	if err != nil {
		return fmt.Errorf("failed to load wagers for reconciliation of bettor %s: %w", bettorID, err)
	}

	var wagered, won float64
	for _, w := range wagers {
		wagered += w.Amount
		if w.State == models.WagerStateWon {
			won += w.RealizedGain
		}
	}
	wagered = round2(wagered)
	won = round2(won)
	balance := round2(won - wagered)

	if err := r.bettors.UpdateTotals(ctx, bettorID, wagered, won, balance); err != nil {
		return fmt.Errorf("failed to write reconciled totals for bettor %s: %w", bettorID, err)
	}

	log.WithFields(log.Fields{
		"bettorID":     bettorID,
		"totalWagered": wagered,
		"totalWon":     won,
		"balance":      balance,
	}).Debug("reconciled bettor totals")

	if r.publisher != nil {
		r.publisher.Emit(ctx, events.BettorReconciledEvent{
			BettorID:     bettorID,
			TotalWagered: wagered,
			TotalWon:     won,
			Balance:      balance,
		})
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
