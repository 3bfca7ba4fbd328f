package service

import (
	"context"

	"boliche/events"
	"boliche/models"
)

// BettorRepository defines the interface for bettor data access
type BettorRepository interface {
	// List returns all bettors sorted by name (cached with a freshness window)
	List(ctx context.Context) ([]*models.Bettor, error)

	// GetByID retrieves a bettor by record id
	GetByID(ctx context.Context, id string) (*models.Bettor, error)

	// Create stores a new bettor with zeroed totals
	Create(ctx context.Context, in *models.BettorCreate) (*models.Bettor, error)

	// Update edits profile fields only
	Update(ctx context.Context, id string, in *models.BettorUpdate) (*models.Bettor, error)

	// UpdateTotals writes the three derived monetary fields (reconciler only)
	UpdateTotals(ctx context.Context, id string, wagered, won, balance float64) error

	// Delete removes a bettor, failing with a referential-integrity error
	// while wagers still reference it
	Delete(ctx context.Context, id string) error
}

// WagerRepository defines the interface for wager data access
type WagerRepository interface {
	// List returns wagers newest first, optionally filtered by state/owner
	List(ctx context.Context, filter models.WagerFilter) ([]*models.Wager, error)

	// GetByID retrieves a wager by record id
	GetByID(ctx context.Context, id string) (*models.Wager, error)

	// Create stores a fully-populated wager
	Create(ctx context.Context, w *models.Wager) (*models.Wager, error)

	// Update patches the given fields of a wager
	Update(ctx context.Context, id string, in *models.WagerUpdate) (*models.Wager, error)

	// Delete removes a wager by id
	Delete(ctx context.Context, id string) error
}

// PenaltyRepository defines the interface for bocana data access
type PenaltyRepository interface {
	// List returns bocanas matching the filter (player filter applied client-side)
	List(ctx context.Context, filter models.PenaltyFilter) ([]*models.Penalty, error)

	// Page returns one page of bocanas plus a continuation token
	Page(ctx context.Context, filter models.PenaltyFilter, offset string) ([]*models.Penalty, string, error)

	// Create stores a new bocana using relation-field fallback probing
	Create(ctx context.Context, in *models.PenaltyCreate) (*models.Penalty, error)

	// Update patches a bocana, probing only when the player reference changes
	Update(ctx context.Context, id string, in *models.PenaltyUpdate) (*models.Penalty, error)

	// Delete removes a bocana by id
	Delete(ctx context.Context, id string) error

	// FoodOptions returns distinct food items merged with the defaults
	FoodOptions(ctx context.Context, defaults []string) ([]string, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Emit(ctx context.Context, event events.Event)
}

// BettorService defines the interface for bettor operations
type BettorService interface {
	List(ctx context.Context) ([]*models.Bettor, error)
	Get(ctx context.Context, id string) (*models.Bettor, error)
	Create(ctx context.Context, in *models.BettorCreate) (*models.Bettor, error)
	Update(ctx context.Context, id string, in *models.BettorUpdate) (*models.Bettor, error)
	Delete(ctx context.Context, id string) error
}

// WagerService defines the interface for wager operations
type WagerService interface {
	List(ctx context.Context, filter models.WagerFilter) ([]*models.Wager, error)
	Get(ctx context.Context, id string) (*models.Wager, error)

	// Create validates, computes the potential gain, fills the owner display
	// name best-effort and reconciles the owner's totals
	Create(ctx context.Context, in *models.WagerCreate) (*models.Wager, error)

	// Update validates, computes realized gain and resolution timestamp on
	// state transitions, and reconciles old (and, on reassignment, new) owner
	Update(ctx context.Context, id string, in *models.WagerUpdate) (*models.Wager, error)

	// Delete removes the wager and reconciles its former owner
	Delete(ctx context.Context, id string) error
}

// PenaltyService defines the interface for bocana operations
type PenaltyService interface {
	List(ctx context.Context, filter models.PenaltyFilter) ([]*models.Penalty, error)
	Page(ctx context.Context, filter models.PenaltyFilter, offset string) ([]*models.Penalty, string, error)
	Create(ctx context.Context, in *models.PenaltyCreate) (*models.Penalty, error)
	Update(ctx context.Context, id string, in *models.PenaltyUpdate) (*models.Penalty, error)

	// MarkPaid settles a bocana, setting state and food item in one write
	MarkPaid(ctx context.Context, id, food string) (*models.Penalty, error)

	Delete(ctx context.Context, id string) error
	FoodOptions(ctx context.Context) ([]string, error)
}

// Reconciler recomputes a bettor's derived totals from its wager set
type Reconciler interface {
	Reconcile(ctx context.Context, bettorID string) error
}

// StatsService defines the interface for the dashboard rollup
type StatsService interface {
	GetStats(ctx context.Context) (*models.Stats, error)
}
