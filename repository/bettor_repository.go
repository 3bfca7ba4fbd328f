package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"boliche/airtable"
	"boliche/models"
)

// defaultBettorCacheTTL is the freshness window for the bettor list cache.
const defaultBettorCacheTTL = 60 * time.Second

// wagerFinder is the slice of the wager repository the bettor repository
// needs for its referential-integrity guard.
type wagerFinder interface {
	List(ctx context.Context, filter models.WagerFilter) ([]*models.Wager, error)
}

// BettorRepository provides typed CRUD over the Apostadores table. The full
// listing is cached with a fixed freshness window and concurrent callers
// share a single in-flight fetch.
type BettorRepository struct {
	client recordClient
	wagers wagerFinder
	ttl    time.Duration

	mu       sync.Mutex
	cached   []*models.Bettor
	cachedAt time.Time
	flight   singleflight.Group
}

// NewBettorRepository creates a bettor repository. wagers backs the delete
// guard.
func NewBettorRepository(client recordClient, wagers wagerFinder, ttl time.Duration) *BettorRepository {
	if ttl <= 0 {
		ttl = defaultBettorCacheTTL
	}
	return &BettorRepository{client: client, wagers: wagers, ttl: ttl}
}

// List returns all bettors sorted by name. Results are served from the
// cache while fresh; the cache is invalidated only by time expiry, never on
// write, so totals may lag a reconciliation by up to the freshness window.
func (r *BettorRepository) List(ctx context.Context) ([]*models.Bettor, error) {
	r.mu.Lock()
	if r.cached != nil && time.Since(r.cachedAt) < r.ttl {
		cached := r.cached
		r.mu.Unlock()
		return cached, nil
	}
	r.mu.Unlock()

	v, err, _ := r.flight.Do("bettors", func() (any, error) {
		records, err := r.client.ListAll(ctx, tableBettors, airtable.ListOptions{
			SortField: "Nombre",
			PageSize:  pageSize,
		}, 1)
		if err != nil {
			return nil, err
		}
		bettors := make([]*models.Bettor, 0, len(records))
		for _, rec := range records {
			b := &models.Bettor{}
			if err := decodeFields(rec.Fields, b); err != nil {
				return nil, err
			}
			b.ID = rec.ID
			bettors = append(bettors, b)
		}
		r.mu.Lock()
		r.cached = bettors
		r.cachedAt = time.Now()
		r.mu.Unlock()
		return bettors, nil
	})
	if err != nil {
		log.WithError(err).Error("failed to list bettors")
		return nil, fmt.Errorf("failed to list bettors: %w", err)
	}
	return v.([]*models.Bettor), nil
}

// GetByID fetches a single bettor.
func (r *BettorRepository) GetByID(ctx context.Context, id string) (*models.Bettor, error) {
	rec, err := r.client.GetRecord(ctx, tableBettors, id)
	if err != nil {
		log.WithError(err).WithField("bettorID", id).Error("failed to get bettor")
		return nil, fmt.Errorf("failed to get bettor %s: %w", id, err)
	}
	b := &models.Bettor{}
	if err := decodeFields(rec.Fields, b); err != nil {
		return nil, err
	}
	b.ID = rec.ID
	return b, nil
}

// Create stores a new bettor with zeroed totals and today's registration
// date.
func (r *BettorRepository) Create(ctx context.Context, in *models.BettorCreate) (*models.Bettor, error) {
	fields, err := encodeFields(in)
	if err != nil {
		return nil, err
	}
	fields["Activo"] = in.Active
	fields["Fecha_Registro"] = time.Now().UTC().Format("2006-01-02")
	fields["Total_Apostado"] = 0
	fields["Total_Ganado"] = 0
	fields["Balance"] = 0

	rec, err := r.client.CreateRecord(ctx, tableBettors, fields)
	if err != nil {
		log.WithError(err).Error("failed to create bettor")
		return nil, fmt.Errorf("failed to create bettor: %w", err)
	}
	b := &models.Bettor{}
	if err := decodeFields(rec.Fields, b); err != nil {
		return nil, err
	}
	b.ID = rec.ID
	return b, nil
}

// Update edits profile fields only. The derived totals are not reachable
// from BettorUpdate; they belong to UpdateTotals.
func (r *BettorRepository) Update(ctx context.Context, id string, in *models.BettorUpdate) (*models.Bettor, error) {
	fields, err := encodeFields(in)
	if err != nil {
		return nil, err
	}
	rec, err := r.client.UpdateRecord(ctx, tableBettors, id, fields)
	if err != nil {
		log.WithError(err).WithField("bettorID", id).Error("failed to update bettor")
		return nil, fmt.Errorf("failed to update bettor %s: %w", id, err)
	}
	b := &models.Bettor{}
	if err := decodeFields(rec.Fields, b); err != nil {
		return nil, err
	}
	b.ID = rec.ID
	return b, nil
}

// UpdateTotals writes the three derived monetary fields. The totals
// reconciler is the only caller.
func (r *BettorRepository) UpdateTotals(ctx context.Context, id string, wagered, won, balance float64) error {
	fields := map[string]any{
		"Total_Apostado": wagered,
		"Total_Ganado":   won,
		"Balance":        balance,
	}
	if _, err := r.client.UpdateRecord(ctx, tableBettors, id, fields); err != nil {
		log.WithError(err).WithField("bettorID", id).Error("failed to update bettor totals")
		return fmt.Errorf("failed to update totals for bettor %s: %w", id, err)
	}
	return nil
}

// Delete removes a bettor unless wagers still reference it, in which case
// ErrBettorHasWagers is returned and nothing is deleted.
func (r *BettorRepository) Delete(ctx context.Context, id string) error {
	wagers, err := r.wagers.List(ctx, models.WagerFilter{BettorID: id})
	if err != nil {
		return fmt.Errorf("failed to check wagers before deleting bettor %s: %w", id, err)
	}
	if len(wagers) > 0 {
		return ErrBettorHasWagers
	}
	if err := r.client.DeleteRecord(ctx, tableBettors, id); err != nil {
		log.WithError(err).WithField("bettorID", id).Error("failed to delete bettor")
		return fmt.Errorf("failed to delete bettor %s: %w", id, err)
	}
	return nil
}
