package repository

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"boliche/airtable"
	"boliche/models"
)

// WagerRepository provides typed CRUD over the Apuestas table. State and
// owner filters are pushed server-side; Apostador_ID is a plain text column
// so no schema probing is needed.
type WagerRepository struct {
	client recordClient
}

// NewWagerRepository creates a wager repository.
func NewWagerRepository(client recordClient) *WagerRepository {
	return &WagerRepository{client: client}
}

// List returns wagers newest first, optionally filtered by state and owner.
func (r *WagerRepository) List(ctx context.Context, filter models.WagerFilter) ([]*models.Wager, error) {
	var conds []string
	if filter.State != nil {
		conds = append(conds, airtable.EqText("Estado", string(*filter.State)))
	}
	if filter.BettorID != "" {
		conds = append(conds, airtable.EqText("Apostador_ID", filter.BettorID))
	}
	opts := airtable.ListOptions{
		FilterByFormula: airtable.And(conds...),
		SortField:       "Fecha_Creacion",
		SortDesc:        true,
	}
	records, err := r.client.ListAll(ctx, tableWagers, opts, 0)
	if err != nil {
		log.WithError(err).Error("failed to list wagers")
		return nil, fmt.Errorf("failed to list wagers: %w", err)
	}
	wagers := make([]*models.Wager, 0, len(records))
	for _, rec := range records {
		w := &models.Wager{}
		if err := decodeFields(rec.Fields, w); err != nil {
			return nil, err
		}
		w.ID = rec.ID
		wagers = append(wagers, w)
	}
	return wagers, nil
}

// GetByID fetches a single wager.
func (r *WagerRepository) GetByID(ctx context.Context, id string) (*models.Wager, error) {
	rec, err := r.client.GetRecord(ctx, tableWagers, id)
	if err != nil {
		log.WithError(err).WithField("wagerID", id).Error("failed to get wager")
		return nil, fmt.Errorf("failed to get wager %s: %w", id, err)
	}
	w := &models.Wager{}
	if err := decodeFields(rec.Fields, w); err != nil {
		return nil, err
	}
	w.ID = rec.ID
	return w, nil
}

// Create stores a fully-populated wager (derived fields already computed by
// the service).
func (r *WagerRepository) Create(ctx context.Context, w *models.Wager) (*models.Wager, error) {
	fields, err := encodeFields(w)
	if err != nil {
		return nil, err
	}
	rec, err := r.client.CreateRecord(ctx, tableWagers, fields)
	if err != nil {
		log.WithError(err).Error("failed to create wager")
		return nil, fmt.Errorf("failed to create wager: %w", err)
	}
	created := &models.Wager{}
	if err := decodeFields(rec.Fields, created); err != nil {
		return nil, err
	}
	created.ID = rec.ID
	return created, nil
}

// Update patches the given fields of a wager.
func (r *WagerRepository) Update(ctx context.Context, id string, in *models.WagerUpdate) (*models.Wager, error) {
	fields, err := encodeFields(in)
	if err != nil {
		return nil, err
	}
	rec, err := r.client.UpdateRecord(ctx, tableWagers, id, fields)
	if err != nil {
		log.WithError(err).WithField("wagerID", id).Error("failed to update wager")
		return nil, fmt.Errorf("failed to update wager %s: %w", id, err)
	}
	updated := &models.Wager{}
	if err := decodeFields(rec.Fields, updated); err != nil {
		return nil, err
	}
	updated.ID = rec.ID
	return updated, nil
}

// Delete removes a wager by id.
func (r *WagerRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.DeleteRecord(ctx, tableWagers, id); err != nil {
		log.WithError(err).WithField("wagerID", id).Error("failed to delete wager")
		return fmt.Errorf("failed to delete wager %s: %w", id, err)
	}
	return nil
}
