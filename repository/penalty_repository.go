package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"boliche/airtable"
	"boliche/models"
)

// playerFieldCandidates are the possible names of the relation column that
// links a bocana to its player, in probing order. The exact schema differs
// between deployments.
var playerFieldCandidates = []string{"Jugador_ID", "Jugador"}

// linkAttempt is one write strategy for the player relation: a candidate
// field name paired with a candidate value shape.
type linkAttempt struct {
	field string
	value any
}

// linkAttempts enumerates field-name x shape combinations in fixed order:
// list form first (link-to-record), then bare string, for each candidate
// name.
func linkAttempts(playerID string) []linkAttempt {
	attempts := make([]linkAttempt, 0, len(playerFieldCandidates)*2)
	for _, field := range playerFieldCandidates {
		attempts = append(attempts,
			linkAttempt{field: field, value: []string{playerID}},
			linkAttempt{field: field, value: playerID},
		)
	}
	return attempts
}

// PenaltyRepository provides typed CRUD over the Bocanas table. Writes that
// set the player relation probe the candidate field names and shapes; reads
// filtered by player apply the filter client-side after fetch.
type PenaltyRepository struct {
	client recordClient
}

// NewPenaltyRepository creates a bocana repository.
func NewPenaltyRepository(client recordClient) *PenaltyRepository {
	return &PenaltyRepository{client: client}
}

func (r *PenaltyRepository) serverFormula(filter models.PenaltyFilter) string {
	var conds []string
	if filter.State != nil {
		conds = append(conds, airtable.EqText("Status", string(*filter.State)))
	}
	if filter.Tournament != nil {
		conds = append(conds, airtable.EqText("Torneo", string(*filter.Tournament)))
	}
	if filter.Round != nil {
		conds = append(conds, airtable.EqNumber("Jornada", float64(*filter.Round)))
	}
	return airtable.And(conds...)
}

// List returns bocanas matching the filter. State, tournament and round are
// evaluated server-side; the player filter is applied locally because the
// relation column name is not statically known.
func (r *PenaltyRepository) List(ctx context.Context, filter models.PenaltyFilter) ([]*models.Penalty, error) {
	opts := airtable.ListOptions{
		FilterByFormula: r.serverFormula(filter),
		PageSize:        pageSize,
	}
	records, err := r.client.ListAll(ctx, tablePenalties, opts, 1)
	if err != nil {
		log.WithError(err).Error("failed to list penalties")
		return nil, fmt.Errorf("failed to list penalties: %w", err)
	}
	return r.decodeFiltered(records, filter)
}

// Page returns a single page of bocanas plus the continuation token for the
// next one, for incremental "load more" style listings.
func (r *PenaltyRepository) Page(ctx context.Context, filter models.PenaltyFilter, offset string) ([]*models.Penalty, string, error) {
	opts := airtable.ListOptions{
		FilterByFormula: r.serverFormula(filter),
		PageSize:        pageSize,
		Offset:          offset,
	}
	records, next, err := r.client.ListPage(ctx, tablePenalties, opts)
	if err != nil {
		log.WithError(err).Error("failed to page penalties")
		return nil, "", fmt.Errorf("failed to page penalties: %w", err)
	}
	penalties, err := r.decodeFiltered(records, filter)
	if err != nil {
		return nil, "", err
	}
	return penalties, next, nil
}

func (r *PenaltyRepository) decodeFiltered(records []airtable.Record, filter models.PenaltyFilter) ([]*models.Penalty, error) {
	wantOwner := filter.PlayerID != "" || filter.PlayerName != ""
	penalties := make([]*models.Penalty, 0, len(records))
	for _, rec := range records {
		if wantOwner && !matchesPlayer(rec.Fields, filter.PlayerID, filter.PlayerName) {
			continue
		}
		p, err := decodePenalty(rec)
		if err != nil {
			return nil, err
		}
		penalties = append(penalties, p)
	}
	return penalties, nil
}

// matchesPlayer scans every field value of a record for a case-insensitive
// substring match on the player name, or containment of the player id in a
// string or list value. Correct regardless of which relation column the
// backend schema actually uses.
func matchesPlayer(fields map[string]any, playerID, playerName string) bool {
	name := strings.ToLower(playerName)
	for _, v := range fields {
		switch val := v.(type) {
		case string:
			if name != "" && strings.Contains(strings.ToLower(val), name) {
				return true
			}
			if playerID != "" && strings.Contains(val, playerID) {
				return true
			}
		case []any:
			if playerID == "" {
				continue
			}
			for _, item := range val {
				if s, ok := item.(string); ok && s == playerID {
					return true
				}
			}
		}
	}
	return false
}

func decodePenalty(rec airtable.Record) (*models.Penalty, error) {
	p := &models.Penalty{}
	if err := decodeFields(rec.Fields, p); err != nil {
		return nil, err
	}
	p.ID = rec.ID
	p.PlayerID = extractPlayerID(rec.Fields)
	return p, nil
}

// extractPlayerID pulls the player reference out of whichever candidate
// column and shape the record actually carries.
func extractPlayerID(fields map[string]any) string {
	for _, field := range playerFieldCandidates {
		switch val := fields[field].(type) {
		case string:
			if val != "" {
				return val
			}
		case []any:
			if len(val) > 0 {
				if s, ok := val[0].(string); ok {
					return s
				}
			}
		}
	}
	return ""
}

// Create stores a new bocana, probing the candidate relation field names
// and shapes in order. A 422 means the combination does not exist in this
// schema and the next one is tried; any other error is fatal. The first
// successful write wins.
func (r *PenaltyRepository) Create(ctx context.Context, in *models.PenaltyCreate) (*models.Penalty, error) {
	base, err := encodeFields(in)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for _, attempt := range linkAttempts(in.PlayerID) {
		fields := make(map[string]any, len(base)+1)
		for k, v := range base {
			fields[k] = v
		}
		fields[attempt.field] = attempt.value

		rec, err := r.client.CreateRecord(ctx, tablePenalties, fields)
		if err == nil {
			return decodePenalty(*rec)
		}
		lastErr = err
		if airtable.IsUnprocessable(err) {
			log.WithFields(log.Fields{
				"field": attempt.field,
				"shape": fmt.Sprintf("%T", attempt.value),
			}).Debug("penalty create rejected, trying next relation variant")
			continue
		}
		log.WithError(err).Error("failed to create penalty")
		return nil, fmt.Errorf("failed to create penalty: %w", err)
	}
	return nil, fmt.Errorf("could not create penalty record: %w", lastErr)
}

// Update patches a bocana. When the player reference is unchanged a single
// plain patch is issued; an owner change goes through the same fallback
// probing as create.
func (r *PenaltyRepository) Update(ctx context.Context, id string, in *models.PenaltyUpdate) (*models.Penalty, error) {
	base, err := encodeFields(in)
	if err != nil {
		return nil, err
	}

	if in.PlayerID == nil {
		rec, err := r.client.UpdateRecord(ctx, tablePenalties, id, base)
		if err != nil {
			log.WithError(err).WithField("penaltyID", id).Error("failed to update penalty")
			return nil, fmt.Errorf("failed to update penalty %s: %w", id, err)
		}
		return decodePenalty(*rec)
	}

	var lastErr error
	for _, attempt := range linkAttempts(*in.PlayerID) {
		fields := make(map[string]any, len(base)+1)
		for k, v := range base {
			fields[k] = v
		}
		fields[attempt.field] = attempt.value

		rec, err := r.client.UpdateRecord(ctx, tablePenalties, id, fields)
		if err == nil {
			return decodePenalty(*rec)
		}
		lastErr = err
		if airtable.IsUnprocessable(err) {
			continue
		}
		log.WithError(err).WithField("penaltyID", id).Error("failed to update penalty")
		return nil, fmt.Errorf("failed to update penalty %s: %w", id, err)
	}
	return nil, fmt.Errorf("could not update penalty record: %w", lastErr)
}

// Delete removes a bocana by id.
func (r *PenaltyRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.DeleteRecord(ctx, tablePenalties, id); err != nil {
		log.WithError(err).WithField("penaltyID", id).Error("failed to delete penalty")
		return fmt.Errorf("failed to delete penalty %s: %w", id, err)
	}
	return nil
}

// FoodOptions returns the distinct food items seen across all bocanas
// merged with the recommended defaults, sorted. Used to suggest values when
// settling a bocana; Comida itself stays free text.
func (r *PenaltyRepository) FoodOptions(ctx context.Context, defaults []string) ([]string, error) {
	penalties, err := r.List(ctx, models.PenaltyFilter{})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(defaults))
	for _, d := range defaults {
		seen[d] = true
	}
	for _, p := range penalties {
		if f := strings.TrimSpace(p.Food); f != "" {
			seen[f] = true
		}
	}
	options := make([]string, 0, len(seen))
	for f := range seen {
		options = append(options, f)
	}
	sort.Strings(options)
	return options, nil
}
