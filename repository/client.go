package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"boliche/airtable"
)

const (
	tableBettors   = "Apostadores"
	tableWagers    = "Apuestas"
	tablePenalties = "Bocanas"
)

// pageSize keeps individual requests small to stay friendly with the record
// store's rate limits.
const pageSize = 50

// recordClient is the subset of the record store client the repositories
// depend on.
type recordClient interface {
	ListPage(ctx context.Context, table string, opts airtable.ListOptions) ([]airtable.Record, string, error)
	ListAll(ctx context.Context, table string, opts airtable.ListOptions, maxPages int) ([]airtable.Record, error)
	GetRecord(ctx context.Context, table, id string) (*airtable.Record, error)
	CreateRecord(ctx context.Context, table string, fields map[string]any) (*airtable.Record, error)
	UpdateRecord(ctx context.Context, table, id string, fields map[string]any) (*airtable.Record, error)
	DeleteRecord(ctx context.Context, table, id string) error
}

// decodeFields unmarshals a record's field map into a typed model via its
// json tags.
func decodeFields(fields map[string]any, out any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode record fields: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode record fields: %w", err)
	}
	return nil
}

// encodeFields marshals a typed payload into the field map sent to the
// record store. Pointer fields tagged omitempty drop out when nil, which is
// what makes partial updates partial.
func encodeFields(in any) (map[string]any, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to build field map: %w", err)
	}
	return fields, nil
}
