package repository

import (
	"context"
	"fmt"

	"boliche/airtable"
)

// stubClient implements recordClient with overridable behavior per call.
// Unset operations fail loudly so a test only exercises what it wired.
type stubClient struct {
	listPage     func(ctx context.Context, table string, opts airtable.ListOptions) ([]airtable.Record, string, error)
	listAll      func(ctx context.Context, table string, opts airtable.ListOptions, maxPages int) ([]airtable.Record, error)
	getRecord    func(ctx context.Context, table, id string) (*airtable.Record, error)
	createRecord func(ctx context.Context, table string, fields map[string]any) (*airtable.Record, error)
	updateRecord func(ctx context.Context, table, id string, fields map[string]any) (*airtable.Record, error)
	deleteRecord func(ctx context.Context, table, id string) error
}

func (s *stubClient) ListPage(ctx context.Context, table string, opts airtable.ListOptions) ([]airtable.Record, string, error) {
	if s.listPage == nil {
		return nil, "", fmt.Errorf("unexpected ListPage call on %s", table)
	}
	return s.listPage(ctx, table, opts)
}

func (s *stubClient) ListAll(ctx context.Context, table string, opts airtable.ListOptions, maxPages int) ([]airtable.Record, error) {
	if s.listAll == nil {
		return nil, fmt.Errorf("unexpected ListAll call on %s", table)
	}
	return s.listAll(ctx, table, opts, maxPages)
}

func (s *stubClient) GetRecord(ctx context.Context, table, id string) (*airtable.Record, error) {
	if s.getRecord == nil {
		return nil, fmt.Errorf("unexpected GetRecord call on %s", table)
	}
	return s.getRecord(ctx, table, id)
}

func (s *stubClient) CreateRecord(ctx context.Context, table string, fields map[string]any) (*airtable.Record, error) {
	if s.createRecord == nil {
		return nil, fmt.Errorf("unexpected CreateRecord call on %s", table)
	}
	return s.createRecord(ctx, table, fields)
}

func (s *stubClient) UpdateRecord(ctx context.Context, table, id string, fields map[string]any) (*airtable.Record, error) {
	if s.updateRecord == nil {
		return nil, fmt.Errorf("unexpected UpdateRecord call on %s", table)
	}
	return s.updateRecord(ctx, table, id, fields)
}

func (s *stubClient) DeleteRecord(ctx context.Context, table, id string) error {
	if s.deleteRecord == nil {
		return fmt.Errorf("unexpected DeleteRecord call on %s", table)
	}
	return s.deleteRecord(ctx, table, id)
}
