package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boliche/airtable"
	"boliche/models"
)

func TestWagerListBuildsServerFormula(t *testing.T) {
	var gotOpts airtable.ListOptions
	var gotMaxPages int
	client := &stubClient{
		listAll: func(_ context.Context, table string, opts airtable.ListOptions, maxPages int) ([]airtable.Record, error) {
			assert.Equal(t, tableWagers, table)
			gotOpts = opts
			gotMaxPages = maxPages
			return nil, nil
		},
	}
	repo := NewWagerRepository(client)

	won := models.WagerStateWon
	_, err := repo.List(context.Background(), models.WagerFilter{State: &won, BettorID: "rec123"})
	require.NoError(t, err)

	assert.Equal(t, "AND({Estado} = 'Ganada', {Apostador_ID} = 'rec123')", gotOpts.FilterByFormula)
	assert.Equal(t, "Fecha_Creacion", gotOpts.SortField)
	assert.True(t, gotOpts.SortDesc)
	assert.Equal(t, 0, gotMaxPages, "owner listings must walk every page")
}

func TestWagerListWithoutFilterSendsNoFormula(t *testing.T) {
	var gotOpts airtable.ListOptions
	client := &stubClient{
		listAll: func(_ context.Context, _ string, opts airtable.ListOptions, _ int) ([]airtable.Record, error) {
			gotOpts = opts
			return nil, nil
		},
	}
	repo := NewWagerRepository(client)

	_, err := repo.List(context.Background(), models.WagerFilter{})
	require.NoError(t, err)
	assert.Empty(t, gotOpts.FilterByFormula)
}

func TestWagerListDecodesRecords(t *testing.T) {
	client := &stubClient{
		listAll: func(_ context.Context, _ string, _ airtable.ListOptions, _ int) ([]airtable.Record, error) {
			return []airtable.Record{{
				ID: "recW1",
				Fields: map[string]any{
					"Apostador_ID":       "rec123",
					"Apostador_Nombre":   "Ana",
					"Torneo":             "XII Empresarial",
					"Tipo_Apuesta":       "Campeon",
					"Monto":              100.0,
					"Odds":               1.5,
					"Estado":             "Pendiente",
					"Ganancia_Potencial": 150.0,
					"Ganancia_Real":      0.0,
				},
			}}, nil
		},
	}
	repo := NewWagerRepository(client)

	wagers, err := repo.List(context.Background(), models.WagerFilter{})
	require.NoError(t, err)
	require.Len(t, wagers, 1)

	w := wagers[0]
	assert.Equal(t, "recW1", w.ID)
	assert.Equal(t, "rec123", w.BettorID)
	assert.Equal(t, "Ana", w.BettorName)
	assert.Equal(t, models.WagerStatePending, w.State)
	assert.Equal(t, 150.0, w.PotentialGain)
}

func TestWagerUpdatePatchIsPartial(t *testing.T) {
	var gotFields map[string]any
	client := &stubClient{
		updateRecord: func(_ context.Context, _ string, id string, fields map[string]any) (*airtable.Record, error) {
			assert.Equal(t, "recW1", id)
			gotFields = fields
			return &airtable.Record{ID: "recW1", Fields: map[string]any{"Estado": "Ganada"}}, nil
		},
	}
	repo := NewWagerRepository(client)

	won := models.WagerStateWon
	_, err := repo.Update(context.Background(), "recW1", &models.WagerUpdate{State: &won})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"Estado": "Ganada"}, gotFields)
}

func TestWagerCreateRoundTripsFields(t *testing.T) {
	var gotFields map[string]any
	client := &stubClient{
		createRecord: func(_ context.Context, table string, fields map[string]any) (*airtable.Record, error) {
			assert.Equal(t, tableWagers, table)
			gotFields = fields
			return &airtable.Record{ID: "recNew", Fields: fields}, nil
		},
	}
	repo := NewWagerRepository(client)

	created, err := repo.Create(context.Background(), &models.Wager{
		BettorID:      "rec123",
		Tournament:    "XII Empresarial",
		WagerType:     "Campeon",
		Amount:        100,
		Odds:          1.5,
		State:         models.WagerStatePending,
		PotentialGain: 150,
	})
	require.NoError(t, err)
	assert.Equal(t, "recNew", created.ID)
	assert.Equal(t, "rec123", gotFields["Apostador_ID"])
	assert.NotContains(t, gotFields, "ID", "the record id never travels as a field")
}
