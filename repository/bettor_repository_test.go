package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boliche/airtable"
	"boliche/models"
)

type stubWagerFinder struct {
	wagers []*models.Wager
	err    error
}

func (s *stubWagerFinder) List(_ context.Context, _ models.WagerFilter) ([]*models.Wager, error) {
	return s.wagers, s.err
}

func bettorRecord(id, name string) airtable.Record {
	return airtable.Record{
		ID: id,
		Fields: map[string]any{
			"Nombre":         name,
			"Activo":         true,
			"Total_Apostado": 100.0,
			"Total_Ganado":   40.0,
			"Balance":        -60.0,
		},
	}
}

func TestBettorListFetchesSortedSinglePage(t *testing.T) {
	var gotOpts airtable.ListOptions
	var gotMaxPages int
	client := &stubClient{
		listAll: func(_ context.Context, table string, opts airtable.ListOptions, maxPages int) ([]airtable.Record, error) {
			assert.Equal(t, tableBettors, table)
			gotOpts = opts
			gotMaxPages = maxPages
			return []airtable.Record{bettorRecord("rec1", "Ana")}, nil
		},
	}
	repo := NewBettorRepository(client, &stubWagerFinder{}, 0)

	bettors, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, bettors, 1)
	assert.Equal(t, "rec1", bettors[0].ID)
	assert.Equal(t, "Ana", bettors[0].Name)
	assert.Equal(t, 100.0, bettors[0].TotalWagered)

	assert.Equal(t, "Nombre", gotOpts.SortField)
	assert.False(t, gotOpts.SortDesc)
	assert.Equal(t, pageSize, gotOpts.PageSize)
	assert.Equal(t, 1, gotMaxPages)
}

func TestBettorListCachesWithinFreshnessWindow(t *testing.T) {
	var fetches int32
	client := &stubClient{
		listAll: func(_ context.Context, _ string, _ airtable.ListOptions, _ int) ([]airtable.Record, error) {
			atomic.AddInt32(&fetches, 1)
			return []airtable.Record{bettorRecord("rec1", "Ana")}, nil
		},
	}
	repo := NewBettorRepository(client, &stubWagerFinder{}, time.Minute)

	for i := 0; i < 5; i++ {
		_, err := repo.List(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))
}

func TestBettorListRefetchesAfterExpiry(t *testing.T) {
	var fetches int32
	client := &stubClient{
		listAll: func(_ context.Context, _ string, _ airtable.ListOptions, _ int) ([]airtable.Record, error) {
			atomic.AddInt32(&fetches, 1)
			return []airtable.Record{bettorRecord("rec1", "Ana")}, nil
		},
	}
	repo := NewBettorRepository(client, &stubWagerFinder{}, 10*time.Millisecond)

	_, err := repo.List(context.Background())
	require.NoError(t, err)
	time.Sleep(25 * time.Millisecond)
	_, err = repo.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&fetches))
}

func TestBettorListDeduplicatesConcurrentFetches(t *testing.T) {
	var fetches int32
	release := make(chan struct{})
	client := &stubClient{
		listAll: func(_ context.Context, _ string, _ airtable.ListOptions, _ int) ([]airtable.Record, error) {
			atomic.AddInt32(&fetches, 1)
			<-release
			return []airtable.Record{bettorRecord("rec1", "Ana")}, nil
		},
	}
	repo := NewBettorRepository(client, &stubWagerFinder{}, time.Minute)

	var wg sync.WaitGroup
	started := make(chan struct{}, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started <- struct{}{}
			bettors, err := repo.List(context.Background())
			assert.NoError(t, err)
			assert.Len(t, bettors, 1)
		}()
	}
	for i := 0; i < 10; i++ {
		<-started
	}
	// Give the goroutines a moment to reach the shared fetch.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))
}

func TestBettorCreateZeroesTotalsAndStampsDate(t *testing.T) {
	var gotFields map[string]any
	client := &stubClient{
		createRecord: func(_ context.Context, table string, fields map[string]any) (*airtable.Record, error) {
			assert.Equal(t, tableBettors, table)
			gotFields = fields
			return &airtable.Record{ID: "recNew", Fields: fields}, nil
		},
	}
	repo := NewBettorRepository(client, &stubWagerFinder{}, 0)

	bettor, err := repo.Create(context.Background(), &models.BettorCreate{Name: "Ana", Active: true})
	require.NoError(t, err)
	assert.Equal(t, "recNew", bettor.ID)

	assert.EqualValues(t, 0, gotFields["Total_Apostado"])
	assert.EqualValues(t, 0, gotFields["Total_Ganado"])
	assert.EqualValues(t, 0, gotFields["Balance"])
	assert.Equal(t, true, gotFields["Activo"])
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), gotFields["Fecha_Registro"])
}

func TestBettorUpdateSendsOnlyProvidedFields(t *testing.T) {
	var gotFields map[string]any
	client := &stubClient{
		updateRecord: func(_ context.Context, _ string, id string, fields map[string]any) (*airtable.Record, error) {
			assert.Equal(t, "rec1", id)
			gotFields = fields
			return &airtable.Record{ID: "rec1", Fields: map[string]any{"Nombre": "Ana Maria"}}, nil
		},
	}
	repo := NewBettorRepository(client, &stubWagerFinder{}, 0)

	name := "Ana Maria"
	_, err := repo.Update(context.Background(), "rec1", &models.BettorUpdate{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"Nombre": "Ana Maria"}, gotFields)
}

func TestBettorDeleteBlockedWhileWagersExist(t *testing.T) {
	deleted := false
	client := &stubClient{
		deleteRecord: func(_ context.Context, _, _ string) error {
			deleted = true
			return nil
		},
	}
	wagers := &stubWagerFinder{wagers: []*models.Wager{{ID: "recW", BettorID: "rec1"}}}
	repo := NewBettorRepository(client, wagers, 0)

	err := repo.Delete(context.Background(), "rec1")
	require.Error(t, err)

	var integrity *ReferentialIntegrityError
	require.True(t, errors.As(err, &integrity))
	assert.Equal(t, "APOSTADOR_HAS_BETS", integrity.Code)
	assert.False(t, deleted, "record must not be deleted when the guard trips")
}

func TestBettorDeleteProceedsWithoutWagers(t *testing.T) {
	deleted := false
	client := &stubClient{
		deleteRecord: func(_ context.Context, table, id string) error {
			assert.Equal(t, tableBettors, table)
			assert.Equal(t, "rec1", id)
			deleted = true
			return nil
		},
	}
	repo := NewBettorRepository(client, &stubWagerFinder{}, 0)

	require.NoError(t, repo.Delete(context.Background(), "rec1"))
	assert.True(t, deleted)
}
