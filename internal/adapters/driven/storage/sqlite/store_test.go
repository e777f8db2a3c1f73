package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordlaw/lagrum/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndListRecords(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	records := []domain.SourceRecord{
		{ID: "r1", Title: "Lag A", Content: "text a", SFSNumber: "2020:1", Issuer: "Justitiedepartementet"},
		{ID: "r2", Title: "Lag B", Content: "text b", SFSNumber: "2020:2", IssuedDate: "2020-02-01"},
	}
	require.NoError(t, store.SaveRecords(ctx, records))

	got, err := store.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, records[0], got[0])
	assert.Equal(t, records[1], got[1])
}

func TestSaveRecords_UpsertsByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRecords(ctx, []domain.SourceRecord{
		{ID: "r1", Title: "Lag A", Content: "first"},
	}))
	require.NoError(t, store.SaveRecords(ctx, []domain.SourceRecord{
		{ID: "r1", Title: "Lag A (omtryck)", Content: "second"},
	}))

	got, err := store.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Lag A (omtryck)", got[0].Title)
	assert.Equal(t, "second", got[0].Content)
}

func TestCountRecords(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	count, err := store.CountRecords(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, store.SaveRecords(ctx, []domain.SourceRecord{
		{ID: "r1"}, {ID: "r2"}, {ID: "r3"},
	}))

	count, err = store.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestListRecords_EmptyDatabase(t *testing.T) {
	store := newTestStore(t)

	got, err := store.ListRecords(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
