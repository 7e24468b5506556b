package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slabcheck/slabcheck/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLite(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRecord(certNumber string) model.CertRecord {
	record := model.CertRecord{
		CertNumber: certNumber,
		CardName:   "1999 POKEMON BASE SET #4 CHARIZARD",
		Grade:      "GEM MT 10",
	}
	record.PriceTable.Set("PSA 10", "$1,500.00")
	record.PriceTable.Set("PSA 9", "$420.00")
	record.PopulationTable.Set("PSA 10", "121")
	return record
}

func TestSQLiteStore_GetMissingKey(t *testing.T) {
	store := newTestStore(t)

	entry, err := store.Get(context.Background(), "cert:00000000")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	in := Entry{
		CertNumber: "12345678",
		Record:     sampleRecord("12345678"),
		StoredAt:   1700000000000,
		ExpiresAt:  1700000600000,
	}
	require.NoError(t, store.Set(ctx, "cert:12345678", in))

	out, err := store.Get(ctx, "cert:12345678")
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in, *out)

	// Ordered table survives serialization in order.
	rows := out.Record.PriceTable.Entries()
	require.Len(t, rows, 2)
	assert.Equal(t, "PSA 10", rows[0].Label)
	assert.Equal(t, "PSA 9", rows[1].Label)
}

func TestSQLiteStore_SetOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := Entry{CertNumber: "12345678", Record: sampleRecord("12345678"), StoredAt: 1, ExpiresAt: 2}
	second := first
	second.StoredAt = 10
	second.ExpiresAt = 20

	require.NoError(t, store.Set(ctx, "cert:12345678", first))
	require.NoError(t, store.Set(ctx, "cert:12345678", second))

	out, err := store.Get(ctx, "cert:12345678")
	require.NoError(t, err)
	assert.EqualValues(t, 10, out.StoredAt)
}

func TestSQLiteStore_ListKeysOldestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "cert:b", Entry{CertNumber: "b", StoredAt: 20}))
	require.NoError(t, store.Set(ctx, "cert:a", Entry{CertNumber: "a", StoredAt: 10}))
	require.NoError(t, store.Set(ctx, "cert:c", Entry{CertNumber: "c", StoredAt: 30}))

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cert:a", "cert:b", "cert:c"}, keys)
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "cert:x", Entry{CertNumber: "x"}))
	require.NoError(t, store.Delete(ctx, "cert:x"))

	entry, err := store.Get(ctx, "cert:x")
	require.NoError(t, err)
	assert.Nil(t, entry)
}
