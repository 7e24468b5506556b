package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPolicy(t *testing.T, ttl time.Duration, maxEntries int) *Policy {
	t.Helper()
	return NewPolicy(newTestStore(t), ttl, maxEntries)
}

func TestPolicy_LookupMiss(t *testing.T) {
	p := newTestPolicy(t, time.Hour, 10)

	record, ok := p.Lookup(context.Background(), "12345678")
	assert.False(t, ok)
	assert.Nil(t, record)
}

func TestPolicy_StoreAndLookupAnnotatesProvenance(t *testing.T) {
	p := newTestPolicy(t, time.Hour, 10)
	ctx := context.Background()

	p.StoreRecord(ctx, sampleRecord("12345678"))

	record, ok := p.Lookup(ctx, "12345678")
	require.True(t, ok)
	assert.True(t, record.Provenance.FromCache)
	require.NotNil(t, record.Provenance.CachedAt)
	require.NotNil(t, record.Provenance.ExpiresAt)

	// Structurally equal to the stored record modulo provenance.
	stripped := *record
	stripped.Provenance = sampleRecord("12345678").Provenance
	assert.Equal(t, sampleRecord("12345678"), stripped)
}

func TestPolicy_ExpiredEntryIsMissAndDeleted(t *testing.T) {
	p := newTestPolicy(t, time.Hour, 10)
	ctx := context.Background()

	now := time.Now()
	p.now = func() time.Time { return now }
	p.StoreRecord(ctx, sampleRecord("12345678"))

	// Jump past the TTL: the read reports a miss and removes the entry.
	p.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, ok := p.Lookup(ctx, "12345678")
	assert.False(t, ok)

	entry, err := p.store.Get(ctx, Key("12345678"))
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestPolicy_BoundedEvictionDropsOldest(t *testing.T) {
	const maxEntries = 3
	p := newTestPolicy(t, time.Hour, maxEntries)
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < maxEntries+1; i++ {
		p.now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		p.StoreRecord(ctx, sampleRecord(fmt.Sprintf("1000000%d", i)))
	}

	entries, err := p.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, maxEntries)

	// Exactly the oldest-stored entry is gone.
	for _, e := range entries {
		assert.NotEqual(t, "10000000", e.CertNumber)
	}
	assert.Equal(t, "10000001", entries[0].CertNumber)
}

func TestPolicy_Invalidate(t *testing.T) {
	p := newTestPolicy(t, time.Hour, 10)
	ctx := context.Background()

	p.StoreRecord(ctx, sampleRecord("12345678"))
	p.Invalidate(ctx, "12345678")

	_, ok := p.Lookup(ctx, "12345678")
	assert.False(t, ok)
}

func TestPolicy_ClearRemovesOnlyPrefixedKeys(t *testing.T) {
	p := newTestPolicy(t, time.Hour, 10)
	ctx := context.Background()

	p.StoreRecord(ctx, sampleRecord("12345678"))
	require.NoError(t, p.store.Set(ctx, "other:key", Entry{CertNumber: "n/a"}))

	require.NoError(t, p.Clear(ctx))

	keys, err := p.store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"other:key"}, keys)
}
