package cache

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/slabcheck/slabcheck/internal/model"
)

// KeyPrefix namespaces cert entries within the store.
const KeyPrefix = "cert:"

// Defaults for the policy layer.
const (
	DefaultTTL        = 7 * 24 * time.Hour
	DefaultMaxEntries = 100
)

// Policy layers TTL expiry and bounded-size eviction on top of a Store.
// Store failures are logged and degrade to miss/no-op: the pipeline must
// keep working with a broken cache.
type Policy struct {
	store      Store
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewPolicy builds a Policy over the given store. Zero ttl/maxEntries get
// the defaults.
func NewPolicy(store Store, ttl time.Duration, maxEntries int) *Policy {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Policy{store: store, ttl: ttl, maxEntries: maxEntries, now: time.Now}
}

// Key returns the store key for a cert number.
func Key(certNumber string) string { return KeyPrefix + certNumber }

// Lookup returns the cached record for a cert number, annotated with cache
// provenance. Expired entries are treated as absent and deleted as a side
// effect of the read.
func (p *Policy) Lookup(ctx context.Context, certNumber string) (*model.CertRecord, bool) {
	key := Key(certNumber)
	entry, err := p.store.Get(ctx, key)
	if err != nil {
		zap.L().Warn("cache: lookup failed, treating as miss", zap.Error(err))
		return nil, false
	}
	if entry == nil {
		return nil, false
	}

	nowMs := p.now().UnixMilli()
	if entry.ExpiresAt <= nowMs {
		if err := p.store.Delete(ctx, key); err != nil {
			zap.L().Warn("cache: failed to delete expired entry", zap.Error(err))
		}
		return nil, false
	}

	record := entry.Record
	cachedAt := time.UnixMilli(entry.StoredAt)
	expiresAt := time.UnixMilli(entry.ExpiresAt)
	record.Provenance = model.Provenance{
		FromCache: true,
		CachedAt:  &cachedAt,
		ExpiresAt: &expiresAt,
	}
	return &record, true
}

// StoreRecord writes a freshly extracted record, then evicts
// oldest-stored entries beyond the configured maximum. Failures are logged
// only.
func (p *Policy) StoreRecord(ctx context.Context, record model.CertRecord) {
	now := p.now()
	stripped := record
	stripped.Provenance = model.Provenance{}

	entry := Entry{
		CertNumber: record.CertNumber,
		Record:     stripped,
		StoredAt:   now.UnixMilli(),
		ExpiresAt:  now.Add(p.ttl).UnixMilli(),
	}
	if err := p.store.Set(ctx, Key(record.CertNumber), entry); err != nil {
		zap.L().Warn("cache: write failed", zap.Error(err))
		return
	}
	p.evictOverflow(ctx)
}

// Invalidate removes a cert number's entry.
func (p *Policy) Invalidate(ctx context.Context, certNumber string) {
	if err := p.store.Delete(ctx, Key(certNumber)); err != nil {
		zap.L().Warn("cache: invalidate failed", zap.Error(err))
	}
}

// ListEntries returns all live prefixed entries, oldest first.
func (p *Policy) ListEntries(ctx context.Context) ([]Entry, error) {
	keys, err := p.prefixedKeys(ctx)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for _, k := range keys {
		entry, err := p.store.Get(ctx, k)
		if err != nil || entry == nil {
			continue
		}
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].StoredAt < entries[j].StoredAt })
	return entries, nil
}

// Clear deletes every prefixed entry.
func (p *Policy) Clear(ctx context.Context) error {
	keys, err := p.prefixedKeys(ctx)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := p.store.Delete(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

func (p *Policy) prefixedKeys(ctx context.Context) ([]string, error) {
	keys, err := p.store.ListKeys(ctx)
	if err != nil {
		return nil, err
	}
	var prefixed []string
	for _, k := range keys {
		if strings.HasPrefix(k, KeyPrefix) {
			prefixed = append(prefixed, k)
		}
	}
	return prefixed, nil
}

// evictOverflow deletes oldest-stored entries until the count is at or
// under the maximum.
func (p *Policy) evictOverflow(ctx context.Context) {
	entries, err := p.ListEntries(ctx)
	if err != nil {
		zap.L().Warn("cache: eviction scan failed", zap.Error(err))
		return
	}
	for i := 0; len(entries)-i > p.maxEntries; i++ {
		if err := p.store.Delete(ctx, Key(entries[i].CertNumber)); err != nil {
			zap.L().Warn("cache: eviction delete failed", zap.Error(err))
			return
		}
		zap.L().Debug("cache: evicted oldest entry",
			zap.String("cert", entries[i].CertNumber),
		)
	}
}
