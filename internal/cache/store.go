// Package cache persists fetched cert records with TTL expiry and a
// bounded entry count. The cache is a performance optimization, not a
// correctness dependency: callers must treat any store failure as a miss.
package cache

import (
	"context"

	"github.com/slabcheck/slabcheck/internal/model"
)

// Entry is one cached record. Timestamps are epoch milliseconds.
type Entry struct {
	CertNumber string           `json:"cert_number"`
	Record     model.CertRecord `json:"data"`
	StoredAt   int64            `json:"timestamp"`
	ExpiresAt  int64            `json:"expiration"`
}

// Store is the key/value persistence boundary. Get returns (nil, nil) for a
// missing key.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, entry Entry) error
	Delete(ctx context.Context, key string) error
	ListKeys(ctx context.Context) ([]string, error)
	Close() error
}
