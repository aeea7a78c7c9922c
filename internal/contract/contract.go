// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/uatpulse/schema"
)

// FeedSource fetches the raw status feed.
// This allows the loading logic to be tested without a network or bucket.
type FeedSource interface {
	// Key identifies the source in the feed cache and in run history.
	Key() string

	// Fetch returns the raw feed bytes.
	Fetch(ctx context.Context) ([]byte, error)

	// Cacheable reports whether successful fetches should be written to the feed cache.
	Cacheable() bool
}

// CacheManager defines the interface for managing stores.
// This allows the store layer to be mocked for testing.
type CacheManager interface {
	GetFeedStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for feed cache storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for the append-only dashboard run history.
type HistoryStore interface {
	// RecordRun appends one computed dashboard and returns its row ID.
	RecordRun(record schema.RunRecord) (int64, error)

	// GetRecentRuns returns up to limit runs, newest first.
	GetRecentRuns(limit int) ([]schema.RunRecord, error)

	// GetAllRuns returns every run, oldest first.
	GetAllRuns() ([]schema.RunRecord, error)

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection.
	Close() error
}
