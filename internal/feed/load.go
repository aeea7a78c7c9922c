package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/huangsam/uatpulse/schema"
)

// Load fetches the feed network-first. A successful fetch refreshes the cache; a failed
// fetch falls back to the cached copy when there is one.
func Load(ctx context.Context, src contract.FeedSource, store contract.CacheStore) ([]byte, error) {
	logger := contract.Logger("feed")
	key := src.Key()

	data, fetchErr := src.Fetch(ctx)
	if fetchErr == nil {
		switch {
		case !src.Cacheable() || store == nil:
		case !json.Valid(data):
			logger.Warn().Str("source", key).Msg("Feed is not valid JSON, leaving cache untouched")
		default:
			if err := store.Set(key, data, contract.FeedCacheVersion, time.Now().Unix()); err != nil {
				logger.Warn().Err(err).Str("source", key).Msg("Failed to refresh feed cache")
			}
		}
		return data, nil
	}

	if !src.Cacheable() || store == nil {
		return nil, fetchErr
	}

	cached, version, timestamp, err := store.Get(key)
	if err != nil || cached == nil || version != contract.FeedCacheVersion {
		return nil, fetchErr
	}

	logger.Warn().
		Err(fetchErr).
		Str("source", key).
		Time("cached_at", time.Unix(timestamp, 0)).
		Msg("Serving cached feed")
	return cached, nil
}

// Decode parses raw feed bytes. Numeric fields are lenient; malformed JSON is an error.
func Decode(data []byte) (*schema.Feed, error) {
	var f schema.Feed
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	return &f, nil
}

// Fetch resolves the location, loads it and decodes it.
func Fetch(ctx context.Context, location string, timeout time.Duration, store contract.CacheStore) (*schema.Feed, string, error) {
	src, err := NewSource(location, timeout)
	if err != nil {
		return nil, "", err
	}
	data, err := Load(ctx, src, store)
	if err != nil {
		return nil, src.Key(), err
	}
	f, err := Decode(data)
	if err != nil {
		return nil, src.Key(), err
	}
	return f, src.Key(), nil
}
