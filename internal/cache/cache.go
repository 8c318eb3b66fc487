// Package cache holds the Redis-backed response cache for the public catalog.
// Only first pages (no cursor) are cached; every mutation invalidates the
// whole keyspace. A nil Redis client degrades to a no-op so unit tests and
// cache-less deployments work unchanged.
package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const keyPrefix = "clothing:"

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// keyEscaper keeps the field delimiter unambiguous inside filter values, so
// distinct filter combinations never share a key.
var keyEscaper = strings.NewReplacer(`\`, `\\`, `|`, `\|`)

// ListKey builds the cache key for a first-page list request.
func ListKey(typ, color, size, search string) string {
	parts := []string{typ, color, size, search}
	for i, p := range parts {
		parts[i] = keyEscaper.Replace(p)
	}
	return keyPrefix + "list:" + strings.Join(parts, "|")
}

// FeaturedKey caches the highlights response.
const FeaturedKey = keyPrefix + "featured"

// Get unmarshals the cached value into out. A miss, a cache error, or a nil
// client all return false — the caller falls through to the store.
func (c *Cache) Get(ctx context.Context, key string, out interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false
	}
	return true
}

// Set stores the value best-effort; failures are logged, never propagated.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: set failed")
	}
}

// Invalidate drops every cached catalog response. Called after each mutation
// so an admin never sees a stale list from this process.
func (c *Cache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("cache: scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Msg("cache: invalidate failed")
	}
}
