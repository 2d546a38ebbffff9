// Copyright (c) 2026 The Inkwell Authors
// All rights reserved. See LICENSE for details.

// posts.go provides a Valkey-backed cache of serialized API responses for
// the public read endpoints. Cached entries are the marshaled JSON bodies;
// the cache never interprets them, so the opaque content documents inside
// stay opaque. Mutations invalidate the affected keys.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// postKeyPrefix keys single published posts by slug.
	postKeyPrefix = "post:"
	// listKeyPrefix keys pages of the published listing.
	listKeyPrefix = "published:"

	// DefaultTTL is how long a cached response stays fresh.
	DefaultTTL = 5 * time.Minute
)

// PostCache caches public read responses in Valkey. A nil *PostCache is
// valid and disables caching, so callers never need to branch.
type PostCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPostCache creates a post cache backed by the given Valkey client.
func NewPostCache(client *redis.Client, ttl time.Duration) *PostCache {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &PostCache{client: client, ttl: ttl}
}

// SlugKey returns the cache key for a single post by slug.
func SlugKey(slug string) string {
	return postKeyPrefix + slug
}

// ListKey returns the cache key for a page of the published listing.
func ListKey(limit, offset int) string {
	return fmt.Sprintf("%sl%d:o%d", listKeyPrefix, limit, offset)
}

// Get retrieves a cached response body. Returns false on miss or when the
// cache is disabled.
func (pc *PostCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if pc == nil {
		return nil, false
	}
	val, err := pc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("post cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("post cache hit", "key", key)
	return val, true
}

// Set stores a response body under key with the configured TTL.
func (pc *PostCache) Set(ctx context.Context, key string, body []byte) {
	if pc == nil {
		return
	}
	if err := pc.client.Set(ctx, key, body, pc.ttl).Err(); err != nil {
		slog.Warn("post cache set error", "key", key, "error", err)
	}
}

// InvalidatePost removes a single cached post by its slug.
func (pc *PostCache) InvalidatePost(ctx context.Context, slug string) {
	if pc == nil {
		return
	}
	if err := pc.client.Del(ctx, SlugKey(slug)).Err(); err != nil {
		slog.Warn("post cache invalidate error", "slug", slug, "error", err)
	}
}

// InvalidateLists removes every cached page of the published listing.
// Any mutation can reshuffle the listing, so the whole family goes.
func (pc *PostCache) InvalidateLists(ctx context.Context) {
	pc.invalidatePrefix(ctx, listKeyPrefix)
}

// InvalidateAll removes all cached posts and listings.
func (pc *PostCache) InvalidateAll(ctx context.Context) {
	pc.invalidatePrefix(ctx, postKeyPrefix)
	pc.invalidatePrefix(ctx, listKeyPrefix)
}

// invalidatePrefix deletes all keys under prefix by cursor scanning.
func (pc *PostCache) invalidatePrefix(ctx context.Context, prefix string) {
	if pc == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			slog.Warn("post cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("post cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("post cache invalidated", "prefix", prefix, "deleted", deleted)
	}
}
