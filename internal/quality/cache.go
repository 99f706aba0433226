// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quality

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pdiddy/curriculum-engine/pkg/types"
)

// Cache stores computed scores. Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the cached score for key; ok is false on a miss.
	Get(ctx context.Context, key string) (score float64, ok bool, err error)
	Set(ctx context.Context, key string, score float64) error
}

// SnapshotKey identifies a course's score by its ID and a SHA-256 digest of
// the course and review snapshot it was computed from. Any change to the
// rating, lessons or reviews yields a new key.
func SnapshotKey(c types.Course, reviews []types.Review) string {
	h := sha256.New()
	// Maps marshal with sorted keys, so the digest is stable.
	_ = json.NewEncoder(h).Encode(struct {
		Course  types.Course   `json:"course"`
		Reviews []types.Review `json:"reviews"`
	}{c, reviews})
	return c.ID + ":" + hex.EncodeToString(h.Sum(nil))
}

// Cached returns the score for c, consulting cache first under key. A nil
// cache computes directly. Cache failures are returned alongside a valid
// computed score so callers can log and carry on.
func Cached(ctx context.Context, cache Cache, key string, c types.Course) (float64, error) {
	if cache == nil {
		return Score(c), nil
	}
	s, ok, err := cache.Get(ctx, key)
	if err != nil {
		return Score(c), fmt.Errorf("reading score cache: %w", err)
	}
	if ok {
		return s, nil
	}

	s = Score(c)
	if err := cache.Set(ctx, key, s); err != nil {
		return s, fmt.Errorf("writing score cache: %w", err)
	}
	return s, nil
}

type memoryEntry struct {
	score   float64
	expires time.Time
}

// MemoryCache is an in-process Cache with an optional TTL.
type MemoryCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryCache returns an empty cache. A ttl of zero keeps entries forever.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

// Get returns the cached score for key. Expired entries read as a miss.
func (m *MemoryCache) Get(_ context.Context, key string) (float64, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return 0, false, nil
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return 0, false, nil
	}
	return e.score, true, nil
}

// Set stores score under key until the TTL elapses.
func (m *MemoryCache) Set(_ context.Context, key string, score float64) error {
	e := memoryEntry{score: score}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired or not.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

const redisKeyPrefix = "curriculum-engine:quality:"

// RedisCache shares scores between processes through redis.
type RedisCache struct {
	rdb goredis.Cmdable
	ttl time.Duration
}

// NewRedisCache wraps an existing client. A ttl of zero keeps entries until evicted.
func NewRedisCache(rdb goredis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

// DialRedis connects to addr and verifies the server answers a ping.
func DialRedis(ctx context.Context, addr, password string) (*goredis.Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address required")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// Get reads the score stored under key. A missing key is a miss, not an error.
func (r *RedisCache) Get(ctx context.Context, key string) (float64, bool, error) {
	raw, err := r.rdb.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redis get: %w", err)
	}
	s, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("redis value for %s: %w", key, err)
	}
	return s, true, nil
}

// Set writes score under key with the cache TTL.
func (r *RedisCache) Set(ctx context.Context, key string, score float64) error {
	val := strconv.FormatFloat(score, 'g', -1, 64)
	if err := r.rdb.Set(ctx, redisKeyPrefix+key, val, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
