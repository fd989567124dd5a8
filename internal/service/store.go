package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/macrotrack/backend/internal/nutrition"
)

// SelectionTTL bounds how long an untouched staging set survives.
const SelectionTTL = 24 * time.Hour

// SelectionStore persists the per-user set of staged lookups.
type SelectionStore interface {
	Load(ctx context.Context, userID uuid.UUID) ([]nutrition.FoodRecord, error)
	Save(ctx context.Context, userID uuid.UUID, items []nutrition.FoodRecord) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

// LookupCache caches raw lookup results by normalized query.
type LookupCache interface {
	Get(ctx context.Context, query string) ([]nutrition.FoodRecord, bool, error)
	Set(ctx context.Context, query string, records []nutrition.FoodRecord, ttl time.Duration) error
}

// RedisSelectionStore keeps staging sets as JSON under tracker:selection:<user>.
type RedisSelectionStore struct {
	redis *redis.Client
}

var _ SelectionStore = (*RedisSelectionStore)(nil)

func NewRedisSelectionStore(client *redis.Client) *RedisSelectionStore {
	return &RedisSelectionStore{redis: client}
}

func selectionKey(userID uuid.UUID) string {
	return fmt.Sprintf("tracker:selection:%s", userID)
}

// Load returns the staged records; a missing key is an empty selection.
func (s *RedisSelectionStore) Load(ctx context.Context, userID uuid.UUID) ([]nutrition.FoodRecord, error) {
	data, err := s.redis.Get(ctx, selectionKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []nutrition.FoodRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get selection from Redis: %w", err)
	}

	var items []nutrition.FoodRecord
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal selection: %w", err)
	}
	return items, nil
}

func (s *RedisSelectionStore) Save(ctx context.Context, userID uuid.UUID, items []nutrition.FoodRecord) error {
	if items == nil {
		items = []nutrition.FoodRecord{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal selection: %w", err)
	}
	if err := s.redis.Set(ctx, selectionKey(userID), data, SelectionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save selection to Redis: %w", err)
	}
	return nil
}

func (s *RedisSelectionStore) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.redis.Del(ctx, selectionKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete selection from Redis: %w", err)
	}
	return nil
}

// RedisLookupCache stores lookup results under fdc:search:<query>.
type RedisLookupCache struct {
	redis *redis.Client
}

var _ LookupCache = (*RedisLookupCache)(nil)

func NewRedisLookupCache(client *redis.Client) *RedisLookupCache {
	return &RedisLookupCache{redis: client}
}

// NormalizeQuery folds case and whitespace so equivalent queries share a
// cache entry.
func NormalizeQuery(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}

func lookupKey(query string) string {
	return "fdc:search:" + NormalizeQuery(query)
}

func (c *RedisLookupCache) Get(ctx context.Context, query string) ([]nutrition.FoodRecord, bool, error) {
	data, err := c.redis.Get(ctx, lookupKey(query)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read lookup cache: %w", err)
	}

	var records []nutrition.FoodRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached lookup: %w", err)
	}
	return records, true, nil
}

func (c *RedisLookupCache) Set(ctx context.Context, query string, records []nutrition.FoodRecord, ttl time.Duration) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal lookup: %w", err)
	}
	if err := c.redis.Set(ctx, lookupKey(query), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write lookup cache: %w", err)
	}
	return nil
}
