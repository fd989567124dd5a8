package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/service"
	"github.com/pageza/macrotrack/backend/internal/testhelpers"
)

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "apple pie", service.NormalizeQuery("  Apple \t PIE "))
	assert.Equal(t, "", service.NormalizeQuery("   "))
}

func TestRedisSelectionStore(t *testing.T) {
	client := testhelpers.SetupTestRedis(t)
	store := service.NewRedisSelectionStore(client)
	ctx := context.Background()
	userID := uuid.New()

	items, err := store.Load(ctx, userID)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	staged := []nutrition.FoodRecord{food(1, "Apple, raw", 52, 0.3, 0.2, 14), food(2, "Banana, raw", 89, 1.1, 0.3, 23)}
	require.NoError(t, store.Save(ctx, userID, staged))

	items, err = store.Load(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []nutrition.FoodID{1, 2}, ids(items))

	ttl, err := client.TTL(ctx, "tracker:selection:"+userID.String()).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Clear(ctx, userID))
	items, err = store.Load(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRedisLookupCache(t *testing.T) {
	client := testhelpers.SetupTestRedis(t)
	cache := service.NewRedisLookupCache(client)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "apple")
	require.NoError(t, err)
	assert.False(t, ok)

	records := []nutrition.FoodRecord{food(1, "Apple, raw", 52, 0.3, 0.2, 14)}
	require.NoError(t, cache.Set(ctx, "Apple", records, time.Minute))

	got, ok, err := cache.Get(ctx, " APPLE ")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []nutrition.FoodID{1}, ids(got))
}
