package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/service"
	"github.com/pageza/macrotrack/backend/internal/testhelpers"
)

func setupTrackerTest(t *testing.T) (*service.TrackerService, *memorySelectionStore, *gorm.DB, uuid.UUID) {
	db := testhelpers.SetupSQLiteDatabase(t)
	store := newMemorySelectionStore()
	return service.NewTrackerService(db, store), store, db, createUser(t, db)
}

func TestToggleSelection(t *testing.T) {
	svc, store, _, userID := setupTrackerTest(t)
	ctx := context.Background()

	apple := food(1, "Apple, raw", 52, 0.3, 0.2, 14)
	banana := food(2, "Banana, raw", 89, 1.1, 0.3, 23)

	selected, err := svc.ToggleSelection(ctx, userID, apple)
	require.NoError(t, err)
	selected, err = svc.ToggleSelection(ctx, userID, banana)
	require.NoError(t, err)
	assert.Equal(t, []nutrition.FoodID{1, 2}, ids(selected))

	selected, err = svc.ToggleSelection(ctx, userID, apple)
	require.NoError(t, err)
	assert.Equal(t, []nutrition.FoodID{2}, ids(selected))

	stored, err := store.Load(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []nutrition.FoodID{2}, ids(stored))
}

func TestCommitDeduplicatesAndKeepsOrder(t *testing.T) {
	svc, _, db, userID := setupTrackerTest(t)
	ctx := context.Background()

	for _, f := range []nutrition.FoodRecord{
		food(3, "Oats", 389, 16.9, 6.9, 66),
		food(1, "Apple, raw", 52, 0.3, 0.2, 14),
	} {
		_, err := svc.ToggleSelection(ctx, userID, f)
		require.NoError(t, err)
	}

	committed, err := svc.Commit(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []nutrition.FoodID{3, 1}, ids(committed.Items()))

	// the staging set survives a commit; committing again adds nothing
	_, err = svc.ToggleSelection(ctx, userID, food(2, "Banana, raw", 89, 1.1, 0.3, 23))
	require.NoError(t, err)
	committed, err = svc.Commit(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []nutrition.FoodID{3, 1, 2}, ids(committed.Items()))

	current, err := svc.GetLog(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []nutrition.FoodID{3, 1, 2}, ids(current.Items()))

	var entries []models.FoodLogEntry
	require.NoError(t, db.Where("user_id = ?", userID).Order("position").Find(&entries).Error)
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.Equal(t, i, e.Position)
		assert.Len(t, e.Embedding.Slice(), service.EmbeddingDims)
	}

	totals := nutrition.ComputeTotals(current.Items())
	assert.InDelta(t, 530, totals.Calories, 1e-9)
}

func TestToggleKeepsLoggedItemsStaged(t *testing.T) {
	svc, _, _, userID := setupTrackerTest(t)
	ctx := context.Background()

	apple := food(1, "Apple, raw", 52, 0.3, 0.2, 14)
	_, err := svc.ToggleSelection(ctx, userID, apple)
	require.NoError(t, err)
	_, err = svc.Commit(ctx, userID)
	require.NoError(t, err)

	selected, err := svc.ToggleSelection(ctx, userID, apple)
	require.NoError(t, err)
	assert.Equal(t, []nutrition.FoodID{1}, ids(selected))
}

func TestRemoveItemResetsSelection(t *testing.T) {
	svc, store, _, userID := setupTrackerTest(t)
	ctx := context.Background()

	for _, f := range []nutrition.FoodRecord{
		food(1, "Apple, raw", 52, 0.3, 0.2, 14),
		food(2, "Banana, raw", 89, 1.1, 0.3, 23),
		food(4, "Pear, raw", 57, 0.4, 0.1, 15),
	} {
		_, err := svc.ToggleSelection(ctx, userID, f)
		require.NoError(t, err)
	}
	_, err := svc.Commit(ctx, userID)
	require.NoError(t, err)

	remaining, err := svc.RemoveItem(ctx, userID, 2)
	require.NoError(t, err)
	assert.Equal(t, []nutrition.FoodID{1, 4}, ids(remaining.Items()))

	selected, err := store.Load(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []nutrition.FoodID{1, 4}, ids(selected))

	// absent ids leave the log alone
	remaining, err = svc.RemoveItem(ctx, userID, 99)
	require.NoError(t, err)
	assert.Equal(t, 2, remaining.Len())

	// a removed food can be staged and committed again
	_, err = svc.ToggleSelection(ctx, userID, food(2, "Banana, raw", 89, 1.1, 0.3, 23))
	require.NoError(t, err)
	committed, err := svc.Commit(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []nutrition.FoodID{1, 4, 2}, ids(committed.Items()))
}

func TestRemoveAbsentItemKeepsSelection(t *testing.T) {
	svc, store, _, userID := setupTrackerTest(t)
	ctx := context.Background()

	_, err := svc.ToggleSelection(ctx, userID, food(1, "Apple, raw", 52, 0.3, 0.2, 14))
	require.NoError(t, err)
	_, err = svc.ToggleSelection(ctx, userID, food(2, "Banana, raw", 89, 1.1, 0.3, 23))
	require.NoError(t, err)

	remaining, err := svc.RemoveItem(ctx, userID, 999)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining.Len())

	selected, err := store.Load(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []nutrition.FoodID{1, 2}, ids(selected))
}

func TestClear(t *testing.T) {
	svc, store, _, userID := setupTrackerTest(t)
	ctx := context.Background()

	_, err := svc.ToggleSelection(ctx, userID, food(1, "Apple, raw", 52, 0.3, 0.2, 14))
	require.NoError(t, err)
	_, err = svc.Commit(ctx, userID)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, userID))

	current, err := svc.GetLog(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, current.Len())

	selected, err := store.Load(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestLogsAreScopedPerUser(t *testing.T) {
	svc, _, db, userA := setupTrackerTest(t)
	userB := createUser(t, db)
	ctx := context.Background()

	_, err := svc.ToggleSelection(ctx, userA, food(1, "Apple, raw", 52, 0.3, 0.2, 14))
	require.NoError(t, err)
	_, err = svc.Commit(ctx, userA)
	require.NoError(t, err)

	_, err = svc.ToggleSelection(ctx, userB, food(1, "Apple, raw", 52, 0.3, 0.2, 14))
	require.NoError(t, err)
	committed, err := svc.Commit(ctx, userB)
	require.NoError(t, err)
	assert.Equal(t, 1, committed.Len())
}

func TestSearchHistory(t *testing.T) {
	svc, _, _, userID := setupTrackerTest(t)
	ctx := context.Background()

	for _, f := range []nutrition.FoodRecord{
		food(1, "Apple, raw", 52, 0.3, 0.2, 14),
		food(2, "Banana, raw", 89, 1.1, 0.3, 23),
		food(3, "Apple juice", 46, 0.1, 0.1, 11),
	} {
		_, err := svc.ToggleSelection(ctx, userID, f)
		require.NoError(t, err)
	}
	_, err := svc.Commit(ctx, userID)
	require.NoError(t, err)

	found, err := svc.SearchHistory(ctx, userID, "APPLE", 0)
	require.NoError(t, err)
	assert.Equal(t, []nutrition.FoodID{3, 1}, ids(found))

	recent, err := svc.SearchHistory(ctx, userID, "", 2)
	require.NoError(t, err)
	assert.Equal(t, []nutrition.FoodID{3, 2}, ids(recent))
}
