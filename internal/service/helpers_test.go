package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/service"
)

// memorySelectionStore is an in-process SelectionStore.
type memorySelectionStore struct {
	mu    sync.Mutex
	items map[uuid.UUID][]nutrition.FoodRecord
}

var _ service.SelectionStore = (*memorySelectionStore)(nil)

func newMemorySelectionStore() *memorySelectionStore {
	return &memorySelectionStore{items: map[uuid.UUID][]nutrition.FoodRecord{}}
}

func (s *memorySelectionStore) Load(ctx context.Context, userID uuid.UUID) ([]nutrition.FoodRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]nutrition.FoodRecord{}, s.items[userID]...)
	return out, nil
}

func (s *memorySelectionStore) Save(ctx context.Context, userID uuid.UUID, items []nutrition.FoodRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[userID] = append([]nutrition.FoodRecord{}, items...)
	return nil
}

func (s *memorySelectionStore) Clear(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, userID)
	return nil
}

// memoryLookupCache is an in-process LookupCache that records writes.
type memoryLookupCache struct {
	mu      sync.Mutex
	entries map[string][]nutrition.FoodRecord
	ttls    map[string]time.Duration
}

var _ service.LookupCache = (*memoryLookupCache)(nil)

func newMemoryLookupCache() *memoryLookupCache {
	return &memoryLookupCache{
		entries: map[string][]nutrition.FoodRecord{},
		ttls:    map[string]time.Duration{},
	}
}

func (c *memoryLookupCache) Get(ctx context.Context, query string) ([]nutrition.FoodRecord, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	records, ok := c.entries[service.NormalizeQuery(query)]
	return records, ok, nil
}

func (c *memoryLookupCache) Set(ctx context.Context, query string, records []nutrition.FoodRecord, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := service.NormalizeQuery(query)
	c.entries[key] = records
	c.ttls[key] = ttl
	return nil
}

func createUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	user := &models.User{
		Name:         "Test User",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hashed_password",
	}
	require.NoError(t, db.Create(user).Error)
	return user.ID
}

func sampleProfile() nutrition.Profile {
	return nutrition.Profile{
		Name:          "Test User",
		Sex:           nutrition.SexFemale,
		Age:           30,
		WeightLb:      150,
		Height:        `5'6"`,
		ExerciseLevel: nutrition.Sedentary,
	}
}

func food(id nutrition.FoodID, desc string, kcal, protein, fat, carbs float64) nutrition.FoodRecord {
	return nutrition.FoodRecord{
		FdcID:       id,
		Description: desc,
		FoodNutrients: []nutrition.Nutrient{
			{NutrientNumber: nutrition.CodeEnergy, Value: nutrition.Float(kcal), UnitName: "KCAL"},
			{NutrientNumber: nutrition.CodeProtein, Value: nutrition.Float(protein), UnitName: "G"},
			{NutrientNumber: nutrition.CodeFat, Value: nutrition.Float(fat), UnitName: "G"},
			{NutrientNumber: nutrition.CodeCarbs, Value: nutrition.Float(carbs), UnitName: "G"},
		},
	}
}

func ids(records []nutrition.FoodRecord) []nutrition.FoodID {
	out := make([]nutrition.FoodID, len(records))
	for i, r := range records {
		out[i] = r.FdcID
	}
	return out
}
