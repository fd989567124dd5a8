package testhelpers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
)

func exerciseSchema(t *testing.T, db *gorm.DB) {
	user := &models.User{
		Name:         "Test User",
		Email:        "test@example.com",
		PasswordHash: "hashed_password",
	}
	require.NoError(t, db.Create(user).Error)
	assert.NotEqual(t, uuid.Nil, user.ID)

	profile := &models.UserProfile{
		UserID:        user.ID,
		Name:          "Test User",
		Sex:           "Female",
		Age:           30,
		WeightLb:      150,
		Height:        `5'6"`,
		ExerciseLevel: "Sedentary",
	}
	require.NoError(t, db.Create(profile).Error)

	goals := &models.MacroGoals{UserID: user.ID, ProteinRatio: 0.3, FatRatio: 0.3, CarbRatio: 0.4, TDEE: 1900, Goal: 1900}
	require.NoError(t, db.Create(goals).Error)

	vec := make([]float32, 16)
	vec[0] = 1
	entry := &models.FoodLogEntry{
		UserID:      user.ID,
		FdcID:       1102644,
		Description: "Apple, raw",
		Nutrients: models.NutrientList{
			{NutrientName: "Energy", NutrientNumber: nutrition.CodeEnergy, Value: nutrition.Float(52), UnitName: "KCAL"},
		},
		Embedding: pgvector.NewVector(vec),
	}
	require.NoError(t, db.Create(entry).Error)

	var loaded models.FoodLogEntry
	require.NoError(t, db.First(&loaded, "id = ?", entry.ID).Error)
	assert.Equal(t, int64(1102644), loaded.FdcID)
	assert.Len(t, loaded.Nutrients, 1)
	assert.Equal(t, nutrition.FoodID(1102644), loaded.Record().FdcID)
	assert.Len(t, loaded.Embedding.Slice(), 16)

	dup := &models.FoodLogEntry{UserID: user.ID, FdcID: 1102644, Embedding: pgvector.NewVector(vec)}
	assert.Error(t, db.Create(dup).Error, "(user_id, fdc_id) must be unique")
}

func TestSQLiteDatabaseSetup(t *testing.T) {
	db := SetupSQLiteDatabase(t)
	exerciseSchema(t, db)
}

func TestPostgresDatabaseSetup(t *testing.T) {
	db := SetupTestDatabase(t)
	exerciseSchema(t, db)
}

func TestRedisSetup(t *testing.T) {
	client := SetupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "ping", "pong", 0).Err())
	got, err := client.Get(ctx, "ping").Result()
	require.NoError(t, err)
	assert.Equal(t, "pong", got)
}
