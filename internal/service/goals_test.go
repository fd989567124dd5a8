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

// setupGoalsTest stores goals with TDEE 2000 and the default split.
func setupGoalsTest(t *testing.T) (*service.GoalsService, *gorm.DB, uuid.UUID) {
	db := testhelpers.SetupSQLiteDatabase(t)
	userID := createUser(t, db)

	goals := &models.MacroGoals{UserID: userID}
	goals.Set(nutrition.DeriveInitialGoals(2000))
	require.NoError(t, db.Create(goals).Error)

	return service.NewGoalsService(db), db, userID
}

func TestUpdateRatiosAccepted(t *testing.T) {
	svc, _, userID := setupGoalsTest(t)
	ctx := context.Background()

	goals, err := svc.UpdateRatios(ctx, userID, nutrition.RatioEdit{
		Protein: nutrition.Float(0.35),
		Carbs:   nutrition.Float(0.45),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.35, goals.ProteinRatio)
	assert.Equal(t, 0.20, goals.FatRatio)
	assert.Equal(t, 0.45, goals.CarbRatio)

	stored, err := svc.GetGoals(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, goals.Values(), stored.Values())
}

func TestUpdateRatiosRejected(t *testing.T) {
	svc, _, userID := setupGoalsTest(t)
	ctx := context.Background()

	goals, err := svc.UpdateRatios(ctx, userID, nutrition.RatioEdit{Protein: nutrition.Float(0.5)})
	assert.ErrorIs(t, err, nutrition.ErrRatioSumInvalid)
	require.NotNil(t, goals)
	assert.Equal(t, nutrition.DefaultProteinRatio, goals.ProteinRatio)

	stored, err := svc.GetGoals(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, nutrition.DefaultProteinRatio, stored.ProteinRatio)
}

func TestApplyPreset(t *testing.T) {
	svc, _, userID := setupGoalsTest(t)
	ctx := context.Background()

	goals, err := svc.ApplyPreset(ctx, userID, nutrition.PresetLose)
	require.NoError(t, err)
	assert.InDelta(t, 1600, goals.Goal, 1e-9)

	goals, err = svc.ApplyPreset(ctx, userID, nutrition.PresetGain)
	require.NoError(t, err)
	assert.InDelta(t, 2200, goals.Goal, 1e-9, "presets are relative to TDEE, not the current goal")

	goals, err = svc.ApplyPreset(ctx, userID, nutrition.PresetMaintain)
	require.NoError(t, err)
	assert.InDelta(t, 2000, goals.Goal, 1e-9)
}

func TestApplyPresetUnknown(t *testing.T) {
	svc, _, userID := setupGoalsTest(t)

	goals, err := svc.ApplyPreset(context.Background(), userID, "bulk")
	assert.ErrorIs(t, err, service.ErrUnknownPreset)
	require.NotNil(t, goals)
	assert.InDelta(t, 2000, goals.Goal, 1e-9)
}

func TestApplyDeltaIsIdempotent(t *testing.T) {
	svc, _, userID := setupGoalsTest(t)
	ctx := context.Background()

	_, err := svc.ApplyDelta(ctx, userID, -250)
	require.NoError(t, err)
	goals, err := svc.ApplyDelta(ctx, userID, -250)
	require.NoError(t, err)
	assert.InDelta(t, 1750, goals.Goal, 1e-9)
	assert.InDelta(t, 2000, goals.TDEE, 1e-9)
}

func TestSetCalories(t *testing.T) {
	svc, _, userID := setupGoalsTest(t)

	goals, err := svc.SetCalories(context.Background(), userID, 1850)
	require.NoError(t, err)
	assert.InDelta(t, 1850, goals.Goal, 1e-9)

	targets := nutrition.CalculateGramTargets(goals.Values())
	assert.InDelta(t, 92.5, targets.ProteinG, 1e-9)
}

func TestGoalsMissingProfile(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := service.NewGoalsService(db)
	userID := createUser(t, db)

	_, err := svc.GetGoals(context.Background(), userID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = svc.SetCalories(context.Background(), userID, 1800)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
