package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/service"
)

// MockGoalsService is a mock implementation of the GoalsService interface
type MockGoalsService struct {
	mock.Mock
}

var _ service.IGoalsService = (*MockGoalsService)(nil)

func (m *MockGoalsService) goals(args mock.Arguments) (*models.MacroGoals, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MacroGoals), args.Error(1)
}

func (m *MockGoalsService) GetGoals(ctx context.Context, userID uuid.UUID) (*models.MacroGoals, error) {
	return m.goals(m.Called(ctx, userID))
}

func (m *MockGoalsService) UpdateRatios(ctx context.Context, userID uuid.UUID, edit nutrition.RatioEdit) (*models.MacroGoals, error) {
	return m.goals(m.Called(ctx, userID, edit))
}

func (m *MockGoalsService) ApplyPreset(ctx context.Context, userID uuid.UUID, preset nutrition.GoalPreset) (*models.MacroGoals, error) {
	return m.goals(m.Called(ctx, userID, preset))
}

func (m *MockGoalsService) ApplyDelta(ctx context.Context, userID uuid.UUID, deltaKcal float64) (*models.MacroGoals, error) {
	return m.goals(m.Called(ctx, userID, deltaKcal))
}

func (m *MockGoalsService) SetCalories(ctx context.Context, userID uuid.UUID, kcal float64) (*models.MacroGoals, error) {
	return m.goals(m.Called(ctx, userID, kcal))
}
