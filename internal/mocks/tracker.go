package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/service"
	"github.com/pageza/macrotrack/backend/internal/types"
)

// MockTrackerService is a mock implementation of the TrackerService interface
type MockTrackerService struct {
	mock.Mock
}

var _ service.ITrackerService = (*MockTrackerService)(nil)

func (m *MockTrackerService) GetLog(ctx context.Context, userID uuid.UUID) (nutrition.FoodLog, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(nutrition.FoodLog), args.Error(1)
}

func (m *MockTrackerService) GetSelection(ctx context.Context, userID uuid.UUID) ([]nutrition.FoodRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]nutrition.FoodRecord), args.Error(1)
}

func (m *MockTrackerService) ToggleSelection(ctx context.Context, userID uuid.UUID, item nutrition.FoodRecord) ([]nutrition.FoodRecord, error) {
	args := m.Called(ctx, userID, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]nutrition.FoodRecord), args.Error(1)
}

func (m *MockTrackerService) Commit(ctx context.Context, userID uuid.UUID) (nutrition.FoodLog, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(nutrition.FoodLog), args.Error(1)
}

func (m *MockTrackerService) RemoveItem(ctx context.Context, userID uuid.UUID, id nutrition.FoodID) (nutrition.FoodLog, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(nutrition.FoodLog), args.Error(1)
}

func (m *MockTrackerService) Clear(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockTrackerService) SearchHistory(ctx context.Context, userID uuid.UUID, query string, limit int) ([]nutrition.FoodRecord, error) {
	args := m.Called(ctx, userID, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]nutrition.FoodRecord), args.Error(1)
}

// MockFoodLookupService is a mock implementation of the FoodLookupService interface
type MockFoodLookupService struct {
	mock.Mock
}

var _ service.IFoodLookupService = (*MockFoodLookupService)(nil)

func (m *MockFoodLookupService) Search(ctx context.Context, query string) ([]nutrition.FoodRecord, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]nutrition.FoodRecord), args.Error(1)
}

// MockDiaryExporter is a mock implementation of the DiaryExporter interface
type MockDiaryExporter struct {
	mock.Mock
}

var _ service.IDiaryExporter = (*MockDiaryExporter)(nil)

func (m *MockDiaryExporter) Export(ctx context.Context, userID uuid.UUID) (*types.ExportResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ExportResponse), args.Error(1)
}
