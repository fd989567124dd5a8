package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, userID uuid.UUID, profile nutrition.Profile) (*models.UserProfile, *models.MacroGoals, error)
	GetProfileHistory(ctx context.Context, userID uuid.UUID) ([]*types.ProfileHistory, error)
}

// IGoalsService defines the interface for macro goal operations. Every method
// returns the goals as stored after the call.
type IGoalsService interface {
	GetGoals(ctx context.Context, userID uuid.UUID) (*models.MacroGoals, error)
	UpdateRatios(ctx context.Context, userID uuid.UUID, edit nutrition.RatioEdit) (*models.MacroGoals, error)
	ApplyPreset(ctx context.Context, userID uuid.UUID, preset nutrition.GoalPreset) (*models.MacroGoals, error)
	ApplyDelta(ctx context.Context, userID uuid.UUID, deltaKcal float64) (*models.MacroGoals, error)
	SetCalories(ctx context.Context, userID uuid.UUID, kcal float64) (*models.MacroGoals, error)
}

// IFoodLookupService defines the remote food search contract
type IFoodLookupService interface {
	Search(ctx context.Context, query string) ([]nutrition.FoodRecord, error)
}

// ITrackerService defines the interface for food log operations
type ITrackerService interface {
	GetLog(ctx context.Context, userID uuid.UUID) (nutrition.FoodLog, error)
	GetSelection(ctx context.Context, userID uuid.UUID) ([]nutrition.FoodRecord, error)
	ToggleSelection(ctx context.Context, userID uuid.UUID, item nutrition.FoodRecord) ([]nutrition.FoodRecord, error)
	Commit(ctx context.Context, userID uuid.UUID) (nutrition.FoodLog, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, id nutrition.FoodID) (nutrition.FoodLog, error)
	Clear(ctx context.Context, userID uuid.UUID) error
	SearchHistory(ctx context.Context, userID uuid.UUID, query string, limit int) ([]nutrition.FoodRecord, error)
}

// IDiaryExporter defines the interface for diary exports
type IDiaryExporter interface {
	Export(ctx context.Context, userID uuid.UUID) (*types.ExportResponse, error)
}
