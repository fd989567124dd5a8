package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/macrotrack/backend/internal/metrics"
	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
)

var ErrUnknownPreset = errors.New("unknown goal preset")

// GoalsService loads and mutates a user's macro goals. Goals only exist once
// a profile has been saved.
type GoalsService struct {
	db *gorm.DB
}

var _ IGoalsService = (*GoalsService)(nil)

func NewGoalsService(db *gorm.DB) *GoalsService {
	return &GoalsService{db: db}
}

func (s *GoalsService) GetGoals(ctx context.Context, userID uuid.UUID) (*models.MacroGoals, error) {
	var goals models.MacroGoals
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&goals).Error; err != nil {
		return nil, err
	}
	return &goals, nil
}

// UpdateRatios applies edit. On an invalid split the stored goals are
// returned unchanged together with an error wrapping
// nutrition.ErrRatioSumInvalid.
func (s *GoalsService) UpdateRatios(ctx context.Context, userID uuid.UUID, edit nutrition.RatioEdit) (*models.MacroGoals, error) {
	var rejected error
	goals, err := s.mutate(ctx, userID, func(current nutrition.MacroGoals) nutrition.MacroGoals {
		next, err := nutrition.ApplyRatioEdit(current, edit)
		if err != nil {
			metrics.IncRatioRejection()
			rejected = err
		}
		return next
	})
	if err != nil {
		return nil, err
	}
	return goals, rejected
}

func (s *GoalsService) ApplyPreset(ctx context.Context, userID uuid.UUID, preset nutrition.GoalPreset) (*models.MacroGoals, error) {
	var unknown bool
	goals, err := s.mutate(ctx, userID, func(current nutrition.MacroGoals) nutrition.MacroGoals {
		delta, ok := nutrition.PresetDelta(current, preset)
		if !ok {
			unknown = true
			return current
		}
		return nutrition.ApplyGoalDelta(current, delta)
	})
	if err != nil {
		return nil, err
	}
	if unknown {
		return goals, fmt.Errorf("%w: %q", ErrUnknownPreset, preset)
	}
	return goals, nil
}

func (s *GoalsService) ApplyDelta(ctx context.Context, userID uuid.UUID, deltaKcal float64) (*models.MacroGoals, error) {
	return s.mutate(ctx, userID, func(current nutrition.MacroGoals) nutrition.MacroGoals {
		return nutrition.ApplyGoalDelta(current, deltaKcal)
	})
}

func (s *GoalsService) SetCalories(ctx context.Context, userID uuid.UUID, kcal float64) (*models.MacroGoals, error) {
	return s.mutate(ctx, userID, func(current nutrition.MacroGoals) nutrition.MacroGoals {
		return nutrition.SetGoal(current, kcal)
	})
}

// mutate loads the goals, applies fn and saves the result if it changed.
func (s *GoalsService) mutate(ctx context.Context, userID uuid.UUID, fn func(nutrition.MacroGoals) nutrition.MacroGoals) (*models.MacroGoals, error) {
	var goals models.MacroGoals
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).First(&goals).Error; err != nil {
			return err
		}
		current := goals.Values()
		next := fn(current)
		if next == current {
			return nil
		}
		goals.Set(next)
		if err := tx.Save(&goals).Error; err != nil {
			return fmt.Errorf("failed to save goals: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &goals, nil
}
