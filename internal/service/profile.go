package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/types"
)

// ProfileService handles user profile operations
type ProfileService struct {
	db *gorm.DB
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		db: db,
	}
}

// GetProfile retrieves a user's profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveProfile replaces the user's profile with snap and re-derives the macro
// goals from it. The previous macro split survives; the calorie goal is reset
// to the new TDEE.
func (s *ProfileService) SaveProfile(ctx context.Context, userID uuid.UUID, snap nutrition.Profile) (*models.UserProfile, *models.MacroGoals, error) {
	var profile models.UserProfile
	var goals models.MacroGoals

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).First(&profile).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			profile = models.UserProfile{UserID: userID}
		case err != nil:
			return fmt.Errorf("failed to load profile: %w", err)
		default:
			if err := recordChanges(tx, userID, profile.Snapshot(), snap); err != nil {
				return err
			}
		}

		profile.Replace(snap)
		if err := tx.Save(&profile).Error; err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}

		var previous *nutrition.MacroGoals
		err = tx.Where("user_id = ?", userID).First(&goals).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			goals = models.MacroGoals{UserID: userID}
		case err != nil:
			return fmt.Errorf("failed to load goals: %w", err)
		default:
			v := goals.Values()
			previous = &v
		}

		goals.Set(nutrition.DeriveGoals(snap, previous))
		if err := tx.Save(&goals).Error; err != nil {
			return fmt.Errorf("failed to save goals: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	log.Printf("[ProfileService] Saved profile for user %s, tdee=%.0f", userID, goals.TDEE)
	return &profile, &goals, nil
}

// recordChanges writes one history row per changed metric.
func recordChanges(tx *gorm.DB, userID uuid.UUID, before, after nutrition.Profile) error {
	type change struct{ field, from, to string }
	ff := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	candidates := []change{
		{"name", before.Name, after.Name},
		{"sex", string(before.Sex), string(after.Sex)},
		{"age", strconv.Itoa(before.Age), strconv.Itoa(after.Age)},
		{"weight", ff(before.WeightLb), ff(after.WeightLb)},
		{"height", before.Height, after.Height},
		{"exercise_level", string(before.ExerciseLevel), string(after.ExerciseLevel)},
	}

	now := time.Now()
	for _, c := range candidates {
		if c.from == c.to {
			continue
		}
		history := &models.ProfileHistory{
			UserID:    userID.String(),
			Field:     c.field,
			OldValue:  c.from,
			NewValue:  c.to,
			ChangedAt: now,
			ChangedBy: userID.String(),
		}
		if err := tx.Create(history).Error; err != nil {
			return fmt.Errorf("failed to record %s change: %w", c.field, err)
		}
	}
	return nil
}

// GetProfileHistory retrieves the change history for a user's profile
func (s *ProfileService) GetProfileHistory(ctx context.Context, userID uuid.UUID) ([]*types.ProfileHistory, error) {
	var history []models.ProfileHistory
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID.String()).Order("changed_at DESC, id DESC").Find(&history).Error; err != nil {
		return nil, err
	}

	result := make([]*types.ProfileHistory, len(history))
	for i, h := range history {
		result[i] = &types.ProfileHistory{
			ID:        h.ID,
			UserID:    userID,
			Field:     h.Field,
			OldValue:  h.OldValue,
			NewValue:  h.NewValue,
			ChangedAt: h.ChangedAt,
			ChangedBy: h.ChangedBy,
		}
	}
	return result, nil
}

// Metrics derives the unit conversions and energy estimates of a profile.
func Metrics(p nutrition.Profile) types.ProfileMetrics {
	height, _ := nutrition.ParseHeight(p.Height)
	return types.ProfileMetrics{
		WeightLb: p.WeightLb,
		WeightKg: nutrition.WeightLbToKg(p.WeightLb),
		Height:   height,
		HeightCm: nutrition.HeightToCm(p.Height),
		REE:      nutrition.CalculateREE(p),
		TDEE:     nutrition.CalculateTDEE(p),
	}
}
