package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/macrotrack/backend/internal/nutrition"
)

// ProfileRequest is the full profile sent on every edit. Weight and height
// may be given in pounds and feet/inches or in kilograms and centimeters;
// the imperial value wins when both are present.
type ProfileRequest struct {
	Name          string  `json:"name" binding:"required,min=3"`
	Sex           string  `json:"sex" binding:"required,oneof=Male Female"`
	Age           int     `json:"age" binding:"required,gte=18"`
	Weight        float64 `json:"weight" binding:"required_without=WeightKg,omitempty,gt=0"`
	WeightKg      float64 `json:"weight_kg" binding:"omitempty,gt=0"`
	Height        string  `json:"height" binding:"required_without=HeightCm,omitempty,height"`
	HeightCm      float64 `json:"height_cm" binding:"omitempty,gt=0"`
	ExerciseLevel string  `json:"exercise_level" binding:"required,exercise_level"`
}

// Snapshot converts the request into the energy model's profile value,
// normalizing metric input to pounds and feet/inches.
func (r ProfileRequest) Snapshot() nutrition.Profile {
	weight := r.Weight
	if weight == 0 {
		weight = nutrition.WeightKgToLb(r.WeightKg)
	}
	height := r.Height
	if height == "" {
		height = nutrition.CmToHeight(r.HeightCm).String()
	}
	return nutrition.Profile{
		Name:          r.Name,
		Sex:           nutrition.Sex(r.Sex),
		Age:           r.Age,
		WeightLb:      weight,
		Height:        height,
		ExerciseLevel: nutrition.ExerciseLevel(r.ExerciseLevel),
	}
}

// ProfileMetrics is the derived view of a profile.
type ProfileMetrics struct {
	WeightLb float64          `json:"weight_lb"`
	WeightKg float64          `json:"weight_kg"`
	Height   nutrition.Height `json:"height"`
	HeightCm float64          `json:"height_cm"`
	REE      float64          `json:"ree"`
	TDEE     float64          `json:"tdee"`
}

// ProfileHistory represents a user's profile history
type ProfileHistory struct {
	ID        uint      `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Field     string    `json:"field"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	ChangedAt time.Time `json:"changed_at"`
	ChangedBy string    `json:"changed_by"`
}
