package types

import (
	"time"

	"github.com/pageza/macrotrack/backend/internal/nutrition"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// RatioRequest carries the ratios being edited; omitted ratios keep their
// current value.
type RatioRequest struct {
	Protein *float64 `json:"protein" binding:"omitempty,gte=0,lte=1"`
	Fat     *float64 `json:"fat" binding:"omitempty,gte=0,lte=1"`
	Carbs   *float64 `json:"carbs" binding:"omitempty,gte=0,lte=1"`
}

func (r RatioRequest) Edit() nutrition.RatioEdit {
	return nutrition.RatioEdit{Protein: r.Protein, Fat: r.Fat, Carbs: r.Carbs}
}

// AdjustGoalRequest moves the calorie goal relative to TDEE, either by a
// preset or by an explicit delta.
type AdjustGoalRequest struct {
	Preset    string   `json:"preset" binding:"omitempty,oneof=lose maintain gain"`
	DeltaKcal *float64 `json:"delta_kcal"`
}

type SetCaloriesRequest struct {
	Goal float64 `json:"goal" binding:"required,gt=0"`
}

type ToggleRequest struct {
	Food nutrition.FoodRecord `json:"food"`
}

type GoalsResponse struct {
	Goals   nutrition.MacroGoals  `json:"goals"`
	Targets nutrition.GramTargets `json:"targets"`
}

// FoodItem is a food record together with its extracted macros.
type FoodItem struct {
	Food   nutrition.FoodRecord  `json:"food"`
	Macros nutrition.MacroRecord `json:"macros"`
}

// NewFoodItems pairs every record with its macros.
func NewFoodItems(records []nutrition.FoodRecord) []FoodItem {
	macros := nutrition.ExtractAll(records)
	items := make([]FoodItem, len(records))
	for i := range records {
		items[i] = FoodItem{Food: records[i], Macros: macros[i]}
	}
	return items
}

type TrackerResponse struct {
	Items    []FoodItem                `json:"items"`
	Totals   nutrition.Totals          `json:"totals"`
	Goals    *nutrition.MacroGoals     `json:"goals,omitempty"`
	Targets  *nutrition.GramTargets    `json:"targets,omitempty"`
	Progress *nutrition.ProgressReport `json:"progress,omitempty"`
}

type SelectionResponse struct {
	Items []FoodItem `json:"items"`
}

type ExportResponse struct {
	URL       string    `json:"url"`
	ObjectKey string    `json:"object_key"`
	Entries   int       `json:"entries"`
	ExpiresAt time.Time `json:"expires_at"`
}
