package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/macrotrack/backend/internal/nutrition"
)

// MacroGoals is the persisted calorie goal and macro split of a user. It is
// loaded and saved as one unit.
type MacroGoals struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID       uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	ProteinRatio float64   `gorm:"not null" json:"protein"`
	FatRatio     float64   `gorm:"not null" json:"fat"`
	CarbRatio    float64   `gorm:"not null" json:"carbs"`
	TDEE         float64   `gorm:"column:tdee;not null" json:"tdee"`
	Goal         float64   `gorm:"not null" json:"goal"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (MacroGoals) TableName() string {
	return "macro_goals"
}

func (g *MacroGoals) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

func (g *MacroGoals) Values() nutrition.MacroGoals {
	return nutrition.MacroGoals{
		ProteinRatio: g.ProteinRatio,
		FatRatio:     g.FatRatio,
		CarbRatio:    g.CarbRatio,
		TDEE:         g.TDEE,
		Goal:         g.Goal,
	}
}

func (g *MacroGoals) Set(v nutrition.MacroGoals) {
	g.ProteinRatio = v.ProteinRatio
	g.FatRatio = v.FatRatio
	g.CarbRatio = v.CarbRatio
	g.TDEE = v.TDEE
	g.Goal = v.Goal
}
