package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/macrotrack/backend/internal/nutrition"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserProfile stores the body metrics of one user. It is replaced wholesale
// on every edit.
type UserProfile struct {
	ID            uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Name          string         `gorm:"size:100;not null" json:"name"`
	Sex           string         `gorm:"size:10;not null" json:"sex"`
	Age           int            `gorm:"not null" json:"age"`
	WeightLb      float64        `gorm:"not null" json:"weight"`
	Height        string         `gorm:"size:16;not null" json:"height"`
	ExerciseLevel string         `gorm:"size:32;not null;default:'Sedentary'" json:"exercise_level"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Snapshot returns the profile as the value the energy model works on.
func (p *UserProfile) Snapshot() nutrition.Profile {
	return nutrition.Profile{
		Name:          p.Name,
		Sex:           nutrition.Sex(p.Sex),
		Age:           p.Age,
		WeightLb:      p.WeightLb,
		Height:        p.Height,
		ExerciseLevel: nutrition.ExerciseLevel(p.ExerciseLevel),
	}
}

// Replace overwrites every metric with the values of snap.
func (p *UserProfile) Replace(snap nutrition.Profile) {
	p.Name = snap.Name
	p.Sex = string(snap.Sex)
	p.Age = snap.Age
	p.WeightLb = snap.WeightLb
	p.Height = snap.Height
	p.ExerciseLevel = string(snap.ExerciseLevel)
}
