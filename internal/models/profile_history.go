package models

import (
	"time"

	"gorm.io/gorm"
)

// ProfileHistory represents a record of profile changes
type ProfileHistory struct {
	gorm.Model
	UserID    string    `gorm:"index;not null"`
	Field     string    `gorm:"not null"` // sex, age, weight, ...
	OldValue  string    `gorm:"type:text"`
	NewValue  string    `gorm:"type:text"`
	ChangedAt time.Time `gorm:"not null"`
	ChangedBy string    `gorm:"not null"`
}

// TableName specifies the table name for ProfileHistory
func (ProfileHistory) TableName() string {
	return "profile_history"
}

// DiaryExport records an uploaded diary snapshot.
type DiaryExport struct {
	gorm.Model
	UserID    string `gorm:"index;not null"`
	ObjectKey string `gorm:"size:255;not null"`
	Entries   int    `gorm:"not null"`
}
