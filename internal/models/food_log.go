package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/pageza/macrotrack/backend/internal/nutrition"
)

// NutrientList is a nutrient array stored as JSONB.
type NutrientList []nutrition.Nutrient

// Value implements the driver.Valuer interface
func (l NutrientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (l *NutrientList) Scan(value interface{}) error {
	if value == nil {
		*l = NutrientList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported nutrient list type %T", value)
	}

	return json.Unmarshal(bytes, l)
}

// FoodLogEntry is one committed food record. Position keeps the order the
// entries were committed in; (user_id, fdc_id) is unique.
type FoodLogEntry struct {
	ID              uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID          uuid.UUID       `gorm:"type:varchar(36);not null;uniqueIndex:idx_food_log_user_fdc" json:"user_id"`
	FdcID           int64           `gorm:"not null;uniqueIndex:idx_food_log_user_fdc" json:"fdc_id"`
	Position        int             `gorm:"not null" json:"position"`
	Description     string          `gorm:"type:text" json:"description"`
	ServingSize     *float64        `json:"serving_size,omitempty"`
	ServingSizeUnit string          `gorm:"size:16" json:"serving_size_unit"`
	Nutrients       NutrientList    `gorm:"type:jsonb;not null;default:'[]'" json:"nutrients"`
	Embedding       pgvector.Vector `gorm:"type:vector(16)" json:"-"`
	CreatedAt       time.Time       `json:"created_at"`
}

func (FoodLogEntry) TableName() string {
	return "food_log_entries"
}

func (e *FoodLogEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Record converts the entry back into the provider record shape.
func (e *FoodLogEntry) Record() nutrition.FoodRecord {
	return nutrition.FoodRecord{
		FdcID:           nutrition.FoodID(e.FdcID),
		Description:     e.Description,
		FoodNutrients:   []nutrition.Nutrient(e.Nutrients),
		ServingSizeUnit: e.ServingSizeUnit,
		ServingSize:     e.ServingSize,
	}
}

// NewFoodLogEntry builds an entry for userID at position from r.
func NewFoodLogEntry(userID uuid.UUID, position int, r nutrition.FoodRecord, embedding pgvector.Vector) FoodLogEntry {
	return FoodLogEntry{
		UserID:          userID,
		FdcID:           int64(r.FdcID),
		Position:        position,
		Description:     r.Description,
		ServingSize:     r.ServingSize,
		ServingSizeUnit: r.ServingSizeUnit,
		Nutrients:       NutrientList(r.FoodNutrients),
		Embedding:       embedding,
	}
}
