package nutrition

import (
	"errors"
	"fmt"
	"math"
)

// FoodID identifies a food record at the lookup provider (FDC id).
type FoodID int64

// NutrientCode is the standardized nutrient number used by FoodData Central.
type NutrientCode string

const (
	CodeProtein NutrientCode = "203"
	CodeFat     NutrientCode = "204"
	CodeCarbs   NutrientCode = "205"
	CodeEnergy  NutrientCode = "208"
)

// MacroCodes are the codes the tracker cares about.
var MacroCodes = []NutrientCode{CodeProtein, CodeFat, CodeCarbs, CodeEnergy}

// IsMacro reports whether code is one of MacroCodes.
func (c NutrientCode) IsMacro() bool {
	switch c {
	case CodeProtein, CodeFat, CodeCarbs, CodeEnergy:
		return true
	}
	return false
}

// Nutrient is one nutrient entry of a food record. Value is nil when the
// provider omitted it.
type Nutrient struct {
	NutrientID     int          `json:"nutrientId,omitempty"`
	NutrientName   string       `json:"nutrientName,omitempty"`
	NutrientNumber NutrientCode `json:"nutrientNumber,omitempty"`
	Value          *float64     `json:"value,omitempty"`
	UnitName       string       `json:"unitName,omitempty"`
}

// FoodRecord is a food item as returned by the lookup provider, trimmed to the
// fields the tracker uses. The JSON shape matches the FDC search response.
type FoodRecord struct {
	FdcID           FoodID     `json:"fdcId"`
	Description     string     `json:"description"`
	FoodNutrients   []Nutrient `json:"foodNutrients,omitempty"`
	ServingSizeUnit string     `json:"servingSizeUnit,omitempty"`
	ServingSize     *float64   `json:"servingSize,omitempty"`
}

// NutrientValue looks up code in the record. ok is false when no entry with a
// value exists, which keeps "missing" apart from a genuine zero. When a code
// appears more than once the last entry with a value wins.
func (r FoodRecord) NutrientValue(code NutrientCode) (value float64, ok bool) {
	for _, n := range r.FoodNutrients {
		if n.NutrientNumber != code || n.Value == nil {
			continue
		}
		value, ok = *n.Value, true
	}
	return value, ok
}

// ErrInvalidRecord marks a food record that cannot be logged.
var ErrInvalidRecord = errors.New("invalid food record")

// Validate checks a record received from a client before it is staged: it
// needs an id, and serving size and macro values must be finite and not
// negative. Other nutrients are not inspected.
func (r FoodRecord) Validate() error {
	if r.FdcID <= 0 {
		return fmt.Errorf("%w: fdcId is required", ErrInvalidRecord)
	}
	if r.ServingSize != nil && !validAmount(*r.ServingSize) {
		return fmt.Errorf("%w: servingSize %v", ErrInvalidRecord, *r.ServingSize)
	}
	for _, n := range r.FoodNutrients {
		if n.NutrientNumber.IsMacro() && n.Value != nil && !validAmount(*n.Value) {
			return fmt.Errorf("%w: nutrient %s value %v", ErrInvalidRecord, n.NutrientNumber, *n.Value)
		}
	}
	return nil
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Float returns a pointer to v, for building records and edits.
func Float(v float64) *float64 {
	return &v
}
