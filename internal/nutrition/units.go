package nutrition

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

const (
	// CmPerInch is the exact inch to centimeter factor.
	CmPerInch = 2.54
	// KgPerLb is the exact avoirdupois pound to kilogram factor.
	KgPerLb = 0.45359237
)

// ErrMalformedHeight is returned when a height string does not carry both a
// feet and an inches value. The parsed Height is still usable: missing
// components are zero.
var ErrMalformedHeight = errors.New("malformed height")

var digitRuns = regexp.MustCompile(`\d+`)

// Height is a height expressed in whole feet and inches.
type Height struct {
	Feet   int `json:"feet"`
	Inches int `json:"inches"`
}

// String formats the height the way profiles store it: feet, one
// apostrophe, inches, two apostrophes.
func (h Height) String() string {
	return fmt.Sprintf("%d'%d''", h.Feet, h.Inches)
}

// TotalInches returns the height in inches.
func (h Height) TotalInches() int {
	return h.Feet*12 + h.Inches
}

// ParseHeight extracts the first two integer runs of s as feet and inches.
// The unit suffix is not checked. Missing runs default to 0 and the result is
// returned together with ErrMalformedHeight so strict callers can reject it.
func ParseHeight(s string) (Height, error) {
	runs := digitRuns.FindAllString(s, 2)

	var h Height
	if len(runs) > 0 {
		h.Feet = atoiOrZero(runs[0])
	}
	if len(runs) > 1 {
		h.Inches = atoiOrZero(runs[1])
	}
	if len(runs) < 2 {
		return h, fmt.Errorf("%w: %q", ErrMalformedHeight, s)
	}
	return h, nil
}

// HeightToCm converts a feet/inches height string into centimeters. Malformed
// strings degrade to their zero components.
func HeightToCm(s string) float64 {
	h, _ := ParseHeight(s)
	return float64(h.TotalInches()) * CmPerInch
}

// CmToHeight converts centimeters into the nearest whole feet and inches.
func CmToHeight(cm float64) Height {
	if cm <= 0 {
		return Height{}
	}
	total := int(math.Round(cm / CmPerInch))
	return Height{Feet: total / 12, Inches: total % 12}
}

// WeightLbToKg converts pounds to kilograms.
func WeightLbToKg(lb float64) float64 {
	return lb * KgPerLb
}

// WeightKgToLb converts kilograms to pounds.
func WeightKgToLb(kg float64) float64 {
	return kg / KgPerLb
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		// only overflowing digit runs end up here
		return 0
	}
	return n
}
