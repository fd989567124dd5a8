package nutrition

import (
	"errors"
	"fmt"
	"math"
)

// Atwater factors in kcal per gram.
const (
	KcalPerGramProtein = 4
	KcalPerGramCarb    = 4
	KcalPerGramFat     = 9
)

// Default macro split applied to freshly derived goals.
const (
	DefaultProteinRatio = 0.20
	DefaultFatRatio     = 0.20
	DefaultCarbRatio    = 0.60
)

// RatioSumTolerance is how far protein+fat+carb may drift from 1 and still
// be committed. Percentage inputs rounded to two decimals routinely land a
// few ulps away from 1.
const RatioSumTolerance = 1e-4

// ErrRatioSumInvalid is returned when an edited ratio triple does not sum to 1.
var ErrRatioSumInvalid = errors.New("macro ratios must sum to 1")

// MacroGoals holds the daily calorie goal and its macro split.
type MacroGoals struct {
	ProteinRatio float64 `json:"protein"`
	FatRatio     float64 `json:"fat"`
	CarbRatio    float64 `json:"carbs"`
	TDEE         float64 `json:"tdee"`
	Goal         float64 `json:"goal"`
}

// RatioSum returns protein+fat+carb.
func (g MacroGoals) RatioSum() float64 {
	return g.ProteinRatio + g.FatRatio + g.CarbRatio
}

// GramTargets is the per-macro daily target in grams.
type GramTargets struct {
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	CarbG    float64 `json:"carbs_g"`
}

// RatioEdit carries the ratios a user changed. Nil fields keep their current
// value.
type RatioEdit struct {
	Protein *float64 `json:"protein,omitempty"`
	Fat     *float64 `json:"fat,omitempty"`
	Carbs   *float64 `json:"carbs,omitempty"`
}

// DeriveInitialGoals builds goals for a new profile: default split with goal
// equal to tdee.
func DeriveInitialGoals(tdee float64) MacroGoals {
	return MacroGoals{
		ProteinRatio: DefaultProteinRatio,
		FatRatio:     DefaultFatRatio,
		CarbRatio:    DefaultCarbRatio,
		TDEE:         tdee,
		Goal:         tdee,
	}
}

// DeriveGoals recomputes TDEE for p and resets the goal to it. The macro
// split of previous is kept; a nil previous gets the default split.
func DeriveGoals(p Profile, previous *MacroGoals) MacroGoals {
	goals := DeriveInitialGoals(CalculateTDEE(p))
	if previous != nil {
		goals.ProteinRatio = previous.ProteinRatio
		goals.FatRatio = previous.FatRatio
		goals.CarbRatio = previous.CarbRatio
	}
	return goals
}

// ApplyRatioEdit applies edit to current. The edit is committed only when the
// resulting triple lies in [0,1] and sums to 1 within RatioSumTolerance;
// otherwise current is returned unchanged along with ErrRatioSumInvalid.
// Callers that prefer the silent behaviour can ignore the error.
func ApplyRatioEdit(current MacroGoals, edit RatioEdit) (MacroGoals, error) {
	next := current
	if edit.Protein != nil {
		next.ProteinRatio = *edit.Protein
	}
	if edit.Fat != nil {
		next.FatRatio = *edit.Fat
	}
	if edit.Carbs != nil {
		next.CarbRatio = *edit.Carbs
	}

	for _, r := range []float64{next.ProteinRatio, next.FatRatio, next.CarbRatio} {
		if r < 0 || r > 1 || math.IsNaN(r) {
			return current, fmt.Errorf("%w: ratio %v out of range", ErrRatioSumInvalid, r)
		}
	}
	if sum := next.RatioSum(); math.Abs(sum-1) > RatioSumTolerance {
		return current, fmt.Errorf("%w: got %.6f", ErrRatioSumInvalid, sum)
	}
	return next, nil
}

// ApplyGoalDelta sets the goal to TDEE plus delta. The delta is always
// relative to TDEE, so applying the same delta twice is a no-op.
func ApplyGoalDelta(current MacroGoals, deltaKcal float64) MacroGoals {
	current.Goal = current.TDEE + deltaKcal
	return current
}

// SetGoal replaces the calorie goal with an explicit value.
func SetGoal(current MacroGoals, kcal float64) MacroGoals {
	current.Goal = kcal
	return current
}

// GoalPreset is one of the quick goal adjustments.
type GoalPreset string

const (
	PresetLose     GoalPreset = "lose"
	PresetMaintain GoalPreset = "maintain"
	PresetGain     GoalPreset = "gain"
)

var presetFactors = map[GoalPreset]float64{
	PresetLose:     -0.20,
	PresetMaintain: 0,
	PresetGain:     0.10,
}

// PresetDelta returns the kcal delta a preset applies to goals. ok is false
// for unknown presets.
func PresetDelta(goals MacroGoals, preset GoalPreset) (delta float64, ok bool) {
	factor, ok := presetFactors[preset]
	if !ok {
		return 0, false
	}
	return goals.TDEE * factor, true
}

// CalculateGramTargets converts the calorie goal and split into grams using
// the Atwater factors.
func CalculateGramTargets(goals MacroGoals) GramTargets {
	return GramTargets{
		ProteinG: goals.Goal * goals.ProteinRatio / KcalPerGramProtein,
		FatG:     goals.Goal * goals.FatRatio / KcalPerGramFat,
		CarbG:    goals.Goal * goals.CarbRatio / KcalPerGramCarb,
	}
}
