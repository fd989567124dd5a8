package nutrition

// Totals are the running sums over a food log.
type Totals struct {
	Calories float64 `json:"calories"`
	Proteins float64 `json:"proteins"`
	Fats     float64 `json:"fats"`
	Carbs    float64 `json:"carbs"`
}

// Band is the coarse progress classification shown next to a percentage.
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

// SumByCode sums every nutrient entry matching code across all records.
// Entries without a value count as 0.
func SumByCode(log []FoodRecord, code NutrientCode) float64 {
	var sum float64
	for _, record := range log {
		for _, n := range record.FoodNutrients {
			if n.NutrientNumber == code && n.Value != nil {
				sum += *n.Value
			}
		}
	}
	return sum
}

// ComputeTotals recomputes all totals from scratch.
func ComputeTotals(log []FoodRecord) Totals {
	return Totals{
		Calories: SumByCode(log, CodeEnergy),
		Proteins: SumByCode(log, CodeProtein),
		Fats:     SumByCode(log, CodeFat),
		Carbs:    SumByCode(log, CodeCarbs),
	}
}

// ProgressPercent returns total as a percentage of goal. A non-positive goal
// has no meaningful progress and yields 0.
func ProgressPercent(total, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return total / goal * 100
}

// ClampPercent caps a percentage at 100 for display.
func ClampPercent(p float64) float64 {
	if p > 100 {
		return 100
	}
	return p
}

// ProgressBand classifies p. Boundary values fall into the lower band.
func ProgressBand(p float64) Band {
	switch {
	case p > 66:
		return BandHigh
	case p > 33:
		return BandMedium
	default:
		return BandLow
	}
}

// Progress is one value measured against its target.
type Progress struct {
	Total   float64 `json:"total"`
	Target  float64 `json:"target"`
	Percent float64 `json:"percent"`
	Display float64 `json:"display_percent"`
	Band    Band    `json:"band"`
}

// NewProgress measures total against target.
func NewProgress(total, target float64) Progress {
	p := ProgressPercent(total, target)
	return Progress{
		Total:   total,
		Target:  target,
		Percent: p,
		Display: ClampPercent(p),
		Band:    ProgressBand(p),
	}
}

// ProgressReport is the full progress view for a log.
type ProgressReport struct {
	Calories Progress `json:"calories"`
	Protein  Progress `json:"protein"`
	Fat      Progress `json:"fat"`
	Carbs    Progress `json:"carbs"`
}

// BuildProgress measures calories against the kcal goal and each macro
// against its gram target.
func BuildProgress(totals Totals, goals MacroGoals) ProgressReport {
	targets := CalculateGramTargets(goals)
	return ProgressReport{
		Calories: NewProgress(totals.Calories, goals.Goal),
		Protein:  NewProgress(totals.Proteins, targets.ProteinG),
		Fat:      NewProgress(totals.Fats, targets.FatG),
		Carbs:    NewProgress(totals.Carbs, targets.CarbG),
	}
}
