package nutrition

// Sex selects the Mifflin-St Jeor constant.
type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
)

// ExerciseLevel describes how active a user is during a typical week.
type ExerciseLevel string

const (
	Sedentary        ExerciseLevel = "Sedentary"        // little or no exercise
	LightActivity    ExerciseLevel = "LightActivity"    // 1-3 days a week
	ModerateActivity ExerciseLevel = "ModerateActivity" // 3-5 days a week
	VeryActive       ExerciseLevel = "VeryActive"       // 6-7 days a week
)

// activityMultipliers is the single source of truth for known exercise levels.
var activityMultipliers = map[ExerciseLevel]float64{
	Sedentary:        1.2,
	LightActivity:    1.375,
	ModerateActivity: 1.55,
	VeryActive:       1.725,
}

// ExerciseLevels lists the known levels from least to most active.
func ExerciseLevels() []ExerciseLevel {
	return []ExerciseLevel{Sedentary, LightActivity, ModerateActivity, VeryActive}
}

// Valid reports whether the level has a multiplier of its own.
func (l ExerciseLevel) Valid() bool {
	_, ok := activityMultipliers[l]
	return ok
}

// ActivityMultiplier returns the TDEE multiplier for level. Unknown levels
// are treated as Sedentary.
func ActivityMultiplier(level ExerciseLevel) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return activityMultipliers[Sedentary]
}

// Profile is an immutable snapshot of the body metrics used for energy
// estimates. Weight is in pounds, Height is a feet/inches string such as
// 5'10".
type Profile struct {
	Name          string        `json:"name"`
	Sex           Sex           `json:"sex"`
	Age           int           `json:"age"`
	WeightLb      float64       `json:"weight"`
	Height        string        `json:"height"`
	ExerciseLevel ExerciseLevel `json:"exercise_level"`
}

// CalculateREE estimates resting energy expenditure in kcal/day using the
// Mifflin-St Jeor equation. Only the exact value SexMale takes the male
// constant; everything else takes the female one.
func CalculateREE(p Profile) float64 {
	ree := 10*WeightLbToKg(p.WeightLb) + 6.25*HeightToCm(p.Height) - 5*float64(p.Age)
	if p.Sex == SexMale {
		return ree + 5
	}
	return ree - 161
}

// CalculateTDEE scales REE by the profile's activity multiplier.
func CalculateTDEE(p Profile) float64 {
	return CalculateREE(p) * ActivityMultiplier(p.ExerciseLevel)
}
