package nutrition

// MacroRecord is the fixed-shape macro view of one food record.
type MacroRecord struct {
	ServingSize float64 `json:"serving_size"`
	ServingUnit string  `json:"serving_unit"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Fat         float64 `json:"fat"`
	Carbs       float64 `json:"carbs"`
}

// Extract normalizes a record's nutrient list into a MacroRecord. Values are
// looked up by code, never by position, and absent codes yield 0.
func Extract(record FoodRecord) MacroRecord {
	values := make(map[NutrientCode]float64, len(MacroCodes))
	for _, n := range record.FoodNutrients {
		if !n.NutrientNumber.IsMacro() || n.Value == nil {
			continue
		}
		values[n.NutrientNumber] = *n.Value
	}

	m := MacroRecord{
		ServingUnit: record.ServingSizeUnit,
		Calories:    values[CodeEnergy],
		Protein:     values[CodeProtein],
		Fat:         values[CodeFat],
		Carbs:       values[CodeCarbs],
	}
	if record.ServingSize != nil {
		m.ServingSize = *record.ServingSize
	}
	return m
}

// ExtractAll maps Extract over records. An empty input gives an empty,
// non-nil slice.
func ExtractAll(records []FoodRecord) []MacroRecord {
	out := make([]MacroRecord, 0, len(records))
	for _, r := range records {
		out = append(out, Extract(r))
	}
	return out
}
