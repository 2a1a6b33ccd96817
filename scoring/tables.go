package scoring

// Categorical encodings shared by the scoring functions. The maps are
// unexported and only read through Encode, so nothing can mutate them after
// package initialization.
var encoders = map[string]map[string]float64{
	"materialType":       {"Plastic": 0, "Cardboard": 1, "Glass": 2, "Metal": 3, "Composite": 4},
	"fragility":          {"Low": 0, "Medium": 1, "High": 2},
	"recyclable":         {"Yes": 1, "No": 0},
	"transportMode":      {"Road": 0, "Rail": 1, "Sea": 2, "Air": 3},
	"preferredPackaging": {"Plastic": 0, "Cardboard": 1, "Glass": 2, "Metal": 3},
	"category":           {"Electronics": 0, "Clothing": 1, "Food": 2, "Home": 3, "Books": 4},
	"material":           {"Plastic": 0, "Cotton": 1, "Metal": 2, "Wood": 3, "Glass": 4},
	"brand":              {"EcoGreen": 0, "SustainaCorp": 1, "GreenTech": 2, "EcoFriendly": 3},
	"sentiment":          {"Positive": 1, "Negative": 0, "Neutral": 0.5},
}

// Encode returns the numeric code of value within the named table.
func Encode(table, value string) (float64, bool) {
	t, ok := encoders[table]
	if !ok {
		return 0, false
	}
	v, ok := t[value]
	return v, ok
}

// Tables returns the names of all encoding tables.
func Tables() []string {
	return []string{
		"materialType", "fragility", "recyclable", "transportMode",
		"preferredPackaging", "category", "material", "brand", "sentiment",
	}
}
