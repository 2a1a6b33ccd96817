package scoring

type PackagingInput struct {
	MaterialType  string  `json:"materialType"`
	Fragility     string  `json:"fragility"`
	LCAEmission   float64 `json:"lcaEmission"`
	ProductWeight float64 `json:"productWeight"`
	Recyclable    string  `json:"recyclable"`
}

type PackagingPrediction struct {
	PackagingType       string  `json:"packagingType"`
	SustainabilityScore int     `json:"sustainabilityScore"`
	Recommendation      string  `json:"recommendation"`
	EstimatedCost       float64 `json:"estimatedCost"`
	CarbonFootprint     float64 `json:"carbonFootprint"`
}

const (
	PackagingEcoBox      = "Eco-Box"
	PackagingStandardBox = "Standard Box"
)

func PredictPackaging(in PackagingInput) PackagingPrediction {
	score := 70.0
	if in.Recyclable == "Yes" {
		score += 15
	} else {
		score -= 10
	}
	if in.MaterialType == "Cardboard" {
		score += 10
	}
	score -= in.LCAEmission / 10
	score = clamp(score, 20, 95)

	packagingType := PackagingStandardBox
	if in.MaterialType == "Cardboard" {
		packagingType = PackagingEcoBox
	}

	return PackagingPrediction{
		PackagingType:       packagingType,
		SustainabilityScore: int(round(score)),
		Recommendation:      packagingRecommendation(in.MaterialType, in.Fragility),
		EstimatedCost:       round2(in.ProductWeight*0.5 + 2),
		CarbonFootprint:     round2(in.LCAEmission * 1.2),
	}
}

func packagingRecommendation(materialType, fragility string) string {
	switch {
	case fragility == "High":
		return "Use extra protective materials and sustainable cushioning"
	case materialType == "Cardboard":
		return "Excellent choice for sustainability"
	default:
		return "Consider switching to recyclable materials"
	}
}
