package scoring

type ProductInput struct {
	CarbonFootprint float64 `json:"carbonFootprint"`
	WaterUsage      float64 `json:"waterUsage"`
	WasteProduction float64 `json:"wasteProduction"`
	Rating          float64 `json:"rating"`
	Price           float64 `json:"price"`
	AvgPrice        float64 `json:"avgPrice"`
}

type AlternativeProduct struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

type ProductPrediction struct {
	SustainabilityScore int                  `json:"sustainabilityScore"`
	PurchaseLikelihood  int                  `json:"purchaseLikelihood"`
	Recommendation      string               `json:"recommendation"`
	AlternativeProducts []AlternativeProduct `json:"alternativeProducts"`
}

func PredictProductRecommendation(in ProductInput) ProductPrediction {
	score := clamp(
		(100-in.CarbonFootprint)*0.4+
			(100-in.WaterUsage)*0.3+
			(100-in.WasteProduction)*0.3,
		20, 95)

	pricePoints := 10.0
	if in.Price <= in.AvgPrice {
		pricePoints = 30
	}
	likelihood := clamp((in.Rating/5)*40+pricePoints+(score/100)*30, 10, 90)

	// Alternatives and the recommendation tier use the unrounded score.
	return ProductPrediction{
		SustainabilityScore: int(round(score)),
		PurchaseLikelihood:  int(round(likelihood)),
		Recommendation:      productRecommendation(score),
		AlternativeProducts: []AlternativeProduct{
			{Name: "Eco Alternative 1", Score: min(95, score+10)},
			{Name: "Eco Alternative 2", Score: min(95, score+5)},
		},
	}
}

func productRecommendation(score float64) string {
	switch {
	case score > 80:
		return "Highly recommended sustainable choice"
	case score > 60:
		return "Good sustainable option with room for improvement"
	default:
		return "Consider more sustainable alternatives"
	}
}
