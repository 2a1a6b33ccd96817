package scoring

const (
	weightPurchases = 0.5
	weightDistance  = 0.2
	weightEnergy    = 0.4
	weightTravel    = 0.8
	weightServices  = 0.3
)

type CarbonInput struct {
	TotalPurchases float64 `json:"totalPurchases"`
	AvgDistance    float64 `json:"avgDistance"`
	Electricity    float64 `json:"electricity"`
	Travel         float64 `json:"travel"`
	ServiceUsage   float64 `json:"serviceUsage"`
}

// CarbonBreakdown holds each weighted term rounded on its own; the terms do
// not necessarily sum to the rounded total.
type CarbonBreakdown struct {
	Purchases float64 `json:"purchases"`
	Transport float64 `json:"transport"`
	Energy    float64 `json:"energy"`
	Travel    float64 `json:"travel"`
	Services  float64 `json:"services"`
}

type CarbonPrediction struct {
	TotalCarbonFootprint float64         `json:"totalCarbonFootprint"`
	Breakdown            CarbonBreakdown `json:"breakdown"`
	Category             string          `json:"category"`
	Recommendations      []string        `json:"recommendations"`
}

func PredictCarbonFootprint(in CarbonInput) CarbonPrediction {
	total := in.TotalPurchases*weightPurchases +
		in.AvgDistance*weightDistance +
		in.Electricity*weightEnergy +
		in.Travel*weightTravel +
		in.ServiceUsage*weightServices

	breakdown := CarbonBreakdown{
		Purchases: round(in.TotalPurchases * weightPurchases),
		Transport: round(in.AvgDistance * weightDistance),
		Energy:    round(in.Electricity * weightEnergy),
		Travel:    round(in.Travel * weightTravel),
		Services:  round(in.ServiceUsage * weightServices),
	}

	return CarbonPrediction{
		TotalCarbonFootprint: round(total),
		Breakdown:            breakdown,
		Category:             carbonCategory(total),
		Recommendations:      carbonSuggestions(breakdown),
	}
}

func carbonCategory(total float64) string {
	switch {
	case total > 1000:
		return "High"
	case total > 500:
		return "Medium"
	default:
		return "Low"
	}
}

func carbonSuggestions(b CarbonBreakdown) []string {
	s := []string{}
	if b.Transport > 50 {
		s = append(s, "Consider electric or hybrid transport")
	}
	if b.Energy > 100 {
		s = append(s, "Switch to renewable energy sources")
	}
	if b.Purchases > 200 {
		s = append(s, "Buy local and sustainable products")
	}
	return s
}
