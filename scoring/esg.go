package scoring

type ESGInput struct {
	EnvironmentalScore float64 `json:"environmentalScore"`
	Sentiment          string  `json:"sentiment"`
}

type ESGPrediction struct {
	ESGScore            int      `json:"esgScore"`
	EnvironmentalImpact float64  `json:"environmentalImpact"`
	SocialImpact        int      `json:"socialImpact"`
	GovernanceScore     int      `json:"governanceScore"`
	OverallRating       string   `json:"overallRating"`
	Recommendations     []string `json:"recommendations"`
}

const neutralSentiment = 0.5

// PredictESGScore scores environmental and sentiment signals. The governance
// score is drawn from governance, a source of values in [0,1); it is the only
// field that varies between calls with identical input.
func PredictESGScore(in ESGInput, governance func() float64) ESGPrediction {
	sentiment, ok := Encode("sentiment", in.Sentiment)
	if !ok {
		sentiment = neutralSentiment
	}
	score := clamp(in.EnvironmentalScore*0.6+sentiment*40, 20, 95)

	return ESGPrediction{
		ESGScore:            int(round(score)),
		EnvironmentalImpact: in.EnvironmentalScore,
		SocialImpact:        int(round(sentiment * 80)),
		GovernanceScore:     60 + int(clamp(governance(), 0, 0.999999)*30),
		OverallRating:       esgRating(score),
		Recommendations:     esgRecommendations(score, in.Sentiment),
	}
}

func esgRating(score float64) string {
	switch {
	case score > 70:
		return "Excellent"
	case score > 50:
		return "Good"
	default:
		return "Needs Improvement"
	}
}

func esgRecommendations(score float64, sentiment string) []string {
	recs := []string{}
	if score < 50 {
		recs = append(recs, "Improve environmental practices")
	}
	if sentiment == "Negative" {
		recs = append(recs, "Address public perception issues")
	}
	return append(recs, "Increase transparency in reporting")
}
