package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"

	"sustainability-analytics-api/models"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnknownModelType = errors.New("unknown model type")
)

// carbonConfidence is the fixed confidence logged for carbon predictions.
const carbonConfidence = 0.85

// Result is a prediction together with the values derived from it for
// logging and batch summaries.
type Result struct {
	Prediction any
	Confidence float64
	// Score is the domain's primary score: sustainability score for packaging
	// and product, total footprint for carbon, ESG score for esg.
	Score float64
}

// Engine dispatches structured inputs to the scoring function of a domain.
// It holds no mutable state.
type Engine struct {
	governance func() float64
}

func NewEngine() *Engine {
	return &Engine{governance: rand.Float64}
}

// NewEngineWithSource returns an Engine whose governance scores are drawn
// from src instead of the global random source.
func NewEngineWithSource(src func() float64) *Engine {
	return &Engine{governance: src}
}

// Predict decodes raw as the input of modelType and scores it. An empty raw
// payload is treated as an empty object.
func (e *Engine) Predict(modelType models.ModelType, raw []byte) (Result, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}

	switch modelType {
	case models.ModelTypePackaging:
		var in PackagingInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return Result{}, fmt.Errorf("%w: packaging: %v", ErrInvalidInput, err)
		}
		p := PredictPackaging(in)
		return Result{Prediction: p, Confidence: float64(p.SustainabilityScore) / 100, Score: float64(p.SustainabilityScore)}, nil

	case models.ModelTypeCarbon:
		var in CarbonInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return Result{}, fmt.Errorf("%w: carbon: %v", ErrInvalidInput, err)
		}
		p := PredictCarbonFootprint(in)
		return Result{Prediction: p, Confidence: carbonConfidence, Score: p.TotalCarbonFootprint}, nil

	case models.ModelTypeProduct:
		var in ProductInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return Result{}, fmt.Errorf("%w: product: %v", ErrInvalidInput, err)
		}
		p := PredictProductRecommendation(in)
		return Result{Prediction: p, Confidence: float64(p.PurchaseLikelihood) / 100, Score: float64(p.SustainabilityScore)}, nil

	case models.ModelTypeESG:
		var in ESGInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return Result{}, fmt.Errorf("%w: esg: %v", ErrInvalidInput, err)
		}
		p := PredictESGScore(in, e.governance)
		return Result{Prediction: p, Confidence: float64(p.ESGScore) / 100, Score: float64(p.ESGScore)}, nil
	}

	return Result{}, fmt.Errorf("%w: %q", ErrUnknownModelType, modelType)
}
