package services

import (
	"context"
	"encoding/json"
	"time"

	"sustainability-analytics-api/models"
	"sustainability-analytics-api/scoring"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gorm.io/datatypes"
)

const (
	batchFilename      = "uploaded.csv"
	batchResultMessage = "Simulated batch complete"
)

type BatchCreator interface {
	Create(ctx context.Context, job models.BatchJob) (*models.BatchJob, error)
}

// BatchSummary is stored as a completed job's results.
type BatchSummary struct {
	Message     string   `json:"message"`
	Scored      int      `json:"scored,omitempty"`
	Failed      int      `json:"failed,omitempty"`
	MeanScore   *float64 `json:"meanScore,omitempty"`
	MinScore    *float64 `json:"minScore,omitempty"`
	MaxScore    *float64 `json:"maxScore,omitempty"`
	StdDevScore *float64 `json:"stdDevScore,omitempty"`
}

// BatchProcessor resolves bulk submissions synchronously: every job it
// creates is already completed.
type BatchProcessor struct {
	store  BatchCreator
	engine *scoring.Engine
	logger *zap.Logger
}

func NewBatchProcessor(store BatchCreator, engine *scoring.Engine, logger *zap.Logger) *BatchProcessor {
	return &BatchProcessor{store: store, engine: engine, logger: logger}
}

// Process records a completed job for data. An array counts one row per
// element, anything else counts as a single row. Rows of a known model
// type are scored and summarized.
func (p *BatchProcessor) Process(ctx context.Context, modelType string, data json.RawMessage) (*models.BatchJob, error) {
	var rows []json.RawMessage
	isArray := json.Unmarshal(data, &rows) == nil && rows != nil
	total := 1
	if isArray {
		total = len(rows)
	}

	summary := BatchSummary{Message: batchResultMessage}
	if mt, ok := models.ParseModelType(modelType); ok && isArray {
		p.score(mt, rows, &summary)
	}

	results, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	job, err := p.store.Create(ctx, models.BatchJob{
		Filename:      batchFilename,
		ModelType:     modelType,
		Status:        models.JobStatusCompleted,
		TotalRows:     total,
		ProcessedRows: total,
		Results:       datatypes.JSON(results),
		CompletedAt:   &now,
	})
	if err != nil {
		return nil, err
	}

	p.logger.Info("batch job completed",
		zap.String("job_id", job.ID),
		zap.String("model_type", modelType),
		zap.Int("total_rows", total),
		zap.Int("scored", summary.Scored),
		zap.Int("failed", summary.Failed))
	return job, nil
}

func (p *BatchProcessor) score(modelType models.ModelType, rows []json.RawMessage, summary *BatchSummary) {
	scores := make([]float64, 0, len(rows))
	for _, row := range rows {
		if !isObject(row) {
			summary.Failed++
			continue
		}
		res, err := p.engine.Predict(modelType, row)
		if err != nil {
			summary.Failed++
			continue
		}
		scores = append(scores, res.Score)
	}
	summary.Scored = len(scores)
	batchRowsScored.Add(float64(summary.Scored))
	batchRowsFailed.Add(float64(summary.Failed))
	if len(scores) == 0 {
		return
	}

	mean, std := stat.MeanStdDev(scores, nil)
	if len(scores) == 1 {
		std = 0
	}
	lo, hi := floats.Min(scores), floats.Max(scores)
	summary.MeanScore = &mean
	summary.MinScore = &lo
	summary.MaxScore = &hi
	summary.StdDevScore = &std
}

func isObject(raw json.RawMessage) bool {
	var obj map[string]json.RawMessage
	return json.Unmarshal(raw, &obj) == nil && obj != nil
}
