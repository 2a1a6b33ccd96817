package handlers

import (
	"context"
	"encoding/json"

	"sustainability-analytics-api/models"
)

type StatusStore interface {
	ListAll(ctx context.Context) ([]models.ModelStatus, error)
	Get(ctx context.Context, modelType models.ModelType) (*models.ModelStatus, error)
}

type Trainer interface {
	Start(ctx context.Context, modelType models.ModelType) error
}

type PredictionLogger interface {
	Append(ctx context.Context, modelType models.ModelType, input json.RawMessage, output interface{}, confidence *float64) (string, error)
}

type BatchJobLister interface {
	List(ctx context.Context) ([]models.BatchJob, error)
}

type BatchSubmitter interface {
	Process(ctx context.Context, modelType string, data json.RawMessage) (*models.BatchJob, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}
