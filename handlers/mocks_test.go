package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"sustainability-analytics-api/models"
	"sustainability-analytics-api/services"
)

var errStoreDown = errors.New("connection refused: password=hunter2")

type fakeStatusStore struct {
	rows map[models.ModelType]models.ModelStatus
	err  error
}

func (f *fakeStatusStore) ListAll(ctx context.Context) ([]models.ModelStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.ModelStatus{}
	for _, t := range models.ModelTypes {
		if row, ok := f.rows[t]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeStatusStore) Get(ctx context.Context, modelType models.ModelType) (*models.ModelStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	row, ok := f.rows[modelType]
	if !ok {
		return nil, services.ErrNotFound
	}
	return &row, nil
}

type fakeTrainer struct {
	mu      sync.Mutex
	started []models.ModelType
	err     error
}

func (f *fakeTrainer) Start(ctx context.Context, modelType models.ModelType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.started = append(f.started, modelType)
	return nil
}

type loggedPrediction struct {
	modelType  models.ModelType
	input      json.RawMessage
	output     interface{}
	confidence *float64
}

type fakePredictionLog struct {
	mu      sync.Mutex
	entries []loggedPrediction
	err     error
}

func (f *fakePredictionLog) Append(ctx context.Context, modelType models.ModelType, input json.RawMessage, output interface{}, confidence *float64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.entries = append(f.entries, loggedPrediction{modelType, input, output, confidence})
	return "pred-" + string(modelType), nil
}

type fakeBatches struct {
	jobs []models.BatchJob
	err  error

	gotModelType string
	gotData      json.RawMessage
}

func (f *fakeBatches) List(ctx context.Context) ([]models.BatchJob, error) {
	return f.jobs, f.err
}

func (f *fakeBatches) Process(ctx context.Context, modelType string, data json.RawMessage) (*models.BatchJob, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.gotModelType = modelType
	f.gotData = data
	return &models.BatchJob{ID: "job-1", ModelType: modelType, TotalRows: 3, Status: models.JobStatusCompleted}, nil
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(ctx context.Context) error { return f.err }
