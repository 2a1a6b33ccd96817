package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sustainability-analytics-api/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const PredictionChannel = "sustainability:predictions"

// publishTimeout bounds each fire-and-forget event publish.
const publishTimeout = 2 * time.Second

// Publisher delivers events to subscribers outside the process.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

type PredictionEvent struct {
	ID         string           `json:"id"`
	ModelType  models.ModelType `json:"modelType"`
	Confidence *float64         `json:"confidence"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// PredictionLog appends immutable prediction records. It has no update or
// delete path.
type PredictionLog struct {
	db        *gorm.DB
	publisher Publisher
	logger    *zap.Logger
}

func NewPredictionLog(db *gorm.DB, publisher Publisher, logger *zap.Logger) *PredictionLog {
	return &PredictionLog{db: db, publisher: publisher, logger: logger}
}

// Append stores one prediction and returns its id. A nil confidence is
// stored as NULL.
func (l *PredictionLog) Append(ctx context.Context, modelType models.ModelType, input json.RawMessage, output interface{}, confidence *float64) (string, error) {
	if len(input) == 0 {
		input = json.RawMessage("{}")
	}
	out, err := json.Marshal(output)
	if err != nil {
		return "", fmt.Errorf("encode prediction: %w", err)
	}

	record := models.ModelPrediction{
		ID:         uuid.NewString(),
		ModelType:  modelType,
		InputData:  datatypes.JSON(input),
		Prediction: datatypes.JSON(out),
		Confidence: confidence,
		CreatedAt:  time.Now().UTC(),
	}
	if err := l.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", fmt.Errorf("insert prediction: %w", err)
	}
	predictionsLogged.WithLabelValues(string(modelType)).Inc()

	if l.publisher != nil {
		event := PredictionEvent{
			ID:         record.ID,
			ModelType:  record.ModelType,
			Confidence: record.Confidence,
			CreatedAt:  record.CreatedAt,
		}
		go func() {
			pubCtx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			defer cancel()
			if err := l.publisher.Publish(pubCtx, PredictionChannel, event); err != nil {
				l.logger.Warn("failed to publish prediction event", zap.String("id", event.ID), zap.Error(err))
			}
		}()
	}

	return record.ID, nil
}
