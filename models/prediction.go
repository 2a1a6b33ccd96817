package models

import (
	"time"

	"gorm.io/datatypes"
)

// ModelPrediction is an immutable record of one scoring invocation.
type ModelPrediction struct {
	ID         string         `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	ModelType  ModelType      `gorm:"column:model_type;type:varchar(32);index;not null" json:"modelType"`
	InputData  datatypes.JSON `gorm:"column:input_data;not null" json:"inputData"`
	Prediction datatypes.JSON `gorm:"column:prediction;not null" json:"prediction"`
	Confidence *float64       `gorm:"column:confidence" json:"confidence"`
	CreatedAt  time.Time      `gorm:"column:created_at;index" json:"createdAt"`
}

func (ModelPrediction) TableName() string { return "model_predictions" }
