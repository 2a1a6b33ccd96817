package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	JobStatusQueued     = "queued"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

type BatchJob struct {
	ID            string         `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Filename      string         `gorm:"column:filename;not null" json:"filename"`
	ModelType     string         `gorm:"column:model_type;type:varchar(32);not null" json:"modelType"`
	Status        string         `gorm:"column:status;type:varchar(20);not null;default:queued" json:"status"`
	TotalRows     int            `gorm:"column:total_rows;not null;default:0" json:"totalRows"`
	ProcessedRows int            `gorm:"column:processed_rows;not null;default:0" json:"processedRows"`
	Results       datatypes.JSON `gorm:"column:results" json:"results"`
	ErrorMessage  *string        `gorm:"column:error_message" json:"errorMessage"`
	CompletedAt   *time.Time     `gorm:"column:completed_at" json:"completedAt"`
	CreatedAt     time.Time      `gorm:"column:created_at;index" json:"createdAt"`
}

func (BatchJob) TableName() string { return "batch_jobs" }
