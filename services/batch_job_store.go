package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sustainability-analytics-api/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BatchJobUpdate lists the fields Update may change; nil fields are left
// untouched.
type BatchJobUpdate struct {
	Status        *string
	TotalRows     *int
	ProcessedRows *int
	Results       datatypes.JSON
	ErrorMessage  *string
	CompletedAt   *time.Time
}

type BatchJobStore struct {
	db *gorm.DB
}

func NewBatchJobStore(db *gorm.DB) *BatchJobStore {
	return &BatchJobStore{db: db}
}

// Create inserts job, defaulting the status to queued and negative counts
// to zero.
func (s *BatchJobStore) Create(ctx context.Context, job models.BatchJob) (*models.BatchJob, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Status == "" {
		job.Status = models.JobStatusQueued
	}
	job.TotalRows = max(job.TotalRows, 0)
	job.ProcessedRows = max(job.ProcessedRows, 0)
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}

	if err := s.db.WithContext(ctx).Create(&job).Error; err != nil {
		return nil, fmt.Errorf("insert batch job: %w", err)
	}
	return &job, nil
}

// Update merges the set fields of u into the job with the given id.
func (s *BatchJobStore) Update(ctx context.Context, id string, u BatchJobUpdate) (*models.BatchJob, error) {
	fields := map[string]interface{}{}
	if u.Status != nil {
		fields["status"] = *u.Status
	}
	if u.TotalRows != nil {
		fields["total_rows"] = max(*u.TotalRows, 0)
	}
	if u.ProcessedRows != nil {
		fields["processed_rows"] = max(*u.ProcessedRows, 0)
	}
	if u.Results != nil {
		fields["results"] = u.Results
	}
	if u.ErrorMessage != nil {
		fields["error_message"] = *u.ErrorMessage
	}
	if u.CompletedAt != nil {
		fields["completed_at"] = *u.CompletedAt
	}

	if len(fields) > 0 {
		res := s.db.WithContext(ctx).Model(&models.BatchJob{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, fmt.Errorf("update batch job %s: %w", id, res.Error)
		}
	}

	var job models.BatchJob
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get batch job %s: %w", id, err)
	}
	return &job, nil
}

// List returns all jobs, newest first.
func (s *BatchJobStore) List(ctx context.Context) ([]models.BatchJob, error) {
	jobs := []models.BatchJob{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("list batch jobs: %w", err)
	}
	return jobs, nil
}
