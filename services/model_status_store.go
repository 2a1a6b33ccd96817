package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"sustainability-analytics-api/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// StatusCacheKey holds the cached ListAll result.
	StatusCacheKey = "models:status:all"
	statusCacheTTL = 30 * time.Second
)

// ModelStatusStore keeps one training-status row per model type.
type ModelStatusStore struct {
	db     *gorm.DB
	cache  *CacheService
	logger *zap.Logger

	// cacheMu orders cache writes against invalidations. generation is
	// bumped by every Upsert; a list read during a bump is not cached.
	cacheMu    sync.Mutex
	generation uint64
}

func NewModelStatusStore(db *gorm.DB, cache *CacheService, logger *zap.Logger) *ModelStatusStore {
	return &ModelStatusStore{db: db, cache: cache, logger: logger}
}

// ListAll returns every status row. An empty table is seeded with one
// not_trained row per known model type before reading.
func (s *ModelStatusStore) ListAll(ctx context.Context) ([]models.ModelStatus, error) {
	var cached []models.ModelStatus
	if err := s.cache.Get(ctx, StatusCacheKey, &cached); err == nil && len(cached) > 0 {
		return cached, nil
	}

	s.cacheMu.Lock()
	gen := s.generation
	s.cacheMu.Unlock()

	rows, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		if err := s.seed(ctx); err != nil {
			return nil, err
		}
		if rows, err = s.list(ctx); err != nil {
			return nil, err
		}
	}

	s.cacheMu.Lock()
	if s.generation == gen {
		if err := s.cache.Set(ctx, StatusCacheKey, rows, statusCacheTTL); err != nil {
			s.logger.Warn("failed to cache model statuses", zap.Error(err))
		}
	}
	s.cacheMu.Unlock()
	return rows, nil
}

func (s *ModelStatusStore) list(ctx context.Context) ([]models.ModelStatus, error) {
	var rows []models.ModelStatus
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list model status: %w", err)
	}
	return rows, nil
}

func (s *ModelStatusStore) seed(ctx context.Context) error {
	now := time.Now().UTC()
	defaults := make([]models.ModelStatus, 0, len(models.ModelTypes))
	for _, t := range models.ModelTypes {
		defaults = append(defaults, models.ModelStatus{
			ModelType: t,
			Status:    models.StatusNotTrained,
			Version:   models.DefaultModelVersion,
			UpdatedAt: now,
		})
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "model_type"}}, DoNothing: true}).
		Create(&defaults).Error
	if err != nil {
		return fmt.Errorf("seed model status: %w", err)
	}
	s.logger.Info("seeded default model statuses", zap.Int("count", len(defaults)))
	return nil
}

func (s *ModelStatusStore) Get(ctx context.Context, modelType models.ModelType) (*models.ModelStatus, error) {
	var row models.ModelStatus
	err := s.db.WithContext(ctx).Where("model_type = ?", modelType).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get model status %s: %w", modelType, err)
	}
	return &row, nil
}

// Upsert inserts the row or replaces status, accuracy, last trained time and
// version of the existing row for the same model type.
func (s *ModelStatusStore) Upsert(ctx context.Context, status models.ModelStatus) (*models.ModelStatus, error) {
	status.ID = 0
	status.UpdatedAt = time.Now().UTC()
	if status.Version == "" {
		status.Version = models.DefaultModelVersion
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "model_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "accuracy", "last_trained", "version", "updated_at"}),
		}).
		Create(&status).Error
	if err != nil {
		return nil, fmt.Errorf("upsert model status %s: %w", status.ModelType, err)
	}

	s.cacheMu.Lock()
	s.generation++
	if err := s.cache.Delete(ctx, StatusCacheKey); err != nil {
		s.logger.Warn("failed to invalidate model status cache", zap.Error(err))
	}
	s.cacheMu.Unlock()
	return s.Get(ctx, status.ModelType)
}

// ListByStatus returns rows currently in the given lifecycle state.
func (s *ModelStatusStore) ListByStatus(ctx context.Context, status string) ([]models.ModelStatus, error) {
	var rows []models.ModelStatus
	if err := s.db.WithContext(ctx).Where("status = ?", status).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list model status by %s: %w", status, err)
	}
	return rows, nil
}
