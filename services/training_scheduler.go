package services

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"sustainability-analytics-api/models"

	"go.uber.org/zap"
)

// StatusWriter is the part of ModelStatusStore the scheduler needs.
type StatusWriter interface {
	Upsert(ctx context.Context, status models.ModelStatus) (*models.ModelStatus, error)
	ListByStatus(ctx context.Context, status string) ([]models.ModelStatus, error)
}

type pendingTask struct {
	id     uint64
	cancel context.CancelFunc
}

// TrainingScheduler simulates training: a model moves to training at once
// and to trained after a fixed delay. Each model type has at most one
// pending completion; starting again replaces it. Pending completions are
// cancelled by Shutdown and re-driven by Reconcile.
type TrainingScheduler struct {
	store    StatusWriter
	delay    time.Duration
	version  string
	accuracy func() float64
	logger   *zap.Logger

	ctx    context.Context
	stop   context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	nextID uint64
	tasks  map[models.ModelType]pendingTask

	// writeMu orders Start writes against completion writes so a
	// superseded completion never lands after a newer Start.
	writeMu sync.Mutex
}

func NewTrainingScheduler(store StatusWriter, delay time.Duration, version string, logger *zap.Logger) *TrainingScheduler {
	ctx, stop := context.WithCancel(context.Background())
	return &TrainingScheduler{
		store:    store,
		delay:    delay,
		version:  version,
		accuracy: func() float64 { return 75 + rand.Float64()*20 },
		logger:   logger,
		ctx:      ctx,
		stop:     stop,
		tasks:    make(map[models.ModelType]pendingTask),
	}
}

// Start marks modelType as training and schedules its completion.
func (s *TrainingScheduler) Start(ctx context.Context, modelType models.ModelType) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_, err := s.store.Upsert(ctx, models.ModelStatus{
		ModelType: modelType,
		Status:    models.StatusTraining,
		Version:   s.version,
	})
	if err != nil {
		return err
	}
	trainingStarted.WithLabelValues(string(modelType)).Inc()
	s.schedule(modelType)
	return nil
}

// Pending reports whether a completion is scheduled for modelType.
func (s *TrainingScheduler) Pending(modelType models.ModelType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[modelType]
	return ok
}

// Reconcile schedules completion for rows left in training without a
// pending task, e.g. after a restart. It returns how many were scheduled.
func (s *TrainingScheduler) Reconcile(ctx context.Context) (int, error) {
	rows, err := s.store.ListByStatus(ctx, models.StatusTraining)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, row := range rows {
		if s.Pending(row.ModelType) {
			continue
		}
		s.logger.Info("rescheduling stuck training", zap.String("model_type", string(row.ModelType)))
		s.schedule(row.ModelType)
		n++
	}
	return n, nil
}

// Shutdown cancels pending completions and waits for in-flight writes.
func (s *TrainingScheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.stop()
	s.mu.Unlock()
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *TrainingScheduler) schedule(modelType models.ModelType) {
	s.mu.Lock()
	if s.ctx.Err() != nil {
		s.mu.Unlock()
		return
	}
	if prev, ok := s.tasks[modelType]; ok {
		prev.cancel()
	}
	s.nextID++
	id := s.nextID
	taskCtx, cancel := context.WithCancel(s.ctx)
	s.tasks[modelType] = pendingTask{id: id, cancel: cancel}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer s.release(modelType, id)
		defer cancel()

		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-taskCtx.Done():
			return
		case <-timer.C:
		}
		s.complete(taskCtx, modelType, id)
	}()
}

func (s *TrainingScheduler) complete(ctx context.Context, modelType models.ModelType, id uint64) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if !s.current(modelType, id) {
		return
	}

	// The delay has elapsed; finish the write even if shutdown begins now.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	accuracy := s.accuracy()
	now := time.Now().UTC()
	_, err := s.store.Upsert(writeCtx, models.ModelStatus{
		ModelType:   modelType,
		Status:      models.StatusTrained,
		Accuracy:    &accuracy,
		LastTrained: &now,
		Version:     s.version,
	})
	if err != nil {
		trainingFailed.WithLabelValues(string(modelType)).Inc()
		s.logger.Error("failed to complete training",
			zap.String("model_type", string(modelType)),
			zap.Error(err))
		return
	}
	trainingCompleted.WithLabelValues(string(modelType)).Inc()
	s.logger.Info("training completed",
		zap.String("model_type", string(modelType)),
		zap.Float64("accuracy", accuracy))
}

func (s *TrainingScheduler) current(modelType models.ModelType, id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[modelType]
	return ok && t.id == id
}

func (s *TrainingScheduler) release(modelType models.ModelType, id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tasks[modelType]; ok && t.id == id {
		delete(s.tasks, modelType)
	}
}
