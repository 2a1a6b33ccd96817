package services

import (
	"context"
	"testing"
	"time"

	"sustainability-analytics-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTrainingCompletesAfterDelay(t *testing.T) {
	store := newTestStatusStore(t, newTestDB(t))
	sched := NewTrainingScheduler(store, 20*time.Millisecond, "1.0", zap.NewNop())
	defer sched.Shutdown(context.Background())
	ctx := context.Background()

	require.NoError(t, sched.Start(ctx, models.ModelTypeCarbon))

	row, err := store.Get(ctx, models.ModelTypeCarbon)
	require.NoError(t, err)
	assert.Equal(t, models.StatusTraining, row.Status)
	assert.Nil(t, row.Accuracy)
	assert.True(t, sched.Pending(models.ModelTypeCarbon))

	require.Eventually(t, func() bool {
		row, err := store.Get(ctx, models.ModelTypeCarbon)
		return err == nil && row.Status == models.StatusTrained
	}, 2*time.Second, 10*time.Millisecond)

	row, err = store.Get(ctx, models.ModelTypeCarbon)
	require.NoError(t, err)
	require.NotNil(t, row.Accuracy)
	assert.GreaterOrEqual(t, *row.Accuracy, 75.0)
	assert.Less(t, *row.Accuracy, 95.0)
	assert.NotNil(t, row.LastTrained)
	assert.Eventually(t, func() bool { return !sched.Pending(models.ModelTypeCarbon) }, time.Second, 5*time.Millisecond)
}

func TestTrainingRestartReplacesPendingCompletion(t *testing.T) {
	store := newTestStatusStore(t, newTestDB(t))
	sched := NewTrainingScheduler(store, time.Hour, "1.0", zap.NewNop())
	ctx := context.Background()

	require.NoError(t, sched.Start(ctx, models.ModelTypeESG))
	sched.mu.Lock()
	first := sched.tasks[models.ModelTypeESG].id
	sched.mu.Unlock()

	require.NoError(t, sched.Start(ctx, models.ModelTypeESG))
	sched.mu.Lock()
	second := sched.tasks[models.ModelTypeESG].id
	pending := len(sched.tasks)
	sched.mu.Unlock()

	assert.NotEqual(t, first, second)
	assert.Equal(t, 1, pending)

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, sched.Shutdown(shutdownCtx))
}

func TestShutdownCancelsPendingCompletion(t *testing.T) {
	store := newTestStatusStore(t, newTestDB(t))
	sched := NewTrainingScheduler(store, time.Hour, "1.0", zap.NewNop())
	ctx := context.Background()

	require.NoError(t, sched.Start(ctx, models.ModelTypeProduct))

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, sched.Shutdown(shutdownCtx))
	assert.False(t, sched.Pending(models.ModelTypeProduct))

	row, err := store.Get(ctx, models.ModelTypeProduct)
	require.NoError(t, err)
	assert.Equal(t, models.StatusTraining, row.Status)

	// Scheduling after shutdown is ignored.
	require.NoError(t, sched.Start(ctx, models.ModelTypeCarbon))
	assert.False(t, sched.Pending(models.ModelTypeCarbon))
}

func TestReconcileReschedulesStuckTraining(t *testing.T) {
	db := newTestDB(t)
	store := newTestStatusStore(t, db)
	ctx := context.Background()

	_, err := store.Upsert(ctx, models.ModelStatus{ModelType: models.ModelTypePackaging, Status: models.StatusTraining})
	require.NoError(t, err)
	_, err = store.Upsert(ctx, models.ModelStatus{ModelType: models.ModelTypeCarbon, Status: models.StatusNotTrained})
	require.NoError(t, err)

	sched := NewTrainingScheduler(store, 10*time.Millisecond, "1.0", zap.NewNop())
	defer sched.Shutdown(context.Background())

	n, err := sched.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.Eventually(t, func() bool {
		row, err := store.Get(ctx, models.ModelTypePackaging)
		return err == nil && row.Status == models.StatusTrained
	}, 2*time.Second, 10*time.Millisecond)

	row, err := store.Get(ctx, models.ModelTypeCarbon)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNotTrained, row.Status)
}

type failingWriter struct{}

func (failingWriter) Upsert(ctx context.Context, status models.ModelStatus) (*models.ModelStatus, error) {
	return nil, assert.AnError
}

func (failingWriter) ListByStatus(ctx context.Context, status string) ([]models.ModelStatus, error) {
	return nil, assert.AnError
}

func TestTrainingStartFailure(t *testing.T) {
	sched := NewTrainingScheduler(failingWriter{}, time.Millisecond, "1.0", zap.NewNop())
	defer sched.Shutdown(context.Background())

	err := sched.Start(context.Background(), models.ModelTypeESG)
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, sched.Pending(models.ModelTypeESG))

	_, err = sched.Reconcile(context.Background())
	assert.Error(t, err)
}

func TestSupersededCompletionDoesNotOverwriteNewerStart(t *testing.T) {
	store := newTestStatusStore(t, newTestDB(t))
	sched := NewTrainingScheduler(store, time.Hour, "1.0", zap.NewNop())
	ctx := context.Background()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		require.NoError(t, sched.Shutdown(shutdownCtx))
	}()

	require.NoError(t, sched.Start(ctx, models.ModelTypeCarbon))
	sched.mu.Lock()
	stale := sched.tasks[models.ModelTypeCarbon].id
	sched.mu.Unlock()

	require.NoError(t, sched.Start(ctx, models.ModelTypeCarbon))
	sched.mu.Lock()
	fresh := sched.tasks[models.ModelTypeCarbon].id
	sched.mu.Unlock()

	// A completion whose timer fired before the second Start.
	sched.complete(ctx, models.ModelTypeCarbon, stale)

	row, err := store.Get(ctx, models.ModelTypeCarbon)
	require.NoError(t, err)
	assert.Equal(t, models.StatusTraining, row.Status)
	assert.Nil(t, row.Accuracy)

	sched.complete(ctx, models.ModelTypeCarbon, fresh)

	row, err = store.Get(ctx, models.ModelTypeCarbon)
	require.NoError(t, err)
	assert.Equal(t, models.StatusTrained, row.Status)
	assert.NotNil(t, row.Accuracy)
}
