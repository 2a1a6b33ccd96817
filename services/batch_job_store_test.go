package services

import (
	"context"
	"testing"
	"time"

	"sustainability-analytics-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestCreateBatchJobDefaults(t *testing.T) {
	store := NewBatchJobStore(newTestDB(t))

	job, err := store.Create(context.Background(), models.BatchJob{Filename: "rows.csv", ModelType: "carbon", TotalRows: -3})
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, models.JobStatusQueued, job.Status)
	assert.Equal(t, 0, job.TotalRows)
	assert.Equal(t, 0, job.ProcessedRows)
	assert.Nil(t, job.Results)
	assert.Nil(t, job.ErrorMessage)
	assert.Nil(t, job.CompletedAt)
	assert.False(t, job.CreatedAt.IsZero())
}

func TestUpdateBatchJob(t *testing.T) {
	store := NewBatchJobStore(newTestDB(t))
	ctx := context.Background()

	job, err := store.Create(ctx, models.BatchJob{Filename: "rows.csv", ModelType: "esg", TotalRows: 10})
	require.NoError(t, err)

	status := models.JobStatusFailed
	processed := 4
	msg := "row 5: bad sentiment"
	done := time.Date(2026, 5, 1, 8, 30, 0, 0, time.UTC)
	updated, err := store.Update(ctx, job.ID, BatchJobUpdate{
		Status:        &status,
		ProcessedRows: &processed,
		ErrorMessage:  &msg,
		Results:       datatypes.JSON(`{"message":"partial"}`),
		CompletedAt:   &done,
	})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusFailed, updated.Status)
	assert.Equal(t, 10, updated.TotalRows)
	assert.Equal(t, 4, updated.ProcessedRows)
	require.NotNil(t, updated.ErrorMessage)
	assert.Equal(t, msg, *updated.ErrorMessage)
	assert.JSONEq(t, `{"message":"partial"}`, string(updated.Results))
	require.NotNil(t, updated.CompletedAt)
	assert.True(t, done.Equal(*updated.CompletedAt))
	assert.Equal(t, "rows.csv", updated.Filename)
}

func TestUpdateMissingBatchJob(t *testing.T) {
	store := NewBatchJobStore(newTestDB(t))
	status := models.JobStatusCompleted

	_, err := store.Update(context.Background(), "does-not-exist", BatchJobUpdate{Status: &status})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Update(context.Background(), "does-not-exist", BatchJobUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListBatchJobsNewestFirst(t *testing.T) {
	store := NewBatchJobStore(newTestDB(t))
	ctx := context.Background()

	jobs, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"old", "newest", "middle"} {
		offset := map[string]time.Duration{"old": 0, "middle": time.Hour, "newest": 2 * time.Hour}[name]
		_, err := store.Create(ctx, models.BatchJob{ID: name, Filename: name, ModelType: "carbon", CreatedAt: base.Add(offset), TotalRows: i})
		require.NoError(t, err)
	}

	jobs, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "newest", jobs[0].ID)
	assert.Equal(t, "middle", jobs[1].ID)
	assert.Equal(t, "old", jobs[2].ID)
}
