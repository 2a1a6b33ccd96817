package services

import (
	"testing"
	"time"

	"sustainability-analytics-api/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the service tables.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open SQLite database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every pooled connection to ":memory:" is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.ModelStatus{}, &models.ModelPrediction{}, &models.BatchJob{}))
	return db
}

func newTestStatusStore(t *testing.T, db *gorm.DB) *ModelStatusStore {
	t.Helper()
	return NewModelStatusStore(db, NewLocalCacheService(time.Minute, zap.NewNop()), zap.NewNop())
}
