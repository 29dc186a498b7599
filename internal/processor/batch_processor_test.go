package processor

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeledger/server/config"
	"homeledger/server/internal/database"
	"homeledger/server/internal/models"
	"homeledger/server/internal/queue"
)

func setupTestDB(t *testing.T) *database.Database {
	db, err := database.NewTestDB()
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })
	return db
}

func countActivities(db *database.Database) int64 {
	var count int64
	db.GetDB().Model(&models.Activity{}).Count(&count)
	return count
}

func TestBatchProcessorPersistsActivities(t *testing.T) {
	db := setupTestDB(t)
	cfg := &config.Config{}
	cfg.ActivityBatch.ProcessorCount = 1
	cfg.ActivityBatch.MaxRetries = 1
	logger := logrus.New()

	activityQueue := queue.NewActivityQueue(8, logger)
	defer activityQueue.Close()

	p := NewBatchProcessor(db.GetDB(), activityQueue, cfg, logger)
	p.Start()
	defer p.Stop()

	batch := []*models.Activity{
		{UserID: 1, HouseID: 2, Action: models.ActionCreated, EntityType: "appliance", EntityID: 3, Detail: "Fridge"},
		{UserID: 1, HouseID: 2, Action: models.ActionDeleted, EntityType: "room", EntityID: 4},
	}
	require.NoError(t, activityQueue.Push(batch))

	assert.Eventually(t, func() bool {
		return countActivities(db) == 2
	}, 2*time.Second, 20*time.Millisecond)
}

func TestMultipleProcessorsInsertEachEntryOnce(t *testing.T) {
	db := setupTestDB(t)
	cfg := &config.Config{}
	cfg.ActivityBatch.ProcessorCount = 4
	cfg.ActivityBatch.MaxRetries = 1
	logger := logrus.New()

	activityQueue := queue.NewActivityQueue(16, logger)
	defer activityQueue.Close()

	p := NewBatchProcessor(db.GetDB(), activityQueue, cfg, logger)
	p.Start()
	defer p.Stop()

	for i := 0; i < 5; i++ {
		batch := []*models.Activity{
			{UserID: 1, HouseID: 2, Action: models.ActionCreated, EntityType: "repair", EntityID: uint(i + 1)},
		}
		require.NoError(t, activityQueue.Push(batch))
	}

	assert.Eventually(t, func() bool {
		return countActivities(db) == 5
	}, 2*time.Second, 20*time.Millisecond)

	// Give any stray duplicate insert a moment to land before the final check.
	time.Sleep(100 * time.Millisecond)
	assert.EqualValues(t, 5, countActivities(db))
}

func TestProcessBatchEmptyIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	cfg := &config.Config{}
	cfg.ActivityBatch.MaxRetries = 1
	logger := logrus.New()

	p := NewBatchProcessor(db.GetDB(), queue.NewActivityQueue(1, logger), cfg, logger)
	assert.NoError(t, p.processBatch(nil))
}

func TestStopAbortsRetryWait(t *testing.T) {
	db := setupTestDB(t)
	cfg := &config.Config{}
	cfg.ActivityBatch.MaxRetries = 3
	cfg.ActivityBatch.RetryDelay = 60
	logger := logrus.New()

	p := NewBatchProcessor(db.GetDB(), queue.NewActivityQueue(1, logger), cfg, logger)

	// Dropping the table makes every insert fail, forcing the retry path.
	require.NoError(t, db.GetDB().Migrator().DropTable(&models.Activity{}))

	done := make(chan error, 1)
	go func() {
		done <- p.processBatch([]*models.Activity{{UserID: 1, HouseID: 1, Action: models.ActionCreated, EntityType: "house"}})
	}()

	time.Sleep(50 * time.Millisecond)
	p.Stop()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("retry wait did not abort on stop")
	}
}
