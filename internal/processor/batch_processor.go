package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"homeledger/server/config"
	"homeledger/server/internal/database"
	"homeledger/server/internal/models"
	"homeledger/server/internal/queue"
)

// BatchProcessor drains the activity queue and persists batches. The
// feed entry's primary mutation has already committed by the time a
// batch reaches the processor, so failures here cost feed entries, not
// records.
type BatchProcessor struct {
	db     *gorm.DB
	logger *logrus.Logger
	config *config.Config
	queue  *queue.ActivityQueue
	ctx    context.Context
	cancel context.CancelFunc
}

// NewBatchProcessor creates a new batch processor instance
func NewBatchProcessor(db *gorm.DB, queue *queue.ActivityQueue, config *config.Config, logger *logrus.Logger) *BatchProcessor {
	ctx, cancel := context.WithCancel(context.Background())
	return &BatchProcessor{
		db:     db,
		queue:  queue,
		config: config,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start registers the batch handler with the queue, exactly once, and
// starts the configured number of dispatch workers. Each queued batch
// reaches the handler through one worker, so entries are never inserted
// twice.
func (p *BatchProcessor) Start() {
	p.queue.Subscribe(func(batch []*models.Activity) error {
		return p.processBatch(batch)
	})

	workers := p.config.ActivityBatch.ProcessorCount
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.queue.Start()
	}
}

// Stop aborts any in-flight retry waits. The dispatch workers themselves
// are owned by the queue and exit when it closes.
func (p *BatchProcessor) Stop() {
	p.cancel()
}

// processBatch persists a single batch with transaction and retry logic
func (p *BatchProcessor) processBatch(batch []*models.Activity) error {
	var err error
	for attempt := 0; attempt <= p.config.ActivityBatch.MaxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Infof("Retrying activity batch, attempt %d of %d", attempt, p.config.ActivityBatch.MaxRetries)
			select {
			case <-p.ctx.Done():
				return p.ctx.Err()
			case <-time.After(time.Duration(p.config.ActivityBatch.RetryDelay) * time.Second):
			}
		}

		err = p.db.Transaction(func(tx *gorm.DB) error {
			if err := database.InsertActivities(tx, batch); err != nil {
				return fmt.Errorf("failed to insert activity batch: %w", err)
			}
			return nil
		})

		if err == nil {
			p.logger.WithField("batch_size", len(batch)).Debug("Persisted activity batch")
			return nil
		}

		p.logger.Errorf("Activity batch failed: %v", err)
	}

	return fmt.Errorf("failed to persist batch after %d attempts: %w", p.config.ActivityBatch.MaxRetries, err)
}
