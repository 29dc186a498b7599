package scheduler

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"homeledger/server/internal/database"
	"homeledger/server/internal/models"
	"homeledger/server/internal/queue"
)

// Scheduler raises maintenance reminders for houses whose exterior has
// not been serviced recently. Reminders land in the activity feed via
// the batch queue, one sweep per day.
type Scheduler struct {
	db          *database.Database
	queue       *queue.ActivityQueue
	logger      *logrus.Logger
	staleMonths int
	stopChan    chan struct{}
	wg          sync.WaitGroup
	jobMutex    sync.Mutex // Ensures sequential sweep execution
}

// NewScheduler creates a new reminder scheduler
func NewScheduler(db *database.Database, activityQueue *queue.ActivityQueue, staleMonths int, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Scheduler{
		db:          db,
		queue:       activityQueue,
		logger:      logger,
		staleMonths: staleMonths,
		stopChan:    make(chan struct{}),
	}
}

// Start begins the scheduled sweeps
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	// Startup sweep so reminders don't wait for the next midnight.
	go func() {
		s.jobMutex.Lock()
		defer s.jobMutex.Unlock()
		s.logger.Info("Running startup reminder sweep")
		s.runSweep()
	}()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case t := <-ticker.C:
			if t.Hour() == 0 && t.Minute() == 0 {
				s.jobMutex.Lock()
				s.logger.Info("Starting scheduled reminder sweep")
				s.runSweep()
				s.jobMutex.Unlock()
			}
		}
	}
}

// runSweep finds maintenance-stale houses and queues one reminder each.
func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().AddDate(0, -s.staleMonths, 0)
	houses, err := s.db.ListMaintenanceStaleHouses(ctx, cutoff)
	if err != nil {
		s.logger.WithError(err).Error("Reminder sweep failed")
		return
	}

	if len(houses) == 0 {
		s.logger.Debug("No maintenance-stale houses found")
		return
	}

	batch := make([]*models.Activity, 0, len(houses))
	for _, house := range houses {
		batch = append(batch, &models.Activity{
			UserID:     house.UserID,
			HouseID:    house.ID,
			Action:     models.ActionReminder,
			EntityType: "house",
			EntityID:   house.ID,
			Detail: fmt.Sprintf("No exterior maintenance recorded in the last %d months",
				s.staleMonths),
		})
	}

	if err := s.queue.Push(batch); err != nil {
		s.logger.WithError(err).WithField("houses", len(batch)).Warn("Dropped reminder batch")
		return
	}

	s.logger.WithField("houses", len(batch)).Info("Queued maintenance reminders")
}
