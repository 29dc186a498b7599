package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"homeledger/server/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// ActivityQueue is an in-memory queue of activity-feed batches. Pushes
// never block: the feed is best-effort and a full queue drops the batch
// at the caller, which has already committed its primary write.
type ActivityQueue struct {
	items    chan []*models.Activity
	done     chan struct{}
	maxSize  int
	closed   bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func([]*models.Activity) error
}

// NewActivityQueue creates a new activity queue with the specified buffer size
func NewActivityQueue(bufferSize int, logger *logrus.Logger) *ActivityQueue {
	if logger == nil {
		logger = logrus.New()
	}

	return &ActivityQueue{
		items:    make(chan []*models.Activity, bufferSize),
		done:     make(chan struct{}),
		maxSize:  bufferSize,
		logger:   logger,
		handlers: make([]func([]*models.Activity) error, 0),
	}
}

// Push adds a batch of activity entries to the queue. The read lock is
// held across the send so a concurrent Close cannot slip in between the
// closed check and the send.
func (q *ActivityQueue) Push(activities []*models.Activity) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	// Non-blocking send to prevent deadlocks
	select {
	case q.items <- activities:
		q.logger.WithField("batch_size", len(activities)).Debug("Pushed batch to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler function that will be called for each batch
func (q *ActivityQueue) Subscribe(handler func([]*models.Activity) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start launches a dispatch worker. Calling it more than once adds
// workers; each queued batch is delivered to exactly one of them.
func (q *ActivityQueue) Start() {
	go q.process()
}

// process handles the queue processing loop
func (q *ActivityQueue) process() {
	for {
		select {
		case <-q.done:
			return
		case batch := <-q.items:
			q.processBatch(batch)
		}
	}
}

// processBatch sends the batch to all subscribed handlers
func (q *ActivityQueue) processBatch(batch []*models.Activity) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			q.logger.WithError(err).Error("Handler failed to process batch")
		}
	}
}

// Close stops the queue and prevents new items from being added. The
// items channel is left open so dispatch workers never read from a
// closed channel; they exit through the done signal instead.
func (q *ActivityQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	q.closed = true
	close(q.done)
	return nil
}

// Len returns the current number of batches in the queue
func (q *ActivityQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed
func (q *ActivityQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
