package queue

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"homeledger/server/internal/models"
)

func testBatch(n int) []*models.Activity {
	batch := make([]*models.Activity, n)
	for i := range batch {
		batch[i] = &models.Activity{
			UserID:     1,
			HouseID:    1,
			Action:     models.ActionCreated,
			EntityType: "appliance",
		}
	}
	return batch
}

func TestPushAndSubscribe(t *testing.T) {
	q := NewActivityQueue(4, logrus.New())
	defer q.Close()

	var processed atomic.Int32
	q.Subscribe(func(batch []*models.Activity) error {
		processed.Add(int32(len(batch)))
		return nil
	})
	q.Start()

	assert.NoError(t, q.Push(testBatch(3)))

	assert.Eventually(t, func() bool {
		return processed.Load() == 3
	}, time.Second, 10*time.Millisecond)
}

func TestPushFullQueueDoesNotBlock(t *testing.T) {
	q := NewActivityQueue(1, logrus.New())
	defer q.Close()

	// No consumer running: first push fills the buffer, second is refused.
	assert.NoError(t, q.Push(testBatch(1)))
	assert.ErrorIs(t, q.Push(testBatch(1)), ErrQueueFull)
}

func TestConcurrentPushAndClose(t *testing.T) {
	q := NewActivityQueue(2, logrus.New())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				err := q.Push(testBatch(1))
				if err != nil && !errors.Is(err, ErrQueueFull) && !errors.Is(err, ErrQueueClosed) {
					t.Errorf("unexpected push error: %v", err)
				}
			}
		}()
	}

	time.Sleep(time.Millisecond)
	assert.NoError(t, q.Close())
	wg.Wait()
}

func TestPushAfterClose(t *testing.T) {
	q := NewActivityQueue(1, logrus.New())
	assert.NoError(t, q.Close())
	assert.True(t, q.IsClosed())
	assert.ErrorIs(t, q.Push(testBatch(1)), ErrQueueClosed)

	// Closing twice is harmless.
	assert.NoError(t, q.Close())
}
