package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-gin-event-rsvp/internal/model"
	"go-gin-event-rsvp/internal/queue"
	queueMocks "go-gin-event-rsvp/internal/queue/mocks"
	serviceMocks "go-gin-event-rsvp/internal/service/mocks"
	"go-gin-event-rsvp/internal/worker"
	apperrors "go-gin-event-rsvp/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityWorker_StoresQueuedEntries(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q := queue.NewMemoryActivityQueue(10, 3)
	svc := serviceMocks.NewMockActivityLogService(t)

	stored := make(chan *model.ActivityLog, 1)
	svc.On("Store", mock.Anything, mock.AnythingOfType("*model.ActivityLog")).
		Run(func(args mock.Arguments) { stored <- args.Get(1).(*model.ActivityLog) }).
		Return(nil).Once()

	w := worker.NewActivityWorker(svc, q)
	require.NoError(t, w.Start(ctx))

	entry := &model.ActivityLog{UserID: "user_1", Action: model.ActionEventArchived}
	require.NoError(t, q.Publish(ctx, entry))

	select {
	case got := <-stored:
		assert.Same(t, entry, got)
	case <-ctx.Done():
		t.Fatal("worker did not store the entry in time")
	}

	cancel()
	w.Wait()
}

type recordingDelivery struct {
	mu      sync.Mutex
	acked   int
	nacked  []bool
	settled chan struct{}
}

func (r *recordingDelivery) delivery(entry *model.ActivityLog) queue.Delivery {
	return queue.Delivery{
		Data: entry,
		Ack: func() {
			r.mu.Lock()
			r.acked++
			r.mu.Unlock()
			r.settled <- struct{}{}
		},
		Nack: func(requeue bool) {
			r.mu.Lock()
			r.nacked = append(r.nacked, requeue)
			r.mu.Unlock()
			r.settled <- struct{}{}
		},
	}
}

func TestActivityWorker_AckAndNack(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ch := make(chan queue.Delivery, 3)
	q := queueMocks.NewMockActivityQueue(t)
	q.On("Subscribe", ctx).Return((<-chan queue.Delivery)(ch), nil).Once()

	ok := &model.ActivityLog{UserID: "ok"}
	broken := &model.ActivityLog{UserID: "broken"}
	transient := &model.ActivityLog{UserID: "transient"}

	svc := serviceMocks.NewMockActivityLogService(t)
	svc.On("Store", ctx, ok).Return(nil).Once()
	svc.On("Store", ctx, broken).Return(apperrors.ErrInvalidInput).Once()
	svc.On("Store", ctx, transient).Return(assert.AnError).Once()

	rec := &recordingDelivery{settled: make(chan struct{}, 3)}
	ch <- rec.delivery(ok)
	ch <- rec.delivery(broken)
	ch <- rec.delivery(transient)
	close(ch)

	w := worker.NewActivityWorker(svc, q)
	require.NoError(t, w.Start(ctx))
	w.Wait()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, 1, rec.acked)
	assert.Equal(t, []bool{false, true}, rec.nacked)
}

func TestActivityWorker_SubscribeError(t *testing.T) {
	ctx := context.Background()
	q := queueMocks.NewMockActivityQueue(t)
	q.On("Subscribe", ctx).Return(nil, assert.AnError).Once()

	w := worker.NewActivityWorker(serviceMocks.NewMockActivityLogService(t), q)

	assert.ErrorIs(t, w.Start(ctx), assert.AnError)
	w.Wait()
}
