package worker

import (
	"context"
	"errors"

	"go-gin-event-rsvp/internal/queue"
	"go-gin-event-rsvp/internal/service"
	apperrors "go-gin-event-rsvp/pkg/app_errors"
	"go-gin-event-rsvp/pkg/logger"

	"go.uber.org/zap"
)

type ActivityWorker interface {
	// Start subscribes to the queue and persists entries until ctx is cancelled.
	Start(ctx context.Context) error
	// Wait blocks until the consume loop has exited.
	Wait()
}

type ActivityWorkerImpl struct {
	service service.ActivityLogService
	queue   queue.ActivityQueue
	done    chan struct{}
}

func NewActivityWorker(service service.ActivityLogService, queue queue.ActivityQueue) ActivityWorker {
	return &ActivityWorkerImpl{
		service: service,
		queue:   queue,
		done:    make(chan struct{}),
	}
}

func (w *ActivityWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.Subscribe(ctx)
	if err != nil {
		close(w.done)
		return err
	}

	log := logger.WithComponent("worker")

	go func() {
		defer close(w.done)
		for msg := range msgs {
			err := w.service.Store(ctx, msg.Data)
			switch {
			case err == nil:
				msg.Ack()
			case errors.Is(err, apperrors.ErrInvalidInput):
				// retrying cannot fix a malformed entry
				log.Warn("drop invalid activity entry", zap.Error(err))
				msg.Nack(false)
			default:
				log.Error("failed to store activity entry", zap.Error(err))
				msg.Nack(true)
			}
		}
	}()
	return nil
}

func (w *ActivityWorkerImpl) Wait() {
	<-w.done
}
