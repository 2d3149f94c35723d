package queue

import (
	"context"

	"go-gin-event-rsvp/internal/model"
	"go-gin-event-rsvp/pkg/logger"

	"go.uber.org/zap"
)

type Delivery struct {
	Data *model.ActivityLog
	Ack  func()
	Nack func(requeue bool)
}

type ActivityQueue interface {
	// Publish hands an entry to the queue; it does not wait for the entry to be stored.
	Publish(ctx context.Context, entry *model.ActivityLog) error
	Subscribe(ctx context.Context) (<-chan Delivery, error)
}

type memoryMessage struct {
	entry    *model.ActivityLog
	attempts int
}

// MemoryActivityQueueImpl keeps entries in a buffered channel; they are lost on restart.
type MemoryActivityQueueImpl struct {
	ch         chan memoryMessage
	maxRetries int
}

func NewMemoryActivityQueue(bufferSize, maxRetries int) ActivityQueue {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &MemoryActivityQueueImpl{
		ch:         make(chan memoryMessage, bufferSize),
		maxRetries: maxRetries,
	}
}

func (q *MemoryActivityQueueImpl) Publish(ctx context.Context, entry *model.ActivityLog) error {
	select {
	case q.ch <- memoryMessage{entry: entry}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryActivityQueueImpl) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-q.ch:
				d := Delivery{
					Data: msg.entry,
					Ack:  func() {},
					Nack: func(requeue bool) { q.requeue(msg, requeue) },
				}
				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (q *MemoryActivityQueueImpl) requeue(msg memoryMessage, requeue bool) {
	if !requeue {
		return
	}
	msg.attempts++
	if q.maxRetries > 0 && msg.attempts >= q.maxRetries {
		logger.WithComponent("mq").Warn("discard activity entry after retries",
			zap.String("action", string(msg.entry.Action)),
			zap.Int("retries", msg.attempts))
		return
	}
	select {
	case q.ch <- msg:
	default:
		logger.WithComponent("mq").Warn("queue full, drop requeued activity entry",
			zap.String("action", string(msg.entry.Action)))
	}
}
