package queue_test

import (
	"context"
	"testing"
	"time"

	"go-gin-event-rsvp/internal/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryActivityQueue_DeliversInOrder(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q := queue.NewMemoryActivityQueue(4, 3)
	first := newTestEntry(t, "user_1")
	second := newTestEntry(t, "user_2")
	require.NoError(t, q.Publish(ctx, first))
	require.NoError(t, q.Publish(ctx, second))

	deliveries, err := q.Subscribe(ctx)
	require.NoError(t, err)

	for _, want := range []string{"user_1", "user_2"} {
		select {
		case d := <-deliveries:
			assert.Equal(t, want, d.Data.UserID)
			d.Ack()
		case <-ctx.Done():
			t.Fatal("timeout waiting for delivery")
		}
	}
}

func TestMemoryActivityQueue_PublishHonorsContext(t *testing.T) {
	q := queue.NewMemoryActivityQueue(1, 3)
	require.NoError(t, q.Publish(context.Background(), newTestEntry(t, "user_1")))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := q.Publish(ctx, newTestEntry(t, "user_2"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMemoryActivityQueue_NackRequeue(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q := queue.NewMemoryActivityQueue(4, 2)
	require.NoError(t, q.Publish(ctx, newTestEntry(t, "user_1")))

	deliveries, err := q.Subscribe(ctx)
	require.NoError(t, err)

	received := 0
	for received < 2 {
		select {
		case d := <-deliveries:
			received++
			d.Nack(true)
		case <-ctx.Done():
			t.Fatalf("only %d deliveries", received)
		}
	}

	// maxRetries reached; the entry is dropped
	select {
	case d := <-deliveries:
		t.Fatalf("unexpected redelivery for %s", d.Data.UserID)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestMemoryActivityQueue_NackDiscard(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q := queue.NewMemoryActivityQueue(4, 5)
	require.NoError(t, q.Publish(ctx, newTestEntry(t, "user_1")))

	deliveries, err := q.Subscribe(ctx)
	require.NoError(t, err)

	d := <-deliveries
	d.Nack(false)

	select {
	case <-deliveries:
		t.Fatal("discarded entry was redelivered")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestMemoryActivityQueue_CancelClosesChannel(t *testing.T) {
	q := queue.NewMemoryActivityQueue(1, 1)

	ctx, cancel := context.WithCancel(context.Background())
	deliveries, err := q.Subscribe(ctx)
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-deliveries:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
