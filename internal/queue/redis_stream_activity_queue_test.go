package queue_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go-gin-event-rsvp/internal/model"
	"go-gin-event-rsvp/internal/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStreamQueue gives every test its own stream so leftovers never leak between tests.
func newStreamQueue(t *testing.T, consumer string, cfg queue.RedisStreamConfig) queue.ActivityQueue {
	t.Helper()
	rdb := getTestRedis(t)
	ctx := context.Background()

	cfg.StreamKey = fmt.Sprintf("test:activity:%s", consumer)
	_ = rdb.Del(ctx, cfg.StreamKey).Err()
	t.Cleanup(func() { _ = rdb.Del(context.Background(), cfg.StreamKey).Err() })

	q, err := queue.NewRedisStreamActivityQueue(ctx, rdb, consumer, &cfg)
	require.NoError(t, err)
	return q
}

func receive(t *testing.T, ctx context.Context, deliveries <-chan queue.Delivery) queue.Delivery {
	t.Helper()
	select {
	case d, ok := <-deliveries:
		require.True(t, ok, "channel closed early")
		require.NotNil(t, d.Data)
		return d
	case <-ctx.Done():
		t.Fatal("timeout waiting for delivery")
	}
	return queue.Delivery{}
}

func TestNewRedisStreamActivityQueue(t *testing.T) {
	rdb := getTestRedis(t)
	ctx := context.Background()

	t.Run("group already exists", func(t *testing.T) {
		cfg := &queue.RedisStreamConfig{StreamKey: "test:activity:ctor"}
		defer rdb.Del(ctx, cfg.StreamKey)

		_, err := queue.NewRedisStreamActivityQueue(ctx, rdb, "a", cfg)
		require.NoError(t, err)
		_, err = queue.NewRedisStreamActivityQueue(ctx, rdb, "b", cfg)
		require.NoError(t, err)
	})

	t.Run("empty consumer id", func(t *testing.T) {
		cfg := &queue.RedisStreamConfig{StreamKey: "test:activity:anon"}
		defer rdb.Del(ctx, cfg.StreamKey)

		q, err := queue.NewRedisStreamActivityQueue(ctx, rdb, "", cfg)
		require.NoError(t, err)
		require.NotNil(t, q)
	})
}

func TestRedisStreamActivityQueue_RoundTrip(t *testing.T) {
	q := newStreamQueue(t, "roundtrip", queue.RedisStreamConfig{})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entry := newTestEntry(t, "user_1")
	require.NoError(t, q.Publish(ctx, entry))

	deliveries, err := q.Subscribe(ctx)
	require.NoError(t, err)

	d := receive(t, ctx, deliveries)
	assert.Equal(t, entry.UserID, d.Data.UserID)
	assert.Equal(t, model.ActionEventArchived, d.Data.Action)
	assert.JSONEq(t, string(entry.Metadata), string(d.Data.Metadata))
	assert.True(t, entry.Timestamp.Equal(d.Data.Timestamp))
	d.Ack()
}

func TestRedisStreamActivityQueue_AckPreventsRedelivery(t *testing.T) {
	q := newStreamQueue(t, "ack", queue.RedisStreamConfig{
		ClaimMinIdleTime:   200 * time.Millisecond,
		ReadGroupBlockTime: 200 * time.Millisecond,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, q.Publish(ctx, newTestEntry(t, "user_ack")))

	deliveries, err := q.Subscribe(ctx)
	require.NoError(t, err)

	receive(t, ctx, deliveries).Ack()

	select {
	case d, ok := <-deliveries:
		if ok {
			t.Fatalf("acked entry redelivered for %s", d.Data.UserID)
		}
	case <-time.After(time.Second):
	}
}

func TestRedisStreamActivityQueue_NackRequeueRedelivers(t *testing.T) {
	q := newStreamQueue(t, "requeue", queue.RedisStreamConfig{
		ClaimMinIdleTime:   200 * time.Millisecond,
		ReadGroupBlockTime: 200 * time.Millisecond,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, q.Publish(ctx, newTestEntry(t, "user_retry")))

	deliveries, err := q.Subscribe(ctx)
	require.NoError(t, err)

	receive(t, ctx, deliveries).Nack(true)

	again := receive(t, ctx, deliveries)
	assert.Equal(t, "user_retry", again.Data.UserID)
	again.Ack()
}

func TestRedisStreamActivityQueue_PoisonMessageDiscarded(t *testing.T) {
	q := newStreamQueue(t, "poison", queue.RedisStreamConfig{
		ClaimMinIdleTime:   200 * time.Millisecond,
		MaxRetryCount:      2,
		ReadGroupBlockTime: 200 * time.Millisecond,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, q.Publish(ctx, newTestEntry(t, "user_poison")))

	deliveries, err := q.Subscribe(ctx)
	require.NoError(t, err)

	received := 0
loop:
	for {
		select {
		case d, ok := <-deliveries:
			require.True(t, ok)
			received++
			d.Nack(true)
		case <-time.After(time.Second):
			break loop
		case <-ctx.Done():
			t.Fatalf("context timeout after %d deliveries", received)
		}
	}

	assert.GreaterOrEqual(t, received, 1)
	assert.LessOrEqual(t, received, 2)
}

func TestRedisStreamActivityQueue_CancelClosesChannel(t *testing.T) {
	q := newStreamQueue(t, "cancel", queue.RedisStreamConfig{ReadGroupBlockTime: 200 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	deliveries, err := q.Subscribe(ctx)
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-deliveries:
		assert.False(t, ok)
	case <-time.After(3 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
