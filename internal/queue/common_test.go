package queue_test

import (
	"log"
	"os"
	"testing"
	"time"

	"go-gin-event-rsvp/internal/model"
	"go-gin-event-rsvp/internal/testutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// testRdb stays nil when the test redis is unreachable; stream tests skip then.
var testRdb *redis.Client

func TestMain(m *testing.M) {
	rdb, cleanup, err := testutil.SetupRedisOnly()
	if err != nil {
		log.Printf("redis stream tests disabled: %v", err)
	} else {
		testRdb = rdb
	}

	code := m.Run()
	if cleanup != nil {
		cleanup()
	}
	os.Exit(code)
}

func getTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testRdb == nil {
		t.Skip("test redis is not available")
	}
	return testRdb
}

func newTestEntry(t *testing.T, userID string) *model.ActivityLog {
	t.Helper()
	entry, err := model.NewActivityLog(userID, model.EventArchivedMetadata{EventID: uuid.New()}, time.Now().UTC().Truncate(time.Millisecond))
	require.NoError(t, err)
	return entry
}
