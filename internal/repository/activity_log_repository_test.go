package repository_test

import (
	"context"
	"testing"
	"time"

	"go-gin-event-rsvp/internal/model"
	"go-gin-event-rsvp/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityLogRepository_CreateAndList(t *testing.T) {
	repo := repository.NewActivityLogRepository(getTestDB(t))
	ctx := context.Background()

	setupTestWithTruncate(t)

	eventID := uuid.New()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	older, err := model.NewActivityLog("user_1", model.EventCreatedMetadata{EventID: eventID, Title: "Dinner"}, base)
	require.NoError(t, err)
	newer, err := model.NewActivityLog("user_1", model.EventArchivedMetadata{EventID: eventID}, base.Add(time.Minute))
	require.NoError(t, err)
	foreign, err := model.NewActivityLog("user_2", model.EventArchivedMetadata{EventID: eventID}, base)
	require.NoError(t, err)

	for _, entry := range []*model.ActivityLog{older, newer, foreign} {
		saved, err := repo.Create(ctx, entry)
		require.NoError(t, err)
		assert.NotZero(t, saved.ID)
	}

	logs, err := repo.ListByUserID(ctx, "user_1", 0)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, model.ActionEventArchived, logs[0].Action)
	assert.Equal(t, model.ActionEventCreated, logs[1].Action)

	meta, err := logs[1].DecodeMetadata()
	require.NoError(t, err)
	assert.Equal(t, model.EventCreatedMetadata{EventID: eventID, Title: "Dinner"}, meta)

	limited, err := repo.ListByUserID(ctx, "user_1", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestActivityLogRepository_CreateDefaultsTimestamp(t *testing.T) {
	repo := repository.NewActivityLogRepository(getTestDB(t))

	setupTestWithTruncate(t)

	saved, err := repo.Create(context.Background(), &model.ActivityLog{
		UserID: "user_1",
		Action: model.ActionEventArchived,
	})

	require.NoError(t, err)
	assert.False(t, saved.Timestamp.IsZero())
	assert.JSONEq(t, `{}`, string(saved.Metadata))
}
