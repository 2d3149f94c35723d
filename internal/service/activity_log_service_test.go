package service_test

import (
	"context"
	"testing"

	"go-gin-event-rsvp/internal/model"
	queueMocks "go-gin-event-rsvp/internal/queue/mocks"
	repoMocks "go-gin-event-rsvp/internal/repository/mocks"
	"go-gin-event-rsvp/internal/service"
	apperrors "go-gin-event-rsvp/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityLogService_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - publishes a typed entry", func(t *testing.T) {
		repo := repoMocks.NewMockActivityLogRepository(t)
		q := queueMocks.NewMockActivityQueue(t)
		svc := service.NewActivityLogService(repo, q, clock)

		q.On("Publish", ctx, mock.MatchedBy(func(e *model.ActivityLog) bool {
			return e.UserID == "user_1" &&
				e.Action == model.ActionEventArchived &&
				e.Timestamp.Equal(fixedNow)
		})).Return(nil).Once()

		err := svc.Record(ctx, "user_1", model.EventArchivedMetadata{EventID: eventID})

		require.NoError(t, err)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("Failed - unauthenticated", func(t *testing.T) {
		q := queueMocks.NewMockActivityQueue(t)
		svc := service.NewActivityLogService(repoMocks.NewMockActivityLogRepository(t), q, clock)

		err := svc.Record(ctx, "", model.EventArchivedMetadata{EventID: eventID})

		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
		q.AssertNotCalled(t, "Publish")
	})

	t.Run("Failed - missing payload", func(t *testing.T) {
		q := queueMocks.NewMockActivityQueue(t)
		svc := service.NewActivityLogService(repoMocks.NewMockActivityLogRepository(t), q, clock)

		err := svc.Record(ctx, "user_1", nil)

		assert.ErrorIs(t, err, apperrors.ErrUnknownActivity)
	})

	t.Run("Failed - queue error surfaces", func(t *testing.T) {
		q := queueMocks.NewMockActivityQueue(t)
		svc := service.NewActivityLogService(repoMocks.NewMockActivityLogRepository(t), q, clock)

		q.On("Publish", ctx, mock.Anything).Return(errDB).Once()

		err := svc.Record(ctx, "user_1", model.EventArchivedMetadata{EventID: eventID})

		assert.ErrorIs(t, err, errDB)
	})
}

func TestActivityLogService_Store(t *testing.T) {
	ctx := context.Background()
	repo := repoMocks.NewMockActivityLogRepository(t)
	svc := service.NewActivityLogService(repo, queueMocks.NewMockActivityQueue(t), clock)

	entry := &model.ActivityLog{UserID: "user_1", Action: model.ActionEventArchived}
	repo.On("Create", ctx, entry).Return(&model.ActivityLog{ID: 1}, nil).Once()

	require.NoError(t, svc.Store(ctx, entry))
	assert.ErrorIs(t, svc.Store(ctx, &model.ActivityLog{}), apperrors.ErrInvalidInput)
}

func TestActivityLogService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Clamps the limit", func(t *testing.T) {
		repo := repoMocks.NewMockActivityLogRepository(t)
		svc := service.NewActivityLogService(repo, queueMocks.NewMockActivityQueue(t), clock)

		repo.On("ListByUserID", ctx, "user_1", 200).Return([]*model.ActivityLog{{ID: 2}, {ID: 1}}, nil).Twice()

		logs, err := svc.List(ctx, "user_1", 0)
		require.NoError(t, err)
		assert.Len(t, logs, 2)

		_, err = svc.List(ctx, "user_1", 10_000)
		require.NoError(t, err)
	})

	t.Run("Failed - unauthenticated", func(t *testing.T) {
		svc := service.NewActivityLogService(repoMocks.NewMockActivityLogRepository(t), queueMocks.NewMockActivityQueue(t), clock)

		_, err := svc.List(ctx, "", 10)

		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})
}
