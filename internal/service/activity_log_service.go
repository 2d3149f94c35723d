package service

import (
	"context"
	"time"

	"go-gin-event-rsvp/internal/model"
	"go-gin-event-rsvp/internal/queue"
	"go-gin-event-rsvp/internal/repository"
	apperrors "go-gin-event-rsvp/pkg/app_errors"
	"go-gin-event-rsvp/pkg/logger"

	"go.uber.org/zap"
)

const (
	defaultActivityListLimit = 200
	activityPublishTimeout   = 2 * time.Second
)

type ActivityLogService interface {
	// Record queues an entry for userID. It returns once the queue accepted it.
	Record(ctx context.Context, userID string, meta model.ActivityMetadata) error
	// Store persists a queued entry; the activity worker calls it.
	Store(ctx context.Context, entry *model.ActivityLog) error
	List(ctx context.Context, userID string, limit int) ([]*model.ActivityLog, error)
}

type ActivityLogServiceImpl struct {
	repo  repository.ActivityLogRepository
	queue queue.ActivityQueue
	now   func() time.Time
}

func NewActivityLogService(repo repository.ActivityLogRepository, q queue.ActivityQueue, now func() time.Time) ActivityLogService {
	if now == nil {
		now = time.Now
	}
	return &ActivityLogServiceImpl{repo: repo, queue: q, now: now}
}

func (s *ActivityLogServiceImpl) Record(ctx context.Context, userID string, meta model.ActivityMetadata) error {
	if userID == "" {
		return apperrors.ErrUnauthenticated
	}

	entry, err := model.NewActivityLog(userID, meta, s.now().UTC())
	if err != nil {
		return err
	}

	return s.queue.Publish(ctx, entry)
}

func (s *ActivityLogServiceImpl) Store(ctx context.Context, entry *model.ActivityLog) error {
	if entry == nil || entry.UserID == "" {
		return apperrors.ErrInvalidInput
	}
	_, err := s.repo.Create(ctx, entry)
	return err
}

func (s *ActivityLogServiceImpl) List(ctx context.Context, userID string, limit int) ([]*model.ActivityLog, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if limit <= 0 || limit > defaultActivityListLimit {
		limit = defaultActivityListLimit
	}
	return s.repo.ListByUserID(ctx, userID, limit)
}

// recordActivity is fire-and-forget: a failure is logged and never reaches the caller.
func recordActivity(ctx context.Context, sink ActivityLogService, userID string, meta model.ActivityMetadata) {
	if sink == nil {
		return
	}
	// detached from the request so a client disconnect does not drop the entry
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), activityPublishTimeout)
	defer cancel()

	if err := sink.Record(ctx, userID, meta); err != nil {
		fields := []zap.Field{zap.String("user_id", userID), zap.Error(err)}
		if meta != nil {
			fields = append(fields, zap.String("action", string(meta.Action())))
		}
		logger.WithComponent("service").Warn("failed to record activity", fields...)
	}
}
