package service

import (
	"context"

	"go-gin-event-rsvp/internal/model"
	"go-gin-event-rsvp/internal/repository"
	apperrors "go-gin-event-rsvp/pkg/app_errors"
	"go-gin-event-rsvp/pkg/logger"

	"go.uber.org/zap"
)

const (
	WebhookUserCreated = "user.created"
	WebhookUserUpdated = "user.updated"
	WebhookUserDeleted = "user.deleted"
)

type UserService interface {
	// SyncFromWebhook applies an identity-provider user event. Unknown types are ignored.
	SyncFromWebhook(ctx context.Context, evt model.IdentityWebhookEvent) error
}

type UserServiceImpl struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &UserServiceImpl{repo: repo}
}

func (s *UserServiceImpl) SyncFromWebhook(ctx context.Context, evt model.IdentityWebhookEvent) error {
	switch evt.Type {
	case WebhookUserCreated, WebhookUserUpdated, WebhookUserDeleted:
	default:
		logger.WithComponent("service").Info("ignore identity webhook", zap.String("type", evt.Type))
		return nil
	}

	if evt.Data.ID == "" {
		return apperrors.ErrInvalidInput
	}

	switch evt.Type {
	case WebhookUserDeleted:
		return s.repo.Delete(ctx, evt.Data.ID)
	case WebhookUserUpdated:
		_, err := s.repo.Upsert(ctx, evt.Data.ToUser(true))
		return err
	default:
		_, err := s.repo.Upsert(ctx, evt.Data.ToUser(false))
		return err
	}
}
