package mocks

import (
	"context"

	"go-gin-event-rsvp/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockActivityLogRepository struct {
	mock.Mock
}

func NewMockActivityLogRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockActivityLogRepository {
	m := &MockActivityLogRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockActivityLogRepository) Create(ctx context.Context, entry *model.ActivityLog) (*model.ActivityLog, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ActivityLog), args.Error(1)
}

func (m *MockActivityLogRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]*model.ActivityLog, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ActivityLog), args.Error(1)
}
