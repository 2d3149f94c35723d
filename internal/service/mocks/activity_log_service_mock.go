package mocks

import (
	"context"

	"go-gin-event-rsvp/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockActivityLogService struct {
	mock.Mock
}

func NewMockActivityLogService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockActivityLogService {
	m := &MockActivityLogService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockActivityLogService) Record(ctx context.Context, userID string, meta model.ActivityMetadata) error {
	args := m.Called(ctx, userID, meta)
	return args.Error(0)
}

func (m *MockActivityLogService) Store(ctx context.Context, entry *model.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockActivityLogService) List(ctx context.Context, userID string, limit int) ([]*model.ActivityLog, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ActivityLog), args.Error(1)
}
