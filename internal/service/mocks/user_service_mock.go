package mocks

import (
	"context"

	"go-gin-event-rsvp/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func NewMockUserService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserService {
	m := &MockUserService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserService) SyncFromWebhook(ctx context.Context, evt model.IdentityWebhookEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}
