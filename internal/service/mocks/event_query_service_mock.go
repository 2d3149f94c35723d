package mocks

import (
	"context"

	"go-gin-event-rsvp/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockEventQueryService struct {
	mock.Mock
}

func NewMockEventQueryService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventQueryService {
	m := &MockEventQueryService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEventQueryService) List(ctx context.Context, userID string, query model.EventQuery) ([]*model.Event, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}
