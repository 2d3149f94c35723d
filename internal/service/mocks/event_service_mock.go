package mocks

import (
	"context"

	"go-gin-event-rsvp/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockEventService struct {
	mock.Mock
}

func NewMockEventService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventService {
	m := &MockEventService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEventService) Create(ctx context.Context, creatorID string, req model.CreateEventRequest) (*model.Event, error) {
	args := m.Called(ctx, creatorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) Get(ctx context.Context, eventID uuid.UUID, requesterID string) (*model.Event, error) {
	args := m.Called(ctx, eventID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) Update(ctx context.Context, eventID uuid.UUID, requesterID string, params model.UpdateEventParams) (*model.Event, error) {
	args := m.Called(ctx, eventID, requesterID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) Close(ctx context.Context, eventID uuid.UUID, requesterID string) (*model.Event, error) {
	args := m.Called(ctx, eventID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) Archive(ctx context.Context, eventID uuid.UUID, requesterID string) (*model.Event, error) {
	args := m.Called(ctx, eventID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}
