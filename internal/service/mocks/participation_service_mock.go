package mocks

import (
	"context"

	"go-gin-event-rsvp/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockParticipationService struct {
	mock.Mock
}

func NewMockParticipationService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockParticipationService {
	m := &MockParticipationService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockParticipationService) Join(ctx context.Context, eventID uuid.UUID, userID string, req model.JoinEventRequest) (*model.Participation, error) {
	args := m.Called(ctx, eventID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participation), args.Error(1)
}

func (m *MockParticipationService) UpdateStatus(ctx context.Context, eventID uuid.UUID, userID string, req model.UpdateParticipationRequest) (*model.Participation, error) {
	args := m.Called(ctx, eventID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participation), args.Error(1)
}

func (m *MockParticipationService) Remove(ctx context.Context, participationID uuid.UUID, requesterID string) error {
	args := m.Called(ctx, participationID, requesterID)
	return args.Error(0)
}

func (m *MockParticipationService) Invite(ctx context.Context, eventID uuid.UUID, requesterID string, userIDs []string) (int, error) {
	args := m.Called(ctx, eventID, requesterID, userIDs)
	return args.Int(0), args.Error(1)
}
