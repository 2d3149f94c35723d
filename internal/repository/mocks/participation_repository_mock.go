package mocks

import (
	"context"

	"go-gin-event-rsvp/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockParticipationRepository struct {
	mock.Mock
}

func NewMockParticipationRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockParticipationRepository {
	m := &MockParticipationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockParticipationRepository) Upsert(ctx context.Context, p *model.Participation) (*model.Participation, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participation), args.Error(1)
}

func (m *MockParticipationRepository) FindByEventAndUser(ctx context.Context, eventID uuid.UUID, userID string) (*model.Participation, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participation), args.Error(1)
}

func (m *MockParticipationRepository) FindByIDWithEvent(ctx context.Context, id uuid.UUID) (*model.ParticipationWithEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ParticipationWithEvent), args.Error(1)
}

func (m *MockParticipationRepository) ListByEventID(ctx context.Context, eventID uuid.UUID) ([]*model.Participation, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Participation), args.Error(1)
}

func (m *MockParticipationRepository) ListByEventIDs(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID][]*model.Participation, error) {
	args := m.Called(ctx, eventIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]*model.Participation), args.Error(1)
}

func (m *MockParticipationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ParticipationStatus, comment *string) (*model.Participation, error) {
	args := m.Called(ctx, id, status, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participation), args.Error(1)
}

func (m *MockParticipationRepository) InsertPending(ctx context.Context, eventID uuid.UUID, userIDs []string) (int, error) {
	args := m.Called(ctx, eventID, userIDs)
	return args.Int(0), args.Error(1)
}

func (m *MockParticipationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockParticipationRepository) CreateTx(ctx context.Context, tx pgx.Tx, p *model.Participation) (*model.Participation, error) {
	args := m.Called(ctx, tx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participation), args.Error(1)
}
