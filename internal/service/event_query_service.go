package service

import (
	"context"
	"time"

	"go-gin-event-rsvp/internal/model"
	"go-gin-event-rsvp/internal/repository"
	apperrors "go-gin-event-rsvp/pkg/app_errors"

	"github.com/google/uuid"
)

type EventQueryService interface {
	// List returns the events userID created or participates in, filtered and sorted.
	List(ctx context.Context, userID string, query model.EventQuery) ([]*model.Event, error)
}

type EventQueryServiceImpl struct {
	repo              repository.EventRepository
	participationRepo repository.ParticipationRepository
	userRepo          repository.UserRepository
	now               func() time.Time
}

func NewEventQueryService(
	repo repository.EventRepository,
	participationRepo repository.ParticipationRepository,
	userRepo repository.UserRepository,
	now func() time.Time,
) EventQueryService {
	if now == nil {
		now = time.Now
	}
	return &EventQueryServiceImpl{
		repo:              repo,
		participationRepo: participationRepo,
		userRepo:          userRepo,
		now:               now,
	}
}

func (s *EventQueryServiceImpl) List(ctx context.Context, userID string, query model.EventQuery) ([]*model.Event, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	status := query.Status
	if status == "" {
		status = model.EventStatusCurrent
	}
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidInput
	}
	if query.From != nil && query.To != nil && query.From.After(*query.To) {
		return nil, apperrors.ErrInvalidInput
	}

	events, err := s.repo.List(ctx, model.EventFilter{
		UserID: userID,
		Search: query.Search,
		From:   query.From,
		To:     query.To,
		Status: status,
		Now:    s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return events, nil
	}

	eventIDs := make([]uuid.UUID, 0, len(events))
	creatorIDs := make([]string, 0, len(events))
	for _, e := range events {
		eventIDs = append(eventIDs, e.ID)
		creatorIDs = append(creatorIDs, e.CreatedByID)
	}

	participation, err := s.participationRepo.ListByEventIDs(ctx, eventIDs)
	if err != nil {
		return nil, err
	}
	creators, err := s.userRepo.FindByIDs(ctx, uniqueIDs(creatorIDs))
	if err != nil {
		return nil, err
	}

	for _, e := range events {
		e.Participation = visibleParticipation(e, userID, participation[e.ID])
		e.CreatedBy = creators[e.CreatedByID]
	}

	return events, nil
}
