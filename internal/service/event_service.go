package service

import (
	"context"
	"errors"
	"time"

	"go-gin-event-rsvp/internal/database"
	"go-gin-event-rsvp/internal/model"
	"go-gin-event-rsvp/internal/repository"
	apperrors "go-gin-event-rsvp/pkg/app_errors"
	"go-gin-event-rsvp/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EventService interface {
	// Create stores the event and the creator's ACCEPTED participation in one transaction.
	Create(ctx context.Context, creatorID string, req model.CreateEventRequest) (*model.Event, error)
	Get(ctx context.Context, eventID uuid.UUID, requesterID string) (*model.Event, error)
	Update(ctx context.Context, eventID uuid.UUID, requesterID string, params model.UpdateEventParams) (*model.Event, error)
	// Close sets the end date to now.
	Close(ctx context.Context, eventID uuid.UUID, requesterID string) (*model.Event, error)
	Archive(ctx context.Context, eventID uuid.UUID, requesterID string) (*model.Event, error)
}

type EventServiceImpl struct {
	tx                database.Transactor
	repo              repository.EventRepository
	participationRepo repository.ParticipationRepository
	userRepo          repository.UserRepository
	activity          ActivityLogService
	now               func() time.Time
}

func NewEventService(
	tx database.Transactor,
	repo repository.EventRepository,
	participationRepo repository.ParticipationRepository,
	userRepo repository.UserRepository,
	activity ActivityLogService,
	now func() time.Time,
) EventService {
	if now == nil {
		now = time.Now
	}
	return &EventServiceImpl{
		tx:                tx,
		repo:              repo,
		participationRepo: participationRepo,
		userRepo:          userRepo,
		activity:          activity,
		now:               now,
	}
}

func (s *EventServiceImpl) Create(ctx context.Context, creatorID string, req model.CreateEventRequest) (*model.Event, error) {
	if creatorID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var created *model.Event
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		event, err := s.repo.Create(ctx, tx, req.ToEvent(creatorID))
		if err != nil {
			return err
		}

		owner, err := s.participationRepo.CreateTx(ctx, tx, &model.Participation{
			EventID: event.ID,
			UserID:  creatorID,
			Status:  model.ParticipationStatusAccepted,
		})
		if err != nil {
			return err
		}

		event.Participation = []*model.Participation{owner}
		created = event
		return nil
	})
	if err != nil {
		return nil, err
	}

	recordActivity(ctx, s.activity, creatorID, model.EventCreatedMetadata{
		EventID: created.ID,
		Title:   created.Title,
	})

	return created, nil
}

// Get returns any event by id, archived ones included, with its creator and
// the participants the requester is allowed to see.
func (s *EventServiceImpl) Get(ctx context.Context, eventID uuid.UUID, requesterID string) (*model.Event, error) {
	if requesterID == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	participation, err := s.participationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	event.Participation = visibleParticipation(event, requesterID, participation)

	creator, err := s.userRepo.FindByID(ctx, event.CreatedByID)
	switch {
	case err == nil:
		event.CreatedBy = creator
	case errors.Is(err, apperrors.ErrUserNotFound):
		// creator not synced yet
	default:
		return nil, err
	}

	return event, nil
}

func (s *EventServiceImpl) Update(ctx context.Context, eventID uuid.UUID, requesterID string, params model.UpdateEventParams) (*model.Event, error) {
	if requesterID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	// archiving has its own operation
	params.Archived = nil
	if params.IsEmpty() {
		return nil, apperrors.ErrInvalidInput
	}

	if _, err := s.findOwned(ctx, eventID, requesterID); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, eventID, params)
	if err != nil {
		return nil, err
	}

	recordActivity(ctx, s.activity, requesterID, model.EventUpdatedMetadata{
		EventID: eventID,
		Fields:  params.FieldNames(),
	})

	return updated, nil
}

func (s *EventServiceImpl) Close(ctx context.Context, eventID uuid.UUID, requesterID string) (*model.Event, error) {
	if requesterID == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	if _, err := s.findOwned(ctx, eventID, requesterID); err != nil {
		return nil, err
	}

	endDate := s.now().UTC()
	updated, err := s.repo.Update(ctx, eventID, model.UpdateEventParams{EndDate: &endDate})
	if err != nil {
		return nil, err
	}

	recordActivity(ctx, s.activity, requesterID, model.EventClosedMetadata{
		EventID: eventID,
		EndDate: endDate,
	})

	return updated, nil
}

func (s *EventServiceImpl) Archive(ctx context.Context, eventID uuid.UUID, requesterID string) (*model.Event, error) {
	if requesterID == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	event, err := s.findOwned(ctx, eventID, requesterID)
	if err != nil {
		return nil, err
	}
	if event.Archived {
		logger.WithComponent("service").Debug("event already archived", zap.String("event_id", eventID.String()))
	}

	archived := true
	updated, err := s.repo.Update(ctx, eventID, model.UpdateEventParams{Archived: &archived})
	if err != nil {
		return nil, err
	}

	recordActivity(ctx, s.activity, requesterID, model.EventArchivedMetadata{EventID: eventID})

	return updated, nil
}

// findOwned loads the event and fails with ErrForbidden unless requesterID created it.
// A missing event is reported before any ownership decision.
func (s *EventServiceImpl) findOwned(ctx context.Context, eventID uuid.UUID, requesterID string) (*model.Event, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsCreatedBy(requesterID) {
		return nil, apperrors.ErrForbidden
	}
	return event, nil
}

// visibleParticipation hides other guests from non-creators when the event asks for it.
func visibleParticipation(event *model.Event, requesterID string, all []*model.Participation) []*model.Participation {
	if !event.HideParticipants || event.IsCreatedBy(requesterID) {
		return all
	}
	own := make([]*model.Participation, 0, 1)
	for _, p := range all {
		if p.UserID == requesterID {
			own = append(own, p)
		}
	}
	return own
}
