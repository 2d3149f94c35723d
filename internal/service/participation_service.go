package service

import (
	"context"
	"strings"

	"go-gin-event-rsvp/internal/model"
	"go-gin-event-rsvp/internal/repository"
	apperrors "go-gin-event-rsvp/pkg/app_errors"

	"github.com/google/uuid"
)

type ParticipationService interface {
	// Join creates or overwrites the requester's response; repeated calls converge on the latest one.
	Join(ctx context.Context, eventID uuid.UUID, userID string, req model.JoinEventRequest) (*model.Participation, error)
	UpdateStatus(ctx context.Context, eventID uuid.UUID, userID string, req model.UpdateParticipationRequest) (*model.Participation, error)
	// Remove deletes a participation. Only the event creator may do it.
	Remove(ctx context.Context, participationID uuid.UUID, requesterID string) error
	// Invite adds PENDING rows for users not yet on the event and returns how many were added.
	Invite(ctx context.Context, eventID uuid.UUID, requesterID string, userIDs []string) (int, error)
}

type ParticipationServiceImpl struct {
	eventRepo         repository.EventRepository
	participationRepo repository.ParticipationRepository
	activity          ActivityLogService
}

func NewParticipationService(
	eventRepo repository.EventRepository,
	participationRepo repository.ParticipationRepository,
	activity ActivityLogService,
) ParticipationService {
	return &ParticipationServiceImpl{
		eventRepo:         eventRepo,
		participationRepo: participationRepo,
		activity:          activity,
	}
}

func (s *ParticipationServiceImpl) Join(ctx context.Context, eventID uuid.UUID, userID string, req model.JoinEventRequest) (*model.Participation, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	status := req.Status
	if status == "" {
		status = model.ParticipationStatusPending
	}
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}

	participation, err := s.participationRepo.Upsert(ctx, &model.Participation{
		EventID: eventID,
		UserID:  userID,
		Status:  status,
		Comment: model.NormalizeOptional(req.Comment),
	})
	if err != nil {
		return nil, err
	}

	recordActivity(ctx, s.activity, userID, model.ParticipationJoinedMetadata{
		EventID: eventID,
		Status:  participation.Status,
	})

	return participation, nil
}

func (s *ParticipationServiceImpl) UpdateStatus(ctx context.Context, eventID uuid.UUID, userID string, req model.UpdateParticipationRequest) (*model.Participation, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if !req.Status.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	current, err := s.participationRepo.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(req.Status) {
		return nil, apperrors.ErrInvalidStatus
	}

	updated, err := s.participationRepo.UpdateStatus(ctx, current.ID, req.Status, nextComment(current, req))
	if err != nil {
		return nil, err
	}

	recordActivity(ctx, s.activity, userID, model.ParticipationUpdatedMetadata{
		EventID:    eventID,
		Status:     updated.Status,
		HasComment: updated.Comment != nil,
	})

	return updated, nil
}

// nextComment keeps a comment only on a decline. A decline without a new
// comment keeps whatever was stored before.
func nextComment(current *model.Participation, req model.UpdateParticipationRequest) *string {
	if !req.Status.KeepsComment() {
		return nil
	}
	if comment := model.NormalizeOptional(req.Comment); comment != nil {
		return comment
	}
	return current.Comment
}

func (s *ParticipationServiceImpl) Remove(ctx context.Context, participationID uuid.UUID, requesterID string) error {
	if requesterID == "" {
		return apperrors.ErrUnauthenticated
	}

	participation, err := s.participationRepo.FindByIDWithEvent(ctx, participationID)
	if err != nil {
		return err
	}
	if participation.EventCreatedByID != requesterID {
		return apperrors.ErrForbidden
	}

	if err := s.participationRepo.Delete(ctx, participationID); err != nil {
		return err
	}

	recordActivity(ctx, s.activity, requesterID, model.ParticipationRemovedMetadata{
		EventID:         participation.EventID,
		ParticipationID: participation.ID,
		UserID:          participation.UserID,
	})

	return nil
}

func (s *ParticipationServiceImpl) Invite(ctx context.Context, eventID uuid.UUID, requesterID string, userIDs []string) (int, error) {
	if requesterID == "" {
		return 0, apperrors.ErrUnauthenticated
	}

	invitees := uniqueIDs(userIDs)
	if len(invitees) == 0 {
		return 0, apperrors.ErrInvalidInput
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return 0, err
	}
	if !event.IsCreatedBy(requesterID) {
		return 0, apperrors.ErrForbidden
	}

	added, err := s.participationRepo.InsertPending(ctx, eventID, invitees)
	if err != nil {
		return 0, err
	}

	if added > 0 {
		recordActivity(ctx, s.activity, requesterID, model.ParticipationInvitedMetadata{
			EventID: eventID,
			UserIDs: invitees,
		})
	}

	return added, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
