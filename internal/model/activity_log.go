package model

import (
	"encoding/json"
	"fmt"
	"time"

	apperrors "go-gin-event-rsvp/pkg/app_errors"

	"github.com/google/uuid"
)

// ActivityAction names an audited mutation.
type ActivityAction string

const (
	ActionEventCreated         ActivityAction = "event.created"
	ActionEventUpdated         ActivityAction = "event.updated"
	ActionEventClosed          ActivityAction = "event.closed"
	ActionEventArchived        ActivityAction = "event.archived"
	ActionParticipationJoined  ActivityAction = "participation.joined"
	ActionParticipationUpdated ActivityAction = "participation.updated"
	ActionParticipationRemoved ActivityAction = "participation.removed"
	ActionParticipationInvited ActivityAction = "participation.invited"
)

// ActivityLog is an append-only audit row. Metadata holds the JSON encoding of
// the payload type that belongs to Action.
type ActivityLog struct {
	ID        int64           `json:"id" db:"id"`
	UserID    string          `json:"user_id" db:"user_id"`
	Action    ActivityAction  `json:"action" db:"action"`
	Metadata  json.RawMessage `json:"metadata" db:"metadata"`
	Timestamp time.Time       `json:"timestamp" db:"timestamp"`
}

// ActivityMetadata is implemented by every typed payload.
type ActivityMetadata interface {
	Action() ActivityAction
}

type EventCreatedMetadata struct {
	EventID uuid.UUID `json:"event_id"`
	Title   string    `json:"title"`
}

type EventUpdatedMetadata struct {
	EventID uuid.UUID `json:"event_id"`
	Fields  []string  `json:"fields"`
}

type EventClosedMetadata struct {
	EventID uuid.UUID `json:"event_id"`
	EndDate time.Time `json:"end_date"`
}

type EventArchivedMetadata struct {
	EventID uuid.UUID `json:"event_id"`
}

type ParticipationJoinedMetadata struct {
	EventID uuid.UUID           `json:"event_id"`
	Status  ParticipationStatus `json:"status"`
}

type ParticipationUpdatedMetadata struct {
	EventID    uuid.UUID           `json:"event_id"`
	Status     ParticipationStatus `json:"status"`
	HasComment bool                `json:"has_comment"`
}

type ParticipationRemovedMetadata struct {
	EventID         uuid.UUID `json:"event_id"`
	ParticipationID uuid.UUID `json:"participation_id"`
	UserID          string    `json:"user_id"`
}

type ParticipationInvitedMetadata struct {
	EventID uuid.UUID `json:"event_id"`
	UserIDs []string  `json:"user_ids"`
}

func (EventCreatedMetadata) Action() ActivityAction         { return ActionEventCreated }
func (EventUpdatedMetadata) Action() ActivityAction         { return ActionEventUpdated }
func (EventClosedMetadata) Action() ActivityAction          { return ActionEventClosed }
func (EventArchivedMetadata) Action() ActivityAction        { return ActionEventArchived }
func (ParticipationJoinedMetadata) Action() ActivityAction  { return ActionParticipationJoined }
func (ParticipationUpdatedMetadata) Action() ActivityAction { return ActionParticipationUpdated }
func (ParticipationRemovedMetadata) Action() ActivityAction { return ActionParticipationRemoved }
func (ParticipationInvitedMetadata) Action() ActivityAction { return ActionParticipationInvited }

// NewActivityLog encodes meta into an entry for userID.
func NewActivityLog(userID string, meta ActivityMetadata, at time.Time) (*ActivityLog, error) {
	if meta == nil {
		return nil, apperrors.ErrUnknownActivity
	}
	if _, err := newMetadata(meta.Action()); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshal activity metadata: %w", err)
	}
	return &ActivityLog{
		UserID:    userID,
		Action:    meta.Action(),
		Metadata:  raw,
		Timestamp: at,
	}, nil
}

// DecodeMetadata returns the typed payload stored in l.
func (l *ActivityLog) DecodeMetadata() (ActivityMetadata, error) {
	target, err := newMetadata(l.Action)
	if err != nil {
		return nil, err
	}
	if len(l.Metadata) > 0 {
		if err := json.Unmarshal(l.Metadata, target); err != nil {
			return nil, fmt.Errorf("unmarshal %s metadata: %w", l.Action, err)
		}
	}
	return derefMetadata(target), nil
}

func newMetadata(action ActivityAction) (any, error) {
	switch action {
	case ActionEventCreated:
		return &EventCreatedMetadata{}, nil
	case ActionEventUpdated:
		return &EventUpdatedMetadata{}, nil
	case ActionEventClosed:
		return &EventClosedMetadata{}, nil
	case ActionEventArchived:
		return &EventArchivedMetadata{}, nil
	case ActionParticipationJoined:
		return &ParticipationJoinedMetadata{}, nil
	case ActionParticipationUpdated:
		return &ParticipationUpdatedMetadata{}, nil
	case ActionParticipationRemoved:
		return &ParticipationRemovedMetadata{}, nil
	case ActionParticipationInvited:
		return &ParticipationInvitedMetadata{}, nil
	}
	return nil, apperrors.ErrUnknownActivity
}

func derefMetadata(v any) ActivityMetadata {
	switch m := v.(type) {
	case *EventCreatedMetadata:
		return *m
	case *EventUpdatedMetadata:
		return *m
	case *EventClosedMetadata:
		return *m
	case *EventArchivedMetadata:
		return *m
	case *ParticipationJoinedMetadata:
		return *m
	case *ParticipationUpdatedMetadata:
		return *m
	case *ParticipationRemovedMetadata:
		return *m
	case *ParticipationInvitedMetadata:
		return *m
	}
	return nil
}
