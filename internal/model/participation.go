package model

import (
	"time"

	"github.com/google/uuid"
)

// ParticipationStatus is the RSVP state of a user for an event.
type ParticipationStatus string

const (
	ParticipationStatusPending  ParticipationStatus = "PENDING"
	ParticipationStatusAccepted ParticipationStatus = "ACCEPTED"
	ParticipationStatusDeclined ParticipationStatus = "DECLINED"
)

func (s ParticipationStatus) IsValid() bool {
	switch s {
	case ParticipationStatusPending, ParticipationStatusAccepted, ParticipationStatusDeclined:
		return true
	}
	return false
}

// CanTransitionTo reports whether a response may move to target.
// Every state is reachable from every other one; there is no terminal state.
func (s ParticipationStatus) CanTransitionTo(target ParticipationStatus) bool {
	return s.IsValid() && target.IsValid()
}

// KeepsComment reports whether a comment is stored alongside this status.
func (s ParticipationStatus) KeepsComment() bool {
	return s == ParticipationStatusDeclined
}

// Participation is one user's RSVP for one event; (EventID, UserID) is unique.
type Participation struct {
	ID        uuid.UUID           `json:"id" db:"id"`
	EventID   uuid.UUID           `json:"event_id" db:"event_id"`
	UserID    string              `json:"user_id" db:"user_id"`
	Status    ParticipationStatus `json:"status" db:"status"`
	Comment   *string             `json:"comment,omitempty" db:"comment"`
	CreatedAt time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt time.Time           `json:"updated_at" db:"updated_at"`

	User *User `json:"user,omitempty" db:"-"`
}

// ParticipationWithEvent carries the owning event's creator for authorization checks.
type ParticipationWithEvent struct {
	Participation
	EventCreatedByID string `json:"-" db:"event_created_by_id"`
}
