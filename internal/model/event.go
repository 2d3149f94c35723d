package model

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	Title            string     `json:"title" db:"title"`
	Description      *string    `json:"description,omitempty" db:"description"`
	Date             time.Time  `json:"date" db:"date"`
	EndDate          *time.Time `json:"end_date,omitempty" db:"end_date"`
	StartTime        *string    `json:"start_time,omitempty" db:"start_time"`
	EndTime          *string    `json:"end_time,omitempty" db:"end_time"`
	Location         *string    `json:"location,omitempty" db:"location"`
	HideParticipants bool       `json:"hide_participants" db:"hide_participants"`
	Archived         bool       `json:"archived" db:"archived"`
	CreatedByID      string     `json:"created_by_id" db:"created_by_id"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`

	CreatedBy     *User            `json:"created_by,omitempty" db:"-"`
	Participation []*Participation `json:"participation,omitempty" db:"-"`
}

// IsCreatedBy reports whether userID organizes the event.
func (e *Event) IsCreatedBy(userID string) bool {
	return userID != "" && e.CreatedByID == userID
}

// IsClosed reports whether the event has an end date at or before now.
func (e *Event) IsClosed(now time.Time) bool {
	return e.EndDate != nil && !e.EndDate.After(now)
}

// UpdateEventParams is a partial update: nil fields are left untouched.
// Archived is set only by the archive operation, never by a client patch.
type UpdateEventParams struct {
	Title            *string
	Description      *string
	Date             *time.Time
	EndDate          *time.Time
	StartTime        *string
	EndTime          *string
	Location         *string
	HideParticipants *bool
	Archived         *bool
}

// IsEmpty reports whether no field would be changed.
func (p UpdateEventParams) IsEmpty() bool {
	return len(p.FieldNames()) == 0
}

// FieldNames lists the column names the patch touches, in a stable order.
func (p UpdateEventParams) FieldNames() []string {
	names := make([]string, 0, 9)
	if p.Title != nil {
		names = append(names, "title")
	}
	if p.Description != nil {
		names = append(names, "description")
	}
	if p.Date != nil {
		names = append(names, "date")
	}
	if p.EndDate != nil {
		names = append(names, "end_date")
	}
	if p.StartTime != nil {
		names = append(names, "start_time")
	}
	if p.EndTime != nil {
		names = append(names, "end_time")
	}
	if p.Location != nil {
		names = append(names, "location")
	}
	if p.HideParticipants != nil {
		names = append(names, "hide_participants")
	}
	if p.Archived != nil {
		names = append(names, "archived")
	}
	return names
}

// EventStatus selects events by their date relative to now.
type EventStatus string

const (
	EventStatusAll     EventStatus = "all"
	EventStatusCurrent EventStatus = "current"
	EventStatusPast    EventStatus = "past"
)

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusAll, EventStatusCurrent, EventStatusPast:
		return true
	}
	return false
}

// ParseEventStatus maps a query value to a status. Empty means current.
func ParseEventStatus(raw string) (EventStatus, bool) {
	if raw == "" {
		return EventStatusCurrent, true
	}
	s := EventStatus(raw)
	return s, s.IsValid()
}

// EventFilter narrows the events visible to UserID. Zero values disable a filter.
type EventFilter struct {
	UserID string
	Search string
	From   *time.Time
	To     *time.Time
	Status EventStatus
	Now    time.Time
}
