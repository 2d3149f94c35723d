package model

import (
	"regexp"
	"strings"
	"time"

	apperrors "go-gin-event-rsvp/pkg/app_errors"
)

var clockTime = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// CreateEventRequest is the body of POST /events.
type CreateEventRequest struct {
	Title            string     `json:"title" binding:"required"`
	Description      *string    `json:"description"`
	Date             *time.Time `json:"date" binding:"required"`
	EndDate          *time.Time `json:"end_date"`
	StartTime        *string    `json:"start_time"`
	EndTime          *string    `json:"end_time"`
	Location         *string    `json:"location"`
	HideParticipants bool       `json:"hide_participants"`
}

// Validate checks what binding tags cannot, so the service can also be called directly.
func (r CreateEventRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" || r.Date == nil || r.Date.IsZero() {
		return apperrors.ErrInvalidInput
	}
	if !validClockTime(r.StartTime) || !validClockTime(r.EndTime) {
		return apperrors.ErrInvalidInput
	}
	if r.EndDate != nil && r.EndDate.Before(*r.Date) {
		return apperrors.ErrInvalidInput
	}
	return nil
}

func (r CreateEventRequest) ToEvent(creatorID string) *Event {
	return &Event{
		Title:            strings.TrimSpace(r.Title),
		Description:      r.Description,
		Date:             *r.Date,
		EndDate:          r.EndDate,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		Location:         r.Location,
		HideParticipants: r.HideParticipants,
		CreatedByID:      creatorID,
	}
}

// UpdateEventRequest is the body of PATCH /events/:id. Absent fields stay untouched.
type UpdateEventRequest struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	Date             *time.Time `json:"date"`
	EndDate          *time.Time `json:"end_date"`
	StartTime        *string    `json:"start_time"`
	EndTime          *string    `json:"end_time"`
	Location         *string    `json:"location"`
	HideParticipants *bool      `json:"hide_participants"`
}

func (r UpdateEventRequest) ToParams() (UpdateEventParams, error) {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" {
			return UpdateEventParams{}, apperrors.ErrInvalidInput
		}
		r.Title = &title
	}
	if !validClockTime(r.StartTime) || !validClockTime(r.EndTime) {
		return UpdateEventParams{}, apperrors.ErrInvalidInput
	}
	return UpdateEventParams{
		Title:            r.Title,
		Description:      r.Description,
		Date:             r.Date,
		EndDate:          r.EndDate,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		Location:         r.Location,
		HideParticipants: r.HideParticipants,
	}, nil
}

// JoinEventRequest is the body of POST /events/:id/participate. An empty status means PENDING.
type JoinEventRequest struct {
	Status  ParticipationStatus `json:"status"`
	Comment *string             `json:"comment"`
}

type UpdateParticipationRequest struct {
	Status  ParticipationStatus `json:"status" binding:"required"`
	Comment *string             `json:"comment"`
}

type InviteRequest struct {
	UserIDs []string `json:"user_ids" binding:"required,min=1"`
}

// EventQuery is the parsed query string of GET /events.
type EventQuery struct {
	Search string
	From   *time.Time
	To     *time.Time
	Status EventStatus
}

// IdentityWebhookEvent is a user lifecycle notification from the identity provider.
type IdentityWebhookEvent struct {
	Type string              `json:"type" binding:"required"`
	Data IdentityWebhookUser `json:"data"`
}

type IdentityWebhookUser struct {
	ID        string  `json:"id"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Username  *string `json:"username"`
	ImageURL  *string `json:"image_url"`
}

func validClockTime(s *string) bool {
	return s == nil || *s == "" || clockTime.MatchString(*s)
}

// NormalizeOptional trims c and maps blank input to nil.
func NormalizeOptional(c *string) *string {
	if c == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*c)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// DisplayName is "Last First" when the provider sent a first name, else the
// username, else "User". With requireBoth, a missing last name also falls back.
func (u IdentityWebhookUser) DisplayName(requireBoth bool) string {
	first := deref(u.FirstName)
	last := deref(u.LastName)

	if first != "" && (!requireBoth || last != "") {
		if last != "" {
			return last + " " + first
		}
		return first
	}
	if name := deref(u.Username); name != "" {
		return name
	}
	return "User"
}

func (u IdentityWebhookUser) ToUser(requireBoth bool) *User {
	return &User{
		ID:          u.ID,
		DisplayName: u.DisplayName(requireBoth),
		AvatarURL:   NormalizeOptional(u.ImageURL),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
