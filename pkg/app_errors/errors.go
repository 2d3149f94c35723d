package apperrors

import "errors"

var (
	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrForbidden             = errors.New("forbidden")
	ErrEventNotFound         = errors.New("event not found")
	ErrParticipationNotFound = errors.New("participation not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidStatus         = errors.New("invalid participation status")
	ErrUnknownActivity       = errors.New("unknown activity action")
	ErrInternalServerError   = errors.New("internal server error")
)
