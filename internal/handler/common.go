package handler

import (
	"errors"
	"net/http"

	"go-gin-event-rsvp/internal/middleware"
	apperrors "go-gin-event-rsvp/pkg/app_errors"
	"go-gin-event-rsvp/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Response is the envelope of every API reply.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respond(c *gin.Context, code int, message string, data any) {
	c.JSON(code, Response{Status: code, Message: message, Data: data})
}

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		respond(c, http.StatusBadRequest, "Invalid request format", nil)
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		respond(c, http.StatusBadRequest, "Invalid request format", nil)
		return err
	}
	return nil
}

// bindID parses the :id path parameter, writing a 400 when it is not a UUID.
func bindID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond(c, http.StatusBadRequest, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func currentUser(c *gin.Context) string {
	return middleware.UserID(c)
}

func handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(
		zap.String("operation", operation),
		zap.String("user_id", currentUser(c)),
		zap.Error(err),
	)

	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		log.Warn("Unauthenticated")
		respond(c, http.StatusUnauthorized, "Authentication required", nil)
	case errors.Is(err, apperrors.ErrForbidden):
		log.Warn("Forbidden")
		respond(c, http.StatusForbidden, "Forbidden", nil)
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		respond(c, http.StatusNotFound, "Event not found", nil)
	case errors.Is(err, apperrors.ErrParticipationNotFound):
		log.Warn("Participation not found")
		respond(c, http.StatusNotFound, "Participation not found", nil)
	case errors.Is(err, apperrors.ErrUserNotFound):
		log.Warn("User not found")
		respond(c, http.StatusNotFound, "User not found", nil)
	case errors.Is(err, apperrors.ErrInvalidStatus):
		log.Warn("Invalid status")
		respond(c, http.StatusBadRequest, "Invalid status", nil)
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrUnknownActivity):
		log.Warn("Invalid input")
		respond(c, http.StatusBadRequest, "Invalid input", nil)
	default:
		log.Error("Unexpected error")
		respond(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
