package handler

import (
	"net/http"
	"strconv"

	"go-gin-event-rsvp/internal/service"

	"github.com/gin-gonic/gin"
)

type ActivityLogHandler struct {
	service service.ActivityLogService
}

func NewActivityLogHandler(service service.ActivityLogService) *ActivityLogHandler {
	return &ActivityLogHandler{service: service}
}

func (h *ActivityLogHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("activity-logs", h.List)
	}
}

// List returns the caller's own activity, newest first.
func (h *ActivityLogHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respond(c, http.StatusBadRequest, "Invalid limit", nil)
			return
		}
		limit = n
	}

	entries, err := h.service.List(c, currentUser(c), limit)
	if err != nil {
		handleError(c, err, "ListActivityLogs")
		return
	}
	respond(c, http.StatusOK, "OK", entries)
}
