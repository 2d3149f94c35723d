package handler

import (
	"net/http"

	"go-gin-event-rsvp/internal/model"
	"go-gin-event-rsvp/internal/service"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	service service.UserService
}

func NewWebhookHandler(service service.UserService) *WebhookHandler {
	return &WebhookHandler{service: service}
}

func (h *WebhookHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("webhooks/identity", h.Identity)
	}
}

// Identity applies a user lifecycle event. The payload is trusted as already verified.
func (h *WebhookHandler) Identity(c *gin.Context) {
	var evt model.IdentityWebhookEvent
	if err := BindJson(c, &evt); err != nil {
		return
	}

	if err := h.service.SyncFromWebhook(c, evt); err != nil {
		handleError(c, err, "IdentityWebhook")
		return
	}
	respond(c, http.StatusOK, "Webhook processed", nil)
}
