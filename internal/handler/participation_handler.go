package handler

import (
	"net/http"

	"go-gin-event-rsvp/internal/model"
	"go-gin-event-rsvp/internal/service"

	"github.com/gin-gonic/gin"
)

type ParticipationHandler struct {
	service service.ParticipationService
}

func NewParticipationHandler(service service.ParticipationService) *ParticipationHandler {
	return &ParticipationHandler{service: service}
}

func (h *ParticipationHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("events/:id/participate", h.Join)
		router.PUT("events/:id/participation", h.UpdateStatus)
		router.POST("events/:id/invitations", h.Invite)
		router.DELETE("participations/:id", h.Remove)
	}
}

type inviteResponse struct {
	Invited int `json:"invited"`
}

func (h *ParticipationHandler) Join(c *gin.Context) {
	eventID, ok := bindID(c)
	if !ok {
		return
	}

	var req model.JoinEventRequest
	// an empty body joins as PENDING
	if c.Request.ContentLength != 0 {
		if err := BindJson(c, &req); err != nil {
			return
		}
	}

	p, err := h.service.Join(c, eventID, currentUser(c), req)
	if err != nil {
		handleError(c, err, "JoinEvent")
		return
	}
	respond(c, http.StatusCreated, "Participation saved", p)
}

func (h *ParticipationHandler) UpdateStatus(c *gin.Context) {
	eventID, ok := bindID(c)
	if !ok {
		return
	}

	var req model.UpdateParticipationRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	p, err := h.service.UpdateStatus(c, eventID, currentUser(c), req)
	if err != nil {
		handleError(c, err, "UpdateParticipation")
		return
	}
	respond(c, http.StatusOK, "Participation updated", p)
}

func (h *ParticipationHandler) Invite(c *gin.Context) {
	eventID, ok := bindID(c)
	if !ok {
		return
	}

	var req model.InviteRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	added, err := h.service.Invite(c, eventID, currentUser(c), req.UserIDs)
	if err != nil {
		handleError(c, err, "InviteParticipants")
		return
	}
	respond(c, http.StatusOK, "Invitations sent", inviteResponse{Invited: added})
}

func (h *ParticipationHandler) Remove(c *gin.Context) {
	participationID, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.service.Remove(c, participationID, currentUser(c)); err != nil {
		handleError(c, err, "RemoveParticipation")
		return
	}
	respond(c, http.StatusOK, "Participation removed", nil)
}
