package handler

import (
	"net/http"
	"time"

	"go-gin-event-rsvp/internal/model"
	"go-gin-event-rsvp/internal/service"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	service      service.EventService
	queryService service.EventQueryService
}

func NewEventHandler(service service.EventService, queryService service.EventQueryService) *EventHandler {
	return &EventHandler{service: service, queryService: queryService}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("events", h.List)
		router.POST("events", h.Create)
		router.GET("events/:id", h.Get)
		router.PATCH("events/:id", h.Update)
		router.POST("events/:id/close", h.Close)
		router.POST("events/:id/archive", h.Archive)
	}
}

type listEventsQuery struct {
	Search string `form:"search"`
	From   string `form:"from"`
	To     string `form:"to"`
	Status string `form:"status"`
}

func (h *EventHandler) List(c *gin.Context) {
	var raw listEventsQuery
	if err := BindQuery(c, &raw); err != nil {
		return
	}

	query, ok := parseEventQuery(raw)
	if !ok {
		respond(c, http.StatusBadRequest, "Invalid query", nil)
		return
	}

	events, err := h.queryService.List(c, currentUser(c), query)
	if err != nil {
		handleError(c, err, "ListEvents")
		return
	}
	respond(c, http.StatusOK, "OK", events)
}

func (h *EventHandler) Create(c *gin.Context) {
	var req model.CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	event, err := h.service.Create(c, currentUser(c), req)
	if err != nil {
		handleError(c, err, "CreateEvent")
		return
	}
	respond(c, http.StatusCreated, "Event created", event)
}

func (h *EventHandler) Get(c *gin.Context) {
	eventID, ok := bindID(c)
	if !ok {
		return
	}

	event, err := h.service.Get(c, eventID, currentUser(c))
	if err != nil {
		handleError(c, err, "GetEvent")
		return
	}
	respond(c, http.StatusOK, "OK", event)
}

func (h *EventHandler) Update(c *gin.Context) {
	eventID, ok := bindID(c)
	if !ok {
		return
	}

	var req model.UpdateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	params, err := req.ToParams()
	if err != nil {
		handleError(c, err, "UpdateEvent")
		return
	}

	event, err := h.service.Update(c, eventID, currentUser(c), params)
	if err != nil {
		handleError(c, err, "UpdateEvent")
		return
	}
	respond(c, http.StatusOK, "Event updated", event)
}

func (h *EventHandler) Close(c *gin.Context) {
	eventID, ok := bindID(c)
	if !ok {
		return
	}

	event, err := h.service.Close(c, eventID, currentUser(c))
	if err != nil {
		handleError(c, err, "CloseEvent")
		return
	}
	respond(c, http.StatusOK, "Event closed", event)
}

func (h *EventHandler) Archive(c *gin.Context) {
	eventID, ok := bindID(c)
	if !ok {
		return
	}

	event, err := h.service.Archive(c, eventID, currentUser(c))
	if err != nil {
		handleError(c, err, "ArchiveEvent")
		return
	}
	respond(c, http.StatusOK, "Event archived", event)
}

func parseEventQuery(raw listEventsQuery) (model.EventQuery, bool) {
	status, ok := model.ParseEventStatus(raw.Status)
	if !ok {
		return model.EventQuery{}, false
	}

	query := model.EventQuery{Search: raw.Search, Status: status}

	if raw.From != "" {
		from, _, err := parseQueryTime(raw.From)
		if err != nil {
			return model.EventQuery{}, false
		}
		query.From = &from
	}
	if raw.To != "" {
		to, dateOnly, err := parseQueryTime(raw.To)
		if err != nil {
			return model.EventQuery{}, false
		}
		// a bare date includes the whole day
		if dateOnly {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		query.To = &to
	}

	return query, true
}

// parseQueryTime accepts RFC 3339 timestamps and plain YYYY-MM-DD dates (UTC).
func parseQueryTime(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
