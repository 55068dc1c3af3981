package handler

import (
	"net/http"

	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/service"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.RouterGroup, authenticate gin.HandlerFunc) {
	router := r.Group("/events")
	{
		router.GET("", h.List)
		router.GET("/:id", h.GetByID)
		router.POST("", authenticate, h.Create)
		router.PUT("/:id", authenticate, h.Update)
		router.DELETE("/:id", authenticate, h.Delete)
	}
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(c)
	if err != nil {
		handleError(c, err, "ListEvents")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetByID(c *gin.Context) {
	id, ok := BindID(c, "id")
	if !ok {
		return
	}
	event, err := h.service.GetByID(c, id)
	if err != nil {
		handleError(c, err, "GetEvent")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Create(c *gin.Context) {
	var req model.EventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	created, err := h.service.Create(c, actor(c), req.ToEvent())
	if err != nil {
		handleError(c, err, "CreateEvent")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *EventHandler) Update(c *gin.Context) {
	id, ok := BindID(c, "id")
	if !ok {
		return
	}
	var req model.EventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	if _, err := h.service.Update(c, actor(c), id, req.ToEvent()); err != nil {
		handleError(c, err, "UpdateEvent")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := BindID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c, actor(c), id); err != nil {
		handleError(c, err, "DeleteEvent")
		return
	}
	c.Status(http.StatusNoContent)
}
