package handler

import (
	"errors"
	"net/http"

	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/service"
	apperrors "go-gin-event-ticketing/pkg/app_errors"

	"github.com/gin-gonic/gin"
)

type RegistrationHandler struct {
	service service.RegistrationService
}

func NewRegistrationHandler(service service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

// RegisterRoutes 全部路由都需要登入；Admin 檢查在 service
func (h *RegistrationHandler) RegisterRoutes(r *gin.RouterGroup, authenticate gin.HandlerFunc) {
	router := r.Group("/registrations", authenticate)
	{
		router.POST("", h.Create)
		router.GET("/mybookings", h.ListMyBookings)
		router.GET("/all", h.ListAll)
		router.GET("/event/:eventId", h.ListByEvent)
		router.POST("/scan", h.Scan)
		router.GET("/:id", h.GetByID)
	}
}

func (h *RegistrationHandler) Create(c *gin.Context) {
	var req model.CreateRegistrationRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	created, err := h.service.CreateRegistration(c, actor(c), req)
	if err != nil {
		handleError(c, err, "CreateRegistration")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RegistrationHandler) GetByID(c *gin.Context) {
	id, ok := BindID(c, "id")
	if !ok {
		return
	}
	registration, err := h.service.GetRegistration(c, actor(c), id)
	if err != nil {
		handleError(c, err, "GetRegistration")
		return
	}
	c.JSON(http.StatusOK, registration)
}

func (h *RegistrationHandler) ListMyBookings(c *gin.Context) {
	registrations, err := h.service.ListMyBookings(c, actor(c))
	if err != nil {
		handleError(c, err, "ListMyBookings")
		return
	}
	c.JSON(http.StatusOK, registrations)
}

func (h *RegistrationHandler) ListByEvent(c *gin.Context) {
	eventID, ok := BindID(c, "eventId")
	if !ok {
		return
	}
	registrations, err := h.service.ListEventRegistrations(c, actor(c), eventID)
	if err != nil {
		handleError(c, err, "ListEventRegistrations")
		return
	}
	c.JSON(http.StatusOK, registrations)
}

func (h *RegistrationHandler) ListAll(c *gin.Context) {
	registrations, err := h.service.ListAllRegistrations(c, actor(c))
	if err != nil {
		handleError(c, err, "ListAllRegistrations")
		return
	}
	c.JSON(http.StatusOK, registrations)
}

func (h *RegistrationHandler) Scan(c *gin.Context) {
	var req model.ScanRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.service.ScanTicket(c, actor(c), req.TicketCode)
	if errors.Is(err, apperrors.ErrTicketAlreadyUsed) && result != nil {
		// 已使用：400 並帶回原本的持票資訊
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      result.Message,
			"message":    result.Message,
			"holderName": result.HolderName,
			"eventTitle": result.EventTitle,
			"quantity":   result.Quantity,
			"scannedAt":  result.ScannedAt,
		})
		return
	}
	if err != nil {
		handleError(c, err, "ScanTicket")
		return
	}

	c.JSON(http.StatusOK, result)
}
