package handler

import (
	"errors"
	"net/http"
	"strconv"

	"go-gin-event-ticketing/internal/middleware"
	"go-gin-event-ticketing/internal/model"
	apperrors "go-gin-event-ticketing/pkg/app_errors"
	"go-gin-event-ticketing/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// BindID 解析路徑上的整數 id，失敗時直接回 400
func BindID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
		})
		return 0, false
	}
	return id, true
}

// actor 取得目前呼叫者；未經 Authenticate 時為空身分，由 service 判斷是否允許
func actor(c *gin.Context) model.Identity {
	identity, _ := middleware.IdentityFrom(c)
	return identity
}

type errorResponse struct {
	status  int
	message string
}

var errorResponses = []struct {
	err error
	errorResponse
}{
	{apperrors.ErrInvalidInput, errorResponse{http.StatusBadRequest, "Invalid input"}},
	{apperrors.ErrUnauthorized, errorResponse{http.StatusUnauthorized, "Unauthorized"}},
	{apperrors.ErrInvalidToken, errorResponse{http.StatusUnauthorized, "Invalid or expired token"}},
	{apperrors.ErrInvalidCredentials, errorResponse{http.StatusUnauthorized, "Invalid credentials"}},
	{apperrors.ErrForbidden, errorResponse{http.StatusForbidden, "Forbidden"}},
	{apperrors.ErrEmailExists, errorResponse{http.StatusBadRequest, "Email already exists"}},
	{apperrors.ErrUserNotFound, errorResponse{http.StatusNotFound, "User not found"}},
	{apperrors.ErrEventNotFound, errorResponse{http.StatusNotFound, "Event not found"}},
	{apperrors.ErrRegistrationNotFound, errorResponse{http.StatusNotFound, "Registration not found"}},
	{apperrors.ErrInvalidTicketCode, errorResponse{http.StatusNotFound, "Invalid Ticket Code"}},
	{apperrors.ErrAlreadyRegistered, errorResponse{http.StatusBadRequest, "Already registered for this event"}},
	{apperrors.ErrNotEnoughSeats, errorResponse{http.StatusBadRequest, "Not enough seats available"}},
	{apperrors.ErrTicketAlreadyUsed, errorResponse{http.StatusBadRequest, "Ticket Already Used"}},
	{apperrors.ErrInvalidUpload, errorResponse{http.StatusBadRequest, "Invalid image file"}},
}

// handleError 將 domain error 轉成 HTTP 狀態碼；未知錯誤一律 500
func handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(
		zap.String("operation", operation),
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Error(err),
	)

	for _, e := range errorResponses {
		if errors.Is(err, e.err) {
			log.Warn(e.message)
			c.JSON(e.status, gin.H{"error": e.message})
			return
		}
	}

	log.Error("Unexpected error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
