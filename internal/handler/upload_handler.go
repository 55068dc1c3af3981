package handler

import (
	"net/http"

	"go-gin-event-ticketing/internal/middleware"
	"go-gin-event-ticketing/internal/storage"

	"github.com/gin-gonic/gin"
)

// UploadsPath 圖片公開路徑，main 以此掛載靜態檔案
const UploadsPath = "/uploads"

type UploadHandler struct {
	storage storage.ImageStorage
}

func NewUploadHandler(storage storage.ImageStorage) *UploadHandler {
	return &UploadHandler{storage: storage}
}

func (h *UploadHandler) RegisterRoutes(r *gin.RouterGroup, authenticate gin.HandlerFunc) {
	r.POST("/upload", authenticate, middleware.RequireAdmin(), h.Upload)
}

func (h *UploadHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil || header.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	file, err := header.Open()
	if err != nil {
		handleError(c, err, "Upload")
		return
	}
	defer file.Close()

	name, err := h.storage.SaveImage(c, file, header.Filename)
	if err != nil {
		handleError(c, err, "Upload")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": publicURL(c, name)})
}

// publicURL scheme://host/uploads/<name>
func publicURL(c *gin.Context, name string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if forwarded := c.GetHeader("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return scheme + "://" + c.Request.Host + UploadsPath + "/" + name
}
