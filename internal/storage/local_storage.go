package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	apperrors "go-gin-event-ticketing/pkg/app_errors"
	"go-gin-event-ticketing/pkg/logger"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp" // webp decoder
)

// ImageStorage 儲存活動圖片，回傳可公開存取的檔名
type ImageStorage interface {
	SaveImage(ctx context.Context, r io.Reader, originalName string) (string, error)
}

type LocalImageStorageImpl struct {
	dir     string
	maxSize int64
}

func NewLocalImageStorage(dir string, maxSize int64) ImageStorage {
	if maxSize <= 0 {
		maxSize = 10 << 20
	}
	return &LocalImageStorageImpl{dir: dir, maxSize: maxSize}
}

// SaveImage 驗證內容為圖片後寫入 <uuid><ext>
func (s *LocalImageStorageImpl) SaveImage(ctx context.Context, r io.Reader, originalName string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 || int64(len(data)) > s.maxSize {
		return "", apperrors.ErrInvalidUpload
	}

	format := detectFormat(data)
	if format == "" {
		return "", apperrors.ErrInvalidUpload
	}
	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidUpload, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create uploads dir: %w", err)
	}

	fileName := uuid.New().String() + extension(originalName, format)
	path := filepath.Join(s.dir, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	logger.WithComponent("storage").Info("Image uploaded",
		zap.String("path", path),
		zap.Int("size", len(data)),
	)
	return fileName, nil
}

// detectFormat 只接受 jpeg/png/gif/webp；tiff 直接拒絕
func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	switch {
	case strings.Contains(contentType, "tiff"):
		return ""
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}

// extension 沿用原始副檔名，若與內容不符則改用偵測到的格式
func extension(originalName, format string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	switch {
	case format == "jpeg" && (ext == ".jpg" || ext == ".jpeg"):
		return ext
	case ext == "."+format:
		return ext
	case format == "jpeg":
		return ".jpg"
	default:
		return "." + format
	}
}
