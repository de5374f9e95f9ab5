package handlers

import (
	"Watchlist/internal/config"
	"Watchlist/internal/middleware"
	"Watchlist/internal/storage"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// допустимые форматы изображений и расширения для имени файла
var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadHandler загрузка постеров и аватаров.
type UploadHandler struct {
	Storage storage.Storage
	Logger  *zap.SugaredLogger
	Config  *config.Config
}

// NewUploadHandler создаёт хендлер загрузки
func NewUploadHandler(store storage.Storage, logger *zap.SugaredLogger, cfg *config.Config) *UploadHandler {
	return &UploadHandler{Storage: store, Logger: logger, Config: cfg}
}

// UploadImage принимает multipart-поле "image" и возвращает {imageUrl}
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	maxFile := int64(h.Config.UploadMaxMB) << 20
	// запас на заголовки multipart
	r.Body = http.MaxBytesReader(w, r.Body, maxFile+1<<20)

	if err := r.ParseMultipartForm(maxFile); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File must not exceed %dMB", h.Config.UploadMaxMB))
			return
		}
		h.Logger.Warnw("UploadImage: invalid multipart form", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if header.Size > maxFile {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File must not exceed %dMB", h.Config.UploadMaxMB))
		return
	}

	// тип определяем по содержимому, а не по имени файла
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		writeError(w, http.StatusBadRequest, "Empty file")
		return
	}
	head = head[:n]
	contentType := http.DetectContentType(head)
	ext, ok := imageTypes[contentType]
	if !ok {
		writeError(w, http.StatusBadRequest, "Only JPEG, PNG, GIF and WebP images are allowed")
		return
	}

	name := uuid.New().String() + ext
	url, err := h.Storage.Save(r.Context(), name, contentType, io.MultiReader(bytes.NewReader(head), file))
	if err != nil {
		h.Logger.Errorw("UploadImage: storage error", "user_id", userID, "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	h.Logger.Infow("image uploaded", "user_id", userID, "url", url, "size", header.Size)
	writeJSON(w, http.StatusOK, map[string]string{"imageUrl": url})
}
