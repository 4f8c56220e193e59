package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	media "newsroom-backend/internal/domains/media"
	"newsroom-backend/internal/shared/middleware"
	"newsroom-backend/internal/shared/request"
	"newsroom-backend/internal/shared/response"
)

type MediaHandler struct {
	service media.Service
	maxSize int64
}

func NewMediaHandler(service media.Service, maxSize int64) *MediaHandler {
	return &MediaHandler{
		service: service,
		maxSize: maxSize,
	}
}

// Upload POST /api/v1/media (any authenticated role).
// Toàn bộ file buffer in memory trước khi forward sang storage.
// MaxBytesReader chặn body quá lớn ngay khi đọc - lỗi map thành 400
// ở error normalizer.
func (h *MediaHandler) Upload(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "No token provided")
		return
	}

	// +1MB headroom cho multipart framing quanh file
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxSize+1<<20)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.HandleError(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.HandleError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	m, err := h.service.Upload(c.Request.Context(), current, media.UploadInput{
		OriginalName: fileHeader.Filename,
		MimeType:     mimeType,
		Data:         data,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "File uploaded", m)
}

// List GET /api/v1/media (own; admin thấy tất cả)
func (h *MediaHandler) List(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "No token provided")
		return
	}

	page, limit := request.ParsePagination(c)

	items, total, err := h.service.List(c.Request.Context(), current, page, limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, items, response.NewPagination(page, limit, total))
}

// Get GET /api/v1/media/:id
func (h *MediaHandler) Get(c *gin.Context) {
	id, ok := request.ParseIDParam(c, "id")
	if !ok {
		return
	}

	m, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", m)
}

// Delete DELETE /api/v1/media/:id (uploader hoặc admin)
func (h *MediaHandler) Delete(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "No token provided")
		return
	}

	id, ok := request.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), current, id); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Media deleted", nil)
}
