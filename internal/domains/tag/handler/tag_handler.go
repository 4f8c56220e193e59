package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	tag "newsroom-backend/internal/domains/tag"
	"newsroom-backend/internal/shared/request"
	"newsroom-backend/internal/shared/response"
)

type TagHandler struct {
	service tag.Service
}

func NewTagHandler(service tag.Service) *TagHandler {
	return &TagHandler{service: service}
}

// Create POST /api/v1/tags (admin/editor)
func (h *TagHandler) Create(c *gin.Context) {
	var req tag.CreateTagRequest
	if !request.BindJSON(c, &req) {
		return
	}

	t, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Tag created", t)
}

// List GET /api/v1/tags (public, kèm usage counts)
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.service.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", tags)
}

// GetBySlug GET /api/v1/tags/:slug (public)
func (h *TagHandler) GetBySlug(c *gin.Context) {
	t, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", t)
}

// Update PUT /api/v1/tags/:id (admin/editor)
func (h *TagHandler) Update(c *gin.Context) {
	id, ok := request.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req tag.UpdateTagRequest
	if !request.BindJSON(c, &req) {
		return
	}

	t, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Tag updated", t)
}

// Delete DELETE /api/v1/tags/:id (admin/editor)
func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := request.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Tag deleted", nil)
}
