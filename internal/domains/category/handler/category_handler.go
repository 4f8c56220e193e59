package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	category "newsroom-backend/internal/domains/category"
	"newsroom-backend/internal/shared/request"
	"newsroom-backend/internal/shared/response"
)

type CategoryHandler struct {
	service category.Service
}

func NewCategoryHandler(service category.Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// Create POST /api/v1/categories (admin/editor)
func (h *CategoryHandler) Create(c *gin.Context) {
	var req category.CreateCategoryRequest
	if !request.BindJSON(c, &req) {
		return
	}

	cat, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Category created", cat)
}

// List GET /api/v1/categories (public, flat)
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", categories)
}

// Tree GET /api/v1/categories/tree (public, nested)
func (h *CategoryHandler) Tree(c *gin.Context) {
	tree, err := h.service.Tree(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", tree)
}

// GetBySlug GET /api/v1/categories/:slug (public)
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	cat, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", cat)
}

// Update PUT /api/v1/categories/:id (admin/editor)
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := request.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req category.UpdateCategoryRequest
	if !request.BindJSON(c, &req) {
		return
	}

	cat, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category updated", cat)
}

// Delete DELETE /api/v1/categories/:id (admin/editor)
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := request.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Category deleted", nil)
}
