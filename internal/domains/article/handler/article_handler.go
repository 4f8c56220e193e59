package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	article "newsroom-backend/internal/domains/article"
	"newsroom-backend/internal/shared/middleware"
	"newsroom-backend/internal/shared/request"
	"newsroom-backend/internal/shared/response"
	"newsroom-backend/internal/shared/utils"
)

type ArticleHandler struct {
	service article.Service
}

func NewArticleHandler(service article.Service) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// Create POST /api/v1/articles (any authenticated role)
func (h *ArticleHandler) Create(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "No token provided")
		return
	}

	var req article.CreateArticleRequest
	if !request.BindJSON(c, &req) {
		return
	}

	a, err := h.service.Create(c.Request.Context(), current, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Article created", a)
}

// List GET /api/v1/articles (public + optional auth mở rộng visibility)
func (h *ArticleHandler) List(c *gin.Context) {
	var q article.ListArticlesQuery
	if !request.BindQuery(c, &q) {
		return
	}

	current, _ := middleware.CurrentUser(c)

	page, limit := utils.NormalizePagination(q.Page, q.Limit)
	q.Page, q.Limit = page, limit

	articles, total, err := h.service.List(c.Request.Context(), current, q)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, articles, response.NewPagination(page, limit, total))
}

// GetByID GET /api/v1/articles/:id (public, optional auth)
func (h *ArticleHandler) GetByID(c *gin.Context) {
	id, ok := request.ParseIDParam(c, "id")
	if !ok {
		return
	}

	current, _ := middleware.CurrentUser(c)

	a, err := h.service.GetByID(c.Request.Context(), current, id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", a)
}

// GetBySlug GET /api/v1/articles/slug/:slug (public, optional auth)
func (h *ArticleHandler) GetBySlug(c *gin.Context) {
	current, _ := middleware.CurrentUser(c)

	a, err := h.service.GetBySlug(c.Request.Context(), current, c.Param("slug"))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", a)
}

// Update PUT /api/v1/articles/:id (owner hoặc admin/editor)
func (h *ArticleHandler) Update(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "No token provided")
		return
	}

	id, ok := request.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req article.UpdateArticleRequest
	if !request.BindJSON(c, &req) {
		return
	}

	a, err := h.service.Update(c.Request.Context(), current, id, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Article updated", a)
}

// Publish PATCH /api/v1/articles/:id/publish
func (h *ArticleHandler) Publish(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "No token provided")
		return
	}

	id, ok := request.ParseIDParam(c, "id")
	if !ok {
		return
	}

	a, err := h.service.Publish(c.Request.Context(), current, id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Article published", a)
}

// Archive PATCH /api/v1/articles/:id/archive
func (h *ArticleHandler) Archive(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "No token provided")
		return
	}

	id, ok := request.ParseIDParam(c, "id")
	if !ok {
		return
	}

	a, err := h.service.Archive(c.Request.Context(), current, id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Article archived", a)
}

// Delete DELETE /api/v1/articles/:id (owner hoặc admin/editor)
func (h *ArticleHandler) Delete(c *gin.Context) {
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

	response.Success(c, http.StatusOK, "Article deleted", nil)
}
