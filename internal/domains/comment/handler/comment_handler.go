package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	comment "newsroom-backend/internal/domains/comment"
	"newsroom-backend/internal/shared/middleware"
	"newsroom-backend/internal/shared/request"
	"newsroom-backend/internal/shared/response"
	"newsroom-backend/internal/shared/utils"
)

type CommentHandler struct {
	service comment.Service
}

func NewCommentHandler(service comment.Service) *CommentHandler {
	return &CommentHandler{service: service}
}

// Create POST /api/v1/comments (optional auth - guest được phép)
func (h *CommentHandler) Create(c *gin.Context) {
	var req comment.CreateCommentRequest
	if !request.BindJSON(c, &req) {
		return
	}

	current, _ := middleware.CurrentUser(c)

	created, err := h.service.Create(c.Request.Context(), current, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Comment submitted for moderation", created)
}

// ListByArticle GET /api/v1/articles/:id/comments (public)
func (h *CommentHandler) ListByArticle(c *gin.Context) {
	articleID, ok := request.ParseIDParam(c, "id")
	if !ok {
		return
	}

	thread, err := h.service.ListByArticle(c.Request.Context(), articleID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", thread)
}

// ListAll GET /api/v1/comments (admin/editor moderation view)
func (h *CommentHandler) ListAll(c *gin.Context) {
	var q comment.ListCommentsQuery
	if !request.BindQuery(c, &q) {
		return
	}

	page, limit := utils.NormalizePagination(q.Page, q.Limit)
	q.Page, q.Limit = page, limit

	comments, total, err := h.service.ListAll(c.Request.Context(), q)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, comments, response.NewPagination(page, limit, total))
}

// Approve PATCH /api/v1/comments/:id/approve (admin/editor)
func (h *CommentHandler) Approve(c *gin.Context) {
	h.moderate(c, h.service.Approve, "Comment approved")
}

// Reject PATCH /api/v1/comments/:id/reject (admin/editor)
func (h *CommentHandler) Reject(c *gin.Context) {
	h.moderate(c, h.service.Reject, "Comment rejected")
}

// MarkSpam PATCH /api/v1/comments/:id/spam (admin/editor)
func (h *CommentHandler) MarkSpam(c *gin.Context) {
	h.moderate(c, h.service.MarkSpam, "Comment marked as spam")
}

func (h *CommentHandler) moderate(
	c *gin.Context,
	action func(ctx context.Context, id uuid.UUID) (*comment.Comment, error),
	message string,
) {
	id, ok := request.ParseIDParam(c, "id")
	if !ok {
		return
	}

	moderated, err := action(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, message, moderated)
}

// Delete DELETE /api/v1/comments/:id (owner hoặc admin)
func (h *CommentHandler) Delete(c *gin.Context) {
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

	response.Success(c, http.StatusOK, "Comment deleted", nil)
}
