package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	user "newsroom-backend/internal/domains/user"
	"newsroom-backend/internal/shared/middleware"
	"newsroom-backend/internal/shared/request"
	"newsroom-backend/internal/shared/response"
	"newsroom-backend/internal/shared/utils"
)

// UserHandler expose auth + profile + admin user management endpoints
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// ========================================
// AUTH ENDPOINTS
// ========================================

// Register POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if !request.BindJSON(c, &req) {
		return
	}

	dto, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Registration successful", dto)
}

// Login POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if !request.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", result)
}

// RefreshToken POST /api/v1/auth/refresh
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req user.RefreshTokenRequest
	if !request.BindJSON(c, &req) {
		return
	}

	result, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Token refreshed", result)
}

// ========================================
// PROFILE ENDPOINTS (authenticated)
// ========================================

// GetProfile GET /api/v1/users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "No token provided")
		return
	}

	dto, err := h.service.GetProfile(c.Request.Context(), current.ID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", dto)
}

// UpdateProfile PUT /api/v1/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "No token provided")
		return
	}

	var req user.UpdateProfileRequest
	if !request.BindJSON(c, &req) {
		return
	}

	dto, err := h.service.UpdateProfile(c.Request.Context(), current.ID, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", dto)
}

// ChangePassword PUT /api/v1/users/me/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "No token provided")
		return
	}

	var req user.ChangePasswordRequest
	if !request.BindJSON(c, &req) {
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), current.ID, req); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Password changed", nil)
}

// ========================================
// ADMIN ENDPOINTS
// ========================================

// List GET /api/v1/users (admin)
func (h *UserHandler) List(c *gin.Context) {
	var q user.ListUsersQuery
	if !request.BindQuery(c, &q) {
		return
	}

	page, limit := utils.NormalizePagination(q.Page, q.Limit)
	q.Page, q.Limit = page, limit

	users, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, users, response.NewPagination(page, limit, total))
}

// UpdateRole PUT /api/v1/users/:id/role (admin)
func (h *UserHandler) UpdateRole(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "No token provided")
		return
	}

	id, ok := request.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req user.UpdateRoleRequest
	if !request.BindJSON(c, &req) {
		return
	}

	dto, err := h.service.UpdateRole(c.Request.Context(), current, id, req.Role)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Role updated", dto)
}

// SetActive PUT /api/v1/users/:id/active (admin)
func (h *UserHandler) SetActive(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "No token provided")
		return
	}

	id, ok := request.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		response.BadRequest(c, "is_active is required")
		return
	}

	dto, err := h.service.SetActive(c.Request.Context(), current, id, *req.IsActive)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User status updated", dto)
}

// Delete DELETE /api/v1/users/:id (admin)
func (h *UserHandler) Delete(c *gin.Context) {
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

	response.Success(c, http.StatusOK, "User deleted", nil)
}
