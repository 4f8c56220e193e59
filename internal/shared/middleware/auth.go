package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"newsroom-backend/internal/domains/user"
	"newsroom-backend/internal/shared/response"
	"newsroom-backend/pkg/jwt"
)

// ContextUserKey là key chứa *user.User đã authenticate trong gin context
const ContextUserKey = "currentUser"

// UserLoader load user theo id từ decoded claims.
// Interface nhỏ để middleware không phụ thuộc repository package
// và test được với stub.
type UserLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// Authenticate - middleware xác thực bắt buộc.
// FLOW:
// 1. Thiếu/sai format Authorization header → 401 "No token provided"
// 2. Token fail verify (chữ ký/hết hạn) → 401 "Invalid or expired token"
// 3. User không tồn tại → 401 "User not found"
// 4. User inactive → 403 "account deactivated"
// 5. OK → attach user (đã xóa password hash) vào context
func Authenticate(tokens *jwt.Manager, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, status, msg := resolveUser(c, tokens, users)
		if u == nil {
			response.Error(c, status, msg)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, u)
		c.Next()
	}
}

// OptionalAuthenticate - identical happy path, nhưng mọi failure
// đều bị nuốt: request đi tiếp với context anonymous.
// Đây là chỗ DUY NHẤT failure được absorb thay vì propagate.
func OptionalAuthenticate(tokens *jwt.Manager, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if u, _, _ := resolveUser(c, tokens, users); u != nil {
			c.Set(ContextUserKey, u)
		}
		c.Next()
	}
}

// resolveUser chạy chuỗi header → verify → load → active check.
// Trả về (nil, status, message) ở bước fail đầu tiên.
func resolveUser(c *gin.Context, tokens *jwt.Manager, users UserLoader) (*user.User, int, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, 401, "No token provided"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return nil, 401, "No token provided"
	}

	claims, err := tokens.VerifyAccessToken(parts[1])
	if err != nil {
		return nil, 401, "Invalid or expired token"
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, 401, "Invalid or expired token"
	}

	u, err := users.FindByID(c.Request.Context(), userID)
	if err != nil || u == nil {
		return nil, 401, "User not found"
	}

	if !u.IsActive {
		return nil, 403, "account deactivated"
	}

	return u.Sanitize(), 0, ""
}

// CurrentUser lấy user đã authenticate từ context.
// ok = false nghĩa là request anonymous (optional auth hoặc thiếu middleware).
func CurrentUser(c *gin.Context) (*user.User, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	u, ok := v.(*user.User)
	return u, ok
}
