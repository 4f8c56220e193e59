package middleware

import (
	"github.com/gin-gonic/gin"

	"newsroom-backend/internal/domains/user"
	"newsroom-backend/internal/shared/response"
)

// RequireRole pass nếu user role nằm trong allowed set.
// Phải chạy SAU Authenticate; nếu không có user trong context
// (middleware order sai) → 401 defensive thay vì panic.
func RequireRole(allowed ...user.Role) gin.HandlerFunc {
	allowedSet := make(map[user.Role]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		if _, allowed := allowedSet[u.Role]; !allowed {
			response.Forbidden(c, "Access denied: insufficient role")
			c.Abort()
			return
		}

		c.Next()
	}
}

// Convenience compositions dùng trong router

// AdminOnly - chỉ admin
func AdminOnly() gin.HandlerFunc {
	return RequireRole(user.RoleAdmin)
}

// AdminOrEditor - content moderation actions
func AdminOrEditor() gin.HandlerFunc {
	return RequireRole(user.RoleAdmin, user.RoleEditor)
}

// AnyRole - mọi user đã authenticate (content producer actions)
func AnyRole() gin.HandlerFunc {
	return RequireRole(user.AllRoles()...)
}
