package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"newsroom-backend/internal/domains/user"
)

func runWithRole(role user.Role, attach bool, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/resource",
		func(c *gin.Context) {
			if attach {
				c.Set(ContextUserKey, &user.User{ID: uuid.New(), Role: role, IsActive: true})
			}
			c.Next()
		},
		handler,
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource", nil))
	return w
}

func TestRequireRoleAllowed(t *testing.T) {
	w := runWithRole(user.RoleAdmin, true, RequireRole(user.RoleAdmin, user.RoleEditor))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleForbidden(t *testing.T) {
	w := runWithRole(user.RoleAuthor, true, RequireRole(user.RoleAdmin, user.RoleEditor))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient role")
}

// Middleware order sai (không có Authenticate trước) → 401 chứ không panic
func TestRequireRoleMissingUser(t *testing.T) {
	w := runWithRole(user.RoleAdmin, false, RequireRole(user.RoleAdmin))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorizePolicyTable(t *testing.T) {
	tests := []struct {
		name     string
		resource string
		action   string
		role     user.Role
		want     int
	}{
		{"author can create article", "article", "create", user.RoleAuthor, http.StatusOK},
		{"author cannot publish", "article", "publish", user.RoleAuthor, http.StatusForbidden},
		{"editor can publish", "article", "publish", user.RoleEditor, http.StatusOK},
		{"editor cannot delete category", "category", "delete", user.RoleEditor, http.StatusForbidden},
		{"admin deletes tag", "tag", "delete", user.RoleAdmin, http.StatusOK},
		{"editor moderates comments", "comment", "moderate", user.RoleEditor, http.StatusOK},
		{"author cannot manage users", "user", "manage", user.RoleAuthor, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := runWithRole(tt.role, true, Authorize(tt.resource, tt.action))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestAuthorizeUnknownRulePanics(t *testing.T) {
	assert.Panics(t, func() {
		Authorize("article", "teleport")
	})
}
