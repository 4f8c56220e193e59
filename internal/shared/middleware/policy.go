package middleware

import (
	"github.com/gin-gonic/gin"

	"newsroom-backend/internal/domains/user"
)

// policyKey định danh một action trên một resource
type policyKey struct {
	Resource string
	Action   string
}

// policyTable là bảng phân quyền khai báo tập trung, keyed theo
// (resource, action) → roles được phép. Router tra bảng này thay vì
// rải role checks ad hoc từng route - dễ audit một chỗ.
//
// Ownership checks (owner-or-admin) vẫn nằm trong service vì cần
// load resource mới biết owner.
var policyTable = map[policyKey][]user.Role{
	{"article", "create"}:  {user.RoleAdmin, user.RoleEditor, user.RoleAuthor},
	{"article", "update"}:  {user.RoleAdmin, user.RoleEditor, user.RoleAuthor},
	{"article", "delete"}:  {user.RoleAdmin, user.RoleEditor, user.RoleAuthor},
	{"article", "publish"}: {user.RoleAdmin, user.RoleEditor},
	{"article", "archive"}: {user.RoleAdmin, user.RoleEditor},

	{"category", "create"}: {user.RoleAdmin, user.RoleEditor},
	{"category", "update"}: {user.RoleAdmin, user.RoleEditor},
	{"category", "delete"}: {user.RoleAdmin},

	{"tag", "create"}: {user.RoleAdmin, user.RoleEditor},
	{"tag", "update"}: {user.RoleAdmin, user.RoleEditor},
	{"tag", "delete"}: {user.RoleAdmin},

	{"comment", "moderate"}: {user.RoleAdmin, user.RoleEditor},
	{"comment", "list_all"}: {user.RoleAdmin, user.RoleEditor},

	{"media", "upload"}: {user.RoleAdmin, user.RoleEditor, user.RoleAuthor},
	{"media", "list"}:   {user.RoleAdmin, user.RoleEditor, user.RoleAuthor},

	{"user", "manage"}: {user.RoleAdmin},
}

// Authorize tra policy table và trả về role gate tương ứng.
// Panic khi (resource, action) chưa khai báo - lỗi wiring, phát hiện lúc boot.
func Authorize(resource, action string) gin.HandlerFunc {
	roles, ok := policyTable[policyKey{resource, action}]
	if !ok {
		panic("policy: no rule for " + resource + "/" + action)
	}
	return RequireRole(roles...)
}
