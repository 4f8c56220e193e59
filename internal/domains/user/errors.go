package user

import (
	"newsroom-backend/internal/shared/apperror"
)

// Sentinel errors của user domain. Mỗi error mang sẵn HTTP status,
// error normalizer map thẳng sang response.
var (
	// ErrUserNotFound: lookup theo id/email không có row
	ErrUserNotFound = apperror.NotFound("User not found")

	// ErrEmailAlreadyExists: unique index idx_users_email
	ErrEmailAlreadyExists = apperror.Conflict("Email already registered")

	// ErrInvalidCredentials: login sai email hoặc password.
	// Không phân biệt hai trường hợp để tránh leak email tồn tại hay không.
	ErrInvalidCredentials = apperror.Unauthorized("Invalid email or password")

	// ErrUserInactive: account bị deactivate. Check cả ở login lẫn
	// authenticate middleware (hai path độc lập, test riêng từng path).
	ErrUserInactive = apperror.Forbidden("account deactivated")

	// ErrInvalidRole: role ngoài {admin, editor, author}
	ErrInvalidRole = apperror.BadRequest("Invalid role")

	// ErrWrongPassword: change-password với current password sai
	ErrWrongPassword = apperror.BadRequest("Current password is incorrect")

	// ErrSelfDeactivate: admin không được tự khóa / tự xóa chính mình
	ErrSelfDeactivate = apperror.BadRequest("Cannot deactivate or delete your own account")
)
