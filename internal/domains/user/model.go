package user

import (
	"time"

	"github.com/google/uuid"
)

// User là domain entity - ánh xạ 1:1 với bảng users
// Match với migration 000001_init_schema.up.sql
type User struct {
	// Identity
	ID    uuid.UUID `db:"id" json:"id"`
	Email string    `db:"email" json:"email"`

	// Authentication
	PasswordHash string `db:"password_hash" json:"-"` // Never expose in JSON

	// Profile
	Name      string  `db:"name" json:"name"`
	AvatarURL *string `db:"avatar_url" json:"avatar_url,omitempty"`
	Bio       *string `db:"bio" json:"bio,omitempty"`

	// Authorization
	Role Role `db:"role" json:"role"`

	// Soft-disable: account bị khóa vẫn giữ row, chỉ tắt is_active
	IsActive bool `db:"is_active" json:"is_active"`

	// Timestamps
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Role enum - 3 roles theo migration
type Role string

const (
	RoleAdmin  Role = "admin"  // Full system access
	RoleEditor Role = "editor" // Quản lý content + moderation
	RoleAuthor Role = "author" // Viết bài của chính mình
)

// AllRoles returns all valid roles
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleEditor, RoleAuthor}
}

// IsValid kiểm tra role hợp lệ
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleAuthor:
		return true
	}
	return false
}

// String implements Stringer interface
func (r Role) String() string {
	return string(r)
}

// IsAdmin shortcut cho ownership-or-admin checks
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanModerate: chỉ admin/editor được chuyển trạng thái comment
func (u *User) CanModerate() bool {
	return u.Role == RoleAdmin || u.Role == RoleEditor
}

// Sanitize trả về copy đã xóa password hash, dùng khi attach vào
// request context hoặc response.
func (u User) Sanitize() *User {
	u.PasswordHash = ""
	return &u
}
