package user

import (
	"context"

	"github.com/google/uuid"
)

// Filter cho admin list users
type Filter struct {
	Role     *Role
	IsActive *bool
	Search   string // match theo name hoặc email
	Limit    int
	Offset   int
}

// Repository là data access contract cho user domain
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List trả về (users, total) - count và page query chạy song song
	List(ctx context.Context, filter Filter) ([]User, int64, error)

	Update(ctx context.Context, u *User) error
	UpdateRole(ctx context.Context, id uuid.UUID, role Role) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error

	// Delete hard delete; articles/media của user cascade theo FK
	Delete(ctx context.Context, id uuid.UUID) error
}
