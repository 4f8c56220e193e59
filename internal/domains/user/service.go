package user

import (
	"context"

	"github.com/google/uuid"
)

// MediaKeyLister cho phép user service gom storage keys của một user
// trước khi hard delete (DB rows cascade, object storage cần purge riêng).
// Implemented bởi media repository.
type MediaKeyLister interface {
	ListKeysByUploader(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// Service là business logic contract cho user domain
type Service interface {
	// Auth
	Register(ctx context.Context, req RegisterRequest) (*UserDTO, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*LoginResponse, error)

	// Profile (self)
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error

	// Admin
	List(ctx context.Context, q ListUsersQuery) ([]UserDTO, int64, error)
	UpdateRole(ctx context.Context, actor *User, targetID uuid.UUID, role Role) (*UserDTO, error)
	SetActive(ctx context.Context, actor *User, targetID uuid.UUID, active bool) (*UserDTO, error)
	Delete(ctx context.Context, actor *User, targetID uuid.UUID) error
}
