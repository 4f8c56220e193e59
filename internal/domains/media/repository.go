package media

import (
	"context"

	"github.com/google/uuid"
)

// Filter cho list - UploadedBy nil = admin xem tất cả
type Filter struct {
	UploadedBy *uuid.UUID
	Limit      int
	Offset     int
}

// Repository là data access contract cho media domain
type Repository interface {
	Create(ctx context.Context, m *Media) error
	FindByID(ctx context.Context, id uuid.UUID) (*Media, error)
	List(ctx context.Context, filter Filter) ([]Media, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ListKeysByUploader gom storage keys (cả thumbnails) của một user,
	// dùng cho purge khi hard delete user
	ListKeysByUploader(ctx context.Context, userID uuid.UUID) ([]string, error)
}
