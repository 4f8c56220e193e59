package category

import (
	"context"

	"github.com/google/uuid"
)

// Repository là data access contract cho category domain
type Repository interface {
	Create(ctx context.Context, cat *Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// ListAll trả về toàn bộ categories, sort theo name.
	// Bảng category nhỏ nên không phân trang.
	ListAll(ctx context.Context) ([]Category, error)

	Update(ctx context.Context, cat *Category) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Counts cho delete guard
	CountChildren(ctx context.Context, id uuid.UUID) (int64, error)
	CountArticles(ctx context.Context, id uuid.UUID) (int64, error)
}
