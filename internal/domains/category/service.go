package category

import (
	"context"

	"github.com/google/uuid"
)

// Service là business logic contract cho category domain
type Service interface {
	Create(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	List(ctx context.Context) ([]Category, error)

	// Tree trả về forest với children nested; cached trong redis
	Tree(ctx context.Context) ([]*Node, error)

	GetBySlug(ctx context.Context, slug string) (*Category, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
