package tag

import (
	"context"

	"github.com/google/uuid"
)

// Service là business logic contract cho tag domain
type Service interface {
	Create(ctx context.Context, req CreateTagRequest) (*Tag, error)
	List(ctx context.Context) ([]TagWithCount, error)
	GetBySlug(ctx context.Context, slug string) (*Tag, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateTagRequest) (*Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
