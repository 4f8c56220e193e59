package tag

import (
	"context"

	"github.com/google/uuid"
)

// Repository là data access contract cho tag domain
type Repository interface {
	Create(ctx context.Context, t *Tag) error
	FindByID(ctx context.Context, id uuid.UUID) (*Tag, error)
	FindBySlug(ctx context.Context, slug string) (*Tag, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)

	// ListWithCounts join sang article_tags, trả về usage count từng tag
	ListWithCounts(ctx context.Context) ([]TagWithCount, error)

	Update(ctx context.Context, t *Tag) error
	Delete(ctx context.Context, id uuid.UUID) error

	// CountArticles cho delete guard
	CountArticles(ctx context.Context, id uuid.UUID) (int64, error)
}
