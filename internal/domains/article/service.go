package article

import (
	"context"

	"github.com/google/uuid"

	user "newsroom-backend/internal/domains/user"
)

// Service là business logic contract cho article domain.
// actor nil = anonymous request (public read paths).
type Service interface {
	Create(ctx context.Context, actor *user.User, req CreateArticleRequest) (*Article, error)

	// GetByID áp cùng visibility rule với GetBySlug nhưng không
	// tăng view_count - dùng cho edit flow / admin tooling
	GetByID(ctx context.Context, actor *user.User, id uuid.UUID) (*Article, error)

	// GetBySlug public read - increment view_count với published articles
	GetBySlug(ctx context.Context, actor *user.User, slug string) (*Article, error)

	List(ctx context.Context, actor *user.User, q ListArticlesQuery) ([]Article, int64, error)

	Update(ctx context.Context, actor *user.User, id uuid.UUID, req UpdateArticleRequest) (*Article, error)

	// Publish set published_at lần đầu tiên; Archive chỉ từ published
	Publish(ctx context.Context, actor *user.User, id uuid.UUID) (*Article, error)
	Archive(ctx context.Context, actor *user.User, id uuid.UUID) (*Article, error)

	Delete(ctx context.Context, actor *user.User, id uuid.UUID) error
}
