package article

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Filter cho list endpoint
type Filter struct {
	Status     *Status
	CategoryID *uuid.UUID
	TagSlug    string
	AuthorID   *uuid.UUID
	Search     string
	Limit      int
	Offset     int
}

// Repository là data access contract cho article domain
type Repository interface {
	// Create insert article + article_tags trong một transaction
	Create(ctx context.Context, a *Article, tagIDs []uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*Article, error)
	FindBySlug(ctx context.Context, slug string) (*Article, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// Exists theo id - comment service check trước khi nhận comment
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// List trả về (articles, total); count và page query fan-out song song
	List(ctx context.Context, filter Filter) ([]Article, int64, error)

	// Update ghi fields + thay tag set nếu tagIDs non-nil
	Update(ctx context.Context, a *Article, tagIDs *[]uuid.UUID) error

	// SetStatus chuyển trạng thái; publishedAt non-nil set luôn timestamp
	// (chỉ lần publish đầu tiên truyền giá trị)
	SetStatus(ctx context.Context, id uuid.UUID, status Status, publishedAt *time.Time) error

	// IncrementViewCount atomic UPDATE ... SET view_count = view_count + 1
	IncrementViewCount(ctx context.Context, id uuid.UUID) error

	Delete(ctx context.Context, id uuid.UUID) error
}
