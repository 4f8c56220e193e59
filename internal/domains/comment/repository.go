package comment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Filter cho moderation listing
type Filter struct {
	Status    *Status
	ArticleID *uuid.UUID
	Limit     int
	Offset    int
}

// Repository là data access contract cho comment domain
type Repository interface {
	Create(ctx context.Context, c *Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Comment, error)

	// ListApprovedByArticle trả về approved comments của bài, flat,
	// order created_at ASC. Nhánh dưới parent không approved bị loại
	// ngay tại query (recursive CTE).
	ListApprovedByArticle(ctx context.Context, articleID uuid.UUID) ([]Comment, error)

	// List cho moderation view, mọi status
	List(ctx context.Context, filter Filter) ([]Comment, int64, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	Delete(ctx context.Context, id uuid.UUID) error

	CountReplies(ctx context.Context, id uuid.UUID) (int64, error)

	// DeleteSpamOlderThan xóa spam comments cũ không còn replies -
	// background cleanup task
	DeleteSpamOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
