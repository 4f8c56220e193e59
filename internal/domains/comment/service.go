package comment

import (
	"context"

	"github.com/google/uuid"

	user "newsroom-backend/internal/domains/user"
)

// ArticleChecker verify bài tồn tại trước khi nhận comment.
// Interface nhỏ để không import article repository trực tiếp.
type ArticleChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service là business logic contract cho comment domain.
// actor nil = guest.
type Service interface {
	Create(ctx context.Context, actor *user.User, req CreateCommentRequest) (*Comment, error)

	// ListByArticle public - approved only, replies nested
	ListByArticle(ctx context.Context, articleID uuid.UUID) ([]*Comment, error)

	// ListAll moderation view (admin/editor route)
	ListAll(ctx context.Context, q ListCommentsQuery) ([]Comment, int64, error)

	// Moderation transitions - chỉ từ pending
	Approve(ctx context.Context, id uuid.UUID) (*Comment, error)
	Reject(ctx context.Context, id uuid.UUID) (*Comment, error)
	MarkSpam(ctx context.Context, id uuid.UUID) (*Comment, error)

	// Delete owner-or-admin, block khi còn replies
	Delete(ctx context.Context, actor *user.User, id uuid.UUID) error
}
