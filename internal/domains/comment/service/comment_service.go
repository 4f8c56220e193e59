package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	comment "newsroom-backend/internal/domains/comment"
	user "newsroom-backend/internal/domains/user"
	"newsroom-backend/internal/shared/utils"
)

type commentService struct {
	repo     comment.Repository
	articles comment.ArticleChecker
}

func NewCommentService(repo comment.Repository, articles comment.ArticleChecker) comment.Service {
	return &commentService{
		repo:     repo,
		articles: articles,
	}
}

// Create - authenticated user hoặc guest. Guest bắt buộc name + email.
// Reply phải trỏ tới parent cùng bài. Status luôn pending lúc tạo.
func (s *commentService) Create(ctx context.Context, actor *user.User, req comment.CreateCommentRequest) (*comment.Comment, error) {
	articleID, err := uuid.Parse(req.ArticleID)
	if err != nil {
		return nil, comment.ErrArticleNotFound
	}

	exists, err := s.articles.Exists(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, comment.ErrArticleNotFound
	}

	c := &comment.Comment{
		ArticleID: articleID,
		Content:   req.Content,
		Status:    comment.StatusPending,
	}

	if actor != nil {
		c.UserID = &actor.ID
	} else {
		if req.AuthorName == nil || *req.AuthorName == "" ||
			req.AuthorEmail == nil || *req.AuthorEmail == "" {
			return nil, comment.ErrGuestIdentityRequired
		}
		c.AuthorName = req.AuthorName
		c.AuthorEmail = req.AuthorEmail
	}

	if req.ParentID != nil && *req.ParentID != "" {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			return nil, comment.ErrParentNotFound
		}

		parent, err := s.repo.FindByID(ctx, parentID)
		if err != nil {
			return nil, comment.ErrParentNotFound
		}
		if parent.ArticleID != articleID {
			return nil, comment.ErrParentMismatch
		}
		c.ParentID = &parentID
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	log.Info().
		Str("comment_id", c.ID.String()).
		Str("article_id", articleID.String()).
		Bool("guest", c.IsGuest()).
		Msg("comment created")

	return s.repo.FindByID(ctx, c.ID)
}

// ListByArticle public - approved only, nested thread
func (s *commentService) ListByArticle(ctx context.Context, articleID uuid.UUID) ([]*comment.Comment, error) {
	flat, err := s.repo.ListApprovedByArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}

	return comment.BuildThread(flat), nil
}

// ListAll moderation view
func (s *commentService) ListAll(ctx context.Context, q comment.ListCommentsQuery) ([]comment.Comment, int64, error) {
	page, limit := utils.NormalizePagination(q.Page, q.Limit)

	filter := comment.Filter{
		Limit:  limit,
		Offset: utils.Offset(page, limit),
	}

	if q.Status != "" {
		st := comment.Status(q.Status)
		filter.Status = &st
	}

	if q.ArticleID != "" {
		if id, err := uuid.Parse(q.ArticleID); err == nil {
			filter.ArticleID = &id
		}
	}

	return s.repo.List(ctx, filter)
}

func (s *commentService) Approve(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	return s.moderate(ctx, id, comment.StatusApproved)
}

func (s *commentService) Reject(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	return s.moderate(ctx, id, comment.StatusRejected)
}

func (s *commentService) MarkSpam(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	return s.moderate(ctx, id, comment.StatusSpam)
}

// moderate - exit chỉ từ pending; approved/rejected/spam là terminal
func (s *commentService) moderate(ctx context.Context, id uuid.UUID, next comment.Status) (*comment.Comment, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.Status != comment.StatusPending {
		return nil, comment.ErrAlreadyModerated
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}

	log.Info().
		Str("comment_id", id.String()).
		Str("status", next.String()).
		Msg("comment moderated")

	c.Status = next
	return c, nil
}

// Delete owner-or-admin; block khi còn replies (mọi role)
func (s *commentService) Delete(ctx context.Context, actor *user.User, id uuid.UUID) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	isOwner := actor != nil && c.UserID != nil && *c.UserID == actor.ID
	if !isOwner && (actor == nil || !actor.IsAdmin()) {
		return comment.ErrNotOwner
	}

	replies, err := s.repo.CountReplies(ctx, id)
	if err != nil {
		return err
	}
	if replies > 0 {
		return comment.ErrHasReplies
	}

	return s.repo.Delete(ctx, id)
}
