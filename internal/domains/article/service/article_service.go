package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	article "newsroom-backend/internal/domains/article"
	user "newsroom-backend/internal/domains/user"
	"newsroom-backend/internal/shared/utils"
)

type articleService struct {
	repo article.Repository
}

func NewArticleService(repo article.Repository) article.Service {
	return &articleService{repo: repo}
}

// canModify: owner hoặc admin/editor
func canModify(actor *user.User, a *article.Article) bool {
	if actor == nil {
		return false
	}
	return actor.ID == a.AuthorID || actor.IsAdmin() || actor.Role == user.RoleEditor
}

func (s *articleService) Create(ctx context.Context, actor *user.User, req article.CreateArticleRequest) (*article.Article, error) {
	slug, err := utils.UniqueSlug(ctx, req.Title, s.repo.ExistsBySlug)
	if err != nil {
		return nil, err
	}

	a := &article.Article{
		Title:         req.Title,
		Slug:          slug,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		AuthorID:      actor.ID,
		Status:        article.StatusDraft,
	}

	if req.CategoryID != nil && *req.CategoryID != "" {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, article.ErrCategoryNotFound
		}
		a.CategoryID = &categoryID
	}

	tagIDs, err := parseTagIDs(req.TagIDs)
	if err != nil {
		return nil, err
	}

	// FK violations (category/tag không tồn tại) map ở repository
	if err := s.repo.Create(ctx, a, tagIDs); err != nil {
		return nil, err
	}

	log.Info().
		Str("article_id", a.ID.String()).
		Str("slug", a.Slug).
		Str("author_id", actor.ID.String()).
		Msg("article created")

	return s.repo.FindByID(ctx, a.ID)
}

func parseTagIDs(raw []string) ([]uuid.UUID, error) {
	tagIDs := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, article.ErrTagNotFound
		}
		tagIDs = append(tagIDs, id)
	}
	return tagIDs, nil
}

// GetByID - cùng visibility với GetBySlug (non-published chỉ owner và
// admin/editor thấy) nhưng không đụng view_count: đọc theo id là
// edit flow, không phải lượt xem thật.
func (s *articleService) GetByID(ctx context.Context, actor *user.User, id uuid.UUID) (*article.Article, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if a.Status != article.StatusPublished && !canModify(actor, a) {
		return nil, article.ErrArticleNotFound
	}

	return a, nil
}

// GetBySlug - public read path. Bài chưa published chỉ owner hoặc
// admin/editor thấy được, người khác nhận 404 (không leak tồn tại).
// View count chỉ tăng với published articles.
func (s *articleService) GetBySlug(ctx context.Context, actor *user.User, slug string) (*article.Article, error) {
	a, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if a.Status != article.StatusPublished {
		if !canModify(actor, a) {
			return nil, article.ErrArticleNotFound
		}
		return a, nil
	}

	// Increment best-effort - đọc bài không được fail vì counter
	if err := s.repo.IncrementViewCount(ctx, a.ID); err != nil {
		log.Warn().Err(err).Str("article_id", a.ID.String()).Msg("failed to increment view count")
	} else {
		a.ViewCount++
	}

	return a, nil
}

// List - anonymous chỉ thấy published; author thấy thêm bài của mình
// ở mọi status; admin/editor thấy tất cả theo filter
func (s *articleService) List(ctx context.Context, actor *user.User, q article.ListArticlesQuery) ([]article.Article, int64, error) {
	page, limit := utils.NormalizePagination(q.Page, q.Limit)

	filter := article.Filter{
		TagSlug: q.Tag,
		Search:  q.Search,
		Limit:   limit,
		Offset:  utils.Offset(page, limit),
	}

	if q.CategoryID != "" {
		id, err := uuid.Parse(q.CategoryID)
		if err == nil {
			filter.CategoryID = &id
		}
	}

	if q.AuthorID != "" {
		id, err := uuid.Parse(q.AuthorID)
		if err == nil {
			filter.AuthorID = &id
		}
	}

	published := article.StatusPublished

	switch {
	case actor == nil:
		// Public listing: luôn force published, bỏ qua status param
		filter.Status = &published
	case actor.IsAdmin() || actor.Role == user.RoleEditor:
		if q.Status != "" {
			st := article.Status(q.Status)
			filter.Status = &st
		}
	default:
		// Author: default listing chỉ published (như anonymous);
		// xin non-published thì scope về bài của chính mình
		if q.Status != "" && q.Status != string(article.StatusPublished) {
			st := article.Status(q.Status)
			filter.Status = &st
			filter.AuthorID = &actor.ID
		} else {
			filter.Status = &published
		}
	}

	return s.repo.List(ctx, filter)
}

func (s *articleService) Update(ctx context.Context, actor *user.User, id uuid.UUID, req article.UpdateArticleRequest) (*article.Article, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canModify(actor, a) {
		return nil, article.ErrNotOwner
	}

	if req.Title != nil && *req.Title != a.Title {
		a.Title = *req.Title
		// Title đổi -> slug regenerate, slug hiện tại exclude khỏi check
		slug, err := utils.UniqueSlug(ctx, a.Title, func(ctx context.Context, candidate string) (bool, error) {
			if candidate == a.Slug {
				return false, nil
			}
			return s.repo.ExistsBySlug(ctx, candidate)
		})
		if err != nil {
			return nil, err
		}
		a.Slug = slug
	}

	if req.Content != nil {
		a.Content = *req.Content
	}
	if req.Excerpt != nil {
		a.Excerpt = req.Excerpt
	}
	if req.FeaturedImage != nil {
		a.FeaturedImage = req.FeaturedImage
	}

	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			a.CategoryID = nil
		} else {
			categoryID, err := uuid.Parse(*req.CategoryID)
			if err != nil {
				return nil, article.ErrCategoryNotFound
			}
			a.CategoryID = &categoryID
		}
	}

	var tagIDs *[]uuid.UUID
	if req.TagIDs != nil {
		parsed, err := parseTagIDs(*req.TagIDs)
		if err != nil {
			return nil, err
		}
		tagIDs = &parsed
	}

	if err := s.repo.Update(ctx, a, tagIDs); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, a.ID)
}

// Publish chuyển sang published. published_at chỉ set lần đầu -
// archive rồi publish lại giữ nguyên timestamp gốc.
func (s *articleService) Publish(ctx context.Context, actor *user.User, id uuid.UUID) (*article.Article, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canModify(actor, a) {
		return nil, article.ErrNotOwner
	}

	if a.Status == article.StatusPublished {
		return nil, article.ErrAlreadyPublished
	}

	var publishedAt *time.Time
	if a.PublishedAt == nil {
		now := time.Now()
		publishedAt = &now
	}

	if err := s.repo.SetStatus(ctx, id, article.StatusPublished, publishedAt); err != nil {
		return nil, err
	}

	log.Info().
		Str("article_id", id.String()).
		Str("actor_id", actor.ID.String()).
		Msg("article published")

	return s.repo.FindByID(ctx, id)
}

// Archive chỉ từ published
func (s *articleService) Archive(ctx context.Context, actor *user.User, id uuid.UUID) (*article.Article, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canModify(actor, a) {
		return nil, article.ErrNotOwner
	}

	if a.Status != article.StatusPublished {
		return nil, article.ErrNotPublished
	}

	if err := s.repo.SetStatus(ctx, id, article.StatusArchived, nil); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

func (s *articleService) Delete(ctx context.Context, actor *user.User, id uuid.UUID) error {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !canModify(actor, a) {
		return article.ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().
		Str("article_id", id.String()).
		Str("actor_id", actor.ID.String()).
		Msg("article deleted")

	return nil
}
