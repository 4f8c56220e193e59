package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	category "newsroom-backend/internal/domains/category"
	"newsroom-backend/internal/shared/utils"
	"newsroom-backend/pkg/cache"
)

const (
	treeCacheKey = "categories:tree"
	treeCacheTTL = 30 * time.Minute
)

type categoryService struct {
	repo  category.Repository
	cache cache.Cache
}

// NewCategoryService - tree cache invalidate trên mọi write path
func NewCategoryService(repo category.Repository, cache cache.Cache) category.Service {
	return &categoryService{
		repo:  repo,
		cache: cache,
	}
}

func (s *categoryService) Create(ctx context.Context, req category.CreateCategoryRequest) (*category.Category, error) {
	slug, err := utils.UniqueSlug(ctx, req.Name, s.repo.ExistsBySlug)
	if err != nil {
		return nil, err
	}

	cat := &category.Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
	}

	if req.ParentID != nil && *req.ParentID != "" {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			return nil, category.ErrParentNotFound
		}
		// Verify parent tồn tại để trả 400 rõ ràng thay vì FK error
		if _, err := s.repo.FindByID(ctx, parentID); err != nil {
			return nil, category.ErrParentNotFound
		}
		cat.ParentID = &parentID
	}

	if err := s.repo.Create(ctx, cat); err != nil {
		return nil, err
	}

	s.invalidateTree(ctx)

	return cat, nil
}

func (s *categoryService) List(ctx context.Context) ([]category.Category, error) {
	return s.repo.ListAll(ctx)
}

// Tree cache-aside: đọc redis trước, miss thì build từ DB rồi set lại
func (s *categoryService) Tree(ctx context.Context) ([]*category.Node, error) {
	var tree []*category.Node
	if found, err := s.cache.Get(ctx, treeCacheKey, &tree); err == nil && found {
		return tree, nil
	}

	categories, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	tree = category.BuildTree(categories)

	if err := s.cache.Set(ctx, treeCacheKey, tree, treeCacheTTL); err != nil {
		log.Warn().Err(err).Msg("failed to cache category tree")
	}

	return tree, nil
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req category.UpdateCategoryRequest) (*category.Category, error) {
	cat, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != cat.Name {
		cat.Name = *req.Name
		// Name đổi -> slug regenerate (cùng rule với article title)
		slug, err := utils.UniqueSlug(ctx, cat.Name, func(ctx context.Context, candidate string) (bool, error) {
			if candidate == cat.Slug {
				return false, nil // slug hiện tại của chính nó không tính là taken
			}
			return s.repo.ExistsBySlug(ctx, candidate)
		})
		if err != nil {
			return nil, err
		}
		cat.Slug = slug
	}

	if req.Description != nil {
		cat.Description = req.Description
	}

	if req.ParentID != nil {
		if *req.ParentID == "" {
			// Empty string = move lên root
			cat.ParentID = nil
		} else {
			parentID, err := uuid.Parse(*req.ParentID)
			if err != nil {
				return nil, category.ErrParentNotFound
			}
			if parentID == cat.ID {
				return nil, category.ErrSelfParent
			}
			if _, err := s.repo.FindByID(ctx, parentID); err != nil {
				return nil, category.ErrParentNotFound
			}
			cat.ParentID = &parentID
		}
	}

	if err := s.repo.Update(ctx, cat); err != nil {
		return nil, err
	}

	s.invalidateTree(ctx)

	return cat, nil
}

// Delete bị block khi category còn children hoặc articles
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	children, err := s.repo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return category.ErrHasChildren
	}

	articles, err := s.repo.CountArticles(ctx, id)
	if err != nil {
		return err
	}
	if articles > 0 {
		return category.ErrHasArticles
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateTree(ctx)

	return nil
}

func (s *categoryService) invalidateTree(ctx context.Context) {
	if err := s.cache.Delete(ctx, treeCacheKey); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate category tree cache")
	}
}
