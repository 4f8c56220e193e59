package service

import (
	"context"

	"github.com/google/uuid"

	tag "newsroom-backend/internal/domains/tag"
	"newsroom-backend/internal/shared/utils"
)

type tagService struct {
	repo tag.Repository
}

func NewTagService(repo tag.Repository) tag.Service {
	return &tagService{repo: repo}
}

func (s *tagService) Create(ctx context.Context, req tag.CreateTagRequest) (*tag.Tag, error) {
	exists, err := s.repo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, tag.ErrTagExists
	}

	slug, err := utils.UniqueSlug(ctx, req.Name, s.repo.ExistsBySlug)
	if err != nil {
		return nil, err
	}

	t := &tag.Tag{
		Name: req.Name,
		Slug: slug,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *tagService) List(ctx context.Context) ([]tag.TagWithCount, error) {
	return s.repo.ListWithCounts(ctx)
}

func (s *tagService) GetBySlug(ctx context.Context, slug string) (*tag.Tag, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *tagService) Update(ctx context.Context, id uuid.UUID, req tag.UpdateTagRequest) (*tag.Tag, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name == t.Name {
		return t, nil
	}

	exists, err := s.repo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, tag.ErrTagExists
	}

	slug, err := utils.UniqueSlug(ctx, req.Name, func(ctx context.Context, candidate string) (bool, error) {
		if candidate == t.Slug {
			return false, nil
		}
		return s.repo.ExistsBySlug(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}

	t.Name = req.Name
	t.Slug = slug

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// Delete block khi tag còn được articles reference
func (s *tagService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountArticles(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return tag.ErrTagInUse
	}

	return s.repo.Delete(ctx, id)
}
