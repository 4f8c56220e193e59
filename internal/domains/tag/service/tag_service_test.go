package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tag "newsroom-backend/internal/domains/tag"
)

type mockTagRepo struct {
	tags          map[uuid.UUID]*tag.Tag
	articleCounts map[uuid.UUID]int64
}

func newMockTagRepo() *mockTagRepo {
	return &mockTagRepo{
		tags:          map[uuid.UUID]*tag.Tag{},
		articleCounts: map[uuid.UUID]int64{},
	}
}

func (m *mockTagRepo) Create(ctx context.Context, t *tag.Tag) error {
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	clone := *t
	m.tags[t.ID] = &clone
	return nil
}

func (m *mockTagRepo) FindByID(ctx context.Context, id uuid.UUID) (*tag.Tag, error) {
	if t, ok := m.tags[id]; ok {
		clone := *t
		return &clone, nil
	}
	return nil, tag.ErrTagNotFound
}

func (m *mockTagRepo) FindBySlug(ctx context.Context, slug string) (*tag.Tag, error) {
	for _, t := range m.tags {
		if t.Slug == slug {
			clone := *t
			return &clone, nil
		}
	}
	return nil, tag.ErrTagNotFound
}

func (m *mockTagRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	_, err := m.FindBySlug(ctx, slug)
	return err == nil, nil
}

// Case-insensitive như LOWER() match ở SQL
func (m *mockTagRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	for _, t := range m.tags {
		if strings.EqualFold(t.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTagRepo) ListWithCounts(ctx context.Context) ([]tag.TagWithCount, error) {
	out := make([]tag.TagWithCount, 0, len(m.tags))
	for id, t := range m.tags {
		out = append(out, tag.TagWithCount{Tag: *t, ArticleCount: m.articleCounts[id]})
	}
	return out, nil
}

func (m *mockTagRepo) Update(ctx context.Context, t *tag.Tag) error {
	if _, ok := m.tags[t.ID]; !ok {
		return tag.ErrTagNotFound
	}
	clone := *t
	m.tags[t.ID] = &clone
	return nil
}

func (m *mockTagRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.tags[id]; !ok {
		return tag.ErrTagNotFound
	}
	delete(m.tags, id)
	return nil
}

func (m *mockTagRepo) CountArticles(ctx context.Context, id uuid.UUID) (int64, error) {
	return m.articleCounts[id], nil
}

func TestCreateTag(t *testing.T) {
	repo := newMockTagRepo()
	svc := NewTagService(repo)

	created, err := svc.Create(context.Background(), tag.CreateTagRequest{Name: "Breaking News"})
	require.NoError(t, err)
	assert.Equal(t, "breaking-news", created.Slug)
}

func TestCreateTagDuplicateNameCaseInsensitive(t *testing.T) {
	repo := newMockTagRepo()
	svc := NewTagService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, tag.CreateTagRequest{Name: "Golang"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, tag.CreateTagRequest{Name: "golang"})
	assert.ErrorIs(t, err, tag.ErrTagExists)
}

func TestUpdateTagSameNameNoOp(t *testing.T) {
	repo := newMockTagRepo()
	svc := NewTagService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, tag.CreateTagRequest{Name: "Economy"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, tag.UpdateTagRequest{Name: "Economy"})
	require.NoError(t, err)
	assert.Equal(t, created.Slug, updated.Slug)
}

func TestUpdateTagRename(t *testing.T) {
	repo := newMockTagRepo()
	svc := NewTagService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, tag.CreateTagRequest{Name: "Tech"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, tag.UpdateTagRequest{Name: "Technology"})
	require.NoError(t, err)
	assert.Equal(t, "Technology", updated.Name)
	assert.Equal(t, "technology", updated.Slug)
}

func TestUpdateTagNameTakenByOther(t *testing.T) {
	repo := newMockTagRepo()
	svc := NewTagService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, tag.CreateTagRequest{Name: "Sports"})
	require.NoError(t, err)

	other, err := svc.Create(ctx, tag.CreateTagRequest{Name: "Culture"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, other.ID, tag.UpdateTagRequest{Name: "Sports"})
	assert.ErrorIs(t, err, tag.ErrTagExists)
}

func TestDeleteTagInUse(t *testing.T) {
	repo := newMockTagRepo()
	svc := NewTagService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, tag.CreateTagRequest{Name: "Pinned"})
	require.NoError(t, err)
	repo.articleCounts[created.ID] = 2

	err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, tag.ErrTagInUse)

	// Hết reference thì xóa được
	repo.articleCounts[created.ID] = 0
	require.NoError(t, svc.Delete(ctx, created.ID))
}
