package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	article "newsroom-backend/internal/domains/article"
	user "newsroom-backend/internal/domains/user"
)

// mockArticleRepo - in-memory Repository, đủ semantics cho service tests
type mockArticleRepo struct {
	articles map[uuid.UUID]*article.Article
	tags     map[uuid.UUID][]uuid.UUID
}

func newMockArticleRepo() *mockArticleRepo {
	return &mockArticleRepo{
		articles: map[uuid.UUID]*article.Article{},
		tags:     map[uuid.UUID][]uuid.UUID{},
	}
}

func (m *mockArticleRepo) Create(ctx context.Context, a *article.Article, tagIDs []uuid.UUID) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	clone := *a
	m.articles[a.ID] = &clone
	m.tags[a.ID] = tagIDs
	return nil
}

func (m *mockArticleRepo) FindByID(ctx context.Context, id uuid.UUID) (*article.Article, error) {
	if a, ok := m.articles[id]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, article.ErrArticleNotFound
}

func (m *mockArticleRepo) FindBySlug(ctx context.Context, slug string) (*article.Article, error) {
	for _, a := range m.articles {
		if a.Slug == slug {
			clone := *a
			return &clone, nil
		}
	}
	return nil, article.ErrArticleNotFound
}

func (m *mockArticleRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	_, err := m.FindBySlug(ctx, slug)
	return err == nil, nil
}

func (m *mockArticleRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.articles[id]
	return ok, nil
}

func (m *mockArticleRepo) List(ctx context.Context, filter article.Filter) ([]article.Article, int64, error) {
	out := make([]article.Article, 0)
	for _, a := range m.articles {
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		if filter.AuthorID != nil && a.AuthorID != *filter.AuthorID {
			continue
		}
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (m *mockArticleRepo) Update(ctx context.Context, a *article.Article, tagIDs *[]uuid.UUID) error {
	if _, ok := m.articles[a.ID]; !ok {
		return article.ErrArticleNotFound
	}
	clone := *a
	m.articles[a.ID] = &clone
	if tagIDs != nil {
		m.tags[a.ID] = *tagIDs
	}
	return nil
}

func (m *mockArticleRepo) SetStatus(ctx context.Context, id uuid.UUID, status article.Status, publishedAt *time.Time) error {
	a, ok := m.articles[id]
	if !ok {
		return article.ErrArticleNotFound
	}
	a.Status = status
	if publishedAt != nil {
		a.PublishedAt = publishedAt
	}
	return nil
}

func (m *mockArticleRepo) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	a, ok := m.articles[id]
	if !ok {
		return article.ErrArticleNotFound
	}
	a.ViewCount++
	return nil
}

func (m *mockArticleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.articles[id]; !ok {
		return article.ErrArticleNotFound
	}
	delete(m.articles, id)
	delete(m.tags, id)
	return nil
}

func testUser(role user.Role) *user.User {
	return &user.User{ID: uuid.New(), Role: role, IsActive: true}
}

func TestCreateGeneratesUniqueSlug(t *testing.T) {
	repo := newMockArticleRepo()
	svc := NewArticleService(repo)
	ctx := context.Background()
	author := testUser(user.RoleAuthor)

	first, err := svc.Create(ctx, author, article.CreateArticleRequest{Title: "Hello World", Content: "body"})
	require.NoError(t, err)
	assert.Equal(t, "hello-world", first.Slug)
	assert.Equal(t, article.StatusDraft, first.Status)
	assert.Equal(t, author.ID, first.AuthorID)

	second, err := svc.Create(ctx, author, article.CreateArticleRequest{Title: "Hello World", Content: "body"})
	require.NoError(t, err)
	assert.Equal(t, "hello-world-1", second.Slug)

	third, err := svc.Create(ctx, author, article.CreateArticleRequest{Title: "Hello World", Content: "body"})
	require.NoError(t, err)
	assert.Equal(t, "hello-world-2", third.Slug)
}

func TestCreateRejectsInvalidCategoryID(t *testing.T) {
	repo := newMockArticleRepo()
	svc := NewArticleService(repo)
	bad := "not-a-uuid"

	_, err := svc.Create(context.Background(), testUser(user.RoleAuthor), article.CreateArticleRequest{
		Title:      "Broken",
		Content:    "body",
		CategoryID: &bad,
	})
	assert.ErrorIs(t, err, article.ErrCategoryNotFound)
}

func TestPublishSetsPublishedAtOnceOnly(t *testing.T) {
	repo := newMockArticleRepo()
	svc := NewArticleService(repo)
	ctx := context.Background()
	author := testUser(user.RoleAuthor)

	a, err := svc.Create(ctx, author, article.CreateArticleRequest{Title: "Breaking News", Content: "body"})
	require.NoError(t, err)
	require.Nil(t, a.PublishedAt)

	published, err := svc.Publish(ctx, author, a.ID)
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	firstPublishedAt := *published.PublishedAt

	// Archive rồi publish lại - timestamp gốc phải giữ nguyên
	_, err = svc.Archive(ctx, author, a.ID)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	republished, err := svc.Publish(ctx, author, a.ID)
	require.NoError(t, err)
	require.NotNil(t, republished.PublishedAt)
	assert.True(t, republished.PublishedAt.Equal(firstPublishedAt), "republish must keep original published_at")
}

func TestPublishAlreadyPublished(t *testing.T) {
	repo := newMockArticleRepo()
	svc := NewArticleService(repo)
	ctx := context.Background()
	author := testUser(user.RoleAuthor)

	a, err := svc.Create(ctx, author, article.CreateArticleRequest{Title: "Once", Content: "body"})
	require.NoError(t, err)

	_, err = svc.Publish(ctx, author, a.ID)
	require.NoError(t, err)

	_, err = svc.Publish(ctx, author, a.ID)
	assert.ErrorIs(t, err, article.ErrAlreadyPublished)
}

func TestArchiveOnlyFromPublished(t *testing.T) {
	repo := newMockArticleRepo()
	svc := NewArticleService(repo)
	ctx := context.Background()
	author := testUser(user.RoleAuthor)

	a, err := svc.Create(ctx, author, article.CreateArticleRequest{Title: "Draft Piece", Content: "body"})
	require.NoError(t, err)

	_, err = svc.Archive(ctx, author, a.ID)
	assert.ErrorIs(t, err, article.ErrNotPublished)
}

func TestUpdateOwnershipEnforced(t *testing.T) {
	repo := newMockArticleRepo()
	svc := NewArticleService(repo)
	ctx := context.Background()
	owner := testUser(user.RoleAuthor)
	stranger := testUser(user.RoleAuthor)
	editor := testUser(user.RoleEditor)

	a, err := svc.Create(ctx, owner, article.CreateArticleRequest{Title: "Mine", Content: "body"})
	require.NoError(t, err)

	newTitle := "Hijacked"
	_, err = svc.Update(ctx, stranger, a.ID, article.UpdateArticleRequest{Title: &newTitle})
	assert.ErrorIs(t, err, article.ErrNotOwner)

	// Editor sửa được bài của người khác
	editedTitle := "Edited By Editor"
	updated, err := svc.Update(ctx, editor, a.ID, article.UpdateArticleRequest{Title: &editedTitle})
	require.NoError(t, err)
	assert.Equal(t, "Edited By Editor", updated.Title)
	assert.Equal(t, "edited-by-editor", updated.Slug, "title change regenerates slug")
}

func TestUpdateKeepsSlugWhenTitleUnchanged(t *testing.T) {
	repo := newMockArticleRepo()
	svc := NewArticleService(repo)
	ctx := context.Background()
	owner := testUser(user.RoleAuthor)

	a, err := svc.Create(ctx, owner, article.CreateArticleRequest{Title: "Stable Title", Content: "body"})
	require.NoError(t, err)

	newContent := "revised body"
	updated, err := svc.Update(ctx, owner, a.ID, article.UpdateArticleRequest{Content: &newContent})
	require.NoError(t, err)
	assert.Equal(t, a.Slug, updated.Slug)
	assert.Equal(t, "revised body", updated.Content)
}

func TestGetBySlugVisibility(t *testing.T) {
	repo := newMockArticleRepo()
	svc := NewArticleService(repo)
	ctx := context.Background()
	owner := testUser(user.RoleAuthor)
	stranger := testUser(user.RoleAuthor)

	a, err := svc.Create(ctx, owner, article.CreateArticleRequest{Title: "Hidden Draft", Content: "body"})
	require.NoError(t, err)

	// Draft: anonymous và author khác nhận 404, owner thấy được
	_, err = svc.GetBySlug(ctx, nil, a.Slug)
	assert.ErrorIs(t, err, article.ErrArticleNotFound)

	_, err = svc.GetBySlug(ctx, stranger, a.Slug)
	assert.ErrorIs(t, err, article.ErrArticleNotFound)

	got, err := svc.GetBySlug(ctx, owner, a.Slug)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Zero(t, got.ViewCount, "draft reads must not count views")
}

// GetByID: cùng visibility với GetBySlug, không tăng view count
func TestGetByIDVisibility(t *testing.T) {
	repo := newMockArticleRepo()
	svc := NewArticleService(repo)
	ctx := context.Background()
	owner := testUser(user.RoleAuthor)
	stranger := testUser(user.RoleAuthor)

	a, err := svc.Create(ctx, owner, article.CreateArticleRequest{Title: "Draft By ID", Content: "body"})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, nil, a.ID)
	assert.ErrorIs(t, err, article.ErrArticleNotFound)

	_, err = svc.GetByID(ctx, stranger, a.ID)
	assert.ErrorIs(t, err, article.ErrArticleNotFound)

	got, err := svc.GetByID(ctx, owner, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	// Published: ai cũng đọc được nhưng view count giữ nguyên
	_, err = svc.Publish(ctx, owner, a.ID)
	require.NoError(t, err)

	got, err = svc.GetByID(ctx, nil, a.ID)
	require.NoError(t, err)
	assert.Zero(t, got.ViewCount, "by-id reads must not count views")
}

func TestGetBySlugIncrementsViewCount(t *testing.T) {
	repo := newMockArticleRepo()
	svc := NewArticleService(repo)
	ctx := context.Background()
	owner := testUser(user.RoleAuthor)

	a, err := svc.Create(ctx, owner, article.CreateArticleRequest{Title: "Popular", Content: "body"})
	require.NoError(t, err)
	_, err = svc.Publish(ctx, owner, a.ID)
	require.NoError(t, err)

	got, err := svc.GetBySlug(ctx, nil, a.Slug)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.ViewCount)

	got, err = svc.GetBySlug(ctx, nil, a.Slug)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.ViewCount)
}

func TestListVisibilityRules(t *testing.T) {
	repo := newMockArticleRepo()
	svc := NewArticleService(repo)
	ctx := context.Background()
	owner := testUser(user.RoleAuthor)
	other := testUser(user.RoleAuthor)
	editor := testUser(user.RoleEditor)

	draft, err := svc.Create(ctx, owner, article.CreateArticleRequest{Title: "My Draft", Content: "body"})
	require.NoError(t, err)

	pub, err := svc.Create(ctx, owner, article.CreateArticleRequest{Title: "Live Story", Content: "body"})
	require.NoError(t, err)
	_, err = svc.Publish(ctx, owner, pub.ID)
	require.NoError(t, err)

	// Anonymous: chỉ thấy published kể cả khi xin status=draft
	items, total, err := svc.List(ctx, nil, article.ListArticlesQuery{Status: "draft"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, pub.ID, items[0].ID)

	// Editor filter draft thấy draft của mọi người
	items, _, err = svc.List(ctx, editor, article.ListArticlesQuery{Status: "draft"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, draft.ID, items[0].ID)

	// Author khác xin draft: bị scope về bài của chính họ -> rỗng
	items, _, err = svc.List(ctx, other, article.ListArticlesQuery{Status: "draft"})
	require.NoError(t, err)
	assert.Empty(t, items)

	// Owner xin draft thấy draft của mình
	items, _, err = svc.List(ctx, owner, article.ListArticlesQuery{Status: "draft"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, draft.ID, items[0].ID)
}

// Author không gửi status param: listing xử lý như public -
// draft/archived của người khác không được lọt ra
func TestListAuthorDefaultSeesOnlyPublished(t *testing.T) {
	repo := newMockArticleRepo()
	svc := NewArticleService(repo)
	ctx := context.Background()
	owner := testUser(user.RoleAuthor)
	other := testUser(user.RoleAuthor)

	draft, err := svc.Create(ctx, owner, article.CreateArticleRequest{Title: "Private Draft", Content: "body"})
	require.NoError(t, err)

	pub, err := svc.Create(ctx, owner, article.CreateArticleRequest{Title: "Public Story", Content: "body"})
	require.NoError(t, err)
	_, err = svc.Publish(ctx, owner, pub.ID)
	require.NoError(t, err)

	items, total, err := svc.List(ctx, other, article.ListArticlesQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, pub.ID, items[0].ID)

	// Cả chính owner: default listing cũng chỉ published,
	// muốn thấy draft của mình phải filter status=draft
	items, _, err = svc.List(ctx, owner, article.ListArticlesQuery{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.NotEqual(t, draft.ID, items[0].ID)
}

func TestDeleteOwnership(t *testing.T) {
	repo := newMockArticleRepo()
	svc := NewArticleService(repo)
	ctx := context.Background()
	owner := testUser(user.RoleAuthor)
	stranger := testUser(user.RoleAuthor)
	admin := testUser(user.RoleAdmin)

	a, err := svc.Create(ctx, owner, article.CreateArticleRequest{Title: "Doomed", Content: "body"})
	require.NoError(t, err)

	err = svc.Delete(ctx, stranger, a.ID)
	assert.ErrorIs(t, err, article.ErrNotOwner)

	require.NoError(t, svc.Delete(ctx, admin, a.ID))

	_, err = svc.GetByID(ctx, admin, a.ID)
	assert.ErrorIs(t, err, article.ErrArticleNotFound)
}
