package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	comment "newsroom-backend/internal/domains/comment"
	user "newsroom-backend/internal/domains/user"
)

// mockCommentRepo - in-memory Repository cho service tests
type mockCommentRepo struct {
	comments map[uuid.UUID]*comment.Comment
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{comments: map[uuid.UUID]*comment.Comment{}}
}

func (m *mockCommentRepo) Create(ctx context.Context, c *comment.Comment) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	clone := *c
	m.comments[c.ID] = &clone
	return nil
}

func (m *mockCommentRepo) FindByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	if c, ok := m.comments[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, comment.ErrCommentNotFound
}

func (m *mockCommentRepo) ListApprovedByArticle(ctx context.Context, articleID uuid.UUID) ([]comment.Comment, error) {
	// Lọc như recursive CTE: approved và toàn bộ ancestor chain approved
	approved := func(c *comment.Comment) bool { return c.Status == comment.StatusApproved }

	var visible func(c *comment.Comment) bool
	visible = func(c *comment.Comment) bool {
		if !approved(c) {
			return false
		}
		if c.ParentID == nil {
			return true
		}
		parent, ok := m.comments[*c.ParentID]
		if !ok {
			return false
		}
		return visible(parent)
	}

	out := make([]comment.Comment, 0)
	for _, c := range m.comments {
		if c.ArticleID == articleID && visible(c) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockCommentRepo) List(ctx context.Context, filter comment.Filter) ([]comment.Comment, int64, error) {
	out := make([]comment.Comment, 0)
	for _, c := range m.comments {
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if filter.ArticleID != nil && c.ArticleID != *filter.ArticleID {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (m *mockCommentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status comment.Status) error {
	c, ok := m.comments[id]
	if !ok {
		return comment.ErrCommentNotFound
	}
	c.Status = status
	return nil
}

func (m *mockCommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.comments[id]; !ok {
		return comment.ErrCommentNotFound
	}
	delete(m.comments, id)
	return nil
}

func (m *mockCommentRepo) CountReplies(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	for _, c := range m.comments {
		if c.ParentID != nil && *c.ParentID == id {
			n++
		}
	}
	return n, nil
}

func (m *mockCommentRepo) DeleteSpamOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, c := range m.comments {
		if c.Status != comment.StatusSpam || !c.CreatedAt.Before(cutoff) {
			continue
		}
		if replies, _ := m.CountReplies(ctx, id); replies > 0 {
			continue
		}
		delete(m.comments, id)
		n++
	}
	return n, nil
}

// mockArticleChecker chỉ biết một set article ids tồn tại
type mockArticleChecker struct {
	existing map[uuid.UUID]bool
}

func (m *mockArticleChecker) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.existing[id], nil
}

type commentFixture struct {
	repo      *mockCommentRepo
	articleID uuid.UUID
	svc       comment.Service
}

func newCommentFixture() *commentFixture {
	repo := newMockCommentRepo()
	articleID := uuid.New()
	checker := &mockArticleChecker{existing: map[uuid.UUID]bool{articleID: true}}
	return &commentFixture{
		repo:      repo,
		articleID: articleID,
		svc:       NewCommentService(repo, checker),
	}
}

func strPtr(s string) *string { return &s }

func TestCreateGuestComment(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	c, err := f.svc.Create(ctx, nil, comment.CreateCommentRequest{
		ArticleID:   f.articleID.String(),
		Content:     "Great piece!",
		AuthorName:  strPtr("Reader"),
		AuthorEmail: strPtr("reader@example.com"),
	})
	require.NoError(t, err)

	assert.Equal(t, comment.StatusPending, c.Status, "new comments await moderation")
	assert.True(t, c.IsGuest())
	assert.Equal(t, "Reader", c.DisplayName())
}

func TestCreateGuestWithoutIdentity(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	// Thiếu email
	_, err := f.svc.Create(ctx, nil, comment.CreateCommentRequest{
		ArticleID:  f.articleID.String(),
		Content:    "anon",
		AuthorName: strPtr("Reader"),
	})
	assert.ErrorIs(t, err, comment.ErrGuestIdentityRequired)

	// Thiếu name
	_, err = f.svc.Create(ctx, nil, comment.CreateCommentRequest{
		ArticleID:   f.articleID.String(),
		Content:     "anon",
		AuthorEmail: strPtr("reader@example.com"),
	})
	assert.ErrorIs(t, err, comment.ErrGuestIdentityRequired)
}

func TestCreateOnMissingArticle(t *testing.T) {
	f := newCommentFixture()

	_, err := f.svc.Create(context.Background(), nil, comment.CreateCommentRequest{
		ArticleID:   uuid.NewString(),
		Content:     "void",
		AuthorName:  strPtr("Reader"),
		AuthorEmail: strPtr("reader@example.com"),
	})
	assert.ErrorIs(t, err, comment.ErrArticleNotFound)
}

func TestCreateAuthenticatedSkipsGuestFields(t *testing.T) {
	f := newCommentFixture()
	u := &user.User{ID: uuid.New(), Name: "Member", Role: user.RoleAuthor, IsActive: true}

	c, err := f.svc.Create(context.Background(), u, comment.CreateCommentRequest{
		ArticleID: f.articleID.String(),
		Content:   "logged in",
	})
	require.NoError(t, err)

	require.NotNil(t, c.UserID)
	assert.Equal(t, u.ID, *c.UserID)
	assert.False(t, c.IsGuest())
}

func TestCreateReplyParentMismatch(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	parent, err := f.svc.Create(ctx, nil, comment.CreateCommentRequest{
		ArticleID:   f.articleID.String(),
		Content:     "root",
		AuthorName:  strPtr("Reader"),
		AuthorEmail: strPtr("reader@example.com"),
	})
	require.NoError(t, err)

	// Thêm một article thứ hai vào checker
	otherArticle := uuid.New()
	checker := &mockArticleChecker{existing: map[uuid.UUID]bool{f.articleID: true, otherArticle: true}}
	svc := NewCommentService(f.repo, checker)

	parentID := parent.ID.String()
	_, err = svc.Create(ctx, nil, comment.CreateCommentRequest{
		ArticleID:   otherArticle.String(),
		ParentID:    &parentID,
		Content:     "cross-article reply",
		AuthorName:  strPtr("Reader"),
		AuthorEmail: strPtr("reader@example.com"),
	})
	assert.ErrorIs(t, err, comment.ErrParentMismatch)
}

func TestCreateReplyParentNotFound(t *testing.T) {
	f := newCommentFixture()
	ghost := uuid.NewString()

	_, err := f.svc.Create(context.Background(), nil, comment.CreateCommentRequest{
		ArticleID:   f.articleID.String(),
		ParentID:    &ghost,
		Content:     "reply to nothing",
		AuthorName:  strPtr("Reader"),
		AuthorEmail: strPtr("reader@example.com"),
	})
	assert.ErrorIs(t, err, comment.ErrParentNotFound)
}

func TestModerationOnlyFromPending(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	c, err := f.svc.Create(ctx, nil, comment.CreateCommentRequest{
		ArticleID:   f.articleID.String(),
		Content:     "pending",
		AuthorName:  strPtr("Reader"),
		AuthorEmail: strPtr("reader@example.com"),
	})
	require.NoError(t, err)

	approved, err := f.svc.Approve(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, comment.StatusApproved, approved.Status)

	// Approved là terminal - reject/spam/approve lại đều fail
	_, err = f.svc.Reject(ctx, c.ID)
	assert.ErrorIs(t, err, comment.ErrAlreadyModerated)

	_, err = f.svc.MarkSpam(ctx, c.ID)
	assert.ErrorIs(t, err, comment.ErrAlreadyModerated)

	_, err = f.svc.Approve(ctx, c.ID)
	assert.ErrorIs(t, err, comment.ErrAlreadyModerated)
}

// Flow đầy đủ: guest comment -> pending (không hiện public) -> approve -> hiện
func TestGuestCommentModerationFlow(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	c, err := f.svc.Create(ctx, nil, comment.CreateCommentRequest{
		ArticleID:   f.articleID.String(),
		Content:     "Chờ duyệt",
		AuthorName:  strPtr("Khách"),
		AuthorEmail: strPtr("khach@example.com"),
	})
	require.NoError(t, err)

	thread, err := f.svc.ListByArticle(ctx, f.articleID)
	require.NoError(t, err)
	assert.Empty(t, thread, "pending comments must not appear publicly")

	_, err = f.svc.Approve(ctx, c.ID)
	require.NoError(t, err)

	thread, err = f.svc.ListByArticle(ctx, f.articleID)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, c.ID, thread[0].ID)
	assert.Equal(t, "Khách", thread[0].DisplayName())
}

func TestListByArticleBuildsNestedThread(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	root, err := f.svc.Create(ctx, nil, comment.CreateCommentRequest{
		ArticleID:   f.articleID.String(),
		Content:     "root",
		AuthorName:  strPtr("A"),
		AuthorEmail: strPtr("a@example.com"),
	})
	require.NoError(t, err)

	rootID := root.ID.String()
	reply, err := f.svc.Create(ctx, nil, comment.CreateCommentRequest{
		ArticleID:   f.articleID.String(),
		ParentID:    &rootID,
		Content:     "reply",
		AuthorName:  strPtr("B"),
		AuthorEmail: strPtr("b@example.com"),
	})
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, root.ID)
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, reply.ID)
	require.NoError(t, err)

	thread, err := f.svc.ListByArticle(ctx, f.articleID)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	require.Len(t, thread[0].Replies, 1)
	assert.Equal(t, reply.ID, thread[0].Replies[0].ID)
}

// Reply approved dưới parent pending vẫn không hiện - cả nhánh bị ẩn
func TestListByArticleHidesOrphanedApprovedReplies(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	root, err := f.svc.Create(ctx, nil, comment.CreateCommentRequest{
		ArticleID:   f.articleID.String(),
		Content:     "still pending",
		AuthorName:  strPtr("A"),
		AuthorEmail: strPtr("a@example.com"),
	})
	require.NoError(t, err)

	rootID := root.ID.String()
	reply, err := f.svc.Create(ctx, nil, comment.CreateCommentRequest{
		ArticleID:   f.articleID.String(),
		ParentID:    &rootID,
		Content:     "approved child",
		AuthorName:  strPtr("B"),
		AuthorEmail: strPtr("b@example.com"),
	})
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, reply.ID)
	require.NoError(t, err)

	thread, err := f.svc.ListByArticle(ctx, f.articleID)
	require.NoError(t, err)
	assert.Empty(t, thread)
}

func TestDeleteWithRepliesBlocked(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()
	admin := &user.User{ID: uuid.New(), Role: user.RoleAdmin, IsActive: true}

	root, err := f.svc.Create(ctx, nil, comment.CreateCommentRequest{
		ArticleID:   f.articleID.String(),
		Content:     "root",
		AuthorName:  strPtr("A"),
		AuthorEmail: strPtr("a@example.com"),
	})
	require.NoError(t, err)

	rootID := root.ID.String()
	reply, err := f.svc.Create(ctx, nil, comment.CreateCommentRequest{
		ArticleID:   f.articleID.String(),
		ParentID:    &rootID,
		Content:     "reply",
		AuthorName:  strPtr("B"),
		AuthorEmail: strPtr("b@example.com"),
	})
	require.NoError(t, err)

	err = f.svc.Delete(ctx, admin, root.ID)
	assert.ErrorIs(t, err, comment.ErrHasReplies)

	// Xóa reply trước thì root xóa được
	require.NoError(t, f.svc.Delete(ctx, admin, reply.ID))
	require.NoError(t, f.svc.Delete(ctx, admin, root.ID))
}

func TestDeleteOwnership(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()
	owner := &user.User{ID: uuid.New(), Role: user.RoleAuthor, IsActive: true}
	stranger := &user.User{ID: uuid.New(), Role: user.RoleAuthor, IsActive: true}

	c, err := f.svc.Create(ctx, owner, comment.CreateCommentRequest{
		ArticleID: f.articleID.String(),
		Content:   "mine",
	})
	require.NoError(t, err)

	err = f.svc.Delete(ctx, stranger, c.ID)
	assert.ErrorIs(t, err, comment.ErrNotOwner)

	require.NoError(t, f.svc.Delete(ctx, owner, c.ID))
}
