package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	user "newsroom-backend/internal/domains/user"
	"newsroom-backend/pkg/jwt"
)

// mockUserRepo là in-memory Repository cho service tests
type mockUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[uuid.UUID]*user.User{}}
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return user.ErrEmailAlreadyExists
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	clone := *u
	m.users[u.ID] = &clone
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := m.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.FindByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (m *mockUserRepo) List(ctx context.Context, filter user.Filter) ([]user.User, int64, error) {
	out := make([]user.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (m *mockUserRepo) Update(ctx context.Context, u *user.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	clone := *u
	m.users[u.ID] = &clone
	return nil
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role user.Role) error {
	u, ok := m.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (m *mockUserRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	u, ok := m.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

type mockMediaKeys struct {
	keys map[uuid.UUID][]string
}

func (m *mockMediaKeys) ListKeysByUploader(ctx context.Context, uploaderID uuid.UUID) ([]string, error) {
	return m.keys[uploaderID], nil
}

type mockEnqueuer struct {
	purged [][]string
}

func (m *mockEnqueuer) EnqueueMediaPurge(ctx context.Context, keys []string) error {
	m.purged = append(m.purged, keys)
	return nil
}

type userFixture struct {
	repo     *mockUserRepo
	media    *mockMediaKeys
	enqueuer *mockEnqueuer
	svc      user.Service
}

func newUserFixture() *userFixture {
	repo := newMockUserRepo()
	media := &mockMediaKeys{keys: map[uuid.UUID][]string{}}
	enq := &mockEnqueuer{}
	tokens := jwt.NewManager("access", "refresh", time.Hour, 24*time.Hour)
	return &userFixture{
		repo:     repo,
		media:    media,
		enqueuer: enq,
		svc:      NewUserService(repo, media, enq, tokens),
	}
}

// seed user trực tiếp vào repo, bypass bcrypt cost 12 cho nhanh
func (f *userFixture) seed(t *testing.T, email, password string, role user.Role, active bool) *user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	u := &user.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Seeded",
		Role:         role,
		IsActive:     active,
	}
	require.NoError(t, f.repo.Create(context.Background(), u))
	if !active {
		require.NoError(t, f.repo.SetActive(context.Background(), u.ID, false))
		u.IsActive = false
	}
	return u
}

func TestRegister(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	dto, err := f.svc.Register(ctx, user.RegisterRequest{
		Email:    "new@example.com",
		Password: "secret-password",
		Name:     "New Author",
	})
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", dto.Email)
	assert.Equal(t, user.RoleAuthor, dto.Role, "mọi account mới đều là author")

	stored, err := f.repo.FindByEmail(ctx, "new@example.com")
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
	assert.NotEqual(t, "secret-password", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret-password")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	f.seed(t, "taken@example.com", "pw", user.RoleAuthor, true)

	_, err := f.svc.Register(ctx, user.RegisterRequest{
		Email:    "taken@example.com",
		Password: "another-password",
		Name:     "Dup",
	})
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	u := f.seed(t, "author@example.com", "correct-horse", user.RoleAuthor, true)

	resp, err := f.svc.Login(ctx, user.LoginRequest{Email: "author@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, u.ID, resp.User.ID)
	assert.True(t, resp.ExpiresAt.After(time.Now()))
}

// Sai password và email không tồn tại trả cùng một error -
// không leak email nào đã đăng ký
func TestLoginInvalidCredentials(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	f.seed(t, "author@example.com", "correct-horse", user.RoleAuthor, true)

	_, err := f.svc.Login(ctx, user.LoginRequest{Email: "author@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, user.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	f.seed(t, "banned@example.com", "correct-horse", user.RoleAuthor, false)

	_, err := f.svc.Login(ctx, user.LoginRequest{Email: "banned@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, user.ErrUserInactive)
}

// Refresh re-load user từ DB nên deactivate sau khi cấp token vẫn chặn được
func TestRefreshTokenInactiveUser(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	u := f.seed(t, "author@example.com", "correct-horse", user.RoleAuthor, true)

	resp, err := f.svc.Login(ctx, user.LoginRequest{Email: "author@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, f.repo.SetActive(ctx, u.ID, false))

	_, err = f.svc.RefreshToken(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, user.ErrUserInactive)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	f.seed(t, "author@example.com", "correct-horse", user.RoleAuthor, true)

	resp, err := f.svc.Login(ctx, user.LoginRequest{Email: "author@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = f.svc.RefreshToken(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	u := f.seed(t, "author@example.com", "old-password", user.RoleAuthor, true)

	err := f.svc.ChangePassword(ctx, u.ID, user.ChangePasswordRequest{
		CurrentPassword: "not-the-old-password",
		NewPassword:     "new-password",
	})
	assert.ErrorIs(t, err, user.ErrWrongPassword)
}

func TestUpdateRoleSelfDemotionBlocked(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	admin := f.seed(t, "admin@example.com", "pw", user.RoleAdmin, true)

	_, err := f.svc.UpdateRole(ctx, admin, admin.ID, user.RoleAuthor)
	assert.ErrorIs(t, err, user.ErrSelfDeactivate)
}

func TestUpdateRoleInvalidRole(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	admin := f.seed(t, "admin@example.com", "pw", user.RoleAdmin, true)
	target := f.seed(t, "author@example.com", "pw", user.RoleAuthor, true)

	_, err := f.svc.UpdateRole(ctx, admin, target.ID, user.Role("superuser"))
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestSetActiveSelfDeactivateBlocked(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	admin := f.seed(t, "admin@example.com", "pw", user.RoleAdmin, true)

	_, err := f.svc.SetActive(ctx, admin, admin.ID, false)
	assert.ErrorIs(t, err, user.ErrSelfDeactivate)

	// Re-activate chính mình thì không sao
	_, err = f.svc.SetActive(ctx, admin, admin.ID, true)
	assert.NoError(t, err)
}

func TestDeleteEnqueuesMediaPurge(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	admin := f.seed(t, "admin@example.com", "pw", user.RoleAdmin, true)
	target := f.seed(t, "author@example.com", "pw", user.RoleAuthor, true)

	f.media.keys[target.ID] = []string{"a.jpg", "thumb_a.jpg"}

	require.NoError(t, f.svc.Delete(ctx, admin, target.ID))

	_, err := f.repo.FindByID(ctx, target.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	require.Len(t, f.enqueuer.purged, 1)
	assert.Equal(t, []string{"a.jpg", "thumb_a.jpg"}, f.enqueuer.purged[0])
}

func TestDeleteWithoutMediaSkipsEnqueue(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	admin := f.seed(t, "admin@example.com", "pw", user.RoleAdmin, true)
	target := f.seed(t, "author@example.com", "pw", user.RoleAuthor, true)

	require.NoError(t, f.svc.Delete(ctx, admin, target.ID))
	assert.Empty(t, f.enqueuer.purged)
}

func TestDeleteSelfBlocked(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	admin := f.seed(t, "admin@example.com", "pw", user.RoleAdmin, true)

	err := f.svc.Delete(ctx, admin, admin.ID)
	assert.ErrorIs(t, err, user.ErrSelfDeactivate)
}
