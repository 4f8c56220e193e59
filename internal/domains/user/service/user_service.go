package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	user "newsroom-backend/internal/domains/user"
	"newsroom-backend/internal/infrastructure/queue"
	"newsroom-backend/internal/shared/utils"
	"newsroom-backend/pkg/jwt"
)

// bcryptCost 12: chậm hơn default (10) đáng kể với brute force,
// vẫn dưới 300ms trên hardware hiện tại
const bcryptCost = 12

type userService struct {
	repo       user.Repository
	mediaKeys  user.MediaKeyLister
	enqueuer   queue.Enqueuer
	jwtManager *jwt.Manager
}

// NewUserService wire repository + jwt + queue vào business logic
func NewUserService(
	repo user.Repository,
	mediaKeys user.MediaKeyLister,
	enqueuer queue.Enqueuer,
	jwtManager *jwt.Manager,
) user.Service {
	return &userService{
		repo:       repo,
		mediaKeys:  mediaKeys,
		enqueuer:   enqueuer,
		jwtManager: jwtManager,
	}
}

// ========================================
// AUTH
// ========================================

// Register tạo account mới với role author.
// Role cao hơn chỉ được gán qua admin UpdateRole.
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, user.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         user.RoleAuthor,
		IsActive:     true,
	}

	// Race giữa ExistsByEmail và Create: unique index backstop,
	// repository map 23505 thành ErrEmailAlreadyExists
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", u.ID.String()).
		Str("email", u.Email).
		Msg("user registered")

	dto := u.ToDTO()
	return &dto, nil
}

// Login verify credentials và cấp cặp access/refresh token.
// Account inactive bị chặn ngay tại đây (và cả ở middleware cho
// token đã cấp trước đó).
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Cùng message với sai password - không leak email tồn tại
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	if !u.IsActive {
		return nil, user.ErrUserInactive
	}

	return s.issueTokens(u)
}

// RefreshToken đổi refresh token lấy cặp token mới.
// Re-load user từ DB để role/active state luôn fresh - user bị
// deactivate hoặc đổi role sau khi cấp refresh token sẽ không
// refresh được nữa.
func (s *userService) RefreshToken(ctx context.Context, refreshToken string) (*user.LoginResponse, error) {
	claims, err := s.jwtManager.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, jwt.ErrInvalidToken
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !u.IsActive {
		return nil, user.ErrUserInactive
	}

	return s.issueTokens(u)
}

func (s *userService) issueTokens(u *user.User) (*user.LoginResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email, u.Role.String())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID.String(), u.Email, u.Role.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &user.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.jwtManager.AccessExpiry()),
		User:         u.ToDTO(),
	}, nil
}

// ========================================
// PROFILE (SELF)
// ========================================

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

// UpdateProfile partial update - nil fields giữ nguyên giá trị cũ
func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req user.UpdateProfileRequest) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.AvatarURL != nil {
		u.AvatarURL = req.AvatarURL
	}
	if req.Bio != nil {
		u.Bio = req.Bio
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

// ChangePassword yêu cầu verify current password trước khi đổi
func (s *userService) ChangePassword(ctx context.Context, userID uuid.UUID, req user.ChangePasswordRequest) error {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return user.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	u.PasswordHash = string(hash)
	return s.repo.Update(ctx, u)
}

// ========================================
// ADMIN
// ========================================

func (s *userService) List(ctx context.Context, q user.ListUsersQuery) ([]user.UserDTO, int64, error) {
	page, limit := utils.NormalizePagination(q.Page, q.Limit)

	filter := user.Filter{
		IsActive: q.IsActive,
		Search:   q.Search,
		Limit:    limit,
		Offset:   utils.Offset(page, limit),
	}
	if q.Role != "" {
		role := user.Role(q.Role)
		filter.Role = &role
	}

	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]user.UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, users[i].ToDTO())
	}

	return dtos, total, nil
}

// UpdateRole - admin gán role mới. Admin không tự hạ role chính mình
// để tránh lock out hệ thống khi chỉ còn một admin.
func (s *userService) UpdateRole(ctx context.Context, actor *user.User, targetID uuid.UUID, role user.Role) (*user.UserDTO, error) {
	if !role.IsValid() {
		return nil, user.ErrInvalidRole
	}

	if actor.ID == targetID && role != user.RoleAdmin {
		return nil, user.ErrSelfDeactivate
	}

	if err := s.repo.UpdateRole(ctx, targetID, role); err != nil {
		return nil, err
	}

	log.Info().
		Str("actor_id", actor.ID.String()).
		Str("target_id", targetID.String()).
		Str("role", role.String()).
		Msg("user role updated")

	return s.GetProfile(ctx, targetID)
}

// SetActive bật/tắt account. Admin không tự deactivate chính mình.
func (s *userService) SetActive(ctx context.Context, actor *user.User, targetID uuid.UUID, active bool) (*user.UserDTO, error) {
	if actor.ID == targetID && !active {
		return nil, user.ErrSelfDeactivate
	}

	if err := s.repo.SetActive(ctx, targetID, active); err != nil {
		return nil, err
	}

	log.Info().
		Str("actor_id", actor.ID.String()).
		Str("target_id", targetID.String()).
		Bool("active", active).
		Msg("user active state changed")

	return s.GetProfile(ctx, targetID)
}

// Delete hard delete user. DB rows (articles, media rows, comments
// user_id) cascade theo FK; storage objects không tự dọn nên gom
// keys trước rồi enqueue purge task chạy background.
func (s *userService) Delete(ctx context.Context, actor *user.User, targetID uuid.UUID) error {
	if actor.ID == targetID {
		return user.ErrSelfDeactivate
	}

	keys, err := s.mediaKeys.ListKeysByUploader(ctx, targetID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		return err
	}

	if len(keys) > 0 {
		// Enqueue failure không rollback được delete - log và đi tiếp,
		// orphan objects sẽ dọn bằng tay
		if err := s.enqueuer.EnqueueMediaPurge(ctx, keys); err != nil {
			log.Error().Err(err).
				Str("user_id", targetID.String()).
				Int("keys", len(keys)).
				Msg("failed to enqueue media purge after user delete")
		}
	}

	log.Info().
		Str("actor_id", actor.ID.String()).
		Str("target_id", targetID.String()).
		Msg("user deleted")

	return nil
}
