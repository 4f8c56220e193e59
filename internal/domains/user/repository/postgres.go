package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	user "newsroom-backend/internal/domains/user"
	"newsroom-backend/pkg/cache"
)

const userCacheTTL = 15 * time.Minute

// postgresRepository là concrete implementation của user.Repository
// Private struct - bên ngoài chỉ thấy interface
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository trả về interface thay vì concrete type
// để service layer phụ thuộc vào abstraction, dễ mock khi test
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) user.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func userCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id.String())
}

// ========================================
// CRUD
// ========================================

// Create insert user mới, map unique violation (23505) thành domain error
func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (
			id, email, password_hash, name, avatar_url, bio,
			role, is_active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10
		)
	`

	now := time.Now()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := r.pool.Exec(ctx, query,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.Name,
		u.AvatarURL,
		u.Bio,
		u.Role,
		u.IsActive,
		u.CreatedAt,
		u.UpdatedAt,
	)

	if err != nil {
		// pgconn.PgError chứa PostgreSQL error code
		// 23505 = unique_violation (email đã tồn tại)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrEmailAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// FindByID tìm user theo UUID với cache-aside pattern
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	cacheKey := userCacheKey(id)

	var u user.User
	// Cache hit -> return ngay, không query DB
	if found, err := r.cache.Get(ctx, cacheKey, &u); err == nil && found {
		return &u, nil
	}

	query := `
		SELECT
			id, email, password_hash, name, avatar_url, bio,
			role, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.AvatarURL,
		&u.Bio,
		&u.Role,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}

	// Ignore cache set error - cache down không được fail request
	_ = r.cache.Set(ctx, cacheKey, &u, userCacheTTL)

	return &u, nil
}

// FindByEmail dùng cho login - không cache vì lookup ít thường xuyên
func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT
			id, email, password_hash, name, avatar_url, bio,
			role, is_active, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var u user.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.AvatarURL,
		&u.Bio,
		&u.Role,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	return &u, nil
}

// ExistsByEmail dùng EXISTS - nhanh hơn COUNT(*)
func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists by email: %w", err)
	}

	return exists, nil
}

// Update cập nhật profile fields và invalidate cache
func (r *postgresRepository) Update(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET
			name = $2,
			avatar_url = $3,
			bio = $4,
			password_hash = $5,
			updated_at = $6
		WHERE id = $1
	`

	u.UpdatedAt = time.Now()

	result, err := r.pool.Exec(ctx, query,
		u.ID,
		u.Name,
		u.AvatarURL,
		u.Bio,
		u.PasswordHash,
		u.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	_ = r.cache.Delete(ctx, userCacheKey(u.ID))

	return nil
}

// UpdateRole cập nhật role (admin only - check ở service layer)
func (r *postgresRepository) UpdateRole(ctx context.Context, id uuid.UUID, role user.Role) error {
	query := `
		UPDATE users
		SET role = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, role)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}

	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	_ = r.cache.Delete(ctx, userCacheKey(id))

	return nil
}

// SetActive bật/tắt account
func (r *postgresRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `
		UPDATE users
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, active)
	if err != nil {
		return fmt.Errorf("set active: %w", err)
	}

	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	_ = r.cache.Delete(ctx, userCacheKey(id))

	return nil
}

// Delete hard delete - articles/media cascade theo FK trong schema
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	_ = r.cache.Delete(ctx, userCacheKey(id))

	return nil
}

// ========================================
// ADMIN LIST
// ========================================

// List trả về (users, total) với dynamic filters.
// Count query và page query chạy song song qua errgroup -
// cả hai share cùng WHERE clause nên build một lần.
func (r *postgresRepository) List(ctx context.Context, filter user.Filter) ([]user.User, int64, error) {
	var where strings.Builder
	where.WriteString(" WHERE 1=1")

	args := []interface{}{}
	argPos := 1

	if filter.Role != nil {
		where.WriteString(fmt.Sprintf(" AND role = $%d", argPos))
		args = append(args, *filter.Role)
		argPos++
	}

	if filter.IsActive != nil {
		where.WriteString(fmt.Sprintf(" AND is_active = $%d", argPos))
		args = append(args, *filter.IsActive)
		argPos++
	}

	// ILIKE: case-insensitive search trên name hoặc email
	if filter.Search != "" {
		where.WriteString(fmt.Sprintf(" AND (name ILIKE $%d OR email ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	countQuery := "SELECT COUNT(*) FROM users" + where.String()

	pageQuery := fmt.Sprintf(`
		SELECT
			id, email, password_hash, name, avatar_url, bio,
			role, is_active, created_at, updated_at
		FROM users
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where.String(), argPos, argPos+1)
	pageArgs := append(append([]interface{}{}, args...), filter.Limit, filter.Offset)

	var (
		users []user.User
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := r.pool.QueryRow(gctx, countQuery, args...).Scan(&total); err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		rows, err := r.pool.Query(gctx, pageQuery, pageArgs...)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		defer rows.Close()

		result := make([]user.User, 0, filter.Limit)
		for rows.Next() {
			var u user.User
			err := rows.Scan(
				&u.ID,
				&u.Email,
				&u.PasswordHash,
				&u.Name,
				&u.AvatarURL,
				&u.Bio,
				&u.Role,
				&u.IsActive,
				&u.CreatedAt,
				&u.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("scan user: %w", err)
			}
			result = append(result, u)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("rows iteration: %w", err)
		}

		users = result
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
