package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	tag "newsroom-backend/internal/domains/tag"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) tag.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, t *tag.Tag) error {
	query := `
		INSERT INTO tags (id, name, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	now := time.Now()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := r.pool.Exec(ctx, query, t.ID, t.Name, t.Slug, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return tag.ErrTagExists
		}
		return fmt.Errorf("create tag: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*tag.Tag, error) {
	query := `SELECT id, name, slug, created_at, updated_at FROM tags WHERE id = $1`

	var t tag.Tag
	err := r.pool.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tag.ErrTagNotFound
		}
		return nil, fmt.Errorf("find tag by id: %w", err)
	}

	return &t, nil
}

func (r *postgresRepository) FindBySlug(ctx context.Context, slug string) (*tag.Tag, error) {
	query := `SELECT id, name, slug, created_at, updated_at FROM tags WHERE slug = $1`

	var t tag.Tag
	err := r.pool.QueryRow(ctx, query, slug).Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tag.ErrTagNotFound
		}
		return nil, fmt.Errorf("find tag by slug: %w", err)
	}

	return &t, nil
}

func (r *postgresRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM tags WHERE slug = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists by slug: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	// Case-insensitive: "Go" và "go" coi là cùng một tag
	query := `SELECT EXISTS(SELECT 1 FROM tags WHERE LOWER(name) = LOWER($1))`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists by name: %w", err)
	}
	return exists, nil
}

// ListWithCounts - LEFT JOIN để tag chưa gắn article nào vẫn xuất hiện
// với count = 0
func (r *postgresRepository) ListWithCounts(ctx context.Context) ([]tag.TagWithCount, error) {
	query := `
		SELECT t.id, t.name, t.slug, t.created_at, t.updated_at,
		       COUNT(at.article_id) AS article_count
		FROM tags t
		LEFT JOIN article_tags at ON at.tag_id = t.id
		GROUP BY t.id, t.name, t.slug, t.created_at, t.updated_at
		ORDER BY t.name ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	tags := make([]tag.TagWithCount, 0)
	for rows.Next() {
		var t tag.TagWithCount
		err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt, &t.ArticleCount)
		if err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return tags, nil
}

func (r *postgresRepository) Update(ctx context.Context, t *tag.Tag) error {
	query := `
		UPDATE tags
		SET name = $2, slug = $3, updated_at = $4
		WHERE id = $1
	`

	t.UpdatedAt = time.Now()

	result, err := r.pool.Exec(ctx, query, t.ID, t.Name, t.Slug, t.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return tag.ErrTagExists
		}
		return fmt.Errorf("update tag: %w", err)
	}

	if result.RowsAffected() == 0 {
		return tag.ErrTagNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tags WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		// article_tags FK không cascade về phía tag - 23503 khi còn reference
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return tag.ErrTagInUse
		}
		return fmt.Errorf("delete tag: %w", err)
	}

	if result.RowsAffected() == 0 {
		return tag.ErrTagNotFound
	}

	return nil
}

func (r *postgresRepository) CountArticles(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM article_tags WHERE tag_id = $1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}
