package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	media "newsroom-backend/internal/domains/media"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) media.Repository {
	return &postgresRepository{pool: pool}
}

const mediaColumns = `id, filename, original_name, url, thumbnail_url, mime_type, size, uploaded_by, created_at`

func (r *postgresRepository) Create(ctx context.Context, m *media.Media) error {
	query := `
		INSERT INTO media (
			id, filename, original_name, url, thumbnail_url,
			mime_type, size, uploaded_by, created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9
		)
	`

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()

	_, err := r.pool.Exec(ctx, query,
		m.ID, m.Filename, m.OriginalName, m.URL, m.ThumbnailURL,
		m.MimeType, m.Size, m.UploadedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create media: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*media.Media, error) {
	query := `SELECT ` + mediaColumns + ` FROM media WHERE id = $1`

	var m media.Media
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Filename, &m.OriginalName, &m.URL, &m.ThumbnailURL,
		&m.MimeType, &m.Size, &m.UploadedBy, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, media.ErrMediaNotFound
		}
		return nil, fmt.Errorf("find media by id: %w", err)
	}

	return &m, nil
}

func (r *postgresRepository) List(ctx context.Context, filter media.Filter) ([]media.Media, int64, error) {
	where := ""
	args := []interface{}{}
	argPos := 1

	if filter.UploadedBy != nil {
		where = fmt.Sprintf(" WHERE uploaded_by = $%d", argPos)
		args = append(args, *filter.UploadedBy)
		argPos++
	}

	countQuery := `SELECT COUNT(*) FROM media` + where
	pageQuery := fmt.Sprintf(`
		SELECT %s FROM media%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, mediaColumns, where, argPos, argPos+1)
	pageArgs := append(append([]interface{}{}, args...), filter.Limit, filter.Offset)

	var (
		items []media.Media
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := r.pool.QueryRow(gctx, countQuery, args...).Scan(&total); err != nil {
			return fmt.Errorf("count media: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		rows, err := r.pool.Query(gctx, pageQuery, pageArgs...)
		if err != nil {
			return fmt.Errorf("list media: %w", err)
		}
		defer rows.Close()

		result := make([]media.Media, 0, filter.Limit)
		for rows.Next() {
			var m media.Media
			err := rows.Scan(
				&m.ID, &m.Filename, &m.OriginalName, &m.URL, &m.ThumbnailURL,
				&m.MimeType, &m.Size, &m.UploadedBy, &m.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("scan media: %w", err)
			}
			result = append(result, m)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("rows iteration: %w", err)
		}

		items = result
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM media WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}

	if result.RowsAffected() == 0 {
		return media.ErrMediaNotFound
	}

	return nil
}

// ListKeysByUploader trả về filename + thumbnail key của mọi media
// thuộc user - input cho purge task
func (r *postgresRepository) ListKeysByUploader(ctx context.Context, userID uuid.UUID) ([]string, error) {
	query := `SELECT filename, thumbnail_url FROM media WHERE uploaded_by = $1`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list keys by uploader: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var (
			filename     string
			thumbnailURL *string
		)
		if err := rows.Scan(&filename, &thumbnailURL); err != nil {
			return nil, fmt.Errorf("scan media keys: %w", err)
		}
		keys = append(keys, filename)
		if thumbnailURL != nil {
			keys = append(keys, media.ThumbnailKey(filename))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return keys, nil
}
