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

	article "newsroom-backend/internal/domains/article"
	tag "newsroom-backend/internal/domains/tag"
	"newsroom-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) article.Repository {
	return &postgresRepository{pool: pool}
}

// articleColumns có joins sang users/categories cho author_name, category_name
const articleSelect = `
	SELECT
		a.id, a.title, a.slug, a.content, a.excerpt, a.featured_image,
		a.author_id, a.category_id, a.status, a.view_count, a.published_at,
		a.created_at, a.updated_at,
		u.name AS author_name,
		c.name AS category_name
	FROM articles a
	JOIN users u ON u.id = a.author_id
	LEFT JOIN categories c ON c.id = a.category_id
`

func scanArticle(row pgx.Row) (*article.Article, error) {
	var a article.Article
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Slug,
		&a.Content,
		&a.Excerpt,
		&a.FeaturedImage,
		&a.AuthorID,
		&a.CategoryID,
		&a.Status,
		&a.ViewCount,
		&a.PublishedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.AuthorName,
		&a.CategoryName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, article.ErrArticleNotFound
		}
		return nil, fmt.Errorf("scan article: %w", err)
	}
	return &a, nil
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return article.ErrSlugTaken
		case "23503":
			// FK violation: category hoặc tag reference không tồn tại
			if strings.Contains(pgErr.ConstraintName, "tag") {
				return article.ErrTagNotFound
			}
			return article.ErrCategoryNotFound
		}
	}
	return err
}

// Create insert article + tag links trong một transaction -
// bài không bao giờ tồn tại với tag set dở dang
func (r *postgresRepository) Create(ctx context.Context, a *article.Article, tagIDs []uuid.UUID) error {
	query := `
		INSERT INTO articles (
			id, title, slug, content, excerpt, featured_image,
			author_id, category_id, status, view_count, published_at,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13
		)
	`

	now := time.Now()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = now
	a.UpdatedAt = now

	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query,
			a.ID, a.Title, a.Slug, a.Content, a.Excerpt, a.FeaturedImage,
			a.AuthorID, a.CategoryID, a.Status, a.ViewCount, a.PublishedAt,
			a.CreatedAt, a.UpdatedAt,
		)
		if err != nil {
			return err
		}

		return insertTags(ctx, tx, a.ID, tagIDs)
	})

	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

func insertTags(ctx context.Context, tx pgx.Tx, articleID uuid.UUID, tagIDs []uuid.UUID) error {
	for _, tagID := range tagIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO article_tags (article_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			articleID, tagID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*article.Article, error) {
	a, err := scanArticle(r.pool.QueryRow(ctx, articleSelect+` WHERE a.id = $1`, id))
	if err != nil {
		return nil, err
	}

	if err := r.loadTags(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *postgresRepository) FindBySlug(ctx context.Context, slug string) (*article.Article, error) {
	a, err := scanArticle(r.pool.QueryRow(ctx, articleSelect+` WHERE a.slug = $1`, slug))
	if err != nil {
		return nil, err
	}

	if err := r.loadTags(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *postgresRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM articles WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("article exists: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM articles WHERE slug = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists by slug: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) loadTags(ctx context.Context, a *article.Article) error {
	query := `
		SELECT t.id, t.name, t.slug, t.created_at, t.updated_at
		FROM tags t
		JOIN article_tags at ON at.tag_id = t.id
		WHERE at.article_id = $1
		ORDER BY t.name ASC
	`

	rows, err := r.pool.Query(ctx, query, a.ID)
	if err != nil {
		return fmt.Errorf("load tags: %w", err)
	}
	defer rows.Close()

	a.Tags = make([]tag.Tag, 0)
	for rows.Next() {
		var t tag.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return fmt.Errorf("scan tag: %w", err)
		}
		a.Tags = append(a.Tags, t)
	}
	return rows.Err()
}

// List với dynamic filters; count + page query chạy song song.
// Tags của từng bài load batch một lần sau khi có page.
func (r *postgresRepository) List(ctx context.Context, filter article.Filter) ([]article.Article, int64, error) {
	var where strings.Builder
	where.WriteString(" WHERE 1=1")

	args := []interface{}{}
	argPos := 1

	if filter.Status != nil {
		where.WriteString(fmt.Sprintf(" AND a.status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}

	if filter.CategoryID != nil {
		where.WriteString(fmt.Sprintf(" AND a.category_id = $%d", argPos))
		args = append(args, *filter.CategoryID)
		argPos++
	}

	if filter.AuthorID != nil {
		where.WriteString(fmt.Sprintf(" AND a.author_id = $%d", argPos))
		args = append(args, *filter.AuthorID)
		argPos++
	}

	// Tag filter qua EXISTS subquery - không duplicate rows như JOIN
	if filter.TagSlug != "" {
		where.WriteString(fmt.Sprintf(`
			AND EXISTS (
				SELECT 1 FROM article_tags at
				JOIN tags t ON t.id = at.tag_id
				WHERE at.article_id = a.id AND t.slug = $%d
			)`, argPos))
		args = append(args, filter.TagSlug)
		argPos++
	}

	if filter.Search != "" {
		where.WriteString(fmt.Sprintf(" AND (a.title ILIKE $%d OR a.content ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM articles a
		JOIN users u ON u.id = a.author_id
		LEFT JOIN categories c ON c.id = a.category_id
	` + where.String()

	// published_at DESC cho reader-facing order, bài chưa publish xếp
	// theo created_at
	pageQuery := fmt.Sprintf(`%s %s
		ORDER BY COALESCE(a.published_at, a.created_at) DESC
		LIMIT $%d OFFSET $%d
	`, articleSelect, where.String(), argPos, argPos+1)
	pageArgs := append(append([]interface{}{}, args...), filter.Limit, filter.Offset)

	var (
		articles []article.Article
		total    int64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := r.pool.QueryRow(gctx, countQuery, args...).Scan(&total); err != nil {
			return fmt.Errorf("count articles: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		rows, err := r.pool.Query(gctx, pageQuery, pageArgs...)
		if err != nil {
			return fmt.Errorf("list articles: %w", err)
		}
		defer rows.Close()

		result := make([]article.Article, 0, filter.Limit)
		for rows.Next() {
			var a article.Article
			err := rows.Scan(
				&a.ID, &a.Title, &a.Slug, &a.Content, &a.Excerpt, &a.FeaturedImage,
				&a.AuthorID, &a.CategoryID, &a.Status, &a.ViewCount, &a.PublishedAt,
				&a.CreatedAt, &a.UpdatedAt, &a.AuthorName, &a.CategoryName,
			)
			if err != nil {
				return fmt.Errorf("scan article: %w", err)
			}
			result = append(result, a)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("rows iteration: %w", err)
		}

		articles = result
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	if err := r.loadTagsBatch(ctx, articles); err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

// loadTagsBatch load tags cho cả page bằng một query duy nhất
func (r *postgresRepository) loadTagsBatch(ctx context.Context, articles []article.Article) error {
	if len(articles) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(articles))
	index := make(map[uuid.UUID]int, len(articles))
	for i := range articles {
		ids = append(ids, articles[i].ID)
		index[articles[i].ID] = i
		articles[i].Tags = make([]tag.Tag, 0)
	}

	query := `
		SELECT at.article_id, t.id, t.name, t.slug, t.created_at, t.updated_at
		FROM article_tags at
		JOIN tags t ON t.id = at.tag_id
		WHERE at.article_id = ANY($1)
		ORDER BY t.name ASC
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("load tags batch: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			articleID uuid.UUID
			t         tag.Tag
		)
		if err := rows.Scan(&articleID, &t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return fmt.Errorf("scan tag: %w", err)
		}
		if i, ok := index[articleID]; ok {
			articles[i].Tags = append(articles[i].Tags, t)
		}
	}
	return rows.Err()
}

// Update ghi article fields; tagIDs non-nil thay toàn bộ tag set
func (r *postgresRepository) Update(ctx context.Context, a *article.Article, tagIDs *[]uuid.UUID) error {
	query := `
		UPDATE articles
		SET
			title = $2, slug = $3, content = $4, excerpt = $5,
			featured_image = $6, category_id = $7, updated_at = $8
		WHERE id = $1
	`

	a.UpdatedAt = time.Now()

	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, query,
			a.ID, a.Title, a.Slug, a.Content, a.Excerpt,
			a.FeaturedImage, a.CategoryID, a.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return article.ErrArticleNotFound
		}

		if tagIDs != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM article_tags WHERE article_id = $1`, a.ID); err != nil {
				return err
			}
			return insertTags(ctx, tx, a.ID, *tagIDs)
		}
		return nil
	})

	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (r *postgresRepository) SetStatus(ctx context.Context, id uuid.UUID, status article.Status, publishedAt *time.Time) error {
	query := `
		UPDATE articles
		SET
			status = $2,
			published_at = COALESCE($3, published_at),
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, status, publishedAt)
	if err != nil {
		return fmt.Errorf("set status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return article.ErrArticleNotFound
	}

	return nil
}

// IncrementViewCount atomic - không cần lock, DB xử lý concurrency
func (r *postgresRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE articles SET view_count = view_count + 1 WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM articles WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	if result.RowsAffected() == 0 {
		return article.ErrArticleNotFound
	}

	return nil
}
