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
	"golang.org/x/sync/errgroup"

	comment "newsroom-backend/internal/domains/comment"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) comment.Repository {
	return &postgresRepository{pool: pool}
}

const commentSelect = `
	SELECT
		c.id, c.article_id, c.user_id, c.parent_id, c.content,
		c.author_name, c.author_email, c.status, c.created_at, c.updated_at,
		u.name AS user_name
	FROM comments c
	LEFT JOIN users u ON u.id = c.user_id
`

func scanComment(row pgx.Row) (*comment.Comment, error) {
	var c comment.Comment
	err := row.Scan(
		&c.ID,
		&c.ArticleID,
		&c.UserID,
		&c.ParentID,
		&c.Content,
		&c.AuthorName,
		&c.AuthorEmail,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.UserName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, comment.ErrCommentNotFound
		}
		return nil, fmt.Errorf("scan comment: %w", err)
	}
	return &c, nil
}

func (r *postgresRepository) Create(ctx context.Context, c *comment.Comment) error {
	query := `
		INSERT INTO comments (
			id, article_id, user_id, parent_id, content,
			author_name, author_email, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10
		)
	`

	now := time.Now()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.ArticleID, c.UserID, c.ParentID, c.Content,
		c.AuthorName, c.AuthorEmail, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return comment.ErrArticleNotFound
		}
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	return scanComment(r.pool.QueryRow(ctx, commentSelect+` WHERE c.id = $1`, id))
}

// ListApprovedByArticle dùng recursive CTE: bắt đầu từ top-level
// approved, mỗi level xuống chỉ lấy replies approved. Reply approved
// dưới parent pending/rejected không bao giờ xuất hiện.
func (r *postgresRepository) ListApprovedByArticle(ctx context.Context, articleID uuid.UUID) ([]comment.Comment, error) {
	query := `
		WITH RECURSIVE thread AS (
			SELECT c.id, c.article_id, c.user_id, c.parent_id, c.content,
			       c.author_name, c.author_email, c.status, c.created_at, c.updated_at
			FROM comments c
			WHERE c.article_id = $1 AND c.parent_id IS NULL AND c.status = 'approved'

			UNION ALL

			SELECT c.id, c.article_id, c.user_id, c.parent_id, c.content,
			       c.author_name, c.author_email, c.status, c.created_at, c.updated_at
			FROM comments c
			JOIN thread t ON c.parent_id = t.id
			WHERE c.status = 'approved'
		)
		SELECT t.id, t.article_id, t.user_id, t.parent_id, t.content,
		       t.author_name, t.author_email, t.status, t.created_at, t.updated_at,
		       u.name AS user_name
		FROM thread t
		LEFT JOIN users u ON u.id = t.user_id
		ORDER BY t.created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("list approved comments: %w", err)
	}
	defer rows.Close()

	return collectComments(rows)
}

func collectComments(rows pgx.Rows) ([]comment.Comment, error) {
	comments := make([]comment.Comment, 0)
	for rows.Next() {
		var c comment.Comment
		err := rows.Scan(
			&c.ID, &c.ArticleID, &c.UserID, &c.ParentID, &c.Content,
			&c.AuthorName, &c.AuthorEmail, &c.Status, &c.CreatedAt, &c.UpdatedAt,
			&c.UserName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return comments, nil
}

// List cho moderation view - count + page song song
func (r *postgresRepository) List(ctx context.Context, filter comment.Filter) ([]comment.Comment, int64, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if filter.Status != nil {
		where += fmt.Sprintf(" AND c.status = $%d", argPos)
		args = append(args, *filter.Status)
		argPos++
	}

	if filter.ArticleID != nil {
		where += fmt.Sprintf(" AND c.article_id = $%d", argPos)
		args = append(args, *filter.ArticleID)
		argPos++
	}

	countQuery := `SELECT COUNT(*) FROM comments c` + where

	pageQuery := fmt.Sprintf(`%s %s
		ORDER BY c.created_at DESC
		LIMIT $%d OFFSET $%d
	`, commentSelect, where, argPos, argPos+1)
	pageArgs := append(append([]interface{}{}, args...), filter.Limit, filter.Offset)

	var (
		comments []comment.Comment
		total    int64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := r.pool.QueryRow(gctx, countQuery, args...).Scan(&total); err != nil {
			return fmt.Errorf("count comments: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		rows, err := r.pool.Query(gctx, pageQuery, pageArgs...)
		if err != nil {
			return fmt.Errorf("list comments: %w", err)
		}
		defer rows.Close()

		result, err := collectComments(rows)
		if err != nil {
			return err
		}
		comments = result
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status comment.Status) error {
	query := `
		UPDATE comments
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update comment status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return comment.ErrCommentNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM comments WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		// FK từ replies - backstop cho CountReplies race
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return comment.ErrHasReplies
		}
		return fmt.Errorf("delete comment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return comment.ErrCommentNotFound
	}

	return nil
}

func (r *postgresRepository) CountReplies(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM comments WHERE parent_id = $1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("count replies: %w", err)
	}
	return count, nil
}

// DeleteSpamOlderThan - chỉ xóa spam không còn replies (precondition
// giữ nguyên cả với cleanup tự động)
func (r *postgresRepository) DeleteSpamOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM comments c
		WHERE c.status = 'spam'
		  AND c.created_at < $1
		  AND NOT EXISTS (SELECT 1 FROM comments r WHERE r.parent_id = c.id)
	`

	result, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old spam: %w", err)
	}

	return result.RowsAffected(), nil
}
