package article

import (
	"time"

	"github.com/google/uuid"

	tag "newsroom-backend/internal/domains/tag"
)

// Status enum - match CHECK constraint trong schema
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Article entity.
// Invariant: PublishedAt non-null iff article đã từng reach published.
// Archive/re-publish không reset PublishedAt - chỉ lần publish đầu set.
type Article struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Title         string     `db:"title" json:"title"`
	Slug          string     `db:"slug" json:"slug"`
	Content       string     `db:"content" json:"content"`
	Excerpt       *string    `db:"excerpt" json:"excerpt,omitempty"`
	FeaturedImage *string    `db:"featured_image" json:"featured_image,omitempty"`
	AuthorID      uuid.UUID  `db:"author_id" json:"author_id"`
	CategoryID    *uuid.UUID `db:"category_id" json:"category_id,omitempty"`
	Status        Status     `db:"status" json:"status"`
	ViewCount     int64      `db:"view_count" json:"view_count"`
	PublishedAt   *time.Time `db:"published_at" json:"published_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`

	// Joined fields - populate khi load detail/list
	AuthorName   string    `db:"author_name" json:"author_name,omitempty"`
	CategoryName *string   `db:"category_name" json:"category_name,omitempty"`
	Tags         []tag.Tag `json:"tags"`
}

// CanTransitionTo: draft/archived -> published, published -> archived,
// mọi status -> draft (unpublish về nháp vẫn giữ published_at)
func (a *Article) CanTransitionTo(next Status) bool {
	if !next.IsValid() || a.Status == next {
		return false
	}
	return true
}
