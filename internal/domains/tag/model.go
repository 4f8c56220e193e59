package tag

import (
	"time"

	"github.com/google/uuid"
)

// Tag entity - name và slug đều unique
type Tag struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// TagWithCount - tag kèm số articles đang gắn (list endpoint)
type TagWithCount struct {
	Tag
	ArticleCount int64 `json:"article_count"`
}
