package article

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateArticleRequest - slug generate từ title; status mặc định draft
type CreateArticleRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       *string  `json:"excerpt"`
	FeaturedImage *string  `json:"featured_image"`
	CategoryID    *string  `json:"category_id"`
	TagIDs        []string `json:"tag_ids"`
}

func (r CreateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(3, 255),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
		),
		validation.Field(&r.Excerpt, validation.Length(0, 500)),
		validation.Field(&r.CategoryID, validation.When(r.CategoryID != nil && *r.CategoryID != "", is.UUIDv4)),
		validation.Field(&r.TagIDs, validation.Each(is.UUIDv4)),
	)
}

// UpdateArticleRequest - partial update. Title đổi -> slug regenerate.
// TagIDs non-nil thay toàn bộ tag set (empty slice = gỡ hết tags).
type UpdateArticleRequest struct {
	Title         *string   `json:"title"`
	Content       *string   `json:"content"`
	Excerpt       *string   `json:"excerpt"`
	FeaturedImage *string   `json:"featured_image"`
	CategoryID    *string   `json:"category_id"`
	TagIDs        *[]string `json:"tag_ids"`
}

func (r UpdateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(3, 255)),
		validation.Field(&r.Content, validation.NilOrNotEmpty),
		validation.Field(&r.Excerpt, validation.Length(0, 500)),
	)
}

// ListArticlesQuery - filters cho list endpoint.
// Public listing force status=published ở service, query param chỉ có
// hiệu lực với authenticated content producers.
type ListArticlesQuery struct {
	Status     string `form:"status"`
	CategoryID string `form:"category_id"`
	Tag        string `form:"tag"` // tag slug
	AuthorID   string `form:"author_id"`
	Search     string `form:"search"` // match title/content
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

func (q ListArticlesQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Status,
			validation.In(string(StatusDraft), string(StatusPublished), string(StatusArchived)),
		),
		validation.Field(&q.CategoryID, validation.When(q.CategoryID != "", is.UUIDv4)),
		validation.Field(&q.AuthorID, validation.When(q.AuthorID != "", is.UUIDv4)),
	)
}
