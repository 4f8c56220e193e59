package comment

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateCommentRequest - authenticated user bỏ qua author fields,
// guest bắt buộc cả hai (check ở service vì phụ thuộc auth state)
type CreateCommentRequest struct {
	ArticleID   string  `json:"article_id"`
	ParentID    *string `json:"parent_id"`
	Content     string  `json:"content"`
	AuthorName  *string `json:"author_name"`
	AuthorEmail *string `json:"author_email"`
}

func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ArticleID,
			validation.Required.Error("article_id is required"),
			is.UUIDv4,
		),
		validation.Field(&r.ParentID, validation.When(r.ParentID != nil && *r.ParentID != "", is.UUIDv4)),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(1, 2000),
		),
		validation.Field(&r.AuthorName, validation.Length(1, 100)),
		validation.Field(&r.AuthorEmail, validation.When(r.AuthorEmail != nil && *r.AuthorEmail != "", is.Email)),
	)
}

// ListCommentsQuery - moderation view filter
type ListCommentsQuery struct {
	Status    string `form:"status"`
	ArticleID string `form:"article_id"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

func (q ListCommentsQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Status,
			validation.In(
				string(StatusPending), string(StatusApproved),
				string(StatusRejected), string(StatusSpam),
			),
		),
		validation.Field(&q.ArticleID, validation.When(q.ArticleID != "", is.UUIDv4)),
	)
}
