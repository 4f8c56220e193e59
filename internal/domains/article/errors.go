package article

import (
	"newsroom-backend/internal/shared/apperror"
)

var (
	ErrArticleNotFound = apperror.NotFound("Article not found")

	// ErrSlugTaken: unique index backstop cho UniqueSlug race
	ErrSlugTaken = apperror.Conflict("Article slug already exists")

	// ErrNotOwner: author chỉ sửa/xóa bài của mình; admin/editor bypass
	ErrNotOwner = apperror.Forbidden("You do not have permission to modify this article")

	// ErrInvalidStatus: status ngoài {draft, published, archived}
	ErrInvalidStatus = apperror.BadRequest("Invalid article status")

	// ErrAlreadyPublished / ErrNotPublished cho publish/archive actions
	ErrAlreadyPublished = apperror.BadRequest("Article is already published")
	ErrNotPublished     = apperror.BadRequest("Only published articles can be archived")

	// ErrCategoryNotFound: category_id trỏ tới row không tồn tại
	ErrCategoryNotFound = apperror.BadRequest("Category not found")

	// ErrTagNotFound: một trong các tag_ids không tồn tại
	ErrTagNotFound = apperror.BadRequest("One or more tags not found")
)
