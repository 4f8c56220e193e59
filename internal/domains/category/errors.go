package category

import (
	"newsroom-backend/internal/shared/apperror"
)

var (
	ErrCategoryNotFound = apperror.NotFound("Category not found")

	// ErrSlugTaken: unique index trên slug (race với UniqueSlug check)
	ErrSlugTaken = apperror.Conflict("Category slug already exists")

	// ErrSelfParent: category không được là parent của chính nó
	ErrSelfParent = apperror.BadRequest("Category cannot be its own parent")

	// ErrParentNotFound: parent_id trỏ tới category không tồn tại
	ErrParentNotFound = apperror.BadRequest("Parent category not found")

	// ErrHasChildren / ErrHasArticles: delete bị block khi còn liên kết
	ErrHasChildren = apperror.BadRequest("Cannot delete category with child categories")
	ErrHasArticles = apperror.BadRequest("Cannot delete category with articles")
)
