package tag

import (
	"newsroom-backend/internal/shared/apperror"
)

var (
	ErrTagNotFound = apperror.NotFound("Tag not found")

	// ErrTagExists: unique constraints trên name hoặc slug
	ErrTagExists = apperror.Conflict("Tag already exists")

	// ErrTagInUse: còn rows trong article_tags trỏ tới tag
	ErrTagInUse = apperror.BadRequest("Cannot delete tag while articles reference it")
)
