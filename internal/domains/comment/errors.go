package comment

import (
	"newsroom-backend/internal/shared/apperror"
)

var (
	ErrCommentNotFound = apperror.NotFound("Comment not found")

	// ErrGuestIdentityRequired: guest comment thiếu name hoặc email
	ErrGuestIdentityRequired = apperror.BadRequest("Guest comments require author name and email")

	// ErrParentMismatch: reply trỏ tới parent thuộc bài khác
	ErrParentMismatch = apperror.BadRequest("Parent comment belongs to a different article")

	// ErrParentNotFound: parent_id không tồn tại
	ErrParentNotFound = apperror.BadRequest("Parent comment not found")

	// ErrHasReplies: delete bị block khi còn replies - hard precondition,
	// không cascade
	ErrHasReplies = apperror.BadRequest("Cannot delete comment with replies")

	// ErrAlreadyModerated: chỉ pending mới transition được
	ErrAlreadyModerated = apperror.BadRequest("Comment has already been moderated")

	// ErrNotOwner: delete chỉ owner hoặc admin
	ErrNotOwner = apperror.Forbidden("You do not have permission to delete this comment")

	// ErrArticleNotFound: comment vào bài không tồn tại
	ErrArticleNotFound = apperror.BadRequest("Article not found")
)
