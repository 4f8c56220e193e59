package media

import (
	"fmt"

	"newsroom-backend/internal/shared/apperror"
)

var (
	ErrMediaNotFound = apperror.NotFound("Media not found")

	// ErrNotOwner: delete chỉ uploader hoặc admin
	ErrNotOwner = apperror.Forbidden("You do not have permission to delete this media")

	// ErrNoFile: multipart request không có file part
	ErrNoFile = apperror.BadRequest("File upload error: no file provided")
)

// ErrFileTooLarge build error với limit cụ thể trong message
func ErrFileTooLarge(maxBytes int64) error {
	return apperror.BadRequest(fmt.Sprintf("File upload error: file exceeds maximum size of %d bytes", maxBytes))
}

// ErrMimeNotAllowed build error nêu rõ mime type bị từ chối
func ErrMimeNotAllowed(mimeType string) error {
	return apperror.BadRequest(fmt.Sprintf("File upload error: file type %s is not allowed", mimeType))
}
