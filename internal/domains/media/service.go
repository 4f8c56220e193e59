package media

import (
	"context"

	"github.com/google/uuid"

	user "newsroom-backend/internal/domains/user"
)

// UploadInput - file đã buffer toàn bộ trong memory (size limit
// enforce trước khi đọc hết buffer)
type UploadInput struct {
	OriginalName string
	MimeType     string
	Data         []byte
}

// Service là business logic contract cho media domain
type Service interface {
	// Upload validate size/mime, đẩy object (+thumbnail với images)
	// lên storage rồi ghi metadata
	Upload(ctx context.Context, actor *user.User, input UploadInput) (*Media, error)

	// List - user thường chỉ thấy media của mình, admin thấy tất cả
	List(ctx context.Context, actor *user.User, page, limit int) ([]Media, int64, error)

	Get(ctx context.Context, id uuid.UUID) (*Media, error)

	// Delete owner-or-admin; xóa cả object và thumbnail khỏi storage
	Delete(ctx context.Context, actor *user.User, id uuid.UUID) error
}
