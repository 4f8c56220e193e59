package media

import (
	"time"

	"github.com/google/uuid"
)

// Media entity - metadata của một object trong storage.
// Filename là storage key (unique), URL trỏ thẳng tới object.
type Media struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Filename     string    `db:"filename" json:"filename"`
	OriginalName string    `db:"original_name" json:"original_name"`
	URL          string    `db:"url" json:"url"`
	ThumbnailURL *string   `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
	MimeType     string    `db:"mime_type" json:"mime_type"`
	Size         int64     `db:"size" json:"size"`
	UploadedBy   uuid.UUID `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ThumbnailKey: key của thumbnail object suy ra từ filename.
// Convention "thumb_" prefix, giữ cùng extension.
func ThumbnailKey(filename string) string {
	return "thumb_" + filename
}

// IsImage - chỉ image mới generate thumbnail
func IsImage(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}
