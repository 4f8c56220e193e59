package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	media "newsroom-backend/internal/domains/media"
	user "newsroom-backend/internal/domains/user"
	"newsroom-backend/internal/infrastructure/storage"
	"newsroom-backend/internal/shared/utils"
	"newsroom-backend/pkg/metrics"
)

// thumbnail fit trong 320x320, giữ aspect ratio
const thumbnailMaxDim = 320

// UploadLimits - size + mime allow-list từ config
type UploadLimits struct {
	MaxSizeBytes int64
	Allowed      func(mimeType string) bool
}

type mediaService struct {
	repo      media.Repository
	storage   storage.ObjectStorage
	limits    UploadLimits
	collector *metrics.Collector
}

func NewMediaService(
	repo media.Repository,
	objectStorage storage.ObjectStorage,
	limits UploadLimits,
	collector *metrics.Collector,
) media.Service {
	return &mediaService{
		repo:      repo,
		storage:   objectStorage,
		limits:    limits,
		collector: collector,
	}
}

// Upload - file đã buffer in memory ở handler. Validate size/mime,
// upload object, generate thumbnail với images, ghi metadata row.
func (s *mediaService) Upload(ctx context.Context, actor *user.User, input media.UploadInput) (*media.Media, error) {
	if len(input.Data) == 0 {
		return nil, media.ErrNoFile
	}

	if int64(len(input.Data)) > s.limits.MaxSizeBytes {
		return nil, media.ErrFileTooLarge(s.limits.MaxSizeBytes)
	}

	if !s.limits.Allowed(input.MimeType) {
		return nil, media.ErrMimeNotAllowed(input.MimeType)
	}

	// Storage key: uuid + extension gốc, không đụng original name
	ext := strings.ToLower(filepath.Ext(input.OriginalName))
	key := uuid.New().String() + ext

	url, err := s.storage.Upload(ctx, key, input.Data, input.MimeType)
	if err != nil {
		return nil, fmt.Errorf("upload object: %w", err)
	}

	m := &media.Media{
		Filename:     key,
		OriginalName: input.OriginalName,
		URL:          url,
		MimeType:     input.MimeType,
		Size:         int64(len(input.Data)),
		UploadedBy:   actor.ID,
	}

	if media.IsImage(input.MimeType) {
		thumbURL, err := s.uploadThumbnail(ctx, key, input.MimeType, input.Data)
		if err != nil {
			// Thumbnail fail không chặn upload - log rồi đi tiếp
			log.Warn().Err(err).Str("key", key).Msg("failed to generate thumbnail")
		} else if thumbURL != "" {
			m.ThumbnailURL = &thumbURL
		}
	}

	if err := s.repo.Create(ctx, m); err != nil {
		// Metadata fail -> dọn object vừa upload, tránh orphan
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			log.Error().Err(delErr).Str("key", key).Msg("failed to clean up object after metadata failure")
		}
		return nil, err
	}

	s.collector.RecordUpload(m.Size)

	log.Info().
		Str("media_id", m.ID.String()).
		Str("key", key).
		Int64("size", m.Size).
		Msg("media uploaded")

	return m, nil
}

// uploadThumbnail decode, resize fit 320x320, encode lại cùng format.
// Format không encode được (webp) trả về "" không lỗi.
func (s *mediaService) uploadThumbnail(ctx context.Context, key, mimeType string, data []byte) (string, error) {
	var format imaging.Format
	switch mimeType {
	case "image/jpeg":
		format = imaging.JPEG
	case "image/png":
		format = imaging.PNG
	case "image/gif":
		format = imaging.GIF
	default:
		return "", nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	thumb := imaging.Fit(img, thumbnailMaxDim, thumbnailMaxDim, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, format); err != nil {
		return "", fmt.Errorf("encode thumbnail: %w", err)
	}

	return s.storage.Upload(ctx, media.ThumbnailKey(key), buf.Bytes(), mimeType)
}

// List - admin thấy toàn bộ, role khác chỉ thấy media của mình
func (s *mediaService) List(ctx context.Context, actor *user.User, page, limit int) ([]media.Media, int64, error) {
	page, limit = utils.NormalizePagination(page, limit)

	filter := media.Filter{
		Limit:  limit,
		Offset: utils.Offset(page, limit),
	}
	if !actor.IsAdmin() {
		filter.UploadedBy = &actor.ID
	}

	return s.repo.List(ctx, filter)
}

func (s *mediaService) Get(ctx context.Context, id uuid.UUID) (*media.Media, error) {
	return s.repo.FindByID(ctx, id)
}

// Delete owner-or-admin. Object + thumbnail xóa khỏi storage ngay
// (không qua queue - user đang chờ response xác nhận).
func (s *mediaService) Delete(ctx context.Context, actor *user.User, id uuid.UUID) error {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if m.UploadedBy != actor.ID && !actor.IsAdmin() {
		return media.ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, m.Filename); err != nil {
		log.Error().Err(err).Str("key", m.Filename).Msg("failed to delete object from storage")
	}
	if m.ThumbnailURL != nil {
		if err := s.storage.Delete(ctx, media.ThumbnailKey(m.Filename)); err != nil {
			log.Error().Err(err).Str("key", media.ThumbnailKey(m.Filename)).Msg("failed to delete thumbnail from storage")
		}
	}

	return nil
}
