package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/nekogravitycat/garage-booking-backend/internal/logging"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/storage"
)

// UploadInput is one uploaded image. Content is read at most MaxUploadBytes+1.
type UploadInput struct {
	Filename   string
	Content    io.Reader
	UploadedBy string
}

type Service interface {
	Upload(ctx context.Context, in UploadInput) (*File, error)
	Get(ctx context.Context, id string) (*File, error)
	Open(ctx context.Context, id string) (io.ReadCloser, *File, error)
	OpenThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo    Repository
	store   storage.Storage
	thumbs  *storage.Thumbnailer
	newUUID func() string
}

func NewService(repo Repository, store storage.Storage, thumbs *storage.Thumbnailer) Service {
	return &service{
		repo:    repo,
		store:   store,
		thumbs:  thumbs,
		newUUID: func() string { return uuid.New().String() },
	}
}

func (s *service) Upload(ctx context.Context, in UploadInput) (*File, error) {
	content, err := io.ReadAll(io.LimitReader(in.Content, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(content) > MaxUploadBytes {
		return nil, ErrTooLarge
	}

	// The declared content type is not trusted.
	contentType := http.DetectContentType(content)
	ext, ok := allowedTypes[contentType]
	if !ok {
		return nil, ErrUnsupportedType
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return nil, ErrInvalidImage
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return nil, ErrImageTooLarge
	}

	thumb, err := s.thumbs.Thumbnail(bytes.NewReader(content))
	if err != nil {
		return nil, ErrInvalidImage
	}

	id := s.newUUID()
	// Shard by the first two id characters: upload/ab/<uuid>.ext
	shard := id[:2]
	key := fmt.Sprintf("upload/%s/%s%s", shard, id, ext)
	thumbKey := fmt.Sprintf("upload/%s/%s_thumb.jpg", shard, id)

	if err := s.store.Put(ctx, key, bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}
	if err := s.store.Put(ctx, thumbKey, bytes.NewReader(thumb)); err != nil {
		s.removeObjects(ctx, key)
		return nil, fmt.Errorf("failed to store thumbnail: %w", err)
	}

	f := &File{
		ID:           id,
		OriginalName: in.Filename,
		ContentType:  contentType,
		Size:         int64(len(content)),
		StorageKey:   key,
		ThumbnailKey: &thumbKey,
	}
	if in.UploadedBy != "" {
		f.UploadedBy = &in.UploadedBy
	}

	if err := s.repo.Create(ctx, f); err != nil {
		s.removeObjects(ctx, key, thumbKey)
		return nil, err
	}

	logging.FromContext(ctx).Info().
		Str("file_id", f.ID).
		Str("content_type", contentType).
		Int64("size", f.Size).
		Msg("file uploaded")
	return f, nil
}

func (s *service) Get(ctx context.Context, id string) (*File, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Open(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.open(ctx, f.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	return rc, f, nil
}

func (s *service) OpenThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if f.ThumbnailKey == nil {
		return nil, nil, ErrNoThumbnail
	}
	rc, err := s.open(ctx, *f.ThumbnailKey)
	if err != nil {
		return nil, nil, err
	}
	return rc, f, nil
}

func (s *service) open(ctx context.Context, key string) (io.ReadCloser, error) {
	rc, err := s.store.Open(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return rc, nil
}

// Delete removes the record first; stored objects are cleaned up best effort.
func (s *service) Delete(ctx context.Context, id string) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	keys := []string{f.StorageKey}
	if f.ThumbnailKey != nil {
		keys = append(keys, *f.ThumbnailKey)
	}
	s.removeObjects(ctx, keys...)
	return nil
}

func (s *service) removeObjects(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := s.store.Remove(ctx, key); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("failed to remove stored object")
		}
	}
}
