package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/store"
)

const DefaultMaxImageBytes = 10 << 20

var (
	ErrImageNotFound    = errors.New("image not found")
	ErrInvalidImageID   = errors.New("invalid image id")
	ErrInvalidImageType = errors.New("invalid image type")
	ErrNotAnImage       = errors.New("only image uploads are allowed")
	ErrImageTooLarge    = errors.New("image exceeds the upload size limit")
	ErrNotImageOwner    = errors.New("only the uploader can delete this image")
)

// ImageURL is the public path an image is served from.
func ImageURL(imageID string) string {
	return "/api/v1/images/" + imageID
}

type ImageUploadParams struct {
	UserID      int64
	Type        model.ImageType
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type ImageService interface {
	Upload(ctx context.Context, params ImageUploadParams) (*model.Image, error)
	Open(ctx context.Context, imageID string) (*model.Image, io.ReadCloser, error)
	Delete(ctx context.Context, actorID int64, imageID string) error
	ListByUser(ctx context.Context, userID int64) ([]model.Image, error)
}

type imageService struct {
	imageStore store.ImageStore
	userStore  store.UserStore
	maxBytes   int64
}

func NewImageService(imageStore store.ImageStore, userStore store.UserStore, maxBytes int64) ImageService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &imageService{
		imageStore: imageStore,
		userStore:  userStore,
		maxBytes:   maxBytes,
	}
}

func (s *imageService) Upload(ctx context.Context, params ImageUploadParams) (*model.Image, error) {
	if params.Type == "" {
		params.Type = model.ImageTypeGallery
	}
	if !params.Type.IsValid() {
		return nil, ErrInvalidImageType
	}
	if !strings.HasPrefix(params.ContentType, "image/") {
		return nil, ErrNotAnImage
	}
	if params.Size > s.maxBytes {
		return nil, ErrImageTooLarge
	}

	// one byte past the limit is enough to detect a lying Content-Length
	body := io.LimitReader(params.Body, s.maxBytes+1)
	img, err := s.imageStore.Upload(ctx, store.ImageUpload{
		UserID:      params.UserID,
		Type:        params.Type,
		Filename:    params.Filename,
		ContentType: params.ContentType,
		Size:        params.Size,
	}, body)
	if err != nil {
		return nil, fmt.Errorf("storing image: %w", err)
	}
	if img.Size > s.maxBytes {
		if err := s.imageStore.Delete(ctx, img.ID); err != nil {
			slog.WarnContext(ctx, "failed to delete oversized image", "error", err, "image_id", img.ID)
		}
		return nil, ErrImageTooLarge
	}

	if params.Type == model.ImageTypeProfile {
		if err := s.userStore.SetProfileImage(ctx, params.UserID, ImageURL(img.ID)); err != nil {
			return nil, fmt.Errorf("setting profile image: %w", err)
		}
	}

	slog.InfoContext(ctx, "image uploaded",
		"user_id", params.UserID,
		"image_id", img.ID,
		"type", params.Type,
		"size", img.Size)
	return img, nil
}

func (s *imageService) Open(ctx context.Context, imageID string) (*model.Image, io.ReadCloser, error) {
	img, body, err := s.imageStore.Open(ctx, imageID)
	if err != nil {
		return nil, nil, mapImageError(err)
	}
	return img, body, nil
}

func (s *imageService) Delete(ctx context.Context, actorID int64, imageID string) error {
	img, err := s.imageStore.Get(ctx, imageID)
	if err != nil {
		return mapImageError(err)
	}
	if img.UserID != actorID {
		return ErrNotImageOwner
	}
	if err := s.imageStore.Delete(ctx, imageID); err != nil {
		return mapImageError(err)
	}

	slog.InfoContext(ctx, "image deleted", "user_id", actorID, "image_id", imageID)
	return nil
}

func (s *imageService) ListByUser(ctx context.Context, userID int64) ([]model.Image, error) {
	images, err := s.imageStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}
	return images, nil
}

func mapImageError(err error) error {
	switch {
	case errors.Is(err, store.ErrInvalidImageID):
		return ErrInvalidImageID
	case errors.Is(err, store.ErrNotFound):
		return ErrImageNotFound
	}
	return fmt.Errorf("image store: %w", err)
}
