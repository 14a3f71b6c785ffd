package dto

import (
	"time"

	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/service"
)

type ImageResponse struct {
	ID          string          `json:"id"`
	URL         string          `json:"url"`
	Filename    string          `json:"filename"`
	ContentType string          `json:"content_type"`
	Size        int64           `json:"size"`
	Type        model.ImageType `json:"type"`
	UploadedAt  time.Time       `json:"uploaded_at"`
}

func ToImageResponse(img *model.Image) ImageResponse {
	filename := img.OriginalName
	if filename == "" {
		filename = img.Filename
	}
	return ImageResponse{
		ID:          img.ID,
		URL:         service.ImageURL(img.ID),
		Filename:    filename,
		ContentType: img.ContentType,
		Size:        img.Size,
		Type:        img.Type,
		UploadedAt:  img.UploadedAt,
	}
}

func ToImageResponses(images []model.Image) []ImageResponse {
	out := make([]ImageResponse, len(images))
	for i := range images {
		out[i] = ToImageResponse(&images[i])
	}
	return out
}

type PinnedImageResponse struct {
	CID       string            `json:"cid"`
	Name      string            `json:"name"`
	URL       string            `json:"url"`
	SignedURL string            `json:"authenticated_url,omitempty"`
	Size      int64             `json:"size"`
	PinnedAt  time.Time         `json:"pinned_at"`
	Metadata  map[string]string `json:"metadata"`
}

type PinnedImagesResponse struct {
	Images []PinnedImageResponse `json:"images"`
}

func ToPinnedImagesResponse(images []service.PinnedImage) PinnedImagesResponse {
	out := make([]PinnedImageResponse, len(images))
	for i, img := range images {
		metadata := img.Metadata
		if metadata == nil {
			metadata = map[string]string{}
		}
		out[i] = PinnedImageResponse{
			CID:       img.CID,
			Name:      img.Name,
			URL:       img.URL,
			SignedURL: img.SignedURL,
			Size:      img.Size,
			PinnedAt:  img.PinnedAt,
			Metadata:  metadata,
		}
	}
	return PinnedImagesResponse{Images: out}
}
