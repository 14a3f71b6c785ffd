package model

import "time"

type ImageType string

const (
	ImageTypeProfile  ImageType = "profile"
	ImageTypeGallery  ImageType = "gallery"
	ImageTypeDocument ImageType = "document"
)

func (t ImageType) IsValid() bool {
	return t == ImageTypeProfile || t == ImageTypeGallery || t == ImageTypeDocument
}

// Image is the metadata of a blob held in the image bucket. ID is the
// hex form of the bucket's object id.
type Image struct {
	ID           string    `json:"id"`
	UserID       int64     `json:"user_id"`
	Type         ImageType `json:"type"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
