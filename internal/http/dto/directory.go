package dto

import (
	"time"

	"streetnetwork.app/kinship/internal/model"
)

type CreateCryptoUserRequest struct {
	TwitterHandle string `json:"twitter_handle" binding:"max=100"`
	Specialty     string `json:"specialty" binding:"max=255"`
}

type CryptoUserResponse struct {
	ID            int64     `json:"id,string"`
	TwitterHandle string    `json:"twitter_handle"`
	Specialty     string    `json:"specialty"`
	SubmittedBy   *int64    `json:"submitted_by,omitempty,string"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToCryptoUserResponse(cu *model.CryptoUser) CryptoUserResponse {
	return CryptoUserResponse{
		ID:            cu.ID,
		TwitterHandle: cu.TwitterHandle,
		Specialty:     cu.Specialty,
		SubmittedBy:   cu.SubmittedBy,
		CreatedAt:     cu.CreatedAt,
	}
}

func ToCryptoUserResponses(entries []model.CryptoUser) []CryptoUserResponse {
	out := make([]CryptoUserResponse, len(entries))
	for i := range entries {
		out[i] = ToCryptoUserResponse(&entries[i])
	}
	return out
}

type NewsletterRequest struct {
	Email       string  `json:"email" binding:"required,email,max=255"`
	Name        *string `json:"name" binding:"omitempty,max=255"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=50"`
	Location    *string `json:"location" binding:"omitempty,max=255"`
	Gender      *string `json:"gender" binding:"omitempty,max=50"`
	Age         *int32  `json:"age" binding:"omitempty,min=0,max=150"`
}

type NewsletterStatusResponse struct {
	Subscribed bool `json:"subscribed"`
}

type ChatbotRequest struct {
	Message string `json:"message" binding:"required,max=4000"`
}

type ChatbotExtraction struct {
	Recipient     string `json:"recipient"`
	Description   string `json:"description"`
	SuggestedName string `json:"suggested_name"`
}

type ChatbotResponse struct {
	Message    string            `json:"message"`
	Extraction ChatbotExtraction `json:"extraction"`
}

type SignedURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
