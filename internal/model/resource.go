package model

import "time"

type ResourceCategory string

const (
	ResourceCategoryAI      ResourceCategory = "AI"
	ResourceCategoryMemes   ResourceCategory = "Memes"
	ResourceCategoryDAO     ResourceCategory = "DAO"
	ResourceCategoryQuantum ResourceCategory = "Quantum"
)

func (c ResourceCategory) IsValid() bool {
	switch c {
	case ResourceCategoryAI, ResourceCategoryMemes, ResourceCategoryDAO, ResourceCategoryQuantum:
		return true
	}
	return false
}

type ResourceSource string

const (
	ResourceSourceDiscord ResourceSource = "discord"
	ResourceSourceWeb     ResourceSource = "web"
	ResourceSourceAPI     ResourceSource = "api"
)

type ResourceStatus string

const (
	ResourceStatusPending  ResourceStatus = "pending"
	ResourceStatusApproved ResourceStatus = "approved"
	ResourceStatusRejected ResourceStatus = "rejected"
)

func (s ResourceStatus) IsValid() bool {
	switch s {
	case ResourceStatusPending, ResourceStatusApproved, ResourceStatusRejected:
		return true
	}
	return false
}

type Resource struct {
	ID               int64            `json:"id"`
	Title            string           `json:"title"`
	Description      *string          `json:"description,omitempty"`
	URL              string           `json:"url"`
	Category         ResourceCategory `json:"category"`
	Tags             []string         `json:"tags"`
	Source           ResourceSource   `json:"source"`
	Status           ResourceStatus   `json:"status"`
	SubmittedBy      *int64           `json:"submitted_by,omitempty"`
	DiscordMessageID *string          `json:"discord_message_id,omitempty"`
	DiscordChannelID *string          `json:"discord_channel_id,omitempty"`
	DiscordServerID  *string          `json:"discord_server_id,omitempty"`
	ModerationNotes  *string          `json:"moderation_notes,omitempty"`
	Likes            int32            `json:"likes"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

type CryptoUser struct {
	ID            int64     `json:"id"`
	TwitterHandle string    `json:"twitter_handle"`
	Specialty     string    `json:"specialty"`
	SubmittedBy   *int64    `json:"submitted_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type BetaSignup struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Name        *string   `json:"name,omitempty"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Gender      *string   `json:"gender,omitempty"`
	Age         *int32    `json:"age,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
