package dto

import (
	"time"

	"streetnetwork.app/kinship/internal/model"
)

type CreateResourceRequest struct {
	Title       string                 `json:"title" binding:"required,max=255"`
	Description *string                `json:"description" binding:"omitempty,max=5000"`
	URL         string                 `json:"url" binding:"required,url,max=2048"`
	Category    model.ResourceCategory `json:"category" binding:"required"`
	Tags        []string               `json:"tags" binding:"max=20,dive,max=50"`
}

type ModerateResourceRequest struct {
	Status          model.ResourceStatus `json:"status" binding:"required"`
	ModerationNotes *string              `json:"moderation_notes" binding:"omitempty,max=2000"`
}

type DiscordResourceRequest struct {
	MessageContent   string `json:"message_content" binding:"required"`
	DiscordUserID    string `json:"discord_user_id" binding:"required"`
	DiscordUsername  string `json:"discord_username" binding:"required"`
	DiscordServerID  string `json:"discord_server_id"`
	DiscordChannelID string `json:"discord_channel_id"`
	DiscordMessageID string `json:"discord_message_id"`
	ChannelName      string `json:"channel_name"`
}

type ResourceResponse struct {
	ID               int64                  `json:"id,string"`
	Title            string                 `json:"title"`
	Description      *string                `json:"description,omitempty"`
	URL              string                 `json:"url"`
	Category         model.ResourceCategory `json:"category"`
	Tags             []string               `json:"tags"`
	Source           model.ResourceSource   `json:"source"`
	Status           model.ResourceStatus   `json:"status"`
	SubmittedBy      *int64                 `json:"submitted_by,omitempty,string"`
	DiscordMessageID *string                `json:"discord_message_id,omitempty"`
	DiscordChannelID *string                `json:"discord_channel_id,omitempty"`
	DiscordServerID  *string                `json:"discord_server_id,omitempty"`
	ModerationNotes  *string                `json:"moderation_notes,omitempty"`
	Likes            int32                  `json:"likes"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

func ToResourceResponse(r *model.Resource) ResourceResponse {
	resp := ResourceResponse{
		ID:               r.ID,
		Title:            r.Title,
		Description:      r.Description,
		URL:              r.URL,
		Category:         r.Category,
		Tags:             r.Tags,
		Source:           r.Source,
		Status:           r.Status,
		SubmittedBy:      r.SubmittedBy,
		DiscordMessageID: r.DiscordMessageID,
		DiscordChannelID: r.DiscordChannelID,
		DiscordServerID:  r.DiscordServerID,
		ModerationNotes:  r.ModerationNotes,
		Likes:            r.Likes,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	return resp
}

type ResourceListResponse struct {
	Resources  []ResourceResponse `json:"resources"`
	Categories []string           `json:"categories"`
}

func ToResourceListResponse(resources []model.Resource, tags []string) ResourceListResponse {
	resp := ResourceListResponse{
		Resources:  make([]ResourceResponse, len(resources)),
		Categories: tags,
	}
	for i := range resources {
		resp.Resources[i] = ToResourceResponse(&resources[i])
	}
	if resp.Categories == nil {
		resp.Categories = []string{}
	}
	return resp
}
