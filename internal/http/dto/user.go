package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/service"
)

// UserSummary is the compact user shown next to members and relatives.
type UserSummary struct {
	ID           int64   `json:"id,string"`
	Name         string  `json:"name"`
	Email        *string `json:"email,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
}

func ToUserSummary(u *model.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
	}
}

type UserResponse struct {
	ID                 int64                 `json:"id,string"`
	Name               string                `json:"name"`
	Email              *string               `json:"email,omitempty"`
	WalletAddress      *string               `json:"wallet_address,omitempty"`
	ProfileImage       *string               `json:"profile_image,omitempty"`
	Occupation         *string               `json:"occupation,omitempty"`
	PhoneNumber        *string               `json:"phone_number,omitempty"`
	Birthday           *string               `json:"birthday,omitempty"`
	Gender             *model.Gender         `json:"gender,omitempty"`
	MaritalStatus      *model.MaritalStatus  `json:"marital_status,omitempty"`
	Location           *string               `json:"location,omitempty"`
	Bio                *string               `json:"bio,omitempty"`
	Interests          []string              `json:"interests"`
	FamilyRole         string                `json:"family_role"`
	Settings           json.RawMessage       `json:"settings"`
	Points             int32                 `json:"points"`
	PrimaryWorkspaceID *int64                `json:"primary_workspace_id,omitempty,string"`
	Discord            *model.DiscordAccount `json:"discord,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

func ToUserResponse(u *model.User) *UserResponse {
	resp := &UserResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		WalletAddress:      u.WalletAddress,
		ProfileImage:       u.ProfileImage,
		Occupation:         u.Occupation,
		PhoneNumber:        u.PhoneNumber,
		Gender:             u.Gender,
		MaritalStatus:      u.MaritalStatus,
		Location:           u.Location,
		Bio:                u.Bio,
		Interests:          u.Interests,
		FamilyRole:         u.FamilyRole,
		Settings:           u.Settings,
		Points:             u.Points,
		PrimaryWorkspaceID: u.PrimaryWorkspaceID,
		Discord:            u.Discord,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
	if resp.Interests == nil {
		resp.Interests = []string{}
	}
	if len(resp.Settings) == 0 {
		resp.Settings = json.RawMessage(`{}`)
	}
	if u.Birthday != nil {
		b := u.Birthday.Format(time.DateOnly)
		resp.Birthday = &b
	}
	return resp
}

func ToUserResponses(users []model.User) []*UserResponse {
	out := make([]*UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out
}

// UpdateProfileRequest is a partial update: absent fields are left alone.
type UpdateProfileRequest struct {
	Name          *string              `json:"name" binding:"omitempty,min=1,max=255"`
	ProfileImage  *string              `json:"profile_image" binding:"omitempty,max=2048"`
	Occupation    *string              `json:"occupation" binding:"omitempty,max=255"`
	PhoneNumber   *string              `json:"phone_number" binding:"omitempty,max=50"`
	Birthday      *string              `json:"birthday" binding:"omitempty,datetime=2006-01-02"`
	Gender        *model.Gender        `json:"gender"`
	MaritalStatus *model.MaritalStatus `json:"marital_status"`
	Location      *string              `json:"location" binding:"omitempty,max=255"`
	Bio           *string              `json:"bio" binding:"omitempty,max=5000"`
	Interests     *[]string            `json:"interests"`
	FamilyRole    *string              `json:"family_role" binding:"omitempty,max=100"`
	Settings      json.RawMessage      `json:"settings"`
}

func (r UpdateProfileRequest) ToUpdate() (service.ProfileUpdate, error) {
	update := service.ProfileUpdate{
		Name:          r.Name,
		ProfileImage:  r.ProfileImage,
		Occupation:    r.Occupation,
		PhoneNumber:   r.PhoneNumber,
		Gender:        r.Gender,
		MaritalStatus: r.MaritalStatus,
		Location:      r.Location,
		Bio:           r.Bio,
		Interests:     r.Interests,
		FamilyRole:    r.FamilyRole,
		Settings:      r.Settings,
	}
	if r.Birthday != nil {
		b, err := time.Parse(time.DateOnly, *r.Birthday)
		if err != nil {
			return service.ProfileUpdate{}, fmt.Errorf("%w: birthday must be YYYY-MM-DD", service.ErrInvalidProfile)
		}
		update.Birthday = &b
	}
	return update, nil
}

type CreateMilestoneRequest struct {
	Date        string  `json:"date" binding:"required"`
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
}

type MilestoneResponse struct {
	ID          int64     `json:"id,string"`
	UserID      int64     `json:"user_id,string"`
	Date        string    `json:"date"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	IPFSCID     *string   `json:"ipfs_cid,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToMilestoneResponse(m *model.Milestone) MilestoneResponse {
	return MilestoneResponse{
		ID:          m.ID,
		UserID:      m.UserID,
		Date:        m.Date.Format(time.DateOnly),
		Title:       m.Title,
		Description: m.Description,
		IPFSCID:     m.IPFSCID,
		CreatedAt:   m.CreatedAt,
	}
}

// ParseDate accepts a calendar date or a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
