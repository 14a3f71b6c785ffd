package model

import (
	"encoding/json"
	"time"
)

type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer_not_to_say"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderPreferNotToSay:
		return true
	}
	return false
}

type MaritalStatus string

const (
	MaritalStatusSingle   MaritalStatus = "single"
	MaritalStatusMarried  MaritalStatus = "married"
	MaritalStatusDivorced MaritalStatus = "divorced"
	MaritalStatusWidowed  MaritalStatus = "widowed"
	MaritalStatusOther    MaritalStatus = "other"
)

func (m MaritalStatus) IsValid() bool {
	switch m {
	case MaritalStatusSingle, MaritalStatusMarried, MaritalStatusDivorced, MaritalStatusWidowed, MaritalStatusOther:
		return true
	}
	return false
}

// FamilyRolePending is assigned at signup until the user picks a role.
const FamilyRolePending = "pending"

type User struct {
	ID                 int64           `json:"id"`
	WorkOSID           *string         `json:"-"`
	Email              *string         `json:"email,omitempty"`
	PasswordHash       *string         `json:"-"`
	WalletAddress      *string         `json:"wallet_address,omitempty"`
	Name               string          `json:"name"`
	ProfileImage       *string         `json:"profile_image,omitempty"`
	Occupation         *string         `json:"occupation,omitempty"`
	PhoneNumber        *string         `json:"phone_number,omitempty"`
	Birthday           *time.Time      `json:"birthday,omitempty"`
	Gender             *Gender         `json:"gender,omitempty"`
	MaritalStatus      *MaritalStatus  `json:"marital_status,omitempty"`
	Location           *string         `json:"location,omitempty"`
	Bio                *string         `json:"bio,omitempty"`
	Interests          []string        `json:"interests"`
	FamilyRole         string          `json:"family_role"`
	Settings           json.RawMessage `json:"settings"`
	Points             int32           `json:"points"`
	PrimaryWorkspaceID *int64          `json:"primary_workspace_id,omitempty"`
	Discord            *DiscordAccount `json:"discord,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// DisplayEmail returns the email or an empty string.
func (u *User) DisplayEmail() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

type DiscordAccount struct {
	ID          string              `json:"id"`
	Username    string              `json:"username"`
	Email       *string             `json:"email,omitempty"`
	Guilds      []DiscordGuild      `json:"guilds"`
	Connections []DiscordConnection `json:"connections"`
}

type DiscordGuild struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"`
	Owner       bool   `json:"owner"`
	Permissions int64  `json:"permissions,string"`
}

type DiscordConnection struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Revoked bool   `json:"revoked"`
}

type Milestone struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Date        time.Time `json:"date"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	IPFSCID     *string   `json:"ipfs_cid,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
