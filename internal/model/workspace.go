package model

import "time"

type WorkspaceRole string

const (
	WorkspaceRoleAdmin  WorkspaceRole = "admin"
	WorkspaceRoleMember WorkspaceRole = "member"
)

func (r WorkspaceRole) IsValid() bool {
	return r == WorkspaceRoleAdmin || r == WorkspaceRoleMember
}

// Workspace is a family group. Members join through invitations.
type Workspace struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WorkspaceMember struct {
	WorkspaceID int64         `json:"workspace_id"`
	UserID      int64         `json:"user_id"`
	Role        WorkspaceRole `json:"role"`
	JoinedAt    time.Time     `json:"joined_at"`
}

func (m *WorkspaceMember) IsAdmin() bool {
	return m.Role == WorkspaceRoleAdmin
}
