package dto

import (
	"time"

	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/service"
)

type CreateWorkspaceRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

type AddMemberRequest struct {
	UserID int64               `json:"user_id,string" binding:"required"`
	Role   model.WorkspaceRole `json:"role"`
}

type WorkspaceResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	OwnerID   int64     `json:"owner_id,string"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToWorkspaceResponse(ws *model.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:        ws.ID,
		Name:      ws.Name,
		Slug:      ws.Slug,
		OwnerID:   ws.OwnerID,
		CreatedAt: ws.CreatedAt,
		UpdatedAt: ws.UpdatedAt,
	}
}

func ToWorkspaceResponses(workspaces []model.Workspace) []WorkspaceResponse {
	out := make([]WorkspaceResponse, len(workspaces))
	for i := range workspaces {
		out[i] = ToWorkspaceResponse(&workspaces[i])
	}
	return out
}

// WorkspaceBrief is the workspace as an invitee sees it.
type WorkspaceBrief struct {
	ID   int64  `json:"id,string"`
	Name string `json:"name"`
}

type MemberResponse struct {
	WorkspaceID int64               `json:"workspace_id,string"`
	UserID      int64               `json:"user_id,string"`
	Role        model.WorkspaceRole `json:"role"`
	JoinedAt    time.Time           `json:"joined_at"`
	User        *UserSummary        `json:"user,omitempty"`
}

func ToMemberResponse(m *model.WorkspaceMember, u *model.User) MemberResponse {
	return MemberResponse{
		WorkspaceID: m.WorkspaceID,
		UserID:      m.UserID,
		Role:        m.Role,
		JoinedAt:    m.JoinedAt,
		User:        ToUserSummary(u),
	}
}

func ToMemberResponses(views []service.MemberView) []MemberResponse {
	out := make([]MemberResponse, len(views))
	for i := range views {
		out[i] = ToMemberResponse(&views[i].Member, views[i].User)
	}
	return out
}
