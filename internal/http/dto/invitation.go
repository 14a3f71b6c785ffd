package dto

import (
	"time"

	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/service"
)

type CreateInvitationRequest struct {
	Email   string `json:"email" binding:"required,email,max=255"`
	Message string `json:"message" binding:"max=2000"`
}

type InvitationResponse struct {
	ID          int64                  `json:"id,string"`
	WorkspaceID int64                  `json:"workspace_id,string"`
	Email       string                 `json:"email"`
	Status      model.InvitationStatus `json:"status"`
	InvitedBy   int64                  `json:"invited_by,string"`
	AcceptedBy  *int64                 `json:"accepted_by,omitempty,string"`
	ExpiresAt   time.Time              `json:"expires_at"`
	CreatedAt   time.Time              `json:"created_at"`
	AcceptedAt  *time.Time             `json:"accepted_at,omitempty"`
	InviteURL   string                 `json:"invite_url,omitempty"`
}

func ToInvitationResponse(inv *model.Invitation) InvitationResponse {
	return InvitationResponse{
		ID:          inv.ID,
		WorkspaceID: inv.WorkspaceID,
		Email:       inv.Email,
		Status:      inv.Status,
		InvitedBy:   inv.InvitedBy,
		AcceptedBy:  inv.AcceptedBy,
		ExpiresAt:   inv.ExpiresAt,
		CreatedAt:   inv.CreatedAt,
		AcceptedAt:  inv.AcceptedAt,
	}
}

func ToInvitationResponses(invitations []model.Invitation) []InvitationResponse {
	out := make([]InvitationResponse, len(invitations))
	for i := range invitations {
		out[i] = ToInvitationResponse(&invitations[i])
	}
	return out
}

type InviterBrief struct {
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
}

type ValidateInvitationResponse struct {
	Email     string         `json:"email"`
	Workspace WorkspaceBrief `json:"workspace"`
	Inviter   *InviterBrief  `json:"inviter,omitempty"`
	ExpiresAt time.Time      `json:"expires_at"`
	Valid     bool           `json:"valid"`
}

func ToValidateInvitationResponse(d *service.InvitationDetails) ValidateInvitationResponse {
	resp := ValidateInvitationResponse{
		Email:     d.Invitation.Email,
		Workspace: WorkspaceBrief{ID: d.Workspace.ID, Name: d.Workspace.Name},
		ExpiresAt: d.Invitation.ExpiresAt,
		Valid:     true,
	}
	if d.Inviter != nil {
		resp.Inviter = &InviterBrief{Name: d.Inviter.Name, Email: d.Inviter.Email}
	}
	return resp
}
