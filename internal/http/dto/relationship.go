package dto

import (
	"time"

	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/service"
)

type AddRelationshipRequest struct {
	RelatedUserID int64  `json:"related_user_id,string" binding:"required"`
	Relationship  string `json:"relationship" binding:"required"`
}

type SetWorkspaceRelationRequest struct {
	Relation string `json:"relation" binding:"required"`
}

type RelationshipResponse struct {
	UserID        int64              `json:"user_id,string"`
	RelatedUserID int64              `json:"related_user_id,string"`
	Relationship  model.Relationship `json:"relationship"`
	Confirmed     bool               `json:"confirmed"`
	CreatedAt     time.Time          `json:"created_at"`
	RelatedUser   *UserSummary       `json:"related_user,omitempty"`
}

func ToRelationshipResponse(c *model.FamilyConnection, related *model.User) RelationshipResponse {
	return RelationshipResponse{
		UserID:        c.UserID,
		RelatedUserID: c.RelatedUserID,
		Relationship:  c.Relationship,
		Confirmed:     c.Confirmed,
		CreatedAt:     c.CreatedAt,
		RelatedUser:   ToUserSummary(related),
	}
}

func ToRelationshipResponses(views []service.RelationshipView) []RelationshipResponse {
	out := make([]RelationshipResponse, len(views))
	for i := range views {
		out[i] = ToRelationshipResponse(&views[i].Connection, views[i].Related)
	}
	return out
}

type WorkspaceRelationResponse struct {
	WorkspaceID   int64                             `json:"workspace_id,string"`
	UserID        int64                             `json:"user_id,string"`
	RelatedUserID int64                             `json:"related_user_id,string"`
	Relation      model.Relationship                `json:"relation"`
	Status        model.WorkspaceRelationshipStatus `json:"status"`
	UpdatedAt     time.Time                         `json:"updated_at"`
}

func ToWorkspaceRelationResponse(r *model.WorkspaceRelationship) WorkspaceRelationResponse {
	return WorkspaceRelationResponse{
		WorkspaceID:   r.WorkspaceID,
		UserID:        r.UserID,
		RelatedUserID: r.RelatedUserID,
		Relation:      r.Relation,
		Status:        r.Status,
		UpdatedAt:     r.UpdatedAt,
	}
}

func ToWorkspaceRelationResponses(rels []model.WorkspaceRelationship) []WorkspaceRelationResponse {
	out := make([]WorkspaceRelationResponse, len(rels))
	for i := range rels {
		out[i] = ToWorkspaceRelationResponse(&rels[i])
	}
	return out
}

type FamilyTreeNode struct {
	UserID       int64   `json:"user_id,string"`
	Name         string  `json:"name"`
	ProfileImage *string `json:"profile_image,omitempty"`
	Depth        int     `json:"depth"`
}

type FamilyTreeEdge struct {
	From         int64  `json:"from,string"`
	To           int64  `json:"to,string"`
	Relationship string `json:"relationship"`
}

type FamilyTreeResponse struct {
	RootID int64            `json:"root_id,string"`
	Depth  int              `json:"depth"`
	Source string           `json:"source"`
	Nodes  []FamilyTreeNode `json:"nodes"`
	Edges  []FamilyTreeEdge `json:"edges"`
}

func ToFamilyTreeResponse(t *service.FamilyTree) FamilyTreeResponse {
	resp := FamilyTreeResponse{
		RootID: t.RootID,
		Depth:  t.Depth,
		Source: t.Source,
		Nodes:  make([]FamilyTreeNode, len(t.Nodes)),
		Edges:  make([]FamilyTreeEdge, len(t.Edges)),
	}
	for i, n := range t.Nodes {
		resp.Nodes[i] = FamilyTreeNode{UserID: n.UserID, Name: n.Name, ProfileImage: n.ProfileImage, Depth: n.Depth}
	}
	for i, e := range t.Edges {
		resp.Edges[i] = FamilyTreeEdge{From: e.FromUserID, To: e.ToUserID, Relationship: e.Relationship}
	}
	return resp
}
