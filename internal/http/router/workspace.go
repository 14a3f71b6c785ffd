package router

import (
	"github.com/gin-gonic/gin"

	"streetnetwork.app/kinship/internal/http/handler"
)

// WorkspaceRouter expects rg to already require a session. Membership and
// admin checks happen in the services.
func WorkspaceRouter(rg *gin.RouterGroup, h *handler.WorkspaceHandler, inv *handler.InvitationHandler, rel *handler.RelationshipHandler) {
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)

	rg.GET("/:id/members", h.ListMembers)
	rg.POST("/:id/members", h.AddMember)
	rg.DELETE("/:id/members/:memberId", h.RemoveMember)
	rg.PUT("/:id/members/:memberId/relation", rel.SetWorkspaceRelation)
	rg.GET("/:id/relationships", rel.ListWorkspaceRelations)

	rg.POST("/:id/invitations", inv.Create)
	rg.GET("/:id/invitations", inv.List)
	rg.DELETE("/:id/invitations/:invitationId", inv.Revoke)
}
