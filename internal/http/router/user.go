package router

import (
	"github.com/gin-gonic/gin"

	"streetnetwork.app/kinship/internal/http/handler"
)

// UserRouter expects rg to already require a session.
func UserRouter(rg *gin.RouterGroup, h *handler.UserHandler, rel *handler.RelationshipHandler) {
	rg.GET("", h.List)
	rg.GET("/me", h.Me)
	rg.GET("/email/:email", h.GetByEmail)
	rg.GET("/wallet/:address", h.GetByWallet)
	rg.PUT("/wallet/:address", h.UpdateByWallet)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id", h.Update)
	rg.GET("/:id/workspaces", h.ListWorkspaces)

	rg.GET("/:id/milestones", h.ListMilestones)
	rg.POST("/:id/milestones", h.AddMilestone)
	rg.DELETE("/:id/milestones/:milestoneId", h.DeleteMilestone)

	rg.GET("/:id/relationships", rel.List)
	rg.POST("/:id/relationships", rel.Add)
	rg.PUT("/:id/relationships/:relatedId/confirm", rel.Confirm)
	rg.DELETE("/:id/relationships/:relatedId", rel.Remove)
	rg.GET("/:id/family-tree", rel.FamilyTree)
}
