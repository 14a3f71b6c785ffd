package router

import (
	"github.com/gin-gonic/gin"

	"streetnetwork.app/kinship/internal/http/handler"
)

// InvitationRouter sets up invitation routes
// - /validate/:token is public so the accept page renders before sign-in
// - /accept/:token requires a session whose email matches the invite
func InvitationRouter(rg *gin.RouterGroup, h *handler.InvitationHandler, requireAuth gin.HandlerFunc) {
	rg.GET("/validate/:token", h.Validate)
	rg.POST("/accept/:token", requireAuth, h.Accept)
}
