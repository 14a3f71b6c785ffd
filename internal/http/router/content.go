package router

import (
	"github.com/gin-gonic/gin"

	"streetnetwork.app/kinship/internal/http/handler"
)

func ImageRouter(rg *gin.RouterGroup, h *handler.ImageHandler, requireAuth gin.HandlerFunc) {
	rg.GET("/:fileId", h.Serve)
	rg.GET("/user/:userId", h.ListByUser)
	rg.POST("/upload", requireAuth, h.Upload)
	rg.DELETE("/:fileId", requireAuth, h.Delete)
}

func ResourceRouter(rg *gin.RouterGroup, h *handler.ResourceHandler, requireAuth gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.POST("", requireAuth, h.Create)
	rg.POST("/:id/like", requireAuth, h.Like)
}

// AdminRouter expects rg to already check the admin API key.
func AdminRouter(rg *gin.RouterGroup, h *handler.ResourceHandler) {
	rg.PATCH("/resources/:id/status", h.Moderate)
	rg.POST("/resources/discord", h.IngestDiscord)
}

func DirectoryRouter(rg *gin.RouterGroup, h *handler.DirectoryHandler, optionalAuth gin.HandlerFunc) {
	rg.GET("/crypto-users", h.ListCryptoUsers)
	rg.POST("/crypto-users", optionalAuth, h.SubmitCryptoUser)

	rg.GET("/newsletter", h.SubscriptionStatus)
	rg.POST("/newsletter", h.Subscribe)
}

// DiscordStatsRouter expects rg to already require a session.
func DiscordStatsRouter(rg *gin.RouterGroup, h *handler.DiscordStatsHandler) {
	rg.GET("/members", h.Members)
	rg.GET("/user-data", h.UserData)
	rg.GET("/global-stats", h.GlobalStats)
	rg.GET("/global-channel-stats", h.GlobalChannelStats)
}
