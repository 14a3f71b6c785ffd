package router

import (
	"github.com/gin-gonic/gin"

	"streetnetwork.app/kinship/internal/http/handler"
)

func AuthRouter(rg *gin.RouterGroup, h *handler.AuthHandler, discord *handler.DiscordHandler, requireAuth gin.HandlerFunc) {
	rg.GET("/login", h.Login)
	rg.GET("/url", h.GetAuthURL)
	rg.GET("/callback", h.Callback)
	rg.POST("/exchange", h.Exchange)

	rg.POST("/signup", h.SignUp)
	rg.POST("/login", h.LoginPassword)
	rg.POST("/wallet/nonce", h.WalletNonce)
	rg.POST("/wallet/verify", h.WalletVerify)
	rg.POST("/logout", h.Logout)
	rg.GET("/me", requireAuth, h.Me)

	linked := rg.Group("/discord", requireAuth)
	{
		linked.GET("", discord.Start)
		linked.GET("/callback", discord.Callback)
	}
}
