package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"streetnetwork.app/kinship/internal/http/handler"
	"streetnetwork.app/kinship/internal/http/middleware"
	"streetnetwork.app/kinship/internal/service"
)

type RouterConfig struct {
	AppURL               string
	IsProduction         bool
	CookieName           string
	SessionTTL           time.Duration
	NonceTTL             time.Duration
	AdminAPIKey          string
	ChatbotRatePerMinute int
	MaxImageBytes        int64
}

// NewEngine returns a bare gin engine. Forwarding headers are honoured only
// when the immediate peer is in trustedProxies; nil trusts nobody, so
// ClientIP is the socket address.
func NewEngine(trustedProxies []string) (*gin.Engine, error) {
	engine := gin.New()
	if err := engine.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("setting trusted proxies: %w", err)
	}
	return engine, nil
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	if cfg.CookieName == "" {
		cfg.CookieName = middleware.DefaultSessionCookie
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authService := services.Auth()
	requireAuth := middleware.RequireAuth(authService, cfg.CookieName)
	optionalAuth := middleware.OptionalAuth(authService, cfg.CookieName)

	authHandler := handler.NewAuthHandler(
		authService,
		services.Invitations(),
		cfg.AppURL,
		handler.CookieConfig{Name: cfg.CookieName, TTL: cfg.SessionTTL, Secure: cfg.IsProduction},
		cfg.NonceTTL,
	)
	discordHandler := handler.NewDiscordHandler(services.Discord(), cfg.AppURL, cfg.IsProduction)
	AuthRouter(router.Group("/auth"), authHandler, discordHandler, requireAuth)

	v1 := router.Group("/api/v1")
	{
		UserRouter(v1.Group("/users", requireAuth),
			handler.NewUserHandler(services.Users()),
			handler.NewRelationshipHandler(services.Relationships()))

		WorkspaceRouter(v1.Group("/workspaces", requireAuth),
			handler.NewWorkspaceHandler(services.Workspaces()),
			handler.NewInvitationHandler(services.Invitations()),
			handler.NewRelationshipHandler(services.Relationships()))

		InvitationRouter(v1.Group("/invitations"), handler.NewInvitationHandler(services.Invitations()), requireAuth)

		ImageRouter(v1.Group("/images"), handler.NewImageHandler(services.Images(), cfg.MaxImageBytes), requireAuth)

		DiscordStatsRouter(v1.Group("/discord", requireAuth), handler.NewDiscordStatsHandler(services.DiscordStats()))

		pinningHandler := handler.NewPinningHandler(services.Pinning())
		v1.GET("/pinning/signed-url", requireAuth, pinningHandler.SignedURL)
		v1.GET("/pinning/user-images/:userId", requireAuth, pinningHandler.UserImages)

		resourceHandler := handler.NewResourceHandler(services.Resources())
		ResourceRouter(v1.Group("/resources"), resourceHandler, requireAuth)
		AdminRouter(v1.Group("/admin", middleware.RequireAdminAPIKey(cfg.AdminAPIKey)), resourceHandler)

		DirectoryRouter(v1, handler.NewDirectoryHandler(services.CryptoUsers(), services.Newsletter()), optionalAuth)

		limiter := middleware.NewIPRateLimiter(cfg.ChatbotRatePerMinute)
		v1.POST("/chatbot", limiter.Middleware(), optionalAuth, handler.NewChatbotHandler(services.Chatbot()).Extract)
	}
}
