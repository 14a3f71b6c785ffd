package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"streetnetwork.app/kinship/internal/http/middleware"
	"streetnetwork.app/kinship/internal/service"
)

const discordStateCookieName = "kinship_discord_state"

// DiscordHandler links a Discord account to the signed-in user. Both routes
// sit behind RequireAuth; the browser carries the session cookie through the
// OAuth round trip.
type DiscordHandler struct {
	discordService service.DiscordService
	appURL         string
	secureCookies  bool
}

func NewDiscordHandler(discordService service.DiscordService, appURL string, secureCookies bool) *DiscordHandler {
	return &DiscordHandler{
		discordService: discordService,
		appURL:         appURL,
		secureCookies:  secureCookies,
	}
}

func (h *DiscordHandler) Start(c *gin.Context) {
	state, err := generateState()
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to generate state", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start discord link"})
		return
	}

	authURL, err := h.discordService.AuthCodeURL(state)
	if err != nil {
		respondError(c, err, "failed to start discord link")
		return
	}

	c.SetCookie(discordStateCookieName, state, stateMaxAge, "/", "", h.secureCookies, true)
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

func (h *DiscordHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()

	if errorParam := c.Query("error"); errorParam != "" {
		slog.WarnContext(ctx, "discord OAuth error", "error", errorParam)
		h.redirect(c, "discord_error", errorParam)
		return
	}

	storedState, err := c.Cookie(discordStateCookieName)
	if err != nil || storedState == "" || c.Query("state") != storedState {
		h.redirect(c, "discord_error", "invalid_state")
		return
	}
	c.SetCookie(discordStateCookieName, "", -1, "/", "", h.secureCookies, true)

	code := c.Query("code")
	if code == "" {
		h.redirect(c, "discord_error", "no_code")
		return
	}

	user := middleware.GetUser(ctx)
	if _, err := h.discordService.Link(ctx, user.ID, code); err != nil {
		slog.WarnContext(ctx, "discord link failed", "error", err)
		switch {
		case errors.Is(err, service.ErrDiscordAlreadyLinked):
			h.redirect(c, "discord_error", "already_linked")
		case errors.Is(err, service.ErrNotConfigured):
			h.redirect(c, "discord_error", "not_configured")
		default:
			h.redirect(c, "discord_error", "link_failed")
		}
		return
	}

	h.redirect(c, "discord", "linked")
}

func (h *DiscordHandler) redirect(c *gin.Context, key, value string) {
	q := url.Values{key: {value}}
	c.Redirect(http.StatusTemporaryRedirect, h.appURL+"/profile?"+q.Encode())
}
