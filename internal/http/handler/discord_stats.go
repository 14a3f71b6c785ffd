package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"streetnetwork.app/kinship/internal/http/middleware"
	"streetnetwork.app/kinship/internal/service"
)

// DiscordStatsHandler serves the community dashboard built from Discord bot activity.
type DiscordStatsHandler struct {
	statsService service.DiscordStatsService
}

func NewDiscordStatsHandler(statsService service.DiscordStatsService) *DiscordStatsHandler {
	return &DiscordStatsHandler{statsService: statsService}
}

func (h *DiscordStatsHandler) Members(c *gin.Context) {
	members, err := h.statsService.Members(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list discord members")
		return
	}
	c.JSON(http.StatusOK, members)
}

// UserData takes the Discord user id from ?userId, defaulting to the caller's linked account.
func (h *DiscordStatsHandler) UserData(c *gin.Context) {
	ctx := c.Request.Context()
	stats, err := h.statsService.MemberStats(ctx, middleware.GetUser(ctx), c.Query("userId"))
	if err != nil {
		respondError(c, err, "failed to get discord member")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *DiscordStatsHandler) GlobalStats(c *gin.Context) {
	stats, err := h.statsService.GlobalStats(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to get discord stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *DiscordStatsHandler) GlobalChannelStats(c *gin.Context) {
	breakdown, err := h.statsService.ChannelBreakdown(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to get channel stats")
		return
	}
	c.JSON(http.StatusOK, breakdown)
}
