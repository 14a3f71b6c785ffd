package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"streetnetwork.app/kinship/internal/http/dto"
	"streetnetwork.app/kinship/internal/http/middleware"
	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/service"
	"streetnetwork.app/kinship/internal/store"
)

type ResourceHandler struct {
	resourceService service.ResourceService
}

func NewResourceHandler(resourceService service.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

func (h *ResourceHandler) List(c *gin.Context) {
	var filter store.ResourceFilter
	if v := c.Query("category"); v != "" {
		category := model.ResourceCategory(v)
		filter.Category = &category
	}
	if v := c.Query("status"); v != "" {
		status := model.ResourceStatus(v)
		filter.Status = &status
	}

	resources, tags, err := h.resourceService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "failed to list resources")
		return
	}

	c.JSON(http.StatusOK, dto.ToResourceListResponse(resources, tags))
}

func (h *ResourceHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	resource, err := h.resourceService.Create(ctx, middleware.GetUser(ctx).ID, service.CreateResourceParams{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		Category:    req.Category,
		Tags:        req.Tags,
	})
	if err != nil {
		respondError(c, err, "failed to create resource")
		return
	}

	c.JSON(http.StatusCreated, dto.ToResourceResponse(resource))
}

func (h *ResourceHandler) Like(c *gin.Context) {
	resourceID, ok := paramID(c, "id")
	if !ok {
		return
	}

	resource, err := h.resourceService.Like(c.Request.Context(), resourceID)
	if err != nil {
		respondError(c, err, "failed to like resource")
		return
	}

	c.JSON(http.StatusOK, dto.ToResourceResponse(resource))
}

func (h *ResourceHandler) Moderate(c *gin.Context) {
	resourceID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.ModerateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.ErrInvalidStatus, "")
		return
	}

	resource, err := h.resourceService.Moderate(c.Request.Context(), resourceID, req.Status, req.ModerationNotes)
	if err != nil {
		respondError(c, err, "failed to moderate resource")
		return
	}

	c.JSON(http.StatusOK, dto.ToResourceResponse(resource))
}

// IngestDiscord receives messages forwarded by the community bot.
func (h *ResourceHandler) IngestDiscord(c *gin.Context) {
	var req dto.DiscordResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "message_content, discord_user_id and discord_username are required")
		return
	}

	resource, err := h.resourceService.IngestDiscord(c.Request.Context(), service.DiscordResourceMessage{
		Content:     req.MessageContent,
		UserID:      req.DiscordUserID,
		Username:    req.DiscordUsername,
		ServerID:    req.DiscordServerID,
		ChannelID:   req.DiscordChannelID,
		MessageID:   req.DiscordMessageID,
		ChannelName: req.ChannelName,
	})
	if err != nil {
		respondError(c, err, "failed to ingest resource")
		return
	}

	c.JSON(http.StatusCreated, dto.ToResourceResponse(resource))
}
