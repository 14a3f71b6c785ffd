package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"streetnetwork.app/kinship/internal/http/dto"
	"streetnetwork.app/kinship/internal/http/middleware"
	"streetnetwork.app/kinship/internal/service"
)

type InvitationHandler struct {
	invitationService service.InvitationService
}

func NewInvitationHandler(invitationService service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

func (h *InvitationHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	workspaceID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.ErrInvalidEmail, "")
		return
	}

	inviter := middleware.GetUser(ctx)
	inv, inviteURL, err := h.invitationService.Create(ctx, inviter, workspaceID, req.Email, req.Message)
	if err != nil {
		respondError(c, err, "failed to create invitation")
		return
	}

	slog.InfoContext(ctx, "invitation created", "invitation_id", inv.ID, "workspace_id", workspaceID)

	resp := dto.ToInvitationResponse(inv)
	resp.InviteURL = inviteURL
	c.JSON(http.StatusCreated, resp)
}

func (h *InvitationHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	workspaceID, ok := paramID(c, "id")
	if !ok {
		return
	}

	invitations, err := h.invitationService.List(ctx, middleware.GetUser(ctx).ID, workspaceID)
	if err != nil {
		respondError(c, err, "failed to list invitations")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvitationResponses(invitations))
}

func (h *InvitationHandler) Revoke(c *gin.Context) {
	ctx := c.Request.Context()

	workspaceID, ok := paramID(c, "id")
	if !ok {
		return
	}
	invitationID, ok := paramID(c, "invitationId")
	if !ok {
		return
	}

	inv, err := h.invitationService.Revoke(ctx, middleware.GetUser(ctx).ID, workspaceID, invitationID)
	if err != nil {
		respondError(c, err, "failed to revoke invitation")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvitationResponse(inv))
}

// Validate is public so the accept page can render before sign-in.
func (h *InvitationHandler) Validate(c *gin.Context) {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		badRequest(c, "token is required")
		return
	}

	details, err := h.invitationService.Validate(c.Request.Context(), token)
	if err != nil {
		respondError(c, err, "failed to validate invitation")
		return
	}

	c.JSON(http.StatusOK, dto.ToValidateInvitationResponse(details))
}

func (h *InvitationHandler) Accept(c *gin.Context) {
	ctx := c.Request.Context()

	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		badRequest(c, "token is required")
		return
	}

	user := middleware.GetUser(ctx)
	ws, err := h.invitationService.Accept(ctx, user, token)
	if err != nil {
		respondError(c, err, "failed to accept invitation")
		return
	}

	slog.InfoContext(ctx, "invitation accepted", "workspace_id", ws.ID)
	c.JSON(http.StatusOK, gin.H{
		"message":   "invitation accepted",
		"workspace": dto.ToWorkspaceResponse(ws),
	})
}
