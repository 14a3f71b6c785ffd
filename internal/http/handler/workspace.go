package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"streetnetwork.app/kinship/internal/http/dto"
	"streetnetwork.app/kinship/internal/http/middleware"
	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/service"
)

type WorkspaceHandler struct {
	workspaceService service.WorkspaceService
}

func NewWorkspaceHandler(workspaceService service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

func (h *WorkspaceHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.ErrInvalidWorkspaceName, "")
		return
	}

	ws, err := h.workspaceService.Create(ctx, middleware.GetUser(ctx).ID, req.Name)
	if err != nil {
		respondError(c, err, "failed to create workspace")
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkspaceResponse(ws))
}

func (h *WorkspaceHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	workspaceID, ok := paramID(c, "id")
	if !ok {
		return
	}

	ws, err := h.workspaceService.Get(ctx, middleware.GetUser(ctx).ID, workspaceID)
	if err != nil {
		respondError(c, err, "failed to get workspace")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(ws))
}

func (h *WorkspaceHandler) ListMembers(c *gin.Context) {
	ctx := c.Request.Context()

	workspaceID, ok := paramID(c, "id")
	if !ok {
		return
	}

	members, err := h.workspaceService.ListMembers(ctx, middleware.GetUser(ctx).ID, workspaceID)
	if err != nil {
		respondError(c, err, "failed to list members")
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberResponses(members))
}

func (h *WorkspaceHandler) AddMember(c *gin.Context) {
	ctx := c.Request.Context()

	workspaceID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "user_id is required")
		return
	}
	if req.Role == "" {
		req.Role = model.WorkspaceRoleMember
	}

	member, err := h.workspaceService.AddMember(ctx, middleware.GetUser(ctx).ID, workspaceID, req.UserID, req.Role)
	if err != nil {
		respondError(c, err, "failed to add member")
		return
	}

	c.JSON(http.StatusCreated, dto.ToMemberResponse(member, nil))
}

func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	ctx := c.Request.Context()

	workspaceID, ok := paramID(c, "id")
	if !ok {
		return
	}
	memberID, ok := paramID(c, "memberId")
	if !ok {
		return
	}

	if err := h.workspaceService.RemoveMember(ctx, middleware.GetUser(ctx).ID, workspaceID, memberID); err != nil {
		respondError(c, err, "failed to remove member")
		return
	}

	c.Status(http.StatusNoContent)
}
