package handler

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"streetnetwork.app/kinship/internal/http/dto"
	"streetnetwork.app/kinship/internal/http/middleware"
	"streetnetwork.app/kinship/internal/service"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *gin.Context) {
	limit := queryInt(c, "limit", defaultPageSize)
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	offset := min(max(queryInt(c, "offset", 0), 0), math.MaxInt32)

	users, err := h.userService.List(c.Request.Context(), int32(limit), int32(offset))
	if err != nil {
		respondError(c, err, "failed to list users")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToUserResponse(middleware.GetUser(c.Request.Context())))
}

func (h *UserHandler) GetByID(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to get user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) GetByEmail(c *gin.Context) {
	user, err := h.userService.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err, "failed to get user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) GetByWallet(c *gin.Context) {
	user, err := h.userService.GetByWallet(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondError(c, err, "failed to get user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	update, ok := bindProfileUpdate(c)
	if !ok {
		return
	}

	actor := middleware.GetUser(ctx)
	user, err := h.userService.UpdateProfile(ctx, actor.ID, userID, update)
	if err != nil {
		respondError(c, err, "failed to update user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) UpdateByWallet(c *gin.Context) {
	ctx := c.Request.Context()

	update, ok := bindProfileUpdate(c)
	if !ok {
		return
	}

	user, err := h.userService.UpdateByWallet(ctx, middleware.GetUser(ctx), c.Param("address"), update)
	if err != nil {
		respondError(c, err, "failed to update user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) ListMilestones(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	milestones, err := h.userService.ListMilestones(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to list milestones")
		return
	}

	out := make([]dto.MilestoneResponse, len(milestones))
	for i := range milestones {
		out[i] = dto.ToMilestoneResponse(&milestones[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *UserHandler) AddMilestone(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.ErrInvalidMilestone, "")
		return
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		badRequest(c, "date must be YYYY-MM-DD or RFC 3339")
		return
	}

	actor := middleware.GetUser(ctx)
	milestone, err := h.userService.AddMilestone(ctx, actor.ID, userID, service.MilestoneParams{
		Date:        date,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err, "failed to add milestone")
		return
	}

	c.JSON(http.StatusCreated, dto.ToMilestoneResponse(milestone))
}

func (h *UserHandler) DeleteMilestone(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := paramID(c, "id")
	if !ok {
		return
	}
	milestoneID, ok := paramID(c, "milestoneId")
	if !ok {
		return
	}

	actor := middleware.GetUser(ctx)
	if err := h.userService.DeleteMilestone(ctx, actor.ID, userID, milestoneID); err != nil {
		respondError(c, err, "failed to delete milestone")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) ListWorkspaces(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	workspaces, err := h.userService.ListWorkspaces(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to list workspaces")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceResponses(workspaces))
}

func bindProfileUpdate(c *gin.Context) (service.ProfileUpdate, bool) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return service.ProfileUpdate{}, false
	}
	update, err := req.ToUpdate()
	if err != nil {
		respondError(c, err, "invalid profile")
		return service.ProfileUpdate{}, false
	}
	return update, true
}
