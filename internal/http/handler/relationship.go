package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"streetnetwork.app/kinship/internal/http/dto"
	"streetnetwork.app/kinship/internal/http/middleware"
	"streetnetwork.app/kinship/internal/service"
)

type RelationshipHandler struct {
	relationshipService service.RelationshipService
}

func NewRelationshipHandler(relationshipService service.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{relationshipService: relationshipService}
}

func (h *RelationshipHandler) Add(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.AddRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "related_user_id and relationship are required")
		return
	}

	conn, err := h.relationshipService.Add(ctx, middleware.GetUser(ctx).ID, userID, req.RelatedUserID, req.Relationship)
	if err != nil {
		respondError(c, err, "failed to add relationship")
		return
	}

	c.JSON(http.StatusCreated, dto.ToRelationshipResponse(conn, nil))
}

func (h *RelationshipHandler) Confirm(c *gin.Context) {
	ctx := c.Request.Context()

	userID, relatedID, ok := relationshipParams(c)
	if !ok {
		return
	}

	if err := h.relationshipService.Confirm(ctx, middleware.GetUser(ctx).ID, userID, relatedID); err != nil {
		respondError(c, err, "failed to confirm relationship")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "relationship confirmed"})
}

func (h *RelationshipHandler) Remove(c *gin.Context) {
	ctx := c.Request.Context()

	userID, relatedID, ok := relationshipParams(c)
	if !ok {
		return
	}

	if err := h.relationshipService.Remove(ctx, middleware.GetUser(ctx).ID, userID, relatedID); err != nil {
		respondError(c, err, "failed to remove relationship")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RelationshipHandler) List(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	views, err := h.relationshipService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to list relationships")
		return
	}

	c.JSON(http.StatusOK, dto.ToRelationshipResponses(views))
}

func (h *RelationshipHandler) FamilyTree(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	tree, err := h.relationshipService.FamilyTree(c.Request.Context(), userID, queryInt(c, "depth", 2))
	if err != nil {
		respondError(c, err, "failed to build family tree")
		return
	}

	c.JSON(http.StatusOK, dto.ToFamilyTreeResponse(tree))
}

func (h *RelationshipHandler) ListWorkspaceRelations(c *gin.Context) {
	ctx := c.Request.Context()

	workspaceID, ok := paramID(c, "id")
	if !ok {
		return
	}

	rels, err := h.relationshipService.ListWorkspaceRelations(ctx, middleware.GetUser(ctx).ID, workspaceID)
	if err != nil {
		respondError(c, err, "failed to list relations")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceRelationResponses(rels))
}

func (h *RelationshipHandler) SetWorkspaceRelation(c *gin.Context) {
	ctx := c.Request.Context()

	workspaceID, ok := paramID(c, "id")
	if !ok {
		return
	}
	memberID, ok := paramID(c, "memberId")
	if !ok {
		return
	}

	var req dto.SetWorkspaceRelationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "relation is required")
		return
	}

	rel, err := h.relationshipService.SetWorkspaceRelation(ctx, middleware.GetUser(ctx).ID, workspaceID, memberID, req.Relation)
	if err != nil {
		respondError(c, err, "failed to set relation")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceRelationResponse(rel))
}

func relationshipParams(c *gin.Context) (int64, int64, bool) {
	userID, ok := paramID(c, "id")
	if !ok {
		return 0, 0, false
	}
	relatedID, ok := paramID(c, "relatedId")
	if !ok {
		return 0, 0, false
	}
	return userID, relatedID, true
}
