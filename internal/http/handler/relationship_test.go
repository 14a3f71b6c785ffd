package handler_test

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"streetnetwork.app/kinship/internal/http/handler"
	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/service"
)

var _ = Describe("RelationshipHandler", func() {
	var (
		router *gin.Engine
		svc    *mockRelationshipService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockRelationshipService{}

		h := handler.NewRelationshipHandler(svc)
		api := router.Group("/api/v1", signedIn(&model.User{ID: 1}))
		api.POST("/users/:id/relationships", h.Add)
		api.PUT("/users/:id/relationships/:relatedId/confirm", h.Confirm)
		api.DELETE("/users/:id/relationships/:relatedId", h.Remove)
		api.GET("/users/:id/family-tree", h.FamilyTree)
		api.PUT("/workspaces/:id/members/:memberId/relation", h.SetWorkspaceRelation)
	})

	It("adds a relationship as the caller", func() {
		svc.addFn = func(_ context.Context, actorID, userID, relatedID int64, rel string) (*model.FamilyConnection, error) {
			Expect(actorID).To(Equal(int64(1)))
			Expect(rel).To(Equal("Mother"))
			return &model.FamilyConnection{UserID: userID, RelatedUserID: relatedID, Relationship: model.RelationshipParent}, nil
		}

		w := doJSON(router, http.MethodPost, "/api/v1/users/1/relationships", map[string]string{
			"related_user_id": "2",
			"relationship":    "Mother",
		})

		Expect(w.Code).To(Equal(http.StatusCreated))
		resp := decode(w)
		Expect(resp["relationship"]).To(Equal("parent"))
		Expect(resp["related_user_id"]).To(Equal("2"))
		Expect(resp["confirmed"]).To(BeFalse())
	})

	DescribeTable("maps add failures",
		func(err error, status int) {
			svc.addFn = func(context.Context, int64, int64, int64, string) (*model.FamilyConnection, error) {
				return nil, err
			}
			w := doJSON(router, http.MethodPost, "/api/v1/users/1/relationships", map[string]string{
				"related_user_id": "2",
				"relationship":    "sibling",
			})
			Expect(w.Code).To(Equal(status))
		},
		Entry("self link", service.ErrSelfRelationship, http.StatusBadRequest),
		Entry("unknown type", model.ErrUnknownRelationship, http.StatusBadRequest),
		Entry("someone else's list", service.ErrNotSelf, http.StatusForbidden),
		Entry("missing user", service.ErrUserNotFound, http.StatusNotFound),
		Entry("duplicate", service.ErrRelationshipExists, http.StatusConflict),
	)

	It("refuses to confirm the caller's own request", func() {
		svc.confirmFn = func(_ context.Context, actorID, userID, relatedID int64) error {
			Expect(actorID).To(Equal(int64(1)))
			Expect(userID).To(Equal(int64(1)))
			Expect(relatedID).To(Equal(int64(2)))
			return service.ErrOwnRequest
		}

		w := doJSON(router, http.MethodPut, "/api/v1/users/1/relationships/2/confirm", nil)

		Expect(w.Code).To(Equal(http.StatusForbidden))
		Expect(decode(w)["code"]).To(Equal("own_request"))
	})

	It("answers 204 on remove and 404 when missing", func() {
		Expect(doJSON(router, http.MethodDelete, "/api/v1/users/1/relationships/2", nil).Code).To(Equal(http.StatusNoContent))

		svc.removeFn = func(context.Context, int64, int64, int64) error { return service.ErrRelationshipNotFound }
		Expect(doJSON(router, http.MethodDelete, "/api/v1/users/1/relationships/2", nil).Code).To(Equal(http.StatusNotFound))
	})

	It("renders the family tree with the requested depth", func() {
		svc.familyTreeFn = func(_ context.Context, userID int64, depth int) (*service.FamilyTree, error) {
			Expect(depth).To(Equal(3))
			return &service.FamilyTree{
				RootID: userID,
				Depth:  depth,
				Source: service.TreeSourceGraph,
				Nodes:  []service.FamilyTreeNode{{UserID: 1}, {UserID: 2, Depth: 1}},
				Edges:  []service.FamilyTreeEdge{{FromUserID: 1, ToUserID: 2, Relationship: "parent"}},
			}, nil
		}

		w := doJSON(router, http.MethodGet, "/api/v1/users/1/family-tree?depth=3", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		resp := decode(w)
		Expect(resp["source"]).To(Equal("graph"))
		Expect(resp["nodes"]).To(HaveLen(2))
		Expect(resp["edges"]).To(ContainElement(HaveKeyWithValue("to", "2")))
	})

	It("requires a relation for workspace members", func() {
		w := doJSON(router, http.MethodPut, "/api/v1/workspaces/100/members/2/relation", `{}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
