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
	"streetnetwork.app/kinship/internal/store"
)

var _ = Describe("ResourceHandler", func() {
	var (
		router *gin.Engine
		svc    *mockResourceService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockResourceService{}

		h := handler.NewResourceHandler(svc)
		router.GET("/api/v1/resources", h.List)
		router.PATCH("/api/v1/admin/resources/:id/status", h.Moderate)
		router.POST("/api/v1/admin/resources/discord", h.IngestDiscord)
		router.POST("/api/v1/resources", signedIn(&model.User{ID: 7}), h.Create)
	})

	It("filters by category and status", func() {
		svc.listFn = func(_ context.Context, f store.ResourceFilter) ([]model.Resource, []string, error) {
			Expect(*f.Category).To(Equal(model.ResourceCategoryDAO))
			Expect(*f.Status).To(Equal(model.ResourceStatusApproved))
			return []model.Resource{{ID: 1, Title: "Intro"}}, []string{"governance"}, nil
		}

		w := doJSON(router, http.MethodGet, "/api/v1/resources?category=DAO&status=approved", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		resp := decode(w)
		Expect(resp["resources"]).To(HaveLen(1))
		Expect(resp["categories"]).To(ConsistOf("governance"))
	})

	It("leaves filters unset when absent", func() {
		svc.listFn = func(_ context.Context, f store.ResourceFilter) ([]model.Resource, []string, error) {
			Expect(f.Category).To(BeNil())
			Expect(f.Status).To(BeNil())
			return nil, nil, nil
		}
		Expect(doJSON(router, http.MethodGet, "/api/v1/resources", nil).Code).To(Equal(http.StatusOK))
	})

	It("creates a resource for the caller", func() {
		svc.createFn = func(_ context.Context, submitterID int64, p service.CreateResourceParams) (*model.Resource, error) {
			return &model.Resource{ID: 9, Title: p.Title, URL: p.URL, Category: p.Category, SubmittedBy: &submitterID, Status: model.ResourceStatusPending}, nil
		}

		w := doJSON(router, http.MethodPost, "/api/v1/resources", map[string]any{
			"title":    "Intro to DAOs",
			"url":      "https://example.com/daos",
			"category": "DAO",
			"tags":     []string{"governance"},
		})

		Expect(w.Code).To(Equal(http.StatusCreated))
		resp := decode(w)
		Expect(resp["submitted_by"]).To(Equal("7"))
		Expect(resp["status"]).To(Equal("pending"))
	})

	It("rejects a malformed url", func() {
		w := doJSON(router, http.MethodPost, "/api/v1/resources", map[string]any{
			"title":    "Intro",
			"url":      "not a url",
			"category": "DAO",
		})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("maps moderation of a missing resource to 404", func() {
		w := doJSON(router, http.MethodPatch, "/api/v1/admin/resources/5/status", map[string]string{"status": "approved"})
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("forwards bot messages and reports missing urls", func() {
		svc.ingestFn = func(_ context.Context, msg service.DiscordResourceMessage) (*model.Resource, error) {
			Expect(msg.ChannelName).To(Equal("ai-news"))
			return nil, service.ErrNoURL
		}

		w := doJSON(router, http.MethodPost, "/api/v1/admin/resources/discord", map[string]string{
			"message_content":  "no link here",
			"discord_user_id":  "123",
			"discord_username": "qubit",
			"channel_name":     "ai-news",
		})

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decode(w)["code"]).To(Equal("no_url"))
	})
})
