package handler_test

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"streetnetwork.app/kinship/internal/http/handler"
	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/service"
)

var _ = Describe("WorkspaceHandler", func() {
	var (
		router *gin.Engine
		svc    *mockWorkspaceService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockWorkspaceService{}

		h := handler.NewWorkspaceHandler(svc)
		api := router.Group("/api/v1", signedIn(&model.User{ID: 7}))
		api.POST("/workspaces", h.Create)
		api.GET("/workspaces/:id", h.Get)
		api.POST("/workspaces/:id/members", h.AddMember)
	})

	It("creates a workspace owned by the caller", func() {
		svc.createFn = func(_ context.Context, ownerID int64, name string) (*model.Workspace, error) {
			return &model.Workspace{ID: 100, Name: name, Slug: "lovelace", OwnerID: ownerID}, nil
		}

		w := doJSON(router, http.MethodPost, "/api/v1/workspaces", map[string]string{"name": "Lovelace"})

		Expect(w.Code).To(Equal(http.StatusCreated))
		resp := decode(w)
		Expect(resp["id"]).To(Equal("100"))
		Expect(resp["slug"]).To(Equal("lovelace"))
	})

	It("requires a name", func() {
		w := doJSON(router, http.MethodPost, "/api/v1/workspaces", map[string]string{"name": ""})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("answers 403 for non-members", func() {
		svc.getFn = func(context.Context, int64, int64) (*model.Workspace, error) {
			return nil, service.ErrNotMember
		}
		w := doJSON(router, http.MethodGet, "/api/v1/workspaces/100", nil)
		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	It("defaults new members to the member role", func() {
		var gotRole model.WorkspaceRole
		svc.addMemberFn = func(_ context.Context, _, wsID, userID int64, role model.WorkspaceRole) (*model.WorkspaceMember, error) {
			gotRole = role
			return &model.WorkspaceMember{WorkspaceID: wsID, UserID: userID, Role: role}, nil
		}

		w := doJSON(router, http.MethodPost, "/api/v1/workspaces/100/members", map[string]string{"user_id": "8"})

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(gotRole).To(Equal(model.WorkspaceRoleMember))
		Expect(decode(w)["user_id"]).To(Equal("8"))
	})

	It("reports existing members as a bad request", func() {
		svc.addMemberFn = func(context.Context, int64, int64, int64, model.WorkspaceRole) (*model.WorkspaceMember, error) {
			return nil, service.ErrAlreadyMember
		}
		w := doJSON(router, http.MethodPost, "/api/v1/workspaces/100/members", map[string]string{"user_id": "8"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decode(w)["code"]).To(Equal("already_member"))
	})
})

var _ = Describe("InvitationHandler", func() {
	var (
		router *gin.Engine
		svc    *mockInvitationService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockInvitationService{}

		h := handler.NewInvitationHandler(svc)
		router.GET("/api/v1/invitations/validate/:token", h.Validate)
		api := router.Group("/api/v1", signedIn(&model.User{ID: 7, Name: "Ada"}))
		api.POST("/workspaces/:id/invitations", h.Create)
		api.DELETE("/workspaces/:id/invitations/:invitationId", h.Revoke)
		api.POST("/invitations/accept/:token", h.Accept)
	})

	It("returns the invite url on create", func() {
		svc.createFn = func(_ context.Context, inviter *model.User, wsID int64, email, _ string) (*model.Invitation, string, error) {
			Expect(inviter.ID).To(Equal(int64(7)))
			return &model.Invitation{ID: 3, WorkspaceID: wsID, Email: email, Status: model.InvitationStatusPending},
				"https://app.example/invite/accept/abc", nil
		}

		w := doJSON(router, http.MethodPost, "/api/v1/workspaces/100/invitations", map[string]string{"email": "bob@example.com"})

		Expect(w.Code).To(Equal(http.StatusCreated))
		resp := decode(w)
		Expect(resp["invite_url"]).To(Equal("https://app.example/invite/accept/abc"))
		Expect(resp).NotTo(HaveKey("token"))
	})

	It("maps a pending duplicate to 409", func() {
		svc.createFn = func(context.Context, *model.User, int64, string, string) (*model.Invitation, string, error) {
			return nil, "", service.ErrInvitePendingExists
		}
		w := doJSON(router, http.MethodPost, "/api/v1/workspaces/100/invitations", map[string]string{"email": "bob@example.com"})
		Expect(w.Code).To(Equal(http.StatusConflict))
	})

	It("rejects an invalid email before calling the service", func() {
		svc.createFn = func(context.Context, *model.User, int64, string, string) (*model.Invitation, string, error) {
			Fail("service should not be called")
			return nil, "", nil
		}
		w := doJSON(router, http.MethodPost, "/api/v1/workspaces/100/invitations", map[string]string{"email": "bob"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	DescribeTable("validation failures",
		func(err error, status int, code string) {
			svc.validateFn = func(context.Context, string) (*service.InvitationDetails, error) {
				return nil, err
			}
			w := doJSON(router, http.MethodGet, "/api/v1/invitations/validate/tok", nil)
			Expect(w.Code).To(Equal(status))
			Expect(decode(w)["code"]).To(Equal(code))
		},
		Entry("unknown", service.ErrInviteNotFound, http.StatusNotFound, "not_found"),
		Entry("expired", service.ErrInviteExpired, http.StatusBadRequest, "expired"),
		Entry("accepted", service.ErrInviteAlreadyUsed, http.StatusBadRequest, "already_used"),
		Entry("revoked", service.ErrInviteRevoked, http.StatusBadRequest, "revoked"),
	)

	It("describes a valid invitation without auth", func() {
		inviterEmail := "ada@example.com"
		svc.validateFn = func(context.Context, string) (*service.InvitationDetails, error) {
			return &service.InvitationDetails{
				Invitation: &model.Invitation{Email: "bob@example.com", ExpiresAt: time.Now().Add(time.Hour)},
				Workspace:  &model.Workspace{ID: 100, Name: "Lovelace"},
				Inviter:    &model.User{Name: "Ada", Email: &inviterEmail},
			}, nil
		}

		w := doJSON(router, http.MethodGet, "/api/v1/invitations/validate/tok", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		resp := decode(w)
		Expect(resp["email"]).To(Equal("bob@example.com"))
		Expect(resp["workspace"]).To(HaveKeyWithValue("id", "100"))
		Expect(resp["inviter"]).To(HaveKeyWithValue("name", "Ada"))
	})

	It("accepts for the signed-in user", func() {
		svc.acceptFn = func(_ context.Context, user *model.User, token string) (*model.Workspace, error) {
			Expect(user.ID).To(Equal(int64(7)))
			return &model.Workspace{ID: 100, Name: "Lovelace"}, nil
		}

		w := doJSON(router, http.MethodPost, "/api/v1/invitations/accept/tok", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["workspace"]).To(HaveKeyWithValue("name", "Lovelace"))
	})

	It("maps an email mismatch to 403", func() {
		svc.acceptFn = func(context.Context, *model.User, string) (*model.Workspace, error) {
			return nil, service.ErrEmailMismatch
		}
		w := doJSON(router, http.MethodPost, "/api/v1/invitations/accept/tok", nil)
		Expect(w.Code).To(Equal(http.StatusForbidden))
		Expect(decode(w)["code"]).To(Equal("email_mismatch"))
	})

	It("lets admins revoke", func() {
		svc.revokeFn = func(_ context.Context, actorID, wsID, invID int64) (*model.Invitation, error) {
			return &model.Invitation{ID: invID, WorkspaceID: wsID, Status: model.InvitationStatusRevoked}, nil
		}
		w := doJSON(router, http.MethodDelete, "/api/v1/workspaces/100/invitations/3", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["status"]).To(Equal("revoked"))
	})
})
