package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"streetnetwork.app/kinship/internal/http/handler"
	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/service"
)

var _ = Describe("AuthHandler", func() {
	const appURL = "https://app.example"

	var (
		router      *gin.Engine
		auth        *mockAuthService
		invitations *mockInvitationService
		user        *model.User
		session     *model.Session
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		email := "ada@example.com"
		user = &model.User{ID: 7, Name: "Ada", Email: &email}
		session = &model.Session{ID: 99, UserID: 7, ExpiresAt: time.Now().Add(time.Hour)}
		auth = &mockAuthService{}
		invitations = &mockInvitationService{}

		h := handler.NewAuthHandler(auth, invitations, appURL, handler.CookieConfig{TTL: 30 * 24 * time.Hour}, 5*time.Minute)
		router.GET("/auth/login", h.Login)
		router.GET("/auth/callback", h.Callback)
		router.POST("/auth/exchange", h.Exchange)
		router.POST("/auth/signup", h.SignUp)
		router.POST("/auth/login", h.LoginPassword)
		router.POST("/auth/wallet/nonce", h.WalletNonce)
		router.POST("/auth/logout", h.Logout)
	})

	sessionCookie := func(w *httptest.ResponseRecorder) *http.Cookie {
		for _, c := range w.Result().Cookies() {
			if c.Name == "kinship_session" {
				return c
			}
		}
		return nil
	}

	Describe("social login", func() {
		It("redirects with a state cookie", func() {
			w := doJSON(router, http.MethodGet, "/auth/login", nil)

			Expect(w.Code).To(Equal(http.StatusTemporaryRedirect))
			Expect(w.Header().Get("Location")).To(HavePrefix("https://auth.example/authorize?state="))
			Expect(w.Header().Get("Set-Cookie")).To(ContainSubstring("kinship_oauth_state="))
		})

		It("rejects a callback whose state does not match", func() {
			req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=forged", nil)
			req.AddCookie(&http.Cookie{Name: "kinship_oauth_state", Value: "real"})
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusTemporaryRedirect))
			Expect(w.Header().Get("Location")).To(Equal(appURL + "?auth_error=invalid_state"))
		})

		It("sets the session cookie after a valid callback", func() {
			auth.handleCallbackFn = func(_ context.Context, code string) (*model.User, *model.Session, error) {
				Expect(code).To(Equal("abc"))
				return user, session, nil
			}
			req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=s1", nil)
			req.AddCookie(&http.Cookie{Name: "kinship_oauth_state", Value: "s1"})
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusTemporaryRedirect))
			Expect(w.Header().Get("Location")).To(Equal(appURL + "/dashboard"))
			Expect(sessionCookie(w)).NotTo(BeNil())
			Expect(sessionCookie(w).Value).To(Equal("99"))
			Expect(sessionCookie(w).HttpOnly).To(BeTrue())
		})
	})

	Describe("Exchange", func() {
		BeforeEach(func() {
			auth.handleCallbackFn = func(context.Context, string) (*model.User, *model.Session, error) {
				return user, session, nil
			}
		})

		It("accepts the invitation and reports the workspace", func() {
			invitations.acceptFn = func(_ context.Context, u *model.User, token string) (*model.Workspace, error) {
				Expect(u.ID).To(Equal(int64(7)))
				Expect(token).To(Equal("tok"))
				return &model.Workspace{ID: 100, Name: "Lovelace"}, nil
			}

			w := doJSON(router, http.MethodPost, "/auth/exchange", map[string]string{"code": "abc", "invite_token": "tok"})

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decode(w)
			Expect(resp["session_id"]).To(Equal("99"))
			Expect(resp["workspace_id"]).To(Equal("100"))
		})

		It("keeps the session on an email mismatch", func() {
			invitations.acceptFn = func(context.Context, *model.User, string) (*model.Workspace, error) {
				return nil, service.ErrEmailMismatch
			}

			w := doJSON(router, http.MethodPost, "/auth/exchange", map[string]string{"code": "abc", "invite_token": "tok"})

			Expect(w.Code).To(Equal(http.StatusForbidden))
			resp := decode(w)
			Expect(resp["code"]).To(Equal("email_mismatch"))
			Expect(resp["session_id"]).To(Equal("99"))
			Expect(auth.loggedOut).To(BeEmpty())
		})

		It("drops the session when the invitation has expired", func() {
			invitations.acceptFn = func(context.Context, *model.User, string) (*model.Workspace, error) {
				return nil, service.ErrInviteExpired
			}

			w := doJSON(router, http.MethodPost, "/auth/exchange", map[string]string{"code": "abc", "invite_token": "tok"})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["code"]).To(Equal("expired"))
			Expect(auth.loggedOut).To(ConsistOf(int64(99)))
		})

		It("requires a code", func() {
			w := doJSON(router, http.MethodPost, "/auth/exchange", `{}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("credentials", func() {
		It("signs up and sets the cookie", func() {
			auth.signUpFn = func(_ context.Context, p service.SignUpParams) (*model.User, *model.Session, error) {
				Expect(p.Email).To(Equal("ada@example.com"))
				return user, session, nil
			}

			w := doJSON(router, http.MethodPost, "/auth/signup", map[string]string{
				"name":     "Ada",
				"email":    "ada@example.com",
				"password": "correct horse",
			})

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(sessionCookie(w).Value).To(Equal("99"))
			Expect(decode(w)["user"]).To(HaveKeyWithValue("email", "ada@example.com"))
		})

		It("reports duplicate emails as a conflict", func() {
			auth.signUpFn = func(context.Context, service.SignUpParams) (*model.User, *model.Session, error) {
				return nil, nil, service.ErrEmailTaken
			}

			w := doJSON(router, http.MethodPost, "/auth/signup", map[string]string{"email": "ada@example.com", "password": "12345678"})

			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(decode(w)["code"]).To(Equal("email_taken"))
		})

		It("answers 401 for bad credentials", func() {
			w := doJSON(router, http.MethodPost, "/auth/login", map[string]string{"email": "ada@example.com", "password": "nope"})

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(sessionCookie(w)).To(BeNil())
		})

		It("answers 400 for a missing password", func() {
			w := doJSON(router, http.MethodPost, "/auth/login", map[string]string{"email": "ada@example.com"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("issues a wallet challenge", func() {
			auth.walletChallengeFn = func(_ context.Context, address string) (string, error) {
				return "Sign in to Kinnected\nWallet: " + strings.ToLower(address), nil
			}

			w := doJSON(router, http.MethodPost, "/auth/wallet/nonce", map[string]string{"wallet_address": "0xABC"})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)["message"]).To(ContainSubstring("0xabc"))
		})
	})

	It("logs out the session from the header and clears the cookie", func() {
		w := doJSON(router, http.MethodPost, "/auth/logout", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(auth.loggedOut).To(ConsistOf(int64(42)))
		Expect(sessionCookie(w).MaxAge).To(BeNumerically("<", 0))
	})
})
