package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"streetnetwork.app/kinship/internal/http/handler"
	"streetnetwork.app/kinship/internal/http/middleware"
	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/service"
)

var _ = Describe("DirectoryHandler", func() {
	var (
		router     *gin.Engine
		cryptoSvc  *mockCryptoUserService
		newsletter *mockNewsletterService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		cryptoSvc = &mockCryptoUserService{}
		newsletter = &mockNewsletterService{subscribed: map[string]bool{}}

		sessions := &mockAuthService{validateSessionFn: func(context.Context, int64) (*model.User, error) {
			return &model.User{ID: 7}, nil
		}}
		h := handler.NewDirectoryHandler(cryptoSvc, newsletter)
		router.POST("/api/v1/crypto-users", middleware.OptionalAuth(sessions, middleware.DefaultSessionCookie), h.SubmitCryptoUser)
		router.POST("/api/v1/newsletter", h.Subscribe)
		router.GET("/api/v1/newsletter", h.SubscriptionStatus)
	})

	It("records the signed-in submitter", func() {
		w := doJSON(router, http.MethodPost, "/api/v1/crypto-users", map[string]string{"twitter_handle": "vitalik", "specialty": "Ethereum"})

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(decode(w)["submitted_by"]).To(Equal("7"))
	})

	It("accepts anonymous submissions", func() {
		var got *int64
		cryptoSvc.submitFn = func(_ context.Context, submitterID *int64, handle, specialty string) (*model.CryptoUser, error) {
			got = submitterID
			return &model.CryptoUser{ID: 1, TwitterHandle: handle, Specialty: specialty}, nil
		}

		req := httptest.NewRequest(http.MethodPost, "/api/v1/crypto-users", strings.NewReader(`{"twitter_handle":"satoshi","specialty":"Bitcoin"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(got).To(BeNil())
		Expect(decode(w)).NotTo(HaveKey("submitted_by"))
	})

	It("maps duplicate handles to 409", func() {
		cryptoSvc.submitFn = func(context.Context, *int64, string, string) (*model.CryptoUser, error) {
			return nil, service.ErrCryptoUserExists
		}
		w := doJSON(router, http.MethodPost, "/api/v1/crypto-users", map[string]string{"twitter_handle": "vitalik", "specialty": "Ethereum"})
		Expect(w.Code).To(Equal(http.StatusConflict))
	})

	It("subscribes once and reports status", func() {
		w := doJSON(router, http.MethodPost, "/api/v1/newsletter", map[string]string{"email": "ada@example.com"})
		Expect(w.Code).To(Equal(http.StatusCreated))

		w = doJSON(router, http.MethodPost, "/api/v1/newsletter", map[string]string{"email": "ada@example.com"})
		Expect(w.Code).To(Equal(http.StatusConflict))

		w = doJSON(router, http.MethodGet, "/api/v1/newsletter?email=ada@example.com", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["subscribed"]).To(BeTrue())
	})

	It("requires an email for the status check", func() {
		Expect(doJSON(router, http.MethodGet, "/api/v1/newsletter", nil).Code).To(Equal(http.StatusBadRequest))
	})
})

var _ = Describe("integration handlers", func() {
	var router *gin.Engine

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
	})

	Describe("ChatbotHandler", func() {
		var svc *mockChatbotService

		BeforeEach(func() {
			svc = &mockChatbotService{}
			router.POST("/api/v1/chatbot", handler.NewChatbotHandler(svc).Extract)
		})

		It("returns the raw message and the extraction", func() {
			svc.extractFn = func(_ context.Context, msg string) (*service.ChatbotReply, error) {
				return &service.ChatbotReply{
					Message:    `{"recipient":"Acme"}`,
					Extraction: service.Extraction{Recipient: "Acme", SuggestedName: "Acme Redesign"},
				}, nil
			}

			w := doJSON(router, http.MethodPost, "/api/v1/chatbot", map[string]string{"message": "invoice acme"})

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decode(w)
			Expect(resp["message"]).To(Equal(`{"recipient":"Acme"}`))
			Expect(resp["extraction"]).To(HaveKeyWithValue("suggested_name", "Acme Redesign"))
		})

		It("answers 503 when no provider is configured", func() {
			svc.extractFn = func(context.Context, string) (*service.ChatbotReply, error) {
				return nil, fmt.Errorf("chatbot %w", service.ErrNotConfigured)
			}
			w := doJSON(router, http.MethodPost, "/api/v1/chatbot", map[string]string{"message": "hi"})
			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
			Expect(decode(w)["error"]).To(Equal("chatbot not configured"))
		})

		It("answers 500 when the provider fails", func() {
			svc.extractFn = func(context.Context, string) (*service.ChatbotReply, error) {
				return nil, errors.New("upstream 502")
			}
			w := doJSON(router, http.MethodPost, "/api/v1/chatbot", map[string]string{"message": "hi"})
			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})

		It("answers 400 for an empty message", func() {
			w := doJSON(router, http.MethodPost, "/api/v1/chatbot", map[string]string{"message": ""})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("PinningHandler", func() {
		It("requires a cid", func() {
			router.GET("/signed-url", handler.NewPinningHandler(&mockPinningService{}).SignedURL)
			Expect(doJSON(router, http.MethodGet, "/signed-url", nil).Code).To(Equal(http.StatusBadRequest))
		})

		It("returns the signed url", func() {
			svc := &mockPinningService{signedURLFn: func(_ context.Context, cid string) (string, error) {
				return "https://gw.example/ipfs/" + cid + "?sig=1", nil
			}}
			router.GET("/signed-url", handler.NewPinningHandler(svc).SignedURL)

			w := doJSON(router, http.MethodGet, "/signed-url?cid=bafy", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)["url"]).To(Equal("https://gw.example/ipfs/bafy?sig=1"))
		})

		It("lists a user's pinned images", func() {
			var gotUser int64
			svc := &mockPinningService{userImagesFn: func(_ context.Context, userID int64) ([]service.PinnedImage, error) {
				gotUser = userID
				return []service.PinnedImage{{
					CID:       "bafyA",
					Name:      "beach.jpg",
					URL:       "https://gw.example/ipfs/bafyA",
					SignedURL: "https://gw.example/ipfs/bafyA?sig=1",
					Size:      10,
				}}, nil
			}}
			router.GET("/user-images/:userId", handler.NewPinningHandler(svc).UserImages)

			w := doJSON(router, http.MethodGet, "/user-images/7", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(gotUser).To(Equal(int64(7)))
			images := decode(w)["images"].([]any)
			Expect(images).To(HaveLen(1))
			image := images[0].(map[string]any)
			Expect(image["cid"]).To(Equal("bafyA"))
			Expect(image["authenticated_url"]).To(Equal("https://gw.example/ipfs/bafyA?sig=1"))
			Expect(image["metadata"]).To(Equal(map[string]any{}))
		})

		It("rejects a malformed user id and reports a missing integration", func() {
			router.GET("/user-images/:userId", handler.NewPinningHandler(&mockPinningService{}).UserImages)

			Expect(doJSON(router, http.MethodGet, "/user-images/abc", nil).Code).To(Equal(http.StatusBadRequest))
			Expect(doJSON(router, http.MethodGet, "/user-images/7", nil).Code).To(Equal(http.StatusServiceUnavailable))
		})
	})

	Describe("DiscordHandler", func() {
		var svc *mockDiscordService

		BeforeEach(func() {
			svc = &mockDiscordService{}
			h := handler.NewDiscordHandler(svc, "https://app.example", false)
			linked := router.Group("/auth/discord", signedIn(&model.User{ID: 7}))
			linked.GET("", h.Start)
			linked.GET("/callback", h.Callback)
		})

		callback := func(query, state string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, "/auth/discord/callback?"+query, nil)
			req.Header.Set(middleware.SessionIDHeader, testSessionID)
			if state != "" {
				req.AddCookie(&http.Cookie{Name: "kinship_discord_state", Value: state})
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w
		}

		It("redirects to discord with a state cookie", func() {
			w := doJSON(router, http.MethodGet, "/auth/discord", nil)
			Expect(w.Code).To(Equal(http.StatusTemporaryRedirect))
			Expect(w.Header().Get("Location")).To(HavePrefix("https://discord.example/oauth2/authorize"))
			Expect(w.Header().Get("Set-Cookie")).To(ContainSubstring("kinship_discord_state="))
		})

		It("links the account and returns to the profile", func() {
			var linkedUser int64
			svc.linkFn = func(_ context.Context, userID int64, code string) (*model.User, error) {
				linkedUser = userID
				return &model.User{ID: userID}, nil
			}

			w := callback("code=abc&state=s1", "s1")

			Expect(w.Header().Get("Location")).To(Equal("https://app.example/profile?discord=linked"))
			Expect(linkedUser).To(Equal(int64(7)))
		})

		It("rejects a forged state", func() {
			w := callback("code=abc&state=forged", "s1")
			Expect(w.Header().Get("Location")).To(Equal("https://app.example/profile?discord_error=invalid_state"))
		})

		It("reports accounts linked elsewhere", func() {
			svc.linkFn = func(context.Context, int64, string) (*model.User, error) {
				return nil, service.ErrDiscordAlreadyLinked
			}
			w := callback("code=abc&state=s1", "s1")
			Expect(w.Header().Get("Location")).To(Equal("https://app.example/profile?discord_error=already_linked"))
		})
	})
})
