package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"streetnetwork.app/kinship/internal/http/dto"
	"streetnetwork.app/kinship/internal/http/middleware"
	"streetnetwork.app/kinship/internal/service"
)

type DirectoryHandler struct {
	cryptoUserService service.CryptoUserService
	newsletterService service.NewsletterService
}

func NewDirectoryHandler(cryptoUsers service.CryptoUserService, newsletter service.NewsletterService) *DirectoryHandler {
	return &DirectoryHandler{cryptoUserService: cryptoUsers, newsletterService: newsletter}
}

func (h *DirectoryHandler) ListCryptoUsers(c *gin.Context) {
	entries, err := h.cryptoUserService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list crypto users")
		return
	}

	c.JSON(http.StatusOK, dto.ToCryptoUserResponses(entries))
}

// SubmitCryptoUser is mounted behind OptionalAuth; signed-in submitters earn points.
func (h *DirectoryHandler) SubmitCryptoUser(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateCryptoUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.ErrInvalidCryptoUser, "")
		return
	}

	var submitterID *int64
	if user := middleware.GetUser(ctx); user != nil {
		submitterID = &user.ID
	}

	entry, err := h.cryptoUserService.Submit(ctx, submitterID, req.TwitterHandle, req.Specialty)
	if err != nil {
		respondError(c, err, "failed to submit crypto user")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCryptoUserResponse(entry))
}

func (h *DirectoryHandler) Subscribe(c *gin.Context) {
	var req dto.NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.ErrInvalidEmail, "")
		return
	}

	signup, err := h.newsletterService.Subscribe(c.Request.Context(), service.NewsletterSignup{
		Email:       req.Email,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Location:    req.Location,
		Gender:      req.Gender,
		Age:         req.Age,
	})
	if err != nil {
		respondError(c, err, "failed to subscribe")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "subscribed", "email": signup.Email})
}

func (h *DirectoryHandler) SubscriptionStatus(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		badRequest(c, "email is required")
		return
	}

	subscribed, err := h.newsletterService.IsSubscribed(c.Request.Context(), email)
	if err != nil {
		respondError(c, err, "failed to check subscription")
		return
	}

	c.JSON(http.StatusOK, dto.NewsletterStatusResponse{Subscribed: subscribed})
}
