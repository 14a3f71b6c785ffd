package handler

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"streetnetwork.app/kinship/internal/http/dto"
	"streetnetwork.app/kinship/internal/http/middleware"
	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/service"
)

const (
	stateCookieName = "kinship_oauth_state"
	stateMaxAge     = 600
)

// CookieConfig describes the session cookie handed to browsers.
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

type AuthHandler struct {
	authService       service.AuthService
	invitationService service.InvitationService
	appURL            string
	cookie            CookieConfig
	nonceTTL          time.Duration
}

func NewAuthHandler(
	authService service.AuthService,
	invitationService service.InvitationService,
	appURL string,
	cookie CookieConfig,
	nonceTTL time.Duration,
) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = middleware.DefaultSessionCookie
	}
	return &AuthHandler{
		authService:       authService,
		invitationService: invitationService,
		appURL:            appURL,
		cookie:            cookie,
		nonceTTL:          nonceTTL,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	state, err := generateState()
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to generate state", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initiate login"})
		return
	}

	authURL, err := h.authService.GetAuthorizationURL(state)
	if err != nil {
		respondError(c, err, "failed to initiate login")
		return
	}

	setStateCookie(c, state, h.cookie.Secure)
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

func (h *AuthHandler) GetAuthURL(c *gin.Context) {
	state, err := generateState()
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to generate state", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate state"})
		return
	}

	authURL, err := h.authService.GetAuthorizationURL(state)
	if err != nil {
		respondError(c, err, "failed to get authorization URL")
		return
	}

	c.JSON(http.StatusOK, dto.AuthURLResponse{AuthorizationURL: authURL, State: state})
}

func (h *AuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()

	if errorParam := c.Query("error"); errorParam != "" {
		slog.WarnContext(ctx, "OAuth error", "error", errorParam, "description", c.Query("error_description"))
		h.redirectWithError(c, errorParam)
		return
	}

	storedState, err := c.Cookie(stateCookieName)
	if err != nil || c.Query("state") != storedState {
		slog.WarnContext(ctx, "state mismatch")
		h.redirectWithError(c, "invalid_state")
		return
	}
	clearStateCookie(c, h.cookie.Secure)

	code := c.Query("code")
	if code == "" {
		h.redirectWithError(c, "no_code")
		return
	}

	user, session, err := h.authService.HandleCallback(ctx, code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to handle callback", "error", err)
		if errors.Is(err, service.ErrInvalidCode) {
			h.redirectWithError(c, "invalid_code")
			return
		}
		h.redirectWithError(c, "callback_failed")
		return
	}

	h.setSessionCookie(c, session)
	slog.InfoContext(ctx, "user logged in", "user_id", user.ID)
	c.Redirect(http.StatusTemporaryRedirect, h.appURL+"/dashboard")
}

// Exchange completes a social login started by a single-page client. An
// invite token joins the user to the inviting workspace in the same step.
func (h *AuthHandler) Exchange(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "code is required")
		return
	}

	user, session, err := h.authService.HandleCallback(ctx, req.Code)
	if err != nil {
		respondError(c, err, "failed to exchange code")
		return
	}

	var workspaceID *int64
	if req.InviteToken != nil && *req.InviteToken != "" {
		ws, err := h.invitationService.Accept(ctx, user, *req.InviteToken)
		if err != nil {
			slog.WarnContext(ctx, "failed to accept invitation", "error", err, "user_id", user.ID)
			if errors.Is(err, service.ErrEmailMismatch) {
				// the session survives so the client can sign out cleanly
				c.JSON(http.StatusForbidden, gin.H{
					"error":      err.Error(),
					"code":       "email_mismatch",
					"session_id": strconv.FormatInt(session.ID, 10),
				})
				return
			}
			if delErr := h.authService.Logout(ctx, session.ID); delErr != nil {
				slog.WarnContext(ctx, "failed to delete session after invite failure", "error", delErr, "session_id", session.ID)
			}
			respondError(c, err, "failed to process invitation")
			return
		}
		workspaceID = &ws.ID
		slog.InfoContext(ctx, "invitation accepted during auth exchange", "user_id", user.ID, "workspace_id", ws.ID)
	}

	h.respondSession(c, http.StatusOK, user, session, workspaceID)
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, session, err := h.authService.SignUp(ctx, service.SignUpParams{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		WalletAddress: req.WalletAddress,
		Signature:     req.Signature,
	})
	if err != nil {
		respondError(c, err, "failed to sign up")
		return
	}

	h.respondSession(c, http.StatusCreated, user, session, nil)
}

func (h *AuthHandler) LoginPassword(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.ErrMissingCredentials, "")
		return
	}

	user, session, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "failed to log in")
		return
	}

	h.respondSession(c, http.StatusOK, user, session, nil)
}

func (h *AuthHandler) WalletNonce(c *gin.Context) {
	var req dto.WalletNonceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "wallet_address is required")
		return
	}

	message, err := h.authService.WalletChallenge(c.Request.Context(), req.WalletAddress)
	if err != nil {
		respondError(c, err, "failed to create sign-in challenge")
		return
	}

	c.JSON(http.StatusOK, dto.WalletNonceResponse{
		Message:   message,
		ExpiresAt: time.Now().Add(h.nonceTTL).UTC(),
	})
}

func (h *AuthHandler) WalletVerify(c *gin.Context) {
	var req dto.WalletVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "wallet_address and signature are required")
		return
	}

	user, session, err := h.authService.VerifyWallet(c.Request.Context(), req.WalletAddress, req.Signature)
	if err != nil {
		respondError(c, err, "failed to verify wallet")
		return
	}

	h.respondSession(c, http.StatusOK, user, session, nil)
}

// Me is mounted behind RequireAuth.
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.GetUser(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	sessionID, err := middleware.SessionID(c, h.cookie.Name)
	if err == nil && sessionID > 0 {
		if err := h.authService.Logout(ctx, sessionID); err != nil {
			slog.WarnContext(ctx, "failed to delete session", "error", err, "session_id", sessionID)
		}
	}

	middleware.ClearSessionCookie(c, h.cookie.Name)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) respondSession(c *gin.Context, status int, user *model.User, session *model.Session, workspaceID *int64) {
	h.setSessionCookie(c, session)
	c.JSON(status, dto.SessionResponse{
		User:        dto.ToUserResponse(user),
		SessionID:   session.ID,
		ExpiresAt:   session.ExpiresAt,
		WorkspaceID: workspaceID,
	})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, session *model.Session) {
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = int(h.cookie.TTL.Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		h.cookie.Name,
		strconv.FormatInt(session.ID, 10),
		maxAge,
		"/",
		"",
		h.cookie.Secure,
		true,
	)
}

func (h *AuthHandler) redirectWithError(c *gin.Context, code string) {
	c.Redirect(http.StatusTemporaryRedirect, h.appURL+"?auth_error="+url.QueryEscape(code))
}

func setStateCookie(c *gin.Context, state string, secure bool) {
	c.SetCookie(
		stateCookieName,
		state,
		stateMaxAge,
		"/",
		"",
		secure,
		true,
	)
}

func clearStateCookie(c *gin.Context, secure bool) {
	c.SetCookie(
		stateCookieName,
		"",
		-1,
		"/",
		"",
		secure,
		true,
	)
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
