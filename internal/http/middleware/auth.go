package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"streetnetwork.app/kinship/common/logger"
	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/service"
)

type contextKey string

const (
	DefaultSessionCookie = "kinship_session"
	SessionIDHeader      = "X-Session-ID"

	userContextKey      contextKey = "user"
	sessionIDContextKey contextKey = "session_id"
)

// SessionValidator is the slice of the auth service the middleware needs.
type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID int64) (*model.User, error)
}

// RequireAuth rejects requests without a live session with 401.
func RequireAuth(sessions SessionValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := SessionID(c, cookieName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		user, err := sessions.ValidateSession(c.Request.Context(), sessionID)
		if err != nil {
			if errors.Is(err, service.ErrSessionExpired) || errors.Is(err, service.ErrUserNotFound) {
				ClearSessionCookie(c, cookieName)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
				return
			}
			slog.ErrorContext(c.Request.Context(), "failed to validate session", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to validate session"})
			return
		}

		attach(c, user, sessionID)
		c.Next()
	}
}

// OptionalAuth attaches the user to context if a valid session exists, but never aborts.
func OptionalAuth(sessions SessionValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := SessionID(c, cookieName)
		if err != nil {
			c.Next()
			return
		}

		user, err := sessions.ValidateSession(c.Request.Context(), sessionID)
		if err != nil {
			c.Next()
			return
		}

		attach(c, user, sessionID)
		c.Next()
	}
}

func attach(c *gin.Context, user *model.User, sessionID int64) {
	ctx := context.WithValue(c.Request.Context(), userContextKey, user)
	ctx = context.WithValue(ctx, sessionIDContextKey, sessionID)
	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &user.ID})
	c.Request = c.Request.WithContext(ctx)
}

func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

func GetSessionID(ctx context.Context) int64 {
	sessionID, _ := ctx.Value(sessionIDContextKey).(int64)
	return sessionID
}

// SessionID reads the session id from the cookie, falling back to the
// X-Session-ID header used by non-browser clients.
func SessionID(c *gin.Context, cookieName string) (int64, error) {
	raw, err := c.Cookie(cookieName)
	if err != nil || raw == "" {
		raw = c.GetHeader(SessionIDHeader)
	}
	if raw == "" {
		return 0, http.ErrNoCookie
	}
	return strconv.ParseInt(raw, 10, 64)
}

func ClearSessionCookie(c *gin.Context, cookieName string) {
	c.SetCookie(
		cookieName,
		"",
		-1,
		"/",
		"",
		false,
		true,
	)
}
