package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/service"
)

type apiError struct {
	status int
	code   string
}

// errorTable maps service sentinels onto the HTTP envelope. The sentinel's
// message is shown to the client; anything unlisted is a 500.
var errorTable = []struct {
	err error
	apiError
}{
	// 400
	{service.ErrInvalidCode, apiError{http.StatusBadRequest, "invalid_code"}},
	{service.ErrMissingCredentials, apiError{http.StatusBadRequest, "missing_credentials"}},
	{service.ErrPasswordTooShort, apiError{http.StatusBadRequest, "password_too_short"}},
	{service.ErrInvalidEmail, apiError{http.StatusBadRequest, "invalid_email"}},
	{service.ErrInvalidWallet, apiError{http.StatusBadRequest, "invalid_wallet"}},
	{service.ErrInvalidProfile, apiError{http.StatusBadRequest, "invalid_profile"}},
	{service.ErrInvalidMilestone, apiError{http.StatusBadRequest, "invalid_milestone"}},
	{service.ErrInvalidWorkspaceName, apiError{http.StatusBadRequest, "invalid_name"}},
	{service.ErrInvalidRole, apiError{http.StatusBadRequest, "invalid_role"}},
	{service.ErrAlreadyMember, apiError{http.StatusBadRequest, "already_member"}},
	{service.ErrCannotRemoveOwner, apiError{http.StatusBadRequest, "cannot_remove_owner"}},
	{service.ErrInviteExpired, apiError{http.StatusBadRequest, "expired"}},
	{service.ErrInviteAlreadyUsed, apiError{http.StatusBadRequest, "already_used"}},
	{service.ErrInviteRevoked, apiError{http.StatusBadRequest, "revoked"}},
	{service.ErrSelfRelationship, apiError{http.StatusBadRequest, "self_relationship"}},
	{model.ErrUnknownRelationship, apiError{http.StatusBadRequest, "unknown_relationship"}},
	{service.ErrInvalidImageID, apiError{http.StatusBadRequest, "invalid_image_id"}},
	{service.ErrInvalidImageType, apiError{http.StatusBadRequest, "invalid_image_type"}},
	{service.ErrNotAnImage, apiError{http.StatusBadRequest, "not_an_image"}},
	{service.ErrImageTooLarge, apiError{http.StatusBadRequest, "image_too_large"}},
	{service.ErrInvalidResource, apiError{http.StatusBadRequest, "invalid_resource"}},
	{service.ErrInvalidCategory, apiError{http.StatusBadRequest, "invalid_category"}},
	{service.ErrInvalidStatus, apiError{http.StatusBadRequest, "invalid_status"}},
	{service.ErrNoURL, apiError{http.StatusBadRequest, "no_url"}},
	{service.ErrNoCategory, apiError{http.StatusBadRequest, "no_category"}},
	{service.ErrInvalidCryptoUser, apiError{http.StatusBadRequest, "invalid_crypto_user"}},
	{service.ErrEmptyMessage, apiError{http.StatusBadRequest, "empty_message"}},
	{service.ErrMissingCID, apiError{http.StatusBadRequest, "missing_cid"}},

	// 401
	{service.ErrInvalidCredentials, apiError{http.StatusUnauthorized, "invalid_credentials"}},
	{service.ErrSessionExpired, apiError{http.StatusUnauthorized, "session_expired"}},
	{service.ErrNonceNotFound, apiError{http.StatusUnauthorized, "nonce_not_found"}},
	{service.ErrWalletSignature, apiError{http.StatusUnauthorized, "invalid_signature"}},

	// 403
	{service.ErrNotSelf, apiError{http.StatusForbidden, "forbidden"}},
	{service.ErrOwnRequest, apiError{http.StatusForbidden, "own_request"}},
	{service.ErrNotMember, apiError{http.StatusForbidden, "not_member"}},
	{service.ErrNotAdmin, apiError{http.StatusForbidden, "not_admin"}},
	{service.ErrNotImageOwner, apiError{http.StatusForbidden, "not_owner"}},
	{service.ErrEmailMismatch, apiError{http.StatusForbidden, "email_mismatch"}},

	// 404
	{service.ErrUserNotFound, apiError{http.StatusNotFound, "user_not_found"}},
	{service.ErrMilestoneNotFound, apiError{http.StatusNotFound, "not_found"}},
	{service.ErrWorkspaceNotFound, apiError{http.StatusNotFound, "not_found"}},
	{service.ErrMemberNotFound, apiError{http.StatusNotFound, "not_found"}},
	{service.ErrInviteNotFound, apiError{http.StatusNotFound, "not_found"}},
	{service.ErrRelationshipNotFound, apiError{http.StatusNotFound, "not_found"}},
	{service.ErrImageNotFound, apiError{http.StatusNotFound, "not_found"}},
	{service.ErrResourceNotFound, apiError{http.StatusNotFound, "not_found"}},

	// 409
	{service.ErrEmailTaken, apiError{http.StatusConflict, "email_taken"}},
	{service.ErrWalletTaken, apiError{http.StatusConflict, "wallet_taken"}},
	{service.ErrInvitePendingExists, apiError{http.StatusConflict, "invite_pending"}},
	{service.ErrRelationshipExists, apiError{http.StatusConflict, "relationship_exists"}},
	{service.ErrCryptoUserExists, apiError{http.StatusConflict, "handle_exists"}},
	{service.ErrAlreadySubscribed, apiError{http.StatusConflict, "already_subscribed"}},
	{service.ErrDiscordAlreadyLinked, apiError{http.StatusConflict, "discord_linked"}},
	{service.ErrDiscordMemberNotFound, apiError{http.StatusNotFound, "discord_member_not_found"}},
	{service.ErrMissingDiscordUser, apiError{http.StatusBadRequest, "missing_discord_user"}},

	// 503
	{service.ErrNotConfigured, apiError{http.StatusServiceUnavailable, "not_configured"}},
}

func lookupError(err error) (apiError, bool) {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			return e.apiError, true
		}
	}
	return apiError{}, false
}

// respondError writes the JSON error envelope. Unknown errors are logged and
// reported as fallback with a 500.
func respondError(c *gin.Context, err error, fallback string) {
	if e, ok := lookupError(err); ok {
		c.JSON(e.status, gin.H{"error": err.Error(), "code": e.code})
		return
	}
	slog.ErrorContext(c.Request.Context(), fallback, "error", err)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
