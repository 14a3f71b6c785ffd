package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"streetnetwork.app/kinship/common/id"
	"streetnetwork.app/kinship/common/mailer"
	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/queue"
	"streetnetwork.app/kinship/internal/store"
)

const (
	InviteTokenLength = 32
	DefaultInviteTTL  = 7 * 24 * time.Hour
)

var (
	ErrInviteNotFound      = errors.New("invitation not found")
	ErrInviteExpired       = errors.New("invitation has expired")
	ErrInviteAlreadyUsed   = errors.New("invitation has already been used")
	ErrInviteRevoked       = errors.New("invitation has been revoked")
	ErrEmailMismatch       = errors.New("authenticated email does not match invitation")
	ErrInvitePendingExists = errors.New("a pending invitation already exists for this email")
)

// InvitationDetails is what an invitee sees before accepting.
type InvitationDetails struct {
	Invitation *model.Invitation
	Workspace  *model.Workspace
	Inviter    *model.User
}

type InvitationService interface {
	Create(ctx context.Context, inviter *model.User, workspaceID int64, email, message string) (*model.Invitation, string, error)
	List(ctx context.Context, actorID, workspaceID int64) ([]model.Invitation, error)
	Revoke(ctx context.Context, actorID, workspaceID, invitationID int64) (*model.Invitation, error)
	Validate(ctx context.Context, token string) (*InvitationDetails, error)
	// Accept consumes the invitation and adds user to its workspace in one transaction.
	Accept(ctx context.Context, user *model.User, token string) (*model.Workspace, error)
	InviteURL(token string) string
}

type invitationService struct {
	invStore       store.InvitationStore
	workspaceStore store.WorkspaceStore
	memberStore    store.WorkspaceMemberStore
	userStore      store.UserStore
	txRunner       TxRunner
	tasks          TaskEnqueuer
	appURL         string
	ttl            time.Duration
}

func NewInvitationService(
	invStore store.InvitationStore,
	workspaceStore store.WorkspaceStore,
	memberStore store.WorkspaceMemberStore,
	userStore store.UserStore,
	txRunner TxRunner,
	tasks TaskEnqueuer,
	appURL string,
	ttl time.Duration,
) InvitationService {
	if ttl <= 0 {
		ttl = DefaultInviteTTL
	}
	return &invitationService{
		invStore:       invStore,
		workspaceStore: workspaceStore,
		memberStore:    memberStore,
		userStore:      userStore,
		txRunner:       txRunner,
		tasks:          tasks,
		appURL:         strings.TrimRight(appURL, "/"),
		ttl:            ttl,
	}
}

func (s *invitationService) InviteURL(token string) string {
	return fmt.Sprintf("%s/invite/accept/%s", s.appURL, token)
}

func (s *invitationService) Create(ctx context.Context, inviter *model.User, workspaceID int64, email, message string) (*model.Invitation, string, error) {
	email = normalizeEmail(email)
	if !strings.Contains(email, "@") {
		return nil, "", ErrInvalidEmail
	}

	workspace, err := getWorkspace(ctx, s.workspaceStore, workspaceID)
	if err != nil {
		return nil, "", err
	}
	if _, err := requireMember(ctx, s.memberStore, workspaceID, inviter.ID); err != nil {
		return nil, "", err
	}

	existing, err := s.invStore.GetPending(ctx, workspaceID, email)
	switch {
	case err == nil && existing.IsValid():
		return nil, "", ErrInvitePendingExists
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return nil, "", fmt.Errorf("checking pending invitations: %w", err)
	}

	token, err := generateSecureToken(InviteTokenLength)
	if err != nil {
		return nil, "", fmt.Errorf("generating token: %w", err)
	}

	inv := &model.Invitation{
		ID:          id.New(),
		WorkspaceID: workspaceID,
		Email:       email,
		Token:       token,
		Status:      model.InvitationStatusPending,
		InvitedBy:   inviter.ID,
		ExpiresAt:   time.Now().Add(s.ttl),
	}
	if err := s.invStore.Create(ctx, inv); err != nil {
		return nil, "", fmt.Errorf("creating invitation: %w", err)
	}

	inviteURL := s.InviteURL(token)
	enqueue(ctx, s.tasks, queue.EmailTask(string(mailer.TemplateInvitation), email, map[string]string{
		"workspace_name":  workspace.Name,
		"inviter_name":    inviter.Name,
		"message":         strings.TrimSpace(message),
		"invite_url":      inviteURL,
		"expires_in_days": strconv.Itoa(int(s.ttl.Hours() / 24)),
	}))

	slog.InfoContext(ctx, "invitation created",
		"invitation_id", inv.ID,
		"workspace_id", workspaceID,
		"invited_by", inviter.ID,
		"expires_at", inv.ExpiresAt)

	return inv, inviteURL, nil
}

func (s *invitationService) List(ctx context.Context, actorID, workspaceID int64) ([]model.Invitation, error) {
	if _, err := getWorkspace(ctx, s.workspaceStore, workspaceID); err != nil {
		return nil, err
	}
	if err := requireAdmin(ctx, s.memberStore, workspaceID, actorID); err != nil {
		return nil, err
	}
	invitations, err := s.invStore.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("listing invitations: %w", err)
	}
	return invitations, nil
}

func (s *invitationService) Revoke(ctx context.Context, actorID, workspaceID, invitationID int64) (*model.Invitation, error) {
	if err := requireAdmin(ctx, s.memberStore, workspaceID, actorID); err != nil {
		return nil, err
	}

	inv, err := s.invStore.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("getting invitation: %w", err)
	}
	if inv.WorkspaceID != workspaceID {
		return nil, ErrInviteNotFound
	}
	if err := statusError(inv); err != nil {
		return nil, err
	}

	revoked, err := s.invStore.Revoke(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("revoking invitation: %w", err)
	}

	slog.InfoContext(ctx, "invitation revoked",
		"invitation_id", invitationID,
		"workspace_id", workspaceID,
		"revoked_by", actorID)
	return revoked, nil
}

func (s *invitationService) Validate(ctx context.Context, token string) (*InvitationDetails, error) {
	inv, err := s.invStore.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("getting invitation: %w", err)
	}
	if err := statusError(inv); err != nil {
		return nil, err
	}

	workspace, err := getWorkspace(ctx, s.workspaceStore, inv.WorkspaceID)
	if err != nil {
		return nil, err
	}

	details := &InvitationDetails{Invitation: inv, Workspace: workspace}
	inviter, err := s.userStore.GetByID(ctx, inv.InvitedBy)
	switch {
	case err == nil:
		details.Inviter = inviter
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("getting inviter: %w", err)
	}
	return details, nil
}

func (s *invitationService) Accept(ctx context.Context, user *model.User, token string) (*model.Workspace, error) {
	var workspace *model.Workspace
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		inv, err := stores.Invitations().GetByTokenForUpdate(ctx, token)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInviteNotFound
			}
			return fmt.Errorf("locking invitation: %w", err)
		}
		if err := statusError(inv); err != nil {
			return err
		}

		workspace, err = getWorkspace(ctx, stores.Workspaces(), inv.WorkspaceID)
		if err != nil {
			return err
		}

		if !strings.EqualFold(inv.Email, user.DisplayEmail()) {
			slog.WarnContext(ctx, "email mismatch on invitation acceptance",
				"invitation_id", inv.ID,
				"user_id", user.ID)
			return ErrEmailMismatch
		}

		if _, err := stores.WorkspaceMembers().Get(ctx, inv.WorkspaceID, user.ID); err == nil {
			return ErrAlreadyMember
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("checking membership: %w", err)
		}

		if err := stores.WorkspaceMembers().Add(ctx, &model.WorkspaceMember{
			WorkspaceID: inv.WorkspaceID,
			UserID:      user.ID,
			Role:        model.WorkspaceRoleMember,
		}); err != nil {
			return fmt.Errorf("adding member: %w", err)
		}
		if err := stores.Users().SetPrimaryWorkspaceIfUnset(ctx, user.ID, inv.WorkspaceID); err != nil {
			return fmt.Errorf("setting primary workspace: %w", err)
		}
		if _, err := stores.Invitations().Accept(ctx, inv.ID, user.ID); err != nil {
			return fmt.Errorf("accepting invitation: %w", err)
		}

		slog.InfoContext(ctx, "invitation accepted",
			"invitation_id", inv.ID,
			"workspace_id", inv.WorkspaceID,
			"user_id", user.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return workspace, nil
}

// statusError maps a non-consumable invitation onto the error the invitee sees.
func statusError(inv *model.Invitation) error {
	switch inv.Status {
	case model.InvitationStatusAccepted:
		return ErrInviteAlreadyUsed
	case model.InvitationStatusRevoked:
		return ErrInviteRevoked
	}
	if inv.IsExpired() {
		return ErrInviteExpired
	}
	return nil
}

func generateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
