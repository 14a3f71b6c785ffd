package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"streetnetwork.app/kinship/common"
	"streetnetwork.app/kinship/common/id"
	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/store"
)

const maxSlugAttempts = 20

var (
	ErrWorkspaceNotFound    = errors.New("workspace not found")
	ErrInvalidWorkspaceName = errors.New("workspace name is required")
	ErrNotMember            = errors.New("not a member of this workspace")
	ErrNotAdmin             = errors.New("workspace admin role required")
	ErrAlreadyMember        = errors.New("user is already a member of this workspace")
	ErrMemberNotFound       = errors.New("member not found")
	ErrCannotRemoveOwner    = errors.New("the workspace owner cannot be removed")
	ErrInvalidRole          = errors.New("invalid workspace role")
)

// MemberView pairs a membership with the member's profile.
type MemberView struct {
	Member model.WorkspaceMember
	User   *model.User
}

type WorkspaceService interface {
	Create(ctx context.Context, ownerID int64, name string) (*model.Workspace, error)
	Get(ctx context.Context, actorID, workspaceID int64) (*model.Workspace, error)
	ListMembers(ctx context.Context, actorID, workspaceID int64) ([]MemberView, error)
	AddMember(ctx context.Context, actorID, workspaceID, userID int64, role model.WorkspaceRole) (*model.WorkspaceMember, error)
	// RemoveMember lets admins remove anyone but the owner, and members leave.
	RemoveMember(ctx context.Context, actorID, workspaceID, userID int64) error
}

type workspaceService struct {
	workspaceStore store.WorkspaceStore
	memberStore    store.WorkspaceMemberStore
	userStore      store.UserStore
	txRunner       TxRunner
}

func NewWorkspaceService(
	workspaceStore store.WorkspaceStore,
	memberStore store.WorkspaceMemberStore,
	userStore store.UserStore,
	txRunner TxRunner,
) WorkspaceService {
	return &workspaceService{
		workspaceStore: workspaceStore,
		memberStore:    memberStore,
		userStore:      userStore,
		txRunner:       txRunner,
	}
}

func (s *workspaceService) Create(ctx context.Context, ownerID int64, name string) (*model.Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidWorkspaceName
	}
	base, err := common.Slugify(name, "family")
	if err != nil {
		return nil, fmt.Errorf("generating slug: %w", err)
	}

	var workspace *model.Workspace
	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		slug, err := uniqueSlug(ctx, stores.Workspaces(), base)
		if err != nil {
			return err
		}

		workspace = &model.Workspace{
			ID:      id.New(),
			Name:    name,
			Slug:    slug,
			OwnerID: ownerID,
		}
		if err := stores.Workspaces().Create(ctx, workspace); err != nil {
			return fmt.Errorf("creating workspace: %w", err)
		}

		if err := stores.WorkspaceMembers().Add(ctx, &model.WorkspaceMember{
			WorkspaceID: workspace.ID,
			UserID:      ownerID,
			Role:        model.WorkspaceRoleAdmin,
		}); err != nil {
			return fmt.Errorf("adding owner as admin: %w", err)
		}

		if err := stores.Users().SetPrimaryWorkspaceIfUnset(ctx, ownerID, workspace.ID); err != nil {
			return fmt.Errorf("setting primary workspace: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "workspace created",
		"workspace_id", workspace.ID,
		"owner_id", ownerID,
		"slug", workspace.Slug)
	return workspace, nil
}

func uniqueSlug(ctx context.Context, workspaces store.WorkspaceStore, base string) (string, error) {
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		candidate := common.SlugCandidate(base, attempt)
		exists, err := workspaces.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("checking slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return common.SlugCandidate(base, int(id.New()%1_000_000)), nil
}

func (s *workspaceService) Get(ctx context.Context, actorID, workspaceID int64) (*model.Workspace, error) {
	workspace, err := getWorkspace(ctx, s.workspaceStore, workspaceID)
	if err != nil {
		return nil, err
	}
	if _, err := requireMember(ctx, s.memberStore, workspaceID, actorID); err != nil {
		return nil, err
	}
	return workspace, nil
}

func (s *workspaceService) ListMembers(ctx context.Context, actorID, workspaceID int64) ([]MemberView, error) {
	if _, err := getWorkspace(ctx, s.workspaceStore, workspaceID); err != nil {
		return nil, err
	}
	if _, err := requireMember(ctx, s.memberStore, workspaceID, actorID); err != nil {
		return nil, err
	}

	members, err := s.memberStore.List(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}

	ids := make([]int64, len(members))
	for i, m := range members {
		ids[i] = m.UserID
	}
	users, err := s.userStore.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("loading member profiles: %w", err)
	}
	byID := make(map[int64]*model.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	views := make([]MemberView, len(members))
	for i, m := range members {
		views[i] = MemberView{Member: m, User: byID[m.UserID]}
	}
	return views, nil
}

func (s *workspaceService) AddMember(ctx context.Context, actorID, workspaceID, userID int64, role model.WorkspaceRole) (*model.WorkspaceMember, error) {
	if role == "" {
		role = model.WorkspaceRoleMember
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	if _, err := getWorkspace(ctx, s.workspaceStore, workspaceID); err != nil {
		return nil, err
	}
	if err := requireAdmin(ctx, s.memberStore, workspaceID, actorID); err != nil {
		return nil, err
	}

	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	member := &model.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
	}
	if err := s.memberStore.Add(ctx, member); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrAlreadyMember
		}
		return nil, fmt.Errorf("adding member: %w", err)
	}

	slog.InfoContext(ctx, "workspace member added",
		"workspace_id", workspaceID,
		"user_id", userID,
		"role", role)
	return member, nil
}

func (s *workspaceService) RemoveMember(ctx context.Context, actorID, workspaceID, userID int64) error {
	workspace, err := getWorkspace(ctx, s.workspaceStore, workspaceID)
	if err != nil {
		return err
	}
	if actorID != userID {
		if err := requireAdmin(ctx, s.memberStore, workspaceID, actorID); err != nil {
			return err
		}
	}
	if workspace.OwnerID == userID {
		return ErrCannotRemoveOwner
	}

	var retired int64
	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if err := stores.WorkspaceMembers().Remove(ctx, workspaceID, userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrMemberNotFound
			}
			return fmt.Errorf("removing member: %w", err)
		}
		n, err := stores.WorkspaceRelationships().MarkRemoved(ctx, workspaceID, userID)
		if err != nil {
			return fmt.Errorf("retiring workspace relations: %w", err)
		}
		retired = n
		return nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "workspace member removed",
		"workspace_id", workspaceID,
		"user_id", userID,
		"removed_by", actorID,
		"relations_removed", retired)
	return nil
}

func getWorkspace(ctx context.Context, workspaces store.WorkspaceStore, workspaceID int64) (*model.Workspace, error) {
	workspace, err := workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("getting workspace: %w", err)
	}
	return workspace, nil
}

func requireMember(ctx context.Context, members store.WorkspaceMemberStore, workspaceID, userID int64) (*model.WorkspaceMember, error) {
	member, err := members.Get(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotMember
		}
		return nil, fmt.Errorf("checking membership: %w", err)
	}
	return member, nil
}

func requireAdmin(ctx context.Context, members store.WorkspaceMemberStore, workspaceID, userID int64) error {
	member, err := requireMember(ctx, members, workspaceID, userID)
	if err != nil {
		return err
	}
	if !member.IsAdmin() {
		return ErrNotAdmin
	}
	return nil
}
