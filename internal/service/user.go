package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"streetnetwork.app/kinship/common/id"
	"streetnetwork.app/kinship/common/wallet"
	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/queue"
	"streetnetwork.app/kinship/internal/store"
)

var (
	ErrNotSelf           = errors.New("you can only change your own profile")
	ErrInvalidProfile    = errors.New("invalid profile field")
	ErrInvalidMilestone  = errors.New("milestone title and date are required")
	ErrMilestoneNotFound = errors.New("milestone not found")
)

const maxUserPageSize = 100

// ProfileUpdate carries the fields to change; nil fields are left alone.
type ProfileUpdate struct {
	Name          *string
	ProfileImage  *string
	Occupation    *string
	PhoneNumber   *string
	Birthday      *time.Time
	Gender        *model.Gender
	MaritalStatus *model.MaritalStatus
	Location      *string
	Bio           *string
	Interests     *[]string
	FamilyRole    *string
	Settings      json.RawMessage
}

type MilestoneParams struct {
	Date        time.Time
	Title       string
	Description *string
}

type UserService interface {
	List(ctx context.Context, limit, offset int32) ([]model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByWallet(ctx context.Context, address string) (*model.User, error)
	UpdateProfile(ctx context.Context, actorID, userID int64, update ProfileUpdate) (*model.User, error)
	// UpdateByWallet edits the caller's profile addressed by their wallet.
	UpdateByWallet(ctx context.Context, actor *model.User, address string, update ProfileUpdate) (*model.User, error)
	ListMilestones(ctx context.Context, userID int64) ([]model.Milestone, error)
	AddMilestone(ctx context.Context, actorID, userID int64, params MilestoneParams) (*model.Milestone, error)
	DeleteMilestone(ctx context.Context, actorID, userID, milestoneID int64) error
	ListWorkspaces(ctx context.Context, userID int64) ([]model.Workspace, error)
}

type userService struct {
	userStore      store.UserStore
	milestoneStore store.MilestoneStore
	workspaceStore store.WorkspaceStore
	tasks          TaskEnqueuer
}

func NewUserService(
	userStore store.UserStore,
	milestoneStore store.MilestoneStore,
	workspaceStore store.WorkspaceStore,
	tasks TaskEnqueuer,
) UserService {
	return &userService{
		userStore:      userStore,
		milestoneStore: milestoneStore,
		workspaceStore: workspaceStore,
		tasks:          tasks,
	}
}

func (s *userService) List(ctx context.Context, limit, offset int32) ([]model.User, error) {
	if limit <= 0 || limit > maxUserPageSize {
		limit = maxUserPageSize
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.userStore.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.lookup(ctx, func() (*model.User, error) { return s.userStore.GetByID(ctx, id) })
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.lookup(ctx, func() (*model.User, error) { return s.userStore.GetByEmail(ctx, normalizeEmail(email)) })
}

func (s *userService) GetByWallet(ctx context.Context, address string) (*model.User, error) {
	normalized, err := wallet.NormalizeAddress(address)
	if err != nil {
		return nil, ErrInvalidWallet
	}
	return s.lookup(ctx, func() (*model.User, error) { return s.userStore.GetByWallet(ctx, normalized) })
}

func (s *userService) lookup(ctx context.Context, get func() (*model.User, error)) (*model.User, error) {
	user, err := get()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, actorID, userID int64, update ProfileUpdate) (*model.User, error) {
	if actorID != userID {
		return nil, ErrNotSelf
	}
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, user, update)
}

func (s *userService) UpdateByWallet(ctx context.Context, actor *model.User, address string, update ProfileUpdate) (*model.User, error) {
	normalized, err := wallet.NormalizeAddress(address)
	if err != nil {
		return nil, ErrInvalidWallet
	}
	if actor.WalletAddress == nil || !strings.EqualFold(*actor.WalletAddress, normalized) {
		return nil, ErrNotSelf
	}
	user, err := s.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, user, update)
}

func (s *userService) applyUpdate(ctx context.Context, user *model.User, update ProfileUpdate) (*model.User, error) {
	if update.Gender != nil && !update.Gender.IsValid() {
		return nil, fmt.Errorf("%w: gender %q", ErrInvalidProfile, *update.Gender)
	}
	if update.MaritalStatus != nil && !update.MaritalStatus.IsValid() {
		return nil, fmt.Errorf("%w: marital_status %q", ErrInvalidProfile, *update.MaritalStatus)
	}
	if update.Settings != nil && !json.Valid(update.Settings) {
		return nil, fmt.Errorf("%w: settings must be a JSON value", ErrInvalidProfile)
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidProfile)
		}
		user.Name = name
	}
	if update.ProfileImage != nil {
		user.ProfileImage = update.ProfileImage
	}
	if update.Occupation != nil {
		user.Occupation = update.Occupation
	}
	if update.PhoneNumber != nil {
		user.PhoneNumber = update.PhoneNumber
	}
	if update.Birthday != nil {
		user.Birthday = update.Birthday
	}
	if update.Gender != nil {
		user.Gender = update.Gender
	}
	if update.MaritalStatus != nil {
		user.MaritalStatus = update.MaritalStatus
	}
	if update.Location != nil {
		user.Location = update.Location
	}
	if update.Bio != nil {
		user.Bio = update.Bio
	}
	if update.Interests != nil {
		user.Interests = *update.Interests
	}
	if update.FamilyRole != nil {
		user.FamilyRole = *update.FamilyRole
	}
	if update.Settings != nil {
		user.Settings = update.Settings
	}

	if err := s.userStore.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	slog.InfoContext(ctx, "profile updated", "user_id", user.ID)
	return user, nil
}

func (s *userService) ListMilestones(ctx context.Context, userID int64) ([]model.Milestone, error) {
	milestones, err := s.milestoneStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	return milestones, nil
}

func (s *userService) AddMilestone(ctx context.Context, actorID, userID int64, params MilestoneParams) (*model.Milestone, error) {
	if actorID != userID {
		return nil, ErrNotSelf
	}
	title := strings.TrimSpace(params.Title)
	if title == "" || params.Date.IsZero() {
		return nil, ErrInvalidMilestone
	}

	milestone := &model.Milestone{
		ID:          id.New(),
		UserID:      userID,
		Date:        params.Date,
		Title:       title,
		Description: params.Description,
	}
	if err := s.milestoneStore.Create(ctx, milestone); err != nil {
		return nil, fmt.Errorf("creating milestone: %w", err)
	}

	enqueue(ctx, s.tasks, queue.PinMilestoneTask(milestone.ID))

	slog.InfoContext(ctx, "milestone added",
		"user_id", userID,
		"milestone_id", milestone.ID)
	return milestone, nil
}

func (s *userService) DeleteMilestone(ctx context.Context, actorID, userID, milestoneID int64) error {
	if actorID != userID {
		return ErrNotSelf
	}
	if err := s.milestoneStore.Delete(ctx, milestoneID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMilestoneNotFound
		}
		return fmt.Errorf("deleting milestone: %w", err)
	}
	return nil
}

func (s *userService) ListWorkspaces(ctx context.Context, userID int64) ([]model.Workspace, error) {
	workspaces, err := s.workspaceStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing workspaces: %w", err)
	}
	return workspaces, nil
}
