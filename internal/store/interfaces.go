package store

import (
	"context"
	"errors"
	"io"
	"time"

	"streetnetwork.app/kinship/internal/model"
)

var (
	// ErrNotFound is returned when a requested entity does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a uniqueness constraint
	ErrConflict = errors.New("already exists")
)

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByWorkOSID(ctx context.Context, workosID string) (*model.User, error)
	GetByWallet(ctx context.Context, address string) (*model.User, error)
	GetByDiscordID(ctx context.Context, discordID string) (*model.User, error)
	List(ctx context.Context, limit, offset int32) ([]model.User, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateProfile(ctx context.Context, user *model.User) error
	LinkWorkOS(ctx context.Context, id int64, workosID string, profileImage *string) (*model.User, error)
	UpdateDiscord(ctx context.Context, id int64, account model.DiscordAccount) (*model.User, error)
	SetProfileImage(ctx context.Context, id int64, url string) error
	SetPrimaryWorkspaceIfUnset(ctx context.Context, userID, workspaceID int64) error
	AddPoints(ctx context.Context, id int64, points int32) error
}

// MilestoneStore defines the contract for profile milestone data access
type MilestoneStore interface {
	Create(ctx context.Context, m *model.Milestone) error
	GetByID(ctx context.Context, id int64) (*model.Milestone, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Milestone, error)
	Delete(ctx context.Context, id, userID int64) error
	SetCID(ctx context.Context, id int64, cid string) error
}

// SessionStore defines the contract for session data access
type SessionStore interface {
	Create(ctx context.Context, session *model.Session) error
	GetValid(ctx context.Context, id int64) (*model.Session, error) // checks expiry
	Delete(ctx context.Context, id int64) error
	DeleteByUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// WorkspaceStore defines the contract for workspace data access
type WorkspaceStore interface {
	GetByID(ctx context.Context, id int64) (*model.Workspace, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, ws *model.Workspace) error
	ListByUser(ctx context.Context, userID int64) ([]model.Workspace, error)
}

type WorkspaceMemberStore interface {
	Add(ctx context.Context, member *model.WorkspaceMember) error
	Get(ctx context.Context, workspaceID, userID int64) (*model.WorkspaceMember, error)
	List(ctx context.Context, workspaceID int64) ([]model.WorkspaceMember, error)
	Remove(ctx context.Context, workspaceID, userID int64) error
}

// InvitationStore defines the contract for workspace invitation data access
type InvitationStore interface {
	Create(ctx context.Context, inv *model.Invitation) error
	GetByID(ctx context.Context, id int64) (*model.Invitation, error)
	GetByToken(ctx context.Context, token string) (*model.Invitation, error)
	// GetByTokenForUpdate locks the row until the surrounding transaction ends.
	GetByTokenForUpdate(ctx context.Context, token string) (*model.Invitation, error)
	GetPending(ctx context.Context, workspaceID int64, email string) (*model.Invitation, error)
	ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.Invitation, error)
	Accept(ctx context.Context, id, userID int64) (*model.Invitation, error)
	Revoke(ctx context.Context, id int64) (*model.Invitation, error)
	ExpireOld(ctx context.Context) (int64, error)
}

type FamilyConnectionStore interface {
	Create(ctx context.Context, conn *model.FamilyConnection) error
	Get(ctx context.Context, userID, relatedUserID int64) (*model.FamilyConnection, error)
	ListByUser(ctx context.Context, userID int64) ([]model.FamilyConnection, error)
	Confirm(ctx context.Context, userID, relatedUserID int64) error
	Delete(ctx context.Context, userID, relatedUserID int64) error
}

type WorkspaceRelationshipStore interface {
	Upsert(ctx context.Context, rel *model.WorkspaceRelationship) error
	ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.WorkspaceRelationship, error)
	// MarkRemoved retires every active relation in the workspace that
	// involves userID, in either direction.
	MarkRemoved(ctx context.Context, workspaceID, userID int64) (int64, error)
}

type ResourceFilter struct {
	Category *model.ResourceCategory
	Status   *model.ResourceStatus
}

type ResourceStore interface {
	Create(ctx context.Context, r *model.Resource) error
	GetByID(ctx context.Context, id int64) (*model.Resource, error)
	List(ctx context.Context, filter ResourceFilter) ([]model.Resource, error)
	ListTags(ctx context.Context) ([]string, error)
	UpdateStatus(ctx context.Context, id int64, status model.ResourceStatus, notes *string) (*model.Resource, error)
	Like(ctx context.Context, id int64) (*model.Resource, error)
}

type CryptoUserStore interface {
	Create(ctx context.Context, cu *model.CryptoUser) error
	List(ctx context.Context) ([]model.CryptoUser, error)
}

type BetaSignupStore interface {
	Create(ctx context.Context, signup *model.BetaSignup) error
	Exists(ctx context.Context, email string) (bool, error)
}

// ImageUpload carries the metadata written alongside an image blob.
type ImageUpload struct {
	UserID      int64
	Type        model.ImageType
	Filename    string
	ContentType string
	Size        int64
}

// ImageStore keeps image blobs and their metadata in a bucket store.
type ImageStore interface {
	Upload(ctx context.Context, upload ImageUpload, r io.Reader) (*model.Image, error)
	Get(ctx context.Context, id string) (*model.Image, error)
	Open(ctx context.Context, id string) (*model.Image, io.ReadCloser, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID int64) ([]model.Image, error)
}

// DiscordTotals sums activity across every tracked Discord member.
type DiscordTotals struct {
	TotalInteractions int64
	FirstInteraction  *time.Time
}

// ChannelActivity is the per-channel interaction count; ChannelName may be
// empty for interactions the bot logged without one.
type ChannelActivity struct {
	ChannelID         string
	ChannelName       string
	TotalInteractions int64
	UniqueUsers       int64
}

// DiscordStatsStore reads the activity documents written by the Discord bot.
type DiscordStatsStore interface {
	// ListMembers returns members ordered by total interactions, most active first.
	ListMembers(ctx context.Context) ([]model.DiscordMember, error)
	GetMember(ctx context.Context, discordUserID string) (*model.DiscordMemberStats, error)
	Totals(ctx context.Context) (DiscordTotals, error)
	// ChannelActivity is ordered by total interactions, busiest first.
	ChannelActivity(ctx context.Context) ([]ChannelActivity, error)
}

// NonceStore holds single-use challenges for wallet sign-in.
type NonceStore interface {
	Put(ctx context.Context, address, nonce string, ttl time.Duration) error
	// Take returns and deletes the nonce; ErrNotFound when absent or expired.
	Take(ctx context.Context, address string) (string, error)
}
