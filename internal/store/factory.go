package store

import (
	"streetnetwork.app/kinship/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.queries)
}

func (s *Stores) Milestones() MilestoneStore {
	return newMilestoneStore(s.queries)
}

func (s *Stores) Sessions() SessionStore {
	return newSessionStore(s.queries)
}

func (s *Stores) Workspaces() WorkspaceStore {
	return newWorkspaceStore(s.queries)
}

func (s *Stores) WorkspaceMembers() WorkspaceMemberStore {
	return newWorkspaceMemberStore(s.queries)
}

func (s *Stores) Invitations() InvitationStore {
	return newInvitationStore(s.queries)
}

func (s *Stores) FamilyConnections() FamilyConnectionStore {
	return newFamilyConnectionStore(s.queries)
}

func (s *Stores) WorkspaceRelationships() WorkspaceRelationshipStore {
	return newWorkspaceRelationshipStore(s.queries)
}

func (s *Stores) Resources() ResourceStore {
	return newResourceStore(s.queries)
}

func (s *Stores) CryptoUsers() CryptoUserStore {
	return newCryptoUserStore(s.queries)
}

func (s *Stores) BetaSignups() BetaSignupStore {
	return newBetaSignupStore(s.queries)
}
