package store

import (
	"context"

	"streetnetwork.app/kinship/core/db/sqlc"
	"streetnetwork.app/kinship/internal/model"
)

type invitationStore struct {
	queries *sqlc.Queries
}

func newInvitationStore(queries *sqlc.Queries) InvitationStore {
	return &invitationStore{queries: queries}
}

func (s *invitationStore) Create(ctx context.Context, inv *model.Invitation) error {
	row, err := s.queries.CreateInvitation(ctx, sqlc.CreateInvitationParams{
		ID:          inv.ID,
		WorkspaceID: inv.WorkspaceID,
		Email:       inv.Email,
		Token:       inv.Token,
		Status:      string(inv.Status),
		InvitedBy:   inv.InvitedBy,
		ExpiresAt:   toTimestamptz(inv.ExpiresAt),
	})
	if err != nil {
		return mapError(err)
	}
	*inv = *toInvitationModel(row)
	return nil
}

func (s *invitationStore) GetByID(ctx context.Context, id int64) (*model.Invitation, error) {
	row, err := s.queries.GetInvitationByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) GetByToken(ctx context.Context, token string) (*model.Invitation, error) {
	row, err := s.queries.GetInvitationByToken(ctx, token)
	if err != nil {
		return nil, mapError(err)
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) GetByTokenForUpdate(ctx context.Context, token string) (*model.Invitation, error) {
	row, err := s.queries.GetInvitationByTokenForUpdate(ctx, token)
	if err != nil {
		return nil, mapError(err)
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) GetPending(ctx context.Context, workspaceID int64, email string) (*model.Invitation, error) {
	row, err := s.queries.GetPendingInvitation(ctx, sqlc.GetPendingInvitationParams{
		WorkspaceID: workspaceID,
		Email:       email,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.Invitation, error) {
	rows, err := s.queries.ListInvitationsByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	return toInvitationModels(rows), nil
}

func (s *invitationStore) Accept(ctx context.Context, id, userID int64) (*model.Invitation, error) {
	row, err := s.queries.AcceptInvitation(ctx, sqlc.AcceptInvitationParams{
		ID:         id,
		AcceptedBy: &userID,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) Revoke(ctx context.Context, id int64) (*model.Invitation, error) {
	row, err := s.queries.RevokeInvitation(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) ExpireOld(ctx context.Context) (int64, error) {
	return s.queries.ExpireOldInvitations(ctx)
}

func toInvitationModel(row sqlc.Invitation) *model.Invitation {
	return &model.Invitation{
		ID:          row.ID,
		WorkspaceID: row.WorkspaceID,
		Email:       row.Email,
		Token:       row.Token,
		Status:      model.InvitationStatus(row.Status),
		InvitedBy:   row.InvitedBy,
		AcceptedBy:  row.AcceptedBy,
		ExpiresAt:   row.ExpiresAt.Time,
		CreatedAt:   row.CreatedAt.Time,
		AcceptedAt:  fromTimestamptz(row.AcceptedAt),
	}
}

func toInvitationModels(rows []sqlc.Invitation) []model.Invitation {
	result := make([]model.Invitation, len(rows))
	for i, row := range rows {
		result[i] = *toInvitationModel(row)
	}
	return result
}
