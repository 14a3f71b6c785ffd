package store

import (
	"context"

	"streetnetwork.app/kinship/core/db/sqlc"
	"streetnetwork.app/kinship/internal/model"
)

type workspaceStore struct {
	queries *sqlc.Queries
}

func newWorkspaceStore(queries *sqlc.Queries) WorkspaceStore {
	return &workspaceStore{queries: queries}
}

func (s *workspaceStore) GetByID(ctx context.Context, id int64) (*model.Workspace, error) {
	row, err := s.queries.GetWorkspace(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return toWorkspaceModel(row), nil
}

func (s *workspaceStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	return s.queries.WorkspaceSlugExists(ctx, slug)
}

func (s *workspaceStore) Create(ctx context.Context, ws *model.Workspace) error {
	row, err := s.queries.CreateWorkspace(ctx, sqlc.CreateWorkspaceParams{
		ID:      ws.ID,
		Name:    ws.Name,
		Slug:    ws.Slug,
		OwnerID: ws.OwnerID,
	})
	if err != nil {
		return mapError(err)
	}
	*ws = *toWorkspaceModel(row)
	return nil
}

func (s *workspaceStore) ListByUser(ctx context.Context, userID int64) ([]model.Workspace, error) {
	rows, err := s.queries.ListWorkspacesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]model.Workspace, len(rows))
	for i, row := range rows {
		result[i] = *toWorkspaceModel(row)
	}
	return result, nil
}

func toWorkspaceModel(row sqlc.Workspace) *model.Workspace {
	return &model.Workspace{
		ID:        row.ID,
		Name:      row.Name,
		Slug:      row.Slug,
		OwnerID:   row.OwnerID,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

type workspaceMemberStore struct {
	queries *sqlc.Queries
}

func newWorkspaceMemberStore(queries *sqlc.Queries) WorkspaceMemberStore {
	return &workspaceMemberStore{queries: queries}
}

func (s *workspaceMemberStore) Add(ctx context.Context, member *model.WorkspaceMember) error {
	row, err := s.queries.AddWorkspaceMember(ctx, sqlc.AddWorkspaceMemberParams{
		WorkspaceID: member.WorkspaceID,
		UserID:      member.UserID,
		Role:        string(member.Role),
	})
	if err != nil {
		return mapError(err)
	}
	*member = *toWorkspaceMemberModel(row)
	return nil
}

func (s *workspaceMemberStore) Get(ctx context.Context, workspaceID, userID int64) (*model.WorkspaceMember, error) {
	row, err := s.queries.GetWorkspaceMember(ctx, sqlc.GetWorkspaceMemberParams{
		WorkspaceID: workspaceID,
		UserID:      userID,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toWorkspaceMemberModel(row), nil
}

func (s *workspaceMemberStore) List(ctx context.Context, workspaceID int64) ([]model.WorkspaceMember, error) {
	rows, err := s.queries.ListWorkspaceMembers(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	result := make([]model.WorkspaceMember, len(rows))
	for i, row := range rows {
		result[i] = *toWorkspaceMemberModel(row)
	}
	return result, nil
}

func (s *workspaceMemberStore) Remove(ctx context.Context, workspaceID, userID int64) error {
	n, err := s.queries.RemoveWorkspaceMember(ctx, sqlc.RemoveWorkspaceMemberParams{
		WorkspaceID: workspaceID,
		UserID:      userID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func toWorkspaceMemberModel(row sqlc.WorkspaceMember) *model.WorkspaceMember {
	return &model.WorkspaceMember{
		WorkspaceID: row.WorkspaceID,
		UserID:      row.UserID,
		Role:        model.WorkspaceRole(row.Role),
		JoinedAt:    row.JoinedAt.Time,
	}
}
