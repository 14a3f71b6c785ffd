package store

import (
	"context"

	"streetnetwork.app/kinship/core/db/sqlc"
	"streetnetwork.app/kinship/internal/model"
)

type familyConnectionStore struct {
	queries *sqlc.Queries
}

func newFamilyConnectionStore(queries *sqlc.Queries) FamilyConnectionStore {
	return &familyConnectionStore{queries: queries}
}

func (s *familyConnectionStore) Create(ctx context.Context, conn *model.FamilyConnection) error {
	row, err := s.queries.CreateFamilyConnection(ctx, sqlc.CreateFamilyConnectionParams{
		UserID:        conn.UserID,
		RelatedUserID: conn.RelatedUserID,
		Relationship:  string(conn.Relationship),
		RequestedBy:   conn.RequestedBy,
	})
	if err != nil {
		return mapError(err)
	}
	*conn = *toFamilyConnectionModel(row)
	return nil
}

func (s *familyConnectionStore) Get(ctx context.Context, userID, relatedUserID int64) (*model.FamilyConnection, error) {
	row, err := s.queries.GetFamilyConnection(ctx, sqlc.GetFamilyConnectionParams{
		UserID:        userID,
		RelatedUserID: relatedUserID,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toFamilyConnectionModel(row), nil
}

func (s *familyConnectionStore) ListByUser(ctx context.Context, userID int64) ([]model.FamilyConnection, error) {
	rows, err := s.queries.ListFamilyConnections(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]model.FamilyConnection, len(rows))
	for i, row := range rows {
		result[i] = *toFamilyConnectionModel(row)
	}
	return result, nil
}

func (s *familyConnectionStore) Confirm(ctx context.Context, userID, relatedUserID int64) error {
	n, err := s.queries.ConfirmFamilyConnection(ctx, sqlc.ConfirmFamilyConnectionParams{
		UserID:        userID,
		RelatedUserID: relatedUserID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *familyConnectionStore) Delete(ctx context.Context, userID, relatedUserID int64) error {
	n, err := s.queries.DeleteFamilyConnection(ctx, sqlc.DeleteFamilyConnectionParams{
		UserID:        userID,
		RelatedUserID: relatedUserID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func toFamilyConnectionModel(row sqlc.FamilyConnection) *model.FamilyConnection {
	return &model.FamilyConnection{
		UserID:        row.UserID,
		RelatedUserID: row.RelatedUserID,
		Relationship:  model.Relationship(row.Relationship),
		Confirmed:     row.Confirmed,
		RequestedBy:   row.RequestedBy,
		CreatedAt:     row.CreatedAt.Time,
	}
}

type workspaceRelationshipStore struct {
	queries *sqlc.Queries
}

func newWorkspaceRelationshipStore(queries *sqlc.Queries) WorkspaceRelationshipStore {
	return &workspaceRelationshipStore{queries: queries}
}

func (s *workspaceRelationshipStore) Upsert(ctx context.Context, rel *model.WorkspaceRelationship) error {
	row, err := s.queries.UpsertWorkspaceRelationship(ctx, sqlc.UpsertWorkspaceRelationshipParams{
		WorkspaceID:   rel.WorkspaceID,
		UserID:        rel.UserID,
		RelatedUserID: rel.RelatedUserID,
		Relation:      string(rel.Relation),
	})
	if err != nil {
		return mapError(err)
	}
	*rel = *toWorkspaceRelationshipModel(row)
	return nil
}

func (s *workspaceRelationshipStore) ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.WorkspaceRelationship, error) {
	rows, err := s.queries.ListWorkspaceRelationships(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	result := make([]model.WorkspaceRelationship, len(rows))
	for i, row := range rows {
		result[i] = *toWorkspaceRelationshipModel(row)
	}
	return result, nil
}

func (s *workspaceRelationshipStore) MarkRemoved(ctx context.Context, workspaceID, userID int64) (int64, error) {
	return s.queries.MarkWorkspaceRelationshipsRemoved(ctx, sqlc.MarkWorkspaceRelationshipsRemovedParams{
		WorkspaceID: workspaceID,
		UserID:      userID,
	})
}

func toWorkspaceRelationshipModel(row sqlc.WorkspaceRelationship) *model.WorkspaceRelationship {
	return &model.WorkspaceRelationship{
		WorkspaceID:   row.WorkspaceID,
		UserID:        row.UserID,
		RelatedUserID: row.RelatedUserID,
		Relation:      model.Relationship(row.Relation),
		Status:        model.WorkspaceRelationshipStatus(row.Status),
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
	}
}
