package store

import (
	"context"

	"streetnetwork.app/kinship/core/db/sqlc"
	"streetnetwork.app/kinship/internal/model"
)

type milestoneStore struct {
	queries *sqlc.Queries
}

func newMilestoneStore(queries *sqlc.Queries) MilestoneStore {
	return &milestoneStore{queries: queries}
}

func (s *milestoneStore) Create(ctx context.Context, m *model.Milestone) error {
	row, err := s.queries.CreateMilestone(ctx, sqlc.CreateMilestoneParams{
		ID:          m.ID,
		UserID:      m.UserID,
		Date:        toDate(&m.Date),
		Title:       m.Title,
		Description: m.Description,
	})
	if err != nil {
		return mapError(err)
	}
	*m = *toMilestoneModel(row)
	return nil
}

func (s *milestoneStore) GetByID(ctx context.Context, id int64) (*model.Milestone, error) {
	row, err := s.queries.GetMilestone(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return toMilestoneModel(row), nil
}

func (s *milestoneStore) ListByUser(ctx context.Context, userID int64) ([]model.Milestone, error) {
	rows, err := s.queries.ListMilestonesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]model.Milestone, len(rows))
	for i, row := range rows {
		result[i] = *toMilestoneModel(row)
	}
	return result, nil
}

func (s *milestoneStore) Delete(ctx context.Context, id, userID int64) error {
	n, err := s.queries.DeleteMilestone(ctx, sqlc.DeleteMilestoneParams{ID: id, UserID: userID})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *milestoneStore) SetCID(ctx context.Context, id int64, cid string) error {
	return s.queries.SetMilestoneCID(ctx, sqlc.SetMilestoneCIDParams{ID: id, IpfsCid: &cid})
}

func toMilestoneModel(row sqlc.Milestone) *model.Milestone {
	m := &model.Milestone{
		ID:          row.ID,
		UserID:      row.UserID,
		Title:       row.Title,
		Description: row.Description,
		IPFSCID:     row.IpfsCid,
		CreatedAt:   row.CreatedAt.Time,
	}
	if row.Date.Valid {
		m.Date = row.Date.Time
	}
	return m
}
