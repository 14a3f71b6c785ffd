package store

import (
	"context"

	"streetnetwork.app/kinship/core/db/sqlc"
	"streetnetwork.app/kinship/internal/model"
)

type resourceStore struct {
	queries *sqlc.Queries
}

func newResourceStore(queries *sqlc.Queries) ResourceStore {
	return &resourceStore{queries: queries}
}

func (s *resourceStore) Create(ctx context.Context, r *model.Resource) error {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	row, err := s.queries.CreateResource(ctx, sqlc.CreateResourceParams{
		ID:               r.ID,
		Title:            r.Title,
		Description:      r.Description,
		Url:              r.URL,
		Category:         string(r.Category),
		Tags:             tags,
		Source:           string(r.Source),
		Status:           string(r.Status),
		SubmittedBy:      r.SubmittedBy,
		DiscordMessageID: r.DiscordMessageID,
		DiscordChannelID: r.DiscordChannelID,
		DiscordServerID:  r.DiscordServerID,
	})
	if err != nil {
		return mapError(err)
	}
	*r = *toResourceModel(row)
	return nil
}

func (s *resourceStore) GetByID(ctx context.Context, id int64) (*model.Resource, error) {
	row, err := s.queries.GetResource(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return toResourceModel(row), nil
}

func (s *resourceStore) List(ctx context.Context, filter ResourceFilter) ([]model.Resource, error) {
	rows, err := s.queries.ListResources(ctx, sqlc.ListResourcesParams{
		Category: (*string)(filter.Category),
		Status:   (*string)(filter.Status),
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Resource, len(rows))
	for i, row := range rows {
		result[i] = *toResourceModel(row)
	}
	return result, nil
}

func (s *resourceStore) ListTags(ctx context.Context) ([]string, error) {
	tags, err := s.queries.ListResourceTags(ctx)
	if err != nil {
		return nil, err
	}
	return nonNil(tags), nil
}

func (s *resourceStore) UpdateStatus(ctx context.Context, id int64, status model.ResourceStatus, notes *string) (*model.Resource, error) {
	row, err := s.queries.UpdateResourceStatus(ctx, sqlc.UpdateResourceStatusParams{
		ID:              id,
		Status:          string(status),
		ModerationNotes: notes,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toResourceModel(row), nil
}

func (s *resourceStore) Like(ctx context.Context, id int64) (*model.Resource, error) {
	row, err := s.queries.IncrementResourceLikes(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return toResourceModel(row), nil
}

func toResourceModel(row sqlc.Resource) *model.Resource {
	return &model.Resource{
		ID:               row.ID,
		Title:            row.Title,
		Description:      row.Description,
		URL:              row.Url,
		Category:         model.ResourceCategory(row.Category),
		Tags:             nonNil(row.Tags),
		Source:           model.ResourceSource(row.Source),
		Status:           model.ResourceStatus(row.Status),
		SubmittedBy:      row.SubmittedBy,
		DiscordMessageID: row.DiscordMessageID,
		DiscordChannelID: row.DiscordChannelID,
		DiscordServerID:  row.DiscordServerID,
		ModerationNotes:  row.ModerationNotes,
		Likes:            row.Likes,
		CreatedAt:        row.CreatedAt.Time,
		UpdatedAt:        row.UpdatedAt.Time,
	}
}

type cryptoUserStore struct {
	queries *sqlc.Queries
}

func newCryptoUserStore(queries *sqlc.Queries) CryptoUserStore {
	return &cryptoUserStore{queries: queries}
}

func (s *cryptoUserStore) Create(ctx context.Context, cu *model.CryptoUser) error {
	row, err := s.queries.CreateCryptoUser(ctx, sqlc.CreateCryptoUserParams{
		ID:            cu.ID,
		TwitterHandle: cu.TwitterHandle,
		Specialty:     cu.Specialty,
		SubmittedBy:   cu.SubmittedBy,
	})
	if err != nil {
		return mapError(err)
	}
	*cu = model.CryptoUser{
		ID:            row.ID,
		TwitterHandle: row.TwitterHandle,
		Specialty:     row.Specialty,
		SubmittedBy:   row.SubmittedBy,
		CreatedAt:     row.CreatedAt.Time,
	}
	return nil
}

func (s *cryptoUserStore) List(ctx context.Context) ([]model.CryptoUser, error) {
	rows, err := s.queries.ListCryptoUsers(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]model.CryptoUser, len(rows))
	for i, row := range rows {
		result[i] = model.CryptoUser{
			ID:            row.ID,
			TwitterHandle: row.TwitterHandle,
			Specialty:     row.Specialty,
			SubmittedBy:   row.SubmittedBy,
			CreatedAt:     row.CreatedAt.Time,
		}
	}
	return result, nil
}

type betaSignupStore struct {
	queries *sqlc.Queries
}

func newBetaSignupStore(queries *sqlc.Queries) BetaSignupStore {
	return &betaSignupStore{queries: queries}
}

func (s *betaSignupStore) Create(ctx context.Context, signup *model.BetaSignup) error {
	row, err := s.queries.CreateBetaSignup(ctx, sqlc.CreateBetaSignupParams{
		ID:          signup.ID,
		Email:       signup.Email,
		Name:        signup.Name,
		PhoneNumber: signup.PhoneNumber,
		Location:    signup.Location,
		Gender:      signup.Gender,
		Age:         signup.Age,
	})
	if err != nil {
		return mapError(err)
	}
	*signup = model.BetaSignup{
		ID:          row.ID,
		Email:       row.Email,
		Name:        row.Name,
		PhoneNumber: row.PhoneNumber,
		Location:    row.Location,
		Gender:      row.Gender,
		Age:         row.Age,
		CreatedAt:   row.CreatedAt.Time,
	}
	return nil
}

func (s *betaSignupStore) Exists(ctx context.Context, email string) (bool, error) {
	return s.queries.BetaSignupExists(ctx, email)
}
