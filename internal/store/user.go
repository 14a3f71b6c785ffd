package store

import (
	"context"
	"encoding/json"
	"fmt"

	"streetnetwork.app/kinship/core/db/sqlc"
	"streetnetwork.app/kinship/internal/model"
)

type userStore struct {
	queries *sqlc.Queries
}

func newUserStore(queries *sqlc.Queries) UserStore {
	return &userStore{queries: queries}
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.queries.GetUser(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row, err := s.queries.GetUserByEmail(ctx, &email)
	if err != nil {
		return nil, mapError(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) GetByWorkOSID(ctx context.Context, workosID string) (*model.User, error) {
	row, err := s.queries.GetUserByWorkOSID(ctx, &workosID)
	if err != nil {
		return nil, mapError(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) GetByWallet(ctx context.Context, address string) (*model.User, error) {
	row, err := s.queries.GetUserByWallet(ctx, &address)
	if err != nil {
		return nil, mapError(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) GetByDiscordID(ctx context.Context, discordID string) (*model.User, error) {
	row, err := s.queries.GetUserByDiscordID(ctx, &discordID)
	if err != nil {
		return nil, mapError(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) List(ctx context.Context, limit, offset int32) ([]model.User, error) {
	rows, err := s.queries.ListUsers(ctx, sqlc.ListUsersParams{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return toUserModels(rows), nil
}

func (s *userStore) ListByIDs(ctx context.Context, ids []int64) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}
	rows, err := s.queries.ListUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return toUserModels(rows), nil
}

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	familyRole := user.FamilyRole
	if familyRole == "" {
		familyRole = model.FamilyRolePending
	}
	var discordID, discordUsername *string
	if user.Discord != nil {
		discordID = &user.Discord.ID
		discordUsername = &user.Discord.Username
	}
	row, err := s.queries.CreateUser(ctx, sqlc.CreateUserParams{
		ID:              user.ID,
		WorkosID:        user.WorkOSID,
		Email:           user.Email,
		PasswordHash:    user.PasswordHash,
		WalletAddress:   user.WalletAddress,
		Name:            user.Name,
		ProfileImage:    user.ProfileImage,
		FamilyRole:      familyRole,
		DiscordID:       discordID,
		DiscordUsername: discordUsername,
	})
	if err != nil {
		return mapError(err)
	}
	*user = *toUserModel(row)
	return nil
}

func (s *userStore) UpdateProfile(ctx context.Context, user *model.User) error {
	settings := []byte(user.Settings)
	if len(settings) == 0 {
		settings = []byte("{}")
	}
	interests := user.Interests
	if interests == nil {
		interests = []string{}
	}
	row, err := s.queries.UpdateUserProfile(ctx, sqlc.UpdateUserProfileParams{
		ID:            user.ID,
		Name:          user.Name,
		ProfileImage:  user.ProfileImage,
		Occupation:    user.Occupation,
		PhoneNumber:   user.PhoneNumber,
		Birthday:      toDate(user.Birthday),
		Gender:        (*string)(user.Gender),
		MaritalStatus: (*string)(user.MaritalStatus),
		Location:      user.Location,
		Bio:           user.Bio,
		Interests:     interests,
		FamilyRole:    user.FamilyRole,
		Settings:      settings,
		WalletAddress: user.WalletAddress,
	})
	if err != nil {
		return mapError(err)
	}
	*user = *toUserModel(row)
	return nil
}

func (s *userStore) LinkWorkOS(ctx context.Context, id int64, workosID string, profileImage *string) (*model.User, error) {
	row, err := s.queries.LinkUserWorkOS(ctx, sqlc.LinkUserWorkOSParams{
		ID:           id,
		WorkosID:     &workosID,
		ProfileImage: profileImage,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) UpdateDiscord(ctx context.Context, id int64, account model.DiscordAccount) (*model.User, error) {
	guilds, err := json.Marshal(nonNil(account.Guilds))
	if err != nil {
		return nil, fmt.Errorf("encoding discord guilds: %w", err)
	}
	connections, err := json.Marshal(nonNil(account.Connections))
	if err != nil {
		return nil, fmt.Errorf("encoding discord connections: %w", err)
	}
	row, err := s.queries.UpdateUserDiscord(ctx, sqlc.UpdateUserDiscordParams{
		ID:                 id,
		DiscordID:          &account.ID,
		DiscordUsername:    &account.Username,
		DiscordEmail:       account.Email,
		DiscordGuilds:      guilds,
		DiscordConnections: connections,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) SetProfileImage(ctx context.Context, id int64, url string) error {
	return s.queries.SetUserProfileImage(ctx, sqlc.SetUserProfileImageParams{ID: id, ProfileImage: &url})
}

func (s *userStore) SetPrimaryWorkspaceIfUnset(ctx context.Context, userID, workspaceID int64) error {
	return s.queries.SetPrimaryWorkspaceIfUnset(ctx, sqlc.SetPrimaryWorkspaceIfUnsetParams{
		ID:                 userID,
		PrimaryWorkspaceID: &workspaceID,
	})
}

func (s *userStore) AddPoints(ctx context.Context, id int64, points int32) error {
	return s.queries.IncrementUserPoints(ctx, sqlc.IncrementUserPointsParams{ID: id, Points: points})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func toUserModel(row sqlc.User) *model.User {
	u := &model.User{
		ID:                 row.ID,
		WorkOSID:           row.WorkosID,
		Email:              row.Email,
		PasswordHash:       row.PasswordHash,
		WalletAddress:      row.WalletAddress,
		Name:               row.Name,
		ProfileImage:       row.ProfileImage,
		Occupation:         row.Occupation,
		PhoneNumber:        row.PhoneNumber,
		Birthday:           fromDate(row.Birthday),
		Gender:             (*model.Gender)(row.Gender),
		MaritalStatus:      (*model.MaritalStatus)(row.MaritalStatus),
		Location:           row.Location,
		Bio:                row.Bio,
		Interests:          nonNil(row.Interests),
		FamilyRole:         row.FamilyRole,
		Settings:           json.RawMessage(row.Settings),
		Points:             row.Points,
		PrimaryWorkspaceID: row.PrimaryWorkspaceID,
		CreatedAt:          row.CreatedAt.Time,
		UpdatedAt:          row.UpdatedAt.Time,
	}
	if len(u.Settings) == 0 {
		u.Settings = json.RawMessage("{}")
	}
	if row.DiscordID != nil {
		acct := &model.DiscordAccount{
			ID:    *row.DiscordID,
			Email: row.DiscordEmail,
		}
		if row.DiscordUsername != nil {
			acct.Username = *row.DiscordUsername
		}
		// malformed JSON leaves the lists empty
		_ = json.Unmarshal(row.DiscordGuilds, &acct.Guilds)
		_ = json.Unmarshal(row.DiscordConnections, &acct.Connections)
		acct.Guilds = nonNil(acct.Guilds)
		acct.Connections = nonNil(acct.Connections)
		u.Discord = acct
	}
	return u
}

func toUserModels(rows []sqlc.User) []model.User {
	result := make([]model.User, len(rows))
	for i, row := range rows {
		result[i] = *toUserModel(row)
	}
	return result
}
