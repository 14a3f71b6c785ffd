package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"streetnetwork.app/kinship/common/discord"
	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/store"
)

var ErrDiscordAlreadyLinked = errors.New("discord account is linked to another user")

type DiscordService interface {
	AuthCodeURL(state string) (string, error)
	// Link exchanges the OAuth code and stores the Discord profile on userID.
	Link(ctx context.Context, userID int64, code string) (*model.User, error)
}

type discordService struct {
	client    discord.Client
	userStore store.UserStore
}

func NewDiscordService(client discord.Client, userStore store.UserStore) DiscordService {
	return &discordService{client: client, userStore: userStore}
}

func (s *discordService) AuthCodeURL(state string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("discord %w", ErrNotConfigured)
	}
	return s.client.AuthCodeURL(state), nil
}

func (s *discordService) Link(ctx context.Context, userID int64, code string) (*model.User, error) {
	if s.client == nil {
		return nil, fmt.Errorf("discord %w", ErrNotConfigured)
	}

	profile, err := s.client.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	user, err := s.userStore.UpdateDiscord(ctx, userID, toDiscordAccount(profile))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			return nil, ErrDiscordAlreadyLinked
		case errors.Is(err, store.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("storing discord account: %w", err)
	}

	slog.InfoContext(ctx, "discord account linked",
		"user_id", userID,
		"discord_id", profile.ID,
		"guilds", len(profile.Guilds))
	return user, nil
}

func toDiscordAccount(p *discord.Profile) model.DiscordAccount {
	account := model.DiscordAccount{
		ID:          p.ID,
		Username:    p.Username,
		Guilds:      make([]model.DiscordGuild, len(p.Guilds)),
		Connections: make([]model.DiscordConnection, len(p.Connections)),
	}
	if p.Email != "" {
		email := p.Email
		account.Email = &email
	}
	for i, g := range p.Guilds {
		account.Guilds[i] = model.DiscordGuild{
			ID:          g.ID,
			Name:        g.Name,
			Icon:        g.Icon,
			Owner:       g.Owner,
			Permissions: g.Permissions,
		}
	}
	for i, c := range p.Connections {
		account.Connections[i] = model.DiscordConnection{
			ID:      c.ID,
			Name:    c.Name,
			Type:    c.Type,
			Revoked: c.Revoked,
		}
	}
	return account
}
