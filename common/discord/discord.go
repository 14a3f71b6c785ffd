// Package discord links Discord accounts through the OAuth2 authorization
// code flow and reads the profile, guilds and connections with the user's token.
package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/oauth2"
)

var (
	ErrMissingCode   = errors.New("missing authorization code")
	ErrTokenExchange = errors.New("discord token exchange failed")
)

var Endpoint = oauth2.Endpoint{
	AuthURL:   "https://discord.com/oauth2/authorize",
	TokenURL:  "https://discord.com/api/oauth2/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

var Scopes = []string{"identify", "email", "guilds", "connections"}

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

type Guild struct {
	ID          string
	Name        string
	Icon        string
	Owner       bool
	Permissions int64
}

type Connection struct {
	ID      string
	Name    string
	Type    string
	Revoked bool
}

type Profile struct {
	ID          string
	Username    string
	Email       string
	Guilds      []Guild
	Connections []Connection
}

type Client interface {
	AuthCodeURL(state string) string
	// Exchange trades the callback code for a token and loads the profile.
	Exchange(ctx context.Context, code string) (*Profile, error)
}

type client struct {
	oauth *oauth2.Config
}

func New(cfg Config) Client {
	return &client{oauth: OAuthConfig(cfg)}
}

func OAuthConfig(cfg Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURI,
		Endpoint:     Endpoint,
		Scopes:       Scopes,
	}
}

func (c *client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "consent"))
}

func (c *client) Exchange(ctx context.Context, code string) (*Profile, error) {
	if code == "" {
		return nil, ErrMissingCode
	}

	start := time.Now()
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenExchange, err)
	}

	session, err := discordgo.New("Bearer " + tok.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}

	me, err := session.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetching discord user: %w", err)
	}

	// Guilds and connections are best effort; the link still succeeds without them.
	guilds, err := session.UserGuilds(100, "", "", false, discordgo.WithContext(ctx))
	if err != nil {
		slog.WarnContext(ctx, "failed to fetch discord guilds", "error", err)
	}
	conns, err := session.UserConnections(discordgo.WithContext(ctx))
	if err != nil {
		slog.WarnContext(ctx, "failed to fetch discord connections", "error", err)
	}

	profile := ToProfile(me, guilds, conns)

	slog.InfoContext(ctx, "discord profile fetched",
		"discord_id", profile.ID,
		"guilds", len(profile.Guilds),
		"connections", len(profile.Connections),
		"duration_ms", time.Since(start).Milliseconds())

	return profile, nil
}

func ToProfile(me *discordgo.User, guilds []*discordgo.UserGuild, conns []*discordgo.UserConnection) *Profile {
	p := &Profile{
		ID:          me.ID,
		Username:    me.Username,
		Email:       me.Email,
		Guilds:      make([]Guild, 0, len(guilds)),
		Connections: make([]Connection, 0, len(conns)),
	}
	for _, g := range guilds {
		if g == nil {
			continue
		}
		p.Guilds = append(p.Guilds, Guild{
			ID:          g.ID,
			Name:        g.Name,
			Icon:        g.Icon,
			Owner:       g.Owner,
			Permissions: g.Permissions,
		})
	}
	for _, c := range conns {
		if c == nil {
			continue
		}
		p.Connections = append(p.Connections, Connection{
			ID:      c.ID,
			Name:    c.Name,
			Type:    c.Type,
			Revoked: c.Revoked,
		})
	}
	return p
}
