package service

import (
	"context"
	"fmt"

	"github.com/workos/workos-go/v6/pkg/usermanagement"

	"streetnetwork.app/kinship/core/config"
)

// Identity is the profile a social login provider vouches for.
type Identity struct {
	ProviderID        string
	Email             string
	FirstName         string
	LastName          string
	ProfilePictureURL string
}

type IdentityProvider interface {
	AuthorizationURL(state string) (string, error)
	Authenticate(ctx context.Context, code string) (*Identity, error)
}

type workOSProvider struct {
	cfg config.WorkOSConfig
}

// NewWorkOSProvider returns an AuthKit-backed provider. It sets the
// package-level WorkOS API key.
func NewWorkOSProvider(cfg config.WorkOSConfig) IdentityProvider {
	usermanagement.SetAPIKey(cfg.APIKey)
	return &workOSProvider{cfg: cfg}
}

func (p *workOSProvider) AuthorizationURL(state string) (string, error) {
	url, err := usermanagement.GetAuthorizationURL(usermanagement.GetAuthorizationURLOpts{
		ClientID:    p.cfg.ClientID,
		RedirectURI: p.cfg.RedirectURI,
		State:       state,
		Provider:    "authkit",
	})
	if err != nil {
		return "", fmt.Errorf("generating authorization URL: %w", err)
	}
	return url.String(), nil
}

func (p *workOSProvider) Authenticate(ctx context.Context, code string) (*Identity, error) {
	resp, err := usermanagement.AuthenticateWithCode(ctx, usermanagement.AuthenticateWithCodeOpts{
		ClientID: p.cfg.ClientID,
		Code:     code,
	})
	if err != nil {
		return nil, err
	}
	return &Identity{
		ProviderID:        resp.User.ID,
		Email:             resp.User.Email,
		FirstName:         resp.User.FirstName,
		LastName:          resp.User.LastName,
		ProfilePictureURL: resp.User.ProfilePictureURL,
	}, nil
}

func buildUserName(identity *Identity) string {
	if identity.FirstName != "" && identity.LastName != "" {
		return identity.FirstName + " " + identity.LastName
	}
	if identity.FirstName != "" {
		return identity.FirstName
	}
	if identity.LastName != "" {
		return identity.LastName
	}
	return identity.Email
}
