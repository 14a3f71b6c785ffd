package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"streetnetwork.app/kinship/common/id"
	"streetnetwork.app/kinship/common/mailer"
	"streetnetwork.app/kinship/common/wallet"
	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/queue"
	"streetnetwork.app/kinship/internal/store"
)

const bcryptCost = 12

var (
	ErrInvalidCode        = errors.New("invalid authorization code")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingCredentials = errors.New("email and password, or wallet address and signature, are required")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidWallet      = errors.New("invalid wallet address")
	ErrNonceNotFound      = errors.New("no pending sign-in challenge for this wallet")
	ErrWalletSignature    = errors.New("wallet signature does not match")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWalletTaken        = errors.New("wallet already registered")
)

type SignUpParams struct {
	Name          string
	Email         string
	Password      string
	WalletAddress string
	Signature     string
}

type AuthConfig struct {
	SessionTTL  time.Duration
	NonceTTL    time.Duration
	PasswordMin int
	AppURL      string
}

type AuthService interface {
	GetAuthorizationURL(state string) (string, error)
	HandleCallback(ctx context.Context, code string) (*model.User, *model.Session, error)
	SignUp(ctx context.Context, params SignUpParams) (*model.User, *model.Session, error)
	Login(ctx context.Context, email, password string) (*model.User, *model.Session, error)
	// WalletChallenge issues the single-use message the wallet must sign.
	WalletChallenge(ctx context.Context, address string) (string, error)
	VerifyWallet(ctx context.Context, address, signature string) (*model.User, *model.Session, error)
	ValidateSession(ctx context.Context, sessionID int64) (*model.User, error)
	Logout(ctx context.Context, sessionID int64) error
}

type authService struct {
	userStore    store.UserStore
	sessionStore store.SessionStore
	nonceStore   store.NonceStore
	identity     IdentityProvider
	tasks        TaskEnqueuer
	cfg          AuthConfig
}

// NewAuthService builds the auth service. identity may be nil when social
// login is not configured.
func NewAuthService(
	userStore store.UserStore,
	sessionStore store.SessionStore,
	nonceStore store.NonceStore,
	identity IdentityProvider,
	tasks TaskEnqueuer,
	cfg AuthConfig,
) AuthService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * 24 * time.Hour
	}
	if cfg.NonceTTL <= 0 {
		cfg.NonceTTL = 5 * time.Minute
	}
	if cfg.PasswordMin <= 0 {
		cfg.PasswordMin = 8
	}
	return &authService{
		userStore:    userStore,
		sessionStore: sessionStore,
		nonceStore:   nonceStore,
		identity:     identity,
		tasks:        tasks,
		cfg:          cfg,
	}
}

func (s *authService) GetAuthorizationURL(state string) (string, error) {
	if s.identity == nil {
		return "", fmt.Errorf("social login %w", ErrNotConfigured)
	}
	return s.identity.AuthorizationURL(state)
}

func (s *authService) HandleCallback(ctx context.Context, code string) (*model.User, *model.Session, error) {
	if s.identity == nil {
		return nil, nil, fmt.Errorf("social login %w", ErrNotConfigured)
	}

	identity, err := s.identity.Authenticate(ctx, code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to authenticate with code", "error", err)
		return nil, nil, ErrInvalidCode
	}

	user, created, err := s.upsertIdentity(ctx, identity)
	if err != nil {
		slog.ErrorContext(ctx, "failed to upsert user",
			"error", err,
			"workos_id", identity.ProviderID)
		return nil, nil, err
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	if created {
		s.sendWelcome(ctx, user)
	}

	slog.InfoContext(ctx, "user authenticated",
		"user_id", user.ID,
		"session_id", session.ID,
		"new_user", created)

	return user, session, nil
}

// upsertIdentity finds the user by provider id, then by email, and creates
// one when neither matches.
func (s *authService) upsertIdentity(ctx context.Context, identity *Identity) (*model.User, bool, error) {
	user, err := s.userStore.GetByWorkOSID(ctx, identity.ProviderID)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, fmt.Errorf("getting user by workos id: %w", err)
	}

	var picture *string
	if identity.ProfilePictureURL != "" {
		picture = &identity.ProfilePictureURL
	}

	email := normalizeEmail(identity.Email)
	if email != "" {
		existing, err := s.userStore.GetByEmail(ctx, email)
		switch {
		case err == nil:
			if existing.ProfileImage != nil {
				picture = nil
			}
			linked, err := s.userStore.LinkWorkOS(ctx, existing.ID, identity.ProviderID, picture)
			if err != nil {
				return nil, false, fmt.Errorf("linking workos account: %w", err)
			}
			return linked, false, nil
		case !errors.Is(err, store.ErrNotFound):
			return nil, false, fmt.Errorf("getting user by email: %w", err)
		}
	}

	user = &model.User{
		ID:           id.New(),
		WorkOSID:     &identity.ProviderID,
		Name:         buildUserName(identity),
		ProfileImage: picture,
		FamilyRole:   model.FamilyRolePending,
	}
	if email != "" {
		user.Email = &email
	}
	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("creating user: %w", err)
	}
	return user, true, nil
}

func (s *authService) SignUp(ctx context.Context, params SignUpParams) (*model.User, *model.Session, error) {
	user := &model.User{
		ID:         id.New(),
		Name:       strings.TrimSpace(params.Name),
		FamilyRole: model.FamilyRolePending,
	}

	switch {
	case params.Email != "" && params.Password != "":
		email := normalizeEmail(params.Email)
		if !strings.Contains(email, "@") {
			return nil, nil, ErrInvalidEmail
		}
		if len(params.Password) < s.cfg.PasswordMin {
			return nil, nil, ErrPasswordTooShort
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcryptCost)
		if err != nil {
			return nil, nil, fmt.Errorf("hashing password: %w", err)
		}
		hashed := string(hash)
		user.Email = &email
		user.PasswordHash = &hashed
		if user.Name == "" {
			user.Name = strings.SplitN(email, "@", 2)[0]
		}

	case params.WalletAddress != "" && params.Signature != "":
		address, err := s.consumeChallenge(ctx, params.WalletAddress, params.Signature)
		if err != nil {
			return nil, nil, err
		}
		user.WalletAddress = &address
		if email := normalizeEmail(params.Email); email != "" {
			user.Email = &email
		}
		if user.Name == "" {
			user.Name = address[:10]
		}

	default:
		return nil, nil, ErrMissingCredentials
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			if user.WalletAddress != nil {
				return nil, nil, ErrWalletTaken
			}
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, fmt.Errorf("creating user: %w", err)
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.sendWelcome(ctx, user)

	slog.InfoContext(ctx, "user signed up",
		"user_id", user.ID,
		"wallet", user.WalletAddress != nil)

	return user, session, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, *model.Session, error) {
	user, err := s.userStore.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("getting user: %w", err)
	}
	if user.PasswordHash == nil {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (s *authService) WalletChallenge(ctx context.Context, address string) (string, error) {
	normalized, err := wallet.NormalizeAddress(address)
	if err != nil {
		return "", ErrInvalidWallet
	}
	nonce, err := wallet.NewNonce()
	if err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	message := wallet.SignInMessage(normalized, nonce, time.Now().UTC())
	if err := s.nonceStore.Put(ctx, normalized, message, s.cfg.NonceTTL); err != nil {
		return "", fmt.Errorf("storing nonce: %w", err)
	}
	return message, nil
}

func (s *authService) VerifyWallet(ctx context.Context, address, signature string) (*model.User, *model.Session, error) {
	normalized, err := s.consumeChallenge(ctx, address, signature)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userStore.GetByWallet(ctx, normalized)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("getting user by wallet: %w", err)
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	slog.InfoContext(ctx, "wallet sign-in", "user_id", user.ID)
	return user, session, nil
}

// consumeChallenge takes the pending message for address and checks the
// signature against it. The challenge is gone afterwards either way.
func (s *authService) consumeChallenge(ctx context.Context, address, signature string) (string, error) {
	normalized, err := wallet.NormalizeAddress(address)
	if err != nil {
		return "", ErrInvalidWallet
	}

	message, err := s.nonceStore.Take(ctx, normalized)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrNonceNotFound
		}
		return "", fmt.Errorf("taking nonce: %w", err)
	}

	if err := wallet.Verify(normalized, message, signature); err != nil {
		slog.WarnContext(ctx, "wallet signature rejected", "error", err)
		return "", ErrWalletSignature
	}
	return normalized, nil
}

func (s *authService) ValidateSession(ctx context.Context, sessionID int64) (*model.User, error) {
	session, err := s.sessionStore.GetValid(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("getting session: %w", err)
	}

	user, err := s.userStore.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return user, nil
}

func (s *authService) Logout(ctx context.Context, sessionID int64) error {
	if err := s.sessionStore.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (s *authService) createSession(ctx context.Context, userID int64) (*model.Session, error) {
	session := &model.Session{
		ID:        id.New(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.cfg.SessionTTL),
	}
	if err := s.sessionStore.Create(ctx, session); err != nil {
		slog.ErrorContext(ctx, "failed to create session",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return session, nil
}

func (s *authService) sendWelcome(ctx context.Context, user *model.User) {
	if user.Email == nil {
		return
	}
	enqueue(ctx, s.tasks, queue.EmailTask(string(mailer.TemplateWelcome), *user.Email, map[string]string{
		"name":    user.Name,
		"app_url": s.cfg.AppURL,
	}))
}
