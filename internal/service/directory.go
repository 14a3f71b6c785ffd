package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"streetnetwork.app/kinship/common/id"
	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/store"
)

// SubmissionPoints are credited to a signed-in user per directory entry.
const SubmissionPoints = 10

var (
	ErrInvalidCryptoUser = errors.New("twitter handle and specialty are required")
	ErrCryptoUserExists  = errors.New("twitter handle already listed")
	ErrAlreadySubscribed = errors.New("email already subscribed")
)

type CryptoUserService interface {
	List(ctx context.Context) ([]model.CryptoUser, error)
	// Submit lists a handle; submitterID is nil for anonymous submissions.
	Submit(ctx context.Context, submitterID *int64, handle, specialty string) (*model.CryptoUser, error)
}

type cryptoUserService struct {
	cryptoUserStore store.CryptoUserStore
	txRunner        TxRunner
}

func NewCryptoUserService(cryptoUserStore store.CryptoUserStore, txRunner TxRunner) CryptoUserService {
	return &cryptoUserService{
		cryptoUserStore: cryptoUserStore,
		txRunner:        txRunner,
	}
}

func (s *cryptoUserService) List(ctx context.Context) ([]model.CryptoUser, error) {
	entries, err := s.cryptoUserStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing crypto users: %w", err)
	}
	return entries, nil
}

func (s *cryptoUserService) Submit(ctx context.Context, submitterID *int64, handle, specialty string) (*model.CryptoUser, error) {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	specialty = strings.TrimSpace(specialty)
	if handle == "" || specialty == "" {
		return nil, ErrInvalidCryptoUser
	}

	entry := &model.CryptoUser{
		ID:            id.New(),
		TwitterHandle: handle,
		Specialty:     specialty,
		SubmittedBy:   submitterID,
	}
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if err := stores.CryptoUsers().Create(ctx, entry); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return ErrCryptoUserExists
			}
			return fmt.Errorf("creating crypto user: %w", err)
		}
		if submitterID == nil {
			return nil
		}
		if err := stores.Users().AddPoints(ctx, *submitterID, SubmissionPoints); err != nil {
			return fmt.Errorf("awarding points: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "crypto user listed",
		"crypto_user_id", entry.ID,
		"submitted_by", submitterID)
	return entry, nil
}

type NewsletterSignup struct {
	Email       string
	Name        *string
	PhoneNumber *string
	Location    *string
	Gender      *string
	Age         *int32
}

type NewsletterService interface {
	Subscribe(ctx context.Context, signup NewsletterSignup) (*model.BetaSignup, error)
	IsSubscribed(ctx context.Context, email string) (bool, error)
}

type newsletterService struct {
	signupStore store.BetaSignupStore
}

func NewNewsletterService(signupStore store.BetaSignupStore) NewsletterService {
	return &newsletterService{signupStore: signupStore}
}

func (s *newsletterService) Subscribe(ctx context.Context, signup NewsletterSignup) (*model.BetaSignup, error) {
	email := normalizeEmail(signup.Email)
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	exists, err := s.signupStore.Exists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("checking signup: %w", err)
	}
	if exists {
		return nil, ErrAlreadySubscribed
	}

	record := &model.BetaSignup{
		ID:          id.New(),
		Email:       email,
		Name:        signup.Name,
		PhoneNumber: signup.PhoneNumber,
		Location:    signup.Location,
		Gender:      signup.Gender,
		Age:         signup.Age,
	}
	if err := s.signupStore.Create(ctx, record); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("creating signup: %w", err)
	}

	slog.InfoContext(ctx, "newsletter signup", "signup_id", record.ID)
	return record, nil
}

func (s *newsletterService) IsSubscribed(ctx context.Context, email string) (bool, error) {
	exists, err := s.signupStore.Exists(ctx, normalizeEmail(email))
	if err != nil {
		return false, fmt.Errorf("checking signup: %w", err)
	}
	return exists, nil
}
