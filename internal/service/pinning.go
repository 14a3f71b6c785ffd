package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"streetnetwork.app/kinship/common/pinata"
)

const SignedURLTTL = 5 * time.Minute

var ErrMissingCID = errors.New("cid is required")

// signConcurrency bounds parallel sign calls when listing a user's pins.
const signConcurrency = 8

type PinningService interface {
	SignedURL(ctx context.Context, cid string) (string, error)
	// UserImages lists what userID pinned, each with a short-lived signed URL.
	UserImages(ctx context.Context, userID int64) ([]PinnedImage, error)
}

// PinnedImage is a pin tagged with the owner's user id. SignedURL is empty
// when signing that pin failed.
type PinnedImage struct {
	CID       string
	Name      string
	URL       string
	SignedURL string
	Size      int64
	PinnedAt  time.Time
	Metadata  map[string]string
}

type pinningService struct {
	client pinata.Client
}

func NewPinningService(client pinata.Client) PinningService {
	return &pinningService{client: client}
}

func (s *pinningService) SignedURL(ctx context.Context, cid string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("pinning %w", ErrNotConfigured)
	}
	cid = strings.TrimSpace(cid)
	if cid == "" {
		return "", ErrMissingCID
	}
	url, err := s.client.SignedURL(ctx, cid, SignedURLTTL)
	if err != nil {
		return "", fmt.Errorf("signing gateway url: %w", err)
	}
	return url, nil
}

func (s *pinningService) UserImages(ctx context.Context, userID int64) ([]PinnedImage, error) {
	if s.client == nil {
		return nil, fmt.Errorf("pinning %w", ErrNotConfigured)
	}

	pins, err := s.client.ListPins(ctx, map[string]string{"userId": strconv.FormatInt(userID, 10)})
	if err != nil {
		return nil, fmt.Errorf("listing pins: %w", err)
	}

	images := make([]PinnedImage, len(pins))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(signConcurrency)
	for i, pin := range pins {
		name := pin.Name
		if name == "" {
			name = "Untitled"
		}
		images[i] = PinnedImage{
			CID:      pin.CID,
			Name:     name,
			URL:      s.client.GatewayURL(pin.CID),
			Size:     pin.Size,
			PinnedAt: pin.PinnedAt,
			Metadata: pin.KeyValues,
		}
		g.Go(func() error {
			signed, err := s.client.SignedURL(gctx, pin.CID, SignedURLTTL)
			if err != nil {
				slog.WarnContext(ctx, "failed to sign pinned image url", "cid", pin.CID, "user_id", userID, "error", err)
				return nil
			}
			images[i].SignedURL = signed
			return nil
		})
	}
	_ = g.Wait()

	return images, nil
}
