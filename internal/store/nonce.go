package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const nonceKeyPrefix = "kinship:wallet_nonce:"

type redisNonceStore struct {
	client redis.Cmdable
}

func NewNonceStore(client redis.Cmdable) NonceStore {
	return &redisNonceStore{client: client}
}

func (s *redisNonceStore) Put(ctx context.Context, address, nonce string, ttl time.Duration) error {
	return s.client.Set(ctx, nonceKey(address), nonce, ttl).Err()
}

func (s *redisNonceStore) Take(ctx context.Context, address string) (string, error) {
	nonce, err := s.client.GetDel(ctx, nonceKey(address)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return nonce, nil
}

func nonceKey(address string) string {
	return nonceKeyPrefix + strings.ToLower(address)
}
