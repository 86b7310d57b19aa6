// Package tokenstore keeps the ids of revoked access tokens in Redis.
//
// A revoked token id is stored under "revoked:<jti>" with a TTL equal to the
// token's remaining lifetime, so the key disappears once the token would have
// expired anyway and the store never needs cleanup.
package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "revoked:"

// TokenStore records revoked token ids.
type TokenStore struct {
	client *redis.Client
	now    func() time.Time
}

// Config holds connection settings for the Redis server.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// New connects to Redis and verifies the connection with a ping.
func New(ctx context.Context, cfg Config) (*TokenStore, error) {
	if cfg.Addr == "" {
		return nil, errors.New("tokenstore: redis address is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("tokenstore: ping: %w", err)
	}

	return NewWithClient(client), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client) *TokenStore {
	return &TokenStore{client: client, now: time.Now}
}

// Revoke marks the token id as revoked until expiresAt.
// Tokens that already expired need no entry and are ignored.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return errors.New("tokenstore: empty token id")
	}
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, keyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("tokenstore: revoke: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token id has been revoked.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("tokenstore: lookup: %w", err)
	}
	return n > 0, nil
}

// Ping checks that Redis is reachable.
func (s *TokenStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *TokenStore) Close() error {
	return s.client.Close()
}
