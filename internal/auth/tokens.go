package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jobboard/jobboard/internal/authz"
	"github.com/jobboard/jobboard/internal/shared"
)

const tokenKeyPrefix = "token:"

// SessionID derives the audit-row key for a bearer token. Only the digest
// reaches postgres, so the sessions table never holds a replayable token.
func SessionID(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

type tokenRecord struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

// TokenStore keeps opaque bearer tokens in Redis. Expiry is handled by
// the key TTL; a missing key means the token is unknown or expired.
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenStore constructs a TokenStore.
func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *TokenStore) TTL() time.Duration {
	return s.ttl
}

// Issue mints a new token for the user.
func (s *TokenStore) Issue(ctx context.Context, user *User) (string, error) {
	token := uuid.NewString()
	data, err := json.Marshal(tokenRecord{UserID: user.ID, Role: string(user.Role)})
	if err != nil {
		return "", fmt.Errorf("auth: marshal token record: %w", err)
	}
	if err := s.client.Set(ctx, tokenKeyPrefix+token, data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("auth: store token: %w", err)
	}
	return token, nil
}

// Resolve returns the actor a token was issued to. Unknown and expired
// tokens resolve to ErrUnauthorized.
func (s *TokenStore) Resolve(ctx context.Context, token string) (authz.Actor, error) {
	data, err := s.client.Get(ctx, tokenKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return authz.Anonymous(), shared.ErrUnauthorized
		}
		return authz.Anonymous(), fmt.Errorf("auth: load token: %w", err)
	}
	var record tokenRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return authz.Anonymous(), fmt.Errorf("auth: decode token record: %w", err)
	}
	return authz.Actor{
		ID:            record.UserID,
		Role:          authz.ParseRole(record.Role),
		Authenticated: true,
	}, nil
}

// Revoke deletes a token. Revoking an unknown token is not an error.
func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	return s.client.Del(ctx, tokenKeyPrefix+token).Err()
}
