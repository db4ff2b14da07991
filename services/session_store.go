package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyKeyPrefix    = "checkout:idem:"
	sessionPayloadKeyPrefix = "checkout:session:"
	sessionTTL              = 24 * time.Hour
)

// SessionPayload is everything the confirmation flow needs to finish a
// checkout once the provider signals payment success: the trusted line-item
// list, the buyer, and which cart (user or guest session) to clear.
type SessionPayload struct {
	Items          []TrustedLineItem `json:"items"`
	Buyer          BuyerInfo         `json:"buyer"`
	GuestSessionID string            `json:"guest_session_id,omitempty"`
	PaymentURL     string            `json:"payment_url"`
}

// SessionStore persists checkout session state between session creation and
// the provider's confirmation callback, and deduplicates session creation by
// client-supplied idempotency key.
type SessionStore interface {
	LookupIdempotencyKey(ctx context.Context, key string) (sessionID string, ok bool, err error)
	StoreIdempotencyKey(ctx context.Context, key, sessionID string) error
	SaveSessionPayload(ctx context.Context, sessionID string, payload SessionPayload) error
	LoadSessionPayload(ctx context.Context, sessionID string) (*SessionPayload, error)
	DeleteSessionPayload(ctx context.Context, sessionID string) error
}

// RedisSessionStore is the Redis-backed SessionStore used in production.
type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func (s *RedisSessionStore) LookupIdempotencyKey(ctx context.Context, key string) (string, bool, error) {
	sessionID, err := s.rdb.Get(ctx, idempotencyKeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, errPersistence(err)
	}
	return sessionID, true, nil
}

func (s *RedisSessionStore) StoreIdempotencyKey(ctx context.Context, key, sessionID string) error {
	if err := s.rdb.Set(ctx, idempotencyKeyPrefix+key, sessionID, sessionTTL).Err(); err != nil {
		return errPersistence(err)
	}
	return nil
}

func (s *RedisSessionStore) SaveSessionPayload(ctx context.Context, sessionID string, payload SessionPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errPersistence(err)
	}
	if err := s.rdb.Set(ctx, sessionPayloadKeyPrefix+sessionID, data, sessionTTL).Err(); err != nil {
		return errPersistence(err)
	}
	return nil
}

func (s *RedisSessionStore) LoadSessionPayload(ctx context.Context, sessionID string) (*SessionPayload, error) {
	data, err := s.rdb.Get(ctx, sessionPayloadKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errNotFound("checkout session %s not found", sessionID)
		}
		return nil, errPersistence(err)
	}
	var payload SessionPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errPersistence(err)
	}
	return &payload, nil
}

func (s *RedisSessionStore) DeleteSessionPayload(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, sessionPayloadKeyPrefix+sessionID).Err(); err != nil {
		return errPersistence(err)
	}
	return nil
}
