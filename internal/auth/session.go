package auth

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nimasrn/marketplace/pkg/redis"
)

var ErrUnauthenticated = errors.New("unauthenticated")

// CallerResolver turns a bearer token into a caller identity. The identity
// provider integration itself lives outside this service; all we consume is
// the resolved user id.
type CallerResolver interface {
	Resolve(token string) (string, error)
}

type sessionPayload struct {
	UserID    string    `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionStore keeps provider-issued sessions in Redis, keyed by an opaque
// token. The identity provider writes sessions through Issue; the API only
// ever resolves and revokes them.
type SessionStore struct {
	rdb    redis.RedisAdapter
	prefix string
	ttl    time.Duration
}

func NewSessionStore(rdb redis.RedisAdapter, prefix string, ttl time.Duration) *SessionStore {
	if prefix == "" {
		prefix = "session"
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Issue creates a session for the user and returns the opaque token.
func (s *SessionStore) Issue(userID string) (string, error) {
	token := uuid.New().String()
	now := time.Now()
	payload, err := json.Marshal(sessionPayload{
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	})
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(s.key(token), payload, s.ttl); err != nil {
		return "", err
	}
	return token, nil
}

func (s *SessionStore) Resolve(token string) (string, error) {
	if token == "" {
		return "", ErrUnauthenticated
	}
	raw, err := s.rdb.Get(s.key(token))
	if err != nil {
		if errors.Is(err, redis.NilError) {
			return "", ErrUnauthenticated
		}
		return "", err
	}
	var payload sessionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", ErrUnauthenticated
	}
	if payload.UserID == "" || time.Now().After(payload.ExpiresAt) {
		return "", ErrUnauthenticated
	}
	return payload.UserID, nil
}

func (s *SessionStore) Revoke(token string) error {
	return s.rdb.Del(s.key(token))
}

func (s *SessionStore) key(token string) string {
	return s.prefix + ":" + token
}
