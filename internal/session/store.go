package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alliance-shipping/backoffice/internal/domain"
)

const sessionKeyPrefix = "admin_session:"

// ErrNotFound is returned when no live session exists for an id.
var ErrNotFound = errors.New("session not found")

// Store persists admin sessions outside the process.
type Store interface {
	Save(ctx context.Context, s *domain.AdminSession, ttl time.Duration) error
	Find(ctx context.Context, id string) (*domain.AdminSession, error)
	Delete(ctx context.Context, id string) error
}

type sessionJSON struct {
	ID          string   `json:"id"`
	AdminID     string   `json:"admin_id"`
	UserID      string   `json:"user_id"`
	Role        string   `json:"role"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
	IssuedAt    int64    `json:"issued_at"`
	ExpiresAt   int64    `json:"expires_at"`
}

func sessionToJSON(s *domain.AdminSession) *sessionJSON {
	return &sessionJSON{
		ID:          s.ID,
		AdminID:     s.AdminID,
		UserID:      s.UserID,
		Role:        string(s.Role),
		Email:       s.Email,
		Permissions: s.Permissions.List(),
		IssuedAt:    s.IssuedAt.UnixNano(),
		ExpiresAt:   s.ExpiresAt.UnixNano(),
	}
}

func sessionFromJSON(j *sessionJSON) (*domain.AdminSession, error) {
	role, err := domain.ParseAdminRole(j.Role)
	if err != nil {
		return nil, fmt.Errorf("decode session %s: %w", j.ID, err)
	}
	return &domain.AdminSession{
		ID:          j.ID,
		AdminID:     j.AdminID,
		UserID:      j.UserID,
		Role:        role,
		Email:       j.Email,
		Permissions: domain.NewPermissions(j.Permissions...),
		IssuedAt:    time.Unix(0, j.IssuedAt),
		ExpiresAt:   time.Unix(0, j.ExpiresAt),
	}, nil
}

// RedisStore keeps sessions as JSON values that expire with the session.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Save writes the session with the given expiry.
func (s *RedisStore) Save(ctx context.Context, sess *domain.AdminSession, ttl time.Duration) error {
	payload, err := json.Marshal(sessionToJSON(sess))
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sess.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Find loads a session by id.
func (s *RedisStore) Find(ctx context.Context, id string) (*domain.AdminSession, error) {
	raw, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var j sessionJSON
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return sessionFromJSON(&j)
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
