// Package session issues and resolves admin sessions. The cookie carries a signed
// token whose id points at a record held in the session store.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/alliance-shipping/backoffice/internal/domain"
)

// ErrInvalid is returned by Lookup for unsigned, expired, revoked or unknown tokens.
var ErrInvalid = errors.New("invalid session")

// Manager binds signed tokens to stored sessions.
type Manager struct {
	tokens *TokenManager
	store  Store
	now    func() time.Time
}

// NewManager constructs a manager.
func NewManager(tokens *TokenManager, store Store) *Manager {
	return &Manager{tokens: tokens, store: store, now: time.Now}
}

// Issue stores s under a fresh id and returns the token to hand to the client.
func (m *Manager) Issue(ctx context.Context, s *domain.AdminSession) (string, time.Time, error) {
	issuedAt := m.now()
	s.ID = uuid.NewString()
	if s.Permissions == nil {
		s.Permissions = domain.Permissions{}
	}

	token, expiresAt, err := m.tokens.GenerateToken(s.ID, s.AdminID, issuedAt)
	if err != nil {
		return "", time.Time{}, err
	}
	s.IssuedAt = issuedAt
	s.ExpiresAt = expiresAt

	if err := m.store.Save(ctx, s, m.tokens.TTL()); err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Lookup resolves a token to its live session.
func (m *Manager) Lookup(ctx context.Context, token string) (*domain.AdminSession, error) {
	if token == "" {
		return nil, ErrInvalid
	}
	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return nil, ErrInvalid
	}

	s, err := m.store.Find(ctx, claims.ID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalid
	}
	if err != nil {
		return nil, err
	}
	if s.AdminID != claims.AdminID || !m.now().Before(s.ExpiresAt) {
		return nil, ErrInvalid
	}
	return s, nil
}

// Revoke deletes the session behind token. Invalid tokens are ignored.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, claims.ID)
}
