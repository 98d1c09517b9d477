// Package session holds the per-role authentication tokens. A Store is
// a typed mutable cell: no expiry, refresh or validation logic lives
// here. Token staleness only surfaces when a backend call fails.
package session

import (
	"context"
	"sync"
)

// Role identifies which portal a token belongs to.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDoctor Role = "doctor"
)

// TokenRepository persists one durable token slot per role.
type TokenRepository interface {
	Load(ctx context.Context, role Role) (string, error)
	Save(ctx context.Context, role Role, token string) error
	Delete(ctx context.Context, role Role) error
}

// Store holds one role's token in memory. Persistence is a separate,
// caller-driven step (Persist/Discard), matching the login/logout flow.
type Store struct {
	role Role
	repo TokenRepository

	mu    sync.RWMutex
	token string
}

// NewStore builds a store seeded from durable storage. A missing slot
// yields an empty token (logged out).
func NewStore(ctx context.Context, role Role, repo TokenRepository) (*Store, error) {
	token, err := repo.Load(ctx, role)
	if err != nil {
		return nil, err
	}
	return &Store{role: role, repo: repo, token: token}, nil
}

func (s *Store) Role() Role {
	return s.role
}

// Token returns the current in-memory token; empty means logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken updates the in-memory value only.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Persist writes the current token through to durable storage.
func (s *Store) Persist(ctx context.Context) error {
	return s.repo.Save(ctx, s.role, s.Token())
}

// Clear empties the in-memory token.
func (s *Store) Clear() {
	s.SetToken("")
}

// Discard removes the durable copy. Logout is Clear followed by
// Discard; the two steps are not atomic.
func (s *Store) Discard(ctx context.Context) error {
	return s.repo.Delete(ctx, s.role)
}
