package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-portal/internal/session"
)

type memRepo struct {
	tokens  map[session.Role]string
	loadErr error
}

func newMemRepo() *memRepo {
	return &memRepo{tokens: make(map[session.Role]string)}
}

func (r *memRepo) Load(_ context.Context, role session.Role) (string, error) {
	if r.loadErr != nil {
		return "", r.loadErr
	}
	return r.tokens[role], nil
}

func (r *memRepo) Save(_ context.Context, role session.Role, token string) error {
	r.tokens[role] = token
	return nil
}

func (r *memRepo) Delete(_ context.Context, role session.Role) error {
	delete(r.tokens, role)
	return nil
}

func TestNewStoreSeedsFromStorage(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	repo.tokens[session.RoleAdmin] = "stored-token"

	store, err := session.NewStore(ctx, session.RoleAdmin, repo)
	require.NoError(t, err)
	assert.Equal(t, "stored-token", store.Token())
	assert.Equal(t, session.RoleAdmin, store.Role())
}

func TestNewStoreEmptySlot(t *testing.T) {
	store, err := session.NewStore(context.Background(), session.RoleDoctor, newMemRepo())
	require.NoError(t, err)
	assert.Equal(t, "", store.Token())
}

func TestNewStoreLoadFailure(t *testing.T) {
	repo := newMemRepo()
	repo.loadErr = errors.New("disk gone")

	_, err := session.NewStore(context.Background(), session.RoleAdmin, repo)
	assert.Error(t, err)
}

func TestSetTokenIsMemoryOnly(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()

	store, err := session.NewStore(ctx, session.RoleAdmin, repo)
	require.NoError(t, err)

	store.SetToken("fresh")
	assert.Equal(t, "fresh", store.Token())
	assert.Empty(t, repo.tokens[session.RoleAdmin])

	require.NoError(t, store.Persist(ctx))
	assert.Equal(t, "fresh", repo.tokens[session.RoleAdmin])
}

func TestClearAndDiscard(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	repo.tokens[session.RoleDoctor] = "stored"

	store, err := session.NewStore(ctx, session.RoleDoctor, repo)
	require.NoError(t, err)

	store.Clear()
	assert.Equal(t, "", store.Token())
	// Durable copy survives until Discard.
	assert.Equal(t, "stored", repo.tokens[session.RoleDoctor])

	require.NoError(t, store.Discard(ctx))
	_, ok := repo.tokens[session.RoleDoctor]
	assert.False(t, ok)
}
