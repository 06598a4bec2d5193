package auth

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nimasrn/marketplace/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	rdb, err := redis.NewRedisAdapter("session_test_"+t.Name(), "test:", &redis.Options{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	return NewSessionStore(rdb, "session", time.Hour), mr
}

func TestSessionStore_IssueAndResolve(t *testing.T) {
	store, _ := setupStore(t)

	token, err := store.Issue("user-42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := store.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestSessionStore_ResolveUnknownToken(t *testing.T) {
	store, _ := setupStore(t)

	_, err := store.Resolve("nope")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSessionStore_ResolveEmptyToken(t *testing.T) {
	store, _ := setupStore(t)

	_, err := store.Resolve("")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSessionStore_Revoke(t *testing.T) {
	store, _ := setupStore(t)

	token, err := store.Issue("user-42")
	require.NoError(t, err)

	require.NoError(t, store.Revoke(token))

	_, err = store.Resolve(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSessionStore_Expiry(t *testing.T) {
	store, mr := setupStore(t)

	token, err := store.Issue("user-42")
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = store.Resolve(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
