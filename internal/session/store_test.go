package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-blog-client/internal/model"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return signed
}

func validToken(t *testing.T, role string) string {
	t.Helper()

	claims := jwt.MapClaims{"sub": "alice", "exp": time.Now().Add(time.Hour).Unix()}
	if role != "" {
		claims["role"] = role
	}

	return signToken(t, claims)
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	store := NewStore(NewMemoryKeystore())

	err := store.Login("tokenA", "refreshA", "alice", "ADMIN")
	require.NoError(t, err)

	assert.True(t, store.IsAuthenticated())
	assert.True(t, store.IsAdmin())
	assert.Equal(t, "alice", store.Username())

	store.Logout()

	assert.False(t, store.IsAuthenticated())
	assert.False(t, store.IsAdmin())
	assert.Empty(t, store.Username())
}

func TestIsAdmin_LegacyRolePrefix(t *testing.T) {
	store := NewStore(NewMemoryKeystore())

	require.NoError(t, store.Login("tok", "ref", "alice", "ROLE_ADMIN"))
	assert.True(t, store.IsAdmin())

	require.NoError(t, store.Login("tok", "ref", "alice", "USER"))
	assert.False(t, store.IsAdmin())
}

func TestLogin_DerivesRoleFromToken(t *testing.T) {
	store := NewStore(NewMemoryKeystore())

	require.NoError(t, store.Login(validToken(t, "ADMIN"), "ref", "alice", ""))
	assert.Equal(t, "ADMIN", store.Role())
}

func TestLogin_FallsBackToPersistedRole(t *testing.T) {
	store := NewStore(NewMemoryKeystore())

	// First login establishes the role; the refresh-style login that
	// follows carries a token without a role claim.
	require.NoError(t, store.Login(validToken(t, "ADMIN"), "ref", "alice", ""))
	require.NoError(t, store.Login(validToken(t, ""), "ref2", "alice", ""))

	assert.Equal(t, "ADMIN", store.Role())
}

func TestRestore_Idempotent(t *testing.T) {
	ks := NewMemoryKeystore()
	require.NoError(t, ks.Save(model.Session{
		AccessToken:  validToken(t, "USER"),
		RefreshToken: "refresh",
		Username:     "alice",
		Role:         "USER",
	}))

	store := NewStore(ks)

	require.NoError(t, store.Restore())
	first := store.Current()

	require.NoError(t, store.Restore())
	second := store.Current()

	assert.Equal(t, first, second)
	assert.True(t, store.IsAuthenticated())
}

func TestRestore_ExpiredTokenClearsEverything(t *testing.T) {
	ks := NewMemoryKeystore()
	expired := signToken(t, jwt.MapClaims{"sub": "alice", "exp": time.Now().Add(-time.Hour).Unix()})
	require.NoError(t, ks.Save(model.Session{
		AccessToken:  expired,
		RefreshToken: "refresh",
		Username:     "alice",
		Role:         "ADMIN",
	}))

	store := NewStore(ks)
	require.NoError(t, store.Restore())

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.RefreshToken())
	assert.Empty(t, store.Username())
	assert.Empty(t, store.Role())

	persisted, err := ks.Load()
	require.NoError(t, err)
	assert.Equal(t, model.Session{}, persisted)
}

func TestRestore_MalformedTokenClearsEverything(t *testing.T) {
	ks := NewMemoryKeystore()
	require.NoError(t, ks.Save(model.Session{
		AccessToken:  "not-a-jwt",
		RefreshToken: "refresh",
		Username:     "alice",
		Role:         "USER",
	}))

	store := NewStore(ks)
	require.NoError(t, store.Restore())

	assert.False(t, store.IsAuthenticated())

	persisted, err := ks.Load()
	require.NoError(t, err)
	assert.Equal(t, model.Session{}, persisted)
}

func TestRestore_RoleFromTokenWinsOverPersisted(t *testing.T) {
	ks := NewMemoryKeystore()
	require.NoError(t, ks.Save(model.Session{
		AccessToken:  validToken(t, "ADMIN"),
		RefreshToken: "refresh",
		Username:     "alice",
		Role:         "USER", // stale persisted value
	}))

	store := NewStore(ks)
	require.NoError(t, store.Restore())

	assert.Equal(t, "ADMIN", store.Role())
}

func TestRestore_PersistedRoleWhenTokenHasNone(t *testing.T) {
	ks := NewMemoryKeystore()
	require.NoError(t, ks.Save(model.Session{
		AccessToken:  validToken(t, ""),
		RefreshToken: "refresh",
		Username:     "alice",
		Role:         "ADMIN",
	}))

	store := NewStore(ks)
	require.NoError(t, store.Restore())

	assert.Equal(t, "ADMIN", store.Role())
}

func TestFileKeystore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	ks := NewFileKeystore(path)

	// Missing file is an empty session, not an error.
	sess, err := ks.Load()
	require.NoError(t, err)
	assert.Equal(t, model.Session{}, sess)

	want := model.Session{AccessToken: "tok", RefreshToken: "ref", Username: "alice", Role: "USER"}
	require.NoError(t, ks.Save(want))

	got, err := ks.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, ks.Clear())
	require.NoError(t, ks.Clear()) // clearing twice is fine

	got, err = ks.Load()
	require.NoError(t, err)
	assert.Equal(t, model.Session{}, got)
}

func TestFileKeystore_CorruptFileIsEmptySession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	ks := NewFileKeystore(path)
	require.NoError(t, ks.Save(model.Session{AccessToken: "x"}))

	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))

	sess, err := ks.Load()
	require.NoError(t, err)
	assert.Equal(t, model.Session{}, sess)
}
