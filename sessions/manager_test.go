package sessions_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-login-gateway/sessions"
	"github.com/jrsteele09/go-login-gateway/sessions/repofakes"
)

const testTTL = 24 * time.Hour

func setupManager(t *testing.T) (*sessions.Manager, *repofakes.FakeSessionRepo) {
	t.Helper()

	repo := repofakes.NewFakeSessionRepo()
	return sessions.NewManager(repo, testTTL), repo
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	manager, _ := setupManager(t)

	session := manager.New()
	require.True(t, session.Fresh())
	session.OAuth2State = "state-123"
	session.UserID = "u1"
	session.UserName = "alice"

	require.NoError(t, manager.Save(ctx, session))
	require.False(t, session.Fresh())

	loaded, err := manager.Get(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, session.ID, loaded.ID)
	require.Equal(t, "state-123", loaded.OAuth2State)
	require.Equal(t, "u1", loaded.UserID)
	require.Equal(t, "alice", loaded.UserName)
	require.False(t, loaded.Fresh())
}

func TestGetAbsentSessionIsNotAnError(t *testing.T) {
	ctx := context.Background()
	manager, _ := setupManager(t)

	loaded, err := manager.Get(ctx, "never-saved")
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestLazyExpiry(t *testing.T) {
	ctx := context.Background()
	manager, repo := setupManager(t)

	session := manager.New()
	session.UserID = "u1"
	require.NoError(t, manager.Save(ctx, session))

	repo.Expire(session.ID)

	// The row has not been swept, but the session reads as absent.
	loaded, err := manager.Get(ctx, session.ID)
	require.NoError(t, err)
	require.Nil(t, loaded)
	require.Equal(t, 1, repo.Len())
}

func TestTouchExtendsExpiryAndPreservesPayload(t *testing.T) {
	ctx := context.Background()
	manager, repo := setupManager(t)

	session := manager.New()
	session.UserID = "u1"
	session.UserName = "alice"
	require.NoError(t, manager.Save(ctx, session))

	before, ok := repo.ExpiresAt(session.ID)
	require.True(t, ok)

	time.Sleep(5 * time.Millisecond)
	manager.Touch(ctx, session)

	after, ok := repo.ExpiresAt(session.ID)
	require.True(t, ok)
	require.True(t, after.After(before))

	loaded, err := manager.Get(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, "u1", loaded.UserID)
	require.Equal(t, "alice", loaded.UserName)
}

func TestTouchMissingSessionDoesNotCreateOne(t *testing.T) {
	ctx := context.Background()
	manager, repo := setupManager(t)

	session := manager.New()
	manager.Touch(ctx, session)

	require.Equal(t, 0, repo.Len())
	loaded, err := manager.Get(ctx, session.ID)
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestTouchFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	manager, repo := setupManager(t)

	session := manager.New()
	session.UserID = "u1"
	require.NoError(t, manager.Save(ctx, session))

	before, _ := repo.ExpiresAt(session.ID)
	repo.TouchErr = errors.New("connection reset")
	manager.Touch(ctx, session) // must not panic or propagate

	after, ok := repo.ExpiresAt(session.ID)
	require.True(t, ok)
	require.Equal(t, before, after)
}

func TestDestroyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	manager, _ := setupManager(t)

	session := manager.New()
	session.UserID = "u1"
	require.NoError(t, manager.Save(ctx, session))

	require.NoError(t, manager.Destroy(ctx, session))
	require.NoError(t, manager.Destroy(ctx, session))

	loaded, err := manager.Get(ctx, session.ID)
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestRegenerateRotatesIDAndDropsContent(t *testing.T) {
	ctx := context.Background()
	manager, _ := setupManager(t)

	session := manager.New()
	session.OAuth2State = "state-123"
	session.UserID = "u1"
	require.NoError(t, manager.Save(ctx, session))

	rotated, err := manager.Regenerate(ctx, session)
	require.NoError(t, err)
	require.NotEqual(t, session.ID, rotated.ID)
	require.True(t, rotated.Fresh())
	require.Empty(t, rotated.OAuth2State)
	require.Empty(t, rotated.UserID)

	// The old record no longer resolves.
	loaded, err := manager.Get(ctx, session.ID)
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestDefaultTTLWhenNoMaxAge(t *testing.T) {
	ctx := context.Background()
	manager, repo := setupManager(t)

	session := manager.New()
	require.NoError(t, manager.Save(ctx, session))

	expiresAt, ok := repo.ExpiresAt(session.ID)
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(testTTL), expiresAt, time.Minute)
}

func TestDeclaredMaxAgeOverridesDefault(t *testing.T) {
	ctx := context.Background()
	manager, repo := setupManager(t)

	session := manager.New()
	session.Cookie.MaxAge = 60
	require.NoError(t, manager.Save(ctx, session))

	expiresAt, ok := repo.ExpiresAt(session.ID)
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, time.Minute)
}

func TestGetPropagatesStorageErrors(t *testing.T) {
	ctx := context.Background()
	manager, repo := setupManager(t)

	repo.LoadErr = errors.New("connection refused")
	_, err := manager.Get(ctx, "any")
	require.Error(t, err)
}

func TestGetPropagatesDecodeErrors(t *testing.T) {
	ctx := context.Background()
	manager, repo := setupManager(t)

	require.NoError(t, repo.Save(ctx, "corrupt", []byte("not-json"), time.Now().Add(time.Hour)))

	_, err := manager.Get(ctx, "corrupt")
	require.Error(t, err)
}

func TestGenerateIDIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 64 {
		id := sessions.GenerateID()
		require.NotEmpty(t, id)
		require.False(t, seen[id])
		seen[id] = true
	}
}
