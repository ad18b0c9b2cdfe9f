package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pragati-dashboard/internal/common/config"
	"pragati-dashboard/internal/common/database"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })

	return NewStore(rdb), mr
}

func validSession() *Session {
	return &Session{
		Token:       "token-abc",
		Role:        RoleStudent,
		UserID:      "u-1",
		DisplayName: "Asha Verma",
		SchoolID:    "sch-1",
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess := validSession()
	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Load(ctx, RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, sess.Token, loaded.Token)
	assert.Equal(t, sess.Role, loaded.Role)
	assert.Equal(t, sess.UserID, loaded.UserID)
	assert.Equal(t, sess.DisplayName, loaded.DisplayName)
	assert.Equal(t, sess.SchoolID, loaded.SchoolID)
	assert.False(t, loaded.CreatedAt.IsZero())
}

func TestStore_RoleSlotsAreIndependent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	student := validSession()
	principal := validSession()
	principal.Role = RolePrincipal
	principal.Token = "token-principal"

	require.NoError(t, store.Save(ctx, student))
	require.NoError(t, store.Save(ctx, principal))

	gotStudent, err := store.Load(ctx, RoleStudent)
	require.NoError(t, err)
	gotPrincipal, err := store.Load(ctx, RolePrincipal)
	require.NoError(t, err)

	assert.Equal(t, "token-abc", gotStudent.Token)
	assert.Equal(t, "token-principal", gotPrincipal.Token)
}

func TestStore_LoadMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Load(context.Background(), RolePrincipal)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_SaveRejectsEmptyToken(t *testing.T) {
	store, _ := newTestStore(t)

	sess := validSession()
	sess.Token = ""
	err := store.Save(context.Background(), sess)
	assert.Error(t, err)
}

func TestStore_SaveRejectsExpired(t *testing.T) {
	store, _ := newTestStore(t)

	sess := validSession()
	sess.ExpiresAt = time.Now().Add(-time.Minute)
	err := store.Save(context.Background(), sess)
	assert.Error(t, err)
}

func TestStore_LoadExpiredDropsCredential(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	// The key outlives the credential here; the expiry check on Load is
	// what fires, not redis eviction.
	expired := validSession()
	expired.ExpiresAt = time.Now().Add(20 * time.Millisecond)
	require.NoError(t, store.Save(ctx, expired))
	time.Sleep(30 * time.Millisecond)

	_, err := store.Load(ctx, RoleStudent)
	assert.ErrorIs(t, err, ErrNoSession)

	// The stale key is gone; a second load behaves the same.
	_, err = store.Load(ctx, RoleStudent)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_ClearAndInvalidate(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess := validSession()
	require.NoError(t, store.Save(ctx, sess))
	require.NoError(t, store.Clear(ctx, RoleStudent))

	_, err := store.Load(ctx, RoleStudent)
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, store.Save(ctx, sess))
	require.NoError(t, store.Invalidate(ctx, sess))
	_, err = store.Load(ctx, RoleStudent)
	assert.ErrorIs(t, err, ErrNoSession)

	// Invalidating nothing is a no-op.
	assert.NoError(t, store.Invalidate(ctx, nil))
}

func TestLoginPathForRole(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{RoleStudent, "/login/student"},
		{RoleTeacher, "/login/teacher"},
		{RolePrincipal, "/login/principal"},
		{RoleGovernment, "/login/government"},
		{"UNKNOWN", "/login"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LoginPathForRole(tt.role), tt.role)
	}
}

func TestSession_IsExpired(t *testing.T) {
	noExpiry := &Session{Token: "t"}
	assert.False(t, noExpiry.IsExpired())

	future := &Session{Token: "t", ExpiresAt: time.Now().Add(time.Hour)}
	assert.False(t, future.IsExpired())

	past := &Session{Token: "t", ExpiresAt: time.Now().Add(-time.Hour)}
	assert.True(t, past.IsExpired())
}
