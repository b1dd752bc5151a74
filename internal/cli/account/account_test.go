package account

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/zenith/internal/cli"
	"github.com/julianstephens/zenith/internal/constants"
	"github.com/julianstephens/zenith/internal/state"
	"github.com/julianstephens/zenith/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	provider := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, provider.Init())

	ctx := &cli.Context{
		Provider:     provider,
		StoreOptions: state.Options{Sleep: func(time.Duration) {}},
	}
	t.Cleanup(func() { _ = ctx.Close() })
	return ctx
}

// reopen simulates the next CLI invocation against the same database
func reopen(t *testing.T, ctx *cli.Context) *state.Store {
	t.Helper()
	path := ctx.Provider.GetConfigPath()
	require.NoError(t, ctx.Close())

	next := &cli.Context{
		Provider:     sqlite.NewStore(path),
		StoreOptions: ctx.StoreOptions,
	}
	t.Cleanup(func() { _ = next.Close() })
	store, err := next.Store()
	require.NoError(t, err)
	return store
}

func TestLoginPersistsSession(t *testing.T) {
	ctx := setupTestDB(t)

	require.NoError(t, (&LoginCmd{Email: "alex@example.com", Password: "pw"}).Run(ctx))

	snap := reopen(t, ctx).Snapshot()
	assert.True(t, snap.IsAuthenticated)
	require.NotNil(t, snap.User)
	assert.Equal(t, "alex", snap.User.Name)
	require.Len(t, snap.Logs, 1)
	assert.Equal(t, constants.ActionLogin, snap.Logs[0].Action)
}

func TestLoginRejectsBlankEmail(t *testing.T) {
	ctx := setupTestDB(t)
	assert.Error(t, (&LoginCmd{Email: "   ", Password: "pw"}).Run(ctx))
}

func TestRegisterAndWhoami(t *testing.T) {
	ctx := setupTestDB(t)

	require.NoError(t, (&RegisterCmd{Name: "Sam Doe", Email: "sam@example.com", Password: "pw"}).Run(ctx))
	require.NoError(t, (&WhoamiCmd{}).Run(ctx))

	store, err := ctx.Store()
	require.NoError(t, err)
	snap := store.Snapshot()
	require.NotNil(t, snap.User)
	assert.Equal(t, "Sam Doe", snap.User.Name)
	assert.Equal(t, "Welcome to Zenith", snap.Notifications[0].Title)
}

func TestRegisterRequiresName(t *testing.T) {
	ctx := setupTestDB(t)
	assert.Error(t, (&RegisterCmd{Name: "", Email: "sam@example.com", Password: "pw"}).Run(ctx))
}

func TestForgotPasswordLeavesStateAlone(t *testing.T) {
	ctx := setupTestDB(t)
	require.NoError(t, (&ForgotPasswordCmd{Email: "a@b.c"}).Run(ctx))

	store, err := ctx.Store()
	require.NoError(t, err)
	assert.Empty(t, store.Snapshot().Logs)
}

func TestLogout(t *testing.T) {
	ctx := setupTestDB(t)

	// Signed out already: still succeeds
	require.NoError(t, (&LogoutCmd{}).Run(ctx))

	require.NoError(t, (&LoginCmd{Email: "alex@example.com", Password: "pw"}).Run(ctx))
	require.NoError(t, (&LogoutCmd{}).Run(ctx))

	snap := reopen(t, ctx).Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.Nil(t, snap.User)
}

func TestProfileSet(t *testing.T) {
	ctx := setupTestDB(t)

	name := "Alexandra"
	assert.Error(t, (&ProfileSetCmd{Name: &name}).Run(ctx), "profile changes need a session")

	require.NoError(t, (&LoginCmd{Email: "alex@example.com", Password: "pw"}).Run(ctx))

	bad := "Mars/Olympus"
	assert.Error(t, (&ProfileSetCmd{Timezone: &bad}).Run(ctx))

	off := false
	require.NoError(t, (&ProfileSetCmd{Name: &name, Theme: "dark", EmailNotifications: &off}).Run(ctx))

	snap := reopen(t, ctx).Snapshot()
	require.NotNil(t, snap.User)
	assert.Equal(t, "Alexandra", snap.User.Name)
	assert.Equal(t, "dark", snap.User.Preferences.Theme)
	assert.False(t, snap.User.Preferences.EmailNotifications)
	assert.Equal(t, "Updated: name, preferences", snap.Logs[0].Details)
}

func TestProfileSetWithoutFlagsChangesNothing(t *testing.T) {
	ctx := setupTestDB(t)
	require.NoError(t, (&LoginCmd{Email: "alex@example.com", Password: "pw"}).Run(ctx))

	require.NoError(t, (&ProfileSetCmd{}).Run(ctx))

	snap := reopen(t, ctx).Snapshot()
	for _, l := range snap.Logs {
		assert.NotEqual(t, constants.ActionProfileUpdate, l.Action)
	}
	for _, n := range snap.Notifications {
		assert.NotEqual(t, "Profile Updated", n.Title)
	}
}
