package auth

import (
	"context"
	"testing"
	"time"

	"github.com/Kaabero/Gambler-sub000/internal/pool"
	"github.com/Kaabero/Gambler-sub000/internal/store"
	users "github.com/Kaabero/Gambler-sub000/internal/user"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")

	_, err = database.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	driver, err := sqlite3.WithInstance(database.DB, &sqlite3.Config{})
	require.NoError(t, err, "Failed to create migrate driver instance")

	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations",
		"sqlite3",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to apply migrations")
	}

	t.Cleanup(func() { database.Close() })
	return database
}

type authEnv struct {
	db            *sqlx.DB
	clock         *clockwork.FakeClock
	userStore     *store.UserStore
	authenticator *Authenticator
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()

	db := setupTestDB(t)
	clock := clockwork.NewFakeClockAt(time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC))
	userStore := store.NewUserStore(db)
	tokenStore := store.NewTokenStore(db)

	return &authEnv{
		db:            db,
		clock:         clock,
		userStore:     userStore,
		authenticator: NewAuthenticator(userStore, tokenStore, clock, 24*time.Hour),
	}
}

func (e *authEnv) createUser(t *testing.T, username, password string) *users.User {
	t.Helper()

	hash, err := HashPassword(password)
	require.NoError(t, err)

	user := &users.User{ID: uuid.New(), Username: username, PasswordHash: hash}
	require.NoError(t, e.userStore.CreateUser(context.Background(), user))
	return user
}

func TestLoginAndResolve(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice", "secret1")

	token, user, err := env.authenticator.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, user.ID)
	assert.WithinDuration(t, env.clock.Now().Add(24*time.Hour), token.ExpiresAt, time.Second)

	resolved, err := env.authenticator.Resolve(ctx, token.Token.String())
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, alice.ID, resolved.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	env.createUser(t, "alice", "secret1")

	_, _, err := env.authenticator.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, pool.ErrBadCredential)

	// an unknown username fails the same way
	_, _, err = env.authenticator.Login(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, pool.ErrBadCredential)
}

func TestResolve_UnknownToken(t *testing.T) {
	env := newAuthEnv(t)

	_, err := env.authenticator.Resolve(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, pool.ErrBadCredential)
}

func TestResolve_Expired(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	env.createUser(t, "alice", "secret1")
	token, _, err := env.authenticator.Login(ctx, "alice", "secret1")
	require.NoError(t, err)

	env.clock.Advance(24*time.Hour + time.Minute)

	_, err = env.authenticator.Resolve(ctx, token.Token.String())
	assert.ErrorIs(t, err, pool.ErrExpiredCredential)
}

func TestResolve_DeletedUser(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice", "secret1")
	token, _, err := env.authenticator.Login(ctx, "alice", "secret1")
	require.NoError(t, err)

	// orphan the token to mimic a resolve racing a user deletion; with
	// foreign keys on the cascade would take the token row too
	_, err = env.db.ExecContext(ctx, "PRAGMA foreign_keys = OFF")
	require.NoError(t, err)
	_, err = env.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", alice.ID)
	require.NoError(t, err)

	user, err := env.authenticator.Resolve(ctx, token.Token.String())
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestLogout(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	env.createUser(t, "alice", "secret1")
	token, _, err := env.authenticator.Login(ctx, "alice", "secret1")
	require.NoError(t, err)

	require.NoError(t, env.authenticator.Logout(ctx, token.Token.String()))

	_, err = env.authenticator.Resolve(ctx, token.Token.String())
	assert.ErrorIs(t, err, pool.ErrBadCredential)
}
