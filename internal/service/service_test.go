package service

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
	"github.com/stretchr/testify/require"
)

var testBaseTime = time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

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

	return database
}

type testEnv struct {
	db          *sqlx.DB
	clock       *clockwork.FakeClock
	userStore   *store.UserStore
	betStore    *store.BetStore
	scoreStore  *store.ScoreStore
	tournaments *TournamentService
	games       *GameService
	bets        *BetService
	outcomes    *OutcomeService
	scores      *ScoreService
	users       *UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	t.Cleanup(func() { db.Close() })

	clock := clockwork.NewFakeClockAt(testBaseTime)

	userStore := store.NewUserStore(db)
	tokenStore := store.NewTokenStore(db)
	tournamentStore := store.NewTournamentStore(db)
	gameStore := store.NewGameStore(db)
	betStore := store.NewBetStore(db)
	outcomeStore := store.NewOutcomeStore(db)
	scoreStore := store.NewScoreStore(db)

	return &testEnv{
		db:          db,
		clock:       clock,
		userStore:   userStore,
		betStore:    betStore,
		scoreStore:  scoreStore,
		tournaments: NewTournamentService(db, tournamentStore, gameStore, betStore, outcomeStore, scoreStore, clock),
		games:       NewGameService(db, tournamentStore, gameStore, betStore, outcomeStore, scoreStore, userStore, clock),
		bets:        NewBetService(betStore, gameStore, outcomeStore, userStore, clock),
		outcomes:    NewOutcomeService(db, outcomeStore, gameStore, betStore, scoreStore, clock),
		scores:      NewScoreService(scoreStore, outcomeStore, userStore),
		users:       NewUserService(db, userStore, betStore, scoreStore, tokenStore),
	}
}

func (e *testEnv) createUser(t *testing.T, username string, admin bool) *users.User {
	t.Helper()

	user := &users.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: "not-a-real-hash",
		Admin:        admin,
	}
	require.NoError(t, e.userStore.CreateUser(context.Background(), user))
	return user
}

// asUser builds a context carrying an authenticated caller, the way the
// auth middleware would.
func asUser(u *users.User) context.Context {
	return context.WithValue(context.Background(), users.UserKey, u)
}

// createTournament makes a tournament spanning ten to forty days from the
// fake clock's current time.
func (e *testEnv) createTournament(t *testing.T, ctx context.Context, name string) *pool.Tournament {
	t.Helper()

	now := e.clock.Now()
	tournament, err := e.tournaments.CreateTournament(ctx, name, now.Add(10*24*time.Hour), now.Add(40*24*time.Hour))
	require.NoError(t, err)
	return tournament
}

func (e *testEnv) createGame(t *testing.T, ctx context.Context, tournamentID uuid.UUID, home, visitor string, kickoff time.Time) *pool.Game {
	t.Helper()

	game, err := e.games.CreateGame(ctx, tournamentID, home, visitor, kickoff)
	require.NoError(t, err)
	return game
}
