package store

import (
	"context"
	"testing"
	"time"

	"github.com/Kaabero/Gambler-sub000/internal/pool"
	users "github.com/Kaabero/Gambler-sub000/internal/user"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
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

// seedGame inserts a user, a tournament and one game directly through the
// stores, bypassing service-level checks.
func seedGame(t *testing.T, db *sqlx.DB) (*users.User, *pool.Game) {
	t.Helper()
	ctx := context.Background()

	user := &users.User{ID: uuid.New(), Username: "alice", PasswordHash: "x"}
	require.NoError(t, NewUserStore(db).CreateUser(ctx, user))

	tournament := &pool.Tournament{
		ID:       uuid.New(),
		Name:     "World Cup",
		StartsAt: time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, NewTournamentStore(db).CreateTournament(ctx, tournament))

	game := &pool.Game{
		ID:           uuid.New(),
		TournamentID: tournament.ID,
		HomeTeam:     "Brazil",
		VisitorTeam:  "Germany",
		Kickoff:      tournament.StartsAt.Add(24 * time.Hour),
	}
	require.NoError(t, NewGameStore(db).CreateGame(ctx, game))

	return user, game
}

func TestCreateUser_UniqueUsername(t *testing.T) {
	db := setupTestDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, &users.User{ID: uuid.New(), Username: "Alice", PasswordHash: "x"}))

	// the constraint itself is case-insensitive, not just the service check
	err := s.CreateUser(ctx, &users.User{ID: uuid.New(), Username: "alice", PasswordHash: "x"})
	require.Error(t, err)
	assert.True(t, pool.IsValidation(err))
	assert.Contains(t, err.Error(), "taken")
}

func TestCreateTournament_UniqueName(t *testing.T) {
	db := setupTestDB(t)
	s := NewTournamentStore(db)
	ctx := context.Background()

	starts := time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)
	ends := starts.Add(30 * 24 * time.Hour)
	require.NoError(t, s.CreateTournament(ctx, &pool.Tournament{ID: uuid.New(), Name: "Euro2024", StartsAt: starts, EndsAt: ends}))

	err := s.CreateTournament(ctx, &pool.Tournament{ID: uuid.New(), Name: "EURO2024", StartsAt: starts, EndsAt: ends})
	require.Error(t, err)
	assert.True(t, pool.IsValidation(err))
}

func TestCreateBet_UniquePerUserAndGame(t *testing.T) {
	db := setupTestDB(t)
	s := NewBetStore(db)
	ctx := context.Background()

	user, game := seedGame(t, db)

	require.NoError(t, s.CreateBet(ctx, &pool.Bet{ID: uuid.New(), UserID: user.ID, GameID: game.ID, HomeGoals: 2, VisitorGoals: 1}))

	err := s.CreateBet(ctx, &pool.Bet{ID: uuid.New(), UserID: user.ID, GameID: game.ID, HomeGoals: 0, VisitorGoals: 0})
	require.Error(t, err)
	assert.True(t, pool.IsValidation(err))
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreateOutcome_UniquePerGame(t *testing.T) {
	db := setupTestDB(t)
	s := NewOutcomeStore(db)
	ctx := context.Background()

	_, game := seedGame(t, db)

	require.NoError(t, s.CreateOutcome(ctx, &pool.Outcome{ID: uuid.New(), GameID: game.ID, HomeGoals: 1, VisitorGoals: 0}))

	err := s.CreateOutcome(ctx, &pool.Outcome{ID: uuid.New(), GameID: game.ID, HomeGoals: 2, VisitorGoals: 0})
	require.Error(t, err)
	assert.True(t, pool.IsValidation(err))
	assert.Contains(t, err.Error(), "already has an outcome")
}

func TestCreateScore_UniquePerUserAndOutcome(t *testing.T) {
	db := setupTestDB(t)
	s := NewScoreStore(db)
	ctx := context.Background()

	user, game := seedGame(t, db)

	outcome := &pool.Outcome{ID: uuid.New(), GameID: game.ID, HomeGoals: 1, VisitorGoals: 0}
	require.NoError(t, NewOutcomeStore(db).CreateOutcome(ctx, outcome))

	require.NoError(t, s.CreateScore(ctx, &pool.Score{ID: uuid.New(), UserID: user.ID, OutcomeID: outcome.ID, Points: 3}))

	// a rerun of the scoring engine cannot double-award
	err := s.CreateScore(ctx, &pool.Score{ID: uuid.New(), UserID: user.ID, OutcomeID: outcome.ID, Points: 3})
	require.Error(t, err)
	assert.True(t, pool.IsValidation(err))
}

func TestCountDuplicateGames(t *testing.T) {
	db := setupTestDB(t)
	games := NewGameStore(db)
	ctx := context.Background()

	_, game := seedGame(t, db)
	tid := game.TournamentID.String()

	count, err := games.CountDuplicateGames(ctx, tid, "BRAZIL", "germany", game.Kickoff, uuid.Nil.String())
	require.NoError(t, err)
	assert.Equal(t, 1, count, "team comparison must be case-insensitive")

	// excluding the game itself finds nothing
	count, err = games.CountDuplicateGames(ctx, tid, "Brazil", "Germany", game.Kickoff, game.ID.String())
	require.NoError(t, err)
	assert.Zero(t, count)

	// a scored game does not count as a duplicate
	require.NoError(t, NewOutcomeStore(db).CreateOutcome(ctx, &pool.Outcome{ID: uuid.New(), GameID: game.ID, HomeGoals: 1, VisitorGoals: 0}))
	count, err = games.CountDuplicateGames(ctx, tid, "Brazil", "Germany", game.Kickoff, uuid.Nil.String())
	require.NoError(t, err)
	assert.Zero(t, count)
}
