package store

import (
	"context"
	"time"

	"github.com/Kaabero/Gambler-sub000/internal/pool"
	"github.com/jmoiron/sqlx"
)

type GameStore struct {
	db *sqlx.DB
}

func NewGameStore(db *sqlx.DB) *GameStore {
	return &GameStore{db: db}
}

func (s *GameStore) CreateGame(ctx context.Context, game *pool.Game) error {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO games (id, tournament_id, home_team, visitor_team, kickoff)
        VALUES (:id, :tournament_id, :home_team, :visitor_team, :kickoff)`, game)
	return err
}

func (s *GameStore) GetGame(ctx context.Context, id string) (*pool.Game, error) {
	var game pool.Game
	err := s.db.GetContext(ctx, &game, "SELECT * FROM games WHERE id = ?", id)
	return &game, err
}

func (s *GameStore) GetGames(ctx context.Context) ([]pool.Game, error) {
	var games []pool.Game
	err := s.db.SelectContext(ctx, &games, "SELECT * FROM games ORDER BY kickoff ASC")
	return games, err
}

func (s *GameStore) GetGamesByTournament(ctx context.Context, tournamentID string) ([]pool.Game, error) {
	var games []pool.Game
	err := s.db.SelectContext(ctx, &games, "SELECT * FROM games WHERE tournament_id = ? ORDER BY kickoff ASC", tournamentID)
	return games, err
}

// CountDuplicateGames counts games with the same fixture (team names
// compared case-insensitively) that do not have an outcome yet. A game
// that already has a result does not block re-adding the fixture, e.g.
// for a replay.
func (s *GameStore) CountDuplicateGames(ctx context.Context, tournamentID, homeTeam, visitorTeam string, kickoff time.Time, excludeID string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM games g
		LEFT JOIN outcomes o ON o.game_id = g.id
		WHERE g.tournament_id = ?
		AND g.home_team = ?
		AND g.visitor_team = ?
		AND g.kickoff = ?
		AND g.id != ?
		AND o.id IS NULL`, tournamentID, homeTeam, visitorTeam, kickoff, excludeID)
	return count, err
}

func (s *GameStore) UpdateGame(ctx context.Context, game *pool.Game) error {
	_, err := s.db.NamedExecContext(ctx, `UPDATE games SET
		home_team = :home_team,
		visitor_team = :visitor_team,
		kickoff = :kickoff
		WHERE id = :id`, game)
	return err
}

func (s *GameStore) DeleteGame(ctx context.Context, tx *sqlx.Tx, id string) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM games WHERE id = ?", id)
	return err
}

func (s *GameStore) DeleteGamesByTournament(ctx context.Context, tx *sqlx.Tx, tournamentID string) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM games WHERE tournament_id = ?", tournamentID)
	return err
}
