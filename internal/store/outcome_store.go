package store

import (
	"context"

	"github.com/Kaabero/Gambler-sub000/internal/pool"
	"github.com/jmoiron/sqlx"
)

type OutcomeStore struct {
	db *sqlx.DB
}

func NewOutcomeStore(db *sqlx.DB) *OutcomeStore {
	return &OutcomeStore{db: db}
}

// CreateOutcome inserts the outcome; the UNIQUE game_id constraint keeps
// the game-to-outcome relation one-to-one under concurrent requests.
func (s *OutcomeStore) CreateOutcome(ctx context.Context, outcome *pool.Outcome) error {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO outcomes (id, game_id, home_goals, visitor_goals)
        VALUES (:id, :game_id, :home_goals, :visitor_goals)`, outcome)
	return uniqueViolation(err, "game already has an outcome")
}

func (s *OutcomeStore) GetOutcome(ctx context.Context, id string) (*pool.Outcome, error) {
	var outcome pool.Outcome
	err := s.db.GetContext(ctx, &outcome, "SELECT * FROM outcomes WHERE id = ?", id)
	return &outcome, err
}

// GetOutcomeByGame returns sql.ErrNoRows while the game is unscored.
func (s *OutcomeStore) GetOutcomeByGame(ctx context.Context, gameID string) (*pool.Outcome, error) {
	var outcome pool.Outcome
	err := s.db.GetContext(ctx, &outcome, "SELECT * FROM outcomes WHERE game_id = ?", gameID)
	return &outcome, err
}

func (s *OutcomeStore) GetOutcomes(ctx context.Context) ([]pool.Outcome, error) {
	var outcomes []pool.Outcome
	err := s.db.SelectContext(ctx, &outcomes, "SELECT * FROM outcomes ORDER BY created_at ASC")
	return outcomes, err
}

func (s *OutcomeStore) DeleteOutcome(ctx context.Context, tx *sqlx.Tx, id string) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM outcomes WHERE id = ?", id)
	return err
}

func (s *OutcomeStore) DeleteOutcomesByGame(ctx context.Context, tx *sqlx.Tx, gameID string) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM outcomes WHERE game_id = ?", gameID)
	return err
}

func (s *OutcomeStore) DeleteOutcomesByTournament(ctx context.Context, tx *sqlx.Tx, tournamentID string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM outcomes WHERE game_id IN
		(SELECT id FROM games WHERE tournament_id = ?)`, tournamentID)
	return err
}
