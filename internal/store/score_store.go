package store

import (
	"context"

	"github.com/Kaabero/Gambler-sub000/internal/pool"
	"github.com/jmoiron/sqlx"
)

type ScoreStore struct {
	db *sqlx.DB
}

func NewScoreStore(db *sqlx.DB) *ScoreStore {
	return &ScoreStore{db: db}
}

// CreateScore inserts one award. The UNIQUE (user_id, outcome_id)
// constraint makes re-running the scoring engine for the same outcome
// unable to double-award a user.
func (s *ScoreStore) CreateScore(ctx context.Context, score *pool.Score) error {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO scores (id, user_id, outcome_id, points)
        VALUES (:id, :user_id, :outcome_id, :points)`, score)
	return uniqueViolation(err, "user already has a score for this outcome")
}

func (s *ScoreStore) GetScore(ctx context.Context, id string) (*pool.Score, error) {
	var score pool.Score
	err := s.db.GetContext(ctx, &score, "SELECT * FROM scores WHERE id = ?", id)
	return &score, err
}

func (s *ScoreStore) GetScores(ctx context.Context) ([]pool.Score, error) {
	var scores []pool.Score
	err := s.db.SelectContext(ctx, &scores, "SELECT * FROM scores ORDER BY created_at ASC")
	return scores, err
}

func (s *ScoreStore) GetScoresByOutcome(ctx context.Context, outcomeID string) ([]pool.Score, error) {
	var scores []pool.Score
	err := s.db.SelectContext(ctx, &scores, "SELECT * FROM scores WHERE outcome_id = ? ORDER BY created_at ASC", outcomeID)
	return scores, err
}

func (s *ScoreStore) GetScoresByUser(ctx context.Context, userID string) ([]pool.Score, error) {
	var scores []pool.Score
	err := s.db.SelectContext(ctx, &scores, "SELECT * FROM scores WHERE user_id = ? ORDER BY created_at ASC", userID)
	return scores, err
}

func (s *ScoreStore) UpdateScorePoints(ctx context.Context, id string, points int) error {
	_, err := s.db.ExecContext(ctx, "UPDATE scores SET points = ? WHERE id = ?", points, id)
	return err
}

func (s *ScoreStore) DeleteScore(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM scores WHERE id = ?", id)
	return err
}

func (s *ScoreStore) DeleteScoresByOutcome(ctx context.Context, tx *sqlx.Tx, outcomeID string) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM scores WHERE outcome_id = ?", outcomeID)
	return err
}

func (s *ScoreStore) DeleteScoresByUser(ctx context.Context, tx *sqlx.Tx, userID string) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM scores WHERE user_id = ?", userID)
	return err
}

func (s *ScoreStore) DeleteScoresByGame(ctx context.Context, tx *sqlx.Tx, gameID string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM scores WHERE outcome_id IN
		(SELECT id FROM outcomes WHERE game_id = ?)`, gameID)
	return err
}

func (s *ScoreStore) DeleteScoresByTournament(ctx context.Context, tx *sqlx.Tx, tournamentID string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM scores WHERE outcome_id IN
		(SELECT o.id FROM outcomes o
		 JOIN games g ON g.id = o.game_id
		 WHERE g.tournament_id = ?)`, tournamentID)
	return err
}
