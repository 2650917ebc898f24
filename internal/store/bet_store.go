package store

import (
	"context"

	"github.com/Kaabero/Gambler-sub000/internal/pool"
	"github.com/jmoiron/sqlx"
)

type BetStore struct {
	db *sqlx.DB
}

func NewBetStore(db *sqlx.DB) *BetStore {
	return &BetStore{db: db}
}

// CreateBet inserts the bet, relying on the UNIQUE (user_id, game_id)
// constraint to reject a concurrent duplicate.
func (s *BetStore) CreateBet(ctx context.Context, bet *pool.Bet) error {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO bets (id, user_id, game_id, home_goals, visitor_goals)
        VALUES (:id, :user_id, :game_id, :home_goals, :visitor_goals)`, bet)
	return uniqueViolation(err, "a bet for this game already exists")
}

func (s *BetStore) GetBet(ctx context.Context, id string) (*pool.Bet, error) {
	var bet pool.Bet
	err := s.db.GetContext(ctx, &bet, "SELECT * FROM bets WHERE id = ?", id)
	return &bet, err
}

func (s *BetStore) GetBets(ctx context.Context) ([]pool.Bet, error) {
	var bets []pool.Bet
	err := s.db.SelectContext(ctx, &bets, "SELECT * FROM bets ORDER BY created_at ASC")
	return bets, err
}

func (s *BetStore) GetBetsByGame(ctx context.Context, gameID string) ([]pool.Bet, error) {
	var bets []pool.Bet
	err := s.db.SelectContext(ctx, &bets, "SELECT * FROM bets WHERE game_id = ? ORDER BY created_at ASC", gameID)
	return bets, err
}

func (s *BetStore) GetBetsByUser(ctx context.Context, userID string) ([]pool.Bet, error) {
	var bets []pool.Bet
	err := s.db.SelectContext(ctx, &bets, "SELECT * FROM bets WHERE user_id = ? ORDER BY created_at ASC", userID)
	return bets, err
}

func (s *BetStore) UpdateBet(ctx context.Context, bet *pool.Bet) error {
	_, err := s.db.NamedExecContext(ctx, `UPDATE bets SET
		home_goals = :home_goals,
		visitor_goals = :visitor_goals
		WHERE id = :id`, bet)
	return err
}

func (s *BetStore) DeleteBet(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM bets WHERE id = ?", id)
	return err
}

func (s *BetStore) DeleteBetsByGame(ctx context.Context, tx *sqlx.Tx, gameID string) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM bets WHERE game_id = ?", gameID)
	return err
}

func (s *BetStore) DeleteBetsByUser(ctx context.Context, tx *sqlx.Tx, userID string) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM bets WHERE user_id = ?", userID)
	return err
}

func (s *BetStore) DeleteBetsByTournament(ctx context.Context, tx *sqlx.Tx, tournamentID string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM bets WHERE game_id IN
		(SELECT id FROM games WHERE tournament_id = ?)`, tournamentID)
	return err
}
