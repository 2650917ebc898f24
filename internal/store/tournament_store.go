package store

import (
	"context"

	"github.com/Kaabero/Gambler-sub000/internal/pool"
	"github.com/jmoiron/sqlx"
)

type TournamentStore struct {
	db *sqlx.DB
}

func NewTournamentStore(db *sqlx.DB) *TournamentStore {
	return &TournamentStore{db: db}
}

func (s *TournamentStore) CreateTournament(ctx context.Context, tournament *pool.Tournament) error {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO tournaments (id, name, starts_at, ends_at)
        VALUES (:id, :name, :starts_at, :ends_at)`, tournament)
	return uniqueViolation(err, "tournament name is already taken")
}

func (s *TournamentStore) GetTournament(ctx context.Context, id string) (*pool.Tournament, error) {
	var tournament pool.Tournament
	err := s.db.GetContext(ctx, &tournament, "SELECT * FROM tournaments WHERE id = ?", id)
	return &tournament, err
}

func (s *TournamentStore) GetTournaments(ctx context.Context) ([]pool.Tournament, error) {
	var tournaments []pool.Tournament
	err := s.db.SelectContext(ctx, &tournaments, "SELECT * FROM tournaments ORDER BY starts_at ASC")
	return tournaments, err
}

// GetTournamentByName matches case-insensitively (the name column carries
// a NOCASE collation).
func (s *TournamentStore) GetTournamentByName(ctx context.Context, name string) (*pool.Tournament, error) {
	var tournament pool.Tournament
	err := s.db.GetContext(ctx, &tournament, "SELECT * FROM tournaments WHERE name = ?", name)
	return &tournament, err
}

func (s *TournamentStore) UpdateTournament(ctx context.Context, tournament *pool.Tournament) error {
	_, err := s.db.NamedExecContext(ctx, `UPDATE tournaments SET
		name = :name,
		starts_at = :starts_at,
		ends_at = :ends_at
		WHERE id = :id`, tournament)
	return uniqueViolation(err, "tournament name is already taken")
}

func (s *TournamentStore) DeleteTournament(ctx context.Context, tx *sqlx.Tx, id string) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM tournaments WHERE id = ?", id)
	return err
}
