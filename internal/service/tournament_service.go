package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Kaabero/Gambler-sub000/internal/pool"
	"github.com/Kaabero/Gambler-sub000/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
)

type TournamentService struct {
	db       *sqlx.DB
	store    *store.TournamentStore
	games    *store.GameStore
	bets     *store.BetStore
	outcomes *store.OutcomeStore
	scores   *store.ScoreStore
	clock    clockwork.Clock
}

func NewTournamentService(db *sqlx.DB, tournamentStore *store.TournamentStore, gameStore *store.GameStore, betStore *store.BetStore, outcomeStore *store.OutcomeStore, scoreStore *store.ScoreStore, clock clockwork.Clock) *TournamentService {
	return &TournamentService{
		db:       db,
		store:    tournamentStore,
		games:    gameStore,
		bets:     betStore,
		outcomes: outcomeStore,
		scores:   scoreStore,
		clock:    clock,
	}
}

type TournamentData struct {
	Tournament *pool.Tournament `json:"tournament"`
	Games      []pool.Game      `json:"games"`
}

func (s *TournamentService) validateWindow(startsAt, endsAt time.Time) error {
	if !startsAt.Before(endsAt) {
		return pool.Invalid("tournament must start before it ends")
	}
	return nil
}

// checkNameAvailable rejects a case-insensitive name collision with any
// tournament other than excludeID.
func (s *TournamentService) checkNameAvailable(ctx context.Context, name string, excludeID uuid.UUID) error {
	existing, err := s.store.GetTournamentByName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != excludeID {
		return pool.Invalid("tournament name is already taken")
	}
	return nil
}

func (s *TournamentService) CreateTournament(ctx context.Context, name string, startsAt, endsAt time.Time) (*pool.Tournament, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pool.Invalid("tournament name is required")
	}
	if err := s.validateWindow(startsAt, endsAt); err != nil {
		return nil, err
	}
	if startsAt.Before(s.clock.Now()) {
		return nil, pool.Invalid("tournament cannot start in the past")
	}
	if err := s.checkNameAvailable(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}

	tournament := &pool.Tournament{
		ID:       uuid.New(),
		Name:     name,
		StartsAt: startsAt.UTC(),
		EndsAt:   endsAt.UTC(),
	}
	if err := s.store.CreateTournament(ctx, tournament); err != nil {
		return nil, err
	}
	return tournament, nil
}

func (s *TournamentService) GetTournamentData(ctx context.Context, id string) (*TournamentData, error) {
	tournament, err := s.store.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}

	games, err := s.games.GetGamesByTournament(ctx, id)
	if err != nil {
		return nil, err
	}

	return &TournamentData{Tournament: tournament, Games: games}, nil
}

func (s *TournamentService) GetTournaments(ctx context.Context) ([]pool.Tournament, error) {
	return s.store.GetTournaments(ctx)
}

type TournamentUpdate struct {
	Name     *string    `json:"name"`
	StartsAt *time.Time `json:"startsAt"`
	EndsAt   *time.Time `json:"endsAt"`
}

func (s *TournamentService) UpdateTournament(ctx context.Context, id uuid.UUID, update TournamentUpdate) (*pool.Tournament, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	tournament, err := s.store.GetTournament(ctx, id.String())
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, pool.Invalid("tournament name is required")
		}
		if err := s.checkNameAvailable(ctx, name, tournament.ID); err != nil {
			return nil, err
		}
		tournament.Name = name
	}
	if update.StartsAt != nil {
		tournament.StartsAt = update.StartsAt.UTC()
	}
	if update.EndsAt != nil {
		tournament.EndsAt = update.EndsAt.UTC()
	}
	if err := s.validateWindow(tournament.StartsAt, tournament.EndsAt); err != nil {
		return nil, err
	}

	if err := s.store.UpdateTournament(ctx, tournament); err != nil {
		return nil, err
	}
	return tournament, nil
}

// DeleteTournament removes the tournament and everything under it: its
// games, their bets and outcomes, and those outcomes' scores. The whole
// cascade is one transaction, so a crash mid-way leaves nothing dangling.
func (s *TournamentService) DeleteTournament(ctx context.Context, id uuid.UUID) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	if _, err := s.store.GetTournament(ctx, id.String()); err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	tournamentID := id.String()
	if err := s.scores.DeleteScoresByTournament(ctx, tx, tournamentID); err != nil {
		return err
	}
	if err := s.outcomes.DeleteOutcomesByTournament(ctx, tx, tournamentID); err != nil {
		return err
	}
	if err := s.bets.DeleteBetsByTournament(ctx, tx, tournamentID); err != nil {
		return err
	}
	if err := s.games.DeleteGamesByTournament(ctx, tx, tournamentID); err != nil {
		return err
	}
	if err := s.store.DeleteTournament(ctx, tx, tournamentID); err != nil {
		return err
	}

	return tx.Commit()
}
