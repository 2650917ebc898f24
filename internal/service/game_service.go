package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Kaabero/Gambler-sub000/internal/pool"
	"github.com/Kaabero/Gambler-sub000/internal/store"
	users "github.com/Kaabero/Gambler-sub000/internal/user"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
)

type GameService struct {
	db          *sqlx.DB
	tournaments *store.TournamentStore
	store       *store.GameStore
	bets        *store.BetStore
	outcomes    *store.OutcomeStore
	scores      *store.ScoreStore
	users       *store.UserStore
	clock       clockwork.Clock
}

func NewGameService(db *sqlx.DB, tournamentStore *store.TournamentStore, gameStore *store.GameStore, betStore *store.BetStore, outcomeStore *store.OutcomeStore, scoreStore *store.ScoreStore, userStore *store.UserStore, clock clockwork.Clock) *GameService {
	return &GameService{
		db:          db,
		tournaments: tournamentStore,
		store:       gameStore,
		bets:        betStore,
		outcomes:    outcomeStore,
		scores:      scoreStore,
		users:       userStore,
		clock:       clock,
	}
}

// BetWithUser is a bet together with its author, password hash stripped
// by the user's own serialization.
type BetWithUser struct {
	pool.Bet
	User *users.User `json:"user,omitempty"`
}

type GameData struct {
	Game       *pool.Game       `json:"game"`
	Tournament *pool.Tournament `json:"tournament"`
	Outcome    *pool.Outcome    `json:"outcome,omitempty"`
	Bets       []BetWithUser    `json:"bets"`
	State      pool.GameState   `json:"state"`
}

func validateTeams(homeTeam, visitorTeam string) error {
	if strings.TrimSpace(homeTeam) == "" || strings.TrimSpace(visitorTeam) == "" {
		return pool.Invalid("both team names are required")
	}
	if strings.EqualFold(strings.TrimSpace(homeTeam), strings.TrimSpace(visitorTeam)) {
		return pool.Invalid("home and visitor teams must differ")
	}
	return nil
}

func (s *GameService) checkNoDuplicate(ctx context.Context, game *pool.Game) error {
	count, err := s.store.CountDuplicateGames(ctx, game.TournamentID.String(), game.HomeTeam, game.VisitorTeam, game.Kickoff, game.ID.String())
	if err != nil {
		return err
	}
	if count > 0 {
		return pool.Invalid("an identical game without an outcome already exists")
	}
	return nil
}

func (s *GameService) CreateGame(ctx context.Context, tournamentID uuid.UUID, homeTeam, visitorTeam string, kickoff time.Time) (*pool.Game, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validateTeams(homeTeam, visitorTeam); err != nil {
		return nil, err
	}

	tournament, err := s.tournaments.GetTournament(ctx, tournamentID.String())
	if err != nil {
		return nil, err
	}
	if !tournament.Contains(kickoff) {
		return nil, pool.Invalid("kickoff must fall within the tournament window")
	}

	game := &pool.Game{
		ID:           uuid.New(),
		TournamentID: tournament.ID,
		HomeTeam:     strings.TrimSpace(homeTeam),
		VisitorTeam:  strings.TrimSpace(visitorTeam),
		Kickoff:      kickoff.UTC(),
	}
	if err := s.checkNoDuplicate(ctx, game); err != nil {
		return nil, err
	}

	if err := s.store.CreateGame(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// GetGameData bundles the game with its tournament, its outcome if one
// exists, and all its bets with their authors attached.
func (s *GameService) GetGameData(ctx context.Context, id string) (*GameData, error) {
	game, err := s.store.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	tournament, err := s.tournaments.GetTournament(ctx, game.TournamentID.String())
	if err != nil {
		return nil, err
	}

	outcome, err := s.outcomes.GetOutcomeByGame(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		outcome = nil
	} else if err != nil {
		return nil, err
	}

	bets, err := s.bets.GetBetsByGame(ctx, id)
	if err != nil {
		return nil, err
	}

	betsWithUsers := make([]BetWithUser, 0, len(bets))
	for _, bet := range bets {
		entry := BetWithUser{Bet: bet}
		if user, err := s.users.GetUser(ctx, bet.UserID); err == nil {
			entry.User = user
		}
		betsWithUsers = append(betsWithUsers, entry)
	}

	return &GameData{
		Game:       game,
		Tournament: tournament,
		Outcome:    outcome,
		Bets:       betsWithUsers,
		State:      game.StateAt(s.clock.Now(), outcome != nil),
	}, nil
}

func (s *GameService) GetGames(ctx context.Context) ([]pool.Game, error) {
	return s.store.GetGames(ctx)
}

type GameUpdate struct {
	HomeTeam    *string    `json:"homeTeam"`
	VisitorTeam *string    `json:"visitorTeam"`
	Kickoff     *time.Time `json:"kickoff"`
}

// UpdateGame edits the fixture. Once the game has an outcome it is
// frozen; there is no editing a result's game out from under its scores.
func (s *GameService) UpdateGame(ctx context.Context, id uuid.UUID, update GameUpdate) (*pool.Game, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	game, err := s.store.GetGame(ctx, id.String())
	if err != nil {
		return nil, err
	}

	if _, err := s.outcomes.GetOutcomeByGame(ctx, id.String()); err == nil {
		return nil, pool.Invalid("game already has an outcome")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if update.HomeTeam != nil {
		game.HomeTeam = strings.TrimSpace(*update.HomeTeam)
	}
	if update.VisitorTeam != nil {
		game.VisitorTeam = strings.TrimSpace(*update.VisitorTeam)
	}
	if update.Kickoff != nil {
		game.Kickoff = update.Kickoff.UTC()
	}

	if err := validateTeams(game.HomeTeam, game.VisitorTeam); err != nil {
		return nil, err
	}
	tournament, err := s.tournaments.GetTournament(ctx, game.TournamentID.String())
	if err != nil {
		return nil, err
	}
	if !tournament.Contains(game.Kickoff) {
		return nil, pool.Invalid("kickoff must fall within the tournament window")
	}
	if err := s.checkNoDuplicate(ctx, game); err != nil {
		return nil, err
	}

	if err := s.store.UpdateGame(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// DeleteGame removes the game, its bets, its outcome and that outcome's
// scores in one transaction.
func (s *GameService) DeleteGame(ctx context.Context, id uuid.UUID) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	if _, err := s.store.GetGame(ctx, id.String()); err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	gameID := id.String()
	if err := s.scores.DeleteScoresByGame(ctx, tx, gameID); err != nil {
		return err
	}
	if err := s.outcomes.DeleteOutcomesByGame(ctx, tx, gameID); err != nil {
		return err
	}
	if err := s.bets.DeleteBetsByGame(ctx, tx, gameID); err != nil {
		return err
	}
	if err := s.store.DeleteGame(ctx, tx, gameID); err != nil {
		return err
	}

	return tx.Commit()
}
