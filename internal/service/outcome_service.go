package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/Kaabero/Gambler-sub000/internal/pool"
	"github.com/Kaabero/Gambler-sub000/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
)

type OutcomeService struct {
	db     *sqlx.DB
	store  *store.OutcomeStore
	games  *store.GameStore
	bets   *store.BetStore
	scores *store.ScoreStore
	clock  clockwork.Clock
}

func NewOutcomeService(db *sqlx.DB, outcomeStore *store.OutcomeStore, gameStore *store.GameStore, betStore *store.BetStore, scoreStore *store.ScoreStore, clock clockwork.Clock) *OutcomeService {
	return &OutcomeService{
		db:     db,
		store:  outcomeStore,
		games:  gameStore,
		bets:   betStore,
		scores: scoreStore,
		clock:  clock,
	}
}

type OutcomeData struct {
	Outcome *pool.Outcome `json:"outcome"`
	Game    *pool.Game    `json:"game"`
	Scores  []pool.Score  `json:"scores"`
}

// CreateOutcome records the final score of a game and runs the scoring
// engine over its bets. Each award is persisted independently: a failed
// insert for one user is logged and does not block the others, and the
// UNIQUE (user, outcome) key keeps a retry from double-awarding anyone.
func (s *OutcomeService) CreateOutcome(ctx context.Context, gameID uuid.UUID, homeGoals, visitorGoals int) (*pool.Outcome, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validateGoals(homeGoals, visitorGoals); err != nil {
		return nil, err
	}

	game, err := s.games.GetGame(ctx, gameID.String())
	if err != nil {
		return nil, err
	}

	if _, err := s.store.GetOutcomeByGame(ctx, gameID.String()); err == nil {
		return nil, pool.Invalid("game already has an outcome")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if s.clock.Now().Before(game.Kickoff) {
		return nil, pool.Invalid("game has not kicked off yet")
	}

	outcome := &pool.Outcome{
		ID:           uuid.New(),
		GameID:       game.ID,
		HomeGoals:    homeGoals,
		VisitorGoals: visitorGoals,
	}
	if err := s.store.CreateOutcome(ctx, outcome); err != nil {
		return nil, err
	}

	bets, err := s.bets.GetBetsByGame(ctx, gameID.String())
	if err != nil {
		return nil, err
	}
	for _, award := range AwardPoints(outcome, bets) {
		if err := s.scores.CreateScore(ctx, &award); err != nil {
			slog.Warn("failed to persist score award",
				"user", award.UserID, "outcome", award.OutcomeID, "error", err)
		}
	}

	return outcome, nil
}

// GetOutcomeData bundles the outcome with its game and the scores it
// produced.
func (s *OutcomeService) GetOutcomeData(ctx context.Context, id string) (*OutcomeData, error) {
	outcome, err := s.store.GetOutcome(ctx, id)
	if err != nil {
		return nil, err
	}

	game, err := s.games.GetGame(ctx, outcome.GameID.String())
	if err != nil {
		return nil, err
	}

	scores, err := s.scores.GetScoresByOutcome(ctx, id)
	if err != nil {
		return nil, err
	}

	return &OutcomeData{Outcome: outcome, Game: game, Scores: scores}, nil
}

func (s *OutcomeService) GetOutcomes(ctx context.Context) ([]pool.Outcome, error) {
	return s.store.GetOutcomes(ctx)
}

// DeleteOutcome removes the outcome and its scores in one transaction,
// returning the game to the awaiting-result state.
func (s *OutcomeService) DeleteOutcome(ctx context.Context, id uuid.UUID) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	if _, err := s.store.GetOutcome(ctx, id.String()); err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.scores.DeleteScoresByOutcome(ctx, tx, id.String()); err != nil {
		return err
	}
	if err := s.store.DeleteOutcome(ctx, tx, id.String()); err != nil {
		return err
	}

	return tx.Commit()
}
