package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Kaabero/Gambler-sub000/internal/pool"
	"github.com/Kaabero/Gambler-sub000/internal/store"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type BetService struct {
	store    *store.BetStore
	games    *store.GameStore
	outcomes *store.OutcomeStore
	users    *store.UserStore
	clock    clockwork.Clock
}

func NewBetService(betStore *store.BetStore, gameStore *store.GameStore, outcomeStore *store.OutcomeStore, userStore *store.UserStore, clock clockwork.Clock) *BetService {
	return &BetService{
		store:    betStore,
		games:    gameStore,
		outcomes: outcomeStore,
		users:    userStore,
		clock:    clock,
	}
}

func validateGoals(homeGoals, visitorGoals int) error {
	if homeGoals < 0 || visitorGoals < 0 {
		return pool.Invalid("goals cannot be negative")
	}
	return nil
}

// requireOpenGame enforces the temporal gate: bets may only be touched
// while kickoff is in the future and no outcome exists. Nobody bypasses
// it, admins included.
func (s *BetService) requireOpenGame(ctx context.Context, gameID uuid.UUID) (*pool.Game, error) {
	game, err := s.games.GetGame(ctx, gameID.String())
	if err != nil {
		return nil, err
	}

	_, err = s.outcomes.GetOutcomeByGame(ctx, gameID.String())
	hasOutcome := err == nil
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	switch game.StateAt(s.clock.Now(), hasOutcome) {
	case pool.GameScored:
		return nil, pool.Invalid("game already has an outcome")
	case pool.GameAwaitingResult:
		return nil, pool.Invalid("cannot bet on a past game")
	}
	return game, nil
}

// PlaceBet records the caller's prediction for a game. One bet per user
// per game; the unique insert settles concurrent duplicates.
func (s *BetService) PlaceBet(ctx context.Context, gameID uuid.UUID, homeGoals, visitorGoals int) (*pool.Bet, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateGoals(homeGoals, visitorGoals); err != nil {
		return nil, err
	}
	if _, err := s.requireOpenGame(ctx, gameID); err != nil {
		return nil, err
	}

	bet := &pool.Bet{
		ID:           uuid.New(),
		UserID:       user.ID,
		GameID:       gameID,
		HomeGoals:    homeGoals,
		VisitorGoals: visitorGoals,
	}
	if err := s.store.CreateBet(ctx, bet); err != nil {
		return nil, err
	}
	return bet, nil
}

// UpdateBet edits the caller's own bet. Authorship is not overridable
// here, not even for admins.
func (s *BetService) UpdateBet(ctx context.Context, betID uuid.UUID, homeGoals, visitorGoals int) (*pool.Bet, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateGoals(homeGoals, visitorGoals); err != nil {
		return nil, err
	}

	bet, err := s.store.GetBet(ctx, betID.String())
	if err != nil {
		return nil, err
	}
	if bet.UserID != user.ID {
		return nil, pool.ErrForbidden
	}
	if _, err := s.requireOpenGame(ctx, bet.GameID); err != nil {
		return nil, err
	}

	bet.HomeGoals = homeGoals
	bet.VisitorGoals = visitorGoals
	if err := s.store.UpdateBet(ctx, bet); err != nil {
		return nil, err
	}
	return bet, nil
}

// DeleteBet removes a bet. An admin may delete another user's bet, but
// the temporal gate still applies to everyone.
func (s *BetService) DeleteBet(ctx context.Context, betID uuid.UUID) error {
	user, err := requireUser(ctx)
	if err != nil {
		return err
	}

	bet, err := s.store.GetBet(ctx, betID.String())
	if err != nil {
		return err
	}
	if bet.UserID != user.ID && !user.Admin {
		return pool.ErrForbidden
	}
	if _, err := s.requireOpenGame(ctx, bet.GameID); err != nil {
		return err
	}

	return s.store.DeleteBet(ctx, betID.String())
}

func (s *BetService) GetBet(ctx context.Context, id string) (*pool.Bet, error) {
	return s.store.GetBet(ctx, id)
}

func (s *BetService) GetBets(ctx context.Context) ([]pool.Bet, error) {
	return s.store.GetBets(ctx)
}

// GetBetsByUser lists a user's bets with the author attached, matching
// the shape of a game's bet listing.
func (s *BetService) GetBetsByUser(ctx context.Context, userID string) ([]BetWithUser, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	bets, err := s.store.GetBetsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]BetWithUser, 0, len(bets))
	for _, bet := range bets {
		result = append(result, BetWithUser{Bet: bet, User: user})
	}
	return result, nil
}
