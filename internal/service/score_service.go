package service

import (
	"context"

	"github.com/Kaabero/Gambler-sub000/internal/pool"
	"github.com/Kaabero/Gambler-sub000/internal/store"
	"github.com/google/uuid"
)

// ScoreService handles admin corrections. Regular awards come out of the
// scoring engine at outcome creation, never through here.
type ScoreService struct {
	store    *store.ScoreStore
	outcomes *store.OutcomeStore
	users    *store.UserStore
}

func NewScoreService(scoreStore *store.ScoreStore, outcomeStore *store.OutcomeStore, userStore *store.UserStore) *ScoreService {
	return &ScoreService{
		store:    scoreStore,
		outcomes: outcomeStore,
		users:    userStore,
	}
}

func validatePoints(points int) error {
	if points < 0 {
		return pool.Invalid("points cannot be negative")
	}
	return nil
}

func (s *ScoreService) CreateScore(ctx context.Context, userID, outcomeID uuid.UUID, points int) (*pool.Score, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validatePoints(points); err != nil {
		return nil, err
	}
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.outcomes.GetOutcome(ctx, outcomeID.String()); err != nil {
		return nil, err
	}

	score := &pool.Score{
		ID:        uuid.New(),
		UserID:    userID,
		OutcomeID: outcomeID,
		Points:    points,
	}
	if err := s.store.CreateScore(ctx, score); err != nil {
		return nil, err
	}
	return score, nil
}

func (s *ScoreService) UpdateScore(ctx context.Context, id uuid.UUID, points int) (*pool.Score, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validatePoints(points); err != nil {
		return nil, err
	}

	score, err := s.store.GetScore(ctx, id.String())
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateScorePoints(ctx, id.String(), points); err != nil {
		return nil, err
	}
	score.Points = points
	return score, nil
}

func (s *ScoreService) DeleteScore(ctx context.Context, id uuid.UUID) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	if _, err := s.store.GetScore(ctx, id.String()); err != nil {
		return err
	}
	return s.store.DeleteScore(ctx, id.String())
}

func (s *ScoreService) GetScores(ctx context.Context) ([]pool.Score, error) {
	return s.store.GetScores(ctx)
}

func (s *ScoreService) GetScoresByUser(ctx context.Context, userID string) ([]pool.Score, error) {
	return s.store.GetScoresByUser(ctx, userID)
}
