package service

import (
	"testing"

	"github.com/Kaabero/Gambler-sub000/internal/pool"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func betFor(userID uuid.UUID, home, visitor int) pool.Bet {
	return pool.Bet{
		ID:           uuid.New(),
		UserID:       userID,
		GameID:       uuid.New(),
		HomeGoals:    home,
		VisitorGoals: visitor,
	}
}

func pointsByUser(awards []pool.Score) map[uuid.UUID]int {
	result := make(map[uuid.UUID]int, len(awards))
	for _, award := range awards {
		result[award.UserID] = award.Points
	}
	return result
}

func TestAwardPoints_HomeWin(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	carol := uuid.New()

	outcome := &pool.Outcome{ID: uuid.New(), HomeGoals: 2, VisitorGoals: 1}
	bets := []pool.Bet{
		betFor(alice, 2, 1), // exact
		betFor(bob, 3, 0),   // right winner, wrong score
		betFor(carol, 1, 2), // wrong winner
	}

	awards := AwardPoints(outcome, bets)
	require.Len(t, awards, 2)

	points := pointsByUser(awards)
	assert.Equal(t, PointsExactScore, points[alice])
	assert.Equal(t, PointsCorrectOutcome, points[bob])
	assert.NotContains(t, points, carol, "a wrong bet earns no record, not a zero")
}

func TestAwardPoints_Draw(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	carol := uuid.New()

	outcome := &pool.Outcome{ID: uuid.New(), HomeGoals: 1, VisitorGoals: 1}
	bets := []pool.Bet{
		betFor(alice, 1, 1), // exact draw
		betFor(bob, 0, 0),   // draw, wrong numbers
		betFor(carol, 2, 1), // predicted home win
	}

	points := pointsByUser(AwardPoints(outcome, bets))
	assert.Equal(t, PointsExactScore, points[alice])
	assert.Equal(t, PointsCorrectOutcome, points[bob])
	assert.NotContains(t, points, carol)
}

func TestAwardPoints_VisitorWin(t *testing.T) {
	dave := uuid.New()

	outcome := &pool.Outcome{ID: uuid.New(), HomeGoals: 0, VisitorGoals: 2}
	points := pointsByUser(AwardPoints(outcome, []pool.Bet{betFor(dave, 1, 3)}))

	assert.Equal(t, PointsCorrectOutcome, points[dave])
}

func TestAwardPoints_NoBets(t *testing.T) {
	outcome := &pool.Outcome{ID: uuid.New(), HomeGoals: 2, VisitorGoals: 0}
	assert.Empty(t, AwardPoints(outcome, nil))
}

func TestAwardPoints_OrderIndependent(t *testing.T) {
	outcome := &pool.Outcome{ID: uuid.New(), HomeGoals: 2, VisitorGoals: 1}

	bets := []pool.Bet{
		betFor(uuid.New(), 2, 1),
		betFor(uuid.New(), 1, 0),
		betFor(uuid.New(), 0, 3),
		betFor(uuid.New(), 4, 2),
	}
	reversed := make([]pool.Bet, 0, len(bets))
	for i := len(bets) - 1; i >= 0; i-- {
		reversed = append(reversed, bets[i])
	}

	forward := pointsByUser(AwardPoints(outcome, bets))
	backward := pointsByUser(AwardPoints(outcome, reversed))

	assert.Equal(t, forward, backward)
}

func TestAwardPoints_OneAwardPerUser(t *testing.T) {
	alice := uuid.New()

	outcome := &pool.Outcome{ID: uuid.New(), HomeGoals: 3, VisitorGoals: 1}
	awards := AwardPoints(outcome, []pool.Bet{betFor(alice, 3, 1)})

	require.Len(t, awards, 1)
	assert.Equal(t, PointsExactScore, awards[0].Points, "an exact bet earns 3, never 3 and 1")
}
