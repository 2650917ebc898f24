package service

import (
	"github.com/Kaabero/Gambler-sub000/internal/pool"
	"github.com/google/uuid"
)

// Points awarded per bet class.
const (
	PointsExactScore     = 3
	PointsCorrectOutcome = 1
)

func goalSign(home, visitor int) int {
	switch {
	case home > visitor:
		return 1
	case home < visitor:
		return -1
	default:
		return 0
	}
}

// AwardPoints computes the scores earned by the bets on a freshly
// recorded outcome. An exact score earns 3 points; a bet that merely
// picks the right winner (or a draw against a draw) earns 1; a wrong bet
// earns no record at all rather than a zero. Bets are unique per
// (user, game), so each user appears at most once in the result, and the
// result does not depend on the order of the input.
func AwardPoints(outcome *pool.Outcome, bets []pool.Bet) []pool.Score {
	var awards []pool.Score
	for _, bet := range bets {
		var points int
		switch {
		case bet.HomeGoals == outcome.HomeGoals && bet.VisitorGoals == outcome.VisitorGoals:
			points = PointsExactScore
		case goalSign(bet.HomeGoals, bet.VisitorGoals) == goalSign(outcome.HomeGoals, outcome.VisitorGoals):
			points = PointsCorrectOutcome
		default:
			continue
		}
		awards = append(awards, pool.Score{
			ID:        uuid.New(),
			UserID:    bet.UserID,
			OutcomeID: outcome.ID,
			Points:    points,
		})
	}
	return awards
}
