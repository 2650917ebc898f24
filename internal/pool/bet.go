package pool

import (
	"time"

	"github.com/google/uuid"
)

type Bet struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"userId"`
	GameID       uuid.UUID `db:"game_id" json:"gameId"`
	HomeGoals    int       `db:"home_goals" json:"homeGoals"`
	VisitorGoals int       `db:"visitor_goals" json:"visitorGoals"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
