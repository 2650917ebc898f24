package pool

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is the authoritative final score of a game. At most one exists
// per game and it is immutable once recorded; the only way back is
// deleting it, which also removes the scores it produced.
type Outcome struct {
	ID           uuid.UUID `db:"id" json:"id"`
	GameID       uuid.UUID `db:"game_id" json:"gameId"`
	HomeGoals    int       `db:"home_goals" json:"homeGoals"`
	VisitorGoals int       `db:"visitor_goals" json:"visitorGoals"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
