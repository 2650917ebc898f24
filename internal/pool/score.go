package pool

import (
	"time"

	"github.com/google/uuid"
)

// Score is the points awarded to one user for one outcome. Unique per
// (user, outcome); produced by the scoring engine or an admin correction.
type Score struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"userId"`
	OutcomeID uuid.UUID `db:"outcome_id" json:"outcomeId"`
	Points    int       `db:"points" json:"points"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
