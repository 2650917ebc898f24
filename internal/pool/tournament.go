package pool

import (
	"time"

	"github.com/google/uuid"
)

type Tournament struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StartsAt  time.Time `db:"starts_at" json:"startsAt"`
	EndsAt    time.Time `db:"ends_at" json:"endsAt"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Contains reports whether t's window covers the given instant.
// Both bounds are inclusive.
func (t *Tournament) Contains(instant time.Time) bool {
	return !instant.Before(t.StartsAt) && !instant.After(t.EndsAt)
}
