package users

import (
	"time"

	"github.com/google/uuid"
)

// AuthToken is an opaque bearer credential issued at login. It resolves
// back to a user until it expires or is revoked.
type AuthToken struct {
	Token     uuid.UUID `db:"token" json:"token"`
	UserID    uuid.UUID `db:"user_id" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}
