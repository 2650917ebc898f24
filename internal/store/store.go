package store

import (
	"errors"

	"github.com/Kaabero/Gambler-sub000/internal/pool"
	"github.com/mattn/go-sqlite3"
)

// uniqueViolation converts a sqlite UNIQUE-constraint failure into a
// ValidationError so racing duplicate inserts surface the same way as the
// service-level checks. Any other error passes through unchanged.
func uniqueViolation(err error, reason string) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return pool.Invalid(reason)
	}
	return err
}
