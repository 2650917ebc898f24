package store

import (
	"context"

	users "github.com/Kaabero/Gambler-sub000/internal/user"
	"github.com/jmoiron/sqlx"
)

type UserStore struct {
	db *sqlx.DB
}

const (
	getUserQuery           = "SELECT * FROM users WHERE id = ?"
	getUserByUsernameQuery = "SELECT * FROM users WHERE username = ?"
	createUserQuery        = `
		INSERT INTO users (id, username, password_hash, admin) VALUES
		(:id, :username, :password_hash, :admin)
	`
	setAdminQuery = "UPDATE users SET admin = ? WHERE id = ?"
)

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) GetUser(ctx context.Context, id interface{}) (*users.User, error) {
	var user users.User
	err := s.db.GetContext(ctx, &user, getUserQuery, id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername matches case-insensitively (the username column
// carries a NOCASE collation).
func (s *UserStore) GetUserByUsername(ctx context.Context, username string) (*users.User, error) {
	var user users.User
	err := s.db.GetContext(ctx, &user, getUserByUsernameQuery, username)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) GetUsers(ctx context.Context) ([]users.User, error) {
	var all []users.User
	err := s.db.SelectContext(ctx, &all, "SELECT * FROM users ORDER BY username ASC")
	return all, err
}

func (s *UserStore) CreateUser(ctx context.Context, user *users.User) error {
	_, err := s.db.NamedExecContext(ctx, createUserQuery, user)
	return uniqueViolation(err, "username is already taken")
}

func (s *UserStore) SetAdmin(ctx context.Context, id interface{}, admin bool) error {
	_, err := s.db.ExecContext(ctx, setAdminQuery, admin, id)
	return err
}

func (s *UserStore) DeleteUser(ctx context.Context, tx *sqlx.Tx, id string) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	return err
}
