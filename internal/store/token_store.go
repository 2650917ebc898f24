package store

import (
	"context"

	users "github.com/Kaabero/Gambler-sub000/internal/user"
	"github.com/jmoiron/sqlx"
)

type TokenStore struct {
	db *sqlx.DB
}

func NewTokenStore(db *sqlx.DB) *TokenStore {
	return &TokenStore{db: db}
}

func (s *TokenStore) CreateToken(ctx context.Context, token *users.AuthToken) error {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO auth_tokens (token, user_id, expires_at)
        VALUES (:token, :user_id, :expires_at)`, token)
	return err
}

func (s *TokenStore) GetToken(ctx context.Context, token string) (*users.AuthToken, error) {
	var t users.AuthToken
	err := s.db.GetContext(ctx, &t, "SELECT * FROM auth_tokens WHERE token = ?", token)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TokenStore) DeleteToken(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM auth_tokens WHERE token = ?", token)
	return err
}

func (s *TokenStore) DeleteTokensByUser(ctx context.Context, tx *sqlx.Tx, userID string) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM auth_tokens WHERE user_id = ?", userID)
	return err
}
