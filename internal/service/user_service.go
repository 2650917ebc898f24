package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/Kaabero/Gambler-sub000/internal/auth"
	"github.com/Kaabero/Gambler-sub000/internal/pool"
	"github.com/Kaabero/Gambler-sub000/internal/store"
	users "github.com/Kaabero/Gambler-sub000/internal/user"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	minUsernameLength = 3
	minPasswordLength = 5
)

type UserService struct {
	db     *sqlx.DB
	store  *store.UserStore
	bets   *store.BetStore
	scores *store.ScoreStore
	tokens *store.TokenStore
}

func NewUserService(db *sqlx.DB, userStore *store.UserStore, betStore *store.BetStore, scoreStore *store.ScoreStore, tokenStore *store.TokenStore) *UserService {
	return &UserService{
		db:     db,
		store:  userStore,
		bets:   betStore,
		scores: scoreStore,
		tokens: tokenStore,
	}
}

// Register creates a regular account. Admin rights are only ever granted
// by an existing admin afterwards.
func (s *UserService) Register(ctx context.Context, username, password string) (*users.User, error) {
	username = strings.TrimSpace(username)
	if utf8.RuneCountInString(username) < minUsernameLength {
		return nil, pool.Invalid("username must be at least 3 characters")
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, pool.Invalid("password must be at least 5 characters")
	}

	_, err := s.store.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, pool.Invalid("username is already taken")
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &users.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		Admin:        false,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*users.User, error) {
	return s.store.GetUser(ctx, id)
}

func (s *UserService) GetUsers(ctx context.Context) ([]users.User, error) {
	return s.store.GetUsers(ctx)
}

func (s *UserService) SetAdmin(ctx context.Context, id uuid.UUID, admin bool) (*users.User, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.store.SetAdmin(ctx, id, admin); err != nil {
		return nil, err
	}
	user.Admin = admin
	return user, nil
}

// DeleteUser removes the account along with its bets, scores and live
// tokens in one transaction.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	if _, err := s.store.GetUser(ctx, id); err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	userID := id.String()
	if err := s.scores.DeleteScoresByUser(ctx, tx, userID); err != nil {
		return err
	}
	if err := s.bets.DeleteBetsByUser(ctx, tx, userID); err != nil {
		return err
	}
	if err := s.tokens.DeleteTokensByUser(ctx, tx, userID); err != nil {
		return err
	}
	if err := s.store.DeleteUser(ctx, tx, userID); err != nil {
		return err
	}

	return tx.Commit()
}
