package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Kaabero/Gambler-sub000/internal/pool"
	"github.com/Kaabero/Gambler-sub000/internal/store"
	users "github.com/Kaabero/Gambler-sub000/internal/user"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Authenticator issues and resolves opaque bearer tokens. An unknown
// token and an expired one are distinct failures so clients can tell
// "log in again" apart from "bad request".
type Authenticator struct {
	users         *store.UserStore
	tokens        *store.TokenStore
	clock         clockwork.Clock
	tokenLifetime time.Duration
}

func NewAuthenticator(userStore *store.UserStore, tokenStore *store.TokenStore, clock clockwork.Clock, tokenLifetime time.Duration) *Authenticator {
	return &Authenticator{
		users:         userStore,
		tokens:        tokenStore,
		clock:         clock,
		tokenLifetime: tokenLifetime,
	}
}

func (a *Authenticator) Login(ctx context.Context, username, password string) (*users.AuthToken, *users.User, error) {
	user, err := a.users.GetUserByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, pool.ErrBadCredential
	}
	if err != nil {
		return nil, nil, err
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, nil, pool.ErrBadCredential
	}

	token := &users.AuthToken{
		Token:     uuid.New(),
		UserID:    user.ID,
		ExpiresAt: a.clock.Now().UTC().Add(a.tokenLifetime),
	}
	if err := a.tokens.CreateToken(ctx, token); err != nil {
		return nil, nil, err
	}
	return token, user, nil
}

// Resolve returns the user a token belongs to. A token whose user no
// longer exists resolves to (nil, nil): the credential was valid, there
// is just nobody behind it anymore.
func (a *Authenticator) Resolve(ctx context.Context, token string) (*users.User, error) {
	t, err := a.tokens.GetToken(ctx, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pool.ErrBadCredential
	}
	if err != nil {
		return nil, err
	}
	if a.clock.Now().After(t.ExpiresAt) {
		return nil, pool.ErrExpiredCredential
	}

	user, err := a.users.GetUser(ctx, t.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (a *Authenticator) Logout(ctx context.Context, token string) error {
	return a.tokens.DeleteToken(ctx, token)
}
