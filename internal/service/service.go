package service

import (
	"context"

	"github.com/Kaabero/Gambler-sub000/internal/middleware"
	"github.com/Kaabero/Gambler-sub000/internal/pool"
	users "github.com/Kaabero/Gambler-sub000/internal/user"
)

func requireUser(ctx context.Context) (*users.User, error) {
	user := middleware.GetAuthenticatedUser(ctx)
	if user == nil {
		return nil, pool.ErrBadCredential
	}
	return user, nil
}

func requireAdmin(ctx context.Context) (*users.User, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if !user.Admin {
		return nil, pool.ErrForbidden
	}
	return user, nil
}
