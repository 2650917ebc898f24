package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Kaabero/Gambler-sub000/internal/auth"
	"github.com/Kaabero/Gambler-sub000/internal/httputil"
	"github.com/Kaabero/Gambler-sub000/internal/store"
	users "github.com/Kaabero/Gambler-sub000/internal/user"
	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
)

// LoadAuthenticatedUser resolves the caller's identity and puts it in the
// request context. A Bearer token in the Authorization header wins; a
// browser session cookie is the fallback. A bad or expired token fails
// the request here, before any handler runs.
func LoadAuthenticatedUser(sessionManager *scs.SessionManager, authenticator *auth.Authenticator, userStore *store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if header := r.Header.Get("Authorization"); header != "" {
				token, ok := strings.CutPrefix(header, "Bearer ")
				if !ok {
					httputil.Unauthorized(w, "malformed authorization header", nil)
					return
				}
				user, err := authenticator.Resolve(ctx, token)
				if err != nil {
					httputil.ServiceError(w, "Failed to resolve token", err)
					return
				}
				if user != nil {
					ctx = context.WithValue(ctx, users.UserKey, user)
				}
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			userIDStr := sessionManager.GetString(ctx, "userID")
			if userIDStr != "" {
				userID, err := uuid.Parse(userIDStr)
				if err != nil {
					sessionManager.Remove(ctx, "userID")
				} else if user, err := userStore.GetUser(ctx, userID); err == nil {
					// A session pointing at a deleted user is treated as no user
					ctx = context.WithValue(ctx, users.UserKey, user)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetAuthenticatedUser(r.Context()) == nil {
			httputil.Unauthorized(w, "authentication required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetAuthenticatedUser(ctx context.Context) *users.User {
	val := ctx.Value(users.UserKey)
	if val == nil {
		return nil
	}
	user, ok := val.(*users.User)
	if !ok {
		return nil
	}
	return user
}
