package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/Kaabero/Gambler-sub000/internal/auth"
	"github.com/Kaabero/Gambler-sub000/internal/httputil"
	"github.com/Kaabero/Gambler-sub000/internal/middleware"
	"github.com/Kaabero/Gambler-sub000/internal/service"
	"github.com/Kaabero/Gambler-sub000/internal/store"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tournamentRequest struct {
	Name     string    `json:"name"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
}

type gameRequest struct {
	TournamentID uuid.UUID `json:"tournamentId"`
	HomeTeam     string    `json:"homeTeam"`
	VisitorTeam  string    `json:"visitorTeam"`
	Kickoff      time.Time `json:"kickoff"`
}

type goalsRequest struct {
	GameID       uuid.UUID `json:"gameId"`
	HomeGoals    int       `json:"homeGoals"`
	VisitorGoals int       `json:"visitorGoals"`
}

type scoreRequest struct {
	UserID    uuid.UUID `json:"userId"`
	OutcomeID uuid.UUID `json:"outcomeId"`
	Points    int       `json:"points"`
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.BadRequest(w, "Invalid ID", err)
		return uuid.Nil, false
	}
	return id, true
}

func newRouter(sessionManager *scs.SessionManager, database *sqlx.DB, clock clockwork.Clock, authenticator *auth.Authenticator) http.Handler {
	userStore := store.NewUserStore(database)
	tokenStore := store.NewTokenStore(database)
	tournamentStore := store.NewTournamentStore(database)
	gameStore := store.NewGameStore(database)
	betStore := store.NewBetStore(database)
	outcomeStore := store.NewOutcomeStore(database)
	scoreStore := store.NewScoreStore(database)

	userService := service.NewUserService(database, userStore, betStore, scoreStore, tokenStore)
	tournamentService := service.NewTournamentService(database, tournamentStore, gameStore, betStore, outcomeStore, scoreStore, clock)
	gameService := service.NewGameService(database, tournamentStore, gameStore, betStore, outcomeStore, scoreStore, userStore, clock)
	betService := service.NewBetService(betStore, gameStore, outcomeStore, userStore, clock)
	outcomeService := service.NewOutcomeService(database, outcomeStore, gameStore, betStore, scoreStore, clock)
	scoreService := service.NewScoreService(scoreStore, outcomeStore, userStore)

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.LoadAuthenticatedUser(sessionManager, authenticator, userStore))

	r.Post("/api/users", func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.BadRequest(w, "Invalid request body", err)
			return
		}
		user, err := userService.Register(r.Context(), req.Username, req.Password)
		if err != nil {
			httputil.ServiceError(w, "Failed to register user", err)
			return
		}
		httputil.JSON(w, http.StatusCreated, user)
	})

	r.Post("/api/login", func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.BadRequest(w, "Invalid request body", err)
			return
		}
		token, user, err := authenticator.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			httputil.ServiceError(w, "Failed to log in", err)
			return
		}

		sessionManager.Put(r.Context(), "userID", user.ID.String())

		httputil.JSON(w, http.StatusOK, map[string]any{
			"token":     token.Token,
			"expiresAt": token.ExpiresAt,
			"user":      user,
		})
	})

	r.Post("/api/logout", func(w http.ResponseWriter, r *http.Request) {
		if header := r.Header.Get("Authorization"); header != "" {
			if token, ok := strings.CutPrefix(header, "Bearer "); ok {
				if err := authenticator.Logout(r.Context(), token); err != nil {
					httputil.InternalServerError(w, "Failed to revoke token", err)
					return
				}
			}
		}
		sessionManager.Destroy(r.Context())
		httputil.JSON(w, http.StatusNoContent, nil)
	})

	// Public reads
	r.Get("/api/tournaments", func(w http.ResponseWriter, r *http.Request) {
		tournaments, err := tournamentService.GetTournaments(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to get tournaments", err)
			return
		}
		httputil.JSON(w, http.StatusOK, tournaments)
	})

	r.Get("/api/tournaments/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		data, err := tournamentService.GetTournamentData(r.Context(), id.String())
		if err != nil {
			httputil.ServiceError(w, "Failed to get tournament", err)
			return
		}
		httputil.JSON(w, http.StatusOK, data)
	})

	r.Get("/api/games", func(w http.ResponseWriter, r *http.Request) {
		games, err := gameService.GetGames(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to get games", err)
			return
		}
		httputil.JSON(w, http.StatusOK, games)
	})

	r.Get("/api/games/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		data, err := gameService.GetGameData(r.Context(), id.String())
		if err != nil {
			httputil.ServiceError(w, "Failed to get game", err)
			return
		}
		httputil.JSON(w, http.StatusOK, data)
	})

	r.Get("/api/bets", func(w http.ResponseWriter, r *http.Request) {
		bets, err := betService.GetBets(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to get bets", err)
			return
		}
		httputil.JSON(w, http.StatusOK, bets)
	})

	r.Get("/api/bets/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		bet, err := betService.GetBet(r.Context(), id.String())
		if err != nil {
			httputil.ServiceError(w, "Failed to get bet", err)
			return
		}
		httputil.JSON(w, http.StatusOK, bet)
	})

	r.Get("/api/outcomes", func(w http.ResponseWriter, r *http.Request) {
		outcomes, err := outcomeService.GetOutcomes(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to get outcomes", err)
			return
		}
		httputil.JSON(w, http.StatusOK, outcomes)
	})

	r.Get("/api/outcomes/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		data, err := outcomeService.GetOutcomeData(r.Context(), id.String())
		if err != nil {
			httputil.ServiceError(w, "Failed to get outcome", err)
			return
		}
		httputil.JSON(w, http.StatusOK, data)
	})

	r.Get("/api/scores", func(w http.ResponseWriter, r *http.Request) {
		scores, err := scoreService.GetScores(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to get scores", err)
			return
		}
		httputil.JSON(w, http.StatusOK, scores)
	})

	r.Get("/api/users", func(w http.ResponseWriter, r *http.Request) {
		all, err := userService.GetUsers(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to get users", err)
			return
		}
		httputil.JSON(w, http.StatusOK, all)
	})

	r.Get("/api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		user, err := userService.GetUser(r.Context(), id)
		if err != nil {
			httputil.ServiceError(w, "Failed to get user", err)
			return
		}
		httputil.JSON(w, http.StatusOK, user)
	})

	r.Get("/api/users/{id}/bets", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		bets, err := betService.GetBetsByUser(r.Context(), id.String())
		if err != nil {
			httputil.ServiceError(w, "Failed to get bets", err)
			return
		}
		httputil.JSON(w, http.StatusOK, bets)
	})

	r.Get("/api/users/{id}/scores", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		scores, err := scoreService.GetScoresByUser(r.Context(), id.String())
		if err != nil {
			httputil.ServiceError(w, "Failed to get scores", err)
			return
		}
		httputil.JSON(w, http.StatusOK, scores)
	})

	// Mutations require an authenticated caller; admin-only rules are
	// enforced by the services so a non-admin gets 403, not 401.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Post("/api/tournaments", func(w http.ResponseWriter, r *http.Request) {
			var req tournamentRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			tournament, err := tournamentService.CreateTournament(r.Context(), req.Name, req.StartsAt, req.EndsAt)
			if err != nil {
				httputil.ServiceError(w, "Failed to create tournament", err)
				return
			}
			httputil.JSON(w, http.StatusCreated, tournament)
		})

		r.Put("/api/tournaments/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseID(w, r)
			if !ok {
				return
			}
			var update service.TournamentUpdate
			if err := httputil.DecodeJSON(r, &update); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			tournament, err := tournamentService.UpdateTournament(r.Context(), id, update)
			if err != nil {
				httputil.ServiceError(w, "Failed to update tournament", err)
				return
			}
			httputil.JSON(w, http.StatusOK, tournament)
		})

		r.Delete("/api/tournaments/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseID(w, r)
			if !ok {
				return
			}
			if err := tournamentService.DeleteTournament(r.Context(), id); err != nil {
				httputil.ServiceError(w, "Failed to delete tournament", err)
				return
			}
			httputil.JSON(w, http.StatusNoContent, nil)
		})

		r.Post("/api/games", func(w http.ResponseWriter, r *http.Request) {
			var req gameRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			game, err := gameService.CreateGame(r.Context(), req.TournamentID, req.HomeTeam, req.VisitorTeam, req.Kickoff)
			if err != nil {
				httputil.ServiceError(w, "Failed to create game", err)
				return
			}
			httputil.JSON(w, http.StatusCreated, game)
		})

		r.Put("/api/games/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseID(w, r)
			if !ok {
				return
			}
			var update service.GameUpdate
			if err := httputil.DecodeJSON(r, &update); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			game, err := gameService.UpdateGame(r.Context(), id, update)
			if err != nil {
				httputil.ServiceError(w, "Failed to update game", err)
				return
			}
			httputil.JSON(w, http.StatusOK, game)
		})

		r.Delete("/api/games/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseID(w, r)
			if !ok {
				return
			}
			if err := gameService.DeleteGame(r.Context(), id); err != nil {
				httputil.ServiceError(w, "Failed to delete game", err)
				return
			}
			httputil.JSON(w, http.StatusNoContent, nil)
		})

		r.Post("/api/bets", func(w http.ResponseWriter, r *http.Request) {
			var req goalsRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			bet, err := betService.PlaceBet(r.Context(), req.GameID, req.HomeGoals, req.VisitorGoals)
			if err != nil {
				httputil.ServiceError(w, "Failed to place bet", err)
				return
			}
			httputil.JSON(w, http.StatusCreated, bet)
		})

		r.Put("/api/bets/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseID(w, r)
			if !ok {
				return
			}
			var req goalsRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			bet, err := betService.UpdateBet(r.Context(), id, req.HomeGoals, req.VisitorGoals)
			if err != nil {
				httputil.ServiceError(w, "Failed to update bet", err)
				return
			}
			httputil.JSON(w, http.StatusOK, bet)
		})

		r.Delete("/api/bets/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseID(w, r)
			if !ok {
				return
			}
			if err := betService.DeleteBet(r.Context(), id); err != nil {
				httputil.ServiceError(w, "Failed to delete bet", err)
				return
			}
			httputil.JSON(w, http.StatusNoContent, nil)
		})

		r.Post("/api/outcomes", func(w http.ResponseWriter, r *http.Request) {
			var req goalsRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			outcome, err := outcomeService.CreateOutcome(r.Context(), req.GameID, req.HomeGoals, req.VisitorGoals)
			if err != nil {
				httputil.ServiceError(w, "Failed to create outcome", err)
				return
			}
			httputil.JSON(w, http.StatusCreated, outcome)
		})

		r.Delete("/api/outcomes/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseID(w, r)
			if !ok {
				return
			}
			if err := outcomeService.DeleteOutcome(r.Context(), id); err != nil {
				httputil.ServiceError(w, "Failed to delete outcome", err)
				return
			}
			httputil.JSON(w, http.StatusNoContent, nil)
		})

		r.Post("/api/scores", func(w http.ResponseWriter, r *http.Request) {
			var req scoreRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			score, err := scoreService.CreateScore(r.Context(), req.UserID, req.OutcomeID, req.Points)
			if err != nil {
				httputil.ServiceError(w, "Failed to create score", err)
				return
			}
			httputil.JSON(w, http.StatusCreated, score)
		})

		r.Put("/api/scores/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseID(w, r)
			if !ok {
				return
			}
			var req scoreRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			score, err := scoreService.UpdateScore(r.Context(), id, req.Points)
			if err != nil {
				httputil.ServiceError(w, "Failed to update score", err)
				return
			}
			httputil.JSON(w, http.StatusOK, score)
		})

		r.Delete("/api/scores/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseID(w, r)
			if !ok {
				return
			}
			if err := scoreService.DeleteScore(r.Context(), id); err != nil {
				httputil.ServiceError(w, "Failed to delete score", err)
				return
			}
			httputil.JSON(w, http.StatusNoContent, nil)
		})

		r.Put("/api/users/{id}/admin", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseID(w, r)
			if !ok {
				return
			}
			var req struct {
				Admin bool `json:"admin"`
			}
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			user, err := userService.SetAdmin(r.Context(), id, req.Admin)
			if err != nil {
				httputil.ServiceError(w, "Failed to update admin flag", err)
				return
			}
			httputil.JSON(w, http.StatusOK, user)
		})

		r.Delete("/api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseID(w, r)
			if !ok {
				return
			}
			if err := userService.DeleteUser(r.Context(), id); err != nil {
				httputil.ServiceError(w, "Failed to delete user", err)
				return
			}
			httputil.JSON(w, http.StatusNoContent, nil)
		})
	})

	return r
}
