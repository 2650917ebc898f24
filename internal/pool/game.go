package pool

import (
	"time"

	"github.com/google/uuid"
)

type GameState string

const (
	// GameOpen: kickoff is in the future and no outcome exists. Bets may
	// be placed, edited and deleted.
	GameOpen GameState = "open"
	// GameAwaitingResult: kickoff has passed but no outcome exists yet.
	// Bets are frozen; an admin may record the outcome.
	GameAwaitingResult GameState = "awaiting_result"
	// GameScored: an outcome exists. Bets and the outcome are immutable.
	GameScored GameState = "scored"
)

type Game struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TournamentID uuid.UUID `db:"tournament_id" json:"tournamentId"`
	HomeTeam     string    `db:"home_team" json:"homeTeam"`
	VisitorTeam  string    `db:"visitor_team" json:"visitorTeam"`
	Kickoff      time.Time `db:"kickoff" json:"kickoff"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// StateAt derives the game's lifecycle state. The Open -> AwaitingResult
// transition is purely a clock effect; AwaitingResult -> Scored happens
// when an outcome is recorded.
func (g *Game) StateAt(now time.Time, hasOutcome bool) GameState {
	if hasOutcome {
		return GameScored
	}
	if now.Before(g.Kickoff) {
		return GameOpen
	}
	return GameAwaitingResult
}
