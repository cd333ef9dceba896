package domain

import (
	"slices"
	"time"
)

// GameStatus is how far the owner got with a game.
type GameStatus string

// Game statuses, snake_case on the wire.
const (
	GameStatusUntried     GameStatus = "untried"
	GameStatusProgressing GameStatus = "progressing"
	GameStatusEnded       GameStatus = "ended"
	GameStatusCompleted   GameStatus = "completed"
)

// GameStatuses lists every valid status.
var GameStatuses = []GameStatus{
	GameStatusUntried,
	GameStatusProgressing,
	GameStatusEnded,
	GameStatusCompleted,
}

// Valid reports whether s is a known status.
func (s GameStatus) Valid() bool {
	return slices.Contains(GameStatuses, s)
}

// Rating bounds, inclusive.
const (
	MinRating = 0
	MaxRating = 10
)

// Game is one entry in a user's library.
type Game struct {
	ID         string
	UserID     string
	Title      string
	ImageURL   *string
	Status     *GameStatus
	Rating     *int
	Note       *string
	Categories []string // never nil once loaded from the store
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// OwnedBy reports whether userID owns the game.
func (g *Game) OwnedBy(userID string) bool {
	return g.UserID == userID
}

// Touch sets UpdatedAt to now.
func (g *Game) Touch() {
	now := time.Now().UTC()
	g.UpdatedAt = &now
}
