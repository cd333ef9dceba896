// Package store defines the persistence interface for the Vault server.
package store

import (
	"context"

	"github.com/vaultofgames/vault-server/internal/domain"
)

// Store defines every persistence operation the services need.
type Store interface {
	Close() error
	Ping(ctx context.Context) error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, id string) error

	// Games. Category names on create and update are reconciled against the
	// shared category table in the same transaction as the game row.
	CreateGame(ctx context.Context, game *domain.Game) error
	GetGame(ctx context.Context, id string) (*domain.Game, error)
	ListGames(ctx context.Context, userID string) ([]*domain.Game, error)
	// UpdateGame rewrites the game's fields. A nil categories pointer leaves
	// the links untouched; a non-nil one replaces them, even when empty.
	UpdateGame(ctx context.Context, game *domain.Game, categories *[]string) error
	DeleteGame(ctx context.Context, id, userID string) error

	// Categories
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}
