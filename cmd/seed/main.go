// Package main provides a tool to seed the database with demo users and games.
//
// Usage:
//
//	DATABASE_URL=~/VaultOfGames/vault.db go run ./cmd/seed
//	DATABASE_DRIVER=postgres DATABASE_URL=postgres://... go run ./cmd/seed --games 25
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/vaultofgames/vault-server/internal/auth"
	"github.com/vaultofgames/vault-server/internal/domain"
	"github.com/vaultofgames/vault-server/internal/id"
	"github.com/vaultofgames/vault-server/internal/service"
	"github.com/vaultofgames/vault-server/internal/store"
	"github.com/vaultofgames/vault-server/internal/store/sqlstore"
)

var gamesPerUser = flag.Int("games", 10, "Games to create for each demo user")

var (
	demoUsers = []string{"alice", "bob", "carol"}

	titles = []string{
		"Hades", "Celeste", "Hollow Knight", "Disco Elysium", "Outer Wilds",
		"Stardew Valley", "Slay the Spire", "Into the Breach", "Return of the Obra Dinn",
		"Baldur's Gate 3", "Factorio", "Tunic", "Inscryption", "Portal 2",
	}

	categories = []string{
		"action", "roguelike", "platformer", "rpg", "puzzle", "strategy",
		"metroidvania", "simulation", "deckbuilder", "mystery",
	}
)

func main() {
	flag.Parse()

	driver := os.Getenv("DATABASE_DRIVER")
	if driver == "" {
		driver = string(sqlstore.DialectSQLite)
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = filepath.Join(os.ExpandEnv("$HOME"), "VaultOfGames", "vault.db")
	}

	dialect, err := sqlstore.ParseDialect(driver)
	if err != nil {
		log.Fatalf("Invalid DATABASE_DRIVER: %v", err)
	}

	ctx := context.Background()

	s, err := sqlstore.Open(ctx, dialect, dbURL, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	games := service.NewGameService(s, nil, nil)

	totalGames := 0
	for _, username := range demoUsers {
		user, err := ensureUser(ctx, s, username)
		if err != nil {
			log.Fatalf("Failed to create user %s: %v", username, err)
		}

		for range *gamesPerUser {
			if _, err := games.CreateGame(ctx, user.ID, randomGame()); err != nil {
				log.Fatalf("Failed to create game for %s: %v", username, err)
			}
			totalGames++
		}
		fmt.Printf("  %s: %d games (password %q)\n", username, *gamesPerUser, demoPassword(username))
	}

	vocabulary, err := s.ListCategories(ctx)
	if err != nil {
		log.Fatalf("Failed to list categories: %v", err)
	}

	fmt.Printf("\nCreated %d games across %d users, %d categories in use\n", totalGames, len(demoUsers), len(vocabulary))
}

func demoPassword(username string) string {
	return username + "-password"
}

// ensureUser returns the named user, creating it when missing.
func ensureUser(ctx context.Context, s *sqlstore.Store, username string) (*domain.User, error) {
	existing, err := s.GetUserByUsername(ctx, username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(demoPassword(username))
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           id.MustGenerate(id.PrefixUser),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func randomGame() service.CreateGameRequest {
	status := domain.GameStatuses[rand.IntN(len(domain.GameStatuses))]
	req := service.CreateGameRequest{
		Title:  titles[rand.IntN(len(titles))],
		Status: &status,
	}

	if status == domain.GameStatusCompleted || status == domain.GameStatusEnded {
		rating := rand.IntN(11)
		req.Rating = &rating
	}

	for range rand.IntN(4) {
		req.Categories = append(req.Categories, categories[rand.IntN(len(categories))])
	}
	return req
}
