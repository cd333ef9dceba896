package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vaultofgames/vault-server/internal/dbx"
	"github.com/vaultofgames/vault-server/internal/domain"
	"github.com/vaultofgames/vault-server/internal/store"
)

// gameColumns must match the scan order in scanGame.
const gameColumns = `id, user_id, title, image_url, status, rating, note, created_at, updated_at`

// scanGame scans a game row. Categories are left nil for the caller to fill.
func scanGame(scanner interface{ Scan(dest ...any) error }) (*domain.Game, error) {
	var (
		g         domain.Game
		imageURL  sql.NullString
		status    sql.NullString
		rating    sql.NullInt64
		note      sql.NullString
		createdAt string
		updatedAt sql.NullString
	)

	err := scanner.Scan(
		&g.ID,
		&g.UserID,
		&g.Title,
		&imageURL,
		&status,
		&rating,
		&note,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	g.ImageURL = stringPtr(imageURL)
	g.Note = stringPtr(note)
	if status.Valid {
		st := domain.GameStatus(status.String)
		g.Status = &st
	}
	if rating.Valid {
		r := int(rating.Int64)
		g.Rating = &r
	}

	if g.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if g.UpdatedAt, err = parseNullableTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &g, nil
}

func nullableStatus(s *domain.GameStatus) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*s), Valid: true}
}

// CreateGame inserts the game and links its categories in one transaction.
// On success game.Categories holds the stored, sorted names.
func (s *Store) CreateGame(ctx context.Context, g *domain.Game) error {
	return s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := s.exec(ctx, tx, `
			INSERT INTO games (id, user_id, title, image_url, status, rating, note, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			g.ID,
			g.UserID,
			g.Title,
			nullableString(g.ImageURL),
			nullableStatus(g.Status),
			nullableInt(g.Rating),
			nullableString(g.Note),
			formatTime(g.CreatedAt),
			nullTimeString(g.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("insert game: %w", err)
		}

		if err := s.linkCategories(ctx, tx, g.ID, g.Categories); err != nil {
			return err
		}

		g.Categories, err = s.categoryNames(ctx, tx, g.ID)
		return err
	})
}

// GetGame retrieves a game with its categories.
// Ownership is not checked here.
func (s *Store) GetGame(ctx context.Context, id string) (*domain.Game, error) {
	var g *domain.Game
	err := s.withSnapshot(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		row := s.queryRow(ctx, tx, `SELECT `+gameColumns+` FROM games WHERE id = ?`, id)
		var err error
		g, err = scanGame(row)
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrGameNotFound
		}
		if err != nil {
			return err
		}

		g.Categories, err = s.categoryNames(ctx, tx, g.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// ListGames returns the user's games, newest first. The game rows and their
// categories are read from the same snapshot.
func (s *Store) ListGames(ctx context.Context, userID string) ([]*domain.Game, error) {
	var games []*domain.Game
	err := s.withSnapshot(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		if games, err = s.gamesByOwner(ctx, tx, userID); err != nil {
			return err
		}

		byGame, err := s.categoryNamesByOwner(ctx, tx, userID)
		if err != nil {
			return err
		}
		for _, g := range games {
			g.Categories = byGame[g.ID]
			if g.Categories == nil {
				g.Categories = []string{}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return games, nil
}

// gamesByOwner reads the game rows only. Rows are closed before returning so
// the caller can issue the next query on the same transaction.
func (s *Store) gamesByOwner(ctx context.Context, q dbx.DBTX, userID string) ([]*domain.Game, error) {
	rows, err := s.query(ctx, q, `
		SELECT `+gameColumns+` FROM games
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []*domain.Game{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// UpdateGame rewrites the game row, scoped to its owner, and replaces its
// category links when categories is non-nil. Everything happens in one
// transaction.
func (s *Store) UpdateGame(ctx context.Context, g *domain.Game, categories *[]string) error {
	return s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := s.exec(ctx, tx, `
			UPDATE games
			SET title = ?, image_url = ?, status = ?, rating = ?, note = ?, updated_at = ?
			WHERE id = ? AND user_id = ?`,
			g.Title,
			nullableString(g.ImageURL),
			nullableStatus(g.Status),
			nullableInt(g.Rating),
			nullableString(g.Note),
			nullTimeString(g.UpdatedAt),
			g.ID,
			g.UserID,
		)
		if err != nil {
			return fmt.Errorf("update game: %w", err)
		}
		if err := expectOneRow(res, store.ErrGameNotFound); err != nil {
			return err
		}

		if categories != nil {
			if err := s.unlinkCategories(ctx, tx, g.ID); err != nil {
				return fmt.Errorf("unlink categories: %w", err)
			}
			if err := s.linkCategories(ctx, tx, g.ID, *categories); err != nil {
				return err
			}
		}

		g.Categories, err = s.categoryNames(ctx, tx, g.ID)
		return err
	})
}

// DeleteGame removes a game owned by userID. Links cascade.
func (s *Store) DeleteGame(ctx context.Context, id, userID string) error {
	res, err := s.exec(ctx, s.db, `DELETE FROM games WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return expectOneRow(res, store.ErrGameNotFound)
}
