package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vaultofgames/vault-server/internal/dbx"
	"github.com/vaultofgames/vault-server/internal/domain"
	"github.com/vaultofgames/vault-server/internal/id"
)

// ListCategories returns every category ordered by name.
func (s *Store) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	rows, err := s.query(ctx, s.db, `SELECT id, name FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

// linkCategories makes gameID linked to every name in names, creating
// categories that do not exist yet. It must run inside the transaction that
// wrote the game row.
//
// Two writers racing on the same new name both end up with the single row:
// the insert is an upsert that returns whichever id won.
func (s *Store) linkCategories(ctx context.Context, tx dbx.DBTX, gameID string, names []string) error {
	for _, name := range domain.NormalizeCategoryNames(names) {
		categoryID, err := s.ensureCategory(ctx, tx, name)
		if err != nil {
			return fmt.Errorf("category %q: %w", name, err)
		}

		if _, err := s.exec(ctx, tx, `
			INSERT INTO games_categories (game_id, category_id)
			VALUES (?, ?)
			ON CONFLICT DO NOTHING`,
			gameID, categoryID,
		); err != nil {
			return fmt.Errorf("link category %q: %w", name, err)
		}
	}
	return nil
}

// unlinkCategories removes every link of gameID. Categories themselves stay.
func (s *Store) unlinkCategories(ctx context.Context, tx dbx.DBTX, gameID string) error {
	_, err := s.exec(ctx, tx, `DELETE FROM games_categories WHERE game_id = ?`, gameID)
	return err
}

// ensureCategory returns the id of the category called name, inserting it
// if needed.
func (s *Store) ensureCategory(ctx context.Context, tx dbx.DBTX, name string) (string, error) {
	var categoryID string

	err := s.queryRow(ctx, tx, `SELECT id FROM categories WHERE name = ?`, name).Scan(&categoryID)
	if err == nil {
		return categoryID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}

	newID, err := id.Generate(id.PrefixCategory)
	if err != nil {
		return "", err
	}

	// The no-op update lets RETURNING yield the existing id on conflict.
	err = s.queryRow(ctx, tx, `
		INSERT INTO categories (id, name) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET name = excluded.name
		RETURNING id`,
		newID, name,
	).Scan(&categoryID)
	if err != nil {
		return "", err
	}

	if categoryID == newID {
		s.logger.Debug("category created", "category_id", categoryID, "name", name)
	}
	return categoryID, nil
}

// categoryNames returns the category names linked to gameID, sorted.
// The result is never nil.
func (s *Store) categoryNames(ctx context.Context, q dbx.DBTX, gameID string) ([]string, error) {
	rows, err := s.query(ctx, q, `
		SELECT c.name
		FROM games_categories gc
		JOIN categories c ON c.id = gc.category_id
		WHERE gc.game_id = ?
		ORDER BY c.name ASC`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// categoryNamesByOwner returns the sorted category names of every game owned
// by userID, keyed by game id.
func (s *Store) categoryNamesByOwner(ctx context.Context, q dbx.DBTX, userID string) (map[string][]string, error) {
	rows, err := s.query(ctx, q, `
		SELECT gc.game_id, c.name
		FROM games_categories gc
		JOIN categories c ON c.id = gc.category_id
		JOIN games g ON g.id = gc.game_id
		WHERE g.user_id = ?
		ORDER BY gc.game_id, c.name ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byGame := make(map[string][]string)
	for rows.Next() {
		var gameID, name string
		if err := rows.Scan(&gameID, &name); err != nil {
			return nil, err
		}
		byGame[gameID] = append(byGame[gameID], name)
	}
	return byGame, rows.Err()
}
