package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vaultofgames/vault-server/internal/domain"
	"github.com/vaultofgames/vault-server/internal/store"
)

// userColumns must match the scan order in scanUser.
const userColumns = `id, username, password_hash, created_at, updated_at`

func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var (
		u         domain.User
		createdAt string
		updatedAt sql.NullString
	)

	if err := scanner.Scan(&u.ID, &u.Username, &u.PasswordHash, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if u.UpdatedAt, err = parseNullableTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &u, nil
}

// CreateUser inserts a new user.
// Returns store.ErrUsernameTaken if the username is in use.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	_, err := s.exec(ctx, s.db, `
		INSERT INTO users (id, username, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		u.ID,
		u.Username,
		u.PasswordHash,
		formatTime(u.CreatedAt),
		nullTimeString(u.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return store.ErrUsernameTaken
	}
	return err
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := s.queryRow(ctx, s.db, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrUserNotFound
	}
	return u, err
}

// GetUserByUsername retrieves a user by exact username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := s.queryRow(ctx, s.db, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrUserNotFound
	}
	return u, err
}

// UpdateUser saves the username, password hash and updated_at.
func (s *Store) UpdateUser(ctx context.Context, u *domain.User) error {
	res, err := s.exec(ctx, s.db, `
		UPDATE users SET username = ?, password_hash = ?, updated_at = ?
		WHERE id = ?`,
		u.Username,
		u.PasswordHash,
		nullTimeString(u.UpdatedAt),
		u.ID,
	)
	if isUniqueViolation(err) {
		return store.ErrUsernameTaken
	}
	if err != nil {
		return err
	}
	return expectOneRow(res, store.ErrUserNotFound)
}

// DeleteUser removes a user. Their games and category links go with them.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	res, err := s.exec(ctx, s.db, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectOneRow(res, store.ErrUserNotFound)
}

// expectOneRow turns "no rows affected" into notFound.
func expectOneRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
