package service

import (
	"context"
	"log/slog"

	"github.com/vaultofgames/vault-server/internal/access"
	"github.com/vaultofgames/vault-server/internal/auth"
	"github.com/vaultofgames/vault-server/internal/domain"
	domainerrors "github.com/vaultofgames/vault-server/internal/errors"
	"github.com/vaultofgames/vault-server/internal/store"
)

// UserService manages a user's own account.
type UserService struct {
	store  store.Store
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store store.Store, logger *slog.Logger) *UserService {
	return &UserService{store: store, logger: orDiscard(logger)}
}

// UpdateUserRequest changes the username, the password or both.
// Absent fields are left alone.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,notblank,max=64"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=1,maxbytes=1024"`
}

// GetUser returns the subject's own account.
func (s *UserService) GetUser(ctx context.Context, subject, userID string) (*domain.User, error) {
	if err := access.EnforceSelf(subject, userID); err != nil {
		return nil, err
	}
	return s.store.GetUser(ctx, userID)
}

// UpdateUser applies req to the subject's own account.
func (s *UserService) UpdateUser(ctx context.Context, subject, userID string, req UpdateUserRequest) (*domain.User, error) {
	if err := access.EnforceSelf(subject, userID); err != nil {
		return nil, err
	}
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, domainerrors.Internal("hash password", err)
		}
		user.PasswordHash = hash
	}
	user.Touch()

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user updated", "user_id", user.ID)
	return user, nil
}

// DeleteUser removes the subject's account along with its games.
func (s *UserService) DeleteUser(ctx context.Context, subject, userID string) error {
	if err := access.EnforceSelf(subject, userID); err != nil {
		return err
	}
	if err := s.store.DeleteUser(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("user deleted", "user_id", userID)
	return nil
}
