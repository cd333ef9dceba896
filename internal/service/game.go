package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/vaultofgames/vault-server/internal/access"
	"github.com/vaultofgames/vault-server/internal/domain"
	domainerrors "github.com/vaultofgames/vault-server/internal/errors"
	"github.com/vaultofgames/vault-server/internal/id"
	"github.com/vaultofgames/vault-server/internal/metrics"
	"github.com/vaultofgames/vault-server/internal/store"
)

// GameService manages games in a user's library.
//
// Every operation is scoped to the subject: games owned by someone else
// behave exactly like games that do not exist.
type GameService struct {
	store   store.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewGameService creates a new game service.
func NewGameService(store store.Store, metrics *metrics.Metrics, logger *slog.Logger) *GameService {
	return &GameService{store: store, metrics: metrics, logger: orDiscard(logger)}
}

// CreateGameRequest describes a new game.
type CreateGameRequest struct {
	Title      string             `json:"title" validate:"notblank,max=255"`
	ImageURL   *string            `json:"image_url,omitempty" validate:"omitempty,max=2048"`
	Status     *domain.GameStatus `json:"status,omitempty" validate:"omitempty,game_status"`
	Rating     *int               `json:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	Note       *string            `json:"note,omitempty" validate:"omitempty,max=10000"`
	Categories []string           `json:"categories,omitempty" validate:"max=50,dive,max=64"`
}

// UpdateGameRequest replaces a game's fields. Title is required and every
// optional scalar is written as given, so an absent or null one is cleared.
// Categories differ: nil keeps the category set, non-nil replaces it, and an
// empty list clears it.
type UpdateGameRequest struct {
	Title      string             `json:"title" validate:"notblank,max=255"`
	ImageURL   *string            `json:"image_url,omitempty" validate:"omitempty,max=2048"`
	Status     *domain.GameStatus `json:"status,omitempty" validate:"omitempty,game_status"`
	Rating     *int               `json:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	Note       *string            `json:"note,omitempty" validate:"omitempty,max=10000"`
	Categories *[]string          `json:"categories,omitempty" validate:"omitempty,max=50,dive,max=64"`
}

// ListGames returns the subject's games, newest first.
func (s *GameService) ListGames(ctx context.Context, subject string) ([]*domain.Game, error) {
	return s.store.ListGames(ctx, subject)
}

// CreateGame adds a game owned by subject and links its categories.
func (s *GameService) CreateGame(ctx context.Context, subject string, req CreateGameRequest) (*domain.Game, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	gameID, err := id.Generate(id.PrefixGame)
	if err != nil {
		return nil, domainerrors.Internal("generate game id", err)
	}

	game := &domain.Game{
		ID:         gameID,
		UserID:     subject,
		Title:      req.Title,
		ImageURL:   req.ImageURL,
		Status:     req.Status,
		Rating:     req.Rating,
		Note:       req.Note,
		Categories: req.Categories,
		CreatedAt:  time.Now().UTC(),
	}

	err = s.store.CreateGame(ctx, game)
	s.metrics.Reconciliation(metrics.ReconcileCreate, err)
	if err != nil {
		return nil, err
	}

	s.logger.Info("game created", "game_id", game.ID, "user_id", subject, "categories", len(game.Categories))
	return game, nil
}

// GetGame returns one of the subject's games.
func (s *GameService) GetGame(ctx context.Context, subject, gameID string) (*domain.Game, error) {
	game, err := s.store.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if err := access.EnforceGameOwner(subject, game); err != nil {
		return nil, err
	}
	return game, nil
}

// UpdateGame applies req to one of the subject's games.
func (s *GameService) UpdateGame(ctx context.Context, subject, gameID string, req UpdateGameRequest) (*domain.Game, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	game, err := s.GetGame(ctx, subject, gameID)
	if err != nil {
		return nil, err
	}

	game.Title = req.Title
	game.ImageURL = req.ImageURL
	game.Status = req.Status
	game.Rating = req.Rating
	game.Note = req.Note
	game.Touch()

	err = s.store.UpdateGame(ctx, game, req.Categories)
	if req.Categories != nil {
		s.metrics.Reconciliation(metrics.ReconcileUpdate, err)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("game updated", "game_id", game.ID, "user_id", subject)
	return game, nil
}

// DeleteGame removes one of the subject's games.
func (s *GameService) DeleteGame(ctx context.Context, subject, gameID string) error {
	if _, err := s.GetGame(ctx, subject, gameID); err != nil {
		return err
	}
	if err := s.store.DeleteGame(ctx, gameID, subject); err != nil {
		return err
	}

	s.logger.Info("game deleted", "game_id", gameID, "user_id", subject)
	return nil
}
