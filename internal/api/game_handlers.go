package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/vaultofgames/vault-server/internal/domain"
	"github.com/vaultofgames/vault-server/internal/service"
)

func (s *Server) registerGameRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listGames",
		Method:      http.MethodGet,
		Path:        "/v1/games",
		Summary:     "List games",
		Description: "Returns the caller's games, newest first",
		Tags:        []string{"Games"},
		Security:    bearerSecurity,
		Middlewares: huma.Middlewares{s.requireBearer},
	}, s.handleListGames)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createGame",
		Method:        http.MethodPost,
		Path:          "/v1/games",
		Summary:       "Create game",
		Description:   "Adds a game to the caller's library, creating unknown categories",
		Tags:          []string{"Games"},
		Security:      bearerSecurity,
		Middlewares:   huma.Middlewares{s.requireBearer},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateGame)

	huma.Register(s.api, huma.Operation{
		OperationID: "getGame",
		Method:      http.MethodGet,
		Path:        "/v1/games/{id}",
		Summary:     "Get game",
		Tags:        []string{"Games"},
		Security:    bearerSecurity,
		Middlewares: huma.Middlewares{s.requireBearer},
	}, s.handleGetGame)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateGame",
		Method:      http.MethodPatch,
		Path:        "/v1/games/{id}",
		Summary:     "Update game",
		Description: "Replaces the game. Omitted or null image_url, status, rating and note are cleared. A categories array replaces the game's categories; omit it to keep them.",
		Tags:        []string{"Games"},
		Security:    bearerSecurity,
		Middlewares: huma.Middlewares{s.requireBearer},
	}, s.handleUpdateGame)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteGame",
		Method:        http.MethodDelete,
		Path:          "/v1/games/{id}",
		Summary:       "Delete game",
		Tags:          []string{"Games"},
		Security:      bearerSecurity,
		Middlewares:   huma.Middlewares{s.requireBearer},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteGame)
}

// === DTOs ===

// GameResponse contains game data in API responses.
type GameResponse struct {
	ID         string             `json:"id" doc:"Game ID"`
	UserID     string             `json:"user_id" doc:"Owner ID"`
	Title      string             `json:"title" doc:"Title"`
	ImageURL   *string            `json:"image_url" doc:"Cover image URL"`
	Status     *domain.GameStatus `json:"status" doc:"Play status"`
	Rating     *int               `json:"rating" doc:"Rating from 0 to 10"`
	Note       *string            `json:"note" doc:"Free-form note"`
	Categories []string           `json:"categories" doc:"Category names, sorted"`
	CreatedAt  time.Time          `json:"created_at" doc:"Creation time"`
	UpdatedAt  *time.Time         `json:"updated_at" doc:"Last update time"`
}

// GameOutput wraps the game response for Huma.
type GameOutput struct {
	Body GameResponse
}

// ListGamesOutput wraps a list of games for Huma.
type ListGamesOutput struct {
	Body []GameResponse
}

// CreateGameRequest is the request body for creating a game.
type CreateGameRequest struct {
	Title      string             `json:"title,omitempty" doc:"Title"`
	ImageURL   *string            `json:"image_url,omitempty" doc:"Cover image URL"`
	Status     *domain.GameStatus `json:"status,omitempty" enum:"untried,progressing,ended,completed" doc:"Play status"`
	Rating     *int               `json:"rating,omitempty" minimum:"0" maximum:"10" doc:"Rating from 0 to 10"`
	Note       *string            `json:"note,omitempty" doc:"Free-form note"`
	Categories []string           `json:"categories,omitempty" doc:"Category names; unknown names are created"`
}

// CreateGameInput wraps the create game request for Huma.
type CreateGameInput struct {
	Body CreateGameRequest
}

// UpdateGameRequest is the request body for updating a game.
type UpdateGameRequest struct {
	Title      string             `json:"title,omitempty" doc:"Title"`
	ImageURL   *string            `json:"image_url,omitempty" nullable:"true" doc:"Cover image URL; null or absent clears it"`
	Status     *domain.GameStatus `json:"status,omitempty" enum:"untried,progressing,ended,completed" nullable:"true" doc:"Play status; null or absent clears it"`
	Rating     *int               `json:"rating,omitempty" minimum:"0" maximum:"10" nullable:"true" doc:"Rating from 0 to 10; null or absent clears it"`
	Note       *string            `json:"note,omitempty" nullable:"true" doc:"Free-form note; null or absent clears it"`
	Categories *[]string          `json:"categories,omitempty" nullable:"true" doc:"Replacement category names; [] clears, absent keeps"`
}

// UpdateGameInput wraps the update game request for Huma.
type UpdateGameInput struct {
	ID   string `path:"id" doc:"Game ID"`
	Body UpdateGameRequest
}

// GameIDInput identifies a game by path.
type GameIDInput struct {
	ID string `path:"id" doc:"Game ID"`
}

func newGameResponse(g *domain.Game) GameResponse {
	categories := g.Categories
	if categories == nil {
		categories = []string{}
	}
	return GameResponse{
		ID:         g.ID,
		UserID:     g.UserID,
		Title:      g.Title,
		ImageURL:   g.ImageURL,
		Status:     g.Status,
		Rating:     g.Rating,
		Note:       g.Note,
		Categories: categories,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}

// === Handlers ===

func (s *Server) handleListGames(ctx context.Context, _ *struct{}) (*ListGamesOutput, error) {
	subject, err := subjectFromContext(ctx)
	if err != nil {
		return nil, err
	}

	games, err := s.services.Game.ListGames(ctx, subject)
	if err != nil {
		return nil, s.fail(ctx, "listGames", err)
	}

	resp := make([]GameResponse, len(games))
	for i, g := range games {
		resp[i] = newGameResponse(g)
	}
	return &ListGamesOutput{Body: resp}, nil
}

func (s *Server) handleCreateGame(ctx context.Context, input *CreateGameInput) (*GameOutput, error) {
	subject, err := subjectFromContext(ctx)
	if err != nil {
		return nil, err
	}

	game, err := s.services.Game.CreateGame(ctx, subject, service.CreateGameRequest{
		Title:      input.Body.Title,
		ImageURL:   input.Body.ImageURL,
		Status:     input.Body.Status,
		Rating:     input.Body.Rating,
		Note:       input.Body.Note,
		Categories: input.Body.Categories,
	})
	if err != nil {
		return nil, s.fail(ctx, "createGame", err)
	}
	return &GameOutput{Body: newGameResponse(game)}, nil
}

func (s *Server) handleGetGame(ctx context.Context, input *GameIDInput) (*GameOutput, error) {
	subject, err := subjectFromContext(ctx)
	if err != nil {
		return nil, err
	}

	game, err := s.services.Game.GetGame(ctx, subject, input.ID)
	if err != nil {
		return nil, s.fail(ctx, "getGame", err)
	}
	return &GameOutput{Body: newGameResponse(game)}, nil
}

func (s *Server) handleUpdateGame(ctx context.Context, input *UpdateGameInput) (*GameOutput, error) {
	subject, err := subjectFromContext(ctx)
	if err != nil {
		return nil, err
	}

	game, err := s.services.Game.UpdateGame(ctx, subject, input.ID, service.UpdateGameRequest{
		Title:      input.Body.Title,
		ImageURL:   input.Body.ImageURL,
		Status:     input.Body.Status,
		Rating:     input.Body.Rating,
		Note:       input.Body.Note,
		Categories: input.Body.Categories,
	})
	if err != nil {
		return nil, s.fail(ctx, "updateGame", err)
	}
	return &GameOutput{Body: newGameResponse(game)}, nil
}

func (s *Server) handleDeleteGame(ctx context.Context, input *GameIDInput) (*struct{}, error) {
	subject, err := subjectFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Game.DeleteGame(ctx, subject, input.ID); err != nil {
		return nil, s.fail(ctx, "deleteGame", err)
	}
	return &struct{}{}, nil
}
