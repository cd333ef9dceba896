package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerCategoryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCategories",
		Method:      http.MethodGet,
		Path:        "/v1/categories",
		Summary:     "List categories",
		Description: "Returns every category known to the server, sorted by name",
		Tags:        []string{"Categories"},
		Security:    bearerSecurity,
		Middlewares: huma.Middlewares{s.requireBearer},
	}, s.handleListCategories)
}

// CategoryResponse contains category data in API responses.
type CategoryResponse struct {
	ID   string `json:"id" doc:"Category ID"`
	Name string `json:"name" doc:"Category name"`
}

// ListCategoriesOutput wraps a list of categories for Huma.
type ListCategoriesOutput struct {
	Body []CategoryResponse
}

func (s *Server) handleListCategories(ctx context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
	categories, err := s.services.Category.ListCategories(ctx)
	if err != nil {
		return nil, s.fail(ctx, "listCategories", err)
	}

	resp := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = CategoryResponse{ID: c.ID, Name: c.Name}
	}
	return &ListCategoriesOutput{Body: resp}, nil
}
