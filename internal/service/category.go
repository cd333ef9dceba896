package service

import (
	"context"

	"github.com/vaultofgames/vault-server/internal/domain"
	"github.com/vaultofgames/vault-server/internal/store"
)

// CategoryService exposes the shared category vocabulary. Categories are
// created implicitly by game writes and are read-only here.
type CategoryService struct {
	store store.Store
}

// NewCategoryService creates a new category service.
func NewCategoryService(store store.Store) *CategoryService {
	return &CategoryService{store: store}
}

// ListCategories returns every category, sorted by name.
func (s *CategoryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.store.ListCategories(ctx)
}
