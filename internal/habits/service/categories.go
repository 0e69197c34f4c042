package service

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
	"github.com/aussiebroadwan/habits/internal/habits/store"
)

type CategoryService struct {
	Store store.Store
}

// List returns the shared categories plus the owner's own.
func (s *CategoryService) List(ctx context.Context, owner domain.UserID) ([]domain.Category, error) {
	return s.Store.Categories().ListVisibleCategories(ctx, owner)
}

// Create adds a category only owner can see.
func (s *CategoryService) Create(ctx context.Context, owner domain.UserID, name, color string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, invalid("name required")
	}
	color = strings.TrimSpace(color)
	if color == "" {
		color = domain.DefaultCategoryColor
	}

	return s.Store.Categories().CreateCategory(ctx, owner, domain.Category{Name: name, Color: color})
}
