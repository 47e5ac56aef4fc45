package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ecobite/internal/apperr"
	"ecobite/models"
)

// Ingredients lists the catalog ordered by name.
func (s *Store) Ingredients(ctx context.Context) ([]models.Ingredient, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return ingredients, nil
}

// Ingredient loads a single catalog entry.
func (s *Store) Ingredient(ctx context.Context, id uint) (*models.Ingredient, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		return nil, notFound(err, "ingredient", id)
	}
	return &ingredient, nil
}

// IngredientsByID loads the requested entries keyed by ID. Unknown IDs are
// simply absent from the map.
func (s *Store) IngredientsByID(ctx context.Context, ids []uint) (map[uint]models.Ingredient, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Ingredient, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("load ingredients: %w", err)
	}
	for _, ingredient := range ingredients {
		byID[ingredient.ID] = ingredient
	}
	return byID, nil
}

// SearchIngredients matches query case-insensitively against name or category.
func (s *Store) SearchIngredients(ctx context.Context, query string) ([]models.Ingredient, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.Invalid("search query is required")
	}
	pattern := "%" + strings.ToLower(query) + "%"
	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", pattern, pattern).
		Order("name ASC").
		Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("search ingredients: %w", err)
	}
	return ingredients, nil
}

// LowerCarbonCandidates returns up to limit ingredients with strictly lower
// per-kg carbon than target, cheapest first.
func (s *Store) LowerCarbonCandidates(ctx context.Context, target models.Ingredient, limit int) ([]models.Ingredient, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var candidates []models.Ingredient
	if err := s.db.WithContext(ctx).
		Where("id <> ? AND carbon_footprint_per_kg < ?", target.ID, target.CarbonFootprintPerKg).
		Order("carbon_footprint_per_kg ASC").
		Order("id ASC").
		Limit(limit).
		Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	return candidates, nil
}

// UpsertIngredient inserts ingredient or, when an entry with the same name
// exists, overwrites its category, carbon figure and nutrition.
func (s *Store) UpsertIngredient(ctx context.Context, ingredient *models.Ingredient) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"category", "carbon_footprint_per_kg", "nutritional_value", "updated_at"}),
		}).Create(ingredient).Error; err != nil {
			return fmt.Errorf("upsert ingredient %q: %w", ingredient.Name, err)
		}
		return nil
	})
}
