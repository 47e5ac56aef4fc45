package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"ecobite/models"
)

// CreateMeal persists meal and its line items in one transaction. On return
// meal carries its ID and the line items their meal ID.
func (s *Store) CreateMeal(ctx context.Context, meal *models.Meal) error {
	if err := s.ready(); err != nil {
		return err
	}
	lines := meal.Ingredients
	meal.Ingredients = nil

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(meal).Error; err != nil {
			return fmt.Errorf("create meal: %w", err)
		}
		for idx := range lines {
			lines[idx].MealID = meal.ID
			line := lines[idx]
			line.Ingredient = nil
			if err := tx.Create(&line).Error; err != nil {
				return fmt.Errorf("create meal ingredient %d: %w", idx+1, err)
			}
			lines[idx].Model = line.Model
		}
		return nil
	})
	meal.Ingredients = lines
	return err
}

// Meal loads a meal with its line items and their ingredients.
func (s *Store) Meal(ctx context.Context, id uint) (*models.Meal, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var meal models.Meal
	if err := s.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("meal_ingredients.id ASC") }).
		Preload("Ingredients.Ingredient").
		First(&meal, id).Error; err != nil {
		return nil, notFound(err, "meal", id)
	}
	return &meal, nil
}

// Meals lists meals newest first, restricted to userID when it is non-nil.
func (s *Store) Meals(ctx context.Context, userID *uint) ([]models.Meal, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	query := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	var meals []models.Meal
	if err := query.Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return meals, nil
}
