// Package meals saves named ingredient combinations with their footprint
// totals captured at creation time.
package meals

import (
	"context"
	"strings"

	"ecobite/internal/apperr"
	"ecobite/internal/footprint"
	applog "ecobite/internal/log"
	"ecobite/models"
)

// Store persists and loads meals.
type Store interface {
	IngredientsByID(ctx context.Context, ids []uint) (map[uint]models.Ingredient, error)
	CreateMeal(ctx context.Context, meal *models.Meal) error
	Meal(ctx context.Context, id uint) (*models.Meal, error)
	Meals(ctx context.Context, userID *uint) ([]models.Meal, error)
}

// NewMeal is the input of CreateMeal.
type NewMeal struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Ingredients []footprint.LineItem `json:"ingredients"`
	UserID      *uint                `json:"user_id"`
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreateMeal computes the totals of input, stores the meal with its line
// items and returns it with ingredient details resolved.
func (s *Service) CreateMeal(ctx context.Context, input NewMeal) (*models.Meal, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.Invalid("meal name is required")
	}
	if err := footprint.Validate(input.Ingredients); err != nil {
		return nil, err
	}

	catalog, err := s.store.IngredientsByID(ctx, footprint.IngredientIDs(input.Ingredients))
	if err != nil {
		return nil, err
	}
	result, err := footprint.Calculate(input.Ingredients, catalog)
	if err != nil {
		return nil, err
	}

	meal := &models.Meal{
		UserID:               input.UserID,
		Name:                 name,
		Description:          strings.TrimSpace(input.Description),
		TotalCarbonFootprint: result.TotalCarbonFootprint,
		TotalCalories:        result.TotalCalories,
		Ingredients:          make([]models.MealIngredient, 0, len(input.Ingredients)),
	}
	for _, item := range input.Ingredients {
		meal.Ingredients = append(meal.Ingredients, models.MealIngredient{
			IngredientID: item.IngredientID,
			Quantity:     item.QuantityKg,
		})
	}

	if err := s.store.CreateMeal(ctx, meal); err != nil {
		return nil, err
	}

	for idx := range meal.Ingredients {
		ingredient := catalog[meal.Ingredients[idx].IngredientID]
		meal.Ingredients[idx].Ingredient = &ingredient
	}

	applog.Info(ctx, "meal created", "mealID", meal.ID, "carbon", meal.TotalCarbonFootprint, "items", len(meal.Ingredients))
	return meal, nil
}

// Meal loads a meal with its ingredients.
func (s *Service) Meal(ctx context.Context, id uint) (*models.Meal, error) {
	return s.store.Meal(ctx, id)
}

// List returns meals newest first, optionally only those owned by userID.
func (s *Service) List(ctx context.Context, userID *uint) ([]models.Meal, error) {
	return s.store.Meals(ctx, userID)
}
