package store

import (
	"context"
	"fmt"
)

// IngredientUsage is an ingredient aggregated across a user's saved meals.
type IngredientUsage struct {
	ID                   uint    `json:"id"`
	Name                 string  `json:"name"`
	Category             string  `json:"category"`
	CarbonFootprintPerKg float64 `json:"carbon_footprint_per_kg"`
	TotalQuantity        float64 `json:"total_quantity"`
	MealCount            int64   `json:"meal_count"`
}

// TopIngredients ranks the ingredients of a user's meals by cumulative quantity.
func (s *Store) TopIngredients(ctx context.Context, userID uint, limit int) ([]IngredientUsage, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	usage := make([]IngredientUsage, 0)
	if err := s.db.WithContext(ctx).
		Table("meal_ingredients AS mi").
		Select("i.id, i.name, i.category, i.carbon_footprint_per_kg, " +
			"COALESCE(SUM(mi.quantity), 0) AS total_quantity, COUNT(DISTINCT m.id) AS meal_count").
		Joins("JOIN meals m ON m.id = mi.meal_id AND m.deleted_at IS NULL").
		Joins("JOIN ingredients i ON i.id = mi.ingredient_id").
		Where("m.user_id = ? AND mi.deleted_at IS NULL", userID).
		Group("i.id, i.name, i.category, i.carbon_footprint_per_kg").
		Order("total_quantity DESC").
		Order("i.id ASC").
		Limit(limit).
		Scan(&usage).Error; err != nil {
		return nil, fmt.Errorf("rank ingredients: %w", err)
	}
	return usage, nil
}

// CategoryCarbon is the carbon contribution of one category across a user's meals.
type CategoryCarbon struct {
	Category    string  `json:"category"`
	MealCount   int64   `json:"meal_count"`
	TotalCarbon float64 `json:"total_carbon"`
	AvgCarbon   float64 `json:"avg_carbon"`
}

// CategoryDistribution groups a user's meal ingredients by category, highest
// total carbon first.
func (s *Store) CategoryDistribution(ctx context.Context, userID uint) ([]CategoryCarbon, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	distribution := make([]CategoryCarbon, 0)
	if err := s.db.WithContext(ctx).
		Table("meal_ingredients AS mi").
		Select("i.category, COUNT(DISTINCT m.id) AS meal_count, " +
			"COALESCE(SUM(mi.quantity * i.carbon_footprint_per_kg), 0) AS total_carbon, " +
			"COALESCE(AVG(i.carbon_footprint_per_kg), 0) AS avg_carbon").
		Joins("JOIN meals m ON m.id = mi.meal_id AND m.deleted_at IS NULL").
		Joins("JOIN ingredients i ON i.id = mi.ingredient_id").
		Where("m.user_id = ? AND mi.deleted_at IS NULL", userID).
		Group("i.category").
		Order("total_carbon DESC").
		Order("i.category ASC").
		Scan(&distribution).Error; err != nil {
		return nil, fmt.Errorf("group categories: %w", err)
	}
	return distribution, nil
}

// LoggedIngredient is an ingredient that appears in meals a user has logged.
type LoggedIngredient struct {
	ID                   uint    `json:"id"`
	Name                 string  `json:"name"`
	Category             string  `json:"category"`
	CarbonFootprintPerKg float64 `json:"carbon_footprint_per_kg"`
	TimesEaten           int64   `json:"times_eaten"`
}

// HighCarbonLoggedIngredients returns the ingredients of a user's logged meals
// ordered by per-kg carbon, then by how often they were eaten.
func (s *Store) HighCarbonLoggedIngredients(ctx context.Context, userID uint, limit int) ([]LoggedIngredient, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	logged := make([]LoggedIngredient, 0)
	if err := s.db.WithContext(ctx).
		Table("daily_meals AS dm").
		Select("i.id, i.name, i.category, i.carbon_footprint_per_kg, COUNT(dm.id) AS times_eaten").
		Joins("JOIN meals m ON m.id = dm.meal_id AND m.deleted_at IS NULL").
		Joins("JOIN meal_ingredients mi ON mi.meal_id = m.id AND mi.deleted_at IS NULL").
		Joins("JOIN ingredients i ON i.id = mi.ingredient_id").
		Where("dm.user_id = ? AND dm.deleted_at IS NULL", userID).
		Group("i.id, i.name, i.category, i.carbon_footprint_per_kg").
		Order("i.carbon_footprint_per_kg DESC").
		Order("times_eaten DESC").
		Order("i.id ASC").
		Limit(limit).
		Scan(&logged).Error; err != nil {
		return nil, fmt.Errorf("rank logged ingredients: %w", err)
	}
	return logged, nil
}

// CalorieSummary is the calorie profile of a user's logs over a date range.
type CalorieSummary struct {
	AverageCalories float64 `json:"avg_calories"`
	DaysLogged      int64   `json:"days_logged"`
}

// Calories averages the calories of meals a user logged within [from, to].
func (s *Store) Calories(ctx context.Context, userID uint, from, to string) (CalorieSummary, error) {
	if err := s.ready(); err != nil {
		return CalorieSummary{}, err
	}
	var summary CalorieSummary
	if err := s.db.WithContext(ctx).
		Table("daily_meals AS dm").
		Select("COALESCE(AVG(m.total_calories), 0) AS average_calories, COUNT(DISTINCT dm.date) AS days_logged").
		Joins("JOIN meals m ON m.id = dm.meal_id AND m.deleted_at IS NULL").
		Where("dm.user_id = ? AND dm.date >= ? AND dm.date <= ? AND dm.deleted_at IS NULL", userID, from, to).
		Scan(&summary).Error; err != nil {
		return CalorieSummary{}, fmt.Errorf("summarise calories: %w", err)
	}
	return summary, nil
}
