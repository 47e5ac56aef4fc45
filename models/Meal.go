package models

import (
	"gorm.io/gorm"
)

// Meal is a named, saved combination of ingredients. Totals are snapshots taken
// at creation time and are never recomputed.
type Meal struct {
	gorm.Model
	UserID               *uint            `gorm:"index" json:"user_id"`
	Name                 string           `gorm:"not null" json:"name"`
	Description          string           `gorm:"type:text" json:"description"`
	TotalCarbonFootprint float64          `gorm:"not null;default:0" json:"total_carbon_footprint"`
	TotalCalories        float64          `gorm:"not null;default:0" json:"total_calories"`
	Ingredients          []MealIngredient `gorm:"foreignKey:MealID" json:"ingredients"`
}
