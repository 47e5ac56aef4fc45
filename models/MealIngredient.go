package models

import (
	"gorm.io/gorm"
)

type MealIngredient struct {
	gorm.Model
	MealID       uint    `gorm:"not null;index" json:"meal_id"`
	IngredientID uint    `gorm:"not null;index" json:"ingredient_id"`
	Quantity     float64 `gorm:"not null" json:"quantity"` // kg

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}
