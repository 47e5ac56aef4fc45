package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Nutrition is the per-100g nutritional profile of an ingredient.
type Nutrition struct {
	Protein  float64 `json:"protein" yaml:"protein"`
	Carbs    float64 `json:"carbs" yaml:"carbs"`
	Fats     float64 `json:"fats" yaml:"fats"`
	Calories float64 `json:"calories" yaml:"calories"`
}

// Ingredient is a catalog entry. Rows are created by seeding or import and are
// read-only for the rest of the application.
type Ingredient struct {
	gorm.Model
	Name                 string                        `gorm:"uniqueIndex;not null" json:"name"`
	Category             string                        `gorm:"index;not null" json:"category"`
	CarbonFootprintPerKg float64                       `gorm:"not null;default:0;index" json:"carbon_footprint_per_kg"`
	NutritionalValue     datatypes.JSONType[Nutrition] `json:"nutritional_value"`
}

// Nutrition returns the decoded nutritional profile.
func (i Ingredient) Nutrition() Nutrition {
	return i.NutritionalValue.Data()
}

// NewIngredient builds an unsaved catalog entry.
func NewIngredient(name, category string, carbonPerKg float64, nutrition Nutrition) Ingredient {
	return Ingredient{
		Name:                 name,
		Category:             category,
		CarbonFootprintPerKg: carbonPerKg,
		NutritionalValue:     datatypes.NewJSONType(nutrition),
	}
}
