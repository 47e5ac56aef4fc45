package models

import (
	"gorm.io/gorm"
)

// DailyMeal records one consumption of a meal on a calendar day. Rows are
// append-only; CarbonFootprint is the meal total at logging time.
type DailyMeal struct {
	gorm.Model
	UserID          uint    `gorm:"not null;index:idx_daily_meals_user_date,priority:1" json:"user_id"`
	MealID          uint    `gorm:"not null;index" json:"meal_id"`
	Date            string  `gorm:"type:varchar(10);not null;index:idx_daily_meals_user_date,priority:2" json:"date"`
	CarbonFootprint float64 `gorm:"not null;default:0" json:"carbon_footprint"`

	Meal *Meal `gorm:"foreignKey:MealID" json:"meal,omitempty"`
}
