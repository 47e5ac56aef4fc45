package models

import (
	"gorm.io/gorm"
)

// WeeklyTracker holds running totals for one user and one Monday-anchored week.
// At most one row exists per (user_id, week_start_date).
type WeeklyTracker struct {
	gorm.Model
	UserID               uint    `gorm:"not null;uniqueIndex:idx_weekly_trackers_user_week,priority:1" json:"user_id"`
	WeekStartDate        string  `gorm:"type:varchar(10);not null;uniqueIndex:idx_weekly_trackers_user_week,priority:2" json:"week_start_date"`
	TotalCarbonFootprint float64 `gorm:"not null;default:0" json:"total_carbon_footprint"`
	TotalMeals           int64   `gorm:"not null;default:0" json:"total_meals"`
	AverageCarbonPerMeal float64 `gorm:"not null;default:0" json:"average_carbon_per_meal"`
}
