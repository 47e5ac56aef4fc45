package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ecobite/internal/apperr"
	"ecobite/models"
)

// LogMeal appends entry and folds its carbon into the (user, weekStart)
// tracker inside one transaction. The tracker is created on first use and
// otherwise incremented by the database, so concurrent logs for the same week
// never overwrite each other. Any failure rolls both writes back and is
// reported as an AggregationConsistencyError.
func (s *Store) LogMeal(ctx context.Context, entry *models.DailyMeal, weekStart string) (*models.WeeklyTracker, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var tracker models.WeeklyTracker
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("insert daily meal: %w", err)
		}

		if err := upsertWeeklyTracker(tx, entry.UserID, weekStart, entry.CarbonFootprint).Error; err != nil {
			return fmt.Errorf("upsert weekly tracker: %w", err)
		}

		return tx.Where("user_id = ? AND week_start_date = ?", entry.UserID, weekStart).First(&tracker).Error
	})
	if err != nil {
		return nil, &apperr.AggregationConsistencyError{
			UserID: entry.UserID,
			MealID: entry.MealID,
			Date:   entry.Date,
			Err:    err,
		}
	}
	return &tracker, nil
}

// upsertWeeklyTracker inserts the first tracker row for a week or increments
// the existing one with expressions evaluated by the database.
func upsertWeeklyTracker(tx *gorm.DB, userID uint, weekStart string, carbon float64) *gorm.DB {
	seed := models.WeeklyTracker{
		UserID:               userID,
		WeekStartDate:        weekStart,
		TotalCarbonFootprint: carbon,
		TotalMeals:           1,
		AverageCarbonPerMeal: carbon,
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "week_start_date"}},
		DoUpdates: clause.Assignments(map[string]any{
			"total_carbon_footprint":  gorm.Expr("weekly_trackers.total_carbon_footprint + ?", carbon),
			"total_meals":             gorm.Expr("weekly_trackers.total_meals + 1"),
			"average_carbon_per_meal": gorm.Expr("(weekly_trackers.total_carbon_footprint + ?) / (weekly_trackers.total_meals + 1)", carbon),
			"updated_at":              tx.NowFunc(),
		}),
	}).Create(&seed)
}

// WeeklyTracker loads the tracker for a user and week. The boolean reports
// whether a row exists.
func (s *Store) WeeklyTracker(ctx context.Context, userID uint, weekStart string) (models.WeeklyTracker, bool, error) {
	if err := s.ready(); err != nil {
		return models.WeeklyTracker{}, false, err
	}
	var trackers []models.WeeklyTracker
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND week_start_date = ?", userID, weekStart).
		Limit(1).
		Find(&trackers).Error; err != nil {
		return models.WeeklyTracker{}, false, fmt.Errorf("load weekly tracker: %w", err)
	}
	if len(trackers) == 0 {
		return models.WeeklyTracker{}, false, nil
	}
	return trackers[0], true, nil
}

// WeeklyHistory returns up to limit trackers for a user, newest week first.
func (s *Store) WeeklyHistory(ctx context.Context, userID uint, limit int) ([]models.WeeklyTracker, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var trackers []models.WeeklyTracker
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("week_start_date DESC").
		Limit(limit).
		Find(&trackers).Error; err != nil {
		return nil, fmt.Errorf("load weekly history: %w", err)
	}
	return trackers, nil
}

// DailyEntry is a meal log row joined with the meal's name.
type DailyEntry struct {
	ID              uint    `json:"id"`
	UserID          uint    `json:"user_id"`
	MealID          uint    `json:"meal_id"`
	Date            string  `json:"date"`
	CarbonFootprint float64 `json:"carbon_footprint"`
	MealName        string  `json:"meal_name"`
}

// DailyMeals lists a user's logs dated within [from, to], newest first.
func (s *Store) DailyMeals(ctx context.Context, userID uint, from, to string) ([]DailyEntry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	entries := make([]DailyEntry, 0)
	if err := s.db.WithContext(ctx).
		Table("daily_meals AS dm").
		Select("dm.id, dm.user_id, dm.meal_id, dm.date, dm.carbon_footprint, COALESCE(m.name, '') AS meal_name").
		Joins("LEFT JOIN meals m ON m.id = dm.meal_id").
		Where("dm.user_id = ? AND dm.date >= ? AND dm.date <= ? AND dm.deleted_at IS NULL", userID, from, to).
		Order("dm.date DESC").
		Order("dm.id DESC").
		Scan(&entries).Error; err != nil {
		return nil, fmt.Errorf("load daily meals: %w", err)
	}
	return entries, nil
}

// Totals summarises a set of meal logs. Empty sets yield zeros.
type Totals struct {
	TotalCarbonFootprint float64 `json:"total_carbon_footprint"`
	MealCount            int64   `json:"meal_count"`
	AveragePerMeal       float64 `json:"average_per_meal"`
}

// CarbonTotals sums a user's logs dated within [from, to]. Empty bounds are
// open, so CarbonTotals(ctx, id, "", "") covers the whole history.
func (s *Store) CarbonTotals(ctx context.Context, userID uint, from, to string) (Totals, error) {
	if err := s.ready(); err != nil {
		return Totals{}, err
	}
	query := s.db.WithContext(ctx).
		Model(&models.DailyMeal{}).
		Select("COALESCE(SUM(carbon_footprint), 0) AS total_carbon_footprint, " +
			"COUNT(*) AS meal_count, " +
			"COALESCE(AVG(carbon_footprint), 0) AS average_per_meal").
		Where("user_id = ?", userID)
	if from != "" {
		query = query.Where("date >= ?", from)
	}
	if to != "" {
		query = query.Where("date <= ?", to)
	}

	var totals Totals
	if err := query.Scan(&totals).Error; err != nil {
		return Totals{}, fmt.Errorf("sum daily meals: %w", err)
	}
	return totals, nil
}

// WeeklyAverage is the mean weekly total across all of a user's trackers.
func (s *Store) WeeklyAverage(ctx context.Context, userID uint) (float64, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	var row struct {
		AvgWeekly float64
	}
	if err := s.db.WithContext(ctx).
		Model(&models.WeeklyTracker{}).
		Select("COALESCE(AVG(total_carbon_footprint), 0) AS avg_weekly").
		Where("user_id = ?", userID).
		Scan(&row).Error; err != nil {
		return 0, fmt.Errorf("average weekly trackers: %w", err)
	}
	return row.AvgWeekly, nil
}
