// Package tracking logs consumed meals against calendar dates and maintains
// the per-user weekly carbon totals.
package tracking

import (
	"context"
	"time"

	"ecobite/internal/apperr"
	applog "ecobite/internal/log"
	"ecobite/internal/store"
	"ecobite/models"
)

const (
	DefaultHistoryLimit = 12
	MaxHistoryLimit     = 100

	// openEnd bounds date ranges that have no explicit end.
	openEnd = "9999-12-31"
)

// Store is the persistence the tracker needs.
type Store interface {
	Meal(ctx context.Context, id uint) (*models.Meal, error)
	LogMeal(ctx context.Context, entry *models.DailyMeal, weekStart string) (*models.WeeklyTracker, error)
	WeeklyTracker(ctx context.Context, userID uint, weekStart string) (models.WeeklyTracker, bool, error)
	WeeklyHistory(ctx context.Context, userID uint, limit int) ([]models.WeeklyTracker, error)
	DailyMeals(ctx context.Context, userID uint, from, to string) ([]store.DailyEntry, error)
}

// Service resolves "today" in a fixed location so that week boundaries do
// not depend on the server's zone.
type Service struct {
	store    Store
	location *time.Location
	now      func() time.Time
}

func NewService(st Store, location *time.Location) *Service {
	if location == nil {
		location = time.Local
	}
	return &Service{store: st, location: location, now: time.Now}
}

// WithClock replaces the time source used to resolve today.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Today is the current calendar date in the service's location.
func (s *Service) Today() time.Time {
	now := s.now().In(s.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Logged is the result of LogMeal.
type Logged struct {
	DailyMeal     models.DailyMeal     `json:"daily_meal"`
	WeeklyTracker models.WeeklyTracker `json:"weekly_tracker"`
}

// LogMeal records that userID ate mealID on date and folds the meal's carbon
// snapshot into the tracker of that date's week. Logging the same meal twice
// counts twice.
func (s *Service) LogMeal(ctx context.Context, mealID, userID uint, date string) (*Logged, error) {
	if userID == 0 {
		return nil, apperr.Invalid("user_id is required")
	}
	if date == "" {
		return nil, apperr.Invalid("date is required")
	}
	weekStart, err := WeekStartOf(date)
	if err != nil {
		return nil, err
	}

	meal, err := s.store.Meal(ctx, mealID)
	if err != nil {
		return nil, err
	}

	entry := &models.DailyMeal{
		UserID:          userID,
		MealID:          meal.ID,
		Date:            date,
		CarbonFootprint: meal.TotalCarbonFootprint,
	}
	tracker, err := s.store.LogMeal(ctx, entry, weekStart)
	if err != nil {
		applog.Error(ctx, "meal log rolled back", "error", err, "userID", userID, "mealID", mealID, "date", date)
		return nil, err
	}

	applog.Debug(ctx, "meal logged", "userID", userID, "mealID", mealID, "date", date, "weekStart", weekStart,
		"weekTotal", tracker.TotalCarbonFootprint, "weekMeals", tracker.TotalMeals)
	return &Logged{DailyMeal: *entry, WeeklyTracker: *tracker}, nil
}

// WeekSummary is a weekly tracker as reported to callers; weeks without logs
// are reported with zero totals.
type WeekSummary struct {
	WeekStartDate        string  `json:"week_start_date"`
	TotalCarbonFootprint float64 `json:"total_carbon_footprint"`
	TotalMeals           int64   `json:"total_meals"`
	AverageCarbonPerMeal float64 `json:"average_carbon_per_meal"`
}

// Summarize converts a stored tracker into a WeekSummary.
func Summarize(tracker models.WeeklyTracker) WeekSummary {
	return WeekSummary{
		WeekStartDate:        tracker.WeekStartDate,
		TotalCarbonFootprint: tracker.TotalCarbonFootprint,
		TotalMeals:           tracker.TotalMeals,
		AverageCarbonPerMeal: tracker.AverageCarbonPerMeal,
	}
}

// Weekly returns the tracker of the week containing day, or of the current
// week when day is empty.
func (s *Service) Weekly(ctx context.Context, userID uint, day string) (WeekSummary, error) {
	weekStart := Format(WeekStart(s.Today()))
	if day != "" {
		var err error
		if weekStart, err = WeekStartOf(day); err != nil {
			return WeekSummary{}, err
		}
	}

	tracker, found, err := s.store.WeeklyTracker(ctx, userID, weekStart)
	if err != nil {
		return WeekSummary{}, err
	}
	if !found {
		return WeekSummary{WeekStartDate: weekStart}, nil
	}
	return Summarize(tracker), nil
}

// HistoryLimit applies the default of 12 for an unset limit and clamps
// everything else into [1, 100].
func HistoryLimit(limit int) int {
	switch {
	case limit == 0:
		return DefaultHistoryLimit
	case limit < 1:
		return 1
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	default:
		return limit
	}
}

// History lists a user's weekly trackers, newest week first.
func (s *Service) History(ctx context.Context, userID uint, limit int) ([]WeekSummary, error) {
	trackers, err := s.store.WeeklyHistory(ctx, userID, HistoryLimit(limit))
	if err != nil {
		return nil, err
	}
	summaries := make([]WeekSummary, 0, len(trackers))
	for _, tracker := range trackers {
		summaries = append(summaries, Summarize(tracker))
	}
	return summaries, nil
}

// LastSevenDays is the inclusive range [today-6, today].
func (s *Service) LastSevenDays() (from, to string) {
	today := s.Today()
	return Format(today.AddDate(0, 0, -6)), Format(today)
}

// Daily lists a user's meal logs between start and end inclusive, newest
// first. Without a start the range is the last seven days; a start without an
// end is open-ended.
func (s *Service) Daily(ctx context.Context, userID uint, start, end string) ([]store.DailyEntry, error) {
	from, to := s.LastSevenDays()
	if start != "" {
		from, to = start, openEnd
		if end != "" {
			to = end
		}
		if _, err := ParseDate(from); err != nil {
			return nil, err
		}
		if to != openEnd {
			if _, err := ParseDate(to); err != nil {
				return nil, err
			}
		}
		if from > to {
			return nil, apperr.Invalid("start_date %s is after end_date %s", from, to)
		}
	}
	return s.store.DailyMeals(ctx, userID, from, to)
}
