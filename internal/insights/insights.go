// Package insights builds the statistics, eating-pattern and nutrition
// reports shown to a user from their meals, logs and weekly trackers.
package insights

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"ecobite/internal/footprint"
	"ecobite/internal/store"
	"ecobite/internal/substitution"
	"ecobite/internal/tracking"
	"ecobite/models"
)

const (
	topIngredientLimit = 10
	trendWeeks         = 12
	suggestionLimit    = 5
)

// Store provides the aggregate queries behind the reports.
type Store interface {
	WeeklyTracker(ctx context.Context, userID uint, weekStart string) (models.WeeklyTracker, bool, error)
	WeeklyHistory(ctx context.Context, userID uint, limit int) ([]models.WeeklyTracker, error)
	CarbonTotals(ctx context.Context, userID uint, from, to string) (store.Totals, error)
	WeeklyAverage(ctx context.Context, userID uint) (float64, error)
	TopIngredients(ctx context.Context, userID uint, limit int) ([]store.IngredientUsage, error)
	CategoryDistribution(ctx context.Context, userID uint) ([]store.CategoryCarbon, error)
	HighCarbonLoggedIngredients(ctx context.Context, userID uint, limit int) ([]store.LoggedIngredient, error)
	Calories(ctx context.Context, userID uint, from, to string) (store.CalorieSummary, error)
}

// Alternatives ranks replacements for an ingredient.
type Alternatives interface {
	Alternatives(ctx context.Context, ingredientID uint) (substitution.Ranking, error)
}

type Service struct {
	store        Store
	alternatives Alternatives
	calendar     *tracking.Service
}

// NewService wires the reporter. calendar supplies "today" and the week
// boundaries so reports agree with the tracker.
func NewService(st Store, alternatives Alternatives, calendar *tracking.Service) *Service {
	return &Service{store: st, alternatives: alternatives, calendar: calendar}
}

// Window is the carbon sum and meal count of a date range.
type Window struct {
	TotalCarbonFootprint float64 `json:"total_carbon_footprint"`
	MealCount            int64   `json:"meal_count"`
}

// Stats is the dashboard summary for a user.
type Stats struct {
	CurrentWeek   tracking.WeekSummary `json:"current_week"`
	LastSevenDays Window               `json:"last_7_days"`
	AllTime       store.Totals         `json:"all_time"`
	WeeklyAverage float64              `json:"weekly_average"`
}

// Stats reports the current week, the last seven days and all-time totals.
// A user with no history gets zeros everywhere.
func (s *Service) Stats(ctx context.Context, userID uint) (Stats, error) {
	current, err := s.calendar.Weekly(ctx, userID, "")
	if err != nil {
		return Stats{}, fmt.Errorf("current week: %w", err)
	}

	from, to := s.calendar.LastSevenDays()
	recent, err := s.store.CarbonTotals(ctx, userID, from, to)
	if err != nil {
		return Stats{}, err
	}

	allTime, err := s.store.CarbonTotals(ctx, userID, "", "")
	if err != nil {
		return Stats{}, err
	}

	weeklyAverage, err := s.store.WeeklyAverage(ctx, userID)
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		CurrentWeek:   current,
		LastSevenDays: Window{TotalCarbonFootprint: recent.TotalCarbonFootprint, MealCount: recent.MealCount},
		AllTime:       allTime,
		WeeklyAverage: weeklyAverage,
	}, nil
}

// Improvement compares the two most recent weekly totals.
type Improvement struct {
	CarbonReduction float64 `json:"carbon_reduction"`
	IsImproving     bool    `json:"is_improving"`
}

// Patterns describes what a user eats and how their weekly carbon trends.
type Patterns struct {
	TopIngredients       []store.IngredientUsage `json:"top_ingredients"`
	CategoryDistribution []store.CategoryCarbon  `json:"category_distribution"`
	WeeklyTrends         []tracking.WeekSummary  `json:"weekly_trends"`
	Improvement          *Improvement            `json:"improvement"`
}

// Patterns reports the user's most used ingredients, their carbon by
// category and the last twelve weeks oldest first. Improvement is nil until
// two weeks exist.
func (s *Service) Patterns(ctx context.Context, userID uint) (Patterns, error) {
	top, err := s.store.TopIngredients(ctx, userID, topIngredientLimit)
	if err != nil {
		return Patterns{}, err
	}
	distribution, err := s.store.CategoryDistribution(ctx, userID)
	if err != nil {
		return Patterns{}, err
	}
	history, err := s.store.WeeklyHistory(ctx, userID, trendWeeks)
	if err != nil {
		return Patterns{}, err
	}

	trends := make([]tracking.WeekSummary, len(history))
	for idx, tracker := range history {
		trends[len(history)-1-idx] = tracking.Summarize(tracker)
	}

	var improvement *Improvement
	if len(history) >= 2 {
		result := Compare(history[0].TotalCarbonFootprint, history[1].TotalCarbonFootprint)
		improvement = &result
	}

	return Patterns{
		TopIngredients:       top,
		CategoryDistribution: distribution,
		WeeklyTrends:         trends,
		Improvement:          improvement,
	}, nil
}

// Compare reports whether current is strictly below previous and, if so, by
// what percentage of previous.
func Compare(current, previous float64) Improvement {
	if current < previous {
		return Improvement{
			CarbonReduction: footprint.Round2((previous - current) / previous * 100),
			IsImproving:     true,
		}
	}
	return Improvement{}
}

// Suggestion is a frequently eaten high-carbon ingredient with replacements.
type Suggestion struct {
	store.LoggedIngredient
	NutritionalValue models.Nutrition           `json:"nutritional_value"`
	Alternatives     []substitution.Alternative `json:"alternatives"`
}

// Nutrition is the calorie profile of the last seven days plus swap suggestions.
type Nutrition struct {
	AverageNutrition        store.CalorieSummary `json:"average_nutrition"`
	OptimizationSuggestions []Suggestion         `json:"optimization_suggestions"`
}

// Nutrition averages the calories of meals logged in the last seven days and
// suggests alternatives for the user's five highest-carbon logged ingredients.
// Alternatives are ranked concurrently; the first failure cancels the rest.
func (s *Service) Nutrition(ctx context.Context, userID uint) (Nutrition, error) {
	from, to := s.calendar.LastSevenDays()
	calories, err := s.store.Calories(ctx, userID, from, to)
	if err != nil {
		return Nutrition{}, err
	}

	logged, err := s.store.HighCarbonLoggedIngredients(ctx, userID, suggestionLimit)
	if err != nil {
		return Nutrition{}, err
	}

	suggestions := make([]Suggestion, len(logged))
	g, gctx := errgroup.WithContext(ctx)
	for idx, ingredient := range logged {
		idx, ingredient := idx, ingredient
		g.Go(func() error {
			ranking, err := s.alternatives.Alternatives(gctx, ingredient.ID)
			if err != nil {
				return fmt.Errorf("alternatives for %s: %w", ingredient.Name, err)
			}
			suggestions[idx] = Suggestion{
				LoggedIngredient: ingredient,
				NutritionalValue: ranking.Original.NutritionalValue,
				Alternatives:     ranking.Alternatives,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Nutrition{}, err
	}

	return Nutrition{
		AverageNutrition:        calories,
		OptimizationSuggestions: suggestions,
	}, nil
}
