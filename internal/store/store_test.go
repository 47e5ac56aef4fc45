package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ecobite/internal/apperr"
	"ecobite/internal/db/mock"
	"ecobite/models"
)

func newTestStore(t *testing.T, name string) *Store {
	t.Helper()
	database, err := mock.Open(context.Background(), "store-"+name, true)
	require.NoError(t, err)
	return New(database)
}

func ingredientByName(t *testing.T, s *Store, name string) models.Ingredient {
	t.Helper()
	var ingredient models.Ingredient
	require.NoError(t, s.DB().Where("name = ?", name).First(&ingredient).Error)
	return ingredient
}

func saveMeal(t *testing.T, s *Store, userID uint, name string, carbon, calories float64, lines map[string]float64) *models.Meal {
	t.Helper()
	meal := &models.Meal{
		UserID:               &userID,
		Name:                 name,
		TotalCarbonFootprint: carbon,
		TotalCalories:        calories,
	}
	for ingredientName, qty := range lines {
		ingredient := ingredientByName(t, s, ingredientName)
		meal.Ingredients = append(meal.Ingredients, models.MealIngredient{IngredientID: ingredient.ID, Quantity: qty})
	}
	require.NoError(t, s.CreateMeal(context.Background(), meal))
	return meal
}

func TestIngredientLookups(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, "lookups")
	ctx := context.Background()

	all, err := s.Ingredients(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, all[i-1].Name, all[i].Name)
	}

	beef := ingredientByName(t, s, "Beef")
	got, err := s.Ingredient(ctx, beef.ID)
	require.NoError(t, err)
	assert.Equal(t, 27.0, got.CarbonFootprintPerKg)
	assert.Greater(t, got.Nutrition().Calories, 0.0)

	_, err = s.Ingredient(ctx, 99999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	byID, err := s.IngredientsByID(ctx, []uint{beef.ID, 99999})
	require.NoError(t, err)
	assert.Len(t, byID, 1)
	assert.Equal(t, "Beef", byID[beef.ID].Name)
}

func TestSearchIngredients(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, "search")
	ctx := context.Background()

	results, err := s.SearchIngredients(ctx, "BEEF")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Beef", results[0].Name)

	byCategory, err := s.SearchIngredients(ctx, "dairy")
	require.NoError(t, err)
	assert.NotEmpty(t, byCategory)
	for _, ingredient := range byCategory {
		assert.Equal(t, "Dairy", ingredient.Category)
	}

	_, err = s.SearchIngredients(ctx, "  ")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestLowerCarbonCandidates(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, "candidates")
	ctx := context.Background()

	beef := ingredientByName(t, s, "Beef")
	candidates, err := s.LowerCarbonCandidates(ctx, beef, 5)
	require.NoError(t, err)
	require.Len(t, candidates, 5)
	for i, candidate := range candidates {
		assert.Less(t, candidate.CarbonFootprintPerKg, beef.CarbonFootprintPerKg)
		if i > 0 {
			assert.LessOrEqual(t, candidates[i-1].CarbonFootprintPerKg, candidate.CarbonFootprintPerKg)
		}
	}

	potatoes := ingredientByName(t, s, "Potatoes")
	none, err := s.LowerCarbonCandidates(ctx, potatoes, 20)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpsertIngredientUpdatesByName(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, "upsert-ingredient")
	ctx := context.Background()

	updated := models.NewIngredient("Beef", "Meat", 30, models.Nutrition{Protein: 26, Fats: 15, Calories: 250})
	require.NoError(t, s.UpsertIngredient(ctx, &updated))

	beef := ingredientByName(t, s, "Beef")
	assert.Equal(t, 30.0, beef.CarbonFootprintPerKg)

	fresh := models.NewIngredient("Seitan", "Plant Protein", 1.1, models.Nutrition{Protein: 75, Carbs: 14, Fats: 1.9, Calories: 370})
	require.NoError(t, s.UpsertIngredient(ctx, &fresh))
	assert.NotZero(t, fresh.ID)
	assert.Equal(t, "Plant Protein", ingredientByName(t, s, "Seitan").Category)
}

func TestCreateAndLoadMeal(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, "meals")
	ctx := context.Background()

	meal := saveMeal(t, s, 1, "Burger", 5.4, 500, map[string]float64{"Beef": 0.2})
	require.NotZero(t, meal.ID)
	require.Len(t, meal.Ingredients, 1)
	assert.Equal(t, meal.ID, meal.Ingredients[0].MealID)

	loaded, err := s.Meal(ctx, meal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Burger", loaded.Name)
	require.Len(t, loaded.Ingredients, 1)
	require.NotNil(t, loaded.Ingredients[0].Ingredient)
	assert.Equal(t, "Beef", loaded.Ingredients[0].Ingredient.Name)
	assert.Equal(t, 0.2, loaded.Ingredients[0].Quantity)

	_, err = s.Meal(ctx, 99999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	saveMeal(t, s, 2, "Salad", 0.4, 80, map[string]float64{"Tomatoes": 0.3})
	mine, err := s.Meals(ctx, meal.UserID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	all, err := s.Meals(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLogMealCreatesThenAccumulatesTracker(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, "log-meal")
	ctx := context.Background()

	meal := saveMeal(t, s, 1, "Burger", 6, 500, map[string]float64{"Beef": 0.2})

	first, err := s.LogMeal(ctx, &models.DailyMeal{UserID: 1, MealID: meal.ID, Date: "2024-06-10", CarbonFootprint: 6}, "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.TotalMeals)
	assert.InDelta(t, 6, first.TotalCarbonFootprint, 1e-9)
	assert.InDelta(t, 6, first.AverageCarbonPerMeal, 1e-9)

	second, err := s.LogMeal(ctx, &models.DailyMeal{UserID: 1, MealID: meal.ID, Date: "2024-06-14", CarbonFootprint: 3}, "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(2), second.TotalMeals)
	assert.InDelta(t, 9, second.TotalCarbonFootprint, 1e-9)
	assert.InDelta(t, 4.5, second.AverageCarbonPerMeal, 1e-9)

	tracker, found, err := s.WeeklyTracker(ctx, 1, "2024-06-10")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(2), tracker.TotalMeals)

	_, found, err = s.WeeklyTracker(ctx, 1, "2024-06-17")
	require.NoError(t, err)
	assert.False(t, found)
}

// The mock database runs on one connection, so this covers accumulation across
// goroutines; the SQL-level increment is checked by the upsert statement test.
func TestLogMealConcurrentUpdatesAreNotLost(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, "log-meal-concurrent")
	ctx := context.Background()

	meal := saveMeal(t, s, 1, "Lentil stew", 1.5, 400, map[string]float64{"Lentils": 0.2})

	const logs = 12
	var wg sync.WaitGroup
	errs := make(chan error, logs)
	for i := 0; i < logs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.LogMeal(ctx, &models.DailyMeal{UserID: 1, MealID: meal.ID, Date: "2024-06-12", CarbonFootprint: 1.5}, "2024-06-10")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	tracker, found, err := s.WeeklyTracker(ctx, 1, "2024-06-10")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(logs), tracker.TotalMeals)
	assert.InDelta(t, 1.5*logs, tracker.TotalCarbonFootprint, 1e-6)
	assert.InDelta(t, 1.5, tracker.AverageCarbonPerMeal, 1e-6)

	totals, err := s.CarbonTotals(ctx, 1, "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(logs), totals.MealCount)
}

func TestWeeklyTrackerUpsertIncrementsInDatabase(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, "upsert-sql")

	sql := s.DB().ToSQL(func(tx *gorm.DB) *gorm.DB {
		return upsertWeeklyTracker(tx, 1, "2024-06-10", 1.5)
	})

	assert.Regexp(t, "ON CONFLICT \\(`user_id`, ?`week_start_date`\\) DO UPDATE SET", sql)
	assert.Contains(t, sql, "`total_meals`=weekly_trackers.total_meals + 1")
	assert.Regexp(t, "`total_carbon_footprint`=weekly_trackers\\.total_carbon_footprint \\+ 1\\.50*[ ,]", sql)
	assert.Regexp(t, "`average_carbon_per_meal`=\\(weekly_trackers\\.total_carbon_footprint \\+ 1\\.50*\\) / \\(weekly_trackers\\.total_meals \\+ 1\\)", sql)
	assert.NotRegexp(t, "`total_meals`=[0-9]", sql)

	// ToSQL only renders the statement.
	_, found, err := s.WeeklyTracker(context.Background(), 1, "2024-06-10")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLogMealRollsBackWhenTrackerUpdateFails(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, "log-meal-rollback")
	ctx := context.Background()

	meal := saveMeal(t, s, 1, "Burger", 6, 500, map[string]float64{"Beef": 0.2})
	require.NoError(t, s.DB().Migrator().DropTable(&models.WeeklyTracker{}))

	_, err := s.LogMeal(ctx, &models.DailyMeal{UserID: 1, MealID: meal.ID, Date: "2024-06-10", CarbonFootprint: 6}, "2024-06-10")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrAggregationConsistency)

	var logged int64
	require.NoError(t, s.DB().Model(&models.DailyMeal{}).Count(&logged).Error)
	assert.Zero(t, logged)
}

func TestHistoryDailyAndTotals(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, "history")
	ctx := context.Background()

	burger := saveMeal(t, s, 1, "Burger", 6, 500, map[string]float64{"Beef": 0.2})
	salad := saveMeal(t, s, 1, "Salad", 1, 120, map[string]float64{"Tomatoes": 0.3})

	logs := []struct {
		meal   *models.Meal
		date   string
		week   string
		carbon float64
	}{
		{burger, "2024-06-03", "2024-06-03", 6},
		{salad, "2024-06-11", "2024-06-10", 1},
		{burger, "2024-06-12", "2024-06-10", 6},
	}
	for _, l := range logs {
		_, err := s.LogMeal(ctx, &models.DailyMeal{UserID: 1, MealID: l.meal.ID, Date: l.date, CarbonFootprint: l.carbon}, l.week)
		require.NoError(t, err)
	}

	history, err := s.WeeklyHistory(ctx, 1, 12)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2024-06-10", history[0].WeekStartDate)
	assert.Equal(t, "2024-06-03", history[1].WeekStartDate)

	daily, err := s.DailyMeals(ctx, 1, "2024-06-10", "2024-06-16")
	require.NoError(t, err)
	require.Len(t, daily, 2)
	assert.Equal(t, "2024-06-12", daily[0].Date)
	assert.Equal(t, "Burger", daily[0].MealName)
	assert.Equal(t, "Salad", daily[1].MealName)

	week, err := s.CarbonTotals(ctx, 1, "2024-06-10", "2024-06-16")
	require.NoError(t, err)
	assert.Equal(t, int64(2), week.MealCount)
	assert.InDelta(t, 7, week.TotalCarbonFootprint, 1e-9)

	all, err := s.CarbonTotals(ctx, 1, "", "")
	require.NoError(t, err)
	assert.InDelta(t, 13, all.TotalCarbonFootprint, 1e-9)
	assert.InDelta(t, 13.0/3, all.AveragePerMeal, 1e-9)

	avg, err := s.WeeklyAverage(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, 6.5, avg, 1e-9)

	calories, err := s.Calories(ctx, 1, "2024-06-10", "2024-06-16")
	require.NoError(t, err)
	assert.Equal(t, int64(2), calories.DaysLogged)
	assert.InDelta(t, 310, calories.AverageCalories, 1e-9)
}

func TestAggregatesForNewUserAreZero(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, "empty-user")
	ctx := context.Background()

	totals, err := s.CarbonTotals(ctx, 42, "", "")
	require.NoError(t, err)
	assert.Equal(t, Totals{}, totals)

	avg, err := s.WeeklyAverage(ctx, 42)
	require.NoError(t, err)
	assert.Zero(t, avg)

	calories, err := s.Calories(ctx, 42, "2024-01-01", "2024-01-07")
	require.NoError(t, err)
	assert.Equal(t, CalorieSummary{}, calories)

	top, err := s.TopIngredients(ctx, 42, 10)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestIngredientInsightQueries(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, "insight-queries")
	ctx := context.Background()

	burger := saveMeal(t, s, 1, "Burger", 5.4, 500, map[string]float64{"Beef": 0.2, "Tomatoes": 0.1})
	stew := saveMeal(t, s, 1, "Stew", 1, 300, map[string]float64{"Lentils": 0.5, "Tomatoes": 0.2})

	top, err := s.TopIngredients(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "Lentils", top[0].Name)
	assert.Equal(t, "Tomatoes", top[1].Name)
	assert.InDelta(t, 0.3, top[1].TotalQuantity, 1e-9)
	assert.Equal(t, int64(2), top[1].MealCount)

	distribution, err := s.CategoryDistribution(ctx, 1)
	require.NoError(t, err)
	require.NotEmpty(t, distribution)
	assert.Equal(t, "Meat", distribution[0].Category)
	assert.InDelta(t, 5.4, distribution[0].TotalCarbon, 1e-9)

	for _, meal := range []*models.Meal{burger, burger, stew} {
		_, err := s.LogMeal(ctx, &models.DailyMeal{UserID: 1, MealID: meal.ID, Date: "2024-06-10", CarbonFootprint: meal.TotalCarbonFootprint}, "2024-06-10")
		require.NoError(t, err)
	}

	logged, err := s.HighCarbonLoggedIngredients(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, logged, 3)
	assert.Equal(t, "Beef", logged[0].Name)
	assert.Equal(t, int64(2), logged[0].TimesEaten)
	assert.Equal(t, "Tomatoes", logged[1].Name)
	assert.Equal(t, int64(3), logged[1].TimesEaten)
	assert.Equal(t, "Lentils", logged[2].Name)
}

func TestInsightQueriesSkipSoftDeletedMeals(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, "insight-soft-delete")
	ctx := context.Background()

	burger := saveMeal(t, s, 1, "Burger", 5.4, 500, map[string]float64{"Beef": 0.2})
	stew := saveMeal(t, s, 1, "Stew", 1, 300, map[string]float64{"Lentils": 0.5})
	for _, meal := range []*models.Meal{burger, stew} {
		_, err := s.LogMeal(ctx, &models.DailyMeal{UserID: 1, MealID: meal.ID, Date: "2024-06-11", CarbonFootprint: meal.TotalCarbonFootprint}, "2024-06-10")
		require.NoError(t, err)
	}
	require.NoError(t, s.DB().Delete(&models.Meal{}, burger.ID).Error)

	calories, err := s.Calories(ctx, 1, "2024-06-10", "2024-06-16")
	require.NoError(t, err)
	assert.InDelta(t, 300, calories.AverageCalories, 1e-9)
	assert.Equal(t, int64(1), calories.DaysLogged)

	top, err := s.TopIngredients(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Lentils", top[0].Name)

	distribution, err := s.CategoryDistribution(ctx, 1)
	require.NoError(t, err)
	for _, category := range distribution {
		assert.NotEqual(t, "Meat", category.Category)
	}

	logged, err := s.HighCarbonLoggedIngredients(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, logged, 1)
	assert.Equal(t, "Lentils", logged[0].Name)
}

func TestUsers(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, "users")
	ctx := context.Background()

	demo, err := s.UserByEmail(ctx, " Avery@EcoBite.app ")
	require.NoError(t, err)
	assert.Equal(t, "Avery Green", demo.Name)

	user := &models.User{Email: "Cook@Example.com", PasswordHash: "hash", Name: "Cook"}
	require.NoError(t, s.CreateUser(ctx, user))
	assert.Equal(t, "cook@example.com", user.Email)

	loaded, err := s.User(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cook", loaded.Name)

	_, err = s.UserByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
