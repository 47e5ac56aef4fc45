package handlers

import (
	"net/http"
	"time"

	"ecobite/internal/meals"
	"ecobite/internal/tracking"
	"ecobite/models"
)

type mealIngredientResponse struct {
	IngredientID         uint             `json:"ingredient_id"`
	Quantity             float64          `json:"quantity"`
	Name                 string           `json:"name"`
	Category             string           `json:"category"`
	CarbonFootprintPerKg float64          `json:"carbon_footprint_per_kg"`
	NutritionalValue     models.Nutrition `json:"nutritional_value"`
}

type mealResponse struct {
	ID                   uint                     `json:"id"`
	UserID               *uint                    `json:"user_id"`
	Name                 string                   `json:"name"`
	Description          string                   `json:"description"`
	TotalCarbonFootprint float64                  `json:"total_carbon_footprint"`
	TotalCalories        float64                  `json:"total_calories"`
	CreatedAt            time.Time                `json:"created_at"`
	Ingredients          []mealIngredientResponse `json:"ingredients,omitempty"`
}

func projectMeal(meal models.Meal) mealResponse {
	resp := mealResponse{
		ID:                   meal.ID,
		UserID:               meal.UserID,
		Name:                 meal.Name,
		Description:          meal.Description,
		TotalCarbonFootprint: meal.TotalCarbonFootprint,
		TotalCalories:        meal.TotalCalories,
		CreatedAt:            meal.CreatedAt,
	}
	for _, line := range meal.Ingredients {
		item := mealIngredientResponse{IngredientID: line.IngredientID, Quantity: line.Quantity}
		if line.Ingredient != nil {
			item.Name = line.Ingredient.Name
			item.Category = line.Ingredient.Category
			item.CarbonFootprintPerKg = line.Ingredient.CarbonFootprintPerKg
			item.NutritionalValue = line.Ingredient.Nutrition()
		}
		resp.Ingredients = append(resp.Ingredients, item)
	}
	return resp
}

// ListMeals returns saved meals newest first, optionally filtered by ?user_id=.
func ListMeals(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}
	userID, err := queryID(r, "user_id")
	if err != nil {
		writeError(w, r, err, "Failed to fetch meals")
		return
	}
	list, err := mealBook.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "Failed to fetch meals")
		return
	}
	out := make([]mealResponse, 0, len(list))
	for _, meal := range list {
		out = append(out, projectMeal(meal))
	}
	writeJSON(w, http.StatusOK, out)
}

// ShowMeal returns a meal with its ingredients.
func ShowMeal(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "Failed to fetch meal")
		return
	}
	meal, err := mealBook.Meal(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Failed to fetch meal")
		return
	}
	writeJSON(w, http.StatusOK, projectMeal(*meal))
}

// CreateMeal saves a named meal. Without an explicit user_id the meal is
// owned by the signed-in user, if any.
func CreateMeal(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}
	var req meals.NewMeal
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "Failed to create meal")
		return
	}
	if req.UserID == nil {
		if id, ok := currentUserID(r); ok {
			req.UserID = &id
		}
	}

	meal, err := mealBook.CreateMeal(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "Failed to create meal")
		return
	}
	writeJSON(w, http.StatusCreated, projectMeal(*meal))
}

type logMealRequest struct {
	UserID uint   `json:"user_id"`
	Date   string `json:"date"`
}

type dailyMealResponse struct {
	ID              uint    `json:"id"`
	UserID          uint    `json:"user_id"`
	MealID          uint    `json:"meal_id"`
	Date            string  `json:"date"`
	CarbonFootprint float64 `json:"carbon_footprint"`
}

// LogMeal records consumption of the {id} meal on a date and updates the
// weekly tracker.
func LogMeal(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}
	mealID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "Failed to log meal")
		return
	}
	var req logMealRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "Failed to log meal")
		return
	}
	if req.UserID == 0 {
		if id, ok := currentUserID(r); ok {
			req.UserID = id
		}
	}

	logged, err := tracker.LogMeal(r.Context(), mealID, req.UserID, req.Date)
	if err != nil {
		writeError(w, r, err, "Failed to log meal")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Meal logged successfully",
		"daily_meal": dailyMealResponse{
			ID:              logged.DailyMeal.ID,
			UserID:          logged.DailyMeal.UserID,
			MealID:          logged.DailyMeal.MealID,
			Date:            logged.DailyMeal.Date,
			CarbonFootprint: logged.DailyMeal.CarbonFootprint,
		},
		"weekly_tracker": tracking.Summarize(logged.WeeklyTracker),
	})
}
