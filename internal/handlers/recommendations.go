package handlers

import (
	"net/http"
)

// Alternatives ranks lower-carbon replacements for the {id} ingredient.
func Alternatives(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "Failed to fetch recommendations")
		return
	}
	ranking, err := substitutes.Alternatives(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Failed to fetch recommendations")
		return
	}
	writeJSON(w, http.StatusOK, ranking)
}

// MealRecommendations suggests replacements for every line of a meal.
func MealRecommendations(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}
	var req calculateMealRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "Failed to fetch recommendations")
		return
	}
	recommendations, err := substitutes.ForMeal(r.Context(), req.Ingredients)
	if err != nil {
		writeError(w, r, err, "Failed to fetch recommendations")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"recommendations": recommendations})
}
