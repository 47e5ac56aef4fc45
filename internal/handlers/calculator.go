package handlers

import (
	"net/http"

	"ecobite/internal/footprint"
	applog "ecobite/internal/log"
)

type calculateMealRequest struct {
	Ingredients []footprint.LineItem `json:"ingredients"`
}

// CalculateMeal computes the footprint of an ad-hoc ingredient list.
func CalculateMeal(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}
	var req calculateMealRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "Failed to calculate carbon footprint")
		return
	}

	result, err := calculator.CalculateMeal(r.Context(), req.Ingredients)
	if err != nil {
		writeError(w, r, err, "Failed to calculate carbon footprint")
		return
	}

	applog.Debug(r.Context(), "meal calculated", "items", len(req.Ingredients), "carbon", result.TotalCarbonFootprint, "score", result.SustainabilityScore)
	writeJSON(w, http.StatusOK, result)
}

// CalculateIngredient computes the footprint of one ingredient quantity.
func CalculateIngredient(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}
	var req footprint.LineItem
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "Failed to calculate carbon footprint")
		return
	}

	result, err := calculator.CalculateIngredient(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "Failed to calculate carbon footprint")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
