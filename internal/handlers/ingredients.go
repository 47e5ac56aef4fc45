package handlers

import (
	"net/http"

	"ecobite/internal/footprint"
	"ecobite/models"
)

func projectIngredients(ingredients []models.Ingredient) []footprint.IngredientSnapshot {
	out := make([]footprint.IngredientSnapshot, 0, len(ingredients))
	for _, ingredient := range ingredients {
		out = append(out, footprint.Snapshot(ingredient))
	}
	return out
}

// ListIngredients returns the full catalog ordered by name.
func ListIngredients(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}
	ingredients, err := catalog.Ingredients(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to fetch ingredients")
		return
	}
	writeJSON(w, http.StatusOK, projectIngredients(ingredients))
}

// ShowIngredient returns one catalog entry.
func ShowIngredient(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "Failed to fetch ingredient")
		return
	}
	ingredient, err := catalog.Ingredient(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Failed to fetch ingredient")
		return
	}
	writeJSON(w, http.StatusOK, footprint.Snapshot(*ingredient))
}

// SearchIngredients matches the {query} path segment against names and categories.
func SearchIngredients(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}
	ingredients, err := catalog.SearchIngredients(r.Context(), r.PathValue("query"))
	if err != nil {
		writeError(w, r, err, "Failed to search ingredients")
		return
	}
	writeJSON(w, http.StatusOK, projectIngredients(ingredients))
}
