// Package footprint turns ingredient line items into carbon and calorie totals
// and a 0-100 sustainability score.
package footprint

import (
	"context"
	"math"

	"github.com/shopspring/decimal"

	"ecobite/internal/apperr"
	"ecobite/models"
)

// LineItem is one ingredient and its quantity in kilograms.
type LineItem struct {
	IngredientID uint    `json:"ingredient_id"`
	QuantityKg   float64 `json:"quantity"`
}

// IngredientSnapshot is the catalog data echoed back with each breakdown line.
type IngredientSnapshot struct {
	ID                   uint             `json:"id"`
	Name                 string           `json:"name"`
	Category             string           `json:"category"`
	CarbonFootprintPerKg float64          `json:"carbon_footprint_per_kg"`
	NutritionalValue     models.Nutrition `json:"nutritional_value"`
}

// Line is the computed contribution of a single line item.
type Line struct {
	Ingredient      IngredientSnapshot `json:"ingredient"`
	Quantity        float64            `json:"quantity"`
	CarbonFootprint float64            `json:"carbon_footprint"`
	Calories        float64            `json:"calories"`
}

// Result is the outcome of a meal calculation. Breakdown keeps input order.
type Result struct {
	TotalCarbonFootprint float64 `json:"total_carbon_footprint"`
	TotalCalories        float64 `json:"total_calories"`
	SustainabilityScore  float64 `json:"sustainability_score"`
	Breakdown            []Line  `json:"ingredients"`
}

// ItemResult is the outcome of a single-ingredient calculation.
type ItemResult struct {
	Line
	SustainabilityScore float64 `json:"sustainability_score"`
}

// Snapshot copies the fields of an ingredient that callers display.
func Snapshot(ingredient models.Ingredient) IngredientSnapshot {
	return IngredientSnapshot{
		ID:                   ingredient.ID,
		Name:                 ingredient.Name,
		Category:             ingredient.Category,
		CarbonFootprintPerKg: ingredient.CarbonFootprintPerKg,
		NutritionalValue:     ingredient.Nutrition(),
	}
}

// Validate checks the structural preconditions of a calculation: a non-empty
// list with positive, finite quantities.
func Validate(items []LineItem) error {
	if len(items) == 0 {
		return apperr.Invalid("ingredients array is required")
	}
	for idx, item := range items {
		q := item.QuantityKg
		if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
			return apperr.Invalid("item %d: quantity must be greater than zero", idx+1)
		}
	}
	return nil
}

// Calculate computes totals for items against catalog, keyed by ingredient ID.
// A missing ingredient aborts the whole calculation.
func Calculate(items []LineItem, catalog map[uint]models.Ingredient) (Result, error) {
	if err := Validate(items); err != nil {
		return Result{}, err
	}

	var totalCarbon, totalCalories float64
	breakdown := make([]Line, 0, len(items))
	for _, item := range items {
		ingredient, ok := catalog[item.IngredientID]
		if !ok {
			return Result{}, apperr.NotFound("ingredient", item.IngredientID)
		}
		carbon, calories := contribution(ingredient, item.QuantityKg)
		totalCarbon += carbon
		totalCalories += calories
		breakdown = append(breakdown, Line{
			Ingredient:      Snapshot(ingredient),
			Quantity:        item.QuantityKg,
			CarbonFootprint: Round2(carbon),
			Calories:        Round2(calories),
		})
	}

	return Result{
		TotalCarbonFootprint: Round2(totalCarbon),
		TotalCalories:        Round2(totalCalories),
		SustainabilityScore:  Round2(Score(totalCarbon)),
		Breakdown:            breakdown,
	}, nil
}

// CalculateIngredient scores a single ingredient quantity on its own.
func CalculateIngredient(ingredient models.Ingredient, quantityKg float64) (ItemResult, error) {
	if err := Validate([]LineItem{{IngredientID: ingredient.ID, QuantityKg: quantityKg}}); err != nil {
		return ItemResult{}, err
	}
	carbon, calories := contribution(ingredient, quantityKg)
	return ItemResult{
		Line: Line{
			Ingredient:      Snapshot(ingredient),
			Quantity:        quantityKg,
			CarbonFootprint: Round2(carbon),
			Calories:        Round2(calories),
		},
		SustainabilityScore: Round2(Score(carbon)),
	}, nil
}

// contribution converts kg of an ingredient to kg CO2e and kcal. Calorie
// density is stored per 100 g.
func contribution(ingredient models.Ingredient, quantityKg float64) (carbon, calories float64) {
	carbon = quantityKg * ingredient.CarbonFootprintPerKg
	calories = quantityKg * 1000 * ingredient.Nutrition().Calories / 100
	return carbon, calories
}

// Score maps a meal's kg CO2e to the product's 0-100 sustainability scale.
// The four bands meet at 5, 10 and 15 kg and the result never increases with carbon.
func Score(carbon float64) float64 {
	var score float64
	switch {
	case carbon <= 5:
		score = math.Max(80, 100-carbon*4)
	case carbon <= 10:
		score = math.Max(60, 80-(carbon-5)*4)
	case carbon <= 15:
		score = math.Max(40, 60-(carbon-10)*4)
	default:
		score = math.Max(0, 40-(carbon-15)*2.67)
	}
	return math.Min(100, math.Max(0, score))
}

// Round2 rounds half away from zero to two decimal places.
func Round2(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// Catalog resolves ingredients for a calculation.
type Catalog interface {
	IngredientsByID(ctx context.Context, ids []uint) (map[uint]models.Ingredient, error)
	Ingredient(ctx context.Context, id uint) (*models.Ingredient, error)
}

// Service runs calculations against a catalog.
type Service struct {
	catalog Catalog
}

func NewService(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// CalculateMeal validates items, loads their ingredients and computes totals.
func (s *Service) CalculateMeal(ctx context.Context, items []LineItem) (Result, error) {
	if err := Validate(items); err != nil {
		return Result{}, err
	}
	catalog, err := s.catalog.IngredientsByID(ctx, IngredientIDs(items))
	if err != nil {
		return Result{}, err
	}
	return Calculate(items, catalog)
}

// CalculateIngredient loads one ingredient and computes its contribution.
func (s *Service) CalculateIngredient(ctx context.Context, item LineItem) (ItemResult, error) {
	if err := Validate([]LineItem{item}); err != nil {
		return ItemResult{}, err
	}
	ingredient, err := s.catalog.Ingredient(ctx, item.IngredientID)
	if err != nil {
		return ItemResult{}, err
	}
	return CalculateIngredient(*ingredient, item.QuantityKg)
}

// IngredientIDs returns the distinct ingredient IDs of items in first-seen order.
func IngredientIDs(items []LineItem) []uint {
	seen := make(map[uint]struct{}, len(items))
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.IngredientID]; ok {
			continue
		}
		seen[item.IngredientID] = struct{}{}
		ids = append(ids, item.IngredientID)
	}
	return ids
}
