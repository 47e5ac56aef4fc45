// Package substitution ranks lower-carbon replacements for an ingredient by a
// weighted mix of category match, nutritional similarity and carbon reduction.
package substitution

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"ecobite/internal/apperr"
	"ecobite/internal/footprint"
	applog "ecobite/internal/log"
	"ecobite/models"
)

const (
	// CandidateLimit caps how many lower-carbon candidates are loaded from the
	// catalog, cheapest first, before scoring.
	CandidateLimit = 20
	// MaxAlternatives is the length of a ranked result.
	MaxAlternatives = 5
	// MealAlternatives is how many alternatives are suggested per meal line.
	MealAlternatives = 3

	categoryWeight  = 0.3
	nutritionWeight = 0.3
	carbonWeight    = 0.4
)

// Alternative is a scored replacement candidate.
type Alternative struct {
	footprint.IngredientSnapshot
	CategorySimilarity       float64 `json:"category_similarity"`
	NutritionSimilarityScore float64 `json:"nutrition_similarity_score"`
	CarbonReductionPercent   float64 `json:"carbon_reduction_percent"`
	OverallScore             float64 `json:"overall_score"`
}

// FindAlternatives scores every pool entry with strictly lower carbon than
// target and returns the best MaxAlternatives, highest overall score first and
// ties broken by ascending ID. Scores are rounded to two decimals before
// ranking so the reported order is reproducible.
func FindAlternatives(target models.Ingredient, pool []models.Ingredient) []Alternative {
	targetNutrition := target.Nutrition()
	scored := make([]Alternative, 0, len(pool))
	for _, candidate := range pool {
		if candidate.ID == target.ID || candidate.CarbonFootprintPerKg >= target.CarbonFootprintPerKg {
			continue
		}
		scored = append(scored, score(target, targetNutrition, candidate))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].OverallScore != scored[j].OverallScore {
			return scored[i].OverallScore > scored[j].OverallScore
		}
		return scored[i].ID < scored[j].ID
	})

	if len(scored) > MaxAlternatives {
		scored = scored[:MaxAlternatives]
	}
	return scored
}

func score(target models.Ingredient, targetNutrition models.Nutrition, candidate models.Ingredient) Alternative {
	category := 0.0
	if candidate.Category == target.Category {
		category = 100
	}

	nutrition := NutritionSimilarity(targetNutrition, candidate.Nutrition())
	reduction := (target.CarbonFootprintPerKg - candidate.CarbonFootprintPerKg) / target.CarbonFootprintPerKg * 100
	overall := category*categoryWeight + nutrition*nutritionWeight + math.Min(reduction, 100)*carbonWeight

	return Alternative{
		IngredientSnapshot:       footprint.Snapshot(candidate),
		CategorySimilarity:       category,
		NutritionSimilarityScore: footprint.Round2(nutrition),
		CarbonReductionPercent:   footprint.Round2(reduction),
		OverallScore:             footprint.Round2(overall),
	}
}

// NutritionSimilarity is 100 minus the mean relative difference of protein,
// carbs, fats and calories, floored at 0. A zero baseline falls back to the raw
// absolute difference for that nutrient.
func NutritionSimilarity(target, candidate models.Nutrition) float64 {
	avg := (normalizedDiff(target.Protein, candidate.Protein) +
		normalizedDiff(target.Carbs, candidate.Carbs) +
		normalizedDiff(target.Fats, candidate.Fats) +
		normalizedDiff(target.Calories, candidate.Calories)) / 4
	return math.Max(0, 100-avg)
}

func normalizedDiff(target, candidate float64) float64 {
	diff := math.Abs(candidate - target)
	if target > 0 {
		return diff / target * 100
	}
	return diff
}

// Catalog supplies targets and candidate pools.
type Catalog interface {
	Ingredient(ctx context.Context, id uint) (*models.Ingredient, error)
	LowerCarbonCandidates(ctx context.Context, target models.Ingredient, limit int) ([]models.Ingredient, error)
}

// Service loads candidates from a catalog and ranks them.
type Service struct {
	catalog Catalog
}

func NewService(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// Ranking is a target ingredient with its ranked alternatives.
type Ranking struct {
	Original     footprint.IngredientSnapshot `json:"original_ingredient"`
	Quantity     float64                      `json:"quantity,omitempty"`
	Alternatives []Alternative                `json:"alternatives"`
}

// Alternatives ranks replacements for the ingredient with the given ID.
func (s *Service) Alternatives(ctx context.Context, ingredientID uint) (Ranking, error) {
	target, err := s.catalog.Ingredient(ctx, ingredientID)
	if err != nil {
		return Ranking{}, err
	}
	return s.AlternativesFor(ctx, *target)
}

// AlternativesFor ranks replacements for an already loaded ingredient.
func (s *Service) AlternativesFor(ctx context.Context, target models.Ingredient) (Ranking, error) {
	pool, err := s.catalog.LowerCarbonCandidates(ctx, target, CandidateLimit)
	if err != nil {
		return Ranking{}, fmt.Errorf("load candidates for ingredient %d: %w", target.ID, err)
	}
	return Ranking{
		Original:     footprint.Snapshot(target),
		Alternatives: FindAlternatives(target, pool),
	}, nil
}

// ForMeal suggests up to MealAlternatives replacements per line item. An empty
// list yields no suggestions. Lines with an unknown ingredient or no cheaper
// candidate are omitted.
func (s *Service) ForMeal(ctx context.Context, items []footprint.LineItem) ([]Ranking, error) {
	recommendations := make([]Ranking, 0, len(items))
	if len(items) == 0 {
		return recommendations, nil
	}
	if err := footprint.Validate(items); err != nil {
		return nil, err
	}

	for _, item := range items {
		ranking, err := s.Alternatives(ctx, item.IngredientID)
		if errors.Is(err, apperr.ErrNotFound) {
			applog.Debug(ctx, "skipping unknown ingredient in meal recommendations", "ingredientID", item.IngredientID)
			continue
		}
		if err != nil {
			return nil, err
		}
		if len(ranking.Alternatives) == 0 {
			continue
		}
		if len(ranking.Alternatives) > MealAlternatives {
			ranking.Alternatives = ranking.Alternatives[:MealAlternatives]
		}
		ranking.Quantity = item.QuantityKg
		recommendations = append(recommendations, ranking)
	}
	return recommendations, nil
}
