package models

import "testing"

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"lowercases", "Avery@EcoBite.App", "avery@ecobite.app"},
		{"trims", "  cook@example.com ", "cook@example.com"},
		{"empty", "", ""},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeEmail(tt.value); got != tt.want {
				t.Fatalf("NormalizeEmail(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestIngredientNutritionRoundTrip(t *testing.T) {
	t.Parallel()

	ing := NewIngredient("Lentils", "Plant Protein", 0.9, Nutrition{Protein: 9, Carbs: 20, Fats: 0.4, Calories: 116})
	got := ing.Nutrition()
	if got.Calories != 116 || got.Protein != 9 {
		t.Fatalf("Nutrition() = %+v", got)
	}
}
