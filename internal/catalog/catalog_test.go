package catalog

import (
	"strings"
	"testing"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	t.Parallel()

	ingredients, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if len(ingredients) < 20 {
		t.Fatalf("expected a populated seed catalog, got %d entries", len(ingredients))
	}

	seen := map[string]bool{}
	for _, ing := range ingredients {
		if seen[ing.Name] {
			t.Fatalf("duplicate ingredient %q in seed catalog", ing.Name)
		}
		seen[ing.Name] = true
	}
	if !seen["Beef"] || !seen["Lentils"] {
		t.Fatal("expected Beef and Lentils in seed catalog")
	}
}

func TestParseCSV(t *testing.T) {
	t.Parallel()

	sheet := strings.Join([]string{
		strings.Join(Columns, ","),
		"Seitan, Plant Protein, 1.2 kg, 25, 14, 1.9, 370",
		"Quinoa,Grains,0.9,N/A,21,1.9,120",
	}, "\n")

	ingredients, err := ParseCSV(strings.NewReader(sheet))
	if err != nil {
		t.Fatalf("ParseCSV error = %v", err)
	}
	if len(ingredients) != 2 {
		t.Fatalf("expected 2 ingredients, got %d", len(ingredients))
	}
	if ingredients[0].Name != "Seitan" || ingredients[0].CarbonFootprintPerKg != 1.2 {
		t.Fatalf("unexpected first ingredient: %+v", ingredients[0])
	}
	if got := ingredients[0].Nutrition().Calories; got != 370 {
		t.Fatalf("expected 370 calories, got %v", got)
	}
	if ingredients[1].CarbonFootprintPerKg != 0.9 || ingredients[1].Nutrition().Protein != 0 {
		t.Fatalf("expected N/A protein to parse as 0, got %+v", ingredients[1])
	}
}

func TestParseCSVRejectsInvalidRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		sheet string
	}{
		{"empty", ""},
		{"missing name", strings.Join(Columns, ",") + "\n,Grains,1,1,1,1,1"},
		{"negative carbon", strings.Join(Columns, ",") + "\nRice,Grains,-2,1,1,1,1"},
		{"renamed carbon column", "Name,Category,Carbon,Protein,Carbs,Fats,Calories\nBeef,Meat,60,26,0,15,250"},
		{"missing carbon column", "Name,Category,Protein,Carbs,Fats,Calories\nBeef,Meat,26,0,15,250"},
		{"N/A carbon", strings.Join(Columns, ",") + "\nQuinoa,Grains,N/A,4.4,21,1.9,120"},
		{"blank carbon", strings.Join(Columns, ",") + "\nQuinoa,Grains,,4.4,21,1.9,120"},
		{"text carbon", strings.Join(Columns, ",") + "\nQuinoa,Grains,unknown,4.4,21,1.9,120"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := ParseCSV(strings.NewReader(tt.sheet)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseYAML(t *testing.T) {
	t.Parallel()

	doc := `
ingredients:
  - name: Mushrooms
    category: Vegetables
    carbon_footprint_per_kg: 0.5
    nutrition: {protein: 3.1, carbs: 3.3, fats: 0.3, calories: 22}
`
	ingredients, err := ParseYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseYAML error = %v", err)
	}
	if len(ingredients) != 1 || ingredients[0].Nutrition().Protein != 3.1 {
		t.Fatalf("unexpected result: %+v", ingredients)
	}

	if _, err := ParseYAML(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty document")
	}

	missingCarbon := `
ingredients:
  - name: Mushrooms
    category: Vegetables
    nutrition: {protein: 3.1, carbs: 3.3, fats: 0.3, calories: 22}
`
	if _, err := ParseYAML(strings.NewReader(missingCarbon)); err == nil {
		t.Fatal("expected error when carbon_footprint_per_kg is absent")
	}
}

func TestParseTextRowsSkipsHeadings(t *testing.T) {
	t.Parallel()

	text := "EcoBite Catalog Sheet\n" + strings.Join(Columns, ",") + "\nKale,Vegetables,0.4,2.9,4.4,1.5,35\n\n"
	ingredients, err := parseTextRows(text)
	if err != nil {
		t.Fatalf("parseTextRows error = %v", err)
	}
	if len(ingredients) != 1 || ingredients[0].Name != "Kale" {
		t.Fatalf("unexpected rows: %+v", ingredients)
	}

	if _, err := parseTextRows("nothing useful here"); err == nil {
		t.Fatal("expected error when no rows are present")
	}
}

func TestParsePDFRejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := ParsePDF([]byte("not a pdf")); err == nil {
		t.Fatal("expected error for non-pdf input")
	}
}
