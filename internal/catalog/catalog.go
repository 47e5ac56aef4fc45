// Package catalog reads ingredient catalog files. The embedded default catalog
// seeds development databases; CSV, YAML and PDF sheets feed the importer.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"gopkg.in/yaml.v3"

	"ecobite/models"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var (
	numberPattern   = regexp.MustCompile(`[-+]?\d*\.?\d+`)
	leadingNumber   = regexp.MustCompile(`^\s*[-+]?(\d+\.?\d*|\.\d+)`)
	cleanWhitespace = regexp.MustCompile(`\s+`)
)

// CarbonColumn holds kg CO2e per kg. It must carry a number on every row.
const CarbonColumn = "Carbon Footprint (kg CO2e/kg)"

// Columns is the header expected in CSV sheets and the column order of PDF rows.
var Columns = []string{"Name", "Category", CarbonColumn, "Protein", "Carbs", "Fats", "Calories"}

type yamlEntry struct {
	Name        string           `yaml:"name"`
	Category    string           `yaml:"category"`
	CarbonPerKg *float64         `yaml:"carbon_footprint_per_kg"`
	Nutrition   models.Nutrition `yaml:"nutrition"`
}

type yamlFile struct {
	Ingredients []yamlEntry `yaml:"ingredients"`
}

// Default returns the embedded seed catalog.
func Default() ([]models.Ingredient, error) {
	return ParseYAML(bytes.NewReader(defaultCatalog))
}

// ParseYAML decodes a catalog in the seed file format.
func ParseYAML(r io.Reader) ([]models.Ingredient, error) {
	var file yamlFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catalog is empty")
		}
		return nil, fmt.Errorf("decode yaml catalog: %w", err)
	}

	ingredients := make([]models.Ingredient, 0, len(file.Ingredients))
	for idx, entry := range file.Ingredients {
		if entry.CarbonPerKg == nil {
			return nil, fmt.Errorf("entry %d (%s): carbon_footprint_per_kg is required", idx+1, entry.Name)
		}
		ingredient := models.NewIngredient(
			normalizeText(entry.Name),
			normalizeText(entry.Category),
			*entry.CarbonPerKg,
			entry.Nutrition,
		)
		if err := Validate(ingredient); err != nil {
			return nil, fmt.Errorf("entry %d: %w", idx+1, err)
		}
		ingredients = append(ingredients, ingredient)
	}
	return ingredients, nil
}

// ParseCSV reads a sheet whose header contains Columns.
func ParseCSV(r io.Reader) ([]models.Ingredient, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	header := rows[0]
	if err := checkHeader(header); err != nil {
		return nil, err
	}
	ingredients := make([]models.Ingredient, 0, len(rows)-1)
	for idx, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		record := make(map[string]string, len(header))
		for col, key := range header {
			if col >= len(row) {
				continue
			}
			record[strings.TrimSpace(key)] = strings.TrimSpace(row[col])
		}

		ingredient, err := buildIngredient(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", idx+2, err)
		}
		ingredients = append(ingredients, ingredient)
	}

	return ingredients, nil
}

// ParsePDF extracts the plain text of every page and reads each non-empty line
// as a comma-separated row in Columns order. Lines that do not carry a numeric
// carbon column, such as titles and the header, are skipped.
func ParsePDF(data []byte) ([]models.Ingredient, error) {
	text, err := extractTextFromPDF(data)
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	return parseTextRows(text)
}

func extractTextFromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

func parseTextRows(text string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	for lineNo, line := range strings.Split(text, "\n") {
		fields := strings.Split(line, ",")
		if len(fields) < len(Columns) {
			continue
		}
		if !leadingNumber.MatchString(fields[2]) {
			continue
		}
		record := make(map[string]string, len(Columns))
		for col, key := range Columns {
			record[key] = strings.TrimSpace(fields[col])
		}
		ingredient, err := buildIngredient(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
		}
		ingredients = append(ingredients, ingredient)
	}
	if len(ingredients) == 0 {
		return nil, errors.New("no catalog rows found")
	}
	return ingredients, nil
}

// checkHeader reports every entry of Columns missing from header.
func checkHeader(header []string) error {
	present := make(map[string]bool, len(header))
	for _, key := range header {
		present[strings.TrimSpace(key)] = true
	}
	var missing []string
	for _, key := range Columns {
		if !present[key] {
			missing = append(missing, strconv.Quote(key))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("csv header is missing column(s) %s", strings.Join(missing, ", "))
	}
	return nil
}

func buildIngredient(record map[string]string) (models.Ingredient, error) {
	name := normalizeText(record["Name"])
	carbon, ok := parseNumber(record[CarbonColumn])
	if !ok {
		return models.Ingredient{}, fmt.Errorf("%s: carbon footprint %q is not a number", name, record[CarbonColumn])
	}
	ingredient := models.NewIngredient(
		name,
		normalizeText(record["Category"]),
		carbon,
		models.Nutrition{
			Protein:  parseFirstNumber(record["Protein"]),
			Carbs:    parseFirstNumber(record["Carbs"]),
			Fats:     parseFirstNumber(record["Fats"]),
			Calories: parseFirstNumber(record["Calories"]),
		},
	)
	return ingredient, Validate(ingredient)
}

// Validate enforces the catalog invariants: a name, a category and
// non-negative finite numbers.
func Validate(ingredient models.Ingredient) error {
	if ingredient.Name == "" {
		return errors.New("ingredient name is required")
	}
	if ingredient.Category == "" {
		return fmt.Errorf("%s: category is required", ingredient.Name)
	}
	n := ingredient.Nutrition()
	values := map[string]float64{
		"carbon_footprint_per_kg": ingredient.CarbonFootprintPerKg,
		"protein":                 n.Protein,
		"carbs":                   n.Carbs,
		"fats":                    n.Fats,
		"calories":                n.Calories,
	}
	for field, value := range values {
		if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("%s: %s must be a non-negative number", ingredient.Name, field)
		}
	}
	return nil
}

func normalizeValue(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "N/A") {
		return ""
	}
	return value
}

func normalizeText(value string) string {
	value = normalizeValue(value)
	if value == "" {
		return value
	}
	value = cleanWhitespace.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

// parseFirstNumber reads optional nutrition cells; blanks and N/A count as 0.
func parseFirstNumber(value string) float64 {
	parsed, _ := parseNumber(value)
	return parsed
}

// parseNumber returns the first number in value and whether one was found.
func parseNumber(value string) (float64, bool) {
	value = normalizeValue(value)
	if value == "" {
		return 0, false
	}

	match := numberPattern.FindString(value)
	if match == "" {
		return 0, false
	}

	parsed, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}
