package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ecobite/internal/catalog"
	"ecobite/internal/config"
	"ecobite/internal/db"
	applog "ecobite/internal/log"
	"ecobite/internal/store"
	"ecobite/models"
)

func main() {
	path := "ingredients.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	if err := run(context.Background(), path); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("catalog path must not be empty")
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("locate catalog: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := db.Configure(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	imported, err := importFile(ctx, store.New(database), path)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Imported %d ingredients from %s\n", imported, filepath.Base(path))
	return nil
}

// importFile upserts every ingredient in path by name. Each record commits on
// its own, so a failure leaves earlier records in place.
func importFile(ctx context.Context, st *store.Store, path string) (int, error) {
	ingredients, err := readCatalog(path)
	if err != nil {
		return 0, fmt.Errorf("read catalog: %w", err)
	}

	imported := 0
	for idx := range ingredients {
		ingredient := &ingredients[idx]
		if err := st.UpsertIngredient(ctx, ingredient); err != nil {
			return imported, fmt.Errorf("record %d (%s): %w", idx+1, ingredient.Name, err)
		}
		applog.Debug(ctx, "ingredient imported", "name", ingredient.Name, "category", ingredient.Category)
		imported++
	}
	return imported, nil
}

func readCatalog(path string) ([]models.Ingredient, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".pdf" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return catalog.ParsePDF(data)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch ext {
	case ".csv":
		return catalog.ParseCSV(file)
	case ".yaml", ".yml":
		return catalog.ParseYAML(file)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
}
