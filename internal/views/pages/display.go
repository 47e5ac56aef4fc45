package pages

import (
	"strconv"
	"strings"
	"time"
)

// DefaultDash returns a dash when the provided value is empty or whitespace.
func DefaultDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

// FormatKg renders a kg CO2e figure with two decimals.
func FormatKg(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64) + " kg"
}

// MealCountLabel pluralises a meal count.
func MealCountLabel(count int64) string {
	if count == 1 {
		return "1 meal"
	}
	return strconv.FormatInt(count, 10) + " meals"
}

// formatDay renders YYYY-MM-DD dates as "Mon 02 Jan".
func formatDay(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return value
	}
	return parsed.Format("Mon 02 Jan")
}
