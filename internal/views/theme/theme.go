package theme

import "strings"

// Band is the styling applied to a sustainability score range.
type Band struct {
	Key             string
	Label           string
	BadgeClass      string
	AccentTextClass string
	MinScore        float64
}

const (
	// DefaultKey is used for unknown keys.
	DefaultKey = "moderate"
)

// bands are ordered from the highest threshold down.
var bands = []Band{
	{Key: "excellent", Label: "Excellent", BadgeClass: "badge bg-emerald-600 text-white", AccentTextClass: "text-emerald-500", MinScore: 80},
	{Key: "good", Label: "Good", BadgeClass: "badge bg-lime-500 text-slate-900", AccentTextClass: "text-lime-500", MinScore: 60},
	{Key: "moderate", Label: "Moderate", BadgeClass: "badge bg-amber-400 text-slate-900", AccentTextClass: "text-amber-500", MinScore: 40},
	{Key: "high", Label: "High impact", BadgeClass: "badge bg-rose-600 text-white", AccentTextClass: "text-rose-500", MinScore: 0},
}

// ForScore returns the band a 0-100 sustainability score falls into.
func ForScore(score float64) Band {
	for _, band := range bands {
		if score >= band.MinScore {
			return band
		}
	}
	return bands[len(bands)-1]
}

// Resolve returns the band registered under key.
func Resolve(key string) Band {
	normalized := strings.ToLower(strings.TrimSpace(key))
	for _, band := range bands {
		if band.Key == normalized {
			return band
		}
	}
	return Resolve(DefaultKey)
}

// Bands lists every band, highest first, for legends.
func Bands() []Band {
	out := make([]Band, len(bands))
	copy(out, bands)
	return out
}
