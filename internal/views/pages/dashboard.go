package pages

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"ecobite/internal/footprint"
	"ecobite/internal/views/components"
	"ecobite/internal/views/layout"
	"ecobite/internal/views/theme"
)

// RecentMeal is a logged meal shown on the dashboard.
type RecentMeal struct {
	Date   string
	Name   string
	Carbon float64
}

// DashboardData is everything the dashboard renders.
type DashboardData struct {
	UserName        string
	WeekStart       string
	WeekCarbon      float64
	WeekMeals       int64
	WeekAverage     float64
	LastSevenCarbon float64
	LastSevenMeals  int64
	AllTimeCarbon   float64
	AllTimeMeals    int64
	WeeklyAverage   float64
	Recent          []RecentMeal
}

// WeekScore scores the current week's average meal on the sustainability scale.
func (d DashboardData) WeekScore() float64 {
	if d.WeekMeals == 0 {
		return 100
	}
	return footprint.Round2(footprint.Score(d.WeekAverage))
}

func sidebar(active, userName string) templ.Component {
	return components.Sidebar(components.SidebarData{
		Active:   active,
		UserName: userName,
		Links: []components.SidebarLink{
			{Label: "Dashboard", Path: "/app", Section: "dashboard"},
			{Label: "Ingredients", Path: "/api/ingredients", Section: "ingredients"},
		},
	})
}

// Dashboard renders the signed-in overview of the user's carbon tracking.
func Dashboard(data DashboardData) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		band := theme.ForScore(data.WeekScore())
		if _, err := fmt.Fprintf(w,
			`<header><h1>Week of %s</h1><span class="%s">%s &middot; %s</span></header><div class="stats">`,
			templ.EscapeString(formatDay(data.WeekStart)),
			band.BadgeClass,
			templ.EscapeString(band.Label),
			strconv.FormatFloat(data.WeekScore(), 'f', 0, 64)); err != nil {
			return err
		}

		cards := []templ.Component{
			components.StatCard("This week", FormatKg(data.WeekCarbon), MealCountLabel(data.WeekMeals), "Average "+FormatKg(data.WeekAverage)+" per meal"),
			components.StatCard("Last 7 days", FormatKg(data.LastSevenCarbon), MealCountLabel(data.LastSevenMeals), "Including today"),
			components.StatCard("All time", FormatKg(data.AllTimeCarbon), MealCountLabel(data.AllTimeMeals), "Weekly average "+FormatKg(data.WeeklyAverage)),
		}
		for _, card := range cards {
			if err := card.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</div><h2>Recent meals</h2>`); err != nil {
			return err
		}

		entries := make([]components.ActivityEntry, 0, len(data.Recent))
		for _, meal := range data.Recent {
			entries = append(entries, components.ActivityEntry{
				Date:   formatDay(meal.Date),
				Meal:   DefaultDash(meal.Name),
				Carbon: strconv.FormatFloat(meal.Carbon, 'f', 2, 64),
			})
		}
		return components.ActivityTable(entries).Render(ctx, w)
	})

	return layout.Layout("EcoBite", sidebar("dashboard", data.UserName), content, true)
}
