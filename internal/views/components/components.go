package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// SidebarLink is a navigation entry.
type SidebarLink struct {
	Label   string
	Path    string
	Section string
}

// SidebarData drives Sidebar.
type SidebarData struct {
	Active   string
	UserName string
	Links    []SidebarLink
}

// ActivityEntry is one row of the recent meals table.
type ActivityEntry struct {
	Date   string
	Meal   string
	Carbon string
}

func linkState(section, active string) string {
	if section == active {
		return "active"
	}
	return "inactive"
}

// Sidebar renders the primary navigation with the active section marked.
func Sidebar(data SidebarData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<aside class="sidebar"><p class="sidebar-user">%s</p><nav>`, templ.EscapeString(data.UserName)); err != nil {
			return err
		}
		for _, link := range data.Links {
			if _, err := fmt.Fprintf(w, `<a href="%s" data-state="%s">%s</a>`,
				templ.EscapeString(link.Path), linkState(link.Section, data.Active), templ.EscapeString(link.Label)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `<form method="post" action="/logout"><button type="submit">Sign out</button></form></nav></aside>`)
		return err
	})
}

// StatCard renders a headline figure with a secondary delta and caption.
func StatCard(title, value, delta, caption string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div class="stat-card"><h3>%s</h3><p class="stat-value">%s</p><p class="stat-delta">%s</p><p class="stat-caption">%s</p></div>`,
			templ.EscapeString(title), templ.EscapeString(value), templ.EscapeString(delta), templ.EscapeString(caption))
		return err
	})
}

// ActivityTable lists recent meal logs.
func ActivityTable(entries []ActivityEntry) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(entries) == 0 {
			_, err := io.WriteString(w, `<p class="empty">No meals logged in the last seven days.</p>`)
			return err
		}
		if _, err := io.WriteString(w, `<table class="activity"><thead><tr><th>Date</th><th>Meal</th><th>kg CO2e</th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, entry := range entries {
			if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td><td>%s</td></tr>`,
				templ.EscapeString(entry.Date), templ.EscapeString(entry.Meal), templ.EscapeString(entry.Carbon)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}

// Alert renders a message banner, or nothing when message is empty.
func Alert(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if message == "" {
			return nil
		}
		_, err := fmt.Fprintf(w, `<div class="alert" role="alert">%s</div>`, templ.EscapeString(message))
		return err
	})
}
