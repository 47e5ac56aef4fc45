package layout

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps content in the application shell.
func Layout(title string, sidebar, content templ.Component, sidebarOpen bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><link rel="stylesheet" href="/assets/app.css"></head><body class="%s">`,
			templ.EscapeString(title), bodyWrapperClass(sidebarOpen)); err != nil {
			return err
		}
		if sidebar != nil {
			if err := sidebar.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<main class="%s">`, mainClass(sidebarOpen)); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

func bodyWrapperClass(sidebarOpen bool) string {
	if sidebarOpen {
		return "min-h-screen bg-stone-50 text-slate-900 lg:pl-64"
	}
	return "min-h-screen bg-stone-50 text-slate-900"
}

func mainClass(sidebarOpen bool) string {
	if sidebarOpen {
		return "mx-auto max-w-6xl px-6 py-8"
	}
	return "mx-auto max-w-md px-6 py-16"
}
