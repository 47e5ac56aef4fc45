package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"ecobite/internal/views/components"
	"ecobite/internal/views/layout"
)

// Login renders the sign-in form.
func Login(message, email string) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Sign in to EcoBite</h1>`); err != nil {
			return err
		}
		if err := components.Alert(message).Render(ctx, w); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w,
			`<form method="post" action="/login"><label>Email <input type="email" name="email" value="%s" required></label><label>Password <input type="password" name="password" required></label><button type="submit">Sign in</button></form><p><a href="/signup">Create an account</a></p>`,
			templ.EscapeString(email))
		return err
	})
	return layout.Layout("Sign in | EcoBite", nil, content, false)
}

// Signup renders the account creation form.
func Signup(message, name, email string) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Create your EcoBite account</h1>`); err != nil {
			return err
		}
		if err := components.Alert(message).Render(ctx, w); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w,
			`<form method="post" action="/signup"><label>Name <input type="text" name="name" value="%s"></label><label>Email <input type="email" name="email" value="%s" required></label><label>Password <input type="password" name="password" required></label><label>Confirm password <input type="password" name="confirm_password" required></label><button type="submit">Sign up</button></form><p><a href="/login">Already registered? Sign in</a></p>`,
			templ.EscapeString(name), templ.EscapeString(email))
		return err
	})
	return layout.Layout("Sign up | EcoBite", nil, content, false)
}
