// Package templates renders the server-side library browser pages.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const pageStyle = `body{font-family:system-ui,sans-serif;margin:2rem auto;max-width:60rem;color:#1d1d1f}
a{color:#3a5ccc;text-decoration:none}
.sets{display:grid;grid-template-columns:repeat(auto-fill,minmax(14rem,1fr));gap:.75rem}
.set{border:1px solid #ddd;border-radius:6px;padding:.75rem}
.chord{display:inline-block;background:#f1f3f9;border-radius:4px;padding:.15rem .4rem;margin:.1rem;font-size:.9rem}
form{margin:1rem 0}`

// Layout wraps page content in the shared HTML document.
func Layout(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%s</title><style>%s</style></head><body>`,
			templ.EscapeString(title), pageStyle); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<header><a href="/">Chord Pad</a></header><main>`); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}
