package templates

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/Conceptual-Machines/chordpad-api/internal/models"
	"github.com/a-h/templ"
)

// KeyChoice is an option in the transpose selector
type KeyChoice struct {
	Key   string
	Label string
}

// CategoryPage holds what the category view shows
type CategoryPage struct {
	Category  string
	Key       string
	Inversion string
	Keys      []KeyChoice
	Sets      []models.ChordSet
}

// Home lists the library categories.
func Home(categories []string) templ.Component {
	return Layout("Chord Pad", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<h1>Chord library</h1><ul class="categories">`)
		for _, name := range categories {
			fmt.Fprintf(&b, `<li><a href="/library/%s">%s</a></li>`,
				url.PathEscape(name), templ.EscapeString(name))
		}
		b.WriteString(`</ul>`)
		_, err := io.WriteString(w, b.String())
		return err
	}))
}

// Category shows the sets of one category with a key and inversion selector.
func Category(page CategoryPage) templ.Component {
	return Layout(page.Category+" | Chord Pad", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<h1>%s</h1>`, templ.EscapeString(page.Category))

		b.WriteString(`<form method="get"><label>Key <select name="key"><option value="">As written</option>`)
		for _, k := range page.Keys {
			selected := ""
			if k.Key == page.Key {
				selected = " selected"
			}
			fmt.Fprintf(&b, `<option value="%s"%s>%s</option>`,
				templ.EscapeString(k.Key), selected, templ.EscapeString(k.Label))
		}
		b.WriteString(`</select></label> <label>Inversion <select name="inversion"><option value="">Off</option>`)
		for _, inv := range []string{"0", "1", "2", "3"} {
			selected := ""
			if inv == page.Inversion {
				selected = " selected"
			}
			fmt.Fprintf(&b, `<option value="%s"%s>%s</option>`, inv, selected, inv)
		}
		b.WriteString(`</select></label> <button type="submit">Apply</button></form>`)

		b.WriteString(`<div class="sets">`)
		for _, set := range page.Sets {
			fmt.Fprintf(&b, `<div class="set"><h3>%s</h3>`, templ.EscapeString(set.Name))
			for _, chord := range set.Chords {
				fmt.Fprintf(&b, `<span class="chord">%s</span>`, templ.EscapeString(chord))
			}
			b.WriteString(`</div>`)
		}
		b.WriteString(`</div>`)

		_, err := io.WriteString(w, b.String())
		return err
	}))
}

// NotFound renders the page for an unknown category.
func NotFound(category string) templ.Component {
	return Layout("Not found | Chord Pad", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<h1>Unknown category</h1><p>No category named %s.</p>`, templ.EscapeString(category))
		return err
	}))
}
