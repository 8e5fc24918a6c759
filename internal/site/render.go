package site

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// MenuItem is one entry of the site navigation.
type MenuItem struct {
	View   View
	Title  string
	Active bool
}

// Page is the data handed to the layout template.
type Page struct {
	View     View
	Title    string
	Menu     []MenuItem
	Prev     *MenuItem
	Next     *MenuItem
	Profiles []string
}

// Renderer renders the enumerated views from the embedded templates.
type Renderer struct {
	pages    map[View]*template.Template
	profiles []string
}

// NewRenderer parses the embedded templates for every enumerated view.
// profiles is the list of simulated-respondent identifiers offered by the
// demo form's selector.
func NewRenderer(profiles []string) (*Renderer, error) {
	pages := make(map[View]*template.Template)
	for _, v := range menuViews {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+string(v)+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse templates for view %q: %w", v, err)
		}
		pages[v] = tmpl
	}
	return &Renderer{pages: pages, profiles: profiles}, nil
}

// Render writes the named view to w. A view outside the enumeration renders
// the default view.
func (r *Renderer) Render(w io.Writer, v View) error {
	if !v.Valid() {
		v = DefaultView
	}
	tmpl := r.pages[v]

	page := Page{
		View:     v,
		Title:    v.Title(),
		Profiles: r.profiles,
	}
	for _, mv := range menuViews {
		page.Menu = append(page.Menu, MenuItem{View: mv, Title: mv.Title(), Active: mv == v})
	}
	if prev, ok := Prev(v); ok {
		page.Prev = &MenuItem{View: prev, Title: prev.Title()}
	}
	if next, ok := Next(v); ok {
		page.Next = &MenuItem{View: next, Title: next.Title()}
	}

	if err := tmpl.ExecuteTemplate(w, "layout", page); err != nil {
		return fmt.Errorf("failed to render view %q: %w", v, err)
	}
	return nil
}
