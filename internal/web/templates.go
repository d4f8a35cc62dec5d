package web

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/bobmcallan/propdesk/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages are the content templates composed with the shared layout.
var pages = []string{
	"landing",
	"features",
	"pricing",
	"about",
	"privacy",
	"terms",
	"demo",
	"login",
	"signup",
	"dashboard",
	"users",
	"properties",
	"leads",
	"requests",
	"confirm_delete",
}

// funcMap holds the helpers available inside templates. dict lets a page
// pass several values into a shared field-set block; the blank* helpers
// give those blocks an empty record to render as an add form.
var funcMap = template.FuncMap{
	"dict": func(pairs ...interface{}) (map[string]interface{}, error) {
		if len(pairs)%2 != 0 {
			return nil, fmt.Errorf("dict requires an even number of arguments")
		}
		m := make(map[string]interface{}, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			key, ok := pairs[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict keys must be strings")
			}
			m[key] = pairs[i+1]
		}
		return m, nil
	},
	"blankUser":     func() *models.User { return &models.User{} },
	"blankProperty": func() *models.Property { return &models.Property{} },
	"blankLead":     func() *models.Lead { return &models.Lead{} },
	"blankRequest":  func() *models.Request { return &models.Request{} },
}

type templateSet struct {
	pages map[string]*template.Template
}

// loadTemplates parses each page template together with the layout. Every
// page defines a "content" block the layout invokes, so pages are parsed
// into independent sets.
func loadTemplates() *templateSet {
	ts := &templateSet{pages: make(map[string]*template.Template)}
	for _, page := range pages {
		ts.pages[page] = template.Must(template.New(page).Funcs(funcMap).ParseFS(templateFS,
			"templates/layout.html",
			"templates/"+page+".html",
		))
	}
	return ts
}
