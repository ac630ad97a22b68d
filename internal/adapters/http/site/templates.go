package site

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"slices"
	"strconv"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/table"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home", "competitors", "competitions", "venues", "competitor", "queries", "error"}

type pageTemplate struct {
	t *template.Template
}

func (p *pageTemplate) execute(w io.Writer, data pageData) error {
	return p.t.ExecuteTemplate(w, "layout", data)
}

var funcs = template.FuncMap{
	"cell": table.Format,
	"has":  func(list []string, v string) bool { return slices.Contains(list, v) },
	"str": func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	},
	"int": func(p *int64) string {
		if p == nil {
			return ""
		}
		return strconv.FormatInt(*p, 10)
	},
	"num": formatFloat,
	"fnum": func(p *float64) string {
		if p == nil {
			return ""
		}
		return formatFloat(*p)
	},
	"bound": func(p *int64, fallback float64) string {
		if p == nil {
			return formatFloat(fallback)
		}
		return strconv.FormatInt(*p, 10)
	},
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parsePages pairs the shared layout with each page's content block.
func parsePages() (map[string]*pageTemplate, error) {
	pages := make(map[string]*pageTemplate, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("%w: parse %s: %w", ErrRender, name, err)
		}
		pages[name] = &pageTemplate{t: t}
	}
	return pages, nil
}
