package render

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/san-kum/partviz/internal/scene"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("partviz").Funcs(template.FuncMap{
	"colorOf": func(colors map[string]string, key string) string { return colors[key] },
}).ParseFS(templateFS, "templates/*.tmpl"))

// Assets locates the JavaScript libraries the widgets load.
type Assets struct {
	RequireJS string
	Elegans   string
	Nyaplot   string
}

// DefaultAssets points at public CDN builds.
var DefaultAssets = Assets{
	RequireJS: "https://cdnjs.cloudflare.com/ajax/libs/require.js/2.3.6/require.min.js",
	Elegans:   "https://cdn.jsdelivr.net/gh/domitry/elegans@master/release/elegans",
	Nyaplot:   "https://cdn.jsdelivr.net/gh/domitry/Nyaplotjs@master/release/nyaplot",
}

type widgetData struct {
	*scene.Widget
	Assets Assets
}

// HTML writes the widget fragment for embedding in a notebook cell.
func HTML(w io.Writer, wd *scene.Widget, assets Assets) error {
	return templates.ExecuteTemplate(w, wd.Template, widgetData{Widget: wd, Assets: assets})
}

// Page writes a standalone HTML document containing the widget.
func Page(w io.Writer, wd *scene.Widget, title string, assets Assets) error {
	var body bytes.Buffer
	if err := HTML(&body, wd, assets); err != nil {
		return err
	}
	return templates.ExecuteTemplate(w, "page", struct {
		Title  string
		Body   template.HTML
		Assets Assets
	}{title, template.HTML(body.String()), assets})
}
