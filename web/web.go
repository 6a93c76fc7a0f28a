package web

import (
	"embed"
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	LoginTemplate     = "login.html"
	DashboardTemplate = "dashboard.html"
)

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"markdown": Markdown,
		"str":      func(b []byte) string { return string(b) },
	}).ParseFS(templateFS, "templates/*.html")
}

// Markdown renders chat content to HTML. Raw HTML in the source is dropped.
func Markdown(src string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.SkipHTML | html.Safelink | html.HrefTargetBlank,
	})
	return template.HTML(markdown.ToHTML([]byte(src), p, r))
}
