// Package templates embeds the HTML pages rendered by the controllers.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Load parses every page. Pages share the "header" and "footer" blocks
// from layout.html.
func Load() *template.Template {
	return template.Must(template.New("").ParseFS(files, "*.html"))
}
