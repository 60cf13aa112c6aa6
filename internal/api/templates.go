package api

import (
	"embed"         // Embedded template files
	"html/template" // Contextual-escaping templates
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// loadTemplates parses the embedded HTML templates. html/template escapes
// per context, which is what keeps user markup inert inside the srcdoc
// attribute on the page view.
func loadTemplates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))
}
