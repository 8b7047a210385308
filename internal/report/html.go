package report

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var reportTmpl = template.Must(template.ParseFS(templateFS, "templates/report.html.tmpl"))

// renderHTML writes the report page for a view.
func renderHTML(w io.Writer, v view) error {
	return reportTmpl.Execute(w, v)
}
