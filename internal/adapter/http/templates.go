package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
)

//go:embed web/templates/*.html
var templateFS embed.FS

//go:embed web/content/*.md
var contentFS embed.FS

func parseTemplates() (*template.Template, error) {
	t, err := template.ParseFS(templateFS, "web/templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

// renderMarkdown converts an embedded narrative page to HTML. The content
// files ship inside the binary, so the HTML is trusted.
func renderMarkdown(name string) (template.HTML, error) {
	src, err := contentFS.ReadFile("web/content/" + name)
	if err != nil {
		return "", fmt.Errorf("read content %s: %w", name, err)
	}
	p := parser.NewWithExtensions(parser.CommonExtensions)
	return template.HTML(markdown.ToHTML(src, p, nil)), nil //nolint:gosec // embedded content
}

// renderTemplate executes a template into a buffer first so errors surface
// as a 500 instead of a truncated page.
func (s *Server) renderTemplate(w http.ResponseWriter, name string, data pageData) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("template render failed", "template", name, "error", err)
		http.Error(w, "template rendering failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Warn("write page response", "template", name, "error", err)
	}
}
