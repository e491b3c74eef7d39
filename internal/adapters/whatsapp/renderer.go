package whatsapp

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"voterlink/internal/domain"
)

//go:embed templates/*.txt
var templateFS embed.FS

type templateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer returns a MessageRenderer over the embedded message templates.
func NewTemplateRenderer() (domain.MessageRenderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse message templates: %w", err)
	}
	return &templateRenderer{templates: t}, nil
}

// Render executes templates/<templateName>.txt with data.
func (r *templateRenderer) Render(templateName string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, templateName+".txt", data); err != nil {
		return "", fmt.Errorf("render %s: %w", templateName, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
