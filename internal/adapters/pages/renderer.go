// Package pages renders the server-side HTML pages from embedded templates.
package pages

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"voterlink/internal/domain"
)

// Page names.
const (
	BallotForm    = "ballot_form"
	VoteSuccess   = "vote_success"
	AlreadyVoted  = "already_voted"
	MissingFields = "missing_fields"
	Register      = "register"
	Message       = "message"
	FAQ           = "faq"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Country is an entry of the registration country selector.
type Country struct {
	Name string
	Code string
}

// Countries are offered on the registration page, most common first.
var Countries = []Country{
	{"Bolivia", "+591"},
	{"Argentina", "+54"},
	{"Brasil", "+55"},
	{"Chile", "+56"},
	{"Perú", "+51"},
	{"Paraguay", "+595"},
	{"España", "+34"},
	{"Italia", "+39"},
	{"Estados Unidos", "+1"},
}

// RegisterData is the data of the registration page.
type RegisterData struct {
	Countries []Country
	Error     string
}

// BallotFormData is the data of the ballot form.
type BallotFormData struct {
	PhoneNumber string
}

// FAQData is the data of the frequently asked questions page.
type FAQData struct {
	LinkValidMinutes int
}

// MessageData is the data of the generic message page.
type MessageData struct {
	Title   string
	Message string
}

type renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page together with the shared layout.
func NewRenderer() (domain.PageRenderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r := &renderer{pages: make(map[string]*template.Template)}
	for _, f := range files {
		if f == layoutFile {
			continue
		}
		t, err := template.ParseFS(templateFS, layoutFile, f)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", f, err)
		}
		r.pages[strings.TrimSuffix(path.Base(f), ".html")] = t
	}
	return r, nil
}

// Render writes the named page. Nothing is written when execution fails.
func (r *renderer) Render(w io.Writer, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render page %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
