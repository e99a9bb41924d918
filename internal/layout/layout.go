// Package layout loads the email layout document and renders it. The layout is
// plain HTML with {{field}} placeholders and a {% if hasButton %} region,
// executed by pongo2.
package layout

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/layout.html
var defaultLayout string

// ErrEmpty is returned when the layout source is blank.
var ErrEmpty = errors.New("layout is empty")

// Fields are the values substituted into the layout. Content is trusted
// author markup and is inserted verbatim; every other field is autoescaped.
type Fields struct {
	Title      string
	Content    string
	Footer     string
	ImageURL   string
	ButtonText string
	ButtonURL  string
	HasButton  bool
}

// Layout is an immutable, pre-compiled layout document. Safe for concurrent use.
type Layout struct {
	raw string
	tpl *pongo2.Template
}

// Parse compiles raw layout text.
func Parse(raw string) (*Layout, error) {
	if raw == "" {
		return nil, ErrEmpty
	}
	tpl, err := pongo2.FromString(raw)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return &Layout{raw: raw, tpl: tpl}, nil
}

// Load reads and compiles the layout file at path.
func Load(path string) (*Layout, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}
	return Parse(string(b))
}

// Default returns the layout shipped with the binary.
func Default() (*Layout, error) {
	return Parse(defaultLayout)
}

// Raw returns the layout source as loaded.
func (l *Layout) Raw() string {
	return l.raw
}

// Execute renders the layout with f.
func (l *Layout) Execute(f Fields) (string, error) {
	out, err := l.tpl.Execute(pongo2.Context{
		"title":      f.Title,
		"content":    pongo2.AsSafeValue(f.Content),
		"footer":     f.Footer,
		"imageUrl":   f.ImageURL,
		"buttonText": f.ButtonText,
		"buttonUrl":  f.ButtonURL,
		"hasButton":  f.HasButton,
	})
	if err != nil {
		return "", fmt.Errorf("execute layout: %w", err)
	}
	return out, nil
}
