// Package preview renders the live preview shown while a draft is edited.
package preview

import (
	"github.com/emailbuilder/emailbuilder/internal/emailtemplate"
	"github.com/emailbuilder/emailbuilder/internal/layout"
)

// Fallbacks shown for empty draft fields.
const (
	FallbackTitle      = "Your Title"
	FallbackContent    = "<span data-template-variable>Your Content</span>"
	FallbackFooter     = "Your Footer"
	FallbackImageURL   = "Your Image"
	FallbackButtonText = "Button Text"
	FallbackButtonURL  = "#"
)

// Render substitutes the draft into l, using fallbacks for empty fields. The
// button region is shown as soon as either button field is set so the author
// sees where the button will go.
func Render(l *layout.Layout, d emailtemplate.Draft) (string, error) {
	return l.Execute(layout.Fields{
		Title:      or(d.Title, FallbackTitle),
		Content:    or(d.Content, FallbackContent),
		Footer:     or(d.Footer, FallbackFooter),
		ImageURL:   or(d.ImageURL, FallbackImageURL),
		ButtonText: or(d.ButtonText, FallbackButtonText),
		ButtonURL:  or(d.ButtonURL, FallbackButtonURL),
		HasButton:  d.ButtonText != "" || d.ButtonURL != "",
	})
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
