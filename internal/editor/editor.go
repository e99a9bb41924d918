// Package editor holds the client-side editing session for a template draft:
// the draft itself, the section toggles and the transient status message.
package editor

import (
	"errors"
	"fmt"
	"sync"

	"github.com/emailbuilder/emailbuilder/internal/emailtemplate"
	"github.com/emailbuilder/emailbuilder/internal/layout"
	"github.com/emailbuilder/emailbuilder/internal/preview"
	"github.com/go-playground/validator/v10"
)

// Field names accepted by UpdateField. They match the JSON names of the draft.
const (
	FieldTitle      = "title"
	FieldContent    = "content"
	FieldFooter     = "footer"
	FieldImageURL   = "imageUrl"
	FieldButtonText = "buttonText"
	FieldButtonURL  = "buttonUrl"
)

const (
	msgImageRequired  = "Please enter an image URL"
	msgImageInvalid   = "Please enter a valid URL"
	msgImageAdded     = "Image URL added successfully!"
	msgRequiredFields = "Title, content, and footer are required"
)

var ErrUnknownField = errors.New("unknown draft field")

// MalformedURLError is returned by SubmitImageURL for input that is not an
// absolute URL.
type MalformedURLError struct {
	Input string
}

func (e *MalformedURLError) Error() string {
	return fmt.Sprintf("malformed url %q", e.Input)
}

// MessageKind tells an error message apart from a success message.
type MessageKind int

const (
	MessageNone MessageKind = iota
	MessageError
	MessageSuccess
)

// Message is the inline status line shown under the form. It is cleared by
// the next edit or action.
type Message struct {
	Kind MessageKind
	Text string
}

// Editor is one editing session. The zero value is not usable; call New.
type Editor struct {
	mu sync.Mutex

	draft       emailtemplate.Draft
	showButton  bool
	showImage   bool
	imageInput  string
	message     Message
	urlValidate *validator.Validate
}

func New() *Editor {
	return &Editor{urlValidate: validator.New()}
}

// Draft returns a copy of the current draft.
func (e *Editor) Draft() emailtemplate.Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

// UpdateField sets one draft field and clears the status message.
func (e *Editor) UpdateField(field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch field {
	case FieldTitle:
		e.draft.Title = value
	case FieldContent:
		e.draft.Content = value
	case FieldFooter:
		e.draft.Footer = value
	case FieldImageURL:
		e.draft.ImageURL = value
	case FieldButtonText:
		e.draft.ButtonText = value
	case FieldButtonURL:
		e.draft.ButtonURL = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	e.message = Message{}
	return nil
}

// SetImageInput stores the pending, not yet submitted, image URL.
func (e *Editor) SetImageInput(raw string) {
	e.mu.Lock()
	e.imageInput = raw
	e.mu.Unlock()
}

// ImageInput returns the pending image URL input.
func (e *Editor) ImageInput() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.imageInput
}

// SubmitImageURL validates raw as an absolute URL and, on success, sets it as
// the draft image and clears the pending input.
func (e *Editor) SubmitImageURL(raw string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.message = Message{}
	if raw == "" {
		e.message = Message{Kind: MessageError, Text: msgImageRequired}
		return &emailtemplate.ValidationError{Missing: []string{FieldImageURL}}
	}
	if err := e.urlValidate.Var(raw, "url"); err != nil {
		e.message = Message{Kind: MessageError, Text: msgImageInvalid}
		return &MalformedURLError{Input: raw}
	}
	e.draft.ImageURL = raw
	e.imageInput = ""
	e.message = Message{Kind: MessageSuccess, Text: msgImageAdded}
	return nil
}

// RemoveButton clears the button fields and hides the button section.
func (e *Editor) RemoveButton() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft.ButtonText = ""
	e.draft.ButtonURL = ""
	e.showButton = false
}

// RemoveImage clears the image URL.
func (e *Editor) RemoveImage() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft.ImageURL = ""
	e.message = Message{}
}

func (e *Editor) ToggleButtonSection() {
	e.mu.Lock()
	e.showButton = !e.showButton
	e.mu.Unlock()
}

func (e *Editor) ToggleImageSection() {
	e.mu.Lock()
	e.showImage = !e.showImage
	e.mu.Unlock()
}

func (e *Editor) ButtonSectionVisible() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.showButton
}

func (e *Editor) ImageSectionVisible() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.showImage
}

// Payload is the draft as it should be sent to the service. Button fields
// typed into a hidden section are dropped.
func (e *Editor) Payload() emailtemplate.Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	d := e.draft
	if !e.showButton {
		d.ButtonText = ""
		d.ButtonURL = ""
	}
	return d
}

// CheckRequired validates the payload before a download is attempted.
func (e *Editor) CheckRequired() error {
	err := emailtemplate.Validate(e.Payload())
	if err != nil {
		e.SetError(msgRequiredFields)
	}
	return err
}

// Preview renders the payload into l.
func (e *Editor) Preview(l *layout.Layout) (string, error) {
	return preview.Render(l, e.Payload())
}

func (e *Editor) SetError(text string) {
	e.mu.Lock()
	e.message = Message{Kind: MessageError, Text: text}
	e.mu.Unlock()
}

func (e *Editor) SetSuccess(text string) {
	e.mu.Lock()
	e.message = Message{Kind: MessageSuccess, Text: text}
	e.mu.Unlock()
}

func (e *Editor) ClearMessage() {
	e.mu.Lock()
	e.message = Message{}
	e.mu.Unlock()
}

func (e *Editor) Message() Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.message
}
