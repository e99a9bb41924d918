package emailtemplate

import "time"

const (
	DefaultFontColor       = "#333333"
	DefaultBackgroundColor = "#ffffff"
)

// Draft is the in-progress template state sent by the editor. Only title,
// content and footer are required; image and button fields are optional.
type Draft struct {
	Title      string `json:"title" validate:"required"`
	Content    string `json:"content" validate:"required"`
	Footer     string `json:"footer" validate:"required"`
	ImageURL   string `json:"imageUrl"`
	ButtonText string `json:"buttonText"`
	ButtonURL  string `json:"buttonUrl"`
}

// HasButton reports whether the call-to-action region should be rendered.
func (d Draft) HasButton() bool {
	return d.ButtonText != "" && d.ButtonURL != ""
}

// PersistedTemplate is the append-only record written on save. It is never
// read back, updated or deleted by this service.
type PersistedTemplate struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	Title           string    `json:"title" bson:"title"`
	Content         string    `json:"content" bson:"content"`
	Footer          string    `json:"footer" bson:"footer"`
	ImageURL        string    `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	ButtonText      string    `json:"buttonText,omitempty" bson:"buttonText,omitempty"`
	ButtonURL       string    `json:"buttonUrl,omitempty" bson:"buttonUrl,omitempty"`
	FontColor       string    `json:"fontColor" bson:"fontColor"`
	BackgroundColor string    `json:"backgroundColor" bson:"backgroundColor"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
}

// NewPersistedTemplate copies the draft fields and applies the colour defaults.
// CreatedAt is left for the repository to stamp at insertion.
func NewPersistedTemplate(d Draft) *PersistedTemplate {
	return &PersistedTemplate{
		Title:           d.Title,
		Content:         d.Content,
		Footer:          d.Footer,
		ImageURL:        d.ImageURL,
		ButtonText:      d.ButtonText,
		ButtonURL:       d.ButtonURL,
		FontColor:       DefaultFontColor,
		BackgroundColor: DefaultBackgroundColor,
	}
}
