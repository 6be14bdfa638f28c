package manifest

import (
	"encoding/json"
	"slices"
)

// Document is a validated, normalized manifest. It is immutable: accessors
// return copies of any slice members.
type Document struct {
	name            string
	shortName       string
	description     string
	themeColor      string
	backgroundColor string
	display         Display
	startURL        string
	id              string
	scope           string
	lang            string
	orientation     string
	categories      []string
	icons           []Icon
	warnings        []Warning
}

// Warning is a non-fatal finding about an otherwise valid config.
type Warning struct {
	Field   string
	Message string
}

func (w Warning) String() string { return w.Field + ": " + w.Message }

func (d *Document) Name() string            { return d.name }
func (d *Document) ShortName() string       { return d.shortName }
func (d *Document) Description() string     { return d.description }
func (d *Document) ThemeColor() string      { return d.themeColor }
func (d *Document) BackgroundColor() string { return d.backgroundColor }
func (d *Document) Display() Display        { return d.display }
func (d *Document) StartURL() string        { return d.startURL }
func (d *Document) ID() string              { return d.id }
func (d *Document) Scope() string           { return d.scope }
func (d *Document) Lang() string            { return d.lang }
func (d *Document) Orientation() string     { return d.orientation }
func (d *Document) Categories() []string    { return slices.Clone(d.categories) }

// Icons returns the icons ordered by ascending pixel area.
func (d *Document) Icons() []Icon { return slices.Clone(d.icons) }

// Warnings returns findings that did not fail validation.
func (d *Document) Warnings() []Warning { return slices.Clone(d.warnings) }

type documentJSON struct {
	Name            string   `json:"name"`
	ShortName       string   `json:"short_name"`
	Description     string   `json:"description,omitempty"`
	ID              string   `json:"id,omitempty"`
	StartURL        string   `json:"start_url"`
	Scope           string   `json:"scope,omitempty"`
	Display         Display  `json:"display"`
	Orientation     string   `json:"orientation,omitempty"`
	ThemeColor      string   `json:"theme_color"`
	BackgroundColor string   `json:"background_color"`
	Lang            string   `json:"lang,omitempty"`
	Categories      []string `json:"categories,omitempty"`
	Icons           []Icon   `json:"icons"`
}

// MarshalJSON encodes the document using the web app manifest member names.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(documentJSON{
		Name:            d.name,
		ShortName:       d.shortName,
		Description:     d.description,
		ID:              d.id,
		StartURL:        d.startURL,
		Scope:           d.scope,
		Display:         d.display,
		Orientation:     d.orientation,
		ThemeColor:      d.themeColor,
		BackgroundColor: d.backgroundColor,
		Lang:            d.lang,
		Categories:      d.categories,
		Icons:           d.icons,
	})
}
