package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path"
	"strings"

	"github.com/supermodeltools/pwakit/internal/pwa/manifest"
)

//go:embed templates/head.html
var builtin embed.FS

const headTemplate = "head.html"

// appleTouchMinSize is the smallest icon iOS uses for a home screen tile.
const appleTouchMinSize = 180

// Engine renders the HTML fragments that link a built manifest into a page.
type Engine struct {
	tmpl *template.Template
}

// HeadContext is the data passed to the head template.
type HeadContext struct {
	ManifestHref   string
	Name           string
	ShortName      string
	Description    string
	ThemeColor     string
	AppleTouchIcon *manifest.Icon
}

// NewEngine loads the head template from headPath, or the built-in one when
// headPath is empty.
func NewEngine(headPath string) (*Engine, error) {
	var (
		data []byte
		err  error
	)
	if headPath == "" {
		data, err = builtin.ReadFile("templates/" + headTemplate)
	} else {
		data, err = os.ReadFile(headPath)
	}
	if err != nil {
		return nil, fmt.Errorf("reading head template: %w", err)
	}

	tmpl, err := template.New(headTemplate).Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", headTemplate, err)
	}
	return &Engine{tmpl: tmpl}, nil
}

// NewHeadContext derives the head template data for doc served at
// manifestHref.
func NewHeadContext(doc *manifest.Document, manifestHref string) HeadContext {
	return HeadContext{
		ManifestHref:   manifestHref,
		Name:           doc.Name(),
		ShortName:      doc.ShortName(),
		Description:    doc.Description(),
		ThemeColor:     doc.ThemeColor(),
		AppleTouchIcon: appleTouchIcon(doc.Icons()),
	}
}

// RenderHead renders the <head> fragment.
func (e *Engine) RenderHead(ctx HeadContext) (string, error) {
	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("executing template %q: %w", headTemplate, err)
	}
	out := strings.TrimSpace(buf.String())
	return out + "\n", nil
}

// appleTouchIcon picks the smallest raster icon of at least 180px, falling
// back to any icon of that size. icons are already ordered by area.
func appleTouchIcon(icons []manifest.Icon) *manifest.Icon {
	var fallback *manifest.Icon
	for i := range icons {
		w, h, ok := icons[i].Dimensions()
		if !ok || w < appleTouchMinSize || h < appleTouchMinSize {
			continue
		}
		if !isVector(icons[i]) {
			return &icons[i]
		}
		if fallback == nil {
			fallback = &icons[i]
		}
	}
	return fallback
}

func isVector(icon manifest.Icon) bool {
	return icon.Type == "image/svg+xml" || strings.EqualFold(path.Ext(icon.Src), ".svg")
}
