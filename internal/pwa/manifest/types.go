package manifest

import (
	"path"
	"strings"
)

// Display is the preferred display mode of an installed app.
type Display string

const (
	DisplayStandalone Display = "standalone"
	DisplayFullscreen Display = "fullscreen"
	DisplayMinimalUI  Display = "minimal-ui"
	DisplayBrowser    Display = "browser"
)

// Displays lists the accepted display modes.
var Displays = []Display{DisplayStandalone, DisplayFullscreen, DisplayMinimalUI, DisplayBrowser}

// Orientations lists the accepted values of the optional orientation member.
var Orientations = []string{
	"any", "natural", "landscape", "landscape-primary", "landscape-secondary",
	"portrait", "portrait-primary", "portrait-secondary",
}

// Purposes lists the accepted icon purpose keywords.
var Purposes = []string{"any", "maskable", "monochrome"}

// Config is the declarative manifest input.
type Config struct {
	Name            string
	ShortName       string
	Description     string
	ThemeColor      string
	BackgroundColor string
	Display         Display
	StartURL        string
	Icons           []Icon

	// Optional members passed through when set.
	ID          string
	Scope       string
	Lang        string
	Orientation string
	Categories  []string
}

// Icon describes one manifest icon.
type Icon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type,omitempty"`
	Purpose string `json:"purpose,omitempty"`
}

// Dimensions parses Sizes; ok is false when Sizes is malformed.
func (i Icon) Dimensions() (width, height int, ok bool) {
	w, h, err := ParseSizes(i.Sizes)
	if err != nil {
		return 0, 0, false
	}
	return w, h, true
}

// AssetSet is the set of web paths known to exist in the static assets.
type AssetSet map[string]struct{}

// NewAssetSet builds an AssetSet from web paths.
func NewAssetSet(paths ...string) AssetSet {
	s := make(AssetSet, len(paths))
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

// Add inserts a path in its normalized form.
func (s AssetSet) Add(p string) {
	s[NormalizeAssetPath(p)] = struct{}{}
}

// Has reports whether p resolves to a known asset.
func (s AssetSet) Has(p string) bool {
	_, ok := s[NormalizeAssetPath(p)]
	return ok
}

// NormalizeAssetPath maps "icons/a.png", "./icons/a.png" and "/icons/a.png"
// to the same web path. Query strings and fragments are dropped.
func NormalizeAssetPath(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return path.Clean("/" + p)
}
