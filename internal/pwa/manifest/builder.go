package manifest

import (
	"cmp"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

const (
	// MinIconSize and LargeIconSize are the square sizes an installable app
	// must provide at least one icon for.
	MinIconSize   = 192
	LargeIconSize = 512

	// ShortNameSoftLimit is the length past which launchers may truncate.
	ShortNameSoftLimit = 12
)

// Builder validates a Config once and produces Documents from it.
type Builder struct {
	cfg Config
}

// NewBuilder captures a copy of cfg.
func NewBuilder(cfg Config) *Builder {
	cfg.Icons = slices.Clone(cfg.Icons)
	cfg.Categories = slices.Clone(cfg.Categories)
	return &Builder{cfg: cfg}
}

// Build is shorthand for NewBuilder(cfg).Build(assets).
func Build(cfg Config, assets AssetSet) (*Document, error) {
	return NewBuilder(cfg).Build(assets)
}

// Build validates the config against assets and returns a normalized
// Document. No Document is returned alongside an error.
func (b *Builder) Build(assets AssetSet) (*Document, error) {
	cfg := b.cfg
	doc := &Document{
		name:            strings.TrimSpace(cfg.Name),
		shortName:       strings.TrimSpace(cfg.ShortName),
		description:     strings.TrimSpace(cfg.Description),
		themeColor:      strings.TrimSpace(cfg.ThemeColor),
		backgroundColor: strings.TrimSpace(cfg.BackgroundColor),
		display:         Display(strings.ToLower(strings.TrimSpace(string(cfg.Display)))),
		startURL:        strings.TrimSpace(cfg.StartURL),
		id:              strings.TrimSpace(cfg.ID),
		scope:           strings.TrimSpace(cfg.Scope),
		lang:            strings.TrimSpace(cfg.Lang),
		orientation:     strings.ToLower(strings.TrimSpace(cfg.Orientation)),
	}

	if err := validateScalars(doc); err != nil {
		return nil, err
	}
	for _, c := range cfg.Categories {
		if c = strings.TrimSpace(c); c != "" {
			doc.categories = append(doc.categories, strings.ToLower(c))
		}
	}

	if len(cfg.Icons) == 0 {
		return nil, &MissingFieldError{Field: "icons"}
	}

	type sized struct {
		icon Icon
		w, h int
	}
	icons := make([]sized, 0, len(cfg.Icons))
	for i, raw := range cfg.Icons {
		icon := Icon{
			Src:     strings.TrimSpace(raw.Src),
			Sizes:   strings.TrimSpace(raw.Sizes),
			Type:    strings.ToLower(strings.TrimSpace(raw.Type)),
			Purpose: normalizePurpose(raw.Purpose),
		}
		w, h, err := ParseSizes(icon.Sizes)
		if err != nil {
			return nil, &MalformedSizeError{Index: i, Src: icon.Src, Sizes: raw.Sizes}
		}
		if icon.Src == "" || !assets.Has(icon.Src) {
			return nil, &MissingAssetError{Index: i, Path: raw.Src}
		}
		if err := validatePurpose(i, icon.Purpose); err != nil {
			return nil, err
		}
		if w != h {
			doc.warnings = append(doc.warnings, Warning{
				Field:   fmt.Sprintf("icons[%d]", i),
				Message: fmt.Sprintf("%s is not square (%s)", icon.Src, icon.Sizes),
			})
		}
		icons = append(icons, sized{icon: icon, w: w, h: h})
	}

	var unmet []int
	for _, threshold := range []int{MinIconSize, LargeIconSize} {
		covered := slices.ContainsFunc(icons, func(s sized) bool {
			return s.w >= threshold && s.h >= threshold
		})
		if !covered {
			unmet = append(unmet, threshold)
		}
	}
	if len(unmet) > 0 {
		return nil, &InsufficientIconCoverageError{Unmet: unmet}
	}

	slices.SortStableFunc(icons, func(a, b sized) int {
		return cmp.Compare(int64(a.w)*int64(a.h), int64(b.w)*int64(b.h))
	})
	doc.icons = make([]Icon, len(icons))
	for i, s := range icons {
		doc.icons[i] = s.icon
	}

	if n := len([]rune(doc.shortName)); n > ShortNameSoftLimit {
		doc.warnings = append(doc.warnings, Warning{
			Field:   "short_name",
			Message: fmt.Sprintf("%d characters, launchers may truncate past %d", n, ShortNameSoftLimit),
		})
	}
	return doc, nil
}

func validateScalars(doc *Document) error {
	required := []struct {
		field, value string
	}{
		{"name", doc.name},
		{"short_name", doc.shortName},
		{"theme_color", doc.themeColor},
		{"background_color", doc.backgroundColor},
		{"display", string(doc.display)},
		{"start_url", doc.startURL},
	}
	for _, r := range required {
		if r.value == "" {
			return &MissingFieldError{Field: r.field}
		}
	}

	if !IsCSSColor(doc.themeColor) {
		return &InvalidColorError{Field: "theme_color", Value: doc.themeColor}
	}
	if !IsCSSColor(doc.backgroundColor) {
		return &InvalidColorError{Field: "background_color", Value: doc.backgroundColor}
	}
	if !slices.Contains(Displays, doc.display) {
		allowed := make([]string, len(Displays))
		for i, d := range Displays {
			allowed[i] = string(d)
		}
		return &InvalidEnumValueError{Field: "display", Value: string(doc.display), Allowed: allowed}
	}
	if _, err := url.Parse(doc.startURL); err != nil {
		return &InvalidURLError{Field: "start_url", Value: doc.startURL, Err: err}
	}
	if doc.scope != "" {
		if _, err := url.Parse(doc.scope); err != nil {
			return &InvalidURLError{Field: "scope", Value: doc.scope, Err: err}
		}
	}
	if doc.orientation != "" && !slices.Contains(Orientations, doc.orientation) {
		return &InvalidEnumValueError{Field: "orientation", Value: doc.orientation, Allowed: Orientations}
	}
	return nil
}

func normalizePurpose(p string) string {
	return strings.Join(strings.Fields(strings.ToLower(p)), " ")
}

func validatePurpose(index int, purpose string) error {
	for _, p := range strings.Fields(purpose) {
		if !slices.Contains(Purposes, p) {
			return &InvalidEnumValueError{Field: fmt.Sprintf("icons[%d].purpose", index), Value: p, Allowed: Purposes}
		}
	}
	return nil
}
