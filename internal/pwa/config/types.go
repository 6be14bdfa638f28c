package config

import "github.com/supermodeltools/pwakit/internal/pwa/manifest"

// Config is the top-level pwakit configuration loaded from YAML.
type Config struct {
	Manifest  ManifestConfig  `yaml:"manifest"`
	Paths     PathsConfig     `yaml:"paths"`
	Assets    AssetsConfig    `yaml:"assets"`
	Output    OutputConfig    `yaml:"output"`
	Templates TemplatesConfig `yaml:"templates"`
	Log       LogConfig       `yaml:"log"`

	// ConfigDir is the directory containing the config file (set at load time).
	ConfigDir string `yaml:"-"`
}

// ManifestConfig mirrors the web app manifest members an author sets.
type ManifestConfig struct {
	Name            string       `yaml:"name"`
	ShortName       string       `yaml:"short_name"`
	Description     string       `yaml:"description"`
	ThemeColor      string       `yaml:"theme_color"`
	BackgroundColor string       `yaml:"background_color"`
	Display         string       `yaml:"display"`
	StartURL        string       `yaml:"start_url"`
	ID              string       `yaml:"id"`
	Scope           string       `yaml:"scope"`
	Lang            string       `yaml:"lang"`
	Orientation     string       `yaml:"orientation"`
	Categories      []string     `yaml:"categories"`
	Icons           []IconConfig `yaml:"icons"`
}

type IconConfig struct {
	Src     string `yaml:"src"`
	Sizes   string `yaml:"sizes"`
	Type    string `yaml:"type"`
	Purpose string `yaml:"purpose"`
}

type PathsConfig struct {
	Public string `yaml:"public" validate:"required"`
	Output string `yaml:"output" validate:"required"`
	Cache  string `yaml:"cache"`
}

type AssetsConfig struct {
	Include     []string `yaml:"include" validate:"dive,required"`
	Exclude     []string `yaml:"exclude" validate:"dive,required"`
	StrictTypes bool     `yaml:"strict_types"`
}

type OutputConfig struct {
	ManifestFilename string `yaml:"manifest_filename" validate:"required,excludesall=/\\"`
	HeadFilename     string `yaml:"head_filename" validate:"omitempty,excludesall=/\\"`
	CopyPublic       bool   `yaml:"copy_public"`
}

type TemplatesConfig struct {
	Head string `yaml:"head"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error disabled"`
	JSON  bool   `yaml:"json"`
}

// ManifestInput converts the YAML manifest section into builder input.
func (c *Config) ManifestInput() manifest.Config {
	m := c.Manifest
	icons := make([]manifest.Icon, len(m.Icons))
	for i, ic := range m.Icons {
		icons[i] = manifest.Icon{Src: ic.Src, Sizes: ic.Sizes, Type: ic.Type, Purpose: ic.Purpose}
	}
	return manifest.Config{
		Name:            m.Name,
		ShortName:       m.ShortName,
		Description:     m.Description,
		ThemeColor:      m.ThemeColor,
		BackgroundColor: m.BackgroundColor,
		Display:         manifest.Display(m.Display),
		StartURL:        m.StartURL,
		ID:              m.ID,
		Scope:           m.Scope,
		Lang:            m.Lang,
		Orientation:     m.Orientation,
		Categories:      m.Categories,
		Icons:           icons,
	}
}
