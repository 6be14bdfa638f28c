package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load reads and parses a YAML config file, applies defaults, and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.ConfigDir = filepath.Dir(path)
	if err := applyDefaults(&cfg); err != nil {
		return nil, fmt.Errorf("applying defaults: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	// Resolve relative paths against config directory
	resolvePaths(&cfg)

	if err := validateLayout(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Parse decodes YAML, applies defaults and validates. Paths stay as written.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := applyDefaults(&cfg); err != nil {
		return nil, fmt.Errorf("applying defaults: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	if err := validateLayout(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// Defaults returns the values used for any build setting the file leaves
// empty. Manifest members are never defaulted.
func Defaults() Config {
	return Config{
		Paths: PathsConfig{
			Public: "public",
			Output: "dist",
			Cache:  ".cache/pwakit",
		},
		Assets: AssetsConfig{
			Include: []string{"**"},
		},
		Output: OutputConfig{
			ManifestFilename: "manifest.webmanifest",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func applyDefaults(cfg *Config) error {
	return mergo.Merge(cfg, Defaults())
}

func validate(cfg *Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	return v.Struct(cfg)
}

// validateLayout rejects an output dir that is the public dir or lies
// inside it; copying the public dir into it would recurse.
func validateLayout(cfg *Config) error {
	public := filepath.Clean(cfg.Paths.Public)
	out := filepath.Clean(cfg.Paths.Output)
	rel, err := filepath.Rel(public, out)
	if err != nil {
		return nil
	}
	if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
		return fmt.Errorf("paths.output %s must not be inside paths.public %s", cfg.Paths.Output, cfg.Paths.Public)
	}
	return nil
}

func resolvePaths(cfg *Config) {
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(cfg.ConfigDir, p)
	}

	cfg.Paths.Public = resolve(cfg.Paths.Public)
	cfg.Paths.Output = resolve(cfg.Paths.Output)
	if cfg.Paths.Cache != "" {
		cfg.Paths.Cache = resolve(cfg.Paths.Cache)
	}
	if cfg.Templates.Head != "" {
		cfg.Templates.Head = resolve(cfg.Templates.Head)
	}
}
