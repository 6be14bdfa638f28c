package build

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/supermodeltools/pwakit/internal/logger"
	"github.com/supermodeltools/pwakit/internal/pwa/config"
	"github.com/supermodeltools/pwakit/internal/pwa/manifest"
)

const svg = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32"><rect width="32" height="32"/></svg>`

const habitsYAML = `
manifest:
  name: Liquid Habits
  short_name: Habits
  description: Track your habits with style
  theme_color: "#000000"
  background_color: "#000000"
  display: standalone
  start_url: /
  icons:
    - src: /vite.svg
      sizes: 512x512
      type: image/svg+xml
    - src: /vite.svg
      sizes: 192x192
      type: image/svg+xml
output:
  head_filename: head.html
`

func setup(t *testing.T, yaml string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "public"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public", "vite.svg"), []byte(svg), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pwa.yaml"), []byte(yaml), 0644))

	cfg, err := config.Load(filepath.Join(dir, "pwa.yaml"))
	require.NoError(t, err)
	return cfg
}

func TestBuilder_Build(t *testing.T) {
	ctx := logger.ContextWithLogger(context.Background(), logger.NewLogger(logger.TestConfig()))

	t.Run("Should write the manifest and head snippet", func(t *testing.T) {
		cfg := setup(t, habitsYAML)

		stats, err := NewBuilder(cfg, false).Build(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"manifest.webmanifest", "head.html"}, stats.Written)

		data, err := os.ReadFile(filepath.Join(cfg.Paths.Output, "manifest.webmanifest"))
		require.NoError(t, err)
		out := gjson.ParseBytes(data)
		assert.Equal(t, "Liquid Habits", out.Get("name").String())
		assert.Equal(t, "192x192", out.Get("icons.0.sizes").String())
		assert.Equal(t, "512x512", out.Get("icons.1.sizes").String())

		head, err := os.ReadFile(filepath.Join(cfg.Paths.Output, "head.html"))
		require.NoError(t, err)
		assert.Contains(t, string(head), `href="/manifest.webmanifest"`)
	})

	t.Run("Should skip unchanged artifacts unless forced", func(t *testing.T) {
		cfg := setup(t, habitsYAML)

		_, err := NewBuilder(cfg, false).Build(ctx)
		require.NoError(t, err)

		stats, err := NewBuilder(cfg, false).Build(ctx)
		require.NoError(t, err)
		assert.Empty(t, stats.Written)
		assert.Len(t, stats.Skipped, 2)

		stats, err = NewBuilder(cfg, true).Build(ctx)
		require.NoError(t, err)
		assert.Len(t, stats.Written, 2)
	})

	t.Run("Should rewrite an artifact deleted from the output dir", func(t *testing.T) {
		cfg := setup(t, habitsYAML)
		_, err := NewBuilder(cfg, false).Build(ctx)
		require.NoError(t, err)
		require.NoError(t, os.Remove(filepath.Join(cfg.Paths.Output, "manifest.webmanifest")))

		stats, err := NewBuilder(cfg, false).Build(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"manifest.webmanifest"}, stats.Written)
	})

	t.Run("Should copy public assets when enabled", func(t *testing.T) {
		cfg := setup(t, habitsYAML+"  copy_public: true\n")

		_, err := NewBuilder(cfg, false).Build(ctx)
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(cfg.Paths.Output, "vite.svg"))
	})

	t.Run("Should not copy files excluded from the assets", func(t *testing.T) {
		cfg := setup(t, habitsYAML+"  copy_public: true\nassets:\n  exclude: [\"**/*.psd\"]\n")
		src := filepath.Join(cfg.Paths.Public, "design", "icon.psd")
		require.NoError(t, os.MkdirAll(filepath.Dir(src), 0755))
		require.NoError(t, os.WriteFile(src, []byte("8BPS"), 0644))

		_, err := NewBuilder(cfg, false).Build(ctx)
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(cfg.Paths.Output, "vite.svg"))
		assert.NoFileExists(t, filepath.Join(cfg.Paths.Output, "design", "icon.psd"))
	})

	t.Run("Should abort on a missing icon asset without writing", func(t *testing.T) {
		cfg := setup(t, habitsYAML)
		cfg.Manifest.Icons[0].Src = "/icons/512.png"

		_, err := NewBuilder(cfg, false).Build(ctx)
		require.Error(t, err)
		var ma *manifest.MissingAssetError
		require.ErrorAs(t, err, &ma)
		assert.Equal(t, "/icons/512.png", ma.Path)
		assert.NoFileExists(t, filepath.Join(cfg.Paths.Output, "manifest.webmanifest"))
	})

	t.Run("Should fail on a type mismatch only in strict mode", func(t *testing.T) {
		cfg := setup(t, habitsYAML)
		cfg.Manifest.Icons[0].Type = "image/png"

		_, err := NewBuilder(cfg, false).Plan(ctx)
		require.NoError(t, err)

		cfg.Assets.StrictTypes = true
		_, err = NewBuilder(cfg, false).Plan(ctx)
		assert.ErrorContains(t, err, "icon type mismatch")
	})
}
