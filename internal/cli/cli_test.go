package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const habitsYAML = `
manifest:
  name: Liquid Habits
  short_name: Habits
  theme_color: "#000000"
  background_color: "#000000"
  display: standalone
  start_url: /
  icons:
    - src: /vite.svg
      sizes: 192x192
      type: image/svg+xml
    - src: /vite.svg
      sizes: 512x512
      type: image/svg+xml
log:
  level: disabled
`

func project(t *testing.T, withIcon bool) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "public"), 0755))
	if withIcon {
		svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1 1"></svg>`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "public", "vite.svg"), []byte(svg), 0644))
	}
	path := filepath.Join(dir, "pwa.yaml")
	require.NoError(t, os.WriteFile(path, []byte(habitsYAML), 0644))
	return path
}

func run(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	root := NewRootCmd(&stdout, &stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestValidateCmd(t *testing.T) {
	t.Run("Should print the manifest JSON", func(t *testing.T) {
		stdout, _, err := run("validate", "--config", project(t, true), "--print")
		require.NoError(t, err)

		assert.Equal(t, "Habits", gjson.Get(stdout, "short_name").String())
		assert.Equal(t, "512x512", gjson.Get(stdout, "icons.1.sizes").String())
	})

	t.Run("Should fail naming the missing icon asset", func(t *testing.T) {
		_, _, err := run("validate", "-c", project(t, false))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "/vite.svg")
	})
}

func TestLogLevelFlag(t *testing.T) {
	t.Run("Should reject an unknown log level", func(t *testing.T) {
		path := project(t, true)

		_, _, err := run("build", "--config", path, "--log-level", "verbose")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--log-level")
		assert.NoFileExists(t, filepath.Join(filepath.Dir(path), "dist", "manifest.webmanifest"))
	})

	t.Run("Should accept a known log level", func(t *testing.T) {
		_, _, err := run("validate", "--config", project(t, true), "--log-level", "disabled")
		assert.NoError(t, err)
	})
}

func TestBuildCmd(t *testing.T) {
	t.Run("Should write the manifest into the output dir", func(t *testing.T) {
		path := project(t, true)

		_, _, err := run("build", "--config", path)
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(filepath.Dir(path), "dist", "manifest.webmanifest"))
	})

	t.Run("Should fail on a missing config file", func(t *testing.T) {
		_, _, err := run("build", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorContains(t, err, "reading config")
	})
}

func TestVersionCmd(t *testing.T) {
	t.Run("Should print the version", func(t *testing.T) {
		stdout, _, err := run("version")
		require.NoError(t, err)
		assert.Equal(t, "pwakit dev\n", stdout)
	})
}
