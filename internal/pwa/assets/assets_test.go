package assets

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supermodeltools/pwakit/internal/pwa/manifest"
)

var (
	svgIcon = []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32"><rect width="32" height="32"/></svg>`)
	pngIcon = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
)

func publicFs(t *testing.T) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	files := map[string][]byte{
		"/site/public/vite.svg":          svgIcon,
		"/site/public/icons/192.png":     pngIcon,
		"/site/public/icons/512.png":     pngIcon,
		"/site/public/icons/source.psd":  []byte("8BPS"),
		"/site/public/robots.txt":        []byte("User-agent: *\n"),
		"/site/public/fonts/inter.woff2": []byte("wOF2"),
	}
	for name, data := range files {
		require.NoError(t, afero.WriteFile(fsys, name, data, 0644))
	}
	return fsys
}

func TestScan(t *testing.T) {
	t.Run("Should return every file as a web path by default", func(t *testing.T) {
		res, err := Scan(publicFs(t), "/site/public", ScanOptions{})
		require.NoError(t, err)

		assert.True(t, res.Assets.Has("/vite.svg"))
		assert.True(t, res.Assets.Has("/icons/192.png"))
		assert.True(t, res.Assets.Has("/fonts/inter.woff2"))
		assert.Len(t, res.Assets, 6)
		assert.Empty(t, res.Unmatched)
	})

	t.Run("Should apply include and exclude globs", func(t *testing.T) {
		res, err := Scan(publicFs(t), "/site/public", ScanOptions{
			Include: []string{"icons/**", "*.svg", "images/**"},
			Exclude: []string{"**/*.psd"},
		})
		require.NoError(t, err)

		assert.Equal(t, manifest.NewAssetSet("/vite.svg", "/icons/192.png", "/icons/512.png"), res.Assets)
		assert.Equal(t, []string{"images/**"}, res.Unmatched)
	})

	t.Run("Should fail when the public dir is missing", func(t *testing.T) {
		_, err := Scan(afero.NewMemMapFs(), "/nowhere", ScanOptions{})
		assert.ErrorContains(t, err, "reading public dir")
	})

	t.Run("Should fail when the public path is a file", func(t *testing.T) {
		_, err := Scan(publicFs(t), "/site/public/vite.svg", ScanOptions{})
		assert.ErrorContains(t, err, "not a directory")
	})

	t.Run("Should reject an invalid pattern", func(t *testing.T) {
		_, err := Scan(publicFs(t), "/site/public", ScanOptions{Include: []string{"icons/[a-"}})
		assert.ErrorContains(t, err, "invalid asset pattern")
	})
}

func buildDoc(t *testing.T, icons ...manifest.Icon) *manifest.Document {
	t.Helper()
	doc, err := manifest.Build(manifest.Config{
		Name:            "Liquid Habits",
		ShortName:       "Habits",
		ThemeColor:      "#000000",
		BackgroundColor: "#000000",
		Display:         manifest.DisplayStandalone,
		StartURL:        "/",
		Icons:           icons,
	}, manifest.NewAssetSet("/vite.svg", "/icons/192.png", "/icons/512.png"))
	require.NoError(t, err)
	return doc
}

func TestCheckIconTypes(t *testing.T) {
	t.Run("Should report no mismatch when declared types match content", func(t *testing.T) {
		doc := buildDoc(t,
			manifest.Icon{Src: "/vite.svg", Sizes: "192x192", Type: "image/svg+xml"},
			manifest.Icon{Src: "/icons/512.png", Sizes: "512x512", Type: "image/png"},
		)

		mismatches, err := CheckIconTypes(context.Background(), publicFs(t), "/site/public", doc)
		require.NoError(t, err)
		assert.Empty(t, mismatches)
	})

	t.Run("Should report a PNG declared as SVG", func(t *testing.T) {
		doc := buildDoc(t,
			manifest.Icon{Src: "/vite.svg", Sizes: "192x192", Type: "image/svg+xml"},
			manifest.Icon{Src: "/icons/512.png", Sizes: "512x512", Type: "image/svg+xml"},
		)

		mismatches, err := CheckIconTypes(context.Background(), publicFs(t), "/site/public", doc)
		require.NoError(t, err)
		require.Len(t, mismatches, 1)
		assert.Equal(t, "/icons/512.png", mismatches[0].Src)
		assert.Equal(t, "image/png", mismatches[0].Detected)
		assert.ErrorIs(t, mismatches[0], ErrIconTypeMismatch)
	})

	t.Run("Should skip icons without a declared type", func(t *testing.T) {
		doc := buildDoc(t,
			manifest.Icon{Src: "/icons/192.png", Sizes: "192x192"},
			manifest.Icon{Src: "/icons/512.png", Sizes: "512x512"},
		)

		mismatches, err := CheckIconTypes(context.Background(), afero.NewMemMapFs(), "/site/public", doc)
		require.NoError(t, err)
		assert.Empty(t, mismatches)
	})

	t.Run("Should return read errors", func(t *testing.T) {
		doc := buildDoc(t, manifest.Icon{Src: "/icons/512.png", Sizes: "512x512", Type: "image/png"})

		_, err := CheckIconTypes(context.Background(), afero.NewMemMapFs(), "/site/public", doc)
		assert.ErrorContains(t, err, "sniffing /icons/512.png")
	})
}
