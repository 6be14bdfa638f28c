// Package assets tracks which static files exist in a project's public
// directory and checks icon files against their declared MIME types.
package assets

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/supermodeltools/pwakit/internal/pwa/manifest"
)

// ScanOptions filters which files under the root count as available.
// Patterns are doublestar globs matched against slash-separated paths
// relative to the root.
type ScanOptions struct {
	Include []string
	Exclude []string
}

// Result is the outcome of a scan.
type Result struct {
	Assets manifest.AssetSet
	// Unmatched lists include patterns that matched no file.
	Unmatched []string
}

func (o ScanOptions) include() []string {
	if len(o.Include) == 0 {
		return []string{"**"}
	}
	return o.Include
}

// Validate rejects malformed glob patterns.
func (o ScanOptions) Validate() error {
	for _, p := range append(append([]string{}, o.include()...), o.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid asset pattern %q", p)
		}
	}
	return nil
}

// Keeps reports whether the file at rel, a slash-separated path relative
// to the public dir, is an available asset. Patterns must be valid.
func (o ScanOptions) Keeps(rel string) bool {
	return !matchAny(o.Exclude, rel) && matchAny(o.include(), rel)
}

// Scan walks root on fsys and returns every file kept by opts as a web path.
func Scan(fsys afero.Fs, root string, opts ScanOptions) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	include := opts.include()

	info, err := fsys.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading public dir %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("public path %s is not a directory", root)
	}

	hits := make(map[string]bool, len(include))
	set := manifest.NewAssetSet()
	err = afero.Walk(fsys, root, func(path string, fi fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if !opts.Keeps(rel) {
			return nil
		}
		for _, p := range include {
			if doublestar.MatchUnvalidated(p, rel) {
				hits[p] = true
			}
		}
		set.Add(rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning public dir %s: %w", root, err)
	}

	res := &Result{Assets: set}
	for _, p := range include {
		if !hits[p] {
			res.Unmatched = append(res.Unmatched, p)
		}
	}
	sort.Strings(res.Unmatched)
	return res, nil
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if doublestar.MatchUnvalidated(p, name) {
			return true
		}
	}
	return false
}

// FilePath maps a manifest web path back to a file under root.
func FilePath(root, webPath string) string {
	return filepath.Join(root, filepath.FromSlash(manifest.NormalizeAssetPath(webPath)))
}
