package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cp "github.com/otiai10/copy"
	"github.com/spf13/afero"

	"github.com/supermodeltools/pwakit/internal/logger"
	"github.com/supermodeltools/pwakit/internal/pwa/assets"
	"github.com/supermodeltools/pwakit/internal/pwa/cache"
	"github.com/supermodeltools/pwakit/internal/pwa/config"
	"github.com/supermodeltools/pwakit/internal/pwa/manifest"
	"github.com/supermodeltools/pwakit/internal/pwa/output"
	"github.com/supermodeltools/pwakit/internal/pwa/render"
)

// Builder orchestrates the manifest build pipeline.
type Builder struct {
	cfg   *config.Config
	force bool
	fs    afero.Fs
}

// Plan holds everything a build would write.
type Plan struct {
	Document *manifest.Document
	Manifest []byte
	Head     string
	Assets   int
}

// Stats summarizes a completed build.
type Stats struct {
	Written []string
	Skipped []string
}

// NewBuilder creates a new builder reading assets from the OS filesystem.
func NewBuilder(cfg *config.Config, force bool) *Builder {
	return &Builder{cfg: cfg, force: force, fs: afero.NewOsFs()}
}

// Plan scans assets, builds and validates the manifest, and renders the
// artifacts without touching the output directory.
func (b *Builder) Plan(ctx context.Context) (*Plan, error) {
	log := logger.FromContext(ctx).With("component", "build")

	log.Debug("Scanning public assets", "dir", b.cfg.Paths.Public)
	scan, err := assets.Scan(b.fs, b.cfg.Paths.Public, b.scanOptions())
	if err != nil {
		return nil, fmt.Errorf("scanning assets: %w", err)
	}
	for _, p := range scan.Unmatched {
		log.Warn("Asset pattern matched no files", "pattern", p)
	}
	log.Debug("Scanned public assets", "count", len(scan.Assets))

	doc, err := manifest.Build(b.cfg.ManifestInput(), scan.Assets)
	if err != nil {
		return nil, fmt.Errorf("building manifest: %w", err)
	}
	for _, w := range doc.Warnings() {
		log.Warn("Manifest warning", "field", w.Field, "message", w.Message)
	}

	mismatches, err := assets.CheckIconTypes(ctx, b.fs, b.cfg.Paths.Public, doc)
	if err != nil {
		return nil, fmt.Errorf("checking icon types: %w", err)
	}
	if len(mismatches) > 0 {
		if b.cfg.Assets.StrictTypes {
			errs := make([]error, len(mismatches))
			for i, m := range mismatches {
				errs[i] = m
			}
			return nil, fmt.Errorf("checking icon types: %w", errors.Join(errs...))
		}
		for _, m := range mismatches {
			log.Warn("Icon type mismatch", "src", m.Src, "declared", m.Declared, "detected", m.Detected)
		}
	}

	data, err := output.GenerateManifest(doc)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Document: doc, Manifest: data, Assets: len(scan.Assets)}
	if b.cfg.Output.HeadFilename != "" {
		engine, err := render.NewEngine(b.cfg.Templates.Head)
		if err != nil {
			return nil, fmt.Errorf("initializing render engine: %w", err)
		}
		href := "/" + b.cfg.Output.ManifestFilename
		plan.Head, err = engine.RenderHead(render.NewHeadContext(doc, href))
		if err != nil {
			return nil, fmt.Errorf("rendering head: %w", err)
		}
	}
	return plan, nil
}

// Build runs the complete build pipeline.
func (b *Builder) Build(ctx context.Context) (*Stats, error) {
	start := time.Now()
	log := logger.FromContext(ctx)
	log.Info("Building manifest", "name", b.cfg.Manifest.Name)

	plan, err := b.Plan(ctx)
	if err != nil {
		return nil, err
	}

	outDir := b.cfg.Paths.Output
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	if b.cfg.Output.CopyPublic {
		log.Debug("Copying public assets", "from", b.cfg.Paths.Public, "to", outDir)
		if err := cp.Copy(b.cfg.Paths.Public, outDir, b.copyOptions()); err != nil {
			return nil, fmt.Errorf("copying public assets: %w", err)
		}
	}

	stats := &Stats{}
	if err := b.writeArtifact(ctx, stats, b.cfg.Output.ManifestFilename, plan.Manifest); err != nil {
		return nil, err
	}
	if b.cfg.Output.HeadFilename != "" {
		if err := b.writeArtifact(ctx, stats, b.cfg.Output.HeadFilename, []byte(plan.Head)); err != nil {
			return nil, err
		}
	}

	log.Info("Build complete",
		"icons", len(plan.Document.Icons()),
		"assets", plan.Assets,
		"written", len(stats.Written),
		"unchanged", len(stats.Skipped),
		"output", outDir,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return stats, nil
}

func (b *Builder) scanOptions() assets.ScanOptions {
	return assets.ScanOptions{
		Include: b.cfg.Assets.Include,
		Exclude: b.cfg.Assets.Exclude,
	}
}

// copyOptions skips files that are not available assets, so excluded
// files never reach the output dir.
func (b *Builder) copyOptions() cp.Options {
	opts := b.scanOptions()
	root := b.cfg.Paths.Public
	return cp.Options{
		Skip: func(info os.FileInfo, src, _ string) (bool, error) {
			if info.IsDir() {
				return false, nil
			}
			rel, err := filepath.Rel(root, src)
			if err != nil {
				return false, err
			}
			return !opts.Keeps(filepath.ToSlash(rel)), nil
		},
	}
}

// writeArtifact writes content to the output dir unless the cache and the
// file on disk both already hold it.
func (b *Builder) writeArtifact(ctx context.Context, stats *Stats, name string, content []byte) error {
	path := filepath.Join(b.cfg.Paths.Output, name)
	if !b.force && cache.Unchanged(b.cfg.Paths.Cache, name, content) && onDisk(path, content) {
		logger.FromContext(ctx).Debug("Artifact unchanged", "file", name)
		stats.Skipped = append(stats.Skipped, name)
		return nil
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := cache.Write(b.cfg.Paths.Cache, name, content); err != nil {
		logger.FromContext(ctx).Warn("Failed to update build cache", "file", name, "error", err)
	}
	logger.FromContext(ctx).Info("Wrote artifact", "file", path)
	stats.Written = append(stats.Written, name)
	return nil
}

func onDisk(path string, content []byte) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return cache.Hash(data) == cache.Hash(content)
}
