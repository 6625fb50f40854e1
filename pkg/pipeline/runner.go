package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/Pratikmalviya12/template-designer/pkg/cache"
	"github.com/Pratikmalviya12/template-designer/pkg/document"
	"github.com/Pratikmalviya12/template-designer/pkg/errors"
	pkgio "github.com/Pratikmalviya12/template-designer/pkg/io"
	"github.com/Pratikmalviya12/template-designer/pkg/observability"
	"github.com/Pratikmalviya12/template-designer/pkg/render/outline"
	"github.com/Pratikmalviya12/template-designer/pkg/render/sink"
)

// Runner encapsulates export execution with caching.
// The CLI, the terminal editor and the HTTP API share it so caching logic
// lives in one place.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different documents.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Export renders doc in every requested format.
//
// The document is copied before rendering, so the caller may keep editing
// it while the export runs. Formats render concurrently; the first failure
// cancels the rest and is returned.
func (r *Runner) Export(ctx context.Context, doc *document.Document, opts Options) (result *Result, err error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "no document to export")
	}
	if err := opts.normalize(); err != nil {
		return nil, err
	}

	hooks := observability.Export()
	hooks.OnExportStart(ctx, opts.Formats)
	start := time.Now()
	defer func() {
		hooks.OnExportComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	snap := doc.Clone()
	result = &Result{Artifacts: make(map[string][]byte, len(opts.Formats))}
	result.Stats.SectionCount = len(snap.Template.Sections)
	result.Stats.ComponentCount = snap.ComponentCount()

	// Stage 1: Hash
	hashStart := time.Now()
	canonical, err := pkgio.MarshalJSON(snap)
	if err != nil {
		return nil, fmt.Errorf("hash: %w", err)
	}
	result.Hash = cache.Hash(canonical)
	result.Stats.HashTime = time.Since(hashStart)

	// Stage 2: Render
	renderStart := time.Now()
	data := make([][]byte, len(opts.Formats))
	hits := make([]bool, len(opts.Formats))

	g, gctx := errgroup.WithContext(ctx)
	for i, format := range opts.Formats {
		g.Go(func() error {
			out, hit, err := r.artifact(gctx, snap, result.Hash, format, opts.Refresh)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			data[i], hits[i] = out, hit
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, format := range opts.Formats {
		result.Artifacts[format] = data[i]
		if hits[i] {
			result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
		} else {
			result.CacheInfo.Misses = append(result.CacheInfo.Misses, format)
		}
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("exported template",
		"template", snap.Template.ID,
		"formats", opts.Formats,
		"cached", len(result.CacheInfo.Hits),
		"duration", time.Since(start))

	return result, nil
}

// artifact returns one format, from the cache when possible.
func (r *Runner) artifact(ctx context.Context, doc *document.Document, hash, format string, refresh bool) ([]byte, bool, error) {
	key := r.Keyer.ExportKey(hash, format)
	hooks := observability.Cache()

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			hooks.OnCacheHit(ctx, format)
			return data, true, nil
		} else if err != nil {
			r.Logger.Debug("cache lookup failed", "key", key, "error", err)
		}
	}
	hooks.OnCacheMiss(ctx, format)

	data, err := Render(ctx, doc, format)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
	} else {
		hooks.OnCacheSet(ctx, format, len(data))
	}
	return data, false, nil
}

// Render produces a single format without caching.
func Render(ctx context.Context, doc *document.Document, format string) ([]byte, error) {
	switch format {
	case FormatHTML:
		return sink.RenderHTML(doc), nil
	case FormatJSON, FormatYAML:
		var buf bytes.Buffer
		if err := pkgio.Encode(doc, pkgio.Codec(format), &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatDOT:
		return []byte(outline.ToDOT(doc, outline.Options{Detailed: true})), nil
	case FormatSVG:
		return outline.RenderSVG(ctx, outline.ToDOT(doc, outline.Options{Detailed: true}))
	}
	return nil, ValidateFormat(format)
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
