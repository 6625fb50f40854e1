// Package pipeline turns a template document into export artifacts.
//
// The CLI, the interactive editor and the HTTP API all export through the
// same [Runner], so every surface produces byte-identical artifacts and
// shares one artifact cache.
//
// # Formats
//
//   - html: the static page produced by [sink.RenderHTML]
//   - json, yaml: the document itself, as written by pkg/io
//   - dot, svg: the structure outline produced by pkg/render/outline
//
// # Caching
//
// Artifacts are cached under the SHA-256 of the document's canonical JSON.
// Two documents with the same content share cache entries regardless of
// which surface exported them.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Export(ctx, ed.Snapshot(), pipeline.Options{
//	    Formats: []string{"html", "svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	page := result.Artifacts["html"]
//
// [sink.RenderHTML]: github.com/Pratikmalviya12/template-designer/pkg/render/sink.RenderHTML
package pipeline

import (
	"strings"
	"time"

	"github.com/Pratikmalviya12/template-designer/pkg/errors"
)

// =============================================================================
// Formats
// =============================================================================

// Format constants for export artifacts.
const (
	FormatHTML = "html"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// DefaultFormat is exported when no format is requested.
const DefaultFormat = FormatHTML

// ValidFormats is the set of supported export formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatJSON: true,
	FormatYAML: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// formatOrder lists formats for messages.
var formatOrder = []string{FormatHTML, FormatJSON, FormatYAML, FormatDOT, FormatSVG}

// Extension returns the file extension for a format, including the dot.
func Extension(format string) string {
	return "." + format
}

// ContentType returns the MIME type served for a format.
func ContentType(format string) string {
	switch format {
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatSVG:
		return "image/svg+xml"
	case FormatDOT:
		return "text/vnd.graphviz"
	}
	return "application/octet-stream"
}

// =============================================================================
// Options & Results
// =============================================================================

// Options configures one export.
type Options struct {
	// Formats to produce. Empty means [DefaultFormat].
	Formats []string

	// Refresh skips cache lookups. Fresh artifacts are still written back.
	Refresh bool
}

// Result holds the output of one export.
type Result struct {
	Artifacts map[string][]byte // Format -> rendered bytes
	Hash      string            // SHA-256 of the document's canonical JSON
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains timing and size information.
type Stats struct {
	SectionCount   int
	ComponentCount int
	HashTime       time.Duration
	RenderTime     time.Duration
}

// CacheInfo reports which artifacts came from the cache.
type CacheInfo struct {
	Hits   []string // Formats served from cache
	Misses []string // Formats rendered fresh
}

// AllHit reports whether every artifact came from the cache.
func (c CacheInfo) AllHit() bool {
	return len(c.Misses) == 0 && len(c.Hits) > 0
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(formatOrder, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// normalize validates the options and applies defaults. Duplicate formats
// are collapsed, keeping the first occurrence.
func (o *Options) normalize() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	seen := make(map[string]bool, len(o.Formats))
	out := o.Formats[:0:0]
	for _, f := range o.Formats {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	o.Formats = out
	return nil
}
