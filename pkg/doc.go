// Package pkg provides the core libraries of templatedesigner, a visual
// editor for email and landing page templates.
//
// # Overview
//
// A template is a list of sections; each section holds a fixed number of
// columns; each column holds an ordered list of components (text, headings,
// images, buttons, video, timers, menus, social links and raw HTML). The pkg
// directory is organized by concern:
//
//  1. [document] - The tree types, component kinds and per-kind defaults
//  2. [editor] - The mutation engine, selection and drag-and-drop handling
//  3. [render] - Deterministic HTML output and a Graphviz outline
//  4. [pipeline] - Concurrent multi-format export with caching
//  5. [store] - Persistence on files, SQLite, Redis or MongoDB
//
// # Architecture
//
// The typical data flow:
//
//	JSON/YAML file or store
//	         ↓
//	    [io] / [store] (decode and normalize)
//	         ↓
//	    [editor] (mutations, selection)
//	         ↓
//	    [pipeline] → [render/sink], [render/outline]
//	         ↓
//	    HTML/JSON/YAML/DOT/SVG output
//
// # Quick Start
//
// Build a two-column section and export it:
//
//	ed := editor.New(nil)
//	ed.UpdateTemplateName("Spring Sale")
//	sid := ed.AddSection(2)
//	ed.AddComponent(sid, 0, document.KindHeading)
//	ed.AddComponent(sid, 1, document.KindButton)
//
//	html := sink.RenderHTML(ed.Document())
//
// Export several formats at once, reusing cached artifacts:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := runner.Export(ctx, ed.Document(), pipeline.Options{
//	    Formats: []string{"html", "json", "svg"},
//	})
//
// # Supporting Packages
//
// [errors] - Coded errors shared by every layer; the HTTP server and CLI map
// codes to statuses and exit messages.
//
// [ident] - Id generation strategies (UUID, ULID, sequential).
//
// [config] - TOML configuration with XDG paths and environment overrides.
//
// [cache] - Export cache backends (file, Redis, null) and retry helpers.
//
// [observability] - Hook points for editor, store and HTTP events.
//
// [buildinfo] - Version metadata set at build time.
//
// [document]: https://pkg.go.dev/github.com/Pratikmalviya12/template-designer/pkg/document
// [editor]: https://pkg.go.dev/github.com/Pratikmalviya12/template-designer/pkg/editor
// [render]: https://pkg.go.dev/github.com/Pratikmalviya12/template-designer/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/Pratikmalviya12/template-designer/pkg/render/sink
// [render/outline]: https://pkg.go.dev/github.com/Pratikmalviya12/template-designer/pkg/render/outline
// [pipeline]: https://pkg.go.dev/github.com/Pratikmalviya12/template-designer/pkg/pipeline
// [store]: https://pkg.go.dev/github.com/Pratikmalviya12/template-designer/pkg/store
// [io]: https://pkg.go.dev/github.com/Pratikmalviya12/template-designer/pkg/io
// [errors]: https://pkg.go.dev/github.com/Pratikmalviya12/template-designer/pkg/errors
// [ident]: https://pkg.go.dev/github.com/Pratikmalviya12/template-designer/pkg/ident
// [config]: https://pkg.go.dev/github.com/Pratikmalviya12/template-designer/pkg/config
// [cache]: https://pkg.go.dev/github.com/Pratikmalviya12/template-designer/pkg/cache
// [observability]: https://pkg.go.dev/github.com/Pratikmalviya12/template-designer/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/Pratikmalviya12/template-designer/pkg/buildinfo
package pkg
