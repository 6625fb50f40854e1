package editor

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/Pratikmalviya12/template-designer/pkg/document"
	"github.com/Pratikmalviya12/template-designer/pkg/ident"
	"github.com/Pratikmalviya12/template-designer/pkg/observability"
)

// Editor applies mutations to a document and tracks the selection.
type Editor struct {
	doc    *document.Document
	ids    ident.Generator
	now    func() time.Time
	logger *log.Logger

	sel     *Selection
	section string
}

// Option configures an Editor.
type Option func(*Editor)

// WithIDGenerator sets the generator for new section and component ids.
func WithIDGenerator(g ident.Generator) Option {
	return func(e *Editor) {
		if g != nil {
			e.ids = g
		}
	}
}

// WithClock sets the time source used for timer defaults.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLogger sets the logger for no-op and payload diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an editor for doc. A nil doc starts a fresh document with a
// generated template id.
func New(doc *document.Document, opts ...Option) *Editor {
	e := &Editor{
		ids:    ident.Default,
		now:    time.Now,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if doc == nil {
		doc = document.New(e.ids.NewID())
	}
	doc.Normalize()
	e.doc = doc
	return e
}

// Document returns the live document. Callers must treat it as read-only;
// use [Editor.Snapshot] for a copy that can outlive further edits.
func (e *Editor) Document() *document.Document {
	return e.doc
}

// Snapshot returns a deep copy of the current document.
func (e *Editor) Snapshot() *document.Document {
	return e.doc.Clone()
}

// Replace swaps in a different document and clears both selections.
func (e *Editor) Replace(doc *document.Document) {
	if doc == nil {
		e.record("replace", false)
		return
	}
	doc.Normalize()
	e.doc = doc
	e.sel = nil
	e.section = ""
	e.record("replace", true)
}

// =============================================================================
// Template-level Operations
// =============================================================================

// UpdateTemplateName replaces the template's display name.
func (e *Editor) UpdateTemplateName(name string) {
	e.doc.Template.Name = name
	e.record("updateTemplateName", true)
}

// UpdateCanvasDimensions replaces whichever of width and height is non-empty.
func (e *Editor) UpdateCanvasDimensions(width, height string) {
	if width == "" && height == "" {
		e.record("updateCanvasDimensions", false)
		return
	}
	if width != "" {
		e.doc.Canvas.Width = width
	}
	if height != "" {
		e.doc.Canvas.Height = height
	}
	e.record("updateCanvasDimensions", true)
}

// =============================================================================
// Helpers
// =============================================================================

// record reports an operation to the hooks and logs no-ops.
func (e *Editor) record(op string, applied bool, kv ...any) {
	observability.Editor().OnMutation(op, applied)
	if !applied {
		e.logger.Debug("no-op", append([]any{"op", op}, kv...)...)
	}
}

// columnOf returns the section holding column col, or nil.
func (e *Editor) columnOf(sectionID string, col int) *document.Section {
	sec, _ := e.doc.Template.Section(sectionID)
	if sec == nil || col < 0 || col >= len(sec.Components) {
		return nil
	}
	return sec
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
