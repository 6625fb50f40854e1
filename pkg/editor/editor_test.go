package editor

import (
	"testing"
	"time"

	"github.com/Pratikmalviya12/template-designer/pkg/document"
	"github.com/Pratikmalviya12/template-designer/pkg/ident"
	"github.com/Pratikmalviya12/template-designer/pkg/observability"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestEditor() *Editor {
	return New(nil,
		WithIDGenerator(ident.NewSequence("id")),
		WithClock(func() time.Time { return fixedNow }))
}

// checkShape fails if any section's column count disagrees with its columns.
func checkShape(t *testing.T, e *Editor) {
	t.Helper()
	for _, s := range e.Document().Template.Sections {
		if len(s.Components) != s.Columns {
			t.Fatalf("section %s: %d columns, Columns = %d", s.ID, len(s.Components), s.Columns)
		}
	}
}

// checkSelection fails if the selection does not match the document.
func checkSelection(t *testing.T, e *Editor) {
	t.Helper()
	sel, ok := e.Selection()
	if !ok {
		return
	}
	c, found := e.Document().ComponentAt(sel.Path())
	if !found {
		t.Fatalf("selection %+v is stale", sel.Path())
	}
	if !c.Equal(sel.Component) {
		t.Fatalf("selection snapshot %+v differs from component %+v", sel.Component, *c)
	}
}

func ids(col document.Column) []string {
	out := make([]string, len(col))
	for i, c := range col {
		out[i] = c.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNew(t *testing.T) {
	e := newTestEditor()
	doc := e.Document()

	if doc.Template.ID != "id-1" {
		t.Errorf("Template.ID = %q, want id-1", doc.Template.ID)
	}
	if doc.Template.Name != document.DefaultTemplateName {
		t.Errorf("Name = %q", doc.Template.Name)
	}
	if doc.Canvas.Width != "600px" || doc.Canvas.Height != "auto" {
		t.Errorf("Canvas = %+v", doc.Canvas)
	}
	if _, ok := e.Selection(); ok {
		t.Error("fresh editor has a selection")
	}
}

func TestNewNormalizesDocument(t *testing.T) {
	doc := &document.Document{Template: document.Template{ID: "t"}}
	e := New(doc)
	if e.Document().Canvas.Width != document.DefaultCanvasWidth {
		t.Errorf("Canvas.Width = %q", e.Document().Canvas.Width)
	}
	if e.Document().Template.Sections == nil {
		t.Error("Sections left nil")
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	e := newTestEditor()
	sid := e.AddSection(1)
	e.AddComponent(sid, 0, document.KindText)

	snap := e.Snapshot()
	e.UpdateComponentStyle(sid, 0, 0, "color", "red")
	e.AddSection(3)

	if len(snap.Template.Sections) != 1 {
		t.Errorf("snapshot sections = %d, want 1", len(snap.Template.Sections))
	}
	if v, _ := snap.Template.Sections[0].Components[0][0].Style.Get("color"); v != "#333333" {
		t.Errorf("snapshot color = %q, want #333333", v)
	}
}

func TestReplace(t *testing.T) {
	e := newTestEditor()
	sid := e.AddSection(1)
	e.AddComponent(sid, 0, document.KindText)
	e.SelectComponent(sid, 0, 0)
	e.SelectSection(sid)

	e.Replace(document.New("other"))

	if e.Document().Template.ID != "other" {
		t.Errorf("Template.ID = %q", e.Document().Template.ID)
	}
	if _, ok := e.Selection(); ok {
		t.Error("selection survived Replace")
	}
	if _, ok := e.SelectedSection(); ok {
		t.Error("section selection survived Replace")
	}

	e.Replace(nil)
	if e.Document().Template.ID != "other" {
		t.Error("Replace(nil) changed the document")
	}
}

func TestUpdateTemplateName(t *testing.T) {
	e := newTestEditor()
	e.UpdateTemplateName("Spring Sale")
	if got := e.Document().Template.Name; got != "Spring Sale" {
		t.Errorf("Name = %q", got)
	}
	e.UpdateTemplateName("")
	if got := e.Document().Template.Name; got != "" {
		t.Errorf("Name = %q, want empty", got)
	}
}

func TestUpdateCanvasDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height string
		wantW, wantH  string
	}{
		{"both", "800px", "1200px", "800px", "1200px"},
		{"width only", "320px", "", "320px", "auto"},
		{"height only", "", "500px", "600px", "500px"},
		{"neither", "", "", "600px", "auto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor()
			e.UpdateCanvasDimensions(tt.width, tt.height)
			c := e.Document().Canvas
			if c.Width != tt.wantW || c.Height != tt.wantH {
				t.Errorf("Canvas = %+v, want {%s %s}", c, tt.wantW, tt.wantH)
			}
		})
	}
}

type countingHooks struct {
	applied, skipped map[string]int
}

func (h *countingHooks) OnMutation(op string, applied bool) {
	if applied {
		h.applied[op]++
	} else {
		h.skipped[op]++
	}
}

func TestMutationHooks(t *testing.T) {
	h := &countingHooks{applied: map[string]int{}, skipped: map[string]int{}}
	observability.SetEditorHooks(h)
	defer observability.Reset()

	e := newTestEditor()
	sid := e.AddSection(2)
	e.AddComponent(sid, 0, document.KindText)
	e.RemoveSection("missing")
	e.AddComponent("missing", 0, document.KindText)

	if h.applied["addSection"] != 1 || h.applied["addComponent"] != 1 {
		t.Errorf("applied = %v", h.applied)
	}
	if h.skipped["removeSection"] != 1 || h.skipped["addComponent"] != 1 {
		t.Errorf("skipped = %v", h.skipped)
	}
}
