package document

import (
	"testing"
	"time"

	"github.com/Pratikmalviya12/template-designer/pkg/errors"
)

func sampleDocument() *Document {
	d := New("tpl-1")
	s := NewSection("sec-1", 2)
	s.Components[0] = append(s.Components[0],
		NewComponent("c-1", KindHeading, DefaultsFor(KindHeading, time.Time{})),
		NewComponent("c-2", KindText, DefaultsFor(KindText, time.Time{})),
	)
	s.Components[1] = append(s.Components[1],
		NewComponent("c-3", KindButton, DefaultsFor(KindButton, time.Time{})),
	)
	d.Template.Sections = append(d.Template.Sections, s, NewSection("sec-2", 1))
	return d
}

func TestNewDefaults(t *testing.T) {
	d := New("abc")
	if d.Template.Name != DefaultTemplateName {
		t.Errorf("Name = %q, want %q", d.Template.Name, DefaultTemplateName)
	}
	if d.Canvas.Width != "600px" || d.Canvas.Height != "auto" {
		t.Errorf("Canvas = %+v, want 600px x auto", d.Canvas)
	}
	if d.Template.Sections == nil || len(d.Template.Sections) != 0 {
		t.Errorf("Sections = %v, want empty non-nil slice", d.Template.Sections)
	}
}

func TestNewSectionColumns(t *testing.T) {
	for _, n := range []int{1, 3, 12} {
		s := NewSection("s", n)
		if s.Columns != n || len(s.Components) != n {
			t.Errorf("NewSection(%d) columns=%d len=%d", n, s.Columns, len(s.Components))
		}
		for i, col := range s.Components {
			if col == nil {
				t.Errorf("column %d is nil", i)
			}
		}
	}
}

func TestLookups(t *testing.T) {
	d := sampleDocument()

	sec, idx := d.Template.Section("sec-2")
	if sec == nil || idx != 1 {
		t.Fatalf("Section(sec-2) = %v, %d", sec, idx)
	}
	if sec, idx := d.Template.Section("missing"); sec != nil || idx != -1 {
		t.Errorf("Section(missing) = %v, %d", sec, idx)
	}

	c, ok := d.ComponentAt(Path{SectionID: "sec-1", Column: 0, Index: 1})
	if !ok || c.ID != "c-2" {
		t.Errorf("ComponentAt = %v, %v; want c-2", c, ok)
	}

	bad := []Path{
		{SectionID: "missing"},
		{SectionID: "sec-1", Column: 2},
		{SectionID: "sec-1", Column: -1},
		{SectionID: "sec-1", Column: 1, Index: 1},
		{SectionID: "sec-1", Column: 0, Index: -1},
	}
	for _, p := range bad {
		if _, ok := d.ComponentAt(p); ok {
			t.Errorf("ComponentAt(%+v) should fail", p)
		}
	}

	p, ok := d.FindComponent("c-3")
	if !ok || p != (Path{SectionID: "sec-1", Column: 1, Index: 0}) {
		t.Errorf("FindComponent(c-3) = %+v, %v", p, ok)
	}
	if _, ok := d.FindComponent("nope"); ok {
		t.Error("FindComponent(nope) should fail")
	}

	if n := d.ComponentCount(); n != 3 {
		t.Errorf("ComponentCount() = %d, want 3", n)
	}
}

func TestWalkStopsEarly(t *testing.T) {
	d := sampleDocument()
	visited := 0
	d.Walk(func(Path, *Component) bool {
		visited++
		return visited < 2
	})
	if visited != 2 {
		t.Errorf("Walk visited %d components, want 2", visited)
	}
}

func TestCloneIsDeep(t *testing.T) {
	d := sampleDocument()
	c := d.Clone()

	c.Template.Name = "Changed"
	c.Template.Sections[0].Components[0][0].Content = "Changed"
	c.Template.Sections[0].Components[0][0].Style.Set("color", "red")
	c.Template.Sections[0].Components[0] = append(c.Template.Sections[0].Components[0], Component{ID: "x"})

	if d.Template.Name == "Changed" {
		t.Error("clone shares template name")
	}
	orig := d.Template.Sections[0].Components[0][0]
	if orig.Content == "Changed" {
		t.Error("clone shares component content")
	}
	if v, _ := orig.Style.Get("color"); v != "#222222" {
		t.Errorf("clone shares style map, color = %q", v)
	}
	if len(d.Template.Sections[0].Components[0]) != 2 {
		t.Error("clone shares column slice")
	}
}

func TestComponentEquality(t *testing.T) {
	a := NewComponent("a", KindButton, DefaultsFor(KindButton, time.Time{}))
	b := a.Clone()
	b.ID = "b"

	if a.Equal(b) {
		t.Error("components with different ids should not be Equal")
	}
	if !a.SameContent(b) {
		t.Error("clone with new id should have SameContent")
	}
	b.Style.Set("color", "#000000")
	if a.SameContent(b) {
		t.Error("style change should break SameContent")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Document)
		wantErr bool
	}{
		{"valid", func(*Document) {}, false},
		{"empty template id", func(d *Document) { d.Template.ID = "" }, true},
		{"section without id", func(d *Document) { d.Template.Sections[1].ID = "" }, true},
		{"duplicate section id", func(d *Document) { d.Template.Sections[1].ID = "sec-1" }, true},
		{"zero columns", func(d *Document) {
			d.Template.Sections[1].Columns = 0
			d.Template.Sections[1].Components = nil
		}, true},
		{"column mismatch", func(d *Document) { d.Template.Sections[0].Columns = 3 }, true},
		{"component without id", func(d *Document) { d.Template.Sections[0].Components[0][0].ID = "" }, true},
		{"component without kind", func(d *Document) { d.Template.Sections[0].Components[1][0].Kind = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := sampleDocument()
			tt.mutate(d)
			err := d.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidDocument) {
				t.Errorf("Validate() code = %v, want INVALID_DOCUMENT", errors.GetCode(err))
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	d := &Document{Template: Template{ID: "x", Sections: []Section{{ID: "s", Columns: 1, Components: []Column{nil}}}}}
	d.Normalize()
	if d.Canvas.Width != DefaultCanvasWidth || d.Canvas.Height != DefaultCanvasHeight {
		t.Errorf("Canvas = %+v", d.Canvas)
	}
	if d.Template.Sections[0].Components[0] == nil {
		t.Error("nil column should be replaced")
	}
}
