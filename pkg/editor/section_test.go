package editor

import (
	"testing"

	"github.com/Pratikmalviya12/template-designer/pkg/document"
)

func TestAddSection(t *testing.T) {
	tests := []struct {
		name    string
		columns int
		wantID  bool
	}{
		{"one column", 1, true},
		{"three columns", 3, true},
		{"twelve columns", 12, true},
		{"zero", 0, false},
		{"negative", -2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor()
			id := e.AddSection(tt.columns)
			if (id != "") != tt.wantID {
				t.Fatalf("AddSection(%d) = %q", tt.columns, id)
			}
			if !tt.wantID {
				if n := len(e.Document().Template.Sections); n != 0 {
					t.Errorf("sections = %d, want 0", n)
				}
				return
			}
			sec, _ := e.Document().Template.Section(id)
			if sec == nil {
				t.Fatalf("section %q not found", id)
			}
			if sec.Columns != tt.columns || len(sec.Components) != tt.columns {
				t.Errorf("section = %d/%d columns, want %d", sec.Columns, len(sec.Components), tt.columns)
			}
			for i, col := range sec.Components {
				if col == nil || len(col) != 0 {
					t.Errorf("column %d = %v, want empty non-nil", i, col)
				}
			}
		})
	}
}

func TestAddSectionAppends(t *testing.T) {
	e := newTestEditor()
	a := e.AddSection(1)
	b := e.AddSection(2)
	if a == b {
		t.Fatalf("ids collide: %q", a)
	}
	secs := e.Document().Template.Sections
	if len(secs) != 2 || secs[0].ID != a || secs[1].ID != b {
		t.Errorf("sections = %+v", secs)
	}
}

func TestRemoveSection(t *testing.T) {
	e := newTestEditor()
	a := e.AddSection(1)
	b := e.AddSection(1)
	e.AddComponent(a, 0, document.KindText)
	e.AddComponent(b, 0, document.KindText)

	t.Run("clears selection inside", func(t *testing.T) {
		e.SelectComponent(a, 0, 0)
		e.SelectSection(a)
		e.RemoveSection(a)
		if e.Document().Template.HasSection(a) {
			t.Error("section still present")
		}
		if _, ok := e.Selection(); ok {
			t.Error("selection not cleared")
		}
		if _, ok := e.SelectedSection(); ok {
			t.Error("section selection not cleared")
		}
	})

	t.Run("keeps selection elsewhere", func(t *testing.T) {
		c := e.AddSection(1)
		e.SelectComponent(b, 0, 0)
		e.RemoveSection(c)
		if _, ok := e.Selection(); !ok {
			t.Error("unrelated selection cleared")
		}
		checkSelection(t, e)
	})

	t.Run("missing id", func(t *testing.T) {
		before := e.Snapshot()
		e.RemoveSection("nope")
		if len(e.Document().Template.Sections) != len(before.Template.Sections) {
			t.Error("missing id removed something")
		}
	})
}

func TestDuplicateSection(t *testing.T) {
	e := newTestEditor()
	sid := e.AddSection(2)
	cid := e.AddComponent(sid, 1, document.KindButton)

	dup := e.DuplicateSection(sid)
	if dup == "" || dup == sid {
		t.Fatalf("DuplicateSection = %q", dup)
	}
	secs := e.Document().Template.Sections
	if len(secs) != 2 || secs[1].ID != dup {
		t.Fatalf("copy not appended: %+v", secs)
	}
	if got := secs[1].Components[1][0].ID; got != cid {
		t.Errorf("copied component id = %q, want %q", got, cid)
	}

	// The copy is deep.
	e.UpdateComponentStyle(dup, 1, 0, "color", "red")
	if v, _ := secs[0].Components[1][0].Style.Get("color"); v != "#ffffff" {
		t.Errorf("original color = %q, want #ffffff", v)
	}

	if got := e.DuplicateSection("missing"); got != "" {
		t.Errorf("DuplicateSection(missing) = %q", got)
	}
	checkShape(t, e)
}

func TestUpdateSectionGrow(t *testing.T) {
	e := newTestEditor()
	sid := e.AddSection(1)
	e.AddComponent(sid, 0, document.KindText)

	n := 3
	e.UpdateSection(sid, SectionUpdate{Columns: &n})

	sec, _ := e.Document().Template.Section(sid)
	if sec.Columns != 3 || len(sec.Components) != 3 {
		t.Fatalf("columns = %d/%d", sec.Columns, len(sec.Components))
	}
	if len(sec.Components[0]) != 1 || len(sec.Components[1]) != 0 || len(sec.Components[2]) != 0 {
		t.Errorf("components = %v", sec.Components)
	}
}

func TestUpdateSectionShrinkFolds(t *testing.T) {
	e := newTestEditor()
	sid := e.AddSection(3)
	a := e.AddComponent(sid, 0, document.KindText)
	b := e.AddComponent(sid, 1, document.KindHeading)
	c := e.AddComponent(sid, 2, document.KindButton)
	d := e.AddComponent(sid, 2, document.KindImage)
	e.SelectComponent(sid, 2, 1)

	n := 1
	e.UpdateSection(sid, SectionUpdate{Columns: &n})

	sec, _ := e.Document().Template.Section(sid)
	if sec.Columns != 1 || len(sec.Components) != 1 {
		t.Fatalf("columns = %d/%d", sec.Columns, len(sec.Components))
	}
	want := []string{a, b, c, d}
	if got := ids(sec.Components[0]); !equalIDs(got, want) {
		t.Errorf("column 0 = %v, want %v", got, want)
	}

	sel, ok := e.Selection()
	if !ok {
		t.Fatal("selection lost")
	}
	if sel.ColumnIndex != 0 || sel.Index != 3 || sel.Component.ID != d {
		t.Errorf("selection = %+v, want column 0 index 3 (%s)", sel.Path(), d)
	}
	checkSelection(t, e)
	checkShape(t, e)
}

func TestUpdateSectionNoOps(t *testing.T) {
	e := newTestEditor()
	sid := e.AddSection(2)
	zero := 0

	tests := []struct {
		name string
		id   string
		u    SectionUpdate
	}{
		{"missing section", "nope", SectionUpdate{}},
		{"nil columns", sid, SectionUpdate{}},
		{"zero columns", sid, SectionUpdate{Columns: &zero}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e.UpdateSection(tt.id, tt.u)
			sec, _ := e.Document().Template.Section(sid)
			if sec.Columns != 2 {
				t.Errorf("Columns = %d, want 2", sec.Columns)
			}
		})
	}
}

func TestRenameSection(t *testing.T) {
	e := newTestEditor()
	a := e.AddSection(1)
	b := e.AddSection(1)
	e.AddComponent(a, 0, document.KindText)
	e.SelectComponent(a, 0, 0)
	e.SelectSection(a)

	if !e.RenameSection(a, "hero") {
		t.Fatal("RenameSection returned false")
	}
	if e.Document().Template.HasSection(a) || !e.Document().Template.HasSection("hero") {
		t.Error("section not renamed")
	}
	sel, ok := e.Selection()
	if !ok || sel.SectionID != "hero" {
		t.Errorf("selection = %+v, want section hero", sel.Path())
	}
	if s, _ := e.SelectedSection(); s != "hero" {
		t.Errorf("SelectedSection = %q", s)
	}
	checkSelection(t, e)

	tests := []struct {
		name     string
		old, new string
		want     bool
	}{
		{"taken", "hero", b, false},
		{"empty", "hero", "", false},
		{"missing", "nope", "x", false},
		{"same", "hero", "hero", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.RenameSection(tt.old, tt.new); got != tt.want {
				t.Errorf("RenameSection(%q, %q) = %v, want %v", tt.old, tt.new, got, tt.want)
			}
			if !e.Document().Template.HasSection("hero") || !e.Document().Template.HasSection(b) {
				t.Error("ids changed")
			}
		})
	}
}

func TestReorderSections(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []int
	}{
		{"forward", 0, 2, []int{1, 2, 0}},
		{"backward", 2, 0, []int{2, 0, 1}},
		{"adjacent", 0, 1, []int{1, 0, 2}},
		{"same", 1, 1, []int{0, 1, 2}},
		{"to past end clamps", 0, 9, []int{1, 2, 0}},
		{"negative to clamps", 2, -4, []int{2, 0, 1}},
		{"bad from", 5, 0, []int{0, 1, 2}},
		{"negative from", -1, 0, []int{0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor()
			orig := []string{e.AddSection(1), e.AddSection(1), e.AddSection(1)}
			e.ReorderSections(tt.from, tt.to)

			secs := e.Document().Template.Sections
			got := make([]string, len(secs))
			for i, s := range secs {
				got[i] = s.ID
			}
			want := make([]string, len(tt.want))
			for i, j := range tt.want {
				want[i] = orig[j]
			}
			if !equalIDs(got, want) {
				t.Errorf("order = %v, want %v", got, want)
			}
		})
	}
}
