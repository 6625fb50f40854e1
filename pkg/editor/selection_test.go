package editor

import (
	"testing"

	"github.com/Pratikmalviya12/template-designer/pkg/document"
)

func TestSelectComponent(t *testing.T) {
	e := newTestEditor()
	sid := e.AddSection(2)
	cid := e.AddComponent(sid, 1, document.KindButton)

	e.SelectComponent(sid, 1, 0)
	sel, ok := e.Selection()
	if !ok {
		t.Fatal("no selection")
	}
	if sel.SectionID != sid || sel.ColumnIndex != 1 || sel.Index != 0 || sel.Component.ID != cid {
		t.Errorf("selection = %+v", sel)
	}

	e.SelectComponent(sid, 0, 0)
	if _, ok := e.Selection(); ok {
		t.Error("selecting an empty slot kept a selection")
	}
}

func TestSelectionIsACopy(t *testing.T) {
	e := newTestEditor()
	sid := e.AddSection(1)
	e.AddComponent(sid, 0, document.KindText)
	e.SelectComponent(sid, 0, 0)

	sel, _ := e.Selection()
	sel.Component.Style.Set("color", "pink")

	c, _ := e.Document().ComponentAt(sel.Path())
	if v, _ := c.Style.Get("color"); v == "pink" {
		t.Error("mutating the selection changed the document")
	}
	again, _ := e.Selection()
	if v, _ := again.Component.Style.Get("color"); v == "pink" {
		t.Error("mutating the selection changed the tracked snapshot")
	}
}

func TestSelectThenRemoveClears(t *testing.T) {
	e := newTestEditor()
	sid := e.AddSection(1)
	e.AddComponent(sid, 0, document.KindText)

	e.SelectComponent(sid, 0, 0)
	e.RemoveComponent(sid, 0, 0)

	if _, ok := e.Selection(); ok {
		t.Error("selection survived removal")
	}
}

func TestClearSelection(t *testing.T) {
	e := newTestEditor()
	sid := e.AddSection(1)
	e.AddComponent(sid, 0, document.KindText)
	e.SelectComponent(sid, 0, 0)
	e.ClearSelection()
	if _, ok := e.Selection(); ok {
		t.Error("selection not cleared")
	}
}

func TestSelectSection(t *testing.T) {
	e := newTestEditor()
	sid := e.AddSection(1)

	e.SelectSection(sid)
	if got, ok := e.SelectedSection(); !ok || got != sid {
		t.Errorf("SelectedSection = %q, %v", got, ok)
	}
	e.SelectSection("nope")
	if _, ok := e.SelectedSection(); ok {
		t.Error("unknown section stayed selected")
	}
}
