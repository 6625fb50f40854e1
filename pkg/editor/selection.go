package editor

import "github.com/Pratikmalviya12/template-designer/pkg/document"

// Selection addresses the component being edited and carries a snapshot of it.
type Selection struct {
	SectionID   string             `json:"sectionId"`
	ColumnIndex int                `json:"columnIndex"`
	Index       int                `json:"index"`
	Component   document.Component `json:"component"`
}

// Path returns the selection's address.
func (s Selection) Path() document.Path {
	return document.Path{SectionID: s.SectionID, Column: s.ColumnIndex, Index: s.Index}
}

// Selection returns the current selection, if any. The component is a copy.
func (e *Editor) Selection() (Selection, bool) {
	if e.sel == nil {
		return Selection{}, false
	}
	s := *e.sel
	s.Component = s.Component.Clone()
	return s, true
}

// SelectComponent selects the component at a position, or clears the
// selection when nothing is there.
func (e *Editor) SelectComponent(sectionID string, col, index int) {
	c, ok := e.doc.ComponentAt(document.Path{SectionID: sectionID, Column: col, Index: index})
	if !ok {
		e.sel = nil
		e.record("selectComponent", false, "section", sectionID, "column", col, "index", index)
		return
	}
	e.sel = &Selection{
		SectionID:   sectionID,
		ColumnIndex: col,
		Index:       index,
		Component:   c.Clone(),
	}
	e.record("selectComponent", true)
}

// ClearSelection drops the component selection.
func (e *Editor) ClearSelection() {
	e.sel = nil
	e.record("clearSelection", true)
}

// SelectSection marks a section as selected. An unknown id clears it.
func (e *Editor) SelectSection(sectionID string) {
	if !e.doc.Template.HasSection(sectionID) {
		e.section = ""
		e.record("selectSection", false, "section", sectionID)
		return
	}
	e.section = sectionID
	e.record("selectSection", true)
}

// SelectedSection returns the selected section id, if any.
func (e *Editor) SelectedSection() (string, bool) {
	return e.section, e.section != ""
}

// syncSelection refreshes the snapshot from the selection's path, clearing
// the selection if the path no longer resolves.
func (e *Editor) syncSelection() {
	if e.sel == nil {
		return
	}
	c, ok := e.doc.ComponentAt(e.sel.Path())
	if !ok {
		e.sel = nil
		return
	}
	e.sel.Component = c.Clone()
}
