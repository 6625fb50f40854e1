package editor

import (
	"slices"

	"github.com/Pratikmalviya12/template-designer/pkg/document"
)

// SectionUpdate lists the section fields UpdateSection may change.
// Nil fields are left alone. Ids change only through RenameSection.
type SectionUpdate struct {
	Columns *int
}

// AddSection appends a section with the given number of empty columns and
// returns its id. A count below one is a no-op returning "".
func (e *Editor) AddSection(columns int) string {
	if columns < 1 {
		e.record("addSection", false, "columns", columns)
		return ""
	}
	id := e.ids.NewID()
	e.doc.Template.Sections = append(e.doc.Template.Sections, document.NewSection(id, columns))
	e.record("addSection", true)
	return id
}

// RemoveSection deletes a section with all its components. A selection
// inside it is cleared, as is a matching section selection.
func (e *Editor) RemoveSection(sectionID string) {
	_, i := e.doc.Template.Section(sectionID)
	if i < 0 {
		e.record("removeSection", false, "section", sectionID)
		return
	}
	e.doc.Template.Sections = slices.Delete(e.doc.Template.Sections, i, i+1)
	if e.sel != nil && e.sel.SectionID == sectionID {
		e.sel = nil
	}
	if e.section == sectionID {
		e.section = ""
	}
	e.record("removeSection", true)
}

// DuplicateSection appends a deep copy of a section under a fresh id and
// returns that id. Components keep their ids.
func (e *Editor) DuplicateSection(sectionID string) string {
	sec, _ := e.doc.Template.Section(sectionID)
	if sec == nil {
		e.record("duplicateSection", false, "section", sectionID)
		return ""
	}
	cp := sec.Clone()
	cp.ID = e.ids.NewID()
	e.doc.Template.Sections = append(e.doc.Template.Sections, cp)
	e.record("duplicateSection", true)
	return cp.ID
}

// UpdateSection merges u into a section.
//
// Growing the column count appends empty columns. Shrinking it moves the
// components of every dropped column, in order, to the end of the last kept
// column, so no component is lost.
func (e *Editor) UpdateSection(sectionID string, u SectionUpdate) {
	sec, _ := e.doc.Template.Section(sectionID)
	if sec == nil {
		e.record("updateSection", false, "section", sectionID)
		return
	}
	if u.Columns == nil || *u.Columns < 1 {
		e.record("updateSection", false, "section", sectionID)
		return
	}
	e.resizeColumns(sec, *u.Columns)
	e.syncSelection()
	e.record("updateSection", true)
}

func (e *Editor) resizeColumns(sec *document.Section, n int) {
	old := len(sec.Components)
	switch {
	case n > old:
		for i := old; i < n; i++ {
			sec.Components = append(sec.Components, document.Column{})
		}
	case n < old:
		last := n - 1
		base := len(sec.Components[last])
		for c := n; c < old; c++ {
			if e.sel != nil && e.sel.SectionID == sec.ID && e.sel.ColumnIndex == c {
				e.sel.ColumnIndex = last
				e.sel.Index += base
			}
			base += len(sec.Components[c])
			sec.Components[last] = append(sec.Components[last], sec.Components[c]...)
		}
		clear(sec.Components[n:])
		sec.Components = sec.Components[:n]
	}
	sec.Columns = n
}

// RenameSection changes a section's id and rewrites the selection and
// section selection that refer to it. It reports false, changing nothing,
// when the section is missing or newID is empty or taken.
func (e *Editor) RenameSection(oldID, newID string) bool {
	sec, _ := e.doc.Template.Section(oldID)
	if sec == nil || newID == "" {
		e.record("renameSection", false, "section", oldID)
		return false
	}
	if newID == oldID {
		e.record("renameSection", false, "section", oldID)
		return true
	}
	if e.doc.Template.HasSection(newID) {
		e.record("renameSection", false, "section", oldID, "taken", newID)
		return false
	}
	sec.ID = newID
	if e.sel != nil && e.sel.SectionID == oldID {
		e.sel.SectionID = newID
	}
	if e.section == oldID {
		e.section = newID
	}
	e.record("renameSection", true)
	return true
}

// ReorderSections moves the section at from to position to. A to outside
// the list is clamped to its ends; an invalid from is a no-op.
func (e *Editor) ReorderSections(from, to int) {
	sections := e.doc.Template.Sections
	if from < 0 || from >= len(sections) {
		e.record("reorderSections", false, "from", from)
		return
	}
	to = clamp(to, 0, len(sections)-1)
	if from == to {
		e.record("reorderSections", false, "from", from, "to", to)
		return
	}
	s := sections[from]
	sections = slices.Delete(sections, from, from+1)
	e.doc.Template.Sections = slices.Insert(sections, to, s)
	e.record("reorderSections", true)
}
