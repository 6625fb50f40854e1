package editor

import (
	"slices"

	"github.com/Pratikmalviya12/template-designer/pkg/document"
	"github.com/Pratikmalviya12/template-designer/pkg/errors"
)

// ComponentUpdate lists the component fields UpdateComponent may change.
// Nil fields are left alone; Style and Properties replace the old value.
type ComponentUpdate struct {
	Kind       *document.Kind
	Content    *string
	Style      *document.Style
	Properties *document.Properties
}

// AddComponent appends a component of kind, seeded from the defaults table,
// to a column and returns its id.
func (e *Editor) AddComponent(sectionID string, col int, kind document.Kind) string {
	sec := e.columnOf(sectionID, col)
	if sec == nil {
		e.record("addComponent", false, "section", sectionID, "column", col)
		return ""
	}
	c := document.NewComponent(e.ids.NewID(), kind, document.DefaultsFor(kind, e.now()))
	sec.Components[col] = append(sec.Components[col], c)
	e.record("addComponent", true)
	return c.ID
}

// RemoveComponent deletes the component at a position and clears the
// selection, whichever component it addressed.
func (e *Editor) RemoveComponent(sectionID string, col, index int) {
	sec := e.columnOf(sectionID, col)
	if sec == nil || index < 0 || index >= len(sec.Components[col]) {
		e.record("removeComponent", false, "section", sectionID, "column", col, "index", index)
		return
	}
	sec.Components[col] = slices.Delete(sec.Components[col], index, index+1)
	e.sel = nil
	e.record("removeComponent", true)
}

// DuplicateComponent inserts a copy of the component at a position right
// after it, under a fresh id, and returns that id.
func (e *Editor) DuplicateComponent(sectionID string, col, index int) string {
	sec := e.columnOf(sectionID, col)
	if sec == nil || index < 0 || index >= len(sec.Components[col]) {
		e.record("duplicateComponent", false, "section", sectionID, "column", col, "index", index)
		return ""
	}
	cp := sec.Components[col][index].Clone()
	cp.ID = e.ids.NewID()
	sec.Components[col] = slices.Insert(sec.Components[col], index+1, cp)

	if e.sel != nil && e.sel.SectionID == sectionID && e.sel.ColumnIndex == col && e.sel.Index > index {
		e.sel.Index++
	}
	e.syncSelection()
	e.record("duplicateComponent", true)
	return cp.ID
}

// MoveComponent removes the component at the source position and inserts
// it at the destination, which may be in the same column, another column or
// another section. The destination index is interpreted after the removal
// and clamped to the column bounds. The selection is cleared.
func (e *Editor) MoveComponent(srcSection string, srcCol, srcIndex int, dstSection string, dstCol, dstIndex int) {
	src := e.columnOf(srcSection, srcCol)
	dst := e.columnOf(dstSection, dstCol)
	if src == nil || dst == nil || srcIndex < 0 || srcIndex >= len(src.Components[srcCol]) {
		e.record("moveComponent", false,
			"from", srcSection, "fromColumn", srcCol, "fromIndex", srcIndex,
			"to", dstSection, "toColumn", dstCol)
		return
	}
	c := src.Components[srcCol][srcIndex]
	src.Components[srcCol] = slices.Delete(src.Components[srcCol], srcIndex, srcIndex+1)

	target := dst.Components[dstCol]
	dstIndex = clamp(dstIndex, 0, len(target))
	dst.Components[dstCol] = slices.Insert(target, dstIndex, c)

	e.sel = nil
	e.record("moveComponent", true)
}

// UpdateComponent merges u into every component with the given id.
func (e *Editor) UpdateComponent(componentID string, u ComponentUpdate) {
	applied := false
	e.doc.Walk(func(_ document.Path, c *document.Component) bool {
		if c.ID != componentID {
			return true
		}
		if u.Kind != nil {
			c.Kind = *u.Kind
		}
		if u.Content != nil {
			c.Content = *u.Content
		}
		if u.Style != nil {
			c.Style = u.Style.Clone()
		}
		if u.Properties != nil {
			c.Properties = u.Properties.Clone()
		}
		applied = true
		return true
	})
	if !applied {
		e.record("updateComponent", false, "component", componentID)
		return
	}
	e.syncSelection()
	e.record("updateComponent", true)
}

// UpdateComponentProperty sets one named property on every component with
// the given id. A malformed value returns an INVALID_INPUT error and changes
// nothing; an unknown id is a silent no-op.
func (e *Editor) UpdateComponentProperty(componentID, name, value string) error {
	path, ok := e.doc.FindComponent(componentID)
	if !ok {
		e.record("updateComponentProperty", false, "component", componentID)
		return nil
	}
	first, _ := e.doc.ComponentAt(path)
	trial := first.Properties.Clone()
	if err := trial.Set(name, value); err != nil {
		e.logger.Warn("rejected property value", "component", componentID, "property", name, "err", err)
		e.record("updateComponentProperty", false, "component", componentID)
		return err
	}
	e.doc.Walk(func(_ document.Path, c *document.Component) bool {
		if c.ID == componentID {
			_ = c.Properties.Set(name, value)
		}
		return true
	})
	e.syncSelection()
	e.record("updateComponentProperty", true)
	return nil
}

// UpdateComponentStyle sets one style property on the component at a position.
func (e *Editor) UpdateComponentStyle(sectionID string, col, index int, property, value string) {
	c, ok := e.doc.ComponentAt(document.Path{SectionID: sectionID, Column: col, Index: index})
	if !ok || property == "" {
		e.record("updateComponentStyle", false, "section", sectionID, "column", col, "index", index)
		return
	}
	c.Style.Set(property, value)
	e.syncSelection()
	e.record("updateComponentStyle", true)
}

// RemoveComponentStyle deletes one style property from the component at a
// position.
func (e *Editor) RemoveComponentStyle(sectionID string, col, index int, property string) {
	c, ok := e.doc.ComponentAt(document.Path{SectionID: sectionID, Column: col, Index: index})
	if !ok {
		e.record("removeComponentStyle", false, "section", sectionID, "column", col, "index", index)
		return
	}
	if _, has := c.Style.Get(property); !has {
		e.record("removeComponentStyle", false, "property", property)
		return
	}
	c.Style.Delete(property)
	e.syncSelection()
	e.record("removeComponentStyle", true)
}

// =============================================================================
// Boundary Checks
// =============================================================================

// CheckSection returns SECTION_NOT_FOUND when no section has id.
func (e *Editor) CheckSection(sectionID string) error {
	if !e.doc.Template.HasSection(sectionID) {
		return errors.New(errors.ErrCodeSectionNotFound, "section %q not found", sectionID)
	}
	return nil
}

// CheckColumn returns an error when (sectionID, col) addresses no column.
func (e *Editor) CheckColumn(sectionID string, col int) error {
	sec, _ := e.doc.Template.Section(sectionID)
	if sec == nil {
		return errors.New(errors.ErrCodeSectionNotFound, "section %q not found", sectionID)
	}
	if col < 0 || col >= len(sec.Components) {
		return errors.New(errors.ErrCodeInvalidInput, "column %d out of range (section %q has %d)", col, sectionID, len(sec.Components))
	}
	return nil
}

// CheckPath returns an error when the path addresses no component.
func (e *Editor) CheckPath(sectionID string, col, index int) error {
	if err := e.CheckColumn(sectionID, col); err != nil {
		return err
	}
	if _, ok := e.doc.ComponentAt(document.Path{SectionID: sectionID, Column: col, Index: index}); !ok {
		return errors.New(errors.ErrCodeComponentNotFound, "no component at %s/%d/%d", sectionID, col, index)
	}
	return nil
}

// CheckComponent returns COMPONENT_NOT_FOUND when no component has id.
func (e *Editor) CheckComponent(componentID string) error {
	if _, ok := e.doc.FindComponent(componentID); !ok {
		return errors.New(errors.ErrCodeComponentNotFound, "component %q not found", componentID)
	}
	return nil
}
