package document

import (
	"github.com/Pratikmalviya12/template-designer/pkg/errors"
)

// Default values for a freshly created document.
const (
	DefaultTemplateName = "Untitled Template"
	DefaultCanvasWidth  = "600px"
	DefaultCanvasHeight = "auto"
)

// =============================================================================
// Tree Types
// =============================================================================

// Document is the root the editor owns: one template and its canvas.
type Document struct {
	Template Template `json:"template" yaml:"template"`
	Canvas   Canvas   `json:"canvas" yaml:"canvas"`
}

// Canvas holds free-form sizing tokens such as "600px" or "auto".
type Canvas struct {
	Width  string `json:"width" yaml:"width"`
	Height string `json:"height" yaml:"height"`
}

// Template is the document being edited.
type Template struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// Section is a horizontal row holding a fixed number of columns.
type Section struct {
	ID         string   `json:"id" yaml:"id"`
	Columns    int      `json:"columns" yaml:"columns"`
	Components []Column `json:"components" yaml:"components"`
}

// Column is an ordered list of components, addressed by its index.
type Column []Component

// Component is a single content block.
type Component struct {
	ID         string     `json:"id" yaml:"id"`
	Kind       Kind       `json:"kind" yaml:"kind"`
	Content    string     `json:"content" yaml:"content"`
	Style      Style      `json:"style" yaml:"style"`
	Properties Properties `json:"properties" yaml:"properties"`
}

// Path addresses a component by position.
type Path struct {
	SectionID string `json:"sectionId" yaml:"sectionId"`
	Column    int    `json:"columnIndex" yaml:"columnIndex"`
	Index     int    `json:"index" yaml:"index"`
}

// =============================================================================
// Constructors
// =============================================================================

// New creates an empty document with the default name and canvas.
func New(id string) *Document {
	return &Document{
		Template: Template{ID: id, Name: DefaultTemplateName, Sections: []Section{}},
		Canvas:   Canvas{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight},
	}
}

// NewSection creates a section with n empty columns.
func NewSection(id string, n int) Section {
	cols := make([]Column, n)
	for i := range cols {
		cols[i] = Column{}
	}
	return Section{ID: id, Columns: n, Components: cols}
}

// NewComponent creates a component of kind seeded from d.
func NewComponent(id string, kind Kind, d Defaults) Component {
	return Component{
		ID:         id,
		Kind:       kind,
		Content:    d.Content,
		Style:      d.Style,
		Properties: d.Properties,
	}
}

// =============================================================================
// Read Access
// =============================================================================

// Section returns the section with id and its index, or nil and -1.
func (t *Template) Section(id string) (*Section, int) {
	for i := range t.Sections {
		if t.Sections[i].ID == id {
			return &t.Sections[i], i
		}
	}
	return nil, -1
}

// HasSection reports whether a section with id exists.
func (t *Template) HasSection(id string) bool {
	s, _ := t.Section(id)
	return s != nil
}

// Column returns the column at index i.
func (s *Section) Column(i int) (Column, bool) {
	if i < 0 || i >= len(s.Components) {
		return nil, false
	}
	return s.Components[i], true
}

// ComponentCount returns the number of components in the section.
func (s *Section) ComponentCount() int {
	n := 0
	for _, col := range s.Components {
		n += len(col)
	}
	return n
}

// ComponentAt returns a pointer to the component at path.
// The pointer is valid until the next structural change.
func (d *Document) ComponentAt(p Path) (*Component, bool) {
	sec, _ := d.Template.Section(p.SectionID)
	if sec == nil || p.Column < 0 || p.Column >= len(sec.Components) {
		return nil, false
	}
	col := sec.Components[p.Column]
	if p.Index < 0 || p.Index >= len(col) {
		return nil, false
	}
	return &col[p.Index], true
}

// FindComponent returns the path of the first component with id, in
// document order.
func (d *Document) FindComponent(id string) (Path, bool) {
	var found Path
	ok := false
	d.Walk(func(p Path, c *Component) bool {
		if c.ID == id {
			found, ok = p, true
			return false
		}
		return true
	})
	return found, ok
}

// Walk visits every component in document order until fn returns false.
func (d *Document) Walk(fn func(Path, *Component) bool) {
	for si := range d.Template.Sections {
		sec := &d.Template.Sections[si]
		for ci, col := range sec.Components {
			for i := range col {
				if !fn(Path{SectionID: sec.ID, Column: ci, Index: i}, &col[i]) {
					return
				}
			}
		}
	}
}

// ComponentCount returns the number of components in the whole tree.
func (d *Document) ComponentCount() int {
	n := 0
	for i := range d.Template.Sections {
		n += d.Template.Sections[i].ComponentCount()
	}
	return n
}

// =============================================================================
// Copies
// =============================================================================

// Clone returns a deep copy of the component.
func (c Component) Clone() Component {
	c.Style = c.Style.Clone()
	c.Properties = c.Properties.Clone()
	return c
}

// Equal reports whether two components have the same id and payload.
func (c Component) Equal(o Component) bool {
	return c.ID == o.ID && c.SameContent(o)
}

// SameContent reports whether two components are equal ignoring their ids.
func (c Component) SameContent(o Component) bool {
	return c.Kind == o.Kind &&
		c.Content == o.Content &&
		c.Style.Equal(o.Style) &&
		c.Properties.Equal(o.Properties)
}

// Clone returns a deep copy of the section, component ids included.
func (s Section) Clone() Section {
	cols := make([]Column, len(s.Components))
	for i, col := range s.Components {
		cols[i] = make(Column, len(col))
		for j, c := range col {
			cols[i][j] = c.Clone()
		}
	}
	s.Components = cols
	return s
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := *d
	out.Template.Sections = make([]Section, len(d.Template.Sections))
	for i, s := range d.Template.Sections {
		out.Template.Sections[i] = s.Clone()
	}
	return &out
}

// =============================================================================
// Validation
// =============================================================================

// Validate checks the structural invariants of a document read from outside
// the editor. It is not needed for documents only touched by the editor.
func (d *Document) Validate() error {
	if d.Template.ID == "" {
		return errors.New(errors.ErrCodeInvalidDocument, "template id cannot be empty")
	}
	seen := make(map[string]bool, len(d.Template.Sections))
	for i, s := range d.Template.Sections {
		if s.ID == "" {
			return errors.New(errors.ErrCodeInvalidDocument, "section %d has no id", i)
		}
		if seen[s.ID] {
			return errors.New(errors.ErrCodeInvalidDocument, "duplicate section id %q", s.ID)
		}
		seen[s.ID] = true
		if s.Columns < 1 {
			return errors.New(errors.ErrCodeInvalidDocument, "section %q has %d columns", s.ID, s.Columns)
		}
		if len(s.Components) != s.Columns {
			return errors.New(errors.ErrCodeInvalidDocument,
				"section %q declares %d columns but holds %d", s.ID, s.Columns, len(s.Components))
		}
		for ci, col := range s.Components {
			for j, c := range col {
				if c.ID == "" {
					return errors.New(errors.ErrCodeInvalidDocument,
						"component %d in section %q column %d has no id", j, s.ID, ci)
				}
				if c.Kind == "" {
					return errors.New(errors.ErrCodeInvalidDocument, "component %q has no kind", c.ID)
				}
			}
		}
	}
	return nil
}

// Normalize repairs values a decoder may leave empty: nil section and
// column slices and blank canvas dimensions.
func (d *Document) Normalize() {
	if d.Template.Sections == nil {
		d.Template.Sections = []Section{}
	}
	for i := range d.Template.Sections {
		s := &d.Template.Sections[i]
		for ci := range s.Components {
			if s.Components[ci] == nil {
				s.Components[ci] = Column{}
			}
		}
	}
	if d.Canvas.Width == "" {
		d.Canvas.Width = DefaultCanvasWidth
	}
	if d.Canvas.Height == "" {
		d.Canvas.Height = DefaultCanvasHeight
	}
}
