package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Pratikmalviya12/template-designer/pkg/document"
	"github.com/Pratikmalviya12/template-designer/pkg/editor"
	"github.com/Pratikmalviya12/template-designer/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	panelStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// =============================================================================
// Rows
// =============================================================================

type rowKind int

const (
	rowSection rowKind = iota
	rowColumn
	rowComponent
)

// row is one line of the outline the cursor moves over.
type row struct {
	kind    rowKind
	section string
	sidx    int // section position
	col     int
	index   int
}

// buildRows flattens doc into cursor rows: each section, each of its
// columns, and each component under its column.
func buildRows(doc *document.Document) []row {
	var rows []row
	for si, sec := range doc.Template.Sections {
		rows = append(rows, row{kind: rowSection, section: sec.ID, sidx: si})
		for ci, col := range sec.Components {
			rows = append(rows, row{kind: rowColumn, section: sec.ID, sidx: si, col: ci})
			for i := range col {
				rows = append(rows, row{kind: rowComponent, section: sec.ID, sidx: si, col: ci, index: i})
			}
		}
	}
	return rows
}

// =============================================================================
// EditModel - Interactive template editor
// =============================================================================

// EditModel is the bubbletea model behind the edit command. Every change is
// applied through the editor and handed to save.
type EditModel struct {
	ed   *editor.Editor
	save func(*document.Document) error

	rows    []row
	cursor  int
	palette bool // choosing a kind to add
	pick    int  // palette cursor
	status  string
	height  int
	offset  int
}

// NewEditModel creates an editor model over ed. save is called with the
// document after every change.
func NewEditModel(ed *editor.Editor, save func(*document.Document) error) EditModel {
	m := EditModel{ed: ed, save: save, height: 20}
	m.refresh()
	return m
}

func (m EditModel) Init() tea.Cmd {
	return nil
}

func (m EditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-14, 5)
	case tea.KeyMsg:
		if m.palette {
			return m.updatePalette(msg)
		}
		return m.updateOutline(msg)
	}
	return m, nil
}

func (m EditModel) updateOutline(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	cur, ok := m.current()

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "enter", " ":
		if ok && cur.kind == rowComponent {
			m.ed.SelectComponent(cur.section, cur.col, cur.index)
		} else if ok {
			m.ed.SelectSection(cur.section)
		}
	case "n":
		id := m.ed.AddSection(1)
		m.commit("added section " + id)
		m.focus(func(r row) bool { return r.kind == rowSection && r.section == id })
	case "a":
		if !ok {
			m.status = "add a section first (n)"
			break
		}
		m.palette, m.pick = true, 0
	case "+", "-":
		if !ok {
			break
		}
		sec, _ := m.ed.Document().Template.Section(cur.section)
		n := sec.Columns + 1
		if msg.String() == "-" {
			n = sec.Columns - 1
		}
		if err := errors.ValidateColumnCount(n); err != nil {
			m.status = errors.UserMessage(err)
			break
		}
		m.ed.UpdateSection(cur.section, editor.SectionUpdate{Columns: &n})
		m.commit(fmt.Sprintf("%s has %s", cur.section, plural(n, "column")))
	case "d", "x":
		if !ok {
			break
		}
		switch cur.kind {
		case rowComponent:
			m.ed.RemoveComponent(cur.section, cur.col, cur.index)
			m.commit("removed component")
		case rowSection:
			m.ed.RemoveSection(cur.section)
			m.commit("removed section " + cur.section)
		}
	case "D":
		if !ok {
			break
		}
		switch cur.kind {
		case rowComponent:
			m.ed.DuplicateComponent(cur.section, cur.col, cur.index)
			m.commit("duplicated component")
		case rowSection:
			m.ed.DuplicateSection(cur.section)
			m.commit("duplicated section " + cur.section)
		}
	case "K", "J":
		if !ok {
			break
		}
		delta := -1
		if msg.String() == "J" {
			delta = 1
		}
		m.shift(cur, delta)
	}
	return m, nil
}

func (m EditModel) updatePalette(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kinds := document.Kinds()
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q":
		m.palette = false
	case "up", "k":
		m.pick = max(m.pick-1, 0)
	case "down", "j":
		m.pick = min(m.pick+1, len(kinds)-1)
	case "enter":
		m.palette = false
		cur, ok := m.current()
		if !ok {
			break
		}
		kind := kinds[m.pick]
		id := m.ed.AddComponent(cur.section, cur.col, kind)
		m.commit("added " + kind.Label())
		m.focus(func(r row) bool {
			if r.kind != rowComponent {
				return false
			}
			c, _ := m.ed.Document().ComponentAt(document.Path{SectionID: r.section, Column: r.col, Index: r.index})
			return c != nil && c.ID == id
		})
	}
	return m, nil
}

// shift moves the current component within its column, or the current
// section within the template, by delta.
func (m *EditModel) shift(cur row, delta int) {
	switch cur.kind {
	case rowComponent:
		to := cur.index + delta
		if to < 0 {
			return
		}
		sec, _ := m.ed.Document().Template.Section(cur.section)
		if to >= len(sec.Components[cur.col]) {
			return
		}
		m.ed.MoveComponent(cur.section, cur.col, cur.index, cur.section, cur.col, to)
		m.commit("moved component")
		m.focus(func(r row) bool {
			return r.kind == rowComponent && r.section == cur.section && r.col == cur.col && r.index == to
		})
	case rowSection:
		to := cur.sidx + delta
		if to < 0 || to >= len(m.ed.Document().Template.Sections) {
			return
		}
		m.ed.ReorderSections(cur.sidx, to)
		m.commit("moved section " + cur.section)
		m.focus(func(r row) bool { return r.kind == rowSection && r.section == cur.section })
	}
}

// commit rebuilds the rows and saves the document.
func (m *EditModel) commit(status string) {
	m.refresh()
	if m.save != nil {
		if err := m.save(m.ed.Document()); err != nil {
			m.status = "save failed: " + errors.UserMessage(err)
			return
		}
	}
	m.status = status
}

func (m *EditModel) refresh() {
	m.rows = buildRows(m.ed.Document())
	m.cursor = clampCursor(m.cursor, len(m.rows))
}

func (m *EditModel) focus(match func(row) bool) {
	for i, r := range m.rows {
		if match(r) {
			m.cursor = i
			m.scroll()
			return
		}
	}
}

func (m *EditModel) moveCursor(delta int) {
	m.cursor = clampCursor(m.cursor+delta, len(m.rows))
	m.scroll()
}

func (m *EditModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m EditModel) current() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func clampCursor(c, n int) int {
	if n == 0 {
		return 0
	}
	return min(max(c, 0), n-1)
}

// =============================================================================
// View
// =============================================================================

func (m EditModel) View() string {
	var b strings.Builder
	doc := m.ed.Document()

	b.WriteString(StyleTitle.Render(doc.Template.Name))
	b.WriteString(" " + StyleDim.Render(doc.Canvas.Width+" × "+doc.Canvas.Height))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ move  n section  a add  +/- columns  d delete  D duplicate  J/K shift  ⏎ select  q quit"))
	b.WriteString("\n\n")

	if m.palette {
		b.WriteString(m.paletteView())
		return b.String()
	}

	if len(m.rows) == 0 {
		b.WriteString(listDimStyle.Render("  empty template, press n to add a section"))
		b.WriteString("\n")
	}
	end := min(m.offset+m.height, len(m.rows))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.rowView(m.rows[i], i == m.cursor))
		b.WriteString("\n")
	}

	if sel, ok := m.ed.Selection(); ok {
		b.WriteString("\n")
		b.WriteString(panelStyle.Render(selectionView(sel)))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n" + StyleSuccess.Render(m.status) + "\n")
	}
	return b.String()
}

func (m EditModel) rowView(r row, current bool) string {
	cursor := "  "
	if current {
		cursor = "▸ "
	}
	var line string
	switch r.kind {
	case rowSection:
		sec, _ := m.ed.Document().Template.Section(r.section)
		line = fmt.Sprintf("%ssection %s  %s", cursor, r.section, listDimStyle.Render(plural(sec.Columns, "column")))
		if sid, ok := m.ed.SelectedSection(); ok && sid == r.section {
			line += StyleSuccess.Render(" ●")
		}
	case rowColumn:
		line = fmt.Sprintf("%s  column %d", cursor, r.col)
		if current {
			return listSelectedStyle.Render(line)
		}
		return listDimStyle.Render(line)
	case rowComponent:
		c, _ := m.ed.Document().ComponentAt(document.Path{SectionID: r.section, Column: r.col, Index: r.index})
		line = "    " + cursor + componentLine(r.index, *c, false)
	}
	if current {
		return listSelectedStyle.Render(line)
	}
	return listNormalStyle.Render(line)
}

func (m EditModel) paletteView() string {
	var b strings.Builder
	b.WriteString(StyleHighlight.Render("Add component"))
	b.WriteString("\n")
	for i, k := range document.Kinds() {
		if i == m.pick {
			b.WriteString(listSelectedStyle.Render("▸ " + k.Label()))
		} else {
			b.WriteString(listNormalStyle.Render("  " + k.Label()))
		}
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render("⏎ add  esc cancel"))
	return b.String()
}

// selectionView describes the selected component: content, style and the
// properties relevant to its kind.
func selectionView(sel editor.Selection) string {
	c := sel.Component
	var b strings.Builder
	b.WriteString(StyleTitle.Render(c.Kind.Label()) + " " + StyleDim.Render(c.ID))
	if c.Content != "" {
		b.WriteString("\n" + excerpt(c.Content, 60))
	}
	c.Style.Each(func(k, v string) {
		b.WriteString("\n" + StyleDim.Render(k+": ") + v)
	})
	for _, f := range c.Properties.Fields(c.Kind) {
		b.WriteString("\n" + StyleHighlight.Render(f.Name+" ") + excerpt(f.Value, 50))
	}
	return b.String()
}
