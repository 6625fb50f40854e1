package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Pratikmalviya12/template-designer/pkg/document"
)

// editCommand creates the interactive edit command.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a template interactively in the terminal",
		Long: `Open a template in a terminal editor. Sections, columns and components
are shown as an outline; keys add, remove, duplicate and reorder them.
Every change is saved to the store immediately.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ids, err := c.idGenerator()
			if err != nil {
				return err
			}
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			ed, err := c.loadEditor(ctx, st, ids, args[0])
			if err != nil {
				return err
			}
			model := NewEditModel(ed, func(doc *document.Document) error {
				return st.Put(ctx, doc)
			})

			// Editor logging would draw over the alternate screen.
			level := c.Logger.GetLevel()
			c.Logger.SetLevel(LogFatal)
			defer c.Logger.SetLevel(level)

			final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil {
				return fmt.Errorf("run editor: %w", err)
			}
			if m, ok := final.(EditModel); ok {
				doc := m.ed.Document()
				printSuccess("Saved %s", StyleHighlight.Render(doc.Template.Name))
				printDetail("%s · %s", plural(len(doc.Template.Sections), "section"), plural(doc.ComponentCount(), "component"))
			}
			return nil
		},
	}
}
