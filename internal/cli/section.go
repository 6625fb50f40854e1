package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Pratikmalviya12/template-designer/pkg/editor"
	"github.com/Pratikmalviya12/template-designer/pkg/errors"
)

// sectionCommand creates the "section" command group.
func (c *CLI) sectionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "section",
		Aliases: []string{"sec"},
		Short:   "Add, remove and rearrange sections",
	}

	cmd.AddCommand(c.sectionAddCommand())
	cmd.AddCommand(c.sectionRemoveCommand())
	cmd.AddCommand(c.sectionDuplicateCommand())
	cmd.AddCommand(c.sectionColumnsCommand())
	cmd.AddCommand(c.sectionRenameCommand())
	cmd.AddCommand(c.sectionReorderCommand())

	return cmd
}

func (c *CLI) sectionAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <template> <columns>",
		Short: "Append a section with 1-12 empty columns",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseIndex("columns", args[1])
			if err != nil {
				return err
			}
			if err := errors.ValidateColumnCount(n); err != nil {
				return err
			}
			var sid string
			_, err = c.withTemplate(cmd.Context(), args[0], func(ed *editor.Editor) error {
				sid = ed.AddSection(n)
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Added section %s", StyleHighlight.Render(sid))
			return nil
		},
	}
}

func (c *CLI) sectionRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <template> <section>",
		Aliases: []string{"rm"},
		Short:   "Remove a section and its components",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.withTemplate(cmd.Context(), args[0], func(ed *editor.Editor) error {
				if err := ed.CheckSection(args[1]); err != nil {
					return err
				}
				ed.RemoveSection(args[1])
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Removed section %s", args[1])
			return nil
		},
	}
}

func (c *CLI) sectionDuplicateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "duplicate <template> <section>",
		Aliases: []string{"dup"},
		Short:   "Insert a copy of a section right after it",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var sid string
			_, err := c.withTemplate(cmd.Context(), args[0], func(ed *editor.Editor) error {
				if err := ed.CheckSection(args[1]); err != nil {
					return err
				}
				sid = ed.DuplicateSection(args[1])
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Duplicated %s as %s", args[1], StyleHighlight.Render(sid))
			return nil
		},
	}
}

func (c *CLI) sectionColumnsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "columns <template> <section> <n>",
		Short: "Change a section's column count",
		Long: `Change a section's column count. Growing adds empty columns; shrinking
moves the components of dropped columns to the end of the last kept one.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseIndex("columns", args[2])
			if err != nil {
				return err
			}
			if err := errors.ValidateColumnCount(n); err != nil {
				return err
			}
			_, err = c.withTemplate(cmd.Context(), args[0], func(ed *editor.Editor) error {
				if err := ed.CheckSection(args[1]); err != nil {
					return err
				}
				ed.UpdateSection(args[1], editor.SectionUpdate{Columns: &n})
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Section %s now has %s", args[1], plural(n, "column"))
			return nil
		},
	}
}

func (c *CLI) sectionRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <template> <section> <new-id>",
		Short: "Change a section's id",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.withTemplate(cmd.Context(), args[0], func(ed *editor.Editor) error {
				if err := ed.CheckSection(args[1]); err != nil {
					return err
				}
				if err := errors.ValidateTemplateID(args[2]); err != nil {
					return err
				}
				if args[1] != args[2] && ed.Document().Template.HasSection(args[2]) {
					return errors.New(errors.ErrCodeConflict, "section %q already exists", args[2])
				}
				ed.RenameSection(args[1], args[2])
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Renamed section %s to %s", args[1], StyleHighlight.Render(args[2]))
			return nil
		},
	}
}

func (c *CLI) sectionReorderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <template> <from> <to>",
		Short: "Move the section at position from to position to",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseIndex("from", args[1])
			if err != nil {
				return err
			}
			to, err := parseIndex("to", args[2])
			if err != nil {
				return err
			}
			_, err = c.withTemplate(cmd.Context(), args[0], func(ed *editor.Editor) error {
				if n := len(ed.Document().Template.Sections); from >= n {
					return usageError("from index %d out of range (%d sections)", from, n)
				}
				ed.ReorderSections(from, to)
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Moved section %d to %d", from, to)
			return nil
		},
	}
}

// parseIndex parses a non-negative integer argument.
func parseIndex(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, usageError("%s must be a non-negative integer, got %q", name, s)
	}
	return n, nil
}
