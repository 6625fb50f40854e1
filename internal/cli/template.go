package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Pratikmalviya12/template-designer/pkg/document"
	"github.com/Pratikmalviya12/template-designer/pkg/editor"
	"github.com/Pratikmalviya12/template-designer/pkg/errors"
	pkgio "github.com/Pratikmalviya12/template-designer/pkg/io"
)

// newCommand creates the "new" command.
func (c *CLI) newCommand() *cobra.Command {
	var from, id string

	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create a template",
		Long: `Create an empty template, or import one from a JSON or YAML file with --from.

The new template gets a fresh id unless --id is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return c.runNew(cmd.Context(), name, id, from)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "import the template from a .json or .yaml file")
	cmd.Flags().StringVar(&id, "id", "", "template id (default: generated)")

	return cmd
}

func (c *CLI) runNew(ctx context.Context, name, id, from string) error {
	ids, err := c.idGenerator()
	if err != nil {
		return err
	}
	if name != "" {
		if err := errors.ValidateTemplateName(name); err != nil {
			return err
		}
	}

	var doc *document.Document
	if from != "" {
		if doc, err = pkgio.ImportFile(from); err != nil {
			return err
		}
	}
	ed := editor.New(doc, editor.WithIDGenerator(ids), editor.WithLogger(c.Logger))
	if id != "" {
		if err := errors.ValidateTemplateID(id); err != nil {
			return err
		}
		ed.Document().Template.ID = id
	}
	if name != "" {
		ed.UpdateTemplateName(name)
	}

	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	tpl := ed.Document().Template
	if _, err := st.Get(ctx, tpl.ID); err == nil {
		return errors.New(errors.ErrCodeConflict, "template %q already exists", tpl.ID)
	}
	if err := st.Put(ctx, ed.Document()); err != nil {
		return err
	}

	printSuccess("Created %s", StyleHighlight.Render(tpl.Name))
	printKeyValue("ID", tpl.ID)
	if len(tpl.Sections) == 0 {
		printNextStep("Add a section", fmt.Sprintf("%s section add %s 2", appName, tpl.ID))
	}
	return nil
}

// listCommand creates the "list" command.
func (c *CLI) listCommand() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored templates, most recently updated first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			list, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if quiet {
				for _, s := range list {
					fmt.Println(s.ID)
				}
				return nil
			}
			if len(list) == 0 {
				printInfo("No templates yet")
				printNextStep("Create one", appName+" new \"My Template\"")
				return nil
			}
			fmt.Println(summaryTable(list))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print ids only")

	return cmd
}

// showCommand creates the "show" command.
func (c *CLI) showCommand() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a template as a tree, or encoded with --format",
		Long: `Print a template as a tree, or encoded with --format.

With --output the document is saved to a .json or .yaml file instead, in a
form "new --from" reads back.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			doc, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if output != "" {
				if err := pkgio.ExportFile(doc, output); err != nil {
					return err
				}
				printSuccess("Saved %s", StyleHighlight.Render(doc.Template.Name))
				printFile(output)
				return nil
			}
			if format != "" {
				return pkgio.Encode(doc, pkgio.Codec(format), os.Stdout)
			}

			fmt.Println(templateTree(doc, ""))
			printNewline()
			printKeyValue("Canvas", doc.Canvas.Width+" × "+doc.Canvas.Height)
			printKeyValue("Components", fmt.Sprint(doc.ComponentCount()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "encode as json or yaml instead of drawing a tree")
	cmd.Flags().StringVarP(&output, "output", "o", "", "save to a .json or .yaml file")

	return cmd
}

// deleteCommand creates the "delete" command.
func (c *CLI) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete templates",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			for _, id := range args {
				if err := st.Delete(cmd.Context(), id); err != nil {
					return err
				}
				printSuccess("Deleted %s", id)
			}
			return nil
		},
	}
}

// renameCommand creates the "rename" command.
func (c *CLI) renameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Change a template's display name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateTemplateName(args[1]); err != nil {
				return err
			}
			_, err := c.withTemplate(cmd.Context(), args[0], func(ed *editor.Editor) error {
				ed.UpdateTemplateName(args[1])
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Renamed %s to %s", args[0], StyleHighlight.Render(args[1]))
			return nil
		},
	}
}

// canvasCommand creates the "canvas" command.
func (c *CLI) canvasCommand() *cobra.Command {
	var width, height string

	cmd := &cobra.Command{
		Use:   "canvas <id>",
		Short: "Set the canvas width and height",
		Long: `Set the canvas dimensions of a template. Values are free-form sizing
tokens such as 600px, 100% or auto. Omitted flags leave the value unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if width == "" && height == "" {
				return usageError("set --width, --height or both")
			}
			for _, v := range []string{width, height} {
				if v == "" {
					continue
				}
				if err := errors.ValidateDimension(v); err != nil {
					return err
				}
			}
			ed, err := c.withTemplate(cmd.Context(), args[0], func(ed *editor.Editor) error {
				ed.UpdateCanvasDimensions(width, height)
				return nil
			})
			if err != nil {
				return err
			}
			cv := ed.Document().Canvas
			printSuccess("Canvas is now %s × %s", cv.Width, cv.Height)
			return nil
		},
	}

	cmd.Flags().StringVar(&width, "width", "", "canvas width, e.g. 600px")
	cmd.Flags().StringVar(&height, "height", "", "canvas height, e.g. auto")

	return cmd
}
