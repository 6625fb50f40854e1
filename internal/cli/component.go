package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Pratikmalviya12/template-designer/pkg/document"
	"github.com/Pratikmalviya12/template-designer/pkg/editor"
	"github.com/Pratikmalviya12/template-designer/pkg/errors"
)

// componentCommand creates the "component" command group.
//
// Components are addressed by section id, column index and position within
// the column, or by component id where the operation allows it.
func (c *CLI) componentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "component",
		Aliases: []string{"comp"},
		Short:   "Add, edit and move components",
	}

	cmd.AddCommand(c.componentAddCommand())
	cmd.AddCommand(c.componentRemoveCommand())
	cmd.AddCommand(c.componentDuplicateCommand())
	cmd.AddCommand(c.componentMoveCommand())
	cmd.AddCommand(c.componentSetCommand())
	cmd.AddCommand(c.componentPropCommand())
	cmd.AddCommand(c.componentStyleCommand())
	cmd.AddCommand(c.componentDropCommand())
	cmd.AddCommand(c.componentKindsCommand())

	return cmd
}

// pathArgs parses "<section> <column> <index>" starting at args[0].
func pathArgs(args []string) (document.Path, error) {
	col, err := parseIndex("column", args[1])
	if err != nil {
		return document.Path{}, err
	}
	idx, err := parseIndex("index", args[2])
	if err != nil {
		return document.Path{}, err
	}
	return document.Path{SectionID: args[0], Column: col, Index: idx}, nil
}

func (c *CLI) componentAddCommand() *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "add <template> <section> <column> <kind>",
		Short: "Append a component with its kind's default content and style",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := parseIndex("column", args[2])
			if err != nil {
				return err
			}
			kind, err := document.ParseKind(args[3])
			if err != nil {
				return err
			}
			var id string
			_, err = c.withTemplate(cmd.Context(), args[0], func(ed *editor.Editor) error {
				if err := ed.CheckColumn(args[1], col); err != nil {
					return err
				}
				id = ed.AddComponent(args[1], col, kind)
				if cmd.Flags().Changed("content") {
					ed.UpdateComponent(id, editor.ComponentUpdate{Content: &content})
				}
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Added %s %s", kind.Label(), StyleHighlight.Render(id))
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "replace the default content")

	return cmd
}

func (c *CLI) componentRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <template> <section> <column> <index>",
		Aliases: []string{"rm"},
		Short:   "Remove a component",
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pathArgs(args[1:])
			if err != nil {
				return err
			}
			_, err = c.withTemplate(cmd.Context(), args[0], func(ed *editor.Editor) error {
				if err := ed.CheckPath(p.SectionID, p.Column, p.Index); err != nil {
					return err
				}
				ed.RemoveComponent(p.SectionID, p.Column, p.Index)
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Removed component %d from %s column %d", p.Index, p.SectionID, p.Column)
			return nil
		},
	}
}

func (c *CLI) componentDuplicateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "duplicate <template> <section> <column> <index>",
		Aliases: []string{"dup"},
		Short:   "Insert a copy of a component right after it",
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pathArgs(args[1:])
			if err != nil {
				return err
			}
			var id string
			_, err = c.withTemplate(cmd.Context(), args[0], func(ed *editor.Editor) error {
				if err := ed.CheckPath(p.SectionID, p.Column, p.Index); err != nil {
					return err
				}
				id = ed.DuplicateComponent(p.SectionID, p.Column, p.Index)
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Duplicated as %s", StyleHighlight.Render(id))
			return nil
		},
	}
}

func (c *CLI) componentMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <template> <section> <column> <index> <to-section> <to-column> <to-index>",
		Short: "Move a component to another position",
		Long: `Move a component to another position, in the same column or any other.
A destination index past the end of the column appends.`,
		Args: cobra.ExactArgs(7),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := pathArgs(args[1:4])
			if err != nil {
				return err
			}
			to, err := pathArgs(args[4:7])
			if err != nil {
				return err
			}
			_, err = c.withTemplate(cmd.Context(), args[0], func(ed *editor.Editor) error {
				if err := ed.CheckPath(from.SectionID, from.Column, from.Index); err != nil {
					return err
				}
				if err := ed.CheckColumn(to.SectionID, to.Column); err != nil {
					return err
				}
				ed.MoveComponent(from.SectionID, from.Column, from.Index, to.SectionID, to.Column, to.Index)
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Moved component to %s column %d", to.SectionID, to.Column)
			return nil
		},
	}
}

func (c *CLI) componentSetCommand() *cobra.Command {
	var (
		content, kind string
		styles        []string
	)

	cmd := &cobra.Command{
		Use:   "set <template> <component-id>",
		Short: "Change a component's content, kind or style",
		Long: `Change a component's content, kind or style.

Each --style property=value is laid over the component's current style;
properties not named keep their values.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var u editor.ComponentUpdate
			if cmd.Flags().Changed("content") {
				u.Content = &content
			}
			if kind != "" {
				k, err := document.ParseKind(kind)
				if err != nil {
					return err
				}
				u.Kind = &k
			}
			overlay, err := parseStyles(styles)
			if err != nil {
				return err
			}
			if u.Content == nil && u.Kind == nil && overlay.Len() == 0 {
				return usageError("set at least one of --content, --kind or --style")
			}
			_, err = c.withTemplate(cmd.Context(), args[0], func(ed *editor.Editor) error {
				if err := ed.CheckComponent(args[1]); err != nil {
					return err
				}
				if overlay.Len() > 0 {
					doc := ed.Document()
					path, _ := doc.FindComponent(args[1])
					cur, _ := doc.ComponentAt(path)
					style := cur.Style.Clone()
					style.Merge(overlay)
					u.Style = &style
				}
				ed.UpdateComponent(args[1], u)
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Updated %s", args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "new content")
	cmd.Flags().StringVar(&kind, "kind", "", "new kind")
	cmd.Flags().StringArrayVar(&styles, "style", nil, "style property=value to set (repeatable)")

	return cmd
}

func (c *CLI) componentPropCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prop <template> <component-id> <name> <value>",
		Short: "Set one property of a component",
		Long: `Set one property of a component from its string form.

Booleans (controls, autoplay, loop, muted, playsInline, responsive) accept
true/false; menuItems and socialMedia take a JSON array; level takes h1..h6.
Unknown names are kept as custom properties.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.withTemplate(cmd.Context(), args[0], func(ed *editor.Editor) error {
				if err := ed.CheckComponent(args[1]); err != nil {
					return err
				}
				return ed.UpdateComponentProperty(args[1], args[2], args[3])
			})
			if err != nil {
				return err
			}
			printSuccess("Set %s.%s", args[1], args[2])
			return nil
		},
	}
}

func (c *CLI) componentStyleCommand() *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "style <template> <section> <column> <index> <property> [value]",
		Short: "Set or remove one style property of a component",
		Args:  cobra.RangeArgs(5, 6),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pathArgs(args[1:4])
			if err != nil {
				return err
			}
			prop := args[4]
			if prop == "" {
				return usageError("style property cannot be empty")
			}
			if !remove && len(args) != 6 {
				return usageError("missing value for %s (use --remove to delete it)", prop)
			}
			_, err = c.withTemplate(cmd.Context(), args[0], func(ed *editor.Editor) error {
				if err := ed.CheckPath(p.SectionID, p.Column, p.Index); err != nil {
					return err
				}
				if remove {
					ed.RemoveComponentStyle(p.SectionID, p.Column, p.Index, prop)
				} else {
					ed.UpdateComponentStyle(p.SectionID, p.Column, p.Index, prop, args[5])
				}
				return nil
			})
			if err != nil {
				return err
			}
			if remove {
				printSuccess("Removed style %s", prop)
			} else {
				printSuccess("Set style %s: %s", prop, args[5])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&remove, "remove", false, "remove the property instead of setting it")

	return cmd
}

func (c *CLI) componentDropCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "drop <template> <section> <column> <payload|->",
		Short: "Drop a palette payload into a column",
		Long: `Drop a serialized palette item into a column, as a drag-and-drop client
would. The payload is a JSON object with a "kind" (or "type") field; pass
"-" to read it from stdin.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := parseIndex("column", args[2])
			if err != nil {
				return err
			}
			raw := []byte(args[3])
			if args[3] == "-" {
				if raw, err = io.ReadAll(os.Stdin); err != nil {
					return fmt.Errorf("read payload: %w", err)
				}
			}
			if _, err := editor.ParsePayload(raw); err != nil {
				return err
			}
			var id string
			_, err = c.withTemplate(cmd.Context(), args[0], func(ed *editor.Editor) error {
				if err := ed.CheckColumn(args[1], col); err != nil {
					return err
				}
				id = ed.Drop(args[1], col, raw)
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Dropped %s", StyleHighlight.Render(id))
			return nil
		},
	}
}

func (c *CLI) componentKindsCommand() *cobra.Command {
	var payload bool

	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List the component palette",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, k := range document.Kinds() {
				if !payload {
					label := k.Label()
					if names := document.PropertyNames(k); len(names) > 0 {
						label += StyleDim.Render(" (" + strings.Join(names, ", ") + ")")
					}
					printKeyValue(string(k), label)
					continue
				}
				data, err := editor.NewPayload(k, time.Now())
				if err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "encode payload for %s", k)
				}
				fmt.Println(string(data))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&payload, "payload", false, "print each kind as a drop payload")

	return cmd
}

// parseStyles reads property=value pairs in order.
func parseStyles(pairs []string) (document.Style, error) {
	var st document.Style
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return st, usageError("style %q is not property=value", p)
		}
		st.Set(k, strings.TrimSpace(v))
	}
	return st, nil
}
