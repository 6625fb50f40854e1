// Package outline renders the structure of a template as a diagram.
//
// # Overview
//
// The outline is a top-down tree: the template at the root, then its
// sections, their columns, and the components in each column. It is meant
// for reviewing layout at a glance, not for previewing content.
//
//	dot := outline.ToDOT(doc, outline.Options{})
//	svg, err := outline.RenderSVG(ctx, dot)
//
// # DOT Format
//
// [ToDOT] produces Graphviz DOT source. Node names are positional
// ("section/0", "column/0/1", "component/0/1/2") because component ids are
// not unique across duplicated sections. The DOT can be rendered with
// [RenderSVG] or any Graphviz installation:
//
//	dot -Tpng outline.dot -o outline.png
//
// # Options
//
//   - Detailed: component labels include a content excerpt and the number
//     of style declarations.
package outline
