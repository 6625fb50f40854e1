package outline

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/Pratikmalviya12/template-designer/pkg/document"
)

// excerptLen caps content excerpts in detailed labels, in runes.
const excerptLen = 24

// Options configures outline rendering.
type Options struct {
	// Detailed adds content excerpts and style counts to component labels.
	Detailed bool
}

// ToDOT converts a document to Graphviz DOT source.
func ToDOT(doc *document.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	root := "template"
	fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=\"#1976d2\", fontcolor=white];\n",
		root, fmt.Sprintf("%s\n%s", doc.Template.Name, doc.Canvas.Width))

	for si, s := range doc.Template.Sections {
		sec := fmt.Sprintf("section/%d", si)
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=\"#e3f2fd\"];\n", sec, fmt.Sprintf("%s\n%d col", s.ID, s.Columns))
		fmt.Fprintf(&buf, "  %q -> %q;\n", root, sec)

		for ci, col := range s.Components {
			cn := fmt.Sprintf("column/%d/%d", si, ci)
			fmt.Fprintf(&buf, "  %q [label=%q, shape=folder, fillcolor=\"#f5f5f5\"];\n", cn, fmt.Sprintf("column %d", ci))
			fmt.Fprintf(&buf, "  %q -> %q;\n", sec, cn)

			for i, c := range col {
				n := fmt.Sprintf("component/%d/%d/%d", si, ci, i)
				fmt.Fprintf(&buf, "  %q [label=%q];\n", n, fmtLabel(c, opts.Detailed))
				fmt.Fprintf(&buf, "  %q -> %q;\n", cn, n)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(c document.Component, detailed bool) string {
	label := c.Kind.Label()
	if !detailed {
		return label
	}
	parts := []string{label}
	if ex := excerpt(c.Content); ex != "" {
		parts = append(parts, strconv.Quote(ex))
	}
	if n := c.Style.Len(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d style", n))
	}
	return strings.Join(parts, "\n")
}

func excerpt(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= excerptLen {
		return s
	}
	return string(r[:excerptLen-1]) + "…"
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg tag with one whose viewBox
// starts at the origin, so the diagram scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
