// Package render turns template documents into exportable artifacts.
//
// # Overview
//
// Rendering is split by output:
//
//   - [sink]: the HTML serializer, the artifact a template exists to produce
//   - [outline]: a Graphviz diagram of the section and column structure
//
// Both are pure with respect to the document: they read it and never modify
// it, so they can run concurrently over one snapshot. The export runner in
// package pipeline does exactly that.
//
//	html := sink.RenderHTML(doc)
//	svg, err := outline.RenderSVG(ctx, outline.ToDOT(doc, outline.Options{}))
//
// [sink]: github.com/Pratikmalviya12/template-designer/pkg/render/sink
// [outline]: github.com/Pratikmalviya12/template-designer/pkg/render/outline
package render
