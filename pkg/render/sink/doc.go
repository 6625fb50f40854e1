// Package sink serializes template documents to standalone HTML.
//
// # Overview
//
// [RenderHTML] walks a [document.Document] in order (sections, then columns,
// then components) and writes one element per component inside a minimal
// HTML shell:
//
//	<!DOCTYPE html>
//	<html lang="en">
//	<head>...<title>Newsletter</title></head>
//	<body>
//	<!-- template: 0b7e2a64-... -->
//	<div class="template" style="max-width: 600px; margin: 0 auto">
//	  <div class="section" data-id="..." style="display: flex">
//	    <div class="column" data-column="0" style="width: 50%">
//	      <h2 data-id="..." data-kind="heading" style="font-size: 24px">Heading</h2>
//	    </div>
//	    ...
//
// Rendering is pure and deterministic: the same document always produces
// the same bytes, the document is never modified, and rendering never fails.
// Missing properties degrade to empty text or absent attributes.
//
// # Elements
//
// Each component kind maps to a tag:
//
//   - heading: h1..h6 from the level property, h2 by default
//   - paragraph: p
//   - image: img, src from the src property falling back to content
//   - button: button, wrapped in a link when the url property is set
//   - video: video with boolean attributes from controls, autoplay, loop,
//     muted and playsInline
//   - timer: div showing the raw end date; no countdown is computed
//   - menu: ul of links from menuItems
//   - social, socialShare: div with one colored link per enabled network
//   - header, footer: header and footer
//   - divider: hr
//   - html: content written verbatim
//   - anything else: div with the content
//
// Every element carries data-id and data-kind attributes. The style map is
// flattened to an inline style attribute: camelCase keys become kebab-case,
// declarations keep their insertion order and are joined with "; ". Values
// carrying script URLs or CSS expressions are dropped.
//
// # Escaping
//
// Text and attribute values are HTML-escaped. Link targets other than
// http(s), mailto, tel, relative paths and fragments are replaced with "#".
// The html kind is the only way to emit raw markup.
package sink
