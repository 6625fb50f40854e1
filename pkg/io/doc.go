// Package io provides JSON and YAML import and export for template documents.
//
// # Overview
//
// A document is stored as one object holding the template and its canvas:
//
//	{
//	  "template": {
//	    "id": "0b7e2a64-6c0e-4a58-9d5e-2f0c3d1f9a11",
//	    "name": "Newsletter",
//	    "sections": [
//	      {
//	        "id": "a41c...",
//	        "columns": 2,
//	        "components": [
//	          [{"id": "c1", "kind": "heading", "content": "Hello",
//	            "style": {"fontSize": "24px", "color": "#222222"},
//	            "properties": {"level": "h2"}}],
//	          []
//	        ]
//	      }
//	    ]
//	  },
//	  "canvas": {"width": "600px", "height": "auto"}
//	}
//
// The YAML form has the same shape. Style maps keep their key order in both
// encodings, so a round trip reproduces the document exactly.
//
// # Import
//
// [ReadJSON] and [ReadYAML] decode from any io.Reader; [ImportFile] picks
// the codec from the file extension:
//
//	doc, err := io.ImportFile("newsletter.yaml")
//
// Every read normalizes the decoded document (missing canvas values get
// their defaults) and validates its structure. A malformed or inconsistent
// document fails with an INVALID_DOCUMENT error; a missing file with
// FILE_NOT_FOUND.
//
// # Export
//
// [WriteJSON] and [WriteYAML] encode to any io.Writer; [ExportFile] picks the
// codec from the extension. [MarshalJSON] returns the compact JSON form,
// which is also the input to export cache keys.
package io
