// Package document defines the template tree edited by the designer.
//
// # Overview
//
// A [Document] owns exactly one [Template] plus the [Canvas] it is laid out
// on. The tree below it is strictly hierarchical:
//
//	Template
//	  └─ Section (fixed number of columns)
//	       └─ Column (positional, no identity of its own)
//	            └─ Component (text, heading, image, button, ...)
//
// Every Section keeps len(Components) == Columns. Columns are addressed by
// (sectionID, columnIndex); Components by (sectionID, columnIndex, index) or
// by id through a linear scan. No id index is maintained: templates hold tens
// of components, so an O(n) scan per lookup is cheap.
//
// # Components
//
// A [Component] has a [Kind], free-text content, an ordered [Style] map of
// CSS-like properties and typed [Properties]. Properties carry a fixed field
// set for the known kinds plus an Extra map for anything else, so the kind
// acts as the tag telling readers which fields are meaningful.
//
// New components are seeded from the defaults table ([DefaultsFor]), which
// returns fresh copies on every call so no two components share style maps.
//
// # Ownership
//
// A component lives in exactly one column. [Style] wraps a pointer to an
// ordered map, so plain struct copies share it; use [Component.Clone],
// [Section.Clone] or [Document.Clone] whenever a copy must be independent.
//
// # Mutation
//
// This package only models the tree and offers read access. All edits go
// through the editor package, which enforces the invariants and keeps the
// selection consistent.
package document
