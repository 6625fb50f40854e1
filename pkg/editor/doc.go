// Package editor implements the mutation engine and selection tracker for
// template documents.
//
// # Overview
//
// An [Editor] owns one [document.Document] and is the only code that changes
// it. Every operation is synchronous and total: addressing something that
// does not exist (an unknown section id, an out-of-range column or index) is
// a silent no-op that leaves the document and selection untouched. Surfaces
// such as the CLI or HTTP API can therefore never corrupt a document through
// a stale reference; when they need to report a bad address they check it up
// front with [Editor.CheckSection], [Editor.CheckColumn] or [Editor.CheckPath].
//
// No-ops are logged at debug level and reported to the editor hooks in
// package observability.
//
// # Selection
//
// The editor tracks at most one selected component as a [Selection]: its
// path plus a snapshot of the component. The selection is never stale. Every
// operation that changes the addressed component refreshes the snapshot, and
// every operation that shifts or removes it either re-addresses or clears it
// in the same call:
//
//   - RemoveComponent and MoveComponent clear the selection whenever they
//     apply, even if a different component was affected
//   - DuplicateComponent shifts a selection sitting after the source
//   - UpdateSection folding columns re-addresses a selection in a removed column
//   - RemoveSection clears a selection inside the removed section
//   - RenameSection rewrites the selection's section id
//
// A section can be selected independently through [Editor.SelectSection].
//
// # Identity
//
// Section ids can only change through [Editor.RenameSection]; the generic
// [Editor.UpdateSection] has no id field. Duplicating a section keeps the ids
// of the copied components, so [Editor.UpdateComponent] updates every
// component carrying the id.
//
// # Concurrency
//
// An Editor is not safe for concurrent use. Callers that receive events from
// several goroutines must serialize access themselves.
package editor
