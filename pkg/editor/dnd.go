package editor

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Pratikmalviya12/template-designer/pkg/document"
	"github.com/Pratikmalviya12/template-designer/pkg/errors"
)

// droppablePrefix starts every column drop-target id.
const droppablePrefix = "column-"

// =============================================================================
// Palette Payloads
// =============================================================================

// Payload is a decoded palette drag payload.
//
// Only the kind decides what gets created; the remaining fields are the
// defaults the palette advertised and are kept verbatim for callers that
// want to inspect them.
type Payload struct {
	Kind   document.Kind
	Fields map[string]json.RawMessage
}

// paletteEntry is the wire shape NewPayload produces.
type paletteEntry struct {
	Kind       document.Kind       `json:"kind"`
	Content    string              `json:"content"`
	Style      document.Style      `json:"style"`
	Properties document.Properties `json:"properties"`
}

// NewPayload encodes the drag payload a palette entry for kind carries.
func NewPayload(kind document.Kind, now time.Time) ([]byte, error) {
	d := document.DefaultsFor(kind, now)
	return json.Marshal(paletteEntry{
		Kind:       kind,
		Content:    d.Content,
		Style:      d.Style,
		Properties: d.Properties,
	})
}

// ParsePayload decodes a drag payload. The kind is read from "kind", or
// from "type" for payloads produced by older palettes.
func ParsePayload(data []byte) (Payload, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Payload{}, errors.Wrap(errors.ErrCodeInvalidPayload, err, "drop payload is not a JSON object")
	}
	field := "kind"
	kindRaw, ok := raw[field]
	if !ok {
		field = "type"
		kindRaw, ok = raw[field]
	}
	if !ok {
		return Payload{}, errors.New(errors.ErrCodeInvalidPayload, "drop payload has no kind")
	}
	var name string
	if err := json.Unmarshal(kindRaw, &name); err != nil {
		return Payload{}, errors.Wrap(errors.ErrCodeInvalidPayload, err, "drop payload %s must be a string", field)
	}
	kind, err := document.ParseKind(name)
	if err != nil {
		return Payload{}, errors.Wrap(errors.ErrCodeInvalidPayload, err, "drop payload")
	}
	delete(raw, "kind")
	delete(raw, "type")
	return Payload{Kind: kind, Fields: raw}, nil
}

// Drop adds the component described by a drag payload to a column and
// returns its id. A malformed payload is logged and ignored.
func (e *Editor) Drop(sectionID string, col int, data []byte) string {
	p, err := ParsePayload(data)
	if err != nil {
		e.logger.Warn("ignoring drop", "section", sectionID, "column", col, "err", err)
		e.record("drop", false)
		return ""
	}
	return e.AddComponent(sectionID, col, p.Kind)
}

// =============================================================================
// Drag Results
// =============================================================================

// DroppableID returns the drop-target id of a column.
func DroppableID(sectionID string, col int) string {
	return fmt.Sprintf("%s%s-%d", droppablePrefix, sectionID, col)
}

// ParseDroppableID splits a drop-target id into section id and column.
// The column is taken after the last '-', so section ids may contain dashes.
func ParseDroppableID(id string) (string, int, error) {
	rest, ok := strings.CutPrefix(id, droppablePrefix)
	if !ok {
		return "", 0, errors.New(errors.ErrCodeInvalidPayload, "droppable id %q lacks %q prefix", id, droppablePrefix)
	}
	i := strings.LastIndexByte(rest, '-')
	if i <= 0 {
		return "", 0, errors.New(errors.ErrCodeInvalidPayload, "droppable id %q has no column", id)
	}
	col, err := strconv.Atoi(rest[i+1:])
	if err != nil || col < 0 {
		return "", 0, errors.New(errors.ErrCodeInvalidPayload, "droppable id %q has a bad column", id)
	}
	return rest[:i], col, nil
}

// DragLocation is one end of a drag: a drop target and an index in it.
type DragLocation struct {
	DroppableID string `json:"droppableId"`
	Index       int    `json:"index"`
}

// DragResult describes a finished drag. Destination is nil when the
// component was dropped outside any column.
type DragResult struct {
	Source      DragLocation  `json:"source"`
	Destination *DragLocation `json:"destination,omitempty"`
}

// DragEnd applies a finished drag as a move.
func (e *Editor) DragEnd(r DragResult) {
	if r.Destination == nil {
		e.record("dragEnd", false)
		return
	}
	srcSection, srcCol, err := ParseDroppableID(r.Source.DroppableID)
	if err != nil {
		e.logger.Warn("ignoring drag", "err", err)
		e.record("dragEnd", false)
		return
	}
	dstSection, dstCol, err := ParseDroppableID(r.Destination.DroppableID)
	if err != nil {
		e.logger.Warn("ignoring drag", "err", err)
		e.record("dragEnd", false)
		return
	}
	e.MoveComponent(srcSection, srcCol, r.Source.Index, dstSection, dstCol, r.Destination.Index)
}
