package server

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Pratikmalviya12/template-designer/pkg/document"
	"github.com/Pratikmalviya12/template-designer/pkg/editor"
	"github.com/Pratikmalviya12/template-designer/pkg/errors"
	pkgio "github.com/Pratikmalviya12/template-designer/pkg/io"
	"github.com/Pratikmalviya12/template-designer/pkg/pipeline"
	"github.com/Pratikmalviya12/template-designer/pkg/render/sink"
)

// =============================================================================
// Request & Response Types
// =============================================================================

// State is the response to reads and mutations of one template.
type State struct {
	Document        *document.Document `json:"document"`
	Selection       *editor.Selection  `json:"selection"`
	SelectedSection string             `json:"selectedSection,omitempty"`
	Created         string             `json:"created,omitempty"`
}

type templatePatch struct {
	Name   *string `json:"name"`
	Canvas *struct {
		Width  string `json:"width"`
		Height string `json:"height"`
	} `json:"canvas"`
}

type sectionPatch struct {
	Columns *int    `json:"columns"`
	ID      *string `json:"id"`
}

type componentPatch struct {
	Kind       *string              `json:"kind"`
	Content    *string              `json:"content"`
	Style      *document.Style      `json:"style"`
	Properties *document.Properties `json:"properties"`
}

type moveRequest struct {
	From document.Path `json:"from"`
	To   document.Path `json:"to"`
}

func stateOf(ed *editor.Editor, created string) State {
	st := State{Document: ed.Document(), Created: created}
	if sel, ok := ed.Selection(); ok {
		st.Selection = &sel
	}
	st.SelectedSection, _ = ed.SelectedSection()
	return st
}

// =============================================================================
// Engine Access
// =============================================================================

// apply runs fn against the template's engine while holding its lock and
// responds with the resulting state. When persist is set the document is
// saved first; if fn or the save fails the engine is rolled back so memory
// never holds a change the store does not.
func (s *Server) apply(w http.ResponseWriter, r *http.Request, persist bool, fn func(ed *editor.Editor) (string, error)) {
	sess, err := s.open(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.gone {
		s.writeError(w, r, errors.New(errors.ErrCodeTemplateNotFound, "template %q was deleted", chi.URLParam(r, "id")))
		return
	}

	var cp checkpoint
	if persist {
		cp = checkpointOf(sess.ed)
	}
	created, err := fn(sess.ed)
	if err == nil && persist {
		err = s.store.Put(r.Context(), sess.ed.Document())
	}
	if err != nil {
		if persist {
			cp.restore(sess.ed)
		}
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stateOf(sess.ed, created))
}

// checkpoint is an engine's document and selections at one moment.
type checkpoint struct {
	doc     *document.Document
	sel     *editor.Selection
	section string
}

func checkpointOf(ed *editor.Editor) checkpoint {
	cp := checkpoint{doc: ed.Snapshot()}
	if sel, ok := ed.Selection(); ok {
		cp.sel = &sel
	}
	cp.section, _ = ed.SelectedSection()
	return cp
}

// restore puts ed back to the checkpoint, selections included.
func (cp checkpoint) restore(ed *editor.Editor) {
	ed.Replace(cp.doc)
	if cp.sel != nil {
		ed.SelectComponent(cp.sel.SectionID, cp.sel.ColumnIndex, cp.sel.Index)
	}
	if cp.section != "" {
		ed.SelectSection(cp.section)
	}
}

func (s *Server) mutate(w http.ResponseWriter, r *http.Request, fn func(ed *editor.Editor) (string, error)) {
	s.apply(w, r, true, fn)
}

func (s *Server) inspect(w http.ResponseWriter, r *http.Request, fn func(ed *editor.Editor) (string, error)) {
	s.apply(w, r, false, fn)
}

// column reads the section id and column index from the URL and checks them.
func column(ed *editor.Editor, r *http.Request) (string, int, error) {
	sid := chi.URLParam(r, "sid")
	col, err := intParam(r, "col")
	if err != nil {
		return "", 0, err
	}
	return sid, col, ed.CheckColumn(sid, col)
}

// component reads a full component path from the URL and checks it.
func component(ed *editor.Editor, r *http.Request) (string, int, int, error) {
	sid, col, err := column(ed, r)
	if err != nil {
		return "", 0, 0, err
	}
	idx, err := intParam(r, "idx")
	if err != nil {
		return "", 0, 0, err
	}
	return sid, col, idx, ed.CheckPath(sid, col, idx)
}

// =============================================================================
// Templates
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": list, "count": len(list)})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if r.ContentLength != 0 {
		if err := decode(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	ed := s.newEditor(nil)
	if req.Name != "" {
		if err := errors.ValidateTemplateName(req.Name); err != nil {
			s.writeError(w, r, err)
			return
		}
		ed.UpdateTemplateName(req.Name)
	}
	if err := s.store.Put(r.Context(), ed.Document()); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.register(ed)
	writeJSON(w, http.StatusCreated, stateOf(ed, ed.Document().Template.ID))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.inspect(w, r, func(*editor.Editor) (string, error) { return "", nil })
}

// handleReplace stores a whole document under the URL's id, creating the
// template when it does not exist yet.
func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := pkgio.ReadJSON(io.LimitReader(r.Body, maxBody))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if doc.Template.ID != id {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput,
			"document id %q does not match %q", doc.Template.ID, id))
		return
	}

	if _, err := s.open(r.Context(), id); errors.Is(err, errors.ErrCodeTemplateNotFound) {
		ed := s.newEditor(doc)
		if err := s.store.Put(r.Context(), doc); err != nil {
			s.writeError(w, r, err)
			return
		}
		s.register(ed)
		writeJSON(w, http.StatusCreated, stateOf(ed, id))
		return
	}
	s.mutate(w, r, func(ed *editor.Editor) (string, error) {
		ed.Replace(doc)
		return "", nil
	})
}

func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var req templatePatch
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(ed *editor.Editor) (string, error) {
		if req.Name != nil {
			if err := errors.ValidateTemplateName(*req.Name); err != nil {
				return "", err
			}
		}
		if c := req.Canvas; c != nil {
			for _, v := range []string{c.Width, c.Height} {
				if v == "" {
					continue
				}
				if err := errors.ValidateDimension(v); err != nil {
					return "", err
				}
			}
		}
		if req.Name != nil {
			ed.UpdateTemplateName(*req.Name)
		}
		if req.Canvas != nil {
			ed.UpdateCanvasDimensions(req.Canvas.Width, req.Canvas.Height)
		}
		return "", nil
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := s.open(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	sess.gone = true
	s.forget(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.DefaultFormat
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := s.snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Export(r.Context(), doc, pipeline.Options{Formats: []string{format}})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	name := strings.TrimSuffix(sink.Filename(doc.Template.Name), ".html") + pipeline.Extension(format)
	data := res.Artifacts[format]

	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("ETag", `"`+res.Hash+`"`)
	if res.CacheInfo.AllHit() {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// snapshot copies a template's document under its lock.
func (s *Server) snapshot(ctx context.Context, id string) (*document.Document, error) {
	sess, err := s.open(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.ed.Snapshot(), nil
}

// =============================================================================
// Sections
// =============================================================================

func (s *Server) handleAddSection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Columns int `json:"columns"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := errors.ValidateColumnCount(req.Columns); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(ed *editor.Editor) (string, error) {
		return ed.AddSection(req.Columns), nil
	})
}

func (s *Server) handleReorderSections(w http.ResponseWriter, r *http.Request) {
	var req struct {
		From int `json:"from"`
		To   int `json:"to"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(ed *editor.Editor) (string, error) {
		if n := len(ed.Document().Template.Sections); req.From < 0 || req.From >= n {
			return "", errors.New(errors.ErrCodeInvalidInput, "from index %d out of range (%d sections)", req.From, n)
		}
		ed.ReorderSections(req.From, req.To)
		return "", nil
	})
}

func (s *Server) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	var req sectionPatch
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Columns != nil {
		if err := errors.ValidateColumnCount(*req.Columns); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	sid := chi.URLParam(r, "sid")
	s.mutate(w, r, func(ed *editor.Editor) (string, error) {
		if err := ed.CheckSection(sid); err != nil {
			return "", err
		}
		if req.ID != nil && *req.ID != sid {
			if *req.ID == "" {
				return "", errors.New(errors.ErrCodeInvalidInput, "section id cannot be empty")
			}
			if ed.Document().Template.HasSection(*req.ID) {
				return "", errors.New(errors.ErrCodeConflict, "section %q already exists", *req.ID)
			}
		}
		if req.Columns != nil {
			ed.UpdateSection(sid, editor.SectionUpdate{Columns: req.Columns})
		}
		if req.ID != nil {
			ed.RenameSection(sid, *req.ID)
		}
		return "", nil
	})
}

func (s *Server) handleRemoveSection(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")
	s.mutate(w, r, func(ed *editor.Editor) (string, error) {
		if err := ed.CheckSection(sid); err != nil {
			return "", err
		}
		ed.RemoveSection(sid)
		return "", nil
	})
}

func (s *Server) handleDuplicateSection(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")
	s.mutate(w, r, func(ed *editor.Editor) (string, error) {
		if err := ed.CheckSection(sid); err != nil {
			return "", err
		}
		return ed.DuplicateSection(sid), nil
	})
}

// =============================================================================
// Components
// =============================================================================

func (s *Server) handleAddComponent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind string `json:"kind"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	kind, err := document.ParseKind(req.Kind)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(ed *editor.Editor) (string, error) {
		sid, col, err := column(ed, r)
		if err != nil {
			return "", err
		}
		return ed.AddComponent(sid, col, kind), nil
	})
}

func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read drop payload"))
		return
	}
	if _, err := editor.ParsePayload(raw); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(ed *editor.Editor) (string, error) {
		sid, col, err := column(ed, r)
		if err != nil {
			return "", err
		}
		return ed.Drop(sid, col, raw), nil
	})
}

func (s *Server) handleRemoveComponent(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(ed *editor.Editor) (string, error) {
		sid, col, idx, err := component(ed, r)
		if err != nil {
			return "", err
		}
		ed.RemoveComponent(sid, col, idx)
		return "", nil
	})
}

func (s *Server) handleDuplicateComponent(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(ed *editor.Editor) (string, error) {
		sid, col, idx, err := component(ed, r)
		if err != nil {
			return "", err
		}
		return ed.DuplicateComponent(sid, col, idx), nil
	})
}

func (s *Server) handleSetStyle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Property string `json:"property"`
		Value    string `json:"value"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Property == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "style property cannot be empty"))
		return
	}
	s.mutate(w, r, func(ed *editor.Editor) (string, error) {
		sid, col, idx, err := component(ed, r)
		if err != nil {
			return "", err
		}
		ed.UpdateComponentStyle(sid, col, idx, req.Property, req.Value)
		return "", nil
	})
}

func (s *Server) handleRemoveStyle(w http.ResponseWriter, r *http.Request) {
	prop := chi.URLParam(r, "prop")
	s.mutate(w, r, func(ed *editor.Editor) (string, error) {
		sid, col, idx, err := component(ed, r)
		if err != nil {
			return "", err
		}
		ed.RemoveComponentStyle(sid, col, idx, prop)
		return "", nil
	})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(ed *editor.Editor) (string, error) {
		if err := ed.CheckPath(req.From.SectionID, req.From.Column, req.From.Index); err != nil {
			return "", err
		}
		if err := ed.CheckColumn(req.To.SectionID, req.To.Column); err != nil {
			return "", err
		}
		ed.MoveComponent(req.From.SectionID, req.From.Column, req.From.Index,
			req.To.SectionID, req.To.Column, req.To.Index)
		return "", nil
	})
}

func (s *Server) handleDragEnd(w http.ResponseWriter, r *http.Request) {
	var req editor.DragResult
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(ed *editor.Editor) (string, error) {
		ed.DragEnd(req)
		return "", nil
	})
}

func (s *Server) handleUpdateComponent(w http.ResponseWriter, r *http.Request) {
	var req componentPatch
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	var u editor.ComponentUpdate
	if req.Kind != nil {
		kind, err := document.ParseKind(*req.Kind)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		u.Kind = &kind
	}
	u.Content, u.Style, u.Properties = req.Content, req.Style, req.Properties

	cid := chi.URLParam(r, "cid")
	s.mutate(w, r, func(ed *editor.Editor) (string, error) {
		if err := ed.CheckComponent(cid); err != nil {
			return "", err
		}
		ed.UpdateComponent(cid, u)
		return "", nil
	})
}

func (s *Server) handleSetProperty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value string `json:"value"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	cid, name := chi.URLParam(r, "cid"), chi.URLParam(r, "name")
	s.mutate(w, r, func(ed *editor.Editor) (string, error) {
		if err := ed.CheckComponent(cid); err != nil {
			return "", err
		}
		return "", ed.UpdateComponentProperty(cid, name, req.Value)
	})
}

// =============================================================================
// Selection
// =============================================================================

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req document.Path
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.inspect(w, r, func(ed *editor.Editor) (string, error) {
		if err := ed.CheckPath(req.SectionID, req.Column, req.Index); err != nil {
			return "", err
		}
		ed.SelectComponent(req.SectionID, req.Column, req.Index)
		return "", nil
	})
}

func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	s.inspect(w, r, func(ed *editor.Editor) (string, error) {
		ed.ClearSelection()
		return "", nil
	})
}

func (s *Server) handleSelectSection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SectionID string `json:"sectionId"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.inspect(w, r, func(ed *editor.Editor) (string, error) {
		if err := ed.CheckSection(req.SectionID); err != nil {
			return "", err
		}
		ed.SelectSection(req.SectionID)
		return "", nil
	})
}
