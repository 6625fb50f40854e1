// Package server exposes the template editor over a JSON HTTP API.
//
// Each open template gets its own engine, loaded from the store on first
// use and kept in memory until the template is deleted or the server stops.
// Requests against one template are serialized by a per-template mutex;
// requests against different templates run in parallel. Every successful
// mutation writes the document back to the store before responding.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Pratikmalviya12/template-designer/pkg/buildinfo"
	"github.com/Pratikmalviya12/template-designer/pkg/document"
	"github.com/Pratikmalviya12/template-designer/pkg/editor"
	"github.com/Pratikmalviya12/template-designer/pkg/ident"
	"github.com/Pratikmalviya12/template-designer/pkg/pipeline"
	"github.com/Pratikmalviya12/template-designer/pkg/store"
)

// Server holds the engines of open templates.
type Server struct {
	store  store.Store
	runner *pipeline.Runner
	ids    ident.Generator
	logger *log.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// session is one open template.
type session struct {
	mu   sync.Mutex
	ed   *editor.Editor
	gone bool // deleted while a request waited on mu
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and engine logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRunner sets the export runner. The default has caching disabled.
func WithRunner(r *pipeline.Runner) Option {
	return func(s *Server) {
		if r != nil {
			s.runner = r
		}
	}
}

// WithIDGenerator sets the generator for new templates, sections and components.
func WithIDGenerator(g ident.Generator) Option {
	return func(s *Server) {
		if g != nil {
			s.ids = g
		}
	}
}

// New creates a server backed by st.
func New(st store.Store, opts ...Option) *Server {
	s := &Server{
		store:    st,
		ids:      ident.Default,
		logger:   log.Default(),
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Use(middleware.SetHeader("Server", buildinfo.UserAgent()))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/templates", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handleReplace)
			r.Patch("/", s.handleUpdateTemplate)
			r.Delete("/", s.handleDelete)
			r.Get("/export", s.handleExport)

			r.Post("/sections", s.handleAddSection)
			r.Post("/sections/reorder", s.handleReorderSections)
			r.Patch("/sections/{sid}", s.handleUpdateSection)
			r.Delete("/sections/{sid}", s.handleRemoveSection)
			r.Post("/sections/{sid}/duplicate", s.handleDuplicateSection)

			r.Route("/sections/{sid}/columns/{col}", func(r chi.Router) {
				r.Post("/components", s.handleAddComponent)
				r.Post("/drop", s.handleDrop)
				r.Delete("/components/{idx}", s.handleRemoveComponent)
				r.Post("/components/{idx}/duplicate", s.handleDuplicateComponent)
				r.Put("/components/{idx}/style", s.handleSetStyle)
				r.Delete("/components/{idx}/style/{prop}", s.handleRemoveStyle)
			})

			r.Post("/move", s.handleMove)
			r.Post("/drag-end", s.handleDragEnd)
			r.Patch("/components/{cid}", s.handleUpdateComponent)
			r.Put("/components/{cid}/properties/{name}", s.handleSetProperty)

			r.Put("/selection", s.handleSelect)
			r.Delete("/selection", s.handleClearSelection)
			r.Put("/selection/section", s.handleSelectSection)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	s.logger.Info("serving API", "addr", addr)
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// =============================================================================
// Sessions
// =============================================================================

func (s *Server) newEditor(doc *document.Document) *editor.Editor {
	return editor.New(doc, editor.WithIDGenerator(s.ids), editor.WithLogger(s.logger))
}

// open returns the session for id, loading the template on first use.
func (s *Server) open(ctx context.Context, id string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sess := &session{ed: s.newEditor(doc)}
	s.sessions[id] = sess
	return sess, nil
}

func (s *Server) register(ed *editor.Editor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[ed.Document().Template.ID] = &session{ed: ed}
}

func (s *Server) forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
