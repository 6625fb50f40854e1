// Package store persists whole template documents keyed by template id.
//
// Four backends implement [Store]:
//   - file: one JSON file per template under a directory, for the CLI
//   - sqlite: a single database file (modernc.org/sqlite, no cgo)
//   - redis: a hash of id -> JSON plus a sorted index, for shared servers
//   - mongo: one document per template
//
// Documents are stored exactly as pkg/io encodes them, so a template saved
// by one backend can be exported and imported into another.
//
// # Usage
//
//	st, err := store.Open(ctx, cfg.Store)
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	doc, err := st.Get(ctx, id)
//	if errors.Is(err, errors.ErrCodeTemplateNotFound) {
//	    // ...
//	}
package store

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/Pratikmalviya12/template-designer/pkg/config"
	"github.com/Pratikmalviya12/template-designer/pkg/document"
	"github.com/Pratikmalviya12/template-designer/pkg/errors"
	"github.com/Pratikmalviya12/template-designer/pkg/observability"
)

// Store is the interface for template storage backends.
type Store interface {
	// Get loads a template. A missing id is a TEMPLATE_NOT_FOUND error.
	Get(ctx context.Context, id string) (*document.Document, error)

	// Put creates or replaces the template with doc's id.
	Put(ctx context.Context, doc *document.Document) error

	// Delete removes a template. A missing id is a TEMPLATE_NOT_FOUND error.
	Delete(ctx context.Context, id string) error

	// List returns summaries of all templates, most recently updated first.
	List(ctx context.Context) ([]Summary, error)

	Close() error
}

// Summary describes a stored template without loading its tree.
type Summary struct {
	ID       string    `json:"id" bson:"_id"`
	Name     string    `json:"name" bson:"name"`
	Sections int       `json:"sections" bson:"sections"`
	Updated  time.Time `json:"updated" bson:"updated"`
}

// summarize builds the summary stored alongside a document.
func summarize(doc *document.Document, now time.Time) Summary {
	return Summary{
		ID:       doc.Template.ID,
		Name:     doc.Template.Name,
		Sections: len(doc.Template.Sections),
		Updated:  now.UTC().Truncate(time.Millisecond),
	}
}

// sortSummaries orders by Updated descending, then id.
func sortSummaries(s []Summary) {
	slices.SortFunc(s, func(a, b Summary) int {
		if c := b.Updated.Compare(a.Updated); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeTemplateNotFound, "template %q not found", id)
}

func checkDoc(doc *document.Document) error {
	if doc == nil {
		return errors.New(errors.ErrCodeInvalidDocument, "no document to store")
	}
	if err := errors.ValidateTemplateID(doc.Template.ID); err != nil {
		return err
	}
	return doc.Validate()
}

// =============================================================================
// Backend Selection
// =============================================================================

// Open connects to the backend selected by cfg.Backend. Network backends
// are pinged with retries before Open returns. The returned store reports
// every call to the registered observability store hooks.
func Open(ctx context.Context, cfg config.Store) (Store, error) {
	var (
		st  Store
		err error
	)
	switch cfg.Backend {
	case config.BackendFile, "":
		st, err = NewFileStore(cfg.Dir)
	case config.BackendSQLite:
		st, err = NewSQLiteStore(cfg.SQLite)
	case config.BackendRedis:
		st, err = DialRedis(ctx, cfg.Redis)
	case config.BackendMongo:
		st, err = DialMongo(ctx, cfg.Mongo)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown store backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	backend := cfg.Backend
	if backend == "" {
		backend = config.BackendFile
	}
	return Instrument(st, backend), nil
}

// =============================================================================
// Instrumentation
// =============================================================================

// instrumented reports every call to the store hooks.
type instrumented struct {
	Store
	backend string
}

// Instrument wraps st so each call is reported to observability.Store().
func Instrument(st Store, backend string) Store {
	return &instrumented{Store: st, backend: backend}
}

func (s *instrumented) observe(ctx context.Context, op string, start time.Time, err error) {
	observability.Store().OnStoreOp(ctx, s.backend, op, time.Since(start), err)
}

func (s *instrumented) Get(ctx context.Context, id string) (doc *document.Document, err error) {
	defer func(start time.Time) { s.observe(ctx, "get", start, err) }(time.Now())
	return s.Store.Get(ctx, id)
}

func (s *instrumented) Put(ctx context.Context, doc *document.Document) (err error) {
	defer func(start time.Time) { s.observe(ctx, "put", start, err) }(time.Now())
	return s.Store.Put(ctx, doc)
}

func (s *instrumented) Delete(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { s.observe(ctx, "delete", start, err) }(time.Now())
	return s.Store.Delete(ctx, id)
}

func (s *instrumented) List(ctx context.Context) (out []Summary, err error) {
	defer func(start time.Time) { s.observe(ctx, "list", start, err) }(time.Now())
	return s.Store.List(ctx)
}
