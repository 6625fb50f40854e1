package store

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Pratikmalviya12/template-designer/pkg/config"
	"github.com/Pratikmalviya12/template-designer/pkg/document"
	"github.com/Pratikmalviya12/template-designer/pkg/editor"
	"github.com/Pratikmalviya12/template-designer/pkg/errors"
	"github.com/Pratikmalviya12/template-designer/pkg/ident"
	pkgio "github.com/Pratikmalviya12/template-designer/pkg/io"
	"github.com/Pratikmalviya12/template-designer/pkg/observability"
)

func sampleDoc(prefix, name string) *document.Document {
	ed := editor.New(nil, editor.WithIDGenerator(ident.NewSequence(prefix)))
	ed.UpdateTemplateName(name)
	sec := ed.AddSection(2)
	c := ed.AddComponent(sec, 0, document.KindText)
	ed.UpdateComponentStyle(sec, 0, 0, "fontSize", "18px")
	ed.UpdateComponentStyle(sec, 0, 0, "color", "#111")
	_ = ed.UpdateComponentProperty(c, "custom", "yes")
	ed.AddComponent(sec, 1, document.KindButton)
	return ed.Document()
}

func sameDoc(t *testing.T, got, want *document.Document) {
	t.Helper()
	a, _ := pkgio.MarshalJSON(got)
	b, _ := pkgio.MarshalJSON(want)
	if !bytes.Equal(a, b) {
		t.Errorf("document mismatch:\n got: %s\nwant: %s", a, b)
	}
}

// exerciseStore runs the behavior every backend shares.
func exerciseStore(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()
	a := sampleDoc("a", "Alpha")
	b := sampleDoc("b", "Beta")

	if err := st.Put(ctx, a); err != nil {
		t.Fatalf("Put(a): %v", err)
	}
	if err := st.Put(ctx, b); err != nil {
		t.Fatalf("Put(b): %v", err)
	}

	got, err := st.Get(ctx, a.Template.ID)
	if err != nil {
		t.Fatalf("Get(a): %v", err)
	}
	sameDoc(t, got, a)

	list, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List = %d entries, want 2", len(list))
	}
	names := map[string]string{}
	for _, s := range list {
		names[s.ID] = s.Name
		if s.Sections != 1 {
			t.Errorf("summary %s sections = %d", s.ID, s.Sections)
		}
	}
	if names[a.Template.ID] != "Alpha" || names[b.Template.ID] != "Beta" {
		t.Errorf("List names = %v", names)
	}

	a.Template.Name = "Alpha 2"
	if err := st.Put(ctx, a); err != nil {
		t.Fatalf("Put(a) again: %v", err)
	}
	got, _ = st.Get(ctx, a.Template.ID)
	if got == nil || got.Template.Name != "Alpha 2" {
		t.Errorf("Put did not replace the template: %+v", got)
	}

	if err := st.Delete(ctx, a.Template.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Get(ctx, a.Template.ID); !errors.Is(err, errors.ErrCodeTemplateNotFound) {
		t.Errorf("Get after Delete error = %v", err)
	}
	if err := st.Delete(ctx, a.Template.ID); !errors.Is(err, errors.ErrCodeTemplateNotFound) {
		t.Errorf("second Delete error = %v", err)
	}
	if list, _ := st.List(ctx); len(list) != 1 {
		t.Errorf("List after Delete = %d entries", len(list))
	}

	if err := st.Put(ctx, nil); !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("Put(nil) error = %v", err)
	}
	bad := sampleDoc("c", "Bad")
	bad.Template.ID = "../escape"
	if err := st.Put(ctx, bad); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Put(bad id) error = %v", err)
	}
}

func TestFileStore(t *testing.T) {
	st, err := NewFileStore(filepath.Join(t.TempDir(), "templates"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer st.Close()
	exerciseStore(t, st)

	if _, err := st.Get(context.Background(), "../etc/passwd"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Get(traversal) error = %v", err)
	}
}

func TestSQLiteStore(t *testing.T) {
	st, err := NewSQLiteStore(filepath.Join(t.TempDir(), "db", "templates.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer st.Close()
	exerciseStore(t, st)
}

func TestSQLiteStoreOrdering(t *testing.T) {
	st, err := NewSQLiteStore(filepath.Join(t.TempDir(), "templates.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	st.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	ctx := context.Background()
	first, second := sampleDoc("a", "First"), sampleDoc("b", "Second")
	_ = st.Put(ctx, first)
	_ = st.Put(ctx, second)

	list, err := st.List(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("List = %v, %v", list, err)
	}
	if list[0].ID != second.Template.ID {
		t.Errorf("List[0] = %s, want most recent %s", list[0].ID, second.Template.ID)
	}
	if !list[0].Updated.Equal(time.Date(2025, 1, 1, 0, 2, 0, 0, time.UTC)) {
		t.Errorf("Updated = %v", list[0].Updated)
	}

	// Reopening keeps the data and reapplies migrations.
	st.Close()
	st2, err := NewSQLiteStore(st.Path())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st2.Close()
	if _, err := st2.Get(ctx, first.Template.ID); err != nil {
		t.Errorf("Get after reopen: %v", err)
	}
}

func TestSortSummaries(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := []Summary{
		{ID: "b", Updated: t0},
		{ID: "c", Updated: t0.Add(time.Hour)},
		{ID: "a", Updated: t0},
	}
	sortSummaries(s)
	if s[0].ID != "c" || s[1].ID != "a" || s[2].ID != "b" {
		t.Errorf("order = %s %s %s", s[0].ID, s[1].ID, s[2].ID)
	}
}

func TestRedisStoreKeys(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	st := NewRedisStore(client, "td:")
	defer st.Close()

	tests := map[string]string{
		st.docsKey():    "td:templates",
		st.summaryKey(): "td:templates:summary",
		st.indexKey():   "td:templates:updated",
	}
	for got, want := range tests {
		if got != want {
			t.Errorf("key = %q, want %q", got, want)
		}
	}
}

func TestMongoRecord(t *testing.T) {
	doc := sampleDoc("m", "Mongo")
	rec, err := newMongoRecord(doc, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	raw, err := bson.Marshal(rec)
	if err != nil {
		t.Fatalf("bson.Marshal: %v", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		t.Fatal(err)
	}
	if m["_id"] != doc.Template.ID || m["name"] != "Mongo" {
		t.Errorf("record = %v", m)
	}
	body, _ := m["body"].(string)
	back, err := pkgio.UnmarshalJSON([]byte(body))
	if err != nil {
		t.Fatalf("body does not decode: %v", err)
	}
	sameDoc(t, back, doc)

	if f := idFilter("x"); f["_id"] != "x" {
		t.Errorf("idFilter = %v", f)
	}
	opts := listOptions()
	if proj, ok := opts.Projection.(bson.M); !ok || proj["body"] != 0 {
		t.Errorf("projection = %v", opts.Projection)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	st, err := Open(ctx, config.Store{Backend: config.BackendFile, Dir: filepath.Join(dir, "files")})
	if err != nil {
		t.Fatalf("Open(file): %v", err)
	}
	st.Close()

	st, err = Open(ctx, config.Store{Backend: config.BackendSQLite, SQLite: filepath.Join(dir, "t.db")})
	if err != nil {
		t.Fatalf("Open(sqlite): %v", err)
	}
	st.Close()

	if _, err := Open(ctx, config.Store{Backend: "etcd"}); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Open(etcd) error = %v", err)
	}
}

type opRecorder struct {
	mu  sync.Mutex
	ops []string
}

func (r *opRecorder) OnStoreOp(_ context.Context, backend, op string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry := backend + ":" + op
	if err != nil {
		entry += "!"
	}
	r.ops = append(r.ops, entry)
}

func TestInstrument(t *testing.T) {
	rec := &opRecorder{}
	observability.SetStoreHooks(rec)
	defer observability.Reset()

	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	st := Instrument(fs, "file")
	ctx := context.Background()
	doc := sampleDoc("i", "Hooked")

	_ = st.Put(ctx, doc)
	_, _ = st.Get(ctx, doc.Template.ID)
	_, _ = st.Get(ctx, "missing")
	_, _ = st.List(ctx)
	_ = st.Delete(ctx, doc.Template.ID)

	want := []string{"file:put", "file:get", "file:get!", "file:list", "file:delete"}
	if len(rec.ops) != len(want) {
		t.Fatalf("ops = %v, want %v", rec.ops, want)
	}
	for i := range want {
		if rec.ops[i] != want[i] {
			t.Errorf("ops[%d] = %q, want %q", i, rec.ops[i], want[i])
		}
	}
}
