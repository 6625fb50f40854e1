package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/Pratikmalviya12/template-designer/pkg/document"
	"github.com/Pratikmalviya12/template-designer/pkg/errors"
	pkgio "github.com/Pratikmalviya12/template-designer/pkg/io"
	"github.com/Pratikmalviya12/template-designer/pkg/store"
)

// testEnv is a CLI wired to a file store and cache under a temp dir.
type testEnv struct {
	t      *testing.T
	cfg    string
	data   string
	outDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		t:      t,
		cfg:    filepath.Join(dir, "config.toml"),
		data:   filepath.Join(dir, "templates"),
		outDir: filepath.Join(dir, "out"),
	}
	body := `[store]
backend = "file"
dir = "` + filepath.ToSlash(env.data) + `"

[cache]
enabled = true
dir = "` + filepath.ToSlash(filepath.Join(dir, "cache")) + `"

[export]
formats = ["html"]
out_dir = "` + filepath.ToSlash(env.outDir) + `"
`
	if err := os.WriteFile(env.cfg, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return env
}

func (e *testEnv) run(args ...string) error {
	e.t.Helper()
	c := &CLI{Logger: log.New(io.Discard)}
	root := c.RootCommand()
	root.SetArgs(append([]string{"--config", e.cfg}, args...))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func (e *testEnv) mustRun(args ...string) {
	e.t.Helper()
	if err := e.run(args...); err != nil {
		e.t.Fatalf("%s: %v", strings.Join(args, " "), err)
	}
}

func (e *testEnv) doc(id string) *document.Document {
	e.t.Helper()
	st, err := store.NewFileStore(e.data)
	if err != nil {
		e.t.Fatal(err)
	}
	doc, err := st.Get(context.Background(), id)
	if err != nil {
		e.t.Fatalf("Get(%s): %v", id, err)
	}
	return doc
}

func TestCLIEditingFlow(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("new", "Spring Sale", "--id", "spring")

	env.mustRun("section", "add", "spring", "2")
	sid := env.doc("spring").Template.Sections[0].ID

	env.mustRun("component", "add", "spring", sid, "0", "heading", "--content", "Big Sale")
	env.mustRun("component", "add", "spring", sid, "1", "button")
	cid := env.doc("spring").Template.Sections[0].Components[0][0].ID

	env.mustRun("component", "prop", "spring", cid, "level", "h1")
	env.mustRun("component", "style", "spring", sid, "0", "0", "textAlign", "center")
	env.mustRun("component", "set", "spring", cid, "--style", "color=#c00", "--style", "textAlign = center")
	env.mustRun("section", "rename", "spring", sid, "hero")
	env.mustRun("canvas", "spring", "--width", "720px")
	env.mustRun("rename", "spring", "Summer Sale")

	doc := env.doc("spring")
	if doc.Template.Name != "Summer Sale" || doc.Canvas.Width != "720px" {
		t.Errorf("template = %q, canvas %+v", doc.Template.Name, doc.Canvas)
	}
	hero := doc.Template.Sections[0]
	if hero.ID != "hero" {
		t.Fatalf("section id = %q", hero.ID)
	}
	h := hero.Components[0][0]
	if h.Content != "Big Sale" || h.Properties.Level != "h1" {
		t.Errorf("heading = %+v", h)
	}
	if v, _ := h.Style.Get("textAlign"); v != "center" {
		t.Errorf("textAlign = %q", v)
	}
	if got, want := h.Style.Keys(), []string{"textAlign", "color"}; !slices.Equal(got, want) {
		t.Errorf("style keys = %v, want %v", got, want)
	}

	saved := filepath.Join(t.TempDir(), "spring.yaml")
	env.mustRun("show", "spring", "--output", saved)
	back, err := pkgio.ImportFile(saved)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if back.Template.Name != "Summer Sale" || back.ComponentCount() != 2 {
		t.Errorf("saved copy = %q with %d components", back.Template.Name, back.ComponentCount())
	}

	env.mustRun("export", "spring", "--format", "html,json")
	page, err := os.ReadFile(filepath.Join(env.outDir, "summer-sale.html"))
	if err != nil {
		t.Fatalf("html artifact: %v", err)
	}
	for _, want := range []string{"<h1", "Big Sale", "text-align: center", "width: 50%"} {
		if !strings.Contains(string(page), want) {
			t.Errorf("export missing %q", want)
		}
	}
	if _, err := os.Stat(filepath.Join(env.outDir, "summer-sale.json")); err != nil {
		t.Errorf("json artifact: %v", err)
	}
}

func TestCLIStructuralCommands(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("new", "--id", "t1")
	env.mustRun("section", "add", "t1", "3")
	sid := env.doc("t1").Template.Sections[0].ID

	env.mustRun("component", "add", "t1", sid, "0", "text")
	env.mustRun("component", "add", "t1", sid, "2", "image")
	env.mustRun("component", "duplicate", "t1", sid, "0", "0")
	env.mustRun("component", "move", "t1", sid, "2", "0", sid, "0", "0")
	env.mustRun("section", "columns", "t1", sid, "1")

	sec := env.doc("t1").Template.Sections[0]
	if sec.Columns != 1 || len(sec.Components[0]) != 3 || sec.Components[0][0].Kind != document.KindImage {
		t.Fatalf("section after shrink = %+v", sec.Components)
	}

	env.mustRun("section", "duplicate", "t1", sid)
	env.mustRun("section", "reorder", "t1", "1", "0")
	env.mustRun("component", "remove", "t1", sid, "0", "0")
	env.mustRun("component", "drop", "t1", sid, "0", `{"type":"divider"}`)
	env.mustRun("component", "style", "t1", sid, "0", "0", "color", "--remove")

	doc := env.doc("t1")
	if len(doc.Template.Sections) != 2 || doc.Template.Sections[1].ID != sid {
		t.Fatalf("sections = %+v", doc.Template.Sections)
	}
	col := doc.Template.Sections[1].Components[0]
	if len(col) != 3 || col[2].Kind != document.KindDivider {
		t.Errorf("column after remove+drop = %+v", col)
	}

	env.mustRun("section", "remove", "t1", sid)
	if n := len(env.doc("t1").Template.Sections); n != 1 {
		t.Errorf("sections after remove = %d", n)
	}

	env.mustRun("delete", "t1")
	if err := env.run("show", "t1"); !errors.Is(err, errors.ErrCodeTemplateNotFound) {
		t.Errorf("show after delete = %v", err)
	}
}

func TestCLIErrors(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("new", "--id", "t1")
	env.mustRun("section", "add", "t1", "1")
	sid := env.doc("t1").Template.Sections[0].ID

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"duplicate id", []string{"new", "--id", "t1"}, errors.ErrCodeConflict},
		{"bad template id", []string{"new", "--id", "../x"}, errors.ErrCodeInvalidInput},
		{"missing template", []string{"rename", "nope", "x"}, errors.ErrCodeTemplateNotFound},
		{"zero columns", []string{"section", "add", "t1", "0"}, errors.ErrCodeInvalidInput},
		{"too many columns", []string{"section", "columns", "t1", sid, "13"}, errors.ErrCodeInvalidInput},
		{"missing section", []string{"section", "remove", "t1", "ghost"}, errors.ErrCodeSectionNotFound},
		{"bad kind", []string{"component", "add", "t1", sid, "0", "carousel"}, errors.ErrCodeInvalidKind},
		{"column out of range", []string{"component", "add", "t1", sid, "4", "text"}, errors.ErrCodeInvalidInput},
		{"missing component", []string{"component", "remove", "t1", sid, "0", "0"}, errors.ErrCodeComponentNotFound},
		{"unknown component id", []string{"component", "prop", "t1", "ghost", "src", "x"}, errors.ErrCodeComponentNotFound},
		{"bad payload", []string{"component", "drop", "t1", sid, "0", "{}"}, errors.ErrCodeInvalidPayload},
		{"bad format", []string{"export", "t1", "--format", "pdf"}, errors.ErrCodeInvalidFormat},
		{"id and file", []string{"export", "t1", "--file", "x.json"}, errors.ErrCodeInvalidInput},
		{"control char in out dir", []string{"export", "t1", "--out", "dist\x00"}, errors.ErrCodeInvalidPath},
		{"control char in outline file", []string{"outline", "t1", "--output", "graph\n.dot"}, errors.ErrCodeInvalidPath},
		{"style without value", []string{"component", "set", "t1", "ghost", "--style", "color"}, errors.ErrCodeInvalidInput},
		{"nothing to set", []string{"component", "set", "t1", "ghost"}, errors.ErrCodeInvalidInput},
		{"control char in show file", []string{"show", "t1", "--output", "t1\x00.json"}, errors.ErrCodeInvalidPath},
		{"empty canvas", []string{"canvas", "t1"}, errors.ErrCodeInvalidInput},
		{"bad store", []string{"--store", "etcd", "list"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.run(tt.args...)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestCLINewFromFile(t *testing.T) {
	env := newTestEnv(t)
	src := filepath.Join(t.TempDir(), "import.yaml")
	body := `template:
  id: imported
  name: Imported
  sections:
    - id: s1
      columns: 1
      components:
        - - id: c1
            kind: text
            content: hello
            style:
              color: red
              fontSize: 14px
canvas:
  width: 500px
`
	if err := os.WriteFile(src, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	env.mustRun("new", "--from", src)

	doc := env.doc("imported")
	if doc.Canvas.Height != document.DefaultCanvasHeight {
		t.Errorf("height = %q", doc.Canvas.Height)
	}
	if keys := doc.Template.Sections[0].Components[0][0].Style.Keys(); strings.Join(keys, ",") != "color,fontSize" {
		t.Errorf("style order = %v", keys)
	}

	env.mustRun("export", "--file", src, "--format", "yaml", "--no-cache")
	if _, err := os.Stat(filepath.Join(env.outDir, "imported.yaml")); err != nil {
		t.Errorf("yaml artifact: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	fallback := []string{"html"}
	tests := []struct {
		in   string
		want string
	}{
		{"", "html"},
		{"svg", "svg"},
		{"HTML, json ,", "html,json"},
	}
	for _, tt := range tests {
		if got := strings.Join(parseFormats(tt.in, fallback), ","); got != tt.want {
			t.Errorf("parseFormats(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTakesTemplate(t *testing.T) {
	tests := []struct {
		use  string
		want bool
	}{
		{"show <id>", true},
		{"delete <id>...", true},
		{"export [id]", true},
		{"add <template> <columns>", true},
		{"list", false},
		{"kinds", false},
		{"completion [bash|zsh|fish|powershell]", false},
	}
	for _, tt := range tests {
		if got := takesTemplate(tt.use); got != tt.want {
			t.Errorf("takesTemplate(%q) = %v, want %v", tt.use, got, tt.want)
		}
	}
}
