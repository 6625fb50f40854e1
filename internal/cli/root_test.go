package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Pratikmalviya12/template-designer/pkg/buildinfo"
)

func TestSetVersion(t *testing.T) {
	old := [3]string{buildinfo.Version, buildinfo.Commit, buildinfo.Date}
	defer func() { buildinfo.Version, buildinfo.Commit, buildinfo.Date = old[0], old[1], old[2] }()

	SetVersion("1.0.0", "abc123", "2024-01-01")

	if buildinfo.Version != "1.0.0" {
		t.Errorf("version = %q, want %q", buildinfo.Version, "1.0.0")
	}
	if buildinfo.Commit != "abc123" {
		t.Errorf("commit = %q, want %q", buildinfo.Commit, "abc123")
	}
	if buildinfo.Date != "2024-01-01" {
		t.Errorf("date = %q, want %q", buildinfo.Date, "2024-01-01")
	}
}

func TestSetVersionEmptyKeepsDefaults(t *testing.T) {
	old := buildinfo.Version
	SetVersion("", "", "")
	if buildinfo.Version != old {
		t.Errorf("version changed to %q", buildinfo.Version)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	var buf bytes.Buffer
	root := New(&buf, LogInfo).RootCommand()

	want := []string{"new", "list", "show", "delete", "rename", "canvas", "section", "component",
		"export", "outline", "edit", "serve", "config", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"config", "store"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing --%s flag", flag)
		}
	}
	if !strings.HasPrefix(root.Use, appName) {
		t.Errorf("Use = %q", root.Use)
	}
}
