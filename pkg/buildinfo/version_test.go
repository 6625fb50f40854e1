package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	s := String()
	for _, want := range []string{"version: " + Version, "commit: " + Commit, "built: " + Date} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestTemplate(t *testing.T) {
	if !strings.HasPrefix(Template(), "{{.Name}} version ") {
		t.Errorf("Template() = %q, want cobra name placeholder", Template())
	}
}

func TestUserAgent(t *testing.T) {
	if got := UserAgent(); got != "templatedesigner/"+Version {
		t.Errorf("UserAgent() = %q", got)
	}
}
