package document

import "testing"

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{"text", KindText, false},
		{"Heading", KindHeading, false},
		{" image ", KindImage, false},
		{"socialShare", KindSocialShare, false},
		{"social-share", KindSocialShare, false},
		{"SOCIAL_SHARE", KindSocialShare, false},
		{"html", KindHTML, false},
		{"carousel", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestKinds(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 15 {
		t.Fatalf("Kinds() returned %d kinds, want 15", len(kinds))
	}
	if kinds[0] != KindText || kinds[8] != KindMenu {
		t.Errorf("palette order changed: %v", kinds)
	}
	for _, k := range kinds {
		if !k.Known() {
			t.Errorf("%q should be known", k)
		}
		if k.Label() == "" {
			t.Errorf("%q has no label", k)
		}
	}
	kinds[0] = "mutated"
	if Kinds()[0] != KindText {
		t.Error("Kinds() must return a copy")
	}
	if Kind("custom").Known() {
		t.Error("custom kind should not be known")
	}
	if Kind("custom").Label() != "custom" {
		t.Error("unknown kinds label as themselves")
	}
}
