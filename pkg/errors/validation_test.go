package errors

import (
	"strings"
	"testing"
)

func TestValidateColumnCount(t *testing.T) {
	tests := []struct {
		n       int
		wantErr bool
	}{
		{1, false},
		{2, false},
		{12, false},
		{0, true},
		{-1, true},
		{13, true},
	}

	for _, tt := range tests {
		err := ValidateColumnCount(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateColumnCount(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
	}
}

func TestValidateDimension(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"pixels", "600px", false},
		{"auto", "auto", false},
		{"percent", "100%", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"control char", "600\npx", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimension(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimension(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDimension) {
				t.Errorf("ValidateDimension(%q) code = %v", tt.input, GetCode(err))
			}
		})
	}
}

func TestValidateTemplateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Newsletter", false},
		{"with spaces", "Spring Sale 2024", false},
		{"unicode", "Café Menü", false},
		{"empty", "", true},
		{"blank", "  ", true},
		{"too long", strings.Repeat("a", 201), true},
		{"tab", "a\tb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTemplateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTemplateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTemplateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"uuid", "0b7e2a64-6c0e-4a58-9d5e-2f0c3d1f9a11", false},
		{"ulid", "01ARZ3NDEKTSV4RRFFQ69G5FAV", false},
		{"sequence", "tpl-1", false},
		{"empty", "", true},
		{"traversal", "../etc", true},
		{"slash", "a/b", true},
		{"leading dash", "-a", true},
		{"too long", strings.Repeat("a", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTemplateID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTemplateID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/newsletter.html", false},
		{"absolute", "/tmp/newsletter.html", false},
		{"empty", "", true},
		{"null byte", "a\x00b", true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"#", false},
		{"#contact", false},
		{"/about", false},
		{"images/logo.png", false},
		{"logo.png", false},
		{"../shared/banner.jpg", false},
		{"cid:logo@mail", false},
		{"https://example.com", false},
		{"HTTP://EXAMPLE.COM", false},
		{"mailto:hi@example.com", false},
		{"ftp://example.com", false},
		{"data:image/png;base64,AAAA", false},
		{"a/b:c", false},
		{"", true},
		{"   ", true},
		{"javascript:alert(1)", true},
		{"JavaScript:alert(1)", true},
		{" java\tscript:alert(1)", true},
		{"vbscript:msgbox", true},
		{"data:text/html,<script>", true},
	}

	for _, tt := range tests {
		err := ValidateURL(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestURLScheme(t *testing.T) {
	tests := map[string]string{
		"https://x":       "https",
		"CID:part":        "cid",
		"images/logo.png": "",
		"?q=a:b":          "",
		"#a:b":            "",
		"java\nscript:x":  "javascript",
	}
	for in, want := range tests {
		if got := URLScheme(in); got != want {
			t.Errorf("URLScheme(%q) = %q, want %q", in, got, want)
		}
	}
}
