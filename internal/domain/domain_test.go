package domain

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input      string
		wantDomain string
		wantSLD    string
	}{
		{"example.com", "example", "com"},
		{"new-dns-example.no.kg", "new-dns-example", "no.kg"},
		{"a.b.c.d", "a", "b.c.d"},
		{"whois/example.no.kg.json", "example", "no.kg"},
		{"whois/example.com.json", "example", "com"},
		{"data/whois/example.com.json", "example", "com"},
		{"example.com.", "example", "com"}, // trailing dot (FQDN)
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ref, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q): unexpected error: %v", tt.input, err)
			}
			if ref.Domain != tt.wantDomain {
				t.Errorf("Parse(%q): got domain %q, want %q", tt.input, ref.Domain, tt.wantDomain)
			}
			if ref.SLD != tt.wantSLD {
				t.Errorf("Parse(%q): got sld %q, want %q", tt.input, ref.SLD, tt.wantSLD)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"singlelabel",
		"whois/singlelabel.json",
		".",
		"/",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Fatalf("Parse(%q): expected error, got nil", input)
			}
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("Parse(%q): error %v is not ErrInvalidFormat", input, err)
			}
		})
	}
}

func TestReferenceString(t *testing.T) {
	ref := Reference{Domain: "example", SLD: "no.kg"}
	if got := ref.String(); got != "example.no.kg" {
		t.Errorf("expected 'example.no.kg', got %q", got)
	}
}
