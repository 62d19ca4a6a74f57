package whois

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"github.com/Waynenet/whois-sync/internal/domain"
)

func writeDescriptor(t *testing.T, dir, name, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRead_FromWorkspaceRoot(t *testing.T) {
	root := t.TempDir()
	content := `{"domain":"example","sld":"no.kg","operation":"registration","nameservers":["ns1.example.net"]}`
	writeDescriptor(t, filepath.Join(root, "whois"), "example.no.kg.json", content)

	l := NewLoader(root, "whois", logr.Discard())
	d, err := l.Read("example.no.kg.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Domain != "example" || d.SLD != "no.kg" {
		t.Errorf("got %q/%q, want example/no.kg", d.Domain, d.SLD)
	}
	if d.Operation != "registration" {
		t.Errorf("got operation %q, want registration", d.Operation)
	}
	if len(d.Raw) == 0 {
		t.Error("expected raw file content to be preserved")
	}
}

func TestRead_StripsDirectoryPrefix(t *testing.T) {
	root := t.TempDir()
	writeDescriptor(t, filepath.Join(root, "whois"), "example.com.json", `{"domain":"example","sld":"com"}`)

	l := NewLoader(root, "whois", logr.Discard())
	d, err := l.Read("whois/example.com.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Domain != "example" {
		t.Errorf("got domain %q, want example", d.Domain)
	}
}

func TestRead_FromWorkingDirectory(t *testing.T) {
	cwd := t.TempDir()
	writeDescriptor(t, filepath.Join(cwd, "whois"), "example.com.json", `{"domain":"example","sld":"com"}`)
	prevDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(cwd); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prevDir); err != nil {
			t.Fatal(err)
		}
	})

	// No workspace root configured: resolution falls through to the cwd.
	l := NewLoader("", "whois", logr.Discard())
	d, err := l.Read("example.com.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.SLD != "com" {
		t.Errorf("got sld %q, want com", d.SLD)
	}
}

func TestRead_OverrideBaseDir(t *testing.T) {
	root := t.TempDir()
	writeDescriptor(t, filepath.Join(root, "data", "records"), "example.com.json", `{"domain":"example","sld":"com"}`)

	l := NewLoader(root, filepath.Join("data", "records"), logr.Discard())
	if _, err := l.Read("example.com.json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRead_NotFoundListsAttemptedPaths(t *testing.T) {
	l := NewLoader(t.TempDir(), "whois", logr.Discard())

	_, err := l.Read("missing.com.json")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error %v is not a NotFoundError", err)
	}
	if nf.Logical != "missing.com.json" {
		t.Errorf("got logical %q, want missing.com.json", nf.Logical)
	}
	if len(nf.Attempted) < 2 {
		t.Errorf("expected at least 2 attempted paths, got %v", nf.Attempted)
	}
	for _, p := range nf.Attempted {
		if !strings.Contains(err.Error(), p) {
			t.Errorf("error message %q does not name attempted path %q", err.Error(), p)
		}
	}
}

func TestRead_Malformed(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"bad-json", `{not json`},
		{"missing-domain", `{"sld":"com"}`},
		{"missing-sld", `{"domain":"example"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeDescriptor(t, filepath.Join(root, "whois"), "example.com.json", tt.content)
			l := NewLoader(root, "whois", logr.Discard())
			_, err := l.Read("example.com.json")
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestSynthesize(t *testing.T) {
	d := Synthesize(domain.Reference{Domain: "example", SLD: "no.kg"}, "registration")
	if d.Domain != "example" || d.SLD != "no.kg" || d.Operation != "registration" {
		t.Errorf("unexpected descriptor: %+v", d)
	}
}
