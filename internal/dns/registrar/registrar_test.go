package registrar

import (
	"testing"

	"github.com/go-logr/logr"
)

func TestNew_ValidSettings(t *testing.T) {
	settings := map[string]string{
		"base_url":   "https://registrar.example.net/api",
		"api_key":    "key123",
		"api_secret": "secret456",
	}

	c, err := New(logr.Discard(), settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.baseURL != "https://registrar.example.net/api" {
		t.Errorf("expected baseURL 'https://registrar.example.net/api', got %q", c.baseURL)
	}
}

func TestNew_MissingSettings(t *testing.T) {
	tests := []struct {
		name    string
		missing string
	}{
		{"missing base_url", "base_url"},
		{"missing api_key", "api_key"},
		{"missing api_secret", "api_secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := map[string]string{
				"base_url":   "https://registrar.example.net/api",
				"api_key":    "key123",
				"api_secret": "secret456",
			}
			delete(settings, tt.missing)

			if _, err := New(logr.Discard(), settings); err == nil {
				t.Fatalf("expected error for missing %s, got nil", tt.missing)
			}
		})
	}
}

func TestNew_InvalidTimeout(t *testing.T) {
	settings := map[string]string{
		"base_url":        "https://registrar.example.net/api",
		"api_key":         "key123",
		"api_secret":      "secret456",
		"timeout_seconds": "soon",
	}

	if _, err := New(logr.Discard(), settings); err == nil {
		t.Fatal("expected error for invalid timeout_seconds, got nil")
	}
}

func TestEndpointFor(t *testing.T) {
	tests := []struct {
		operation string
		want      string
	}{
		{"registration", "whois/registration"},
		{"update", "whois/update"},
		{"remove", "whois/remove"},
		{"delete", "whois/remove"},
		{"auto", "whois/sync"},
		{"", "whois/sync"},
		{"custom", "whois/sync"},
	}

	for _, tt := range tests {
		t.Run(tt.operation, func(t *testing.T) {
			if got := endpointFor(tt.operation); got != tt.want {
				t.Errorf("endpointFor(%q) = %q, want %q", tt.operation, got, tt.want)
			}
		})
	}
}
