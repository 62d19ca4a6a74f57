// Package domain parses domain names and descriptor-file paths into their
// leaf label and second-level domain parts.
package domain

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrInvalidFormat is returned when an input cannot be parsed into a
// domain and a second-level domain.
var ErrInvalidFormat = errors.New("invalid domain format")

// DescriptorSuffix is the file suffix of whois descriptor files.
const DescriptorSuffix = ".json"

// Reference identifies a domain within its second-level zone.
type Reference struct {
	Domain string // leftmost label, e.g. "new-dns-example"
	SLD    string // remaining labels joined, e.g. "no.kg"
}

// String returns the full domain name, e.g. "new-dns-example.no.kg".
func (r Reference) String() string {
	return r.Domain + "." + r.SLD
}

// Parse splits a domain string or descriptor-file path into a Reference.
// A leading directory prefix (e.g. "whois/") and a trailing ".json" suffix
// are stripped before splitting, so both "example.no.kg" and
// "whois/example.no.kg.json" parse to the same Reference.
// e.g. "app.example.com" → {"app", "example.com"}
// e.g. "new-dns-example.no.kg" → {"new-dns-example", "no.kg"}
func Parse(input string) (Reference, error) {
	if input == "" {
		return Reference{}, fmt.Errorf("%w: empty input", ErrInvalidFormat)
	}

	cleaned := path.Base(strings.TrimSuffix(input, "/"))
	cleaned = strings.TrimSuffix(cleaned, DescriptorSuffix)
	cleaned = strings.TrimSuffix(cleaned, ".")
	if cleaned == "" || cleaned == "." {
		return Reference{}, fmt.Errorf("%w: %q contains no domain labels", ErrInvalidFormat, input)
	}

	parts := strings.SplitN(cleaned, ".", 2)
	if len(parts) < 2 {
		return Reference{}, fmt.Errorf("%w: %q has no second-level domain", ErrInvalidFormat, cleaned)
	}

	ref := Reference{Domain: parts[0], SLD: parts[1]}
	if ref.Domain == "" || ref.SLD == "" {
		return Reference{}, fmt.Errorf("%w: %q has an empty label", ErrInvalidFormat, cleaned)
	}
	return ref, nil
}
