// Package changeset models the files touched by a merged pull request and
// isolates the single whois descriptor a sync run operates on.
package changeset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Status is the change status of a file in a merged change-set.
type Status string

const (
	StatusAdded     Status = "added"
	StatusModified  Status = "modified"
	StatusRemoved   Status = "removed"
	StatusRenamed   Status = "renamed"
	StatusCopied    Status = "copied"
	StatusChanged   Status = "changed"
	StatusUnchanged Status = "unchanged"
)

// File is one changed file in a merged change-set.
type File struct {
	Filename string `json:"filename"`
	Status   Status `json:"status"`
}

const (
	descriptorDir    = "whois/"
	descriptorSuffix = ".json"
)

// ErrNoDescriptorFound is returned when a change-set contains no whois
// descriptor file.
var ErrNoDescriptorFound = errors.New("no whois descriptor file in change-set")

// AmbiguousError reports a change-set with more than one whois descriptor
// file. One sync run corresponds to exactly one domain; the workflow
// producing the change-set is expected to guarantee at most one descriptor
// per merge, and the extractor asserts that guarantee instead of silently
// picking one.
type AmbiguousError struct {
	Filenames []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("expected exactly one whois descriptor in change-set, found %d: %s",
		len(e.Filenames), strings.Join(e.Filenames, ", "))
}

// IsDescriptor reports whether a changed-file path names a whois
// descriptor file.
func IsDescriptor(filename string) bool {
	return strings.HasPrefix(filename, descriptorDir) && strings.HasSuffix(filename, descriptorSuffix)
}

// ExtractAll returns the single whois descriptor file in the change-set,
// regardless of its status.
func ExtractAll(files []File) (File, error) {
	return extract(files, func(File) bool { return true })
}

// ExtractNonRemoved returns the single whois descriptor file in the
// change-set, ignoring removed files.
func ExtractNonRemoved(files []File) (File, error) {
	return extract(files, func(f File) bool { return f.Status != StatusRemoved })
}

func extract(files []File, keep func(File) bool) (File, error) {
	var matches []File
	for _, f := range files {
		if IsDescriptor(f.Filename) && keep(f) {
			matches = append(matches, f)
		}
	}
	switch len(matches) {
	case 0:
		return File{}, ErrNoDescriptorFound
	case 1:
		return matches[0], nil
	default:
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, m.Filename)
		}
		return File{}, &AmbiguousError{Filenames: names}
	}
}

// Load reads a change-set from its externally supplied source: either an
// inline JSON array of {filename, status} objects, or the path of a JSON
// file containing one. An empty or unavailable source yields an empty
// change-set; a source that is readable but not valid JSON is an error.
func Load(source string) ([]File, error) {
	if source == "" {
		return nil, nil
	}

	if strings.HasPrefix(strings.TrimSpace(source), "[") {
		var files []File
		if err := json.Unmarshal([]byte(source), &files); err != nil {
			return nil, fmt.Errorf("parsing inline change-set: %w", err)
		}
		return files, nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, nil
	}
	var files []File
	if err := json.Unmarshal(data, &files); err != nil {
		return nil, fmt.Errorf("parsing change-set file %s: %w", source, err)
	}
	return files, nil
}
