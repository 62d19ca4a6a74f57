package whois

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
)

var (
	// ErrMalformed is returned when a descriptor file exists but is not
	// valid descriptor JSON.
	ErrMalformed = errors.New("descriptor malformed")
	// ErrRead is returned for descriptor I/O failures other than the file
	// not existing.
	ErrRead = errors.New("descriptor read failed")
)

// NotFoundError reports a descriptor that resolved through no candidate
// path. Attempted lists every path that was tried, in order.
type NotFoundError struct {
	Logical   string
	Attempted []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("descriptor %q not found (tried %s)", e.Logical, strings.Join(e.Attempted, ", "))
}

// Loader reads whois descriptor files. A logical descriptor name is
// resolved against an ordered list of base locations because the process
// may run from different working directories depending on the trigger
// context (local invocation, CI step, separately-checked-out descriptor
// repository); the first location that has the file wins.
type Loader struct {
	root    string // workspace root, may be empty
	baseDir string // descriptor directory, e.g. "whois"
	log     logr.Logger
}

// NewLoader creates a Loader. root is the workspace root (empty when
// unknown) and baseDir the descriptor directory relative to each candidate
// location.
func NewLoader(root, baseDir string, log logr.Logger) *Loader {
	if baseDir == "" {
		baseDir = "whois"
	}
	return &Loader{root: root, baseDir: baseDir, log: log}
}

// candidates returns the ordered list of absolute paths to try for a
// logical descriptor name.
func (l *Loader) candidates(name string) []string {
	rel := filepath.Join(l.baseDir, name)

	var paths []string
	if l.root != "" {
		paths = append(paths, filepath.Join(l.root, rel))
	}
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, "..", "..", rel))
		paths = append(paths, filepath.Join(cwd, rel))
	}
	return paths
}

// Read resolves and parses the descriptor with the given logical name.
// The name may be a bare filename ("example.no.kg.json") or a repository
// path ("whois/example.no.kg.json"); only its base name is used, the
// directory comes from the loader. Returns *NotFoundError when no
// candidate path exists, an ErrMalformed wrap when a found file is not
// valid descriptor JSON, and an ErrRead wrap for any other I/O error.
func (l *Loader) Read(name string) (*Descriptor, error) {
	name = path.Base(name)

	paths := l.candidates(name)
	attempted := make([]string, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			l.log.V(1).Info("descriptor not at candidate path", "path", p)
			attempted = append(attempted, p)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrRead, p, err)
		}
		return parseDescriptor(p, data)
	}
	return nil, &NotFoundError{Logical: name, Attempted: attempted}
}

func parseDescriptor(path string, data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	if d.Domain == "" || d.SLD == "" {
		return nil, fmt.Errorf("%w: %s: missing required field 'domain' or 'sld'", ErrMalformed, path)
	}
	d.Raw = append(json.RawMessage(nil), data...)
	return &d, nil
}
