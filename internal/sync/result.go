package sync

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/Waynenet/whois-sync/internal/dns"
)

// Result is the persisted record of one sync run. Exactly one Result is
// written per run, on success and on failure alike, so an external watcher
// can poll for completion without racing the orchestrator.
type Result struct {
	Success     bool        `json:"success"`
	RunID       string      `json:"run_id"`
	Timestamp   string      `json:"timestamp"`
	TriggerType string      `json:"trigger_type"`
	Domain      string      `json:"domain,omitempty"`
	SLD         string      `json:"sld,omitempty"`
	Operation   string      `json:"operation,omitempty"`
	Error       string      `json:"error,omitempty"`
	Details     dns.Outcome `json:"details,omitempty"`
}

// ResultWriter persists run results as JSON.
type ResultWriter struct {
	path string
	log  logr.Logger
	now  func() time.Time
}

// NewResultWriter creates a ResultWriter targeting the given path.
func NewResultWriter(path string, log logr.Logger) *ResultWriter {
	return &ResultWriter{path: path, log: log, now: time.Now}
}

// Write stamps the result with a run ID and timestamp and writes it.
func (w *ResultWriter) Write(res Result) error {
	res.RunID = uuid.NewString()
	res.Timestamp = w.now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result record: %w", err)
	}
	if err := os.WriteFile(w.path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing result record: %w", err)
	}

	w.log.Info("result record written", "path", w.path, "success", res.Success)
	return nil
}
