// Package whois defines the whois descriptor record and loads descriptor
// files through an ordered list of filesystem locations.
package whois

import (
	"encoding/json"

	"github.com/Waynenet/whois-sync/internal/domain"
)

// Descriptor is a domain-ownership record as stored in a whois descriptor
// file. Raw preserves the full file content so that fields this tool does
// not model are still forwarded to the DNS collaborator unchanged.
type Descriptor struct {
	Domain      string          `json:"domain"`
	SLD         string          `json:"sld"`
	Operation   string          `json:"operation,omitempty"`
	Nameservers []string        `json:"nameservers,omitempty"`
	Registrant  string          `json:"registrant,omitempty"`
	Raw         json.RawMessage `json:"-"`
}

// Reference returns the domain reference carried by the descriptor.
func (d *Descriptor) Reference() domain.Reference {
	return domain.Reference{Domain: d.Domain, SLD: d.SLD}
}

// SetOperation overrides the descriptor's operation field, keeping the
// preserved raw file content consistent with the override.
func (d *Descriptor) SetOperation(op string) {
	d.Operation = op
	if len(d.Raw) == 0 {
		return
	}
	var m map[string]any
	if err := json.Unmarshal(d.Raw, &m); err != nil {
		d.Raw = nil
		return
	}
	m["operation"] = op
	raw, err := json.Marshal(m)
	if err != nil {
		d.Raw = nil
		return
	}
	d.Raw = raw
}

// Synthesize builds the minimal descriptor used when no descriptor file
// could be loaded and only a bare domain string is available.
func Synthesize(ref domain.Reference, operation string) *Descriptor {
	return &Descriptor{
		Domain:    ref.Domain,
		SLD:       ref.SLD,
		Operation: operation,
	}
}

// LoadFailurePolicy decides what the manual sync path does when a
// descriptor file cannot be loaded.
type LoadFailurePolicy int

const (
	// Propagate surfaces the load error to the caller.
	Propagate LoadFailurePolicy = iota
	// FallbackToBareDomain logs the load error and continues with a
	// descriptor synthesized from the manual domain string.
	FallbackToBareDomain
)
