// Package dns defines the boundary to the DNS-operations collaborator:
// the sync request vocabulary, the operation-name mapping, and the
// provider registry.
package dns

import (
	"context"

	"github.com/Waynenet/whois-sync/internal/domain"
	"github.com/Waynenet/whois-sync/internal/whois"
)

// ManualOptions carries the operator-supplied options of a manual sync.
type ManualOptions struct {
	Operation   string // already mapped to the provider vocabulary
	ForceSync   bool
	TriggeredBy string
}

// ManualRequest is the reconciled unit dispatched for a manual trigger.
type ManualRequest struct {
	Title      string
	Descriptor *whois.Descriptor
	Options    ManualOptions
}

// MergeRequest is the reconciled unit dispatched for a merged pull
// request. For deletions Descriptor is nil and Reference carries the
// domain parsed from the removed file's name; OriginalData is set only
// when a best-effort read of the removed descriptor succeeded.
type MergeRequest struct {
	Title        string
	Operation    string // "delete" for removals, empty otherwise
	Descriptor   *whois.Descriptor
	Reference    domain.Reference
	OriginalData *whois.Descriptor
}

// Outcome carries provider-specific result fields that are merged into
// the persisted run result.
type Outcome map[string]any

// Syncer is the interface DNS providers implement.
type Syncer interface {
	HandleManualSync(ctx context.Context, req ManualRequest) (Outcome, error)
	HandlePRMerge(ctx context.Context, req MergeRequest) (Outcome, error)
}
