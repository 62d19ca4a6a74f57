// Package dryrun implements dns.Syncer without touching any registrar:
// it logs the fully reconciled request and reports success. It is the
// default target for local manual runs without credentials.
package dryrun

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/Waynenet/whois-sync/internal/dns"
)

func init() {
	dns.Register("dryrun", func(log logr.Logger, settings map[string]string) (dns.Syncer, error) {
		return &Syncer{log: log}, nil
	})
}

// Syncer logs sync requests instead of executing them.
type Syncer struct {
	log logr.Logger
}

func (s *Syncer) HandleManualSync(_ context.Context, req dns.ManualRequest) (dns.Outcome, error) {
	s.log.Info("dry run: manual sync",
		"title", req.Title,
		"domain", req.Descriptor.Domain,
		"sld", req.Descriptor.SLD,
		"operation", req.Options.Operation,
		"forceSync", req.Options.ForceSync,
		"triggeredBy", req.Options.TriggeredBy)
	return dns.Outcome{"dry_run": true, "operation": req.Options.Operation}, nil
}

func (s *Syncer) HandlePRMerge(_ context.Context, req dns.MergeRequest) (dns.Outcome, error) {
	if req.Operation == dns.OperationDelete {
		s.log.Info("dry run: whois removal",
			"title", req.Title,
			"domain", req.Reference.Domain,
			"sld", req.Reference.SLD,
			"hasOriginalData", req.OriginalData != nil)
		return dns.Outcome{"dry_run": true, "operation": dns.OperationRemove}, nil
	}
	s.log.Info("dry run: whois sync",
		"title", req.Title,
		"domain", req.Descriptor.Domain,
		"sld", req.Descriptor.SLD,
		"operation", req.Descriptor.Operation)
	return dns.Outcome{"dry_run": true, "operation": req.Descriptor.Operation}, nil
}
