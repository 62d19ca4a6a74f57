// Package sync reconciles the run inputs into one well-formed sync request,
// dispatches it to the DNS collaborator, and persists the run result.
package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/Waynenet/whois-sync/internal/changeset"
	"github.com/Waynenet/whois-sync/internal/config"
	"github.com/Waynenet/whois-sync/internal/dns"
	"github.com/Waynenet/whois-sync/internal/domain"
	"github.com/Waynenet/whois-sync/internal/whois"
)

var (
	// ErrMissingManualInput is returned when a manual trigger carries
	// neither a domain string nor a whois file reference.
	ErrMissingManualInput = errors.New("manual sync requires a domain or a whois file input")
	// ErrMissingTitle is returned when a PR-merge trigger has no title.
	ErrMissingTitle = errors.New("pull request title is required")
)

// Orchestrator coordinates one sync run. It holds no cross-run state;
// every invocation owns its own descriptor, request, and result.
type Orchestrator struct {
	cfg       config.Config
	strictOps bool
	loader    *whois.Loader
	syncer    dns.Syncer
	results   *ResultWriter
	log       logr.Logger
}

// New creates an Orchestrator. strictOps selects the strict operation
// mapping (unknown operation names rejected instead of passed through).
func New(cfg config.Config, strictOps bool, loader *whois.Loader, syncer dns.Syncer, results *ResultWriter, log logr.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:       cfg,
		strictOps: strictOps,
		loader:    loader,
		syncer:    syncer,
		results:   results,
		log:       log,
	}
}

// dispatch records what one run sent to the DNS collaborator.
type dispatch struct {
	domain    string
	sld       string
	operation string
	outcome   dns.Outcome
}

// Run executes one sync run. Any failure anywhere in either trigger path
// is converted into a persisted failure result and then returned; the
// result record is written before the error surfaces, so the invoking
// workflow never loses the failure record even if it halts.
func (o *Orchestrator) Run(ctx context.Context) error {
	trigger := o.cfg.Trigger()
	o.log.Info("starting sync run", "trigger", trigger)

	var (
		d   *dispatch
		err error
	)
	switch trigger {
	case config.TriggerManual:
		d, err = o.runManual(ctx)
	default:
		d, err = o.runPRMerge(ctx)
	}

	res := Result{TriggerType: string(trigger)}
	if err != nil {
		res.Error = err.Error()
	} else {
		res.Success = true
		res.Domain = d.domain
		res.SLD = d.sld
		res.Operation = d.operation
		res.Details = d.outcome
	}

	if werr := o.results.Write(res); werr != nil {
		o.log.Error(werr, "failed to persist result record")
		if err == nil {
			err = werr
		}
	}
	return err
}

// runManual resolves a manual trigger. Descriptor resolution order: the
// explicit whois file reference, then the file conventionally named after
// the manual domain, then a descriptor synthesized from the bare domain
// string. The first two attempts propagate load failures unless the
// fallback policy downgrades them.
func (o *Orchestrator) runManual(ctx context.Context) (*dispatch, error) {
	cfg := o.cfg
	if cfg.ManualDomain == "" && cfg.ManualWhoisFile == "" {
		return nil, ErrMissingManualInput
	}

	policy := whois.Propagate
	if cfg.ForceSync {
		policy = whois.FallbackToBareDomain
	}

	var desc *whois.Descriptor
	if cfg.ManualWhoisFile != "" {
		d, err := o.loader.Read(cfg.ManualWhoisFile)
		switch {
		case err == nil:
			desc = d
		case policy == whois.FallbackToBareDomain && cfg.ManualDomain != "":
			o.log.Info("whois file load failed, continuing with bare domain",
				"file", cfg.ManualWhoisFile, "reason", err.Error())
		default:
			return nil, err
		}
	}

	if desc == nil && cfg.ManualDomain != "" && cfg.ManualWhoisFile == "" {
		name := cfg.ManualDomain + domain.DescriptorSuffix
		d, err := o.loader.Read(name)
		switch {
		case err == nil:
			desc = d
		case policy == whois.FallbackToBareDomain:
			o.log.Info("descriptor load failed, continuing with bare domain",
				"file", name, "reason", err.Error())
		default:
			return nil, err
		}
	}

	op, err := o.mapOperation(cfg.ManualOperation)
	if err != nil {
		return nil, err
	}

	if desc == nil {
		ref, err := domain.Parse(cfg.ManualDomain)
		if err != nil {
			return nil, err
		}
		desc = whois.Synthesize(ref, op)
	}

	req := dns.ManualRequest{
		Title:      fmt.Sprintf("Manual whois sync: %s", desc.Reference()),
		Descriptor: desc,
		Options: dns.ManualOptions{
			Operation:   op,
			ForceSync:   cfg.ForceSync,
			TriggeredBy: cfg.Actor,
		},
	}
	o.log.Info("dispatching manual sync", "domain", desc.Domain, "sld", desc.SLD, "operation", op)
	outcome, err := o.syncer.HandleManualSync(ctx, req)
	if err != nil {
		return nil, err
	}
	return &dispatch{domain: desc.Domain, sld: desc.SLD, operation: op, outcome: outcome}, nil
}

// runPRMerge resolves a PR-merge trigger: exactly one whois descriptor
// file must appear in the change-set, and its status decides between the
// removal and upsert paths.
func (o *Orchestrator) runPRMerge(ctx context.Context) (*dispatch, error) {
	if o.cfg.PRTitle == "" {
		return nil, ErrMissingTitle
	}

	files, err := changeset.Load(o.cfg.ChangedFiles)
	if err != nil {
		return nil, err
	}
	o.log.V(1).Info("loaded change-set", "files", len(files))

	file, err := changeset.ExtractAll(files)
	if err != nil {
		return nil, err
	}

	if file.Status == changeset.StatusRemoved {
		return o.runRemoval(ctx, file)
	}
	return o.runUpsert(ctx, file)
}

func (o *Orchestrator) runRemoval(ctx context.Context, file changeset.File) (*dispatch, error) {
	// The file content is gone from the working tree; the filename is the
	// only trusted source for the domain reference.
	ref, err := domain.Parse(file.Filename)
	if err != nil {
		return nil, err
	}

	req := dns.MergeRequest{
		Title:     o.cfg.PRTitle,
		Operation: dns.OperationDelete,
		Reference: ref,
	}

	// Best-effort read of a descriptor copy for cross-validation only.
	// Mismatches are warnings and never abort the deletion.
	if original, err := o.loader.Read(file.Filename); err == nil {
		if original.Domain != ref.Domain || original.SLD != ref.SLD {
			o.log.Info("warning: removed descriptor content does not match its filename",
				"filename", file.Filename,
				"fileDomain", original.Domain, "fileSLD", original.SLD,
				"parsedDomain", ref.Domain, "parsedSLD", ref.SLD)
		}
		req.OriginalData = original
	} else {
		o.log.V(1).Info("no descriptor copy available for cross-validation",
			"filename", file.Filename, "reason", err.Error())
	}

	o.log.Info("dispatching whois removal", "domain", ref.Domain, "sld", ref.SLD)
	outcome, err := o.syncer.HandlePRMerge(ctx, req)
	if err != nil {
		return nil, err
	}
	return &dispatch{domain: ref.Domain, sld: ref.SLD, operation: dns.OperationDelete, outcome: outcome}, nil
}

func (o *Orchestrator) runUpsert(ctx context.Context, file changeset.File) (*dispatch, error) {
	desc, err := o.loader.Read(file.Filename)
	if err != nil {
		return nil, err
	}

	if op := o.cfg.PROperation; op != "" && op != dns.OperationAuto {
		mapped, err := o.mapOperation(op)
		if err != nil {
			return nil, err
		}
		o.log.Info("applying operation override", "operation", mapped)
		desc.SetOperation(mapped)
	}

	req := dns.MergeRequest{Title: o.cfg.PRTitle, Descriptor: desc}
	o.log.Info("dispatching whois sync", "domain", desc.Domain, "sld", desc.SLD, "operation", desc.Operation)
	outcome, err := o.syncer.HandlePRMerge(ctx, req)
	if err != nil {
		return nil, err
	}
	return &dispatch{domain: desc.Domain, sld: desc.SLD, operation: desc.Operation, outcome: outcome}, nil
}

func (o *Orchestrator) mapOperation(op string) (string, error) {
	if o.strictOps {
		return dns.MapOperationStrict(op)
	}
	return dns.MapOperation(op), nil
}
