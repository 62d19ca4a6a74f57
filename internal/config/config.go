// Package config gathers the run configuration. All environment access
// happens here, once, at the entry point; the rest of the program receives
// the resulting Config by value.
package config

import "os"

// Trigger is the kind of event a sync run responds to.
type Trigger string

const (
	TriggerManual  Trigger = "manual"
	TriggerPRMerge Trigger = "pr_merge"
)

// Config holds every input a sync run recognizes.
type Config struct {
	// Manual trigger inputs.
	ManualDomain    string // target domain string
	ManualOperation string // requested operation, default "auto"
	ManualWhoisFile string // logical descriptor filename
	ForceSync       bool   // downgrade descriptor-load failures to warnings

	// PR-merge trigger inputs.
	PRTitle      string
	PROperation  string // non-"auto" overwrites the loaded descriptor's operation
	ChangedFiles string // inline JSON or path to a JSON file

	// Shared inputs.
	WhoisDir      string // descriptor directory, default "whois"
	WorkspaceRoot string
	Actor         string // attribution recorded in manual sync options
	ResultPath    string // where the run result record is written

	// manualOperationSet distinguishes an explicit MANUAL_OPERATION from
	// the default; an explicit one selects the manual trigger even
	// without a domain, so the run fails loudly instead of silently
	// taking the PR-merge path.
	manualOperationSet bool
}

// FromEnv reads the run configuration from the environment.
func FromEnv() Config {
	manualOperation, manualOperationSet := os.LookupEnv("MANUAL_OPERATION")
	if manualOperation == "" {
		manualOperation = "auto"
	}

	return Config{
		ManualDomain:       os.Getenv("MANUAL_DOMAIN"),
		ManualOperation:    manualOperation,
		ManualWhoisFile:    os.Getenv("MANUAL_WHOIS_FILE"),
		ForceSync:          os.Getenv("FORCE_SYNC") == "true",
		PRTitle:            os.Getenv("PR_TITLE"),
		PROperation:        getenvDefault("PR_OPERATION", "auto"),
		ChangedFiles:       os.Getenv("CHANGED_FILES"),
		WhoisDir:           getenvDefault("WHOIS_FILE_PATH", "whois"),
		WorkspaceRoot:      os.Getenv("GITHUB_WORKSPACE"),
		Actor:              os.Getenv("GITHUB_ACTOR"),
		ResultPath:         getenvDefault("RESULT_PATH", "whois-sync-result.json"),
		manualOperationSet: manualOperationSet,
	}
}

// Trigger determines which sync path a run takes: manual when any manual
// input is present, PR-merge otherwise.
func (c Config) Trigger() Trigger {
	if c.ManualDomain != "" || c.ManualWhoisFile != "" || c.manualOperationSet {
		return TriggerManual
	}
	return TriggerPRMerge
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
