package main

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Waynenet/whois-sync/internal/config"
	"github.com/Waynenet/whois-sync/internal/dns"
	_ "github.com/Waynenet/whois-sync/internal/dns/providers"
	"github.com/Waynenet/whois-sync/internal/sync"
	"github.com/Waynenet/whois-sync/internal/whois"
)

var Version = "dev"

type options struct {
	resultPath     string
	changedFiles   string
	whoisDir       string
	providerConfig string
	dryRun         bool
	verbosity      int
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCommand builds the whois-sync command. Inputs come from the
// environment (see internal/config); flags override the corresponding
// environment values for local use.
func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "whois-sync",
		Short: "Reconcile whois descriptor files with a DNS registrar",
		Long: `whois-sync performs one sync run against a DNS registrar, triggered
either manually (MANUAL_DOMAIN / MANUAL_OPERATION / MANUAL_WHOIS_FILE) or by
a merged pull request that touched exactly one whois descriptor file
(PR_TITLE plus a CHANGED_FILES change-set).

Every run writes exactly one JSON result record, on success and failure
alike, and exits non-zero when the run failed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.resultPath, "result-path", "", "Where to write the run result record (overrides RESULT_PATH)")
	cmd.Flags().StringVar(&opts.changedFiles, "changed-files", "", "Change-set source: inline JSON or a file path (overrides CHANGED_FILES)")
	cmd.Flags().StringVar(&opts.whoisDir, "whois-dir", "", "Descriptor directory (overrides WHOIS_FILE_PATH)")
	cmd.Flags().StringVar(&opts.providerConfig, "provider-config", "", "DNS provider config file (overrides DNS_PROVIDER_PATH)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Log the reconciled request instead of calling the registrar")
	cmd.Flags().CountVarP(&opts.verbosity, "verbose", "v", "Increase log verbosity")

	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	log := newLogger(opts.verbosity)
	log.Info("starting whois-sync", "version", Version)

	cfg := config.FromEnv()
	if opts.resultPath != "" {
		cfg.ResultPath = opts.resultPath
	}
	if opts.changedFiles != "" {
		cfg.ChangedFiles = opts.changedFiles
	}
	if opts.whoisDir != "" {
		cfg.WhoisDir = opts.whoisDir
	}

	providerCfg, err := loadProviderConfig(opts)
	if err != nil {
		return fmt.Errorf("unable to load provider config: %w", err)
	}
	log.Info("loaded provider config", "provider", providerCfg.Provider)

	syncer, err := dns.New(providerCfg.Provider, log.WithName("dns-"+providerCfg.Provider), providerCfg.Settings)
	if err != nil {
		return fmt.Errorf("unable to create DNS provider: %w", err)
	}

	loader := whois.NewLoader(cfg.WorkspaceRoot, cfg.WhoisDir, log.WithName("whois"))
	results := sync.NewResultWriter(cfg.ResultPath, log.WithName("result"))
	orch := sync.New(cfg, providerCfg.StrictOperations, loader, syncer, results, log.WithName("sync"))

	return orch.Run(cmd.Context())
}

// loadProviderConfig resolves the provider configuration; --dry-run skips
// the config file entirely and targets the logging provider.
func loadProviderConfig(opts options) (*config.ProviderConfig, error) {
	if opts.dryRun {
		return &config.ProviderConfig{Provider: "dryrun"}, nil
	}
	if opts.providerConfig != "" {
		return config.LoadProviderConfigFromPath(opts.providerConfig)
	}
	return config.LoadProviderConfig()
}

func newLogger(verbosity int) logr.Logger {
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	zl, err := zc.Build()
	if err != nil {
		// Development config with a fixed level cannot fail to build.
		panic(err)
	}
	return zapr.NewLogger(zl)
}
