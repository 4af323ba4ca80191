// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-logr/logr/funcr"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/mkserver/internal/config"
	"github.com/imamik/mkserver/internal/platform/hcloud"
	"github.com/imamik/mkserver/internal/provisioning"
)

// Flag names shared with the commands package.
const (
	FlagName        = "name"
	FlagFlavour     = "flavour"
	FlagImage       = "image"
	FlagKeypair     = "keypair"
	FlagNetwork     = "network"
	FlagIPs         = "ips"
	FlagCount       = "count"
	FlagAttempts    = "attempts"
	FlagRetryDelay  = "retry-delay"
	FlagWaitTime    = "wait-time"
	FlagLabels      = "labels"
	FlagVerbose     = "verbose"
	FlagLogJSON     = "log-json"
	FlagMetricsFile = "metrics-file"
)

// CreateOptions carries the command-line inputs of a create run.
type CreateOptions struct {
	ConfigFile string
	EnvFile    string
	Version    string

	// Flags holds the flag values; only flags reported by Changed override
	// the config file.
	Flags   *config.CreateConfig
	Changed func(name string) bool
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newProvider creates the cloud provider client.
	newProvider = func(cfg *config.CreateConfig, version string) provisioning.Provider {
		return hcloud.NewRealClient(cfg.HCloudToken,
			hcloud.WithEndpoint(cfg.HCloudEndpoint),
			hcloud.WithApplicationVersion(version),
		)
	}

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.LoadFile

	// stdout receives the summary.
	stdout io.Writer = os.Stdout

	// stderr receives logs.
	stderr io.Writer = os.Stderr

	// writeMetrics writes the registry in the Prometheus text format.
	writeMetrics = prometheus.WriteToTextfile
)

// Create provisions the servers described by opts and prints a summary.
//
// This function:
//  1. Loads the env file, the optional config file and the flag overrides
//  2. Validates the settings before any API call
//  3. Resolves image, server type and network once
//  4. Creates each server in turn, retrying ones that fail to become ready
//  5. Writes metrics when requested and prints the summary
func Create(ctx context.Context, opts CreateOptions) error {
	if err := config.LoadEnvFile(opts.EnvFile); err != nil {
		return err
	}

	cfg, err := buildConfig(opts)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	observer := newObserver(cfg, stderr)
	provider := newProvider(cfg, opts.Version)

	reg := prometheus.NewRegistry()
	metrics := provisioning.NewMetrics(reg)

	runner := provisioning.NewRunner(
		provisioning.NewResolver(provider, observer),
		provisioning.NewProvisioner(provider, observer, provisioning.WithMetrics(metrics)),
		observer,
	)

	summary, runErr := runner.Run(ctx, batchRequest(cfg))

	if cfg.MetricsFile != "" {
		if err := writeMetrics(cfg.MetricsFile, reg); err != nil {
			observer.Printf("[Metrics] Failed to write %s: %v", cfg.MetricsFile, err)
		}
	}

	if runErr != nil {
		return runErr
	}

	fmt.Fprint(stdout, renderSummary(cfg.Name, summary, isTerminal()))
	return nil
}

// buildConfig layers defaults, the config file and changed flags.
func buildConfig(opts CreateOptions) (*config.CreateConfig, error) {
	cfg := config.DefaultCreateConfig()
	if opts.ConfigFile != "" {
		loaded, err := loadConfigFile(opts.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if opts.Flags != nil {
		applyFlags(cfg, opts.Flags, opts.Changed)
	}
	return cfg, nil
}

// applyFlags copies every changed flag from flags into cfg.
// A nil changed copies every flag.
func applyFlags(cfg, flags *config.CreateConfig, changed func(string) bool) {
	set := func(name string) bool {
		return changed == nil || changed(name)
	}

	if set(FlagName) {
		cfg.Name = flags.Name
	}
	if set(FlagFlavour) {
		cfg.Flavour = flags.Flavour
	}
	if set(FlagImage) {
		cfg.Image = flags.Image
	}
	if set(FlagKeypair) {
		cfg.Keypair = flags.Keypair
	}
	if set(FlagNetwork) {
		cfg.Network = flags.Network
	}
	if set(FlagIPs) {
		cfg.FloatingIPs = flags.FloatingIPs
	}
	if set(FlagCount) {
		cfg.Count = flags.Count
	}
	if set(FlagAttempts) {
		cfg.Attempts = flags.Attempts
	}
	if set(FlagRetryDelay) {
		cfg.RetryDelay = flags.RetryDelay
	}
	if set(FlagWaitTime) {
		cfg.WaitTime = flags.WaitTime
	}
	if set(FlagLabels) {
		cfg.Labels = flags.Labels
	}
	if set(FlagVerbose) {
		cfg.Verbose = flags.Verbose
	}
	if set(FlagLogJSON) {
		cfg.LogJSON = flags.LogJSON
	}
	if set(FlagMetricsFile) {
		cfg.MetricsFile = flags.MetricsFile
	}
}

// batchRequest maps validated settings onto a batch request.
func batchRequest(cfg *config.CreateConfig) provisioning.BatchRequest {
	return provisioning.BatchRequest{
		BaseName: cfg.Name,
		Count:    cfg.Count,
		Resources: provisioning.ResourceNames{
			Image:   cfg.Image,
			Flavor:  cfg.Flavour,
			Network: cfg.Network,
			Keypair: cfg.Keypair,
		},
		Addresses: cfg.FloatingIPs,
		Policy: provisioning.RetryPolicy{
			MaxAttempts: cfg.Attempts,
			RetryDelay:  cfg.RetryDelayDuration(),
			WaitTimeout: cfg.WaitTimeDuration(),
		},
		Labels: cfg.Labels,
	}
}

// newObserver picks the console or JSON observer.
func newObserver(cfg *config.CreateConfig, w io.Writer) provisioning.Observer {
	if cfg.LogJSON {
		verbosity := 0
		if cfg.Verbose {
			verbosity = 1
		}
		logger := funcr.NewJSON(func(obj string) {
			fmt.Fprintln(w, obj)
		}, funcr.Options{Verbosity: verbosity, LogTimestamp: true})
		return provisioning.NewLogrObserver(logger.WithName("mkserver"))
	}
	return provisioning.NewConsoleObserverWithLogger(log.New(w, "", log.LstdFlags), cfg.Verbose)
}
