package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/imamik/mkserver/cmd/mkserver/handlers"
	"github.com/imamik/mkserver/internal/config"
)

// Create returns the command for creating servers.
//
// Required (by flag or config file):
//
//	--name, --flavour, --image, --keypair
//
// Environment variables:
//
//	HCLOUD_TOKEN: Hetzner Cloud API token (required)
//	HCLOUD_ENDPOINT: API endpoint override
func Create() *cobra.Command {
	return newCreateCommand("create")
}

func newCreateCommand(use string) *cobra.Command {
	flags := config.DefaultCreateConfig()
	opts := handlers.CreateOptions{Flags: flags}

	cmd := &cobra.Command{
		Use:   use,
		Short: "Create servers",
		Long: `Create one server, or a numbered group of servers, on Hetzner Cloud.

A server that does not become ready within --wait-time seconds is deleted and
created again after --retry-delay seconds, up to --attempts times. Servers that
already exist are left alone. With --count greater than 1 the servers are named
NAME-1 .. NAME-COUNT and created one after another; the run stops at the first
server that cannot be created.

Examples:
  # One server with two floating IPs
  mkserver create -n gateway -f cx22 -i ubuntu-24.04 -p deploy -s 203.0.113.10 203.0.113.11

  # Three workers on a private network
  mkserver create -n worker -c 3 -f cax11 -i ubuntu-24.04 -p deploy -k backend

  # Defaults from a file, count from the command line
  mkserver create --config workers.yaml -c 5`,
		Args: trailingAddresses,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.FloatingIPs = append(flags.FloatingIPs, args...)
			opts.Changed = cmd.Flags().Changed
			opts.Version = version
			return handlers.Create(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.Name, handlers.FlagName, "n", "", "Server name, or base name when --count > 1")
	f.StringVarP(&flags.Flavour, handlers.FlagFlavour, "f", "", "Server type (e.g. cx22)")
	f.StringVarP(&flags.Image, handlers.FlagImage, "i", "", "Image name or ID")
	f.StringVarP(&flags.Keypair, handlers.FlagKeypair, "p", "", "SSH key name")
	f.StringVarP(&flags.Network, handlers.FlagNetwork, "k", "", "Private network to attach")
	f.StringSliceVarP(&flags.FloatingIPs, handlers.FlagIPs, "s", nil, "Floating IPs to assign (only with --count 1)")
	f.IntVarP(&flags.Count, handlers.FlagCount, "c", flags.Count, "Number of servers")
	f.IntVarP(&flags.Attempts, handlers.FlagAttempts, "a", flags.Attempts, "Creation attempts per server")
	f.IntVarP(&flags.RetryDelay, handlers.FlagRetryDelay, "d", flags.RetryDelay, "Seconds between attempts (1-120)")
	f.IntVarP(&flags.WaitTime, handlers.FlagWaitTime, "w", flags.WaitTime, "Seconds to wait for a server to become ready")
	f.StringToStringVar(&flags.Labels, handlers.FlagLabels, nil, "Extra labels for created servers (key=value)")
	f.BoolVarP(&flags.Verbose, handlers.FlagVerbose, "v", false, "Log every step")
	f.BoolVar(&flags.LogJSON, handlers.FlagLogJSON, false, "Write logs as JSON")
	f.StringVar(&flags.MetricsFile, handlers.FlagMetricsFile, "", "Write Prometheus metrics to this file")
	f.StringVar(&opts.ConfigFile, "config", "", "YAML file with default settings")
	f.StringVar(&opts.EnvFile, "env-file", "", "Dotenv file to load (default: .env if present)")

	f.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "floating-ips" {
			name = handlers.FlagIPs
		}
		return pflag.NormalizedName(name)
	})

	return cmd
}

// trailingAddresses accepts positional arguments only as further floating
// IPs after --ips, so "-s IP1 IP2" works as a space-separated list.
func trailingAddresses(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && !cmd.Flags().Changed(handlers.FlagIPs) {
		return fmt.Errorf("unexpected arguments %q for %q", args, cmd.CommandPath())
	}
	return nil
}
