// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing
// and flag binding. Command execution is delegated to handler functions in the
// handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the mkserver CLI.
//
// Run without a subcommand, it behaves like "mkserver create".
func Root() *cobra.Command {
	cmd := newCreateCommand("mkserver")
	cmd.Short = "Create Hetzner Cloud servers, retrying ones that fail to start"
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cmd.AddCommand(Create())
	cmd.AddCommand(Version())

	return cmd
}
