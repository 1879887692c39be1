// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated
// to handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the linup CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "linup",
		Short:         "Provision and bootstrap Linode instances",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Core command
	cmd.AddCommand(Deploy())

	// Provider catalogue and instance operations
	cmd.AddCommand(Regions())
	cmd.AddCommand(Types())
	cmd.AddCommand(Images())
	cmd.AddCommand(Status())
	cmd.AddCommand(Reboot())

	// Utility commands
	cmd.AddCommand(Keys())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
