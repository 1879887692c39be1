package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imamik/linup/cmd/linup/handlers"
)

// Deploy returns the command that provisions a new instance and hands off
// to the remote setup scripts.
//
// Required values missing from the flags are prompted for interactively
// when stdin is a terminal; region and type menus are sourced live from
// the provider. In non-interactive runs every missing value is reported
// and usage is shown.
//
// Environment variables:
//
//	LINODE_TOKEN: Linode API token (required unless set in linup.yaml)
func Deploy() *cobra.Command {
	var opts handlers.DeployOptions

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Provision a new instance and launch remote setup",
		Long: `Provision a new Linode instance and hand off to the setup scripts.

The run is fully sequential:
  1. Validate configuration
  2. Open the per-run password log
  3. Create the instance with a generated root password
  4. Wait for running status, then for SSH reachability
  5. Transfer setup scripts and a generated configuration
  6. Launch the remote setup in the background

The remote setup is not awaited; its outcome is reported to the
configured notification address. Generated passwords are appended to the
password log, whose path is printed at the end of the run.

Examples:
  # Fully specified, no prompts
  linup deploy --label demo --region us-east --type g6-nanode-1 \
    --server-name host1 --customer-user customer1 --domain example.com --yes

  # Prompt interactively for anything missing
  linup deploy`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := handlers.Deploy(cmd.Context(), opts)

			var missing *handlers.MissingInputError
			if errors.As(err, &missing) {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				_ = cmd.Usage()
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: linup.yaml)")
	cmd.Flags().StringVar(&opts.Label, "label", "", "Instance label")
	cmd.Flags().StringVar(&opts.Region, "region", "", "Provider region (see 'linup regions')")
	cmd.Flags().StringVar(&opts.Type, "type", "", "Instance type (see 'linup types')")
	cmd.Flags().StringVar(&opts.Image, "image", "", "Image to deploy (default: default_image from config)")
	cmd.Flags().StringVar(&opts.ServerName, "server-name", "", "Hostname configured on the instance")
	cmd.Flags().StringVar(&opts.CustomerUser, "customer-user", "", "Customer account created by the setup scripts")
	cmd.Flags().StringVar(&opts.Domain, "domain", "", "Domain served by the instance")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Skip the interactive confirmation")

	return cmd
}
