package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/linup/cmd/linup/handlers"
)

// Status returns the command reading one field of an instance.
func Status() *cobra.Command {
	var configPath string
	var field string

	cmd := &cobra.Command{
		Use:   "status <instance-id>",
		Short: "Print the state of an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Status(cmd.Context(), configPath, args[0], field)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: linup.yaml)")
	cmd.Flags().StringVar(&field, "field", "", "Print a single field: status, ip, label, region, type or image")
	return cmd
}

// Reboot returns the command rebooting an instance.
func Reboot() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "reboot <instance-id>",
		Short: "Reboot an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Reboot(cmd.Context(), configPath, args[0])
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: linup.yaml)")
	return cmd
}
