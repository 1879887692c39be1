package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/linup/cmd/linup/handlers"
)

// Regions returns the command listing provider regions.
func Regions() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "regions",
		Short: "List available regions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Regions(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: linup.yaml)")
	return cmd
}

// Types returns the command listing instance types.
func Types() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List available instance types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Types(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: linup.yaml)")
	return cmd
}

// Images returns the command listing deployable images.
func Images() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "images",
		Short: "List deployable images",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Images(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: linup.yaml)")
	return cmd
}
