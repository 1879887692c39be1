package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/linup/cmd/linup/handlers"
)

// Keys returns the key management command group.
func Keys() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage the SSH key pair used for instance access",
	}
	cmd.AddCommand(keysInit())
	return cmd
}

func keysInit() *cobra.Command {
	var configPath string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate the key pair installed on new instances",
		Long: `Generate the ed25519 key pair whose public half is installed on every
instance this tool creates. The key is written to the configured
authorized_key path (default: ~/.ssh/linup_ed25519.pub) and is left
untouched if it already exists.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.KeysInit(cmd.Context(), configPath, force)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: linup.yaml)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing key pair")
	return cmd
}
