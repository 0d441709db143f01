package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose      bool
	settingsPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "azdoctor",
		Short: "azdoctor diagnoses the Azure configuration of the chat application",
		Long: `azdoctor inspects the local .env file and process environment, reports which
Azure authentication methods are configured, checks the deployment variables
the chat application requires, and can discover Azure OpenAI accounts and
model deployments through the Azure CLI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flags.settingsPath, "settings", "", "Path to the azdoctor settings file (default .azdoctor.yaml)")

	cmd.AddCommand(newCheckCmd(flags))
	cmd.AddCommand(newDiscoverCmd(flags))
	cmd.AddCommand(newEnvCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
