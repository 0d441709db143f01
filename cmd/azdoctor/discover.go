package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/openchat-labs/azdoctor/internal/azurecli"
	"github.com/openchat-labs/azdoctor/internal/deployconfig"
	"github.com/openchat-labs/azdoctor/internal/settings"
)

type discoverOptions struct {
	envFile       string
	resourceGroup string
	account       string
	jsonOutput    bool
}

// discoveryClient is the slice of azurecli.Client the discover command needs.
type discoveryClient interface {
	ListOpenAIAccounts(ctx context.Context) ([]azurecli.Account, error)
	ListDeployments(ctx context.Context, resourceGroup, accountName string) ([]azurecli.Deployment, error)
}

// newDiscoveryClient is swapped out in tests.
var newDiscoveryClient = func(binary string, timeout time.Duration) discoveryClient {
	return azurecli.NewClient(azurecli.NewRunner(binary), timeout)
}

func newDiscoverCmd(root *rootFlags) *cobra.Command {
	opts := &discoverOptions{}

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Discover Azure OpenAI accounts and model deployments",
		Long: `Discover lists the Azure OpenAI accounts visible to the active Azure CLI
session. When the account and resource group are known (from flags or the env
file), it also lists that account's model deployments.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiscover(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.envFile, "env-file", "", "Path to the env file (default from settings, .env)")
	cmd.Flags().StringVar(&opts.resourceGroup, "resource-group", "", "Resource group of the Azure OpenAI account")
	cmd.Flags().StringVar(&opts.account, "account", "", "Azure OpenAI account name")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runDiscover(cmd *cobra.Command, root *rootFlags, opts *discoverOptions) error {
	cfg, err := settings.Load(root.settingsPath)
	if err != nil {
		return newCommandError("discover", "loading settings", err, "Fix the settings file or pass --settings with a valid path.")
	}

	log, err := newLogger(root.verbose, cfg.NoColor)
	if err != nil {
		return newCommandError("discover", "creating logger", err, "This is a bug; please report it.")
	}

	envFile := cfg.EnvFile
	explicitEnvFile := cmd.Flags().Changed("env-file")
	if explicitEnvFile {
		envFile = opts.envFile
	}

	env, _, err := loadEnvironment(envFile, explicitEnvFile, log)
	if err != nil {
		return err
	}

	// Flags win over the env file, mirroring how the chat app is configured.
	resourceGroup := opts.resourceGroup
	if resourceGroup == "" {
		resourceGroup = env.Get(deployconfig.VarResourceGroup)
	}
	account := opts.account
	if account == "" {
		account = env.Get(deployconfig.VarAccountName)
	}

	client := newDiscoveryClient(cfg.AzBinary, cfg.ProbeTimeout())
	ctx := cmd.Context()

	if resourceGroup != "" && account != "" {
		deployments, err := client.ListDeployments(ctx, resourceGroup, account)
		if err != nil {
			return newCommandError("discover", fmt.Sprintf("listing deployments of %q", account), err,
				"Verify the account name, resource group and subscription, and that you are logged in with 'az login'.")
		}
		return renderDeployments(cmd, account, deployments, opts.jsonOutput)
	}

	accounts, err := client.ListOpenAIAccounts(ctx)
	if err != nil {
		return newCommandError("discover", "listing Azure OpenAI accounts", err,
			"Verify that the Azure CLI is installed and logged in with 'az login'.")
	}
	return renderAccounts(cmd, accounts, opts.jsonOutput)
}

func renderAccounts(cmd *cobra.Command, accounts []azurecli.Account, jsonOutput bool) error {
	out := cmd.OutOrStdout()

	if jsonOutput {
		type jsonAccount struct {
			Name          string `json:"name"`
			ResourceGroup string `json:"resource_group"`
			Location      string `json:"location"`
		}
		payload := make([]jsonAccount, 0, len(accounts))
		for _, account := range accounts {
			payload = append(payload, jsonAccount(account))
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	if len(accounts) == 0 {
		fmt.Fprintln(out, "No Azure OpenAI accounts visible to the current session.")
		return nil
	}

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "NAME\tRESOURCE GROUP\tLOCATION")
	for _, account := range accounts {
		fmt.Fprintf(writer, "%s\t%s\t%s\n", account.Name, account.ResourceGroup, account.Location)
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nPass --account and --resource-group (or set AOAI_ACCOUNT_NAME and RESOURCE_GROUP_NAME) to list deployments.")
	return nil
}

func renderDeployments(cmd *cobra.Command, account string, deployments []azurecli.Deployment, jsonOutput bool) error {
	out := cmd.OutOrStdout()

	if jsonOutput {
		type jsonDeployment struct {
			Name      string `json:"name"`
			ModelName string `json:"model_name"`
		}
		payload := make([]jsonDeployment, 0, len(deployments))
		for _, deployment := range deployments {
			payload = append(payload, jsonDeployment(deployment))
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	if len(deployments) == 0 {
		fmt.Fprintf(out, "No model deployments found under %s. Create one in the Azure portal before starting the chat app.\n", account)
		return nil
	}

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "DEPLOYMENT\tMODEL")
	for _, deployment := range deployments {
		fmt.Fprintf(writer, "%s\t%s\n", deployment.Name, deployment.ModelName)
	}
	return writer.Flush()
}
