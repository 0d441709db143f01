package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/openchat-labs/azdoctor/internal/authcheck"
	"github.com/openchat-labs/azdoctor/internal/deployconfig"
	"github.com/openchat-labs/azdoctor/internal/envfile"
	"github.com/openchat-labs/azdoctor/internal/settings"
)

type envOptions struct {
	envFile    string
	jsonOutput bool
}

// knownVars lists every variable the chat application reads, in report order.
var knownVars = []string{
	deployconfig.VarEndpoint,
	deployconfig.VarAPIKey,
	deployconfig.VarAPIVersion,
	deployconfig.VarAPIVersionAlt,
	deployconfig.VarSubscription,
	deployconfig.VarResourceGroup,
	deployconfig.VarAccountName,
	authcheck.VarUseManagedIdentity,
	authcheck.VarClientID,
	authcheck.VarClientSecret,
	authcheck.VarTenantID,
	authcheck.VarCertificatePath,
	authcheck.VarUseInteractive,
	authcheck.VarRedirectURI,
	authcheck.VarUseDeviceCode,
}

func newEnvCmd(root *rootFlags) *cobra.Command {
	opts := &envOptions{}

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Show the environment view the chat application would see",
		Long: `Env prints the variables the chat application reads, after merging the env
file over the process environment. Secret values are masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnv(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.envFile, "env-file", "", "Path to the env file (default from settings, .env)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runEnv(cmd *cobra.Command, root *rootFlags, opts *envOptions) error {
	cfg, err := settings.Load(root.settingsPath)
	if err != nil {
		return newCommandError("env", "loading settings", err, "Fix the settings file or pass --settings with a valid path.")
	}

	log, err := newLogger(root.verbose, cfg.NoColor)
	if err != nil {
		return newCommandError("env", "creating logger", err, "This is a bug; please report it.")
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

	if opts.jsonOutput {
		payload := make(map[string]string, len(knownVars))
		for _, name := range knownVars {
			if value, ok := env.Lookup(name); ok {
				payload[name] = displayValue(name, value)
			}
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, name := range knownVars {
		value, ok := env.Lookup(name)
		switch {
		case !ok:
			fmt.Fprintf(writer, "%s\t(not set)\n", name)
		case value == "":
			fmt.Fprintf(writer, "%s\t(empty)\n", name)
		default:
			fmt.Fprintf(writer, "%s\t%s\n", name, displayValue(name, value))
		}
	}
	return writer.Flush()
}

// displayValue masks values of variables that hold secrets.
func displayValue(name, value string) string {
	if isSensitive(name) {
		return envfile.MaskSecret(value)
	}
	return value
}

func isSensitive(name string) bool {
	upper := strings.ToUpper(name)
	for _, marker := range []string{"KEY", "SECRET", "PASSWORD", "TOKEN"} {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}
