package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/openchat-labs/azdoctor/internal/authcheck"
	"github.com/openchat-labs/azdoctor/internal/azurecli"
	"github.com/openchat-labs/azdoctor/internal/credbuild"
	"github.com/openchat-labs/azdoctor/internal/deployconfig"
	"github.com/openchat-labs/azdoctor/internal/envfile"
	"github.com/openchat-labs/azdoctor/internal/logger"
	"github.com/openchat-labs/azdoctor/internal/report"
	"github.com/openchat-labs/azdoctor/internal/settings"
)

type checkOptions struct {
	envFile    string
	jsonOutput bool
	timeout    time.Duration
	buildCreds bool
	noColor    bool
}

// newProbe is swapped out in tests so no real az process is spawned.
var newProbe = func(binary string, timeout time.Duration) authcheck.LoginProbe {
	return azurecli.NewClient(azurecli.NewRunner(binary), timeout)
}

var osExit = os.Exit

func newCheckCmd(root *rootFlags) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check authentication and deployment configuration",
		Long: `Check reads the env file merged over the process environment, evaluates every
authentication method the chat application understands, verifies the required
deployment variables, and prints a report with recommendations. Exits 0 when
the application has everything it needs, 1 otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.envFile, "env-file", "", "Path to the env file (default from settings, .env)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the report in JSON format")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Azure CLI probe timeout; accepts Go duration strings (e.g. 30s)")
	cmd.Flags().BoolVar(&opts.buildCreds, "build", false, "Also construct the SDK credential for each configured method")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	return cmd
}

func runCheck(cmd *cobra.Command, root *rootFlags, opts *checkOptions) error {
	cfg, err := settings.Load(root.settingsPath)
	if err != nil {
		return newCommandError("check", "loading settings", err, "Fix the settings file or pass --settings with a valid path.")
	}

	envFile := cfg.EnvFile
	explicitEnvFile := cmd.Flags().Changed("env-file")
	if explicitEnvFile {
		envFile = opts.envFile
	}

	timeout := cfg.ProbeTimeout()
	if cmd.Flags().Changed("timeout") {
		timeout = opts.timeout
	}

	noColor := opts.noColor || cfg.NoColor

	log, err := newLogger(root.verbose, noColor)
	if err != nil {
		return newCommandError("check", "creating logger", err, "This is a bug; please report it.")
	}

	env, parseWarnings, err := loadEnvironment(envFile, explicitEnvFile, log)
	if err != nil {
		return err
	}

	log.WithFields(map[string]any{
		"env_file": envFile,
		"timeout":  timeout.String(),
	}).Debug("starting auth check")

	probe := newProbe(cfg.AzBinary, timeout)
	resolver := authcheck.NewResolver()
	result := resolver.Resolve(cmd.Context(), env, probe)

	configWarnings := deployconfig.FromEnv(env).Warnings()
	if opts.buildCreds {
		configWarnings = append(configWarnings, buildCredentials(result, env, log)...)
	}

	rep := report.Report{
		EnvFile:         envFile,
		Result:          result,
		Recommendations: authcheck.Recommend(result),
		ConfigWarnings:  configWarnings,
		ParseWarnings:   warningStrings(parseWarnings),
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		if err := rep.RenderJSON(out); err != nil {
			return newCommandError("check", "encoding JSON report", err, "This is a bug; please report it.")
		}
	} else {
		rep.Render(out, report.Options{
			Unicode: supportsUnicode(out),
			Color:   !noColor && supportsUnicode(out),
			Verbose: root.verbose,
		})
	}

	log.WithFields(map[string]any{
		"configured_methods": result.ConfiguredCount,
		"deployment_ready":   result.DeploymentReady,
		"overall_ready":      result.OverallReady,
	}).Info("auth check complete")

	if !result.OverallReady {
		osExit(1)
	}
	return nil
}

// buildCredentials constructs the SDK credential object for every usable
// method. Construction failures mean the inputs cannot form a credential and
// are surfaced as warnings.
func buildCredentials(result authcheck.Result, env *envfile.View, log *logger.Logger) []string {
	var warnings []string
	for _, eval := range result.Evaluations {
		if !eval.Status.Usable() {
			continue
		}
		if _, err := credbuild.Build(eval.Method, env); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: credential construction failed: %v", eval.Method.DisplayName(), err))
			continue
		}
		log.WithFields(map[string]any{"method": eval.Method.String()}).Debug("credential constructed")
	}
	return warnings
}

func newLogger(verbose, noColor bool) (*logger.Logger, error) {
	level := "info"
	if verbose {
		level = "debug"
	}
	return logger.New(logger.Options{Level: level, Pretty: true, NoColor: noColor})
}

// loadEnvironment merges the env file over the process environment. A missing
// file is fatal only when the user named it explicitly; the default path is
// allowed to be absent since the resolver can run against the process
// environment alone.
func loadEnvironment(path string, explicit bool, log *logger.Logger) (*envfile.View, []envfile.Warning, error) {
	env, warnings, err := envfile.Load(path, envfile.Process())
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			log.WithFields(map[string]any{"env_file": path}).Warn("env file not found, using process environment only")
			return envfile.Process(), nil, nil
		}
		return nil, nil, newCommandError("check", fmt.Sprintf("reading env file %q", path), err, "Check that the file exists and you have permission to read it.")
	}

	for _, warning := range warnings {
		log.WithFields(map[string]any{"env_file": path}).Warn(warning.String())
	}
	return env, warnings, nil
}

func warningStrings(warnings []envfile.Warning) []string {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]string, 0, len(warnings))
	for _, warning := range warnings {
		out = append(out, warning.String())
	}
	return out
}

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
