package azurecli

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes the Azure CLI and returns its stdout. It exists so tests
// can substitute canned output for real process invocations.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// DefaultBinary is the Azure CLI executable name resolved via PATH.
const DefaultBinary = "az"

type execRunner struct {
	binary string
}

// NewRunner returns a Runner that invokes the given binary. An empty binary
// falls back to DefaultBinary.
func NewRunner(binary string) Runner {
	if binary == "" {
		binary = DefaultBinary
	}
	return &execRunner{binary: binary}
}

func (r *execRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.binary, args...)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s %s: %w: %s", r.binary, strings.Join(args, " "), err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s %s: %w", r.binary, strings.Join(args, " "), err)
	}

	return output, nil
}
