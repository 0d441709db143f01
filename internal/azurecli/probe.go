package azurecli

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"github.com/openchat-labs/azdoctor/internal/authcheck"
	azdoctorerrors "github.com/openchat-labs/azdoctor/pkg/errors"
)

// DefaultTimeout bounds every CLI invocation. The shell scripts this tool
// replaces had no timeout at all; a hung `az` call would hang the check.
const DefaultTimeout = 10 * time.Second

// Client wraps the Azure CLI for login probing and resource discovery.
// It satisfies authcheck.LoginProbe.
type Client struct {
	runner  Runner
	timeout time.Duration
}

// NewClient constructs a Client. A zero timeout falls back to DefaultTimeout.
func NewClient(runner Runner, timeout time.Duration) *Client {
	if runner == nil {
		runner = NewRunner(DefaultBinary)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{runner: runner, timeout: timeout}
}

// azAccount mirrors the fields of `az account show -o json` this tool reads.
type azAccount struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	User struct {
		Name string `json:"name"`
	} `json:"user"`
}

// CurrentIdentity probes the active Azure CLI session. A nil identity with a
// nil error means the CLI responded but reported no session. Errors are
// *errors.ProbeError; Unavailable is set when the binary is missing or the
// call timed out, so callers can tell "not installed" from "not logged in".
func (c *Client) CurrentIdentity(ctx context.Context) (*authcheck.Identity, error) {
	const command = "az account show"

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	output, err := c.runner.Run(ctx, "account", "show", "-o", "json")
	if err != nil {
		if unavailable(ctx, err) {
			return nil, azdoctorerrors.NewProbeError(command, true, err)
		}
		return nil, azdoctorerrors.NewProbeError(command, false, err)
	}

	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return nil, nil
	}

	var account azAccount
	if err := json.Unmarshal([]byte(trimmed), &account); err != nil {
		return nil, azdoctorerrors.NewProbeError(command, false, err)
	}

	return &authcheck.Identity{
		AccountName:      account.User.Name,
		SubscriptionName: account.Name,
		SubscriptionID:   account.ID,
	}, nil
}

// unavailable reports whether err means the CLI could not be invoked at all.
func unavailable(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}
