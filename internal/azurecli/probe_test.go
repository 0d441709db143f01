package azurecli

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	azdoctorerrors "github.com/openchat-labs/azdoctor/pkg/errors"
)

type fakeRunner struct {
	output []byte
	err    error
	args   [][]string
}

func (r *fakeRunner) Run(_ context.Context, args ...string) ([]byte, error) {
	r.args = append(r.args, args)
	return r.output, r.err
}

type blockingRunner struct{}

func (blockingRunner) Run(ctx context.Context, _ ...string) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

const accountShowJSON = `{
  "environmentName": "AzureCloud",
  "id": "f47ac10b-58cc-4372-a567-0e02b2c3d479",
  "isDefault": true,
  "name": "Chat Dev",
  "state": "Enabled",
  "tenantId": "c",
  "user": {"name": "user@example.com", "type": "user"}
}`

func TestCurrentIdentityParsesAccount(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{output: []byte(accountShowJSON)}
	client := NewClient(runner, 0)

	identity, err := client.CurrentIdentity(context.Background())
	require.NoError(t, err)
	require.NotNil(t, identity)
	require.Equal(t, "user@example.com", identity.AccountName)
	require.Equal(t, "Chat Dev", identity.SubscriptionName)
	require.Equal(t, "f47ac10b-58cc-4372-a567-0e02b2c3d479", identity.SubscriptionID)

	require.Len(t, runner.args, 1)
	require.Equal(t, []string{"account", "show", "-o", "json"}, runner.args[0])
}

func TestCurrentIdentityEmptyOutputMeansNoSession(t *testing.T) {
	t.Parallel()

	client := NewClient(&fakeRunner{output: []byte("  \n")}, 0)

	identity, err := client.CurrentIdentity(context.Background())
	require.NoError(t, err)
	require.Nil(t, identity)
}

func TestCurrentIdentityBinaryMissingIsUnavailable(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{err: fmt.Errorf("az account show: %w", exec.ErrNotFound)}
	client := NewClient(runner, 0)

	_, err := client.CurrentIdentity(context.Background())
	require.Error(t, err)

	var probeErr *azdoctorerrors.ProbeError
	require.ErrorAs(t, err, &probeErr)
	require.True(t, probeErr.Unavailable)
}

func TestCurrentIdentityExitErrorMeansNotLoggedIn(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{err: errors.New("az account show: exit status 1: Please run 'az login'")}
	client := NewClient(runner, 0)

	_, err := client.CurrentIdentity(context.Background())
	require.Error(t, err)

	var probeErr *azdoctorerrors.ProbeError
	require.ErrorAs(t, err, &probeErr)
	require.False(t, probeErr.Unavailable)
}

func TestCurrentIdentityTimeoutIsUnavailable(t *testing.T) {
	t.Parallel()

	client := NewClient(blockingRunner{}, 20*time.Millisecond)

	_, err := client.CurrentIdentity(context.Background())
	require.Error(t, err)

	var probeErr *azdoctorerrors.ProbeError
	require.ErrorAs(t, err, &probeErr)
	require.True(t, probeErr.Unavailable)
}

func TestCurrentIdentityGarbageOutput(t *testing.T) {
	t.Parallel()

	client := NewClient(&fakeRunner{output: []byte("WARNING: not json")}, 0)

	_, err := client.CurrentIdentity(context.Background())
	require.Error(t, err)

	var probeErr *azdoctorerrors.ProbeError
	require.ErrorAs(t, err, &probeErr)
	require.False(t, probeErr.Unavailable)
}
