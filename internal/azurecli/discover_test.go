package azurecli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	azdoctorerrors "github.com/openchat-labs/azdoctor/pkg/errors"
)

const accountListJSON = `[
  {"name": "chat-openai", "kind": "OpenAI", "location": "eastus", "resourceGroup": "chat-rg"},
  {"name": "vision", "kind": "ComputerVision", "location": "westus", "resourceGroup": "cv-rg"},
  {"name": "backup-openai", "kind": "OpenAI", "location": "westeurope", "resourceGroup": "chat-rg"}
]`

const deploymentListJSON = `[
  {"name": "gpt4", "properties": {"model": {"name": "gpt-4", "version": "0613"}}},
  {"name": "chat35", "properties": {"model": {"name": "gpt-35-turbo", "version": "0301"}}}
]`

func TestListOpenAIAccountsFiltersKind(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{output: []byte(accountListJSON)}
	client := NewClient(runner, 0)

	accounts, err := client.ListOpenAIAccounts(context.Background())
	require.NoError(t, err)
	require.Equal(t, []Account{
		{Name: "chat-openai", ResourceGroup: "chat-rg", Location: "eastus"},
		{Name: "backup-openai", ResourceGroup: "chat-rg", Location: "westeurope"},
	}, accounts)
}

func TestListDeploymentsExtractsModelNames(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{output: []byte(deploymentListJSON)}
	client := NewClient(runner, 0)

	deployments, err := client.ListDeployments(context.Background(), "chat-rg", "chat-openai")
	require.NoError(t, err)
	require.Equal(t, []Deployment{
		{Name: "gpt4", ModelName: "gpt-4"},
		{Name: "chat35", ModelName: "gpt-35-turbo"},
	}, deployments)

	require.Len(t, runner.args, 1)
	require.Contains(t, runner.args[0], "--name")
	require.Contains(t, runner.args[0], "chat-openai")
	require.Contains(t, runner.args[0], "--resource-group")
	require.Contains(t, runner.args[0], "chat-rg")
}

func TestListDeploymentsWrapsCLIFailure(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{err: errors.New("exit status 3: ResourceNotFound")}
	client := NewClient(runner, 0)

	_, err := client.ListDeployments(context.Background(), "chat-rg", "missing-account")
	require.Error(t, err)

	var discoveryErr *azdoctorerrors.DiscoveryError
	require.ErrorAs(t, err, &discoveryErr)
	require.Equal(t, "missing-account", discoveryErr.Resource)
}

func TestListOpenAIAccountsEmptyList(t *testing.T) {
	t.Parallel()

	client := NewClient(&fakeRunner{output: []byte("[]")}, 0)

	accounts, err := client.ListOpenAIAccounts(context.Background())
	require.NoError(t, err)
	require.Empty(t, accounts)
}
