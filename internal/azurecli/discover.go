package azurecli

import (
	"context"
	"encoding/json"

	azdoctorerrors "github.com/openchat-labs/azdoctor/pkg/errors"
)

// Account is an Azure OpenAI account visible to the active CLI session.
type Account struct {
	Name          string
	ResourceGroup string
	Location      string
}

// Deployment is one model deployment under an Azure OpenAI account.
type Deployment struct {
	Name      string
	ModelName string
}

type azAccountEntry struct {
	Name          string `json:"name"`
	Kind          string `json:"kind"`
	Location      string `json:"location"`
	ResourceGroup string `json:"resourceGroup"`
}

type azDeploymentEntry struct {
	Name       string `json:"name"`
	Properties struct {
		Model struct {
			Name string `json:"name"`
		} `json:"model"`
	} `json:"properties"`
}

// ListOpenAIAccounts returns the Cognitive Services accounts of kind OpenAI
// reachable with the current CLI session.
func (c *Client) ListOpenAIAccounts(ctx context.Context) ([]Account, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	output, err := c.runner.Run(ctx, "cognitiveservices", "account", "list", "-o", "json")
	if err != nil {
		return nil, azdoctorerrors.NewDiscoveryError("", err)
	}

	var entries []azAccountEntry
	if err := json.Unmarshal(output, &entries); err != nil {
		return nil, azdoctorerrors.NewDiscoveryError("", err)
	}

	var accounts []Account
	for _, entry := range entries {
		if entry.Kind != "OpenAI" {
			continue
		}
		accounts = append(accounts, Account{
			Name:          entry.Name,
			ResourceGroup: entry.ResourceGroup,
			Location:      entry.Location,
		})
	}
	return accounts, nil
}

// ListDeployments returns the model deployments of one Azure OpenAI account.
func (c *Client) ListDeployments(ctx context.Context, resourceGroup, accountName string) ([]Deployment, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	output, err := c.runner.Run(ctx,
		"cognitiveservices", "account", "deployment", "list",
		"--name", accountName,
		"--resource-group", resourceGroup,
		"-o", "json")
	if err != nil {
		return nil, azdoctorerrors.NewDiscoveryError(accountName, err)
	}

	var entries []azDeploymentEntry
	if err := json.Unmarshal(output, &entries); err != nil {
		return nil, azdoctorerrors.NewDiscoveryError(accountName, err)
	}

	deployments := make([]Deployment, 0, len(entries))
	for _, entry := range entries {
		deployments = append(deployments, Deployment{
			Name:      entry.Name,
			ModelName: entry.Properties.Model.Name,
		})
	}
	return deployments, nil
}
