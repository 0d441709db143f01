package credbuild

import (
	"fmt"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/openchat-labs/azdoctor/internal/authcheck"
	"github.com/openchat-labs/azdoctor/internal/envfile"
)

// Build constructs the azidentity credential object for a method from the
// environment view. Construction is a local validation of the inputs; no
// token is requested and nothing touches the network. A constructor error
// means the inputs cannot form a usable credential even though the variables
// are present.
func Build(method authcheck.Method, env *envfile.View) (azcore.TokenCredential, error) {
	switch method {
	case authcheck.MethodManagedIdentity:
		return buildManagedIdentity(env)
	case authcheck.MethodServicePrincipal:
		return buildClientSecret(env)
	case authcheck.MethodClientCertificate:
		return buildClientCertificate(env)
	case authcheck.MethodInteractiveBrowser:
		return buildInteractiveBrowser(env)
	case authcheck.MethodDeviceCode:
		return buildDeviceCode(env)
	case authcheck.MethodCLIFallback:
		return azidentity.NewAzureCLICredential(nil)
	default:
		return nil, fmt.Errorf("unknown authentication method %q", method)
	}
}

func buildManagedIdentity(env *envfile.View) (azcore.TokenCredential, error) {
	var options *azidentity.ManagedIdentityCredentialOptions
	if clientID := env.Get(authcheck.VarClientID); clientID != "" {
		options = &azidentity.ManagedIdentityCredentialOptions{
			ID: azidentity.ClientID(clientID),
		}
	}
	return azidentity.NewManagedIdentityCredential(options)
}

func buildClientSecret(env *envfile.View) (azcore.TokenCredential, error) {
	return azidentity.NewClientSecretCredential(
		env.Get(authcheck.VarTenantID),
		env.Get(authcheck.VarClientID),
		env.Get(authcheck.VarClientSecret),
		nil,
	)
}

func buildClientCertificate(env *envfile.View) (azcore.TokenCredential, error) {
	certPath := env.Get(authcheck.VarCertificatePath)
	data, err := os.ReadFile(certPath)
	if err != nil {
		return nil, fmt.Errorf("reading certificate %s: %w", certPath, err)
	}

	certs, key, err := azidentity.ParseCertificates(data, nil)
	if err != nil {
		return nil, fmt.Errorf("parsing certificate %s: %w", certPath, err)
	}

	return azidentity.NewClientCertificateCredential(
		env.Get(authcheck.VarTenantID),
		env.Get(authcheck.VarClientID),
		certs,
		key,
		nil,
	)
}

func buildInteractiveBrowser(env *envfile.View) (azcore.TokenCredential, error) {
	return azidentity.NewInteractiveBrowserCredential(&azidentity.InteractiveBrowserCredentialOptions{
		TenantID:    env.Get(authcheck.VarTenantID),
		ClientID:    env.Get(authcheck.VarClientID),
		RedirectURL: env.Get(authcheck.VarRedirectURI),
	})
}

func buildDeviceCode(env *envfile.View) (azcore.TokenCredential, error) {
	return azidentity.NewDeviceCodeCredential(&azidentity.DeviceCodeCredentialOptions{
		TenantID: env.Get(authcheck.VarTenantID),
		ClientID: env.Get(authcheck.VarClientID),
	})
}
