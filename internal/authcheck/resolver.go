package authcheck

import (
	"context"
	"errors"
	"os"

	"github.com/openchat-labs/azdoctor/internal/deployconfig"
	"github.com/openchat-labs/azdoctor/internal/envfile"
	azdoctorerrors "github.com/openchat-labs/azdoctor/pkg/errors"
)

// Environment variables that select or configure authentication methods.
const (
	VarUseManagedIdentity = "USE_MANAGED_IDENTITY"
	VarClientID           = "AZURE_CLIENT_ID"
	VarClientSecret       = "AZURE_CLIENT_SECRET"
	VarTenantID           = "AZURE_TENANT_ID"
	VarCertificatePath    = "AZURE_CLIENT_CERTIFICATE_PATH"
	VarUseInteractive     = "USE_INTERACTIVE_AUTH"
	VarRedirectURI        = "AZURE_REDIRECT_URI"
	VarUseDeviceCode      = "USE_DEVICE_CODE"
)

// Detail is one ordered (label, value) pair shown under a method line.
type Detail struct {
	Label string
	Value string
}

// Evaluation records the outcome for a single authentication method.
// Blocking is true only when the status represents a configuration defect,
// as opposed to a method that simply was not chosen.
type Evaluation struct {
	Method   Method
	Status   Status
	Details  []Detail
	Blocking bool
}

// Result is one full resolution pass over an environment view. It is built
// fresh per invocation and never mutated afterwards.
type Result struct {
	Evaluations       []Evaluation
	ConfiguredCount   int
	DeploymentReady   bool
	MissingDeployment []string
	OverallReady      bool
}

// Evaluation returns the evaluation for the given method.
func (r Result) Evaluation(method Method) (Evaluation, bool) {
	for _, eval := range r.Evaluations {
		if eval.Method == method {
			return eval, true
		}
	}
	return Evaluation{}, false
}

// Identity describes the account behind an active Azure CLI session.
type Identity struct {
	AccountName      string
	SubscriptionName string
	SubscriptionID   string
}

// LoginProbe checks whether an Azure CLI session exists. Implementations
// return a nil identity when the CLI is reachable but nobody is logged in,
// and a *errors.ProbeError with Unavailable set when the CLI cannot be
// invoked at all.
type LoginProbe interface {
	CurrentIdentity(ctx context.Context) (*Identity, error)
}

// Resolver evaluates which authentication methods are usable from a set of
// environment inputs. It is stateless; a zero configuration via NewResolver
// checks certificate paths against the real filesystem.
type Resolver struct {
	stat func(path string) error
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithStat replaces the filesystem check used for certificate paths.
func WithStat(stat func(path string) error) Option {
	return func(r *Resolver) {
		r.stat = stat
	}
}

// NewResolver constructs a Resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		stat: func(path string) error {
			_, err := os.Stat(path)
			return err
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve evaluates every authentication method against env. Methods are
// independent: several can be configured at once and all of them are
// reported; no single winner is picked. The probe is invoked at most once,
// and only for the CLI fallback entry. Missing variables are a reportable
// state, never an error.
func (r *Resolver) Resolve(ctx context.Context, env *envfile.View, probe LoginProbe) Result {
	result := Result{
		Evaluations: make([]Evaluation, 0, len(Methods())),
	}

	for _, method := range Methods() {
		var eval Evaluation
		switch method {
		case MethodManagedIdentity:
			eval = r.evalManagedIdentity(env)
		case MethodServicePrincipal:
			eval = r.evalServicePrincipalSecret(env)
		case MethodClientCertificate:
			eval = r.evalServicePrincipalCertificate(env)
		case MethodInteractiveBrowser:
			eval = r.evalInteractiveBrowser(env)
		case MethodDeviceCode:
			eval = r.evalDeviceCode(env)
		case MethodCLIFallback:
			eval = r.evalCLIFallback(ctx, probe)
		}
		result.Evaluations = append(result.Evaluations, eval)
		if eval.Status.Usable() {
			result.ConfiguredCount++
		}
	}

	result.MissingDeployment = deployconfig.Missing(env)
	result.DeploymentReady = len(result.MissingDeployment) == 0
	result.OverallReady = result.ConfiguredCount > 0 && result.DeploymentReady

	return result
}

func (r *Resolver) evalManagedIdentity(env *envfile.View) Evaluation {
	if env.Get(VarUseManagedIdentity) != "true" {
		return Evaluation{Method: MethodManagedIdentity, Status: StatusDisabled}
	}

	eval := Evaluation{Method: MethodManagedIdentity, Status: StatusEnabled}
	if clientID := env.Get(VarClientID); clientID != "" {
		eval.Details = append(eval.Details, Detail{Label: "user-assigned identity", Value: clientID})
	} else {
		eval.Details = append(eval.Details, Detail{Label: "identity", Value: "system-assigned"})
	}
	return eval
}

func (r *Resolver) evalServicePrincipalSecret(env *envfile.View) Evaluation {
	clientID := env.Get(VarClientID)
	secret := env.Get(VarClientSecret)
	tenantID := env.Get(VarTenantID)

	if clientID == "" || secret == "" || tenantID == "" {
		return Evaluation{Method: MethodServicePrincipal, Status: StatusNotConfigured}
	}

	return Evaluation{
		Method: MethodServicePrincipal,
		Status: StatusConfigured,
		Details: []Detail{
			{Label: "client id", Value: clientID},
			{Label: "tenant id", Value: tenantID},
			{Label: "client secret", Value: envfile.MaskSecret(secret)},
		},
	}
}

func (r *Resolver) evalServicePrincipalCertificate(env *envfile.View) Evaluation {
	clientID := env.Get(VarClientID)
	tenantID := env.Get(VarTenantID)
	certPath := env.Get(VarCertificatePath)

	if clientID == "" || tenantID == "" || certPath == "" {
		return Evaluation{Method: MethodClientCertificate, Status: StatusNotConfigured}
	}

	details := []Detail{
		{Label: "client id", Value: clientID},
		{Label: "tenant id", Value: tenantID},
		{Label: "certificate", Value: certPath},
	}

	if err := r.stat(certPath); err != nil {
		return Evaluation{
			Method:   MethodClientCertificate,
			Status:   StatusCertNotFound,
			Details:  details,
			Blocking: true,
		}
	}

	return Evaluation{Method: MethodClientCertificate, Status: StatusConfigured, Details: details}
}

func (r *Resolver) evalInteractiveBrowser(env *envfile.View) Evaluation {
	enabled := env.Get(VarUseInteractive) == "true"
	clientID := env.Get(VarClientID)
	tenantID := env.Get(VarTenantID)

	if !enabled || clientID == "" || tenantID == "" {
		eval := Evaluation{Method: MethodInteractiveBrowser, Status: StatusDisabled}
		if enabled {
			eval.Details = append(eval.Details, Detail{Label: "note", Value: VarUseInteractive + " is true but " + VarClientID + " or " + VarTenantID + " is missing"})
		}
		return eval
	}

	eval := Evaluation{
		Method: MethodInteractiveBrowser,
		Status: StatusEnabled,
		Details: []Detail{
			{Label: "client id", Value: clientID},
			{Label: "tenant id", Value: tenantID},
		},
	}
	if redirect := env.Get(VarRedirectURI); redirect != "" {
		eval.Details = append(eval.Details, Detail{Label: "redirect uri", Value: redirect})
	}
	return eval
}

func (r *Resolver) evalDeviceCode(env *envfile.View) Evaluation {
	enabled := env.Get(VarUseDeviceCode) == "true"
	clientID := env.Get(VarClientID)
	tenantID := env.Get(VarTenantID)

	if !enabled || clientID == "" || tenantID == "" {
		eval := Evaluation{Method: MethodDeviceCode, Status: StatusDisabled}
		if enabled {
			eval.Details = append(eval.Details, Detail{Label: "note", Value: VarUseDeviceCode + " is true but " + VarClientID + " or " + VarTenantID + " is missing"})
		}
		return eval
	}

	return Evaluation{
		Method: MethodDeviceCode,
		Status: StatusEnabled,
		Details: []Detail{
			{Label: "client id", Value: clientID},
			{Label: "tenant id", Value: tenantID},
		},
	}
}

func (r *Resolver) evalCLIFallback(ctx context.Context, probe LoginProbe) Evaluation {
	if probe == nil {
		return Evaluation{Method: MethodCLIFallback, Status: StatusNotInstalled}
	}

	identity, err := probe.CurrentIdentity(ctx)
	if err != nil {
		var probeErr *azdoctorerrors.ProbeError
		if errors.As(err, &probeErr) && probeErr.Unavailable {
			return Evaluation{Method: MethodCLIFallback, Status: StatusNotInstalled}
		}
		return Evaluation{Method: MethodCLIFallback, Status: StatusNotLoggedIn}
	}

	if identity == nil {
		return Evaluation{Method: MethodCLIFallback, Status: StatusNotLoggedIn}
	}

	return Evaluation{
		Method: MethodCLIFallback,
		Status: StatusAvailable,
		Details: []Detail{
			{Label: "account", Value: identity.AccountName},
			{Label: "subscription", Value: identity.SubscriptionName},
			{Label: "subscription id", Value: identity.SubscriptionID},
		},
	}
}
