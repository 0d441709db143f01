package deployconfig

import (
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/openchat-labs/azdoctor/internal/envfile"
)

// Environment variable names the chat application reads.
const (
	VarEndpoint      = "AZURE_OPENAI_ENDPOINT"
	VarAPIKey        = "AZURE_OPENAI_KEY"
	VarAPIVersion    = "AZURE_OPENAI_API_VERSION"
	VarAPIVersionAlt = "OPENAI_API_VERSION"
	VarSubscription  = "SUBSCRIPTION_ID"
	VarResourceGroup = "RESOURCE_GROUP_NAME"
	VarAccountName   = "AOAI_ACCOUNT_NAME"
)

// DefaultAPIVersion is used when neither API version variable is set,
// matching the chat application's own fallback.
const DefaultAPIVersion = "2024-06-01"

// requiredVars lists the variables that must all be non-empty for the chat
// app to start, in report order. The API version is not required because it
// always has a fallback.
var requiredVars = []string{
	VarEndpoint,
	VarAPIKey,
	VarSubscription,
	VarResourceGroup,
	VarAccountName,
}

// Config holds the deployment-side configuration of the chat application.
// Validate tags express format expectations for values that are set; absence
// is handled separately by Missing so it stays a reportable state, not an
// error.
type Config struct {
	Endpoint       string `validate:"omitempty,url"`
	APIKey         string
	APIVersion     string `validate:"required"`
	SubscriptionID string `validate:"omitempty,uuid"`
	ResourceGroup  string
	AccountName    string
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// FromEnv extracts the deployment configuration from an environment view.
func FromEnv(env *envfile.View) Config {
	apiVersion := env.Get(VarAPIVersion)
	if apiVersion == "" {
		apiVersion = env.Get(VarAPIVersionAlt)
	}
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}

	return Config{
		Endpoint:       env.Get(VarEndpoint),
		APIKey:         env.Get(VarAPIKey),
		APIVersion:     apiVersion,
		SubscriptionID: env.Get(VarSubscription),
		ResourceGroup:  env.Get(VarResourceGroup),
		AccountName:    env.Get(VarAccountName),
	}
}

// Missing returns the required variable names that are unset or empty, in
// fixed report order.
func Missing(env *envfile.View) []string {
	var missing []string
	for _, name := range requiredVars {
		if !env.IsSet(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Complete reports whether every required deployment variable is non-empty.
func Complete(env *envfile.View) bool {
	return len(Missing(env)) == 0
}

// RequiredVars returns the required variable names in report order.
func RequiredVars() []string {
	out := make([]string, len(requiredVars))
	copy(out, requiredVars)
	return out
}

// Warnings runs format validation over the set fields and returns one
// human-readable warning per offending field. Missing variables never appear
// here; completeness is Missing's concern.
func (c Config) Warnings() []string {
	err := validatorInstance().Struct(c)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return []string{err.Error()}
	}

	var warnings []string
	for _, fieldErr := range invalid {
		switch fieldErr.Field() {
		case "Endpoint":
			warnings = append(warnings, VarEndpoint+" is set but does not look like a URL")
		case "SubscriptionID":
			warnings = append(warnings, VarSubscription+" is set but does not look like a subscription id (expected a UUID)")
		case "APIVersion":
			warnings = append(warnings, "no API version resolved; this should be unreachable given the default")
		default:
			warnings = append(warnings, fieldErr.Field()+" failed "+fieldErr.Tag()+" validation")
		}
	}
	return warnings
}
