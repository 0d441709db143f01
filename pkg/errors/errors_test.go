package errors

import (
	stdErrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("missing '=' separator")
	err := NewParseError(".env", 7, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, ".env", parseErr.Path)
	require.Equal(t, 7, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), ".env:7")
}

func TestParseErrorExposesMissingFile(t *testing.T) {
	t.Parallel()

	err := NewParseError(".env", 0, fs.ErrNotExist)

	require.True(t, stdErrors.Is(err, fs.ErrNotExist))
	require.Contains(t, err.Error(), ".env")
}

func TestValidationErrorIncludesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("AZURE_OPENAI_ENDPOINT", "must be a valid URL", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "AZURE_OPENAI_ENDPOINT", validationErr.Field)
	require.Contains(t, validationErr.Message, "valid URL")
}

func TestProbeErrorDistinguishesUnavailable(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("executable file not found in $PATH")
	err := NewProbeError("az account show", true, underlying)

	var probeErr *ProbeError
	require.ErrorAs(t, err, &probeErr)
	require.True(t, probeErr.Unavailable)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "unavailable")
}

func TestProbeErrorLoggedOut(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("please run 'az login'")
	err := NewProbeError("az account show", false, underlying)

	var probeErr *ProbeError
	require.ErrorAs(t, err, &probeErr)
	require.False(t, probeErr.Unavailable)
	require.NotContains(t, err.Error(), "unavailable")
}

func TestDiscoveryErrorIncludesResource(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("ResourceNotFound")
	err := NewDiscoveryError("my-openai-account", underlying)

	var discoveryErr *DiscoveryError
	require.ErrorAs(t, err, &discoveryErr)
	require.Equal(t, "my-openai-account", discoveryErr.Resource)
	require.True(t, stdErrors.Is(err, underlying))
}
