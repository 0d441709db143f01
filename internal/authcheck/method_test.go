package authcheck

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMethodsOrderIsStable(t *testing.T) {
	t.Parallel()

	require.Equal(t, []Method{
		MethodManagedIdentity,
		MethodServicePrincipal,
		MethodClientCertificate,
		MethodInteractiveBrowser,
		MethodDeviceCode,
		MethodCLIFallback,
	}, Methods())
	require.Equal(t, Methods(), Methods())
}

func TestStatusUsable(t *testing.T) {
	t.Parallel()

	usable := []Status{StatusConfigured, StatusEnabled, StatusAvailable}
	for _, s := range usable {
		require.True(t, s.Usable(), "%s should be usable", s)
	}

	notUsable := []Status{StatusDisabled, StatusNotConfigured, StatusNotLoggedIn, StatusNotInstalled, StatusCertNotFound}
	for _, s := range notUsable {
		require.False(t, s.Usable(), "%s should not be usable", s)
	}
}

func TestStatusIcons(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status   Status
		icon     string
		fallback string
	}{
		{StatusConfigured, "✔", "[OK]"},
		{StatusEnabled, "✔", "[OK]"},
		{StatusAvailable, "✔", "[OK]"},
		{StatusCertNotFound, "✖", "[XX]"},
		{StatusNotLoggedIn, "⚠", "[!!]"},
		{StatusNotInstalled, "⚠", "[!!]"},
		{StatusDisabled, "○", "[--]"},
		{StatusNotConfigured, "○", "[--]"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.icon, tt.status.Icon())
		require.Equal(t, tt.fallback, tt.status.IconFallback())
	}
}

func TestMethodDisplayNames(t *testing.T) {
	t.Parallel()

	for _, method := range Methods() {
		require.NotEqual(t, string(method), method.DisplayName())
		require.NotEmpty(t, method.DisplayName())
	}
}
