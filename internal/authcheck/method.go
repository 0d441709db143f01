package authcheck

import (
	"github.com/charmbracelet/lipgloss"
)

// Method identifies one of the authentication strategies the chat application
// understands.
type Method string

const (
	MethodManagedIdentity    Method = "managed_identity"
	MethodServicePrincipal   Method = "service_principal_secret"
	MethodClientCertificate  Method = "service_principal_certificate"
	MethodInteractiveBrowser Method = "interactive_browser"
	MethodDeviceCode         Method = "device_code"
	MethodCLIFallback        Method = "cli_fallback"
)

// Methods returns every method in evaluation order. The order is fixed and
// identical on every run regardless of which methods are configured.
func Methods() []Method {
	return []Method{
		MethodManagedIdentity,
		MethodServicePrincipal,
		MethodClientCertificate,
		MethodInteractiveBrowser,
		MethodDeviceCode,
		MethodCLIFallback,
	}
}

// DisplayName returns the human-readable name used in reports.
func (m Method) DisplayName() string {
	switch m {
	case MethodManagedIdentity:
		return "Managed Identity"
	case MethodServicePrincipal:
		return "Service Principal (secret)"
	case MethodClientCertificate:
		return "Service Principal (certificate)"
	case MethodInteractiveBrowser:
		return "Interactive Browser"
	case MethodDeviceCode:
		return "Device Code"
	case MethodCLIFallback:
		return "Azure CLI session"
	default:
		return string(m)
	}
}

// String returns the machine-readable identifier.
func (m Method) String() string {
	return string(m)
}

// Status describes the evaluated state of a single authentication method.
type Status string

const (
	// StatusConfigured means full credential material is present.
	StatusConfigured Status = "configured"
	// StatusEnabled means an opt-in flow is switched on and its inputs are present.
	StatusEnabled Status = "enabled"
	// StatusAvailable means an external session exists that the app could reuse.
	StatusAvailable Status = "available"
	// StatusDisabled means an opt-in flow is not switched on.
	StatusDisabled Status = "disabled"
	// StatusNotConfigured means credential material is absent.
	StatusNotConfigured Status = "not_configured"
	// StatusNotLoggedIn means the Azure CLI is present but has no session.
	StatusNotLoggedIn Status = "not_logged_in"
	// StatusNotInstalled means the Azure CLI could not be invoked at all.
	StatusNotInstalled Status = "not_installed"
	// StatusCertNotFound means a certificate path is configured but the file is missing.
	StatusCertNotFound Status = "cert_not_found"
)

// Usable reports whether the status counts toward the configured-method total.
func (s Status) Usable() bool {
	switch s {
	case StatusConfigured, StatusEnabled, StatusAvailable:
		return true
	default:
		return false
	}
}

// Icon returns the Unicode icon for the status.
func (s Status) Icon() string {
	switch s {
	case StatusConfigured, StatusEnabled, StatusAvailable:
		return "✔"
	case StatusCertNotFound:
		return "✖"
	case StatusNotLoggedIn, StatusNotInstalled:
		return "⚠"
	default:
		return "○"
	}
}

// IconFallback returns ASCII fallback when Unicode is not supported.
func (s Status) IconFallback() string {
	switch s {
	case StatusConfigured, StatusEnabled, StatusAvailable:
		return "[OK]"
	case StatusCertNotFound:
		return "[XX]"
	case StatusNotLoggedIn, StatusNotInstalled:
		return "[!!]"
	default:
		return "[--]"
	}
}

// Color returns the Lipgloss color for the status.
func (s Status) Color() lipgloss.Color {
	switch s {
	case StatusConfigured, StatusEnabled, StatusAvailable:
		return lipgloss.Color("42") // green
	case StatusCertNotFound:
		return lipgloss.Color("196") // red
	case StatusNotLoggedIn, StatusNotInstalled:
		return lipgloss.Color("226") // yellow
	default:
		return lipgloss.Color("250") // light gray
	}
}

// Label returns the human-readable status text used in reports.
func (s Status) Label() string {
	switch s {
	case StatusConfigured:
		return "configured"
	case StatusEnabled:
		return "enabled"
	case StatusAvailable:
		return "available"
	case StatusDisabled:
		return "disabled"
	case StatusNotConfigured:
		return "not configured"
	case StatusNotLoggedIn:
		return "not logged in"
	case StatusNotInstalled:
		return "cli not installed"
	case StatusCertNotFound:
		return "certificate not found"
	default:
		return string(s)
	}
}

// String returns the machine-readable identifier.
func (s Status) String() string {
	return string(s)
}
