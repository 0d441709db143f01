package errors

import (
	"fmt"
)

// ParseError represents an env-file read or parse failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures deployment configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ProbeError reports a failed Azure CLI invocation. Unavailable distinguishes
// "the binary could not be run at all" (not installed, timed out) from
// "the binary ran but reported no active session".
type ProbeError struct {
	Command     string
	Unavailable bool
	Err         error
}

// NewProbeError constructs a ProbeError.
func NewProbeError(command string, unavailable bool, err error) error {
	return &ProbeError{Command: command, Unavailable: unavailable, Err: err}
}

func (e *ProbeError) Error() string {
	if e == nil {
		return ""
	}
	if e.Unavailable {
		return fmt.Sprintf("probe error: %s: azure cli unavailable: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("probe error: %s: %v", e.Command, e.Err)
}

// Unwrap exposes the underlying error.
func (e *ProbeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DiscoveryError reports a failed resource or deployment listing call.
type DiscoveryError struct {
	Resource string
	Err      error
}

// NewDiscoveryError constructs a DiscoveryError.
func NewDiscoveryError(resource string, err error) error {
	return &DiscoveryError{Resource: resource, Err: err}
}

func (e *DiscoveryError) Error() string {
	if e == nil {
		return ""
	}
	if e.Resource != "" {
		return fmt.Sprintf("discovery error for %s: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("discovery error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *DiscoveryError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
