package envfile

import (
	"fmt"
	"os"
	"sort"
	"strings"

	azdoctorerrors "github.com/openchat-labs/azdoctor/pkg/errors"
)

// View is an immutable snapshot of environment variables. A key that is
// present with an empty value is distinct from a key that is absent.
type View struct {
	vars map[string]string
}

// Warning describes a skipped line in an env file. Malformed lines are never
// fatal; they are reported and ignored.
type Warning struct {
	Line int
	Text string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Text)
}

// New builds a View from an explicit variable map. The map is copied.
func New(vars map[string]string) *View {
	copied := make(map[string]string, len(vars))
	for key, value := range vars {
		copied[key] = value
	}
	return &View{vars: copied}
}

// Process builds a View from the current process environment.
func Process() *View {
	return fromEnviron(os.Environ())
}

func fromEnviron(environ []string) *View {
	vars := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, found := strings.Cut(entry, "=")
		if !found || key == "" {
			continue
		}
		vars[key] = value
	}
	return &View{vars: vars}
}

// Parse reads key=value assignments from env-file text. Blank lines and
// #-prefixed lines are ignored. The value is everything after the first '='
// and is not unescaped or unquoted. Lines without '=' are returned as
// warnings and skipped. On duplicate keys the last occurrence wins.
func Parse(data []byte) (map[string]string, []Warning) {
	vars := make(map[string]string)
	var warnings []Warning

	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		lineNo := i + 1
		line = strings.TrimSuffix(line, "\r")

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			warnings = append(warnings, Warning{Line: lineNo, Text: fmt.Sprintf("skipping malformed line %q", trimmed)})
			continue
		}

		vars[key] = value
	}

	return vars, warnings
}

// Load parses the env file at path and merges it over base. Keys defined in
// the file take precedence. An absent or unreadable file is reported as a
// *errors.ParseError wrapping the underlying cause; callers decide whether
// that is fatal, since resolution can still run against base alone.
func Load(path string, base *View) (*View, []Warning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, azdoctorerrors.NewParseError(path, 0, err)
	}

	fileVars, warnings := Parse(data)
	return merge(base, fileVars), warnings, nil
}

func merge(base *View, overrides map[string]string) *View {
	vars := make(map[string]string)
	if base != nil {
		for key, value := range base.vars {
			vars[key] = value
		}
	}
	for key, value := range overrides {
		vars[key] = value
	}
	return &View{vars: vars}
}

// Get returns the value for name, or "" when absent.
func (v *View) Get(name string) string {
	if v == nil {
		return ""
	}
	return v.vars[name]
}

// Lookup returns the value for name and whether it is set at all.
func (v *View) Lookup(name string) (string, bool) {
	if v == nil {
		return "", false
	}
	value, ok := v.vars[name]
	return value, ok
}

// IsSet reports whether name is present with a non-empty value.
func (v *View) IsSet(name string) bool {
	return v.Get(name) != ""
}

// Keys returns all variable names in sorted order.
func (v *View) Keys() []string {
	if v == nil {
		return nil
	}
	keys := make([]string, 0, len(v.vars))
	for key := range v.vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of variables in the view.
func (v *View) Len() int {
	if v == nil {
		return 0
	}
	return len(v.vars)
}

// MaskSecret obscures a sensitive value for display, keeping the last four
// characters as a recognizable hint. Short values are masked entirely.
func MaskSecret(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return "***"
	}
	return "***" + value[len(value)-4:]
}
