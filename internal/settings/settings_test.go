package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	azdoctorerrors "github.com/openchat-labs/azdoctor/pkg/errors"
)

func TestLoadAbsentFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	got, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), got)
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".azdoctor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env_file: deploy/.env\ntimeout: 30s\nno_color: true\n"), 0o600))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "deploy/.env", got.EnvFile)
	require.Equal(t, "az", got.AzBinary)
	require.True(t, got.NoColor)
	require.Equal(t, 30*time.Second, got.ProbeTimeout())
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".azdoctor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: whenever\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)

	var validationErr *azdoctorerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".azdoctor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env_file: [unclosed\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)

	var parseErr *azdoctorerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestProbeTimeoutFallback(t *testing.T) {
	t.Parallel()

	require.Equal(t, 10*time.Second, Settings{}.ProbeTimeout())
	require.Equal(t, 10*time.Second, Settings{Timeout: "-5s"}.ProbeTimeout())
	require.Equal(t, time.Minute, Settings{Timeout: "1m"}.ProbeTimeout())
}
