package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionCommandPrintsBuildInfo(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	cmd := newVersionCmd()
	cmd.SetOut(buf)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())
	out := buf.String()
	require.Contains(t, out, "azdoctor")
	require.Contains(t, out, "commit:")
	require.Contains(t, out, "built:")
}
