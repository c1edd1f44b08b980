package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"cptrans/internal/diag"
	"cptrans/internal/scope"
)

func TestSplitCommaTrimsAndDropsEmpties(t *testing.T) {
	require.Equal(t, []string{"vendor", "build"}, splitComma("vendor, build ,"))
}

func TestSplitCommaEmptyInput(t *testing.T) {
	require.Nil(t, splitComma(""))
}

func TestResolveColorNoColorFlagWins(t *testing.T) {
	require.False(t, resolveColor("always", true))
}

func TestResolveColorModes(t *testing.T) {
	require.True(t, resolveColor("always", false))
	require.False(t, resolveColor("never", false))
	require.True(t, resolveColor("auto", false))
}

func TestResolveColorHonorsNoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	require.False(t, resolveColor("always", false))
}

func TestUsageErrorMessage(t *testing.T) {
	require.Contains(t, usageError{}.Error(), "Usage:")
}

func TestRunBatchWritesOutputAndReportsOK(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.cp")
	require.NoError(t, os.WriteFile(in, []byte("struct S { int x; }\n"), 0o644))

	var buf bytes.Buffer
	reporter := diag.NewReporter(&buf, false)
	code := runBatch([]string{in}, scope.New(), reporter)

	require.Equal(t, 0, code)
	require.Contains(t, buf.String(), "[OK]")

	out, err := os.ReadFile(filepath.Join(dir, "a.cpp"))
	require.NoError(t, err)
	require.Equal(t, "struct S { int x; };\n", string(out))
}

func TestRunBatchReportsIOFailureAndSetsExitCode(t *testing.T) {
	var buf bytes.Buffer
	reporter := diag.NewReporter(&buf, false)
	missing := filepath.Join(t.TempDir(), "missing.cp")
	code := runBatch([]string{missing}, scope.New(), reporter)

	require.Equal(t, 1, code)
	require.Contains(t, buf.String(), "[WARN]")
}
