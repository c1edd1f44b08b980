package diag_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cptrans/internal/diag"
)

func TestReporterWroteFormatsOKLine(t *testing.T) {
	var buf bytes.Buffer
	r := diag.NewReporter(&buf, false)
	r.Wrote("main.cpp")
	require.Equal(t, "[OK]   wrote main.cpp\n", buf.String())
}

func TestReporterIOFailureFormatsWarnLine(t *testing.T) {
	var buf bytes.Buffer
	r := diag.NewReporter(&buf, false)
	r.IOFailure("broken.cp", errors.New("permission denied"))
	require.Equal(t, "[WARN] broken.cp: permission denied\n", buf.String())
}

func TestReporterArrowRejectedFormatsErrorLine(t *testing.T) {
	var buf bytes.Buffer
	r := diag.NewReporter(&buf, false)
	r.ArrowRejected("bad.cp", 3, 7)
	require.Equal(t, "[ERROR] bad.cp:3:7: '->' is not allowed; pointers use '.' in the input dialect\n", buf.String())
}

func TestReporterDisablesColorWhenRequested(t *testing.T) {
	var buf bytes.Buffer
	r := diag.NewReporter(&buf, false)
	r.Wrote("main.cpp")
	require.False(t, strings.ContainsRune(buf.String(), '\x1b'), "no ANSI escape codes expected with color disabled")
}
