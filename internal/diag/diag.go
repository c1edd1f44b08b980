// Package diag formats translator diagnostics to stderr in the
// bracket-tagged, severity-colored style used across this tool family's
// reporters (spec §2.3).
package diag

import (
	"io"

	"github.com/fatih/color"
)

// Severity classifies a diagnostic line.
type Severity int

const (
	OK Severity = iota
	Warn
	Error
)

// Diag is one structured diagnostic, kept as fields (rather than a
// pre-formatted string) so tests can assert on them directly.
type Diag struct {
	Severity Severity
	Path     string
	Line     int
	Col      int
	Message  string
}

// Reporter writes Diags to an output stream with severity coloring.
type Reporter struct {
	w        io.Writer
	ok       *color.Color
	warn     *color.Color
	errColor *color.Color
}

// NewReporter returns a Reporter writing to w. When enableColor is false,
// every color is disabled regardless of TTY detection (spec's
// --no-color / NO_COLOR handling lives in the caller, which passes the
// resolved boolean here).
func NewReporter(w io.Writer, enableColor bool) *Reporter {
	r := &Reporter{
		w:        w,
		ok:       color.New(color.FgGreen),
		warn:     color.New(color.FgYellow),
		errColor: color.New(color.FgRed),
	}
	if !enableColor {
		r.ok.DisableColor()
		r.warn.DisableColor()
		r.errColor.DisableColor()
	}
	return r
}

// Report writes one formatted, tagged line for d.
func (r *Reporter) Report(d Diag) {
	switch d.Severity {
	case OK:
		r.ok.Fprintf(r.w, "[OK]   wrote %s\n", d.Path)
	case Warn:
		r.warn.Fprintf(r.w, "[WARN] %s: %s\n", d.Path, d.Message)
	case Error:
		r.errColor.Fprintf(r.w, "[ERROR] %s:%d:%d: %s\n", d.Path, d.Line, d.Col, d.Message)
	}
}

// Wrote reports a successful translation.
func (r *Reporter) Wrote(path string) {
	r.Report(Diag{Severity: OK, Path: path})
}

// IOFailure reports a per-file read/write failure (non-fatal, aggregate
// exit code becomes at least 1).
func (r *Reporter) IOFailure(path string, err error) {
	r.Report(Diag{Severity: Warn, Path: path, Message: err.Error()})
}

// ArrowRejected reports the fatal forbidden-'->' error (exit 2).
func (r *Reporter) ArrowRejected(path string, line, col int) {
	r.Report(Diag{
		Severity: Error,
		Path:     path,
		Line:     line,
		Col:      col,
		Message:  "'->' is not allowed; pointers use '.' in the input dialect",
	})
}
