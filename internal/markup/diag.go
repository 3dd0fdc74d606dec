package markup

import (
	"fmt"
	"io"
)

// Severity of a diagnostic emitted during snippet processing.
type Severity int

const (
	SevWarning Severity = iota
	SevError
)

// String returns the lowercase severity name
func (s Severity) String() string {
	if s == SevError {
		return "error"
	}
	return "warning"
}

// Diagnostic is a single message produced while processing a snippet
type Diagnostic struct {
	Severity Severity
	Message  string
}

// Reporter receives diagnostics emitted while processing a snippet.
// Warnings never abort processing; errors are advisory and processing
// still completes with whatever output was collected.
type Reporter interface {
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Recorder is a Reporter that collects diagnostics in order of emission.
// A fresh Recorder is meant to live for a single Process call.
type Recorder struct {
	diags []Diagnostic
}

// Warnf implements Reporter
func (r *Recorder) Warnf(format string, args ...any) {
	r.diags = append(r.diags, Diagnostic{SevWarning, fmt.Sprintf(format, args...)})
}

// Errorf implements Reporter
func (r *Recorder) Errorf(format string, args ...any) {
	r.diags = append(r.diags, Diagnostic{SevError, fmt.Sprintf(format, args...)})
}

// Diagnostics returns everything collected so far, in emission order
func (r *Recorder) Diagnostics() []Diagnostic {
	return r.diags
}

// Warnings returns only the warning messages
func (r *Recorder) Warnings() []string {
	return r.filter(SevWarning)
}

// Errors returns only the error messages
func (r *Recorder) Errors() []string {
	return r.filter(SevError)
}

// HasErrors reports whether at least one error was recorded
func (r *Recorder) HasErrors() bool {
	for _, d := range r.diags {
		if d.Severity == SevError {
			return true
		}
	}
	return false
}

func (r *Recorder) filter(sev Severity) []string {
	var out []string
	for _, d := range r.diags {
		if d.Severity == sev {
			out = append(out, d.Message)
		}
	}
	return out
}

// WriterReporter writes diagnostics to w as they are emitted, one per line
type WriterReporter struct {
	W      io.Writer
	Prefix string
}

// Warnf implements Reporter
func (r *WriterReporter) Warnf(format string, args ...any) {
	fmt.Fprintf(r.W, "%swarning: %s\n", r.Prefix, fmt.Sprintf(format, args...))
}

// Errorf implements Reporter
func (r *WriterReporter) Errorf(format string, args ...any) {
	fmt.Fprintf(r.W, "%serror: %s\n", r.Prefix, fmt.Sprintf(format, args...))
}

// discardReporter swallows everything; used when scanning lines that are
// not part of the collected output
type discardReporter struct{}

func (discardReporter) Warnf(string, ...any)  {}
func (discardReporter) Errorf(string, ...any) {}
