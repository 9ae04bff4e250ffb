package display

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Printer provides formatted output with styling capabilities for the CLI.
// All output methods ignore errors internally for simplicity.
type Printer interface {
	Print(a ...interface{})
	Println(a ...interface{})
	Printf(format string, a ...interface{})

	// Styled output methods with icons
	Success(msg string)
	Error(msg string)
	Warning(msg string)
	Info(msg string)

	Successf(format string, a ...interface{})
	Errorf(format string, a ...interface{})
	Warningf(format string, a ...interface{})
	Infof(format string, a ...interface{})

	// Text styling methods
	Bold(text string) string
	Faint(text string) string
}

// writer implements the Printer interface
type writer struct {
	out          io.Writer
	successColor func(a ...interface{}) string
	errorColor   func(a ...interface{}) string
	warningColor func(a ...interface{}) string
	infoColor    func(a ...interface{}) string
	boldStyle    func(a ...interface{}) string
	faintStyle   func(a ...interface{}) string
}

// New creates a new Printer that writes to the given io.Writer.
func New(w io.Writer) Printer {
	return &writer{
		out:          w,
		successColor: color.New(color.FgGreen).SprintFunc(),
		errorColor:   color.New(color.FgRed).SprintFunc(),
		warningColor: color.New(color.FgYellow).SprintFunc(),
		infoColor:    color.New(color.FgCyan).SprintFunc(),
		boldStyle:    color.New(color.Bold).SprintFunc(),
		faintStyle:   color.New(color.Faint).SprintFunc(),
	}
}

// NewStderr creates a new Printer that writes to stderr.
// This is the recommended default for user-facing messages.
func NewStderr() Printer {
	return New(os.Stderr)
}

// NewStdout creates a new Printer that writes to stdout.
// Use this only for results that may be piped to other commands.
func NewStdout() Printer {
	return New(os.Stdout)
}

func (w *writer) Print(a ...interface{}) {
	_, _ = fmt.Fprint(w.out, a...)
}

func (w *writer) Println(a ...interface{}) {
	_, _ = fmt.Fprintln(w.out, a...)
}

func (w *writer) Printf(format string, a ...interface{}) {
	_, _ = fmt.Fprintf(w.out, format, a...)
}

// Success prints a success message with a green checkmark icon.
func (w *writer) Success(msg string) {
	_, _ = fmt.Fprintf(w.out, "%s %s\n", w.successColor("✓"), msg)
}

// Error prints an error message with a red X icon.
func (w *writer) Error(msg string) {
	_, _ = fmt.Fprintf(w.out, "%s %s\n", w.errorColor("✗"), msg)
}

// Warning prints a warning message with a yellow warning icon.
func (w *writer) Warning(msg string) {
	_, _ = fmt.Fprintf(w.out, "%s %s\n", w.warningColor("⚠"), msg)
}

// Info prints an info message with a cyan info icon.
func (w *writer) Info(msg string) {
	_, _ = fmt.Fprintf(w.out, "%s %s\n", w.infoColor("ℹ"), msg)
}

func (w *writer) Successf(format string, a ...interface{}) {
	w.Success(fmt.Sprintf(format, a...))
}

func (w *writer) Errorf(format string, a ...interface{}) {
	w.Error(fmt.Sprintf(format, a...))
}

func (w *writer) Warningf(format string, a ...interface{}) {
	w.Warning(fmt.Sprintf(format, a...))
}

func (w *writer) Infof(format string, a ...interface{}) {
	w.Info(fmt.Sprintf(format, a...))
}

// Bold returns the text formatted in bold.
func (w *writer) Bold(text string) string {
	return w.boldStyle(text)
}

// Faint returns the text formatted as faint/dim.
func (w *writer) Faint(text string) string {
	return w.faintStyle(text)
}
