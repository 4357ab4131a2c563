// Package output provides styled terminal output for the CLI commands.
//
// Functions use lipgloss for styling but abstract away the details from callers.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	mu          sync.Mutex
	writer      io.Writer = os.Stdout
	verboseMode bool
)

// SetOutput redirects all output to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	writer = w
}

// SetVerbose enables or disables verbose output for debugging.
// This should be called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

func printLine(style lipgloss.Style, msg string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(writer, style.Render(msg))
}

// Success prints a success message in green.
//
// Example:
//
//	output.Success("Generated 12 files")
func Success(msg string) {
	printLine(successStyle, "✔ "+msg)
}

// Error prints an error message in red.
func Error(msg string) {
	printLine(errorStyle, "✘ "+msg)
}

// Warn prints a warning in yellow.
func Warn(msg string) {
	printLine(warnStyle, "! "+msg)
}

// Info prints an informational message in cyan.
func Info(msg string) {
	printLine(infoStyle, "ℹ "+msg)
}

// Step prints an indented step message in gray.
//
// Example:
//
//	output.Step("write src/Order.go")
func Step(msg string) {
	printLine(stepStyle, "   "+msg)
}

// Verbose prints a debug message only if verbose mode is enabled.
func Verbose(msg string) {
	mu.Lock()
	v := verboseMode
	mu.Unlock()
	if v {
		printLine(stepStyle, "· "+msg)
	}
}
