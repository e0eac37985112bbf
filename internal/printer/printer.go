package printer

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Style definitions for consistent console output across the application.
var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // Red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // Yellow
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // Cyan
)

// Status symbols used by check listings.
const (
	SymbolPass = "✓"
	SymbolFail = "✗"
	SymbolWarn = "!"
)

var defaultProfile = lipgloss.ColorProfile()

// SetNoColor disables (or restores) ANSI styling for all output.
func SetNoColor(disabled bool) {
	if disabled {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(defaultProfile)
}

// Render functions return styled strings without printing.

// Faint returns text with faint styling.
func Faint(text string) string {
	return faintStyle.Render(text)
}

// Bold returns text with bold styling.
func Bold(text string) string {
	return boldStyle.Render(text)
}

// Success returns text with success (green) styling.
func Success(text string) string {
	return successStyle.Render(text)
}

// Error returns text with error (red) styling.
func Error(text string) string {
	return errorStyle.Render(text)
}

// Warning returns text with warning (yellow) styling.
func Warning(text string) string {
	return warningStyle.Render(text)
}

// Info returns text with info (cyan) styling.
func Info(text string) string {
	return infoStyle.Render(text)
}

// Status renders a check line prefixed with a pass, warning or failure symbol.
func Status(passed, warning bool, text string) string {
	switch {
	case warning:
		return Warning(SymbolWarn) + " " + text
	case passed:
		return Success(SymbolPass) + " " + text
	default:
		return Error(SymbolFail) + " " + text
	}
}

// Print functions output styled text to stdout with a newline.

// PrintFaint prints text with faint styling.
func PrintFaint(text string) {
	fmt.Println(Faint(text))
}

// PrintSuccess prints text with success (green) styling.
func PrintSuccess(text string) {
	fmt.Println(Success(text))
}

// PrintWarning prints text with warning (yellow) styling.
func PrintWarning(text string) {
	fmt.Println(Warning(text))
}

// PrintInfo prints text with info (cyan) styling.
func PrintInfo(text string) {
	fmt.Println(Info(text))
}

// Diagnostic output, written to stderr.

// errOut overrides os.Stderr when set.
var errOut io.Writer

func stderr() io.Writer {
	if errOut != nil {
		return errOut
	}
	return os.Stderr
}

// PrintError prints text with error (red) styling to stderr.
func PrintError(text string) {
	fmt.Fprintln(stderr(), Error(text))
}

// Warn prints a warning to stderr.
func Warn(text string) {
	fmt.Fprintln(stderr(), Warning(text))
}

// Note prints faint text to stderr.
func Note(text string) {
	fmt.Fprintln(stderr(), Faint(text))
}
