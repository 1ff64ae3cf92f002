package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Marked slots: bold green for availability
	colorMarked = color.New(color.FgGreen, color.Bold)

	// Unmarked slots: dim/grey
	colorUnmarked = color.New(color.FgWhite, color.Faint)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Totals: cyan to make them pop
	colorTotals = color.New(color.FgCyan)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)

	// Warnings: yellow
	colorWarn = color.New(color.FgYellow)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatMarked(s string) string {
	return colorMarked.Sprint(s)
}

func formatUnmarked(s string) string {
	return colorUnmarked.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatTotals(s string) string {
	return colorTotals.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}
