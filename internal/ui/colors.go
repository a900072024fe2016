// Package ui holds the ANSI styles shared by the help screens and the run summary.
package ui

import (
	"os"

	"github.com/mattn/go-isatty"
)

// ANSI color and style sequences for CLI output. They are blank when color is
// disabled; see SetColor.
var (
	ColorReset string
	ColorBold  string
	ColorDim   string

	ColorCyan   string
	ColorGreen  string
	ColorYellow string
	ColorWhite  string
	ColorRed    string
)

func init() {
	SetColor(os.Getenv("NO_COLOR") == "" && isatty.IsTerminal(os.Stdout.Fd()))
}

// SetColor switches every style on or off
func SetColor(on bool) {
	if !on {
		ColorReset, ColorBold, ColorDim = "", "", ""
		ColorCyan, ColorGreen, ColorYellow, ColorWhite, ColorRed = "", "", "", "", ""
		return
	}
	ColorReset, ColorBold, ColorDim = "\033[0m", "\033[1m", "\033[2m"
	ColorCyan = "\033[36m"
	ColorGreen = "\033[32m"
	ColorYellow = "\033[33m"
	ColorWhite = "\033[97m"
	ColorRed = "\033[31m"
}

// Bold styles a summary heading
func Bold(s string) string {
	return ColorBold + s + ColorReset
}

// Success styles a count of written pages
func Success(s string) string {
	return ColorGreen + s + ColorReset
}

// Info styles neutral counts such as empty pages
func Info(s string) string {
	return ColorDim + ColorYellow + s + ColorReset
}

// Error styles failure counts and the fatal error prefix
func Error(s string) string {
	return ColorRed + s + ColorReset
}
