package cmd

import (
	"os"

	"golang.org/x/term"
)

// ANSI color codes for terminal output.
// These are initialized in init() and may be disabled on certain platforms.
var (
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[0;33m"
	colorCyan   = "\033[0;36m"
	colorDim    = "\033[2m"
	colorBold   = "\033[1m"
	colorReset  = "\033[0m"
)

func init() {
	if shouldDisableColors() {
		colorGreen = ""
		colorYellow = ""
		colorCyan = ""
		colorDim = ""
		colorBold = ""
		colorReset = ""
	}
}

// shouldDisableColors honors NO_COLOR (https://no-color.org/), TERM=dumb
// and non-terminal stdout.
func shouldDisableColors() bool {
	if os.Getenv("NO_COLOR") != "" {
		return true
	}
	if os.Getenv("TERM") == "dumb" {
		return true
	}
	return !term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // G115: fd fits in int
}
