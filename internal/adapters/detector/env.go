// Package detector chooses between the interactive and the scripted front end.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents the front end used by browse.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeTUI forces the interactive terminal UI.
	ModeTUI
	// ModeLinear forces the line-oriented scripted session.
	ModeLinear
)

// String returns the flag value naming the mode.
func (m OutputMode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	case ModeLinear:
		return "linear"
	default:
		return "auto"
	}
}

// DetectEnvironment returns ModeTUI when both stdin and stdout are terminals and no
// CI variable is set, and ModeLinear otherwise.
func DetectEnvironment() OutputMode {
	if !Interactive() || isCI(os.Getenv("CI")) {
		return ModeLinear
	}
	return ModeTUI
}

func isCI(v string) bool {
	return v == "true" || v == "1"
}

// ResolveMode applies the user's flag to the detected mode.
// userFlag should be one of: "auto", "tui", "linear", "ci", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "tui":
		return ModeTUI
	case "linear", "ci":
		return ModeLinear
	default:
		return autoDetected
	}
}

// Interactive reports whether stdin and stdout are both terminals.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
