// Package detector chooses how watch results are presented.
package detector

import (
	"os"
	"strings"

	"go.trai.ch/envspec/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// Mode is the presentation of watch results.
type Mode int

const (
	// ModeAuto picks the mode from the environment.
	ModeAuto Mode = iota
	// ModeDashboard shows the interactive dashboard.
	ModeDashboard
	// ModePlain prints a report after every check.
	ModePlain
)

// String returns the flag value selecting the mode.
func (m Mode) String() string {
	switch m {
	case ModeDashboard:
		return "dashboard"
	case ModePlain:
		return "plain"
	default:
		return "auto"
	}
}

// Detect returns ModeDashboard when out is a terminal and CI is not set.
func Detect(out *os.File) Mode {
	if out == nil || !term.IsTerminal(int(out.Fd())) {
		return ModePlain
	}
	if isCI(os.Getenv("CI")) {
		return ModePlain
	}
	return ModeDashboard
}

func isCI(value string) bool {
	return value == "true" || value == "1"
}

// Resolve applies the user's choice to the detected mode.
// Accepted values are "auto" (or empty), "dashboard" and "plain".
func Resolve(detected Mode, flag string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "", "auto":
		return detected, nil
	case "dashboard", "tui":
		return ModeDashboard, nil
	case "plain", "linear", "ci":
		return ModePlain, nil
	default:
		return ModeAuto, zerr.With(domain.ErrUnknownUIMode, "mode", flag)
	}
}
