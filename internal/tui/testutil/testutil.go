// Package testutil holds shared helpers for TUI tests.
package testutil

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"
)

// RequireGolden compares output with the test's golden file.
func RequireGolden(t *testing.T, output string) {
	t.Helper()
	golden.RequireEqual(t, []byte(output))
}

// StripANSI removes ANSI escape sequences so tests can assert on plain
// text regardless of the active color profile.
func StripANSI(content string) string {
	return ansi.Strip(content)
}
