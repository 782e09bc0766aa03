package diagnostics

import (
	"os"

	"github.com/mattn/go-isatty"
)

// ShouldColor reports whether diagnostic rendering should emit ANSI
// escapes, gated on stdout being a real terminal — the same check the
// teacher's internal/evaluator/builtins_term.go performs before emitting
// ANSI sequences (isatty.IsTerminal / isatty.IsCygwinTerminal, the latter
// needed on Windows consoles that aren't recognized as a standard tty).
func ShouldColor() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
