// Package diagnostics implements the structured error model from spec.md
// §7: a fixed taxonomy of diagnostic kinds, each carrying a source span and
// rendered to human text with a caret marker. Grounded on the teacher's
// internal/diagnostics.DiagnosticError + NewError(code, token, msg)
// pattern (referenced throughout internal/analyzer), reconstructed here
// since the teacher's own diagnostics package was not present in the
// retrieval pack — only its call sites were.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/veryl-lang/veryl-go/internal/token"
)

// Code enumerates the diagnostic kinds spec.md §7 names. Severity is fixed
// at ERROR for all of them (spec.md §6).
type Code string

const (
	CodeSyntax          Code = "V-SYN"  // from the parser; halts the pipeline for that file
	CodeIO              Code = "V-IO"   // file read/write failure; halts that file
	CodeMissingPort     Code = "V-A001"
	CodeUnknownPort     Code = "V-A002"
	CodeMismatchType    Code = "V-A003"
	CodeDuplicateSymbol Code = "V-A004"
	CodeUnknownSymbol   Code = "V-A005"
)

// Diagnostic is the structured error type every analyzer/parser/formatter
// boundary returns. kind (Code), primary span, message, and an optional
// machine-readable Data payload — spec.md §6.
type Diagnostic struct {
	Code    Code
	Message string
	Span    token.Pos
	File    string
	Data    map[string]string // offending name(s), keyed for machine consumption
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// NewError builds a Diagnostic at pos with msg, matching the teacher's
// diagnostics.NewError(code, token, msg) call shape.
func NewError(code Code, pos token.Pos, msg string) *Diagnostic {
	return &Diagnostic{Code: code, Message: msg, Span: pos}
}

// MissingPort reports a declared port with no connection at an
// instantiation site (spec.md §4.4.1 step 6).
func MissingPort(moduleName, port string, site token.Pos) *Diagnostic {
	return &Diagnostic{
		Code:    CodeMissingPort,
		Message: fmt.Sprintf("instance of module %q is missing connection for port %q", moduleName, port),
		Span:    site,
		Data:    map[string]string{"module": moduleName, "port": port},
	}
}

// UnknownPort reports a connection naming a port the module doesn't
// declare (spec.md §4.4.1 step 7).
func UnknownPort(moduleName, port string, site token.Pos) *Diagnostic {
	return &Diagnostic{
		Code:    CodeUnknownPort,
		Message: fmt.Sprintf("module %q has no port named %q", moduleName, port),
		Span:    site,
		Data:    map[string]string{"module": moduleName, "port": port},
	}
}

// MismatchType reports an instantiation whose resolved symbol is not a
// Module (spec.md §4.4.1 step 3).
func MismatchType(found, expected string, site token.Pos) *Diagnostic {
	return &Diagnostic{
		Code:    CodeMismatchType,
		Message: fmt.Sprintf("expected %s, found %s", expected, found),
		Span:    site,
		Data:    map[string]string{"found": found, "expected": expected},
	}
}

// DuplicateSymbol reports a second declaration of the same name in the
// same namespace (spec.md §3.2 invariant 2).
func DuplicateSymbol(name string, site token.Pos) *Diagnostic {
	return &Diagnostic{
		Code:    CodeDuplicateSymbol,
		Message: fmt.Sprintf("%q is already declared in this scope", name),
		Span:    site,
		Data:    map[string]string{"name": name},
	}
}

// UnknownSymbol reports a reference that resolves to nothing (spec.md
// §4.4 pass 2).
func UnknownSymbol(name string, site token.Pos) *Diagnostic {
	return &Diagnostic{
		Code:    CodeUnknownSymbol,
		Message: fmt.Sprintf("cannot find %q in this scope", name),
		Span:    site,
		Data:    map[string]string{"name": name},
	}
}

// Syntax wraps a parser error.
func Syntax(msg string, site token.Pos) *Diagnostic {
	return &Diagnostic{Code: CodeSyntax, Message: msg, Span: site}
}

// IO wraps a file read/write failure. It carries no meaningful span.
func IO(msg string) *Diagnostic {
	return &Diagnostic{Code: CodeIO, Message: msg}
}

// Render formats diagnostics for terminal display with caret markers under
// the offending column, against the original source text (spec.md §7,
// "User-visible form"). useColor controls whether ANSI highlighting is
// emitted; callers typically gate this on whether stdout is a real
// terminal (see internal/diagnostics.ShouldColor).
func Render(diags []*Diagnostic, file, source string, useColor bool) string {
	lines := strings.Split(source, "\n")
	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		renderOne(&b, d, file, lines, useColor)
	}
	return b.String()
}

func renderOne(b *strings.Builder, d *Diagnostic, file string, lines []string, useColor bool) {
	const (
		red   = "\x1b[31;1m"
		reset = "\x1b[0m"
	)
	errTag := "error"
	if useColor {
		errTag = red + "error" + reset
	}
	name := file
	if d.File != "" {
		name = d.File
	}
	fmt.Fprintf(b, "%s[%s]: %s\n", errTag, d.Code, d.Message)
	fmt.Fprintf(b, "  --> %s:%d:%d\n", name, d.Span.Line, d.Span.Column)
	if d.Span.Line >= 1 && d.Span.Line <= len(lines) {
		src := lines[d.Span.Line-1]
		fmt.Fprintf(b, "   | %s\n", src)
		caretCol := d.Span.Column
		if caretCol < 1 {
			caretCol = 1
		}
		caretLen := d.Span.Length
		if caretLen < 1 {
			caretLen = 1
		}
		caret := strings.Repeat(" ", caretCol-1) + strings.Repeat("^", caretLen)
		if useColor {
			caret = red + caret + reset
		}
		fmt.Fprintf(b, "   | %s\n", caret)
	}
}
