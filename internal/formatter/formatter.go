package formatter

import (
	"fmt"

	"github.com/veryl-lang/veryl-go/internal/diagnostics"
	"github.com/veryl-lang/veryl-go/internal/interner"
	"github.com/veryl-lang/veryl-go/internal/parser"
)

// Format parses source, measures alignment, and re-emits it with padding
// applied (spec.md §4.6's "Formatter text-edit boundary": a single
// replacement for the whole input). Syntax errors abort formatting, same
// as the rest of the pipeline (spec.md §7).
func Format(source string) (string, error) {
	p := parser.New(source, interner.New())
	root := p.ParseVeryl()
	if errs := p.Errors(); len(errs) != 0 {
		return "", fmt.Errorf("%w", asFormatError(errs))
	}

	additions := NewAligner().Align(root)
	return Emit(source, additions), nil
}

type formatError struct {
	diags []*diagnostics.Diagnostic
}

func (e *formatError) Error() string {
	if len(e.diags) == 0 {
		return "formatting failed"
	}
	return e.diags[0].Error()
}

func asFormatError(diags []*diagnostics.Diagnostic) error {
	return &formatError{diags: diags}
}
