package formatter

import (
	"strings"

	"github.com/veryl-lang/veryl-go/internal/lexer"
	"github.com/veryl-lang/veryl-go/internal/token"
)

// Emit re-lexes source and writes every token back out in order, inserting
// additions[tok.Pos] extra spaces before each token's leading trivia
// (spec.md §4.6). Re-lexing rather than walking the AST is what lets this
// reproduce punctuation the AST doesn't retain as its own nodes (braces,
// semicolons, colons) while still consulting the Aligner's location-keyed
// side table exactly as spec.md describes it ("walks... emitting tokens in
// source order").
func Emit(source string, additions map[token.Pos]int) string {
	l := lexer.New(source)
	var b strings.Builder
	for {
		t := l.NextToken()
		if pad := additions[t.Pos]; pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(normalizeTrivia(t.Leading))
		if t.Kind == token.EOF {
			break
		}
		b.WriteString(t.Lexeme)
	}
	return b.String()
}

// normalizeTrivia collapses a run of pure inline whitespace (no newline, no
// comment) down to a single space, so that alignment additions are the
// only source of variable spacing between tokens on one line. Trivia
// containing a newline or a comment is left verbatim: newlines carry the
// source's line structure (spec.md §4.6, "Newlines come from the source
// trivia, verbatim"), and comments must survive byte-for-byte.
func normalizeTrivia(s string) string {
	if s == "" {
		return s
	}
	if strings.ContainsAny(s, "\n/") {
		return s
	}
	return " "
}
