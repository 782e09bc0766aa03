package formatter_test

import (
	"strings"
	"testing"

	"github.com/veryl-lang/veryl-go/internal/formatter"
)

// colsOf returns the 0-based column of the first occurrence of needle
// on each physical line of s that contains it.
func colsOf(s, needle string) []int {
	var cols []int
	for _, line := range strings.Split(s, "\n") {
		if i := strings.Index(line, needle); i >= 0 {
			cols = append(cols, i)
		}
	}
	return cols
}

func TestAlignmentScenario(t *testing.T) {
	src := "module m { input  a: logic     ; input b: logic[7:0]; }\n" +
		"module m { input a   : logic[7:0]; input b: logic; }\n"

	out, err := formatter.Format(src)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	colons := colsOf(out, ":")
	if len(colons) < 2 {
		t.Fatalf("expected multiple ':' occurrences, got %q", out)
	}
	for _, c := range colons[1:] {
		if c != colons[0] {
			t.Errorf("colon columns = %v, want all equal", colons)
			break
		}
	}

	brackets := colsOf(out, "[")
	for _, c := range brackets[1:] {
		if c != brackets[0] {
			t.Errorf("bracket columns = %v, want all equal", brackets)
			break
		}
	}
}

func TestFormatIdempotent(t *testing.T) {
	src := `module m { input  a: logic     ; input b: logic[7:0]; }`

	once, err := formatter.Format(src)
	if err != nil {
		t.Fatalf("first Format: %v", err)
	}
	twice, err := formatter.Format(once)
	if err != nil {
		t.Fatalf("second Format: %v", err)
	}
	if once != twice {
		t.Errorf("format is not a fixed point:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestFormatPreservesComments(t *testing.T) {
	src := "module m { // leading note\n    input a: logic; }"
	out, err := formatter.Format(src)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(out, "// leading note") {
		t.Errorf("comment not preserved verbatim: %q", out)
	}
}

func TestBlankLineBreaksGroup(t *testing.T) {
	src := "module m {\n    input a: logic;\n\n    input bb: logic;\n}"
	out, err := formatter.Format(src)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	cols := colsOf(out, ":")
	if len(cols) != 2 {
		t.Fatalf("expected 2 colons, got %v in %q", cols, out)
	}
	if cols[0] == cols[1] {
		t.Errorf("columns across a blank-line break should differ (independent groups), got %v", cols)
	}
}

func TestAlwaysCombAssignmentsAlign(t *testing.T) {
	src := "module m { always_comb { a = 1; bb = 2; } }"
	out, err := formatter.Format(src)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	eqs := colsOf(out, "=")
	if len(eqs) != 2 {
		t.Fatalf("expected 2 '=' occurrences, got %v in %q", eqs, out)
	}
	if eqs[0] != eqs[1] {
		t.Errorf("always_comb assignment columns = %v, want equal", eqs)
	}
}

func TestFormatSyntaxErrorIsReported(t *testing.T) {
	_, err := formatter.Format(`module m { input a logic; }`)
	if err == nil {
		t.Fatalf("expected an error for invalid syntax")
	}
}
