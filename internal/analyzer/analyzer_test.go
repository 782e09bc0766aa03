package analyzer_test

import (
	"testing"

	"github.com/veryl-lang/veryl-go/internal/analyzer"
	"github.com/veryl-lang/veryl-go/internal/diagnostics"
	"github.com/veryl-lang/veryl-go/internal/interner"
	"github.com/veryl-lang/veryl-go/internal/parser"
)

func analyze(t *testing.T, src string) *analyzer.Result {
	t.Helper()
	in := interner.New()
	p := parser.New(src, in)
	root := p.ParseVeryl()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return analyzer.New(in).Run(root)
}

func codesOf(diags []*diagnostics.Diagnostic) []diagnostics.Code {
	codes := make([]diagnostics.Code, len(diags))
	for i, d := range diags {
		codes[i] = d.Code
	}
	return codes
}

func TestCheckModuleInstanceMissingPort(t *testing.T) {
	res := analyze(t, `
		module m { input a: logic; input b: logic; input c: logic; }
		module top { u0: m(.a(x), .b(y)); }
	`)
	var missing []*diagnostics.Diagnostic
	for _, d := range res.Diagnostics {
		if d.Code == diagnostics.CodeMissingPort {
			missing = append(missing, d)
		}
	}
	if len(missing) != 1 {
		t.Fatalf("missing-port diagnostics = %d, want 1 (%v)", len(missing), codesOf(res.Diagnostics))
	}
	if missing[0].Data["port"] != "c" {
		t.Errorf("missing port = %q, want c", missing[0].Data["port"])
	}
}

func TestCheckModuleInstanceUnknownPort(t *testing.T) {
	res := analyze(t, `
		module m { input a: logic; input b: logic; }
		module top { u0: m(.a(x), .b(y), .z(w)); }
	`)
	var unknown []*diagnostics.Diagnostic
	for _, d := range res.Diagnostics {
		if d.Code == diagnostics.CodeUnknownPort {
			unknown = append(unknown, d)
		}
	}
	if len(unknown) != 1 || unknown[0].Data["port"] != "z" {
		t.Fatalf("unknown-port diagnostics = %v", unknown)
	}
}

func TestCheckModuleInstanceKindMismatch(t *testing.T) {
	res := analyze(t, `
		interface m { }
		module top { u0: m(); }
	`)
	found := false
	for _, d := range res.Diagnostics {
		if d.Code == diagnostics.CodeMismatchType {
			found = true
			if d.Data["found"] != "interface" || d.Data["expected"] != "module" {
				t.Errorf("mismatch data = %v", d.Data)
			}
		}
	}
	if !found {
		t.Fatalf("expected a MismatchType diagnostic, got %v", codesOf(res.Diagnostics))
	}
}

func TestCheckModuleInstanceEmptyConnectionList(t *testing.T) {
	res := analyze(t, `
		module m { input a: logic; input b: logic; }
		module top { u0: m(); }
	`)
	count := 0
	for _, d := range res.Diagnostics {
		if d.Code == diagnostics.CodeMissingPort {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("missing-port count = %d, want 2 (one per declared port)", count)
	}
}

func TestNestedScopeResolution(t *testing.T) {
	// A variable declared inside module cpu is visible to a reference
	// inside cpu's own body but not to one outside it.
	inside := analyze(t, `
		module cpu {
			logic f;
			assign f = 1;
		}
	`)
	for _, d := range inside.Diagnostics {
		if d.Code == diagnostics.CodeUnknownSymbol {
			t.Errorf("unexpected unknown-symbol diagnostic inside scope: %v", d)
		}
	}

	outside := analyze(t, `
		module cpu {
			logic f;
		}
		module top {
			assign x = f;
		}
	`)
	found := false
	for _, d := range outside.Diagnostics {
		if d.Code == diagnostics.CodeUnknownSymbol && d.Data["name"] == "f" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected f to be unresolved outside cpu, got %v", codesOf(outside.Diagnostics))
	}
}

func TestUnresolvedInstantiatedModuleIsReported(t *testing.T) {
	res := analyze(t, `
		module top { u0: nonexistent(.a(x)); }
	`)
	found := false
	for _, d := range res.Diagnostics {
		if d.Code == diagnostics.CodeUnknownSymbol && d.Data["name"] == "nonexistent" {
			found = true
		}
		if d.Code == diagnostics.CodeMissingPort || d.Code == diagnostics.CodeUnknownPort || d.Code == diagnostics.CodeMismatchType {
			t.Errorf("pass 3 should skip an unresolved instance rather than double-report: %v", d)
		}
	}
	if !found {
		t.Fatalf("expected an unknown-symbol diagnostic for nonexistent, got %v", codesOf(res.Diagnostics))
	}
}

func TestDuplicateSymbolReportedOnce(t *testing.T) {
	res := analyze(t, `
		module m {
			logic a;
			logic a;
		}
	`)
	count := 0
	for _, d := range res.Diagnostics {
		if d.Code == diagnostics.CodeDuplicateSymbol {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("duplicate-symbol diagnostics = %d, want 1", count)
	}
}
