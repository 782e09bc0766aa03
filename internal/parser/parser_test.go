package parser_test

import (
	"testing"

	"github.com/veryl-lang/veryl-go/internal/ast"
	"github.com/veryl-lang/veryl-go/internal/interner"
	"github.com/veryl-lang/veryl-go/internal/parser"
)

func parseModule(t *testing.T, src string) *ast.ModuleDeclaration {
	t.Helper()
	p := parser.New(src, interner.New())
	root := p.ParseVeryl()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(root.Descriptions) != 1 {
		t.Fatalf("expected 1 description, got %d", len(root.Descriptions))
	}
	m, ok := root.Descriptions[0].(*ast.ModuleDeclaration)
	if !ok {
		t.Fatalf("expected *ast.ModuleDeclaration, got %T", root.Descriptions[0])
	}
	return m
}

func TestParseModulePorts(t *testing.T) {
	m := parseModule(t, `module m { input  a: logic     ; input b: logic[7:0]; }`)

	if m.Name.Name != "m" {
		t.Fatalf("name = %q, want m", m.Name.Name)
	}
	if len(m.Ports) != 2 {
		t.Fatalf("ports = %d, want 2", len(m.Ports))
	}
	if m.Ports[0].Direction != ast.DirInput || m.Ports[0].Name.Name != "a" {
		t.Errorf("port 0 = %+v", m.Ports[0])
	}
	if m.Ports[1].Type.Width == nil {
		t.Fatalf("port 1 should carry a width")
	}
	if len(m.Items) != 0 {
		t.Errorf("items = %d, want 0 (ports should not land in Items)", len(m.Items))
	}
}

func TestParseInstantiation(t *testing.T) {
	m := parseModule(t, `module top { u0: sub(.a(x), .b(y)); }`)

	if len(m.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(m.Items))
	}
	inst, ok := m.Items[0].(*ast.InstDeclaration)
	if !ok {
		t.Fatalf("item 0 is %T, want *ast.InstDeclaration", m.Items[0])
	}
	if inst.InstanceName.Name != "u0" {
		t.Errorf("instance name = %q, want u0", inst.InstanceName.Name)
	}
	if got := inst.ModuleName.Names(); len(got) != 1 || got[0] != "sub" {
		t.Errorf("module name = %v, want [sub]", got)
	}
	if !inst.HasConnections || len(inst.Connections) != 2 {
		t.Fatalf("connections = %+v", inst.Connections)
	}
	if inst.Connections[0].Name.Name != "a" {
		t.Errorf("connection 0 name = %q, want a", inst.Connections[0].Name.Name)
	}
}

func TestParseInstantiationEmptyConnectionList(t *testing.T) {
	m := parseModule(t, `module top { u0: sub(); }`)
	inst := m.Items[0].(*ast.InstDeclaration)
	if !inst.HasConnections {
		t.Fatalf("HasConnections should be true for a present-but-empty list")
	}
	if len(inst.Connections) != 0 {
		t.Fatalf("connections = %v, want none", inst.Connections)
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"mul_before_add", "assign a = 1 + 2 * 3;", "(1+(2*3))"},
		{"unary_binds_tight", "assign a = -1 + 2;", "((-1)+2)"},
		{"paren_overrides", "assign a = (1 + 2) * 3;", "((1+2)*3)"},
		{"and_before_or", "assign a = 1 || 2 && 3;", "(1||(2&&3))"},
		{"relational_before_equality", "assign a = 1 == 2 < 3;", "(1==(2<3))"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := parseModule(t, "module m { "+tc.src+" }")
			assignDecl, ok := m.Items[0].(*ast.AssignDecl)
			if !ok {
				t.Fatalf("item 0 is %T, want *ast.AssignDecl", m.Items[0])
			}
			got := exprString(assignDecl.RHS)
			if got != tc.want {
				t.Errorf("exprString = %q, want %q", got, tc.want)
			}
		})
	}
}

// exprString renders an expression tree as a fully-parenthesized string,
// for precedence assertions.
func exprString(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.NumberLit:
		return n.Text
	case *ast.UnaryExpr:
		return "(" + n.Op + exprString(n.Operand) + ")"
	case *ast.BinaryExpr:
		return "(" + exprString(n.Left) + n.Op + exprString(n.Right) + ")"
	case *ast.ParenExpr:
		return exprString(n.Inner)
	case *ast.IdentifierExpr:
		return n.Name.Name
	default:
		return "?"
	}
}

func TestParseSyntaxErrorRecovery(t *testing.T) {
	p := parser.New(`module m { input a logic; }`, interner.New())
	p.ParseVeryl()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected at least one syntax error for a missing ':'")
	}
}
