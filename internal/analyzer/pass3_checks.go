package analyzer

import (
	"github.com/veryl-lang/veryl-go/internal/ast"
	"github.com/veryl-lang/veryl-go/internal/diagnostics"
	"github.com/veryl-lang/veryl-go/internal/interner"
	"github.com/veryl-lang/veryl-go/internal/symbols"
	"github.com/veryl-lang/veryl-go/internal/walker"
)

// moduleInstanceChecker is pass 3 (spec.md §4.4): cross-node checks that
// need the fully populated symbol table from pass 1. CheckModuleInstance
// is the only check it currently runs, implemented exactly per the
// protocol in spec.md §4.4.1.
type moduleInstanceChecker struct {
	in    *interner.Interner
	table *symbols.SymbolTable
	ns    *namespaceStack
	diags []*diagnostics.Diagnostic
}

func newModuleInstanceChecker(in *interner.Interner, table *symbols.SymbolTable) *moduleInstanceChecker {
	return &moduleInstanceChecker{in: in, table: table, ns: newNamespaceStack(in)}
}

func (c *moduleInstanceChecker) Handle(point walker.Point, n ast.Node) {
	if name, ok := scopeName(n); ok {
		if point == walker.Before {
			c.ns.push(name)
		} else {
			c.ns.pop()
		}
		return
	}

	switch d := n.(type) {
	case *ast.InstDeclaration:
		if point == walker.Before {
			c.checkModuleInstance(d)
		}
	}
}

// checkModuleInstance implements spec.md §4.4.1's eight-step protocol.
func (c *moduleInstanceChecker) checkModuleInstance(inst *ast.InstDeclaration) {
	// Step 1: build the Name from the scoped identifier.
	var parts []interner.StrId
	for _, id := range inst.ModuleName.Parts {
		parts = append(parts, c.in.Intern(id.Name))
	}

	// Step 2: resolve against the symbol table using the current namespace.
	sym, ok := c.table.Get(symbols.Hierarchical(parts), c.ns.current())
	if !ok {
		// Edge case: an unresolved module name is silently skipped here;
		// pass 2 already reported it as an unknown symbol.
		return
	}

	moduleName := inst.ModuleName.Names()[len(inst.ModuleName.Names())-1]

	// Step 3: kind mismatch.
	if sym.Kind.Kind != symbols.KindModule {
		c.diags = append(c.diags, diagnostics.MismatchType(sym.Kind.Kind.String(), "module", inst.Tok.Pos))
		return
	}

	// Step 4: the set of connected port names (empty if HasConnections is
	// false, per the "omitted vs. zero entries" edge case — both mean C = ∅,
	// but a present-empty list is still only reachable via HasConnections).
	connected := make(map[string]bool, len(inst.Connections))
	for _, conn := range inst.Connections {
		connected[conn.Name.Name] = true
	}

	// Step 5: the declared port-name set D.
	declared := make(map[string]bool, len(sym.Kind.Ports))
	for _, port := range sym.Kind.Ports {
		declared[c.in.MustGet(port.Name)] = true
	}

	// Step 6: D \ C -> MissingPort, in declaration order for stable output.
	for _, port := range sym.Kind.Ports {
		name := c.in.MustGet(port.Name)
		if !connected[name] {
			c.diags = append(c.diags, diagnostics.MissingPort(moduleName, name, inst.Tok.Pos))
		}
	}

	// Step 7: C \ D -> UnknownPort, in connection order.
	for _, conn := range inst.Connections {
		if !declared[conn.Name.Name] {
			c.diags = append(c.diags, diagnostics.UnknownPort(moduleName, conn.Name.Name, inst.Tok.Pos))
		}
	}

	// Step 8: every diagnostic above is sited at inst.Tok, the instance
	// identifier's token.
}
