package analyzer

import (
	"github.com/veryl-lang/veryl-go/internal/ast"
	"github.com/veryl-lang/veryl-go/internal/diagnostics"
	"github.com/veryl-lang/veryl-go/internal/interner"
	"github.com/veryl-lang/veryl-go/internal/symbols"
	"github.com/veryl-lang/veryl-go/internal/token"
	"github.com/veryl-lang/veryl-go/internal/walker"
)

// builtinTypes never need a symbol table entry.
var builtinTypes = map[string]bool{"logic": true, "bit": true}

// referenceResolver is pass 2 (spec.md §4.4): it resolves every identifier
// reference, custom type name, and instantiated module name against the
// symbol table populated by pass 1, reporting UnknownSymbol for anything
// that doesn't resolve. Pass 3's CheckModuleInstance re-resolves an
// instantiation's module name to run its own checks, but silently skips a
// miss rather than reporting it again — this pass is the only one that
// reports an unresolved module name.
type referenceResolver struct {
	in    *interner.Interner
	table *symbols.SymbolTable
	ns    *namespaceStack
	diags []*diagnostics.Diagnostic
}

func newReferenceResolver(in *interner.Interner, table *symbols.SymbolTable) *referenceResolver {
	return &referenceResolver{in: in, table: table, ns: newNamespaceStack(in)}
}

func (r *referenceResolver) Handle(point walker.Point, n ast.Node) {
	if name, ok := scopeName(n); ok {
		if point == walker.Before {
			r.ns.push(name)
		} else {
			r.ns.pop()
		}
		return
	}

	switch d := n.(type) {
	case *ast.TypeExpr:
		if point == walker.Before && !builtinTypes[d.Name] {
			r.resolve(d.Name, d.Tok.Pos)
		}

	case *ast.IdentifierExpr:
		if point == walker.Before {
			r.resolve(d.Name.Name, d.Name.Tok.Pos)
		}

	case *ast.InstDeclaration:
		if point == walker.Before {
			r.resolveScoped(d.ModuleName)
		}
	}
}

// resolveScoped resolves an instantiation's module name hierarchically
// against the current namespace, reporting UnknownSymbol on a miss. This is
// the single place that reports an unresolved module name: pass 3's
// CheckModuleInstance re-resolves the same name to run its own checks but
// silently skips a miss rather than reporting it again.
func (r *referenceResolver) resolveScoped(name *ast.ScopedIdentifier) {
	var parts []interner.StrId
	for _, id := range name.Parts {
		parts = append(parts, r.in.Intern(id.Name))
	}
	if _, ok := r.table.Get(symbols.Hierarchical(parts), r.ns.current()); !ok {
		last := name.Parts[len(name.Parts)-1]
		r.diags = append(r.diags, diagnostics.UnknownSymbol(last.Name, last.Tok.Pos))
	}
}

func (r *referenceResolver) resolve(name string, pos token.Pos) {
	id := r.in.Intern(name)
	if _, ok := r.table.Get(symbols.Unqualified(id), r.ns.current()); !ok {
		r.diags = append(r.diags, diagnostics.UnknownSymbol(name, pos))
	}
}
