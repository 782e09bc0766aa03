package analyzer

import (
	"github.com/veryl-lang/veryl-go/internal/ast"
	"github.com/veryl-lang/veryl-go/internal/diagnostics"
	"github.com/veryl-lang/veryl-go/internal/interner"
	"github.com/veryl-lang/veryl-go/internal/symbols"
	"github.com/veryl-lang/veryl-go/internal/walker"
)

// symbolInserter is pass 1 (spec.md §4.4): it populates the symbol table
// with every declaration, top-level and nested, pushing/popping namespace
// as it enters and leaves Module/Interface/Function scopes.
type symbolInserter struct {
	in    *interner.Interner
	table *symbols.SymbolTable
	ns    *namespaceStack
	diags []*diagnostics.Diagnostic
}

func newSymbolInserter(in *interner.Interner, table *symbols.SymbolTable) *symbolInserter {
	return &symbolInserter{in: in, table: table, ns: newNamespaceStack(in)}
}

func (s *symbolInserter) insert(name *ast.Identifier, kind symbols.SymbolKind) {
	if name == nil {
		return
	}
	id := s.in.Intern(name.Name)
	if err := s.table.Insert(id, s.ns.current(), kind); err != nil {
		s.diags = append(s.diags, diagnostics.DuplicateSymbol(name.Name, name.Tok.Pos))
	}
}

func (s *symbolInserter) typeOf(t *ast.TypeExpr) symbols.Type {
	if t == nil {
		return symbols.Type{}
	}
	return symbols.Type{Name: s.in.Intern(t.Name)}
}

func (s *symbolInserter) Handle(point walker.Point, n ast.Node) {
	switch d := n.(type) {
	case *ast.ModuleDeclaration:
		if point == walker.Before {
			var ports []symbols.PortInfo
			for _, p := range d.Ports {
				ports = append(ports, symbols.PortInfo{
					Name:      s.in.Intern(p.Name.Name),
					Direction: p.Direction,
					Ty:        s.typeOf(p.Type),
				})
			}
			var params []symbols.ParamInfo
			for _, pd := range d.Parameters {
				params = append(params, symbols.ParamInfo{Name: s.in.Intern(pd.Name.Name), Ty: s.typeOf(pd.Type)})
			}
			s.insert(d.Name, symbols.SymbolKind{Kind: symbols.KindModule, Ports: ports, Parameters: params})
			s.ns.push(d.Name.Name)
		} else {
			s.ns.pop()
		}

	case *ast.InterfaceDeclaration:
		if point == walker.Before {
			var params []symbols.ParamInfo
			for _, pd := range d.Parameters {
				params = append(params, symbols.ParamInfo{Name: s.in.Intern(pd.Name.Name), Ty: s.typeOf(pd.Type)})
			}
			s.insert(d.Name, symbols.SymbolKind{Kind: symbols.KindInterface, Parameters: params})
			s.ns.push(d.Name.Name)
		} else {
			s.ns.pop()
		}

	case *ast.FunctionDecl:
		if point == walker.Before {
			s.insert(d.Name, symbols.SymbolKind{Kind: symbols.KindFunction, ReturnType: s.typeOf(d.ReturnType)})
			s.ns.push(d.Name.Name)
		} else {
			s.ns.pop()
		}

	case *ast.ParameterDecl:
		if point == walker.Before {
			s.insert(d.Name, symbols.SymbolKind{Kind: symbols.KindParameter, Ty: s.typeOf(d.Type)})
		}

	case *ast.LocalparamDecl:
		if point == walker.Before {
			s.insert(d.Name, symbols.SymbolKind{Kind: symbols.KindParameter, Ty: s.typeOf(d.Type)})
		}

	case *ast.PortDecl:
		if point == walker.Before {
			s.insert(d.Name, symbols.SymbolKind{Kind: symbols.KindVariable, Ty: s.typeOf(d.Type)})
		}

	case *ast.VariableDecl:
		if point == walker.Before {
			s.insert(d.Name, symbols.SymbolKind{Kind: symbols.KindVariable, Ty: s.typeOf(d.Type)})
		}

	case *ast.ModportDecl:
		if point == walker.Before {
			var members []symbols.ModportMemberInfo
			for _, m := range d.Members {
				members = append(members, symbols.ModportMemberInfo{Name: s.in.Intern(m.Name.Name), Direction: m.Direction})
			}
			s.insert(d.Name, symbols.SymbolKind{Kind: symbols.KindModport, Members: members})
		}
	}
}
