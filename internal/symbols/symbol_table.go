// Package symbols implements the hierarchical symbol table from spec.md
// §3.1/§4.2: a string-interned namespace tree supporting nested
// module/interface/function scopes, insertion, and both unqualified and
// hierarchical (dotted) name lookup. Grounded on the teacher's
// internal/symbols package (SymbolTable/Symbol/SymbolKind,
// NewEmptySymbolTable, Find/FindWithScope), generalized from the teacher's
// "symbol carries its own Type" model into the tagged-union SymbolKind
// spec.md §3.1 names (Module/Interface/Function/Variable/Parameter/Modport,
// each with its own payload).
package symbols

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/veryl-lang/veryl-go/internal/ast"
	"github.com/veryl-lang/veryl-go/internal/interner"
)

// Type is a minimal type reference: just the interned base type name.
// spec.md's NON-GOALS exclude width/type-compatibility checking, so we
// never need more than identity here.
type Type struct {
	Name interner.StrId
}

// ParamInfo describes one parameter slot of a Module/Interface/Function.
type ParamInfo struct {
	Name interner.StrId
	Ty   Type
}

// PortInfo describes one port of a Module.
type PortInfo struct {
	Name      interner.StrId
	Direction ast.Direction
	Ty        Type
}

// ModportMemberInfo describes one (name, direction) pair of a Modport.
type ModportMemberInfo struct {
	Name      interner.StrId
	Direction ast.Direction
}

// Kind discriminates the SymbolKind tagged union.
type Kind int

const (
	KindModule Kind = iota
	KindInterface
	KindFunction
	KindVariable
	KindParameter
	KindModport
)

func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindInterface:
		return "interface"
	case KindFunction:
		return "function"
	case KindVariable:
		return "variable"
	case KindParameter:
		return "parameter"
	case KindModport:
		return "modport"
	default:
		return "unknown"
	}
}

// SymbolKind is the tagged union spec.md §3.1 names. Only the fields for
// Kind are meaningful; the rest are zero.
type SymbolKind struct {
	Kind Kind

	// Module / Interface
	Parameters []ParamInfo
	Ports      []PortInfo // Module only

	// Function
	ReturnType Type

	// Variable / Parameter
	Ty Type

	// Modport
	Members []ModportMemberInfo
}

// HasChildScope reports whether a symbol of this kind introduces a nested
// namespace that hierarchical lookup may descend into (spec.md §4.2:
// "if its kind contains a child scope").
func (sk SymbolKind) HasChildScope() bool {
	return sk.Kind == KindModule || sk.Kind == KindInterface || sk.Kind == KindFunction
}

// Symbol is a record: name, the namespace path active when it was
// inserted, and its kind.
type Symbol struct {
	Name      interner.StrId
	Namespace []interner.StrId
	Kind      SymbolKind
}

// DuplicateSymbolError is returned by Insert when (namespace, name) already
// exists; prior entries are left untouched (spec.md §3.2 invariant 2).
type DuplicateSymbolError struct {
	Name      interner.StrId
	Namespace []interner.StrId
}

func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("duplicate symbol %d in namespace %v", e.Name, e.Namespace)
}

// Name is a lookup key: a single interned id for an unqualified lookup, or
// several for a hierarchical (dot/scope-resolved) lookup — spec.md §3.1.
// A one-element Name behaves exactly like Unqualified.
type Name struct {
	Parts []interner.StrId
}

// Unqualified builds a single-component lookup key.
func Unqualified(id interner.StrId) Name { return Name{Parts: []interner.StrId{id}} }

// Hierarchical builds a multi-component dotted lookup key.
func Hierarchical(parts []interner.StrId) Name { return Name{Parts: parts} }

type entryKey struct {
	ns   string
	name interner.StrId
}

// SymbolTable is a flat store keyed by the exact (namespace, name) pair it
// was inserted under; "scopes" are not separate linked objects but simply
// distinct namespace paths, matching spec.md §4.2's insert/get contract
// (both take an explicit namespace argument rather than an implicit
// current scope).
type SymbolTable struct {
	entries map[entryKey]Symbol
}

// New returns an empty SymbolTable.
func New() *SymbolTable {
	return &SymbolTable{entries: make(map[entryKey]Symbol)}
}

func nsKey(ns []interner.StrId) string {
	if len(ns) == 0 {
		return ""
	}
	var b strings.Builder
	for i, id := range ns {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return b.String()
}

// Insert records a new symbol. It fails with *DuplicateSymbolError when
// (namespace, name) already exists; the prior entry is left untouched
// (spec.md §3.2 invariant 2).
func (st *SymbolTable) Insert(name interner.StrId, namespace []interner.StrId, kind SymbolKind) error {
	k := entryKey{ns: nsKey(namespace), name: name}
	if _, exists := st.entries[k]; exists {
		return &DuplicateSymbolError{Name: name, Namespace: namespace}
	}
	nsCopy := append([]interner.StrId(nil), namespace...)
	st.entries[k] = Symbol{Name: name, Namespace: nsCopy, Kind: kind}
	return nil
}

func (st *SymbolTable) lookupExact(name interner.StrId, namespace []interner.StrId) (Symbol, bool) {
	sym, ok := st.entries[entryKey{ns: nsKey(namespace), name: name}]
	return sym, ok
}

// Get resolves name against namespace using the algorithm in spec.md §4.2.
//
// Unqualified (len(name.Parts) == 1): search each prefix of namespace from
// longest to shortest (innermost to outermost scope); return the first hit,
// or report not-found. Sibling scopes are never crossed.
//
// Hierarchical ([a, b, c, ...]): resolve a as an unqualified lookup; if its
// kind has a child scope, resolve b within exactly that scope (no further
// widening search), and so on. A non-terminal component that does not
// denote a scope returns not-found.
func (st *SymbolTable) Get(name Name, namespace []interner.StrId) (Symbol, bool) {
	if len(name.Parts) == 0 {
		return Symbol{}, false
	}
	sym, ok := st.getUnqualified(name.Parts[0], namespace)
	if !ok {
		return Symbol{}, false
	}
	for _, part := range name.Parts[1:] {
		if !sym.Kind.HasChildScope() {
			return Symbol{}, false
		}
		childNamespace := append(append([]interner.StrId(nil), sym.Namespace...), sym.Name)
		sym, ok = st.lookupExact(part, childNamespace)
		if !ok {
			return Symbol{}, false
		}
	}
	return sym, true
}

func (st *SymbolTable) getUnqualified(name interner.StrId, namespace []interner.StrId) (Symbol, bool) {
	for depth := len(namespace); depth >= 0; depth-- {
		if sym, ok := st.lookupExact(name, namespace[:depth]); ok {
			return sym, true
		}
	}
	return Symbol{}, false
}
