// Package ast defines the Veryl abstract syntax tree, per spec.md §3.1. The
// concrete grammar and the parser that produces this shape are modeled as
// external collaborators (spec.md §1), but we still need a real
// implementation to exercise the analyzer and formatter end-to-end, so this
// package (plus internal/lexer and internal/parser) is a hand-written
// recursive-descent front end for the subset of Veryl the spec names:
// modules, interfaces, ports, parameters, localparams, variables,
// always_ff/always_comb, assign, and module instantiation.
package ast

import "github.com/veryl-lang/veryl-go/internal/token"

// Node is the base interface for every AST node. Every terminal carries a
// Token (spec.md §3.1); GetToken returns the node's own primary token for
// diagnostic siting.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
	Accept(v Visitor)
}

// Description is one of ModuleDeclaration | InterfaceDeclaration.
type Description interface {
	Node
	descriptionNode()
}

// ModuleItem is one of variable / parameter / localparam / always_ff /
// always_comb / assign / instantiation (spec.md §3.1), plus modport and
// function declarations which the distilled spec.md doesn't enumerate but
// the symbol table's SymbolKind (Function, Modport) requires a declaring
// form for.
type ModuleItem interface {
	Node
	moduleItemNode()
}

// Statement appears inside always_ff/always_comb/function bodies.
type Statement interface {
	Node
	statementNode()
}

// Expression is a node in the 12-level precedence ladder (spec.md §3.1).
type Expression interface {
	Node
	expressionNode()
}

// Direction is a port or modport-member direction.
type Direction int

const (
	DirInput Direction = iota
	DirOutput
	DirInout
)

func (d Direction) String() string {
	switch d {
	case DirInput:
		return "input"
	case DirOutput:
		return "output"
	case DirInout:
		return "inout"
	default:
		return "unknown"
	}
}

// EdgeKind is the clock/reset edge sensitivity of an always_ff block.
type EdgeKind int

const (
	EdgeNone EdgeKind = iota
	EdgePos
	EdgeNeg
)

// Identifier is a declaring or referencing name occurrence.
type Identifier struct {
	Tok  token.Token
	Name string
}

func (i *Identifier) TokenLiteral() string  { return i.Tok.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Tok }
func (i *Identifier) Accept(v Visitor)      { v.VisitIdentifier(i) }

// ScopedIdentifier is a dotted/scope-resolved name chain, e.g. the
// instantiated module name in an InstDeclaration.
type ScopedIdentifier struct {
	Parts []*Identifier
}

func (s *ScopedIdentifier) TokenLiteral() string {
	if len(s.Parts) == 0 {
		return ""
	}
	return s.Parts[0].Tok.Lexeme
}
func (s *ScopedIdentifier) GetToken() token.Token {
	if len(s.Parts) == 0 {
		return token.Token{}
	}
	return s.Parts[0].Tok
}
func (s *ScopedIdentifier) Accept(v Visitor) { v.VisitScopedIdentifier(s) }

// Names returns the dotted chain as plain strings.
func (s *ScopedIdentifier) Names() []string {
	names := make([]string, len(s.Parts))
	for i, p := range s.Parts {
		names[i] = p.Name
	}
	return names
}

// Veryl is the root node: a sequence of Description.
type Veryl struct {
	Descriptions []Description
}

func (p *Veryl) TokenLiteral() string {
	if len(p.Descriptions) > 0 {
		return p.Descriptions[0].TokenLiteral()
	}
	return ""
}
func (p *Veryl) GetToken() token.Token {
	if len(p.Descriptions) > 0 {
		return p.Descriptions[0].GetToken()
	}
	return token.Token{}
}
func (p *Veryl) Accept(v Visitor) { v.VisitVeryl(p) }

// Width is a packed bit-range [hi:lo] on a scalar type.
type Width struct {
	Tok token.Token // the '[' token
	Hi  Expression
	Lo  Expression
}

func (w *Width) TokenLiteral() string  { return w.Tok.Lexeme }
func (w *Width) GetToken() token.Token { return w.Tok }
func (w *Width) Accept(v Visitor)      { v.VisitWidth(w) }

// TypeExpr is a type reference: a base name (logic/bit/user type) plus an
// optional packed width.
type TypeExpr struct {
	Tok   token.Token
	Name  string
	Width *Width
}

func (t *TypeExpr) TokenLiteral() string  { return t.Tok.Lexeme }
func (t *TypeExpr) GetToken() token.Token { return t.Tok }
func (t *TypeExpr) Accept(v Visitor)      { v.VisitTypeExpr(t) }

// ModuleDeclaration declares a hardware module: identifier, optional
// parameter list, optional port list, body of ModuleItem (spec.md §3.1).
type ModuleDeclaration struct {
	Tok        token.Token
	Name       *Identifier
	Parameters []*ParameterDecl
	Ports      []*PortDecl
	Items      []ModuleItem
}

func (m *ModuleDeclaration) TokenLiteral() string  { return m.Tok.Lexeme }
func (m *ModuleDeclaration) GetToken() token.Token { return m.Tok }
func (m *ModuleDeclaration) Accept(v Visitor)      { v.VisitModuleDeclaration(m) }
func (m *ModuleDeclaration) descriptionNode()      {}

// InterfaceDeclaration declares an interface: a bundle of signals plus
// modports.
type InterfaceDeclaration struct {
	Tok        token.Token
	Name       *Identifier
	Parameters []*ParameterDecl
	Items      []ModuleItem
}

func (i *InterfaceDeclaration) TokenLiteral() string  { return i.Tok.Lexeme }
func (i *InterfaceDeclaration) GetToken() token.Token { return i.Tok }
func (i *InterfaceDeclaration) Accept(v Visitor)      { v.VisitInterfaceDeclaration(i) }
func (i *InterfaceDeclaration) descriptionNode()      {}

// ParameterDecl declares a compile-time constant at the module/interface
// boundary (`parameter`) or, when reused inside FunctionDecl, a function
// argument.
type ParameterDecl struct {
	Tok     token.Token // the 'parameter' keyword, or the arg's own token for function args
	Name    *Identifier
	Type    *TypeExpr
	Default Expression // optional
}

func (p *ParameterDecl) TokenLiteral() string  { return p.Tok.Lexeme }
func (p *ParameterDecl) GetToken() token.Token { return p.Tok }
func (p *ParameterDecl) Accept(v Visitor)      { v.VisitParameterDecl(p) }
func (p *ParameterDecl) moduleItemNode()       {}

// LocalparamDecl declares a constant internal to a module/interface.
type LocalparamDecl struct {
	Tok   token.Token
	Name  *Identifier
	Type  *TypeExpr
	Value Expression
}

func (l *LocalparamDecl) TokenLiteral() string  { return l.Tok.Lexeme }
func (l *LocalparamDecl) GetToken() token.Token { return l.Tok }
func (l *LocalparamDecl) Accept(v Visitor)      { v.VisitLocalparamDecl(l) }
func (l *LocalparamDecl) moduleItemNode()       {}

// PortDecl is a named, direction-tagged signal on a module's boundary.
type PortDecl struct {
	Tok       token.Token // the direction keyword
	Direction Direction
	Name      *Identifier
	Type      *TypeExpr
}

func (p *PortDecl) TokenLiteral() string  { return p.Tok.Lexeme }
func (p *PortDecl) GetToken() token.Token { return p.Tok }
func (p *PortDecl) Accept(v Visitor)      { v.VisitPortDecl(p) }

// VariableDecl declares an internal signal.
type VariableDecl struct {
	Tok  token.Token
	Name *Identifier
	Type *TypeExpr
}

func (vd *VariableDecl) TokenLiteral() string  { return vd.Tok.Lexeme }
func (vd *VariableDecl) GetToken() token.Token { return vd.Tok }
func (vd *VariableDecl) Accept(v Visitor)      { v.VisitVariableDecl(vd) }
func (vd *VariableDecl) moduleItemNode()       {}

// AssignDecl is a continuous assignment at module scope.
type AssignDecl struct {
	Tok token.Token
	LHS Expression
	RHS Expression
}

func (a *AssignDecl) TokenLiteral() string  { return a.Tok.Lexeme }
func (a *AssignDecl) GetToken() token.Token { return a.Tok }
func (a *AssignDecl) Accept(v Visitor)      { v.VisitAssignDecl(a) }
func (a *AssignDecl) moduleItemNode()       {}

// AlwaysFfDecl is a clocked procedural block.
type AlwaysFfDecl struct {
	Tok       token.Token
	Clock     *Identifier
	ClockEdge EdgeKind
	Reset     *Identifier // optional
	ResetEdge EdgeKind
	Body      []Statement
}

func (a *AlwaysFfDecl) TokenLiteral() string  { return a.Tok.Lexeme }
func (a *AlwaysFfDecl) GetToken() token.Token { return a.Tok }
func (a *AlwaysFfDecl) Accept(v Visitor)      { v.VisitAlwaysFfDecl(a) }
func (a *AlwaysFfDecl) moduleItemNode()       {}

// AlwaysCombDecl is a combinational procedural block.
type AlwaysCombDecl struct {
	Tok  token.Token
	Body []Statement
}

func (a *AlwaysCombDecl) TokenLiteral() string  { return a.Tok.Lexeme }
func (a *AlwaysCombDecl) GetToken() token.Token { return a.Tok }
func (a *AlwaysCombDecl) Accept(v Visitor)      { v.VisitAlwaysCombDecl(a) }
func (a *AlwaysCombDecl) moduleItemNode()       {}

// ModportDecl declares a named port-direction bundle on an interface.
type ModportDecl struct {
	Tok     token.Token
	Name    *Identifier
	Members []*ModportMember
}

func (m *ModportDecl) TokenLiteral() string  { return m.Tok.Lexeme }
func (m *ModportDecl) GetToken() token.Token { return m.Tok }
func (m *ModportDecl) Accept(v Visitor)      { v.VisitModportDecl(m) }
func (m *ModportDecl) moduleItemNode()       {}

// ModportMember is one (name, direction) pair inside a ModportDecl.
type ModportMember struct {
	Tok       token.Token
	Name      *Identifier
	Direction Direction
}

func (m *ModportMember) TokenLiteral() string  { return m.Tok.Lexeme }
func (m *ModportMember) GetToken() token.Token { return m.Tok }
func (m *ModportMember) Accept(v Visitor)      { v.VisitModportMember(m) }

// FunctionDecl declares a function: parameters, return type, body.
type FunctionDecl struct {
	Tok        token.Token
	Name       *Identifier
	Parameters []*ParameterDecl
	ReturnType *TypeExpr // optional
	Body       []Statement
}

func (f *FunctionDecl) TokenLiteral() string  { return f.Tok.Lexeme }
func (f *FunctionDecl) GetToken() token.Token { return f.Tok }
func (f *FunctionDecl) Accept(v Visitor)      { v.VisitFunctionDecl(f) }
func (f *FunctionDecl) moduleItemNode()       {}

// PortConnection is one named connection inside an instantiation's
// connection list, e.g. `.a(x)`.
type PortConnection struct {
	Tok   token.Token
	Name  *Identifier
	Value Expression
}

func (c *PortConnection) TokenLiteral() string  { return c.Tok.Lexeme }
func (c *PortConnection) GetToken() token.Token { return c.Tok }
func (c *PortConnection) Accept(v Visitor)      { v.VisitPortConnection(c) }

// InstDeclaration instantiates a module: scoped identifier (module name),
// instance identifier, optional named-port connection list (spec.md §3.1).
type InstDeclaration struct {
	Tok            token.Token // the instance identifier token (diagnostic site, spec.md §4.4.1 step 8)
	ModuleName     *ScopedIdentifier
	InstanceName   *Identifier
	HasConnections bool // true even when the list is syntactically present but empty
	Connections    []*PortConnection
}

func (i *InstDeclaration) TokenLiteral() string  { return i.Tok.Lexeme }
func (i *InstDeclaration) GetToken() token.Token { return i.Tok }
func (i *InstDeclaration) Accept(v Visitor)      { v.VisitInstDeclaration(i) }
func (i *InstDeclaration) moduleItemNode()       {}
