// Package walker implements the polymorphic AST traversal protocol from
// spec.md §4.3: a single walk over an ast.Node that fires every attached
// Handler at two points per node — Before, on first visit, and After, once
// all children have been visited — so the analyzer's three passes share one
// traversal implementation instead of each hand-rolling recursion (§4.4's
// analyzer handlers are expressed as Handler implementations, grounded on
// the teacher's Visitor/Accept double dispatch in internal/ast, generalized
// here into an explicit pre/post hook point). The formatter's aligner does
// not use this package; it recurses over the AST itself.
package walker

import "github.com/veryl-lang/veryl-go/internal/ast"

// Point identifies which side of a node's children the hook fires on.
type Point int

const (
	Before Point = iota
	After
)

func (p Point) String() string {
	if p == Before {
		return "Before"
	}
	return "After"
}

// Handler observes every node once per Point. A Handler that only cares
// about a few node kinds ignores the rest — unoverridden nodes are
// traversed transparently, since the Walker (not the Handler) owns
// recursion.
type Handler interface {
	Handle(point Point, node ast.Node)
}

// HandlerFunc adapts a plain function to a Handler.
type HandlerFunc func(point Point, node ast.Node)

func (f HandlerFunc) Handle(point Point, node ast.Node) { f(point, node) }

// Walker drives one or more Handlers over an ast.Node in source order. It
// implements ast.Visitor itself so that Accept's double dispatch is the
// single place default recursion lives; Handlers never need to implement
// Visitor or recurse themselves.
type Walker struct {
	handlers []Handler
}

// New returns a Walker that fires every handler, in order, at each node.
func New(handlers ...Handler) *Walker {
	return &Walker{handlers: handlers}
}

// Add attaches another handler, to be fired after those already present.
func (w *Walker) Add(h Handler) {
	w.handlers = append(w.handlers, h)
}

// Walk traverses n, firing Before/After on every attached handler. A nil
// node is a no-op, so call sites don't need to guard optional fields.
func (w *Walker) Walk(n ast.Node) {
	if n == nil || isNilNode(n) {
		return
	}
	n.Accept(w)
}

func (w *Walker) fire(point Point, n ast.Node) {
	for _, h := range w.handlers {
		h.Handle(point, n)
	}
}

// --- ast.Visitor implementation: default recursion per grammar rule ---

func (w *Walker) VisitVeryl(n *ast.Veryl) {
	w.fire(Before, n)
	for _, d := range n.Descriptions {
		w.Walk(d)
	}
	w.fire(After, n)
}

func (w *Walker) VisitModuleDeclaration(n *ast.ModuleDeclaration) {
	w.fire(Before, n)
	w.Walk(n.Name)
	for _, p := range n.Parameters {
		w.Walk(p)
	}
	for _, p := range n.Ports {
		w.Walk(p)
	}
	for _, item := range n.Items {
		w.Walk(item)
	}
	w.fire(After, n)
}

func (w *Walker) VisitInterfaceDeclaration(n *ast.InterfaceDeclaration) {
	w.fire(Before, n)
	w.Walk(n.Name)
	for _, p := range n.Parameters {
		w.Walk(p)
	}
	for _, item := range n.Items {
		w.Walk(item)
	}
	w.fire(After, n)
}

func (w *Walker) VisitParameterDecl(n *ast.ParameterDecl) {
	w.fire(Before, n)
	w.Walk(n.Name)
	w.Walk(n.Type)
	w.Walk(n.Default)
	w.fire(After, n)
}

func (w *Walker) VisitLocalparamDecl(n *ast.LocalparamDecl) {
	w.fire(Before, n)
	w.Walk(n.Name)
	w.Walk(n.Type)
	w.Walk(n.Value)
	w.fire(After, n)
}

func (w *Walker) VisitPortDecl(n *ast.PortDecl) {
	w.fire(Before, n)
	w.Walk(n.Name)
	w.Walk(n.Type)
	w.fire(After, n)
}

func (w *Walker) VisitVariableDecl(n *ast.VariableDecl) {
	w.fire(Before, n)
	w.Walk(n.Name)
	w.Walk(n.Type)
	w.fire(After, n)
}

func (w *Walker) VisitAssignDecl(n *ast.AssignDecl) {
	w.fire(Before, n)
	w.Walk(n.LHS)
	w.Walk(n.RHS)
	w.fire(After, n)
}

func (w *Walker) VisitAlwaysFfDecl(n *ast.AlwaysFfDecl) {
	w.fire(Before, n)
	w.Walk(n.Clock)
	w.Walk(n.Reset)
	for _, s := range n.Body {
		w.Walk(s)
	}
	w.fire(After, n)
}

func (w *Walker) VisitAlwaysCombDecl(n *ast.AlwaysCombDecl) {
	w.fire(Before, n)
	for _, s := range n.Body {
		w.Walk(s)
	}
	w.fire(After, n)
}

func (w *Walker) VisitModportDecl(n *ast.ModportDecl) {
	w.fire(Before, n)
	w.Walk(n.Name)
	for _, m := range n.Members {
		w.Walk(m)
	}
	w.fire(After, n)
}

func (w *Walker) VisitModportMember(n *ast.ModportMember) {
	w.fire(Before, n)
	w.Walk(n.Name)
	w.fire(After, n)
}

func (w *Walker) VisitFunctionDecl(n *ast.FunctionDecl) {
	w.fire(Before, n)
	w.Walk(n.Name)
	for _, p := range n.Parameters {
		w.Walk(p)
	}
	w.Walk(n.ReturnType)
	for _, s := range n.Body {
		w.Walk(s)
	}
	w.fire(After, n)
}

func (w *Walker) VisitInstDeclaration(n *ast.InstDeclaration) {
	w.fire(Before, n)
	w.Walk(n.ModuleName)
	w.Walk(n.InstanceName)
	for _, c := range n.Connections {
		w.Walk(c)
	}
	w.fire(After, n)
}

func (w *Walker) VisitPortConnection(n *ast.PortConnection) {
	w.fire(Before, n)
	w.Walk(n.Name)
	w.Walk(n.Value)
	w.fire(After, n)
}

func (w *Walker) VisitTypeExpr(n *ast.TypeExpr) {
	w.fire(Before, n)
	w.Walk(n.Width)
	w.fire(After, n)
}

func (w *Walker) VisitWidth(n *ast.Width) {
	w.fire(Before, n)
	w.Walk(n.Hi)
	w.Walk(n.Lo)
	w.fire(After, n)
}

func (w *Walker) VisitIdentifier(n *ast.Identifier) {
	w.fire(Before, n)
	w.fire(After, n)
}

func (w *Walker) VisitScopedIdentifier(n *ast.ScopedIdentifier) {
	w.fire(Before, n)
	for _, p := range n.Parts {
		w.Walk(p)
	}
	w.fire(After, n)
}

func (w *Walker) VisitAssignStatement(n *ast.AssignStatement) {
	w.fire(Before, n)
	w.Walk(n.LHS)
	w.Walk(n.RHS)
	w.fire(After, n)
}

func (w *Walker) VisitIfStatement(n *ast.IfStatement) {
	w.fire(Before, n)
	w.Walk(n.Cond)
	for _, s := range n.Then {
		w.Walk(s)
	}
	for _, s := range n.Else {
		w.Walk(s)
	}
	w.fire(After, n)
}

func (w *Walker) VisitReturnStatement(n *ast.ReturnStatement) {
	w.fire(Before, n)
	w.Walk(n.Value)
	w.fire(After, n)
}

func (w *Walker) VisitBinaryExpr(n *ast.BinaryExpr) {
	w.fire(Before, n)
	w.Walk(n.Left)
	w.Walk(n.Right)
	w.fire(After, n)
}

func (w *Walker) VisitUnaryExpr(n *ast.UnaryExpr) {
	w.fire(Before, n)
	w.Walk(n.Operand)
	w.fire(After, n)
}

func (w *Walker) VisitNumberLit(n *ast.NumberLit) {
	w.fire(Before, n)
	w.fire(After, n)
}

func (w *Walker) VisitIdentifierExpr(n *ast.IdentifierExpr) {
	w.fire(Before, n)
	w.Walk(n.Name)
	w.Walk(n.Range)
	w.fire(After, n)
}

func (w *Walker) VisitRangeExpr(n *ast.RangeExpr) {
	w.fire(Before, n)
	w.Walk(n.Hi)
	w.Walk(n.Lo)
	w.fire(After, n)
}

func (w *Walker) VisitParenExpr(n *ast.ParenExpr) {
	w.fire(Before, n)
	w.Walk(n.Inner)
	w.fire(After, n)
}
