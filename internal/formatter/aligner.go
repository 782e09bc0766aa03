// Package formatter implements the two-phase column-aligning pretty
// printer from spec.md §4.5/§4.6: an Aligner that measures how much
// padding every token needs to line up in its declaration group, and an
// Emitter that re-walks the token stream applying that padding. Grounded
// on original_source/crates/formatter/src/aligner.rs (the Align
// accumulator: start_item/token/space/dummy_token/finish_item/
// finish_group, and the four align_kind categories) translated from the
// Rust VerylWalker's per-grammar-rule recursion into Go methods over
// internal/ast, and on the teacher's internal/prettyprinter.CodePrinter
// (bytes.Buffer-based, column-tracking printer) for the emission half.
package formatter

import (
	"github.com/veryl-lang/veryl-go/internal/ast"
	"github.com/veryl-lang/veryl-go/internal/token"
	"golang.org/x/text/width"
)

// category indexes the four independent alignment accumulators (spec.md
// §4.5).
type category int

const (
	catIdentifier category = iota
	catType
	catExpression
	catWidth
	numCategories
)

// visualWidth measures a token's on-screen column width rather than its
// byte length: full-width CJK characters (legal in Veryl identifiers and
// string literals) occupy two columns. Grounded on golang.org/x/text/width,
// the same library the rest of the pack reaches for wherever display width
// matters.
func visualWidth(s string) int {
	w := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			w += 2
		default:
			w++
		}
	}
	return w
}

// align is a single category's running measurement state, a direct
// translation of aligner.rs's Align struct.
type align struct {
	maxWidth int
	width    int
	line     int
	rest     []alignEntry
	addition map[token.Pos]int
	lastTok  token.Token
	hasLast  bool
}

type alignEntry struct {
	pos   token.Pos
	width int
}

func newAlign() *align {
	return &align{addition: make(map[token.Pos]int)}
}

func (a *align) startItem() {
	a.width = 0
}

func (a *align) token(t token.Token) {
	a.width += visualWidth(t.Lexeme)
	a.lastTok = t
	a.hasLast = true
}

func (a *align) dummyToken(t token.Token) {
	a.lastTok = t
	a.hasLast = true
}

func (a *align) space(n int) {
	a.width += n
}

// finishItem closes the current item, rolling it into the open group
// (opening a new group first if the source left a blank line between this
// item and the previous one).
func (a *align) finishItem() {
	if !a.hasLast {
		return
	}
	t := a.lastTok
	a.hasLast = false
	if t.Pos.Line-a.line > 1 {
		a.finishGroup()
	}
	if a.width > a.maxWidth {
		a.maxWidth = a.width
	}
	a.line = t.Pos.Line
	a.rest = append(a.rest, alignEntry{pos: t.Pos, width: a.width})
	a.width = 0
}

// finishGroup commits the additions for every item seen since the last
// group break, then resets for the next group.
func (a *align) finishGroup() {
	for _, e := range a.rest {
		a.addition[e.pos] += a.maxWidth - e.width
	}
	a.rest = nil
	a.maxWidth = 0
}

// Aligner measures padding for a whole file. Unlike the analyzer passes it
// does not run through internal/walker: alignment needs to interleave
// operands with their separating operator tokens (infix order), which
// doesn't fit the walker's two-point Before/After protocol, so the Aligner
// hand-recurses every declaration and expression shape directly, the same
// way aligner.rs hand-recurses its own twelve-level expression ladder
// instead of going through a generic dispatcher.
type Aligner struct {
	aligns [numCategories]*align
}

// NewAligner returns an empty Aligner.
func NewAligner() *Aligner {
	a := &Aligner{}
	for i := range a.aligns {
		a.aligns[i] = newAlign()
	}
	return a
}

// Align measures root and returns the accumulated padding additions,
// keyed by the source position of the token that needs it.
func (a *Aligner) Align(root *ast.Veryl) map[token.Pos]int {
	for _, d := range root.Descriptions {
		switch desc := d.(type) {
		case *ast.ModuleDeclaration:
			a.moduleDeclaration(desc)
		case *ast.InterfaceDeclaration:
			a.interfaceDeclaration(desc)
		}
	}
	for _, cat := range a.aligns {
		cat.finishGroup()
	}

	out := make(map[token.Pos]int)
	for _, cat := range a.aligns {
		for pos, w := range cat.addition {
			out[pos] += w
		}
	}
	return out
}

func (a *Aligner) identifier(id *ast.Identifier) {
	if id == nil {
		return
	}
	ia := a.aligns[catIdentifier]
	ia.startItem()
	ia.token(id.Tok)
	ia.finishItem()
}

func (a *Aligner) typeExpr(t *ast.TypeExpr) {
	if t == nil {
		return
	}
	ta := a.aligns[catType]
	ta.startItem()
	ta.token(t.Tok)
	ta.finishItem()

	wa := a.aligns[catWidth]
	wa.startItem()
	if t.Width == nil {
		wa.dummyToken(t.Tok)
	} else {
		a.widthClause(t.Width)
	}
	wa.finishItem()
}

func (a *Aligner) widthClause(w *ast.Width) {
	wa := a.aligns[catWidth]
	ea := a.aligns[catExpression]
	wa.token(w.Tok)
	ea.token(w.Tok)
	a.expr(w.Hi)
	// The ':' in [hi:lo] isn't captured as its own token in this AST (only
	// Hi/Lo expressions and the bracket are), so the low bound is measured
	// immediately after the high one with no separate colon token to align.
	a.expr(w.Lo)
}

// expr measures an expression into both EXPRESSION and WIDTH, matching
// aligner.rs's factor()/expression0N() chain, which feeds every operator
// and operand into both categories identically.
func (a *Aligner) expr(e ast.Expression) {
	if e == nil {
		return
	}
	ea := a.aligns[catExpression]
	wa := a.aligns[catWidth]
	switch n := e.(type) {
	case *ast.NumberLit:
		ea.token(n.Tok)
		wa.token(n.Tok)
	case *ast.IdentifierExpr:
		ea.token(n.Name.Tok)
		wa.token(n.Name.Tok)
		if n.Range != nil {
			ea.token(n.Range.Tok)
			wa.token(n.Range.Tok)
			a.expr(n.Range.Hi)
			a.expr(n.Range.Lo)
		}
	case *ast.ParenExpr:
		ea.token(n.Tok)
		wa.token(n.Tok)
		a.expr(n.Inner)
	case *ast.UnaryExpr:
		ea.token(n.Tok)
		wa.token(n.Tok)
		a.expr(n.Operand)
	case *ast.BinaryExpr:
		a.expr(n.Left)
		ea.space(1)
		wa.space(1)
		ea.token(n.Tok)
		wa.token(n.Tok)
		ea.space(1)
		wa.space(1)
		a.expr(n.Right)
	}
}

func (a *Aligner) moduleDeclaration(m *ast.ModuleDeclaration) {
	for _, p := range m.Parameters {
		a.parameterDecl(p)
	}
	for _, p := range m.Ports {
		a.portDecl(p)
	}
	for _, item := range m.Items {
		a.moduleItem(item)
	}
}

func (a *Aligner) interfaceDeclaration(i *ast.InterfaceDeclaration) {
	for _, p := range i.Parameters {
		a.parameterDecl(p)
	}
	for _, item := range i.Items {
		a.moduleItem(item)
	}
}

func (a *Aligner) portDecl(p *ast.PortDecl) {
	a.identifier(p.Name)
	a.typeExpr(p.Type)
}

func (a *Aligner) parameterDecl(p *ast.ParameterDecl) {
	a.identifier(p.Name)
	a.typeExpr(p.Type)
	if p.Default != nil {
		ea := a.aligns[catExpression]
		ea.startItem()
		a.expr(p.Default)
		ea.finishItem()
	}
}

func (a *Aligner) localparamDecl(l *ast.LocalparamDecl) {
	a.identifier(l.Name)
	a.typeExpr(l.Type)
	ea := a.aligns[catExpression]
	ea.startItem()
	a.expr(l.Value)
	ea.finishItem()
}

func (a *Aligner) variableDecl(v *ast.VariableDecl) {
	a.identifier(v.Name)
	a.typeExpr(v.Type)
}

func (a *Aligner) assignDecl(ad *ast.AssignDecl) {
	a.assignLike(ad.LHS, ad.RHS)
}

// assignLike measures one LHS/RHS pair as a single alignment item, shared by
// a top-level assign declaration and an assignment statement inside an
// always_comb body.
func (a *Aligner) assignLike(lhs, rhs ast.Expression) {
	ea := a.aligns[catExpression]
	ea.startItem()
	a.expr(lhs)
	a.expr(rhs)
	ea.finishItem()
}

// alwaysCombDecl measures the assignment statements directly inside a
// combinational block the same way assignDecl measures a top-level assign,
// per aligner.rs's always_comb_declaration/assignment_statement handling. A
// nested if_statement is a no-op here too, matching aligner.rs's
// if_statement, which doesn't recurse into alignment for conditional bodies.
func (a *Aligner) alwaysCombDecl(ac *ast.AlwaysCombDecl) {
	for _, stmt := range ac.Body {
		if s, ok := stmt.(*ast.AssignStatement); ok {
			a.assignLike(s.LHS, s.RHS)
		}
	}
}

func (a *Aligner) moduleItem(item ast.ModuleItem) {
	switch it := item.(type) {
	case *ast.VariableDecl:
		a.variableDecl(it)
	case *ast.ParameterDecl:
		a.parameterDecl(it)
	case *ast.LocalparamDecl:
		a.localparamDecl(it)
	case *ast.AssignDecl:
		a.assignDecl(it)
	case *ast.AlwaysCombDecl:
		a.alwaysCombDecl(it)
	case *ast.ModportDecl:
		for _, m := range it.Members {
			a.identifier(m.Name)
		}
	case *ast.FunctionDecl:
		for _, p := range it.Parameters {
			a.parameterDecl(p)
		}
	}
}
