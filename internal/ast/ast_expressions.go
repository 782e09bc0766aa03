package ast

import "github.com/veryl-lang/veryl-go/internal/token"

// RangeExpr is the `[hi:lo]` or `[idx]` suffix on a referenced identifier
// (Factor = identifier[range…], spec.md §3.1). Lo is nil for a single-bit
// index.
type RangeExpr struct {
	Tok token.Token // the '[' token
	Hi  Expression
	Lo  Expression // optional
}

func (r *RangeExpr) TokenLiteral() string  { return r.Tok.Lexeme }
func (r *RangeExpr) GetToken() token.Token { return r.Tok }
func (r *RangeExpr) Accept(v Visitor)      { v.VisitRangeExpr(r) }

// NumberLit is an integer literal.
type NumberLit struct {
	Tok  token.Token
	Text string
}

func (n *NumberLit) TokenLiteral() string  { return n.Tok.Lexeme }
func (n *NumberLit) GetToken() token.Token { return n.Tok }
func (n *NumberLit) Accept(v Visitor)      { v.VisitNumberLit(n) }
func (n *NumberLit) expressionNode()       {}

// IdentifierExpr is a Factor referencing a name, with an optional bit/part
// range selection.
type IdentifierExpr struct {
	Name  *Identifier
	Range *RangeExpr // optional
}

func (i *IdentifierExpr) TokenLiteral() string  { return i.Name.Tok.Lexeme }
func (i *IdentifierExpr) GetToken() token.Token { return i.Name.Tok }
func (i *IdentifierExpr) Accept(v Visitor)      { v.VisitIdentifierExpr(i) }
func (i *IdentifierExpr) expressionNode()       {}

// ParenExpr is a parenthesized expression, the third Factor alternative.
type ParenExpr struct {
	Tok   token.Token // the '(' token
	Inner Expression
}

func (p *ParenExpr) TokenLiteral() string  { return p.Tok.Lexeme }
func (p *ParenExpr) GetToken() token.Token { return p.Tok }
func (p *ParenExpr) Accept(v Visitor)      { v.VisitParenExpr(p) }
func (p *ParenExpr) expressionNode()       {}

// UnaryExpr is a prefix operator applied to an operand (!, -, ~ …).
type UnaryExpr struct {
	Tok     token.Token
	Op      string
	Operand Expression
}

func (u *UnaryExpr) TokenLiteral() string  { return u.Tok.Lexeme }
func (u *UnaryExpr) GetToken() token.Token { return u.Tok }
func (u *UnaryExpr) Accept(v Visitor)      { v.VisitUnaryExpr(u) }
func (u *UnaryExpr) expressionNode()       {}

// BinaryExpr is one rung of the 12-level precedence ladder.
type BinaryExpr struct {
	Tok   token.Token // the operator token
	Op    string
	Left  Expression
	Right Expression
}

func (b *BinaryExpr) TokenLiteral() string  { return b.Tok.Lexeme }
func (b *BinaryExpr) GetToken() token.Token { return b.Tok }
func (b *BinaryExpr) Accept(v Visitor)      { v.VisitBinaryExpr(b) }
func (b *BinaryExpr) expressionNode()       {}
