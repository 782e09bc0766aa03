package ast

import "github.com/veryl-lang/veryl-go/internal/token"

// AssignStatement is an assignment inside an always_ff/always_comb/function
// body.
type AssignStatement struct {
	Tok token.Token
	LHS Expression
	RHS Expression
}

func (a *AssignStatement) TokenLiteral() string  { return a.Tok.Lexeme }
func (a *AssignStatement) GetToken() token.Token { return a.Tok }
func (a *AssignStatement) Accept(v Visitor)      { v.VisitAssignStatement(a) }
func (a *AssignStatement) statementNode()        {}

// IfStatement is a conditional inside a procedural body.
type IfStatement struct {
	Tok  token.Token
	Cond Expression
	Then []Statement
	Else []Statement // optional
}

func (i *IfStatement) TokenLiteral() string  { return i.Tok.Lexeme }
func (i *IfStatement) GetToken() token.Token { return i.Tok }
func (i *IfStatement) Accept(v Visitor)      { v.VisitIfStatement(i) }
func (i *IfStatement) statementNode()        {}

// ReturnStatement returns a value from a function body.
type ReturnStatement struct {
	Tok   token.Token
	Value Expression // optional
}

func (r *ReturnStatement) TokenLiteral() string  { return r.Tok.Lexeme }
func (r *ReturnStatement) GetToken() token.Token { return r.Tok }
func (r *ReturnStatement) Accept(v Visitor)      { v.VisitReturnStatement(r) }
func (r *ReturnStatement) statementNode()        {}
