package parser

import (
	"github.com/veryl-lang/veryl-go/internal/ast"
	"github.com/veryl-lang/veryl-go/internal/token"
)

// Precedence levels, lowest to highest. spec.md §3.1 describes a 12-level
// ladder; we collapse the levels this parser actually needs (logical,
// equality, relational, additive, multiplicative) into a standard
// precedence-climbing table, the same shape the ladder would reduce to if
// every rung were exercised.
const (
	precLowest = iota
	precOr
	precAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
)

var precedences = map[token.Kind]int{
	token.OROR:    precOr,
	token.ANDAND:  precAnd,
	token.EQEQ:    precEquality,
	token.NEQ:     precEquality,
	token.LT:      precRelational,
	token.GT:      precRelational,
	token.LE:      precRelational,
	token.GE:      precRelational,
	token.PLUS:    precAdditive,
	token.MINUS:   precAdditive,
	token.STAR:    precMultiplicative,
	token.SLASH:   precMultiplicative,
	token.PERCENT: precMultiplicative,
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.pk.Kind]; ok {
		return pr
	}
	return precLowest
}

// parseExpression implements precedence climbing: parse a prefix
// expression (unary or primary), then repeatedly fold in infix operators
// whose precedence exceeds minPrec.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parsePrefix()
	for {
		pr, ok := precedences[p.cur.Kind]
		if !ok || pr <= minPrec {
			return left
		}
		tok := p.cur
		op := tok.Lexeme
		p.next()
		right := p.parseExpression(pr)
		left = &ast.BinaryExpr{Tok: tok, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parsePrefix() ast.Expression {
	switch p.cur.Kind {
	case token.BANG, token.MINUS:
		tok := p.cur
		op := tok.Lexeme
		p.next()
		operand := p.parseUnaryOperand()
		return &ast.UnaryExpr{Tok: tok, Op: op, Operand: operand}
	default:
		return p.parseUnaryOperand()
	}
}

// parseUnaryOperand parses one rung below unary: a primary, which may
// itself start with another unary operator (`- -x`, rare but legal).
func (p *Parser) parseUnaryOperand() ast.Expression {
	switch p.cur.Kind {
	case token.BANG, token.MINUS:
		return p.parsePrefix()
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.cur.Kind {
	case token.INT:
		tok := p.cur
		p.next()
		return &ast.NumberLit{Tok: tok, Text: tok.Lexeme}
	case token.LPAREN:
		tok := p.cur
		p.next()
		inner := p.parseExpression(precLowest)
		p.expect(token.RPAREN)
		return &ast.ParenExpr{Tok: tok, Inner: inner}
	case token.IDENT:
		name := p.parseIdentifier()
		expr := &ast.IdentifierExpr{Name: name}
		if p.curIs(token.LBRACKET) {
			expr.Range = p.parseRangeExpr()
		}
		return expr
	default:
		p.errorf(p.cur.Pos, "expected an expression, found %q", p.cur.Lexeme)
		tok := p.cur
		p.next()
		return &ast.NumberLit{Tok: tok, Text: "0"}
	}
}

func (p *Parser) parseRangeExpr() *ast.RangeExpr {
	tok := p.cur
	p.next() // '['
	hi := p.parseExpression(precLowest)
	r := &ast.RangeExpr{Tok: tok, Hi: hi}
	if p.curIs(token.COLON) {
		p.next()
		r.Lo = p.parseExpression(precLowest)
	}
	p.expect(token.RBRACKET)
	return r
}

// parseStatementList parses statements until the enclosing '}'.
func (p *Parser) parseStatementList() []ast.Statement {
	var stmts []ast.Statement
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if s := p.parseStatement(); s != nil {
			stmts = append(stmts, s)
		} else {
			p.next()
		}
	}
	return stmts
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case token.IF:
		return p.parseIfStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.IDENT:
		return p.parseAssignStatement()
	default:
		p.errorf(p.cur.Pos, "unexpected token %q in statement", p.cur.Lexeme)
		return nil
	}
}

func (p *Parser) parseAssignStatement() *ast.AssignStatement {
	tok := p.cur
	lhs := p.parseExpression(precLowest)
	p.expect(token.EQ)
	rhs := p.parseExpression(precLowest)
	p.expect(token.SEMICOLON)
	return &ast.AssignStatement{Tok: tok, LHS: lhs, RHS: rhs}
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	s := &ast.IfStatement{Tok: p.cur}
	p.next() // 'if'
	p.expect(token.LPAREN)
	s.Cond = p.parseExpression(precLowest)
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	s.Then = p.parseStatementList()
	p.expect(token.RBRACE)
	if p.curIs(token.ELSE) {
		p.next()
		p.expect(token.LBRACE)
		s.Else = p.parseStatementList()
		p.expect(token.RBRACE)
	}
	return s
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	tok := p.cur
	p.next() // 'return'
	s := &ast.ReturnStatement{Tok: tok}
	if !p.curIs(token.SEMICOLON) {
		s.Value = p.parseExpression(precLowest)
	}
	p.expect(token.SEMICOLON)
	return s
}
