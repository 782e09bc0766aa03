package parser

import (
	"github.com/veryl-lang/veryl-go/internal/ast"
	"github.com/veryl-lang/veryl-go/internal/token"
)

// parseModuleDeclaration parses:
//
//	module IDENT { item* }
//
// where item is one of a port, parameter, localparam, variable, assign,
// always_ff/always_comb, or instantiation. Ports are collected onto
// ModuleDeclaration.Ports rather than Items, matching spec.md §3.1's model
// of a module carrying a distinct port list even though the concrete
// surface syntax writes ports inline with everything else in the body.
func (p *Parser) parseModuleDeclaration() *ast.ModuleDeclaration {
	m := &ast.ModuleDeclaration{Tok: p.cur}
	p.next() // 'module'
	m.Name = p.parseIdentifier()
	if p.curIs(token.HASH) {
		m.Parameters = p.parseParameterHeader()
	}
	p.expect(token.LBRACE)
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		switch p.cur.Kind {
		case token.INPUT, token.OUTPUT, token.INOUT:
			m.Ports = append(m.Ports, p.parsePortDecl())
		default:
			if item := p.parseModuleItem(); item != nil {
				m.Items = append(m.Items, item)
			} else {
				p.next()
			}
		}
	}
	p.expect(token.RBRACE)
	return m
}

// parseInterfaceDeclaration parses `interface IDENT { item* }`. Interfaces
// accept the same body items as a module (modport declarations included)
// except port declarations, which are reported as unexpected tokens here.
func (p *Parser) parseInterfaceDeclaration() *ast.InterfaceDeclaration {
	i := &ast.InterfaceDeclaration{Tok: p.cur}
	p.next() // 'interface'
	i.Name = p.parseIdentifier()
	if p.curIs(token.HASH) {
		i.Parameters = p.parseParameterHeader()
	}
	p.expect(token.LBRACE)
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if item := p.parseModuleItem(); item != nil {
			i.Items = append(i.Items, item)
		} else {
			p.next()
		}
	}
	p.expect(token.RBRACE)
	return i
}

// parseParameterHeader parses the optional `#( IDENT : type (= expr)?, ... )`
// header that may follow a module/interface name.
func (p *Parser) parseParameterHeader() []*ast.ParameterDecl {
	p.next() // '#'
	p.expect(token.LPAREN)
	var params []*ast.ParameterDecl
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		tok := p.cur
		name := p.parseIdentifier()
		p.expect(token.COLON)
		ty := p.parseTypeExpr()
		var def ast.Expression
		if p.curIs(token.EQ) {
			p.next()
			def = p.parseExpression(precLowest)
		}
		params = append(params, &ast.ParameterDecl{Tok: tok, Name: name, Type: ty, Default: def})
		if p.curIs(token.COMMA) {
			p.next()
		} else {
			break
		}
	}
	p.expect(token.RPAREN)
	return params
}

// parseModuleItem dispatches on the current token to one of the
// module/interface body item productions. Returns nil (without consuming
// anything) when cur doesn't start any known item, so the caller can skip
// and report.
func (p *Parser) parseModuleItem() ast.ModuleItem {
	switch p.cur.Kind {
	case token.PARAMETER:
		return p.parseParameterDecl()
	case token.LOCALPARAM:
		return p.parseLocalparamDecl()
	case token.ASSIGN:
		return p.parseAssignDecl()
	case token.ALWAYS_FF:
		return p.parseAlwaysFfDecl()
	case token.ALWAYS_COMB:
		return p.parseAlwaysCombDecl()
	case token.MODPORT:
		return p.parseModportDecl()
	case token.FUNCTION:
		return p.parseFunctionDecl()
	case token.LOGIC, token.BIT, token.IDENT:
		// Ambiguous between a variable decl (`TYPE IDENT ;`) and an
		// instantiation (`IDENT : TYPE (...) ;`); the colon after the
		// second identifier disambiguates.
		if p.curIs(token.IDENT) && p.peekIs(token.COLON) {
			return p.parseInstDeclaration()
		}
		return p.parseVariableDecl()
	default:
		p.errorf(p.cur.Pos, "unexpected token %q in module body", p.cur.Lexeme)
		return nil
	}
}

func (p *Parser) parsePortDecl() *ast.PortDecl {
	tok := p.cur
	var dir ast.Direction
	switch p.cur.Kind {
	case token.INPUT:
		dir = ast.DirInput
	case token.OUTPUT:
		dir = ast.DirOutput
	case token.INOUT:
		dir = ast.DirInout
	}
	p.next()
	name := p.parseIdentifier()
	p.expect(token.COLON)
	ty := p.parseTypeExpr()
	p.expect(token.SEMICOLON)
	return &ast.PortDecl{Tok: tok, Direction: dir, Name: name, Type: ty}
}

func (p *Parser) parseParameterDecl() *ast.ParameterDecl {
	tok := p.cur
	p.next() // 'parameter'
	name := p.parseIdentifier()
	p.expect(token.COLON)
	ty := p.parseTypeExpr()
	var def ast.Expression
	if p.curIs(token.EQ) {
		p.next()
		def = p.parseExpression(precLowest)
	}
	p.expect(token.SEMICOLON)
	return &ast.ParameterDecl{Tok: tok, Name: name, Type: ty, Default: def}
}

func (p *Parser) parseLocalparamDecl() *ast.LocalparamDecl {
	tok := p.cur
	p.next() // 'localparam'
	name := p.parseIdentifier()
	p.expect(token.COLON)
	ty := p.parseTypeExpr()
	p.expect(token.EQ)
	val := p.parseExpression(precLowest)
	p.expect(token.SEMICOLON)
	return &ast.LocalparamDecl{Tok: tok, Name: name, Type: ty, Value: val}
}

func (p *Parser) parseVariableDecl() *ast.VariableDecl {
	ty := p.parseTypeExpr()
	name := p.parseIdentifier()
	p.expect(token.SEMICOLON)
	return &ast.VariableDecl{Tok: ty.Tok, Name: name, Type: ty}
}

func (p *Parser) parseAssignDecl() *ast.AssignDecl {
	tok := p.cur
	p.next() // 'assign'
	lhs := p.parseExpression(precLowest)
	p.expect(token.EQ)
	rhs := p.parseExpression(precLowest)
	p.expect(token.SEMICOLON)
	return &ast.AssignDecl{Tok: tok, LHS: lhs, RHS: rhs}
}

// parseAlwaysFfDecl parses:
//
//	always_ff (posedge clk [, negedge rst]) { stmt* }
func (p *Parser) parseAlwaysFfDecl() *ast.AlwaysFfDecl {
	a := &ast.AlwaysFfDecl{Tok: p.cur}
	p.next() // 'always_ff'
	p.expect(token.LPAREN)
	a.ClockEdge, a.Clock = p.parseEdgeSpec()
	if p.curIs(token.COMMA) {
		p.next()
		a.ResetEdge, a.Reset = p.parseEdgeSpec()
	}
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	a.Body = p.parseStatementList()
	p.expect(token.RBRACE)
	return a
}

func (p *Parser) parseEdgeSpec() (ast.EdgeKind, *ast.Identifier) {
	var edge ast.EdgeKind
	switch p.cur.Kind {
	case token.POSEDGE:
		edge = ast.EdgePos
	case token.NEGEDGE:
		edge = ast.EdgeNeg
	default:
		p.errorf(p.cur.Pos, "expected 'posedge' or 'negedge', found %q", p.cur.Lexeme)
	}
	p.next()
	return edge, p.parseIdentifier()
}

func (p *Parser) parseAlwaysCombDecl() *ast.AlwaysCombDecl {
	a := &ast.AlwaysCombDecl{Tok: p.cur}
	p.next() // 'always_comb'
	p.expect(token.LBRACE)
	a.Body = p.parseStatementList()
	p.expect(token.RBRACE)
	return a
}

// parseModportDecl parses `modport IDENT { (input|output|inout) IDENT ; ... }`.
func (p *Parser) parseModportDecl() *ast.ModportDecl {
	m := &ast.ModportDecl{Tok: p.cur}
	p.next() // 'modport'
	m.Name = p.parseIdentifier()
	p.expect(token.LBRACE)
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		tok := p.cur
		var dir ast.Direction
		switch p.cur.Kind {
		case token.INPUT:
			dir = ast.DirInput
		case token.OUTPUT:
			dir = ast.DirOutput
		case token.INOUT:
			dir = ast.DirInout
		default:
			p.errorf(p.cur.Pos, "expected a direction, found %q", p.cur.Lexeme)
			p.next()
			continue
		}
		p.next()
		name := p.parseIdentifier()
		p.expect(token.SEMICOLON)
		m.Members = append(m.Members, &ast.ModportMember{Tok: tok, Name: name, Direction: dir})
	}
	p.expect(token.RBRACE)
	return m
}

// parseFunctionDecl parses `function IDENT ( IDENT : type, ... ) (-> type)? { stmt* }`.
func (p *Parser) parseFunctionDecl() *ast.FunctionDecl {
	f := &ast.FunctionDecl{Tok: p.cur}
	p.next() // 'function'
	f.Name = p.parseIdentifier()
	p.expect(token.LPAREN)
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		tok := p.cur
		name := p.parseIdentifier()
		p.expect(token.COLON)
		ty := p.parseTypeExpr()
		f.Parameters = append(f.Parameters, &ast.ParameterDecl{Tok: tok, Name: name, Type: ty})
		if p.curIs(token.COMMA) {
			p.next()
		} else {
			break
		}
	}
	p.expect(token.RPAREN)
	if p.curIs(token.MINUS) && p.peekIs(token.GT) {
		p.next()
		p.next()
		f.ReturnType = p.parseTypeExpr()
	}
	p.expect(token.LBRACE)
	f.Body = p.parseStatementList()
	p.expect(token.RBRACE)
	return f
}

// parseInstDeclaration parses `IDENT : scoped.name (connections)? ;`. The
// `(...)` list is optional: HasConnections records whether it was present,
// and a present list may have zero entries. Either way, an absent or empty
// list leaves Connections empty.
func (p *Parser) parseInstDeclaration() *ast.InstDeclaration {
	instName := p.parseIdentifier()
	tok := instName.Tok
	p.expect(token.COLON)
	moduleName := p.parseScopedIdentifier()
	inst := &ast.InstDeclaration{Tok: tok, ModuleName: moduleName, InstanceName: instName}
	if p.curIs(token.LPAREN) {
		p.next()
		inst.HasConnections = true
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			inst.Connections = append(inst.Connections, p.parsePortConnection())
			if p.curIs(token.COMMA) {
				p.next()
			} else {
				break
			}
		}
		p.expect(token.RPAREN)
	}
	p.expect(token.SEMICOLON)
	return inst
}

func (p *Parser) parsePortConnection() *ast.PortConnection {
	tok := p.expect(token.DOT)
	name := p.parseIdentifier()
	p.expect(token.LPAREN)
	val := p.parseExpression(precLowest)
	p.expect(token.RPAREN)
	return &ast.PortConnection{Tok: tok, Name: name, Value: val}
}

func (p *Parser) parseScopedIdentifier() *ast.ScopedIdentifier {
	s := &ast.ScopedIdentifier{Parts: []*ast.Identifier{p.parseIdentifier()}}
	for p.curIs(token.DOT) {
		p.next()
		s.Parts = append(s.Parts, p.parseIdentifier())
	}
	return s
}

// parseTypeExpr parses a base type name (logic/bit/user-defined) plus an
// optional packed width.
func (p *Parser) parseTypeExpr() *ast.TypeExpr {
	tok := p.cur
	name := tok.Lexeme
	if p.curIs(token.LOGIC) || p.curIs(token.BIT) || p.curIs(token.IDENT) {
		p.next()
	} else {
		p.errorf(tok.Pos, "expected a type, found %q", tok.Lexeme)
	}
	ty := &ast.TypeExpr{Tok: tok, Name: name}
	if p.curIs(token.LBRACKET) {
		ty.Width = p.parseWidth()
	}
	return ty
}

func (p *Parser) parseWidth() *ast.Width {
	tok := p.cur
	p.next() // '['
	hi := p.parseExpression(precLowest)
	p.expect(token.COLON)
	lo := p.parseExpression(precLowest)
	p.expect(token.RBRACKET)
	return &ast.Width{Tok: tok, Hi: hi, Lo: lo}
}
