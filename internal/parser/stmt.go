package parser

import (
	"storyscript/internal/ast"
	"storyscript/internal/source"
	"storyscript/internal/token"
)

// parseStatement — диспетчер по первому токену оператора.
func (p *Parser) parseStatement() (ast.StmtID, bool) {
	switch {
	case p.match(token.KwIf):
		return p.parseIfStmt()
	case p.match(token.KwWhile):
		return p.parseWhileStmt()
	case p.match(token.KwVar):
		return p.parseVarStmt()
	case p.match(token.LBrace):
		return p.parseBlock(p.previous.Span)
	case p.match(token.KwReturn):
		return p.parseReturnStmt()
	case p.match(token.KwSay):
		return p.parseSayStmt()
	case p.match(token.KwGoto):
		return p.parseGotoStmt()
	default:
		return p.parseExprStmt()
	}
}

// parseBlock разбирает операторы до '}'; открывающая скобка уже съедена
// (или отсутствовала, и ошибка уже записана).
func (p *Parser) parseBlock(start source.Span) (ast.StmtID, bool) {
	var stmts []ast.StmtID
	for !p.check(token.RBrace) && !p.check(token.EOF) {
		st, ok := p.parseStatement()
		if !ok {
			return ast.NoStmtID, false
		}
		stmts = append(stmts, st)
	}
	p.consume(token.RBrace, "Expected '}' after block.")
	return p.arenas.Stmts.NewBlock(p.spanFrom(start), stmts), true
}

// parseIfStmt: if '(' expr ')' stmt [else stmt]
func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	start := p.previous.Span
	p.consume(token.LParen, "Expected '(' after 'if'.")
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	p.consume(token.RParen, "Expected ')' after if condition.")

	then, ok := p.parseStatement()
	if !ok {
		return ast.NoStmtID, false
	}
	els := ast.NoStmtID
	if p.match(token.KwElse) {
		if els, ok = p.parseStatement(); !ok {
			return ast.NoStmtID, false
		}
	}
	return p.arenas.Stmts.NewIf(p.spanFrom(start), cond, then, els), true
}

// parseWhileStmt: while '(' expr ')' stmt
func (p *Parser) parseWhileStmt() (ast.StmtID, bool) {
	start := p.previous.Span
	p.consume(token.LParen, "Expected '(' after 'while'.")
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	p.consume(token.RParen, "Expected ')' after while condition.")

	body, ok := p.parseStatement()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewWhile(p.spanFrom(start), cond, body), true
}

// parseVarStmt: var name [= expr] ';'
func (p *Parser) parseVarStmt() (ast.StmtID, bool) {
	start := p.previous.Span
	name := p.consume(token.Ident, "Expected variable name.")

	init := ast.NoExprID
	if p.match(token.Assign) {
		var ok bool
		if init, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	p.consume(token.Semicolon, "Expected ';' after variable declaration.")
	return p.arenas.Stmts.NewVar(p.spanFrom(start), name, init), true
}

// parseReturnStmt: return [expr] ';'
func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	keyword := p.previous
	value := ast.NoExprID
	if !p.check(token.Semicolon) {
		var ok bool
		if value, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	p.consume(token.Semicolon, "Expected ';' after return value.")
	return p.arenas.Stmts.NewReturn(p.spanFrom(keyword.Span), keyword, value), true
}

// parseSayStmt: say expr ';'
func (p *Parser) parseSayStmt() (ast.StmtID, bool) {
	start := p.previous.Span
	msg, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	p.consume(token.Semicolon, "Expected ';' after message.")
	return p.arenas.Stmts.NewSay(p.spanFrom(start), msg), true
}

// parseGotoStmt: goto '(' expr ')' ';'
func (p *Parser) parseGotoStmt() (ast.StmtID, bool) {
	start := p.previous.Span
	p.consume(token.LParen, "Expected '(' after 'goto'.")
	dest, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	p.consume(token.RParen, "Expected ')' after goto destination.")
	p.consume(token.Semicolon, "Expected ';' after goto statement.")
	return p.arenas.Stmts.NewGoto(p.spanFrom(start), dest), true
}

func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	start := p.current.Span
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	p.consume(token.Semicolon, "Expected ';' after expression.")
	return p.arenas.Stmts.NewExpr(p.spanFrom(start), expr), true
}
