package parser

import (
	"storyscript/internal/ast"
	"storyscript/internal/diag"
	"storyscript/internal/token"
)

// parseRoom разбирает комнату; ключевое слово 'room' уже съедено.
//
//	room Name { prop: expr; item Key { ... } when entered { ... } }
func (p *Parser) parseRoom() (ast.DeclID, bool) {
	start := p.previous.Span
	name := p.consume(token.Ident, "Expected room name.")
	p.consume(token.LBrace, "Expected '{' after room name.")

	var (
		props  []ast.Property
		items  []ast.DeclID
		events []ast.Event
	)
	for !p.check(token.RBrace) && !p.check(token.EOF) {
		switch {
		case p.match(token.KwItem):
			item, ok := p.parseItem()
			if !ok {
				return ast.NoDeclID, false
			}
			items = append(items, item)
		case p.match(token.KwWhen):
			ev, ok := p.parseEvent()
			if !ok {
				return ast.NoDeclID, false
			}
			events = append(events, ev)
		default:
			prop, ok := p.parseProperty()
			if !ok {
				return ast.NoDeclID, false
			}
			props = append(props, prop)
		}
	}

	p.consume(token.RBrace, "Expected '}' after room body.")
	return p.arenas.Decls.NewRoom(p.spanFrom(start), name, props, items, events), true
}

// parseItem разбирает предмет внутри комнаты; 'item' уже съеден.
func (p *Parser) parseItem() (ast.DeclID, bool) {
	start := p.previous.Span
	name := p.consume(token.Ident, "Expected item name.")
	p.consume(token.LBrace, "Expected '{' after item name.")

	var props []ast.Property
	for !p.check(token.RBrace) && !p.check(token.EOF) {
		prop, ok := p.parseProperty()
		if !ok {
			return ast.NoDeclID, false
		}
		props = append(props, prop)
	}

	p.consume(token.RBrace, "Expected '}' after item body.")
	return p.arenas.Decls.NewItem(p.spanFrom(start), name, props), true
}

// parseProperty: name ':' expr ';'
func (p *Parser) parseProperty() (ast.Property, bool) {
	name := p.consume(token.Ident, "Expected property name.")
	p.consume(token.Colon, "Expected ':' after property name.")
	value, ok := p.parseExpr()
	if !ok {
		return ast.Property{}, false
	}
	p.consume(token.Semicolon, "Expected ';' after property value.")
	return ast.Property{Name: name, Value: value}, true
}

// parseEvent: 'when' уже съеден, дальше имя события и блок.
// 'entered' — ключевое слово, поэтому принимаем его наравне с идентификатором.
func (p *Parser) parseEvent() (ast.Event, bool) {
	var name token.Token
	if p.check(token.Ident) || p.check(token.KwEntered) {
		name = p.advance()
	} else {
		p.errorAt(p.current, diag.SynUnexpectedToken, "Expected event type after 'when'.")
		name = p.current
	}
	p.consume(token.LBrace, "Expected '{' after event type.")
	body, ok := p.parseBlock(p.previous.Span)
	if !ok {
		return ast.Event{}, false
	}
	return ast.Event{Name: name, Body: body}, true
}

// parseFunction: 'function' уже съеден.
//
//	function name(a, b) { ... }
func (p *Parser) parseFunction() (ast.StmtID, bool) {
	start := p.previous.Span
	name := p.consume(token.Ident, "Expected function name.")
	p.consume(token.LParen, "Expected '(' after function name.")

	var params []token.Token
	if !p.check(token.RParen) {
		for {
			params = append(params, p.consume(token.Ident, "Expected parameter name."))
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RParen, "Expected ')' after parameters.")

	p.consume(token.LBrace, "Expected '{' before function body.")
	body, ok := p.parseBlock(p.previous.Span)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFunction(p.spanFrom(start), name, params, body), true
}
