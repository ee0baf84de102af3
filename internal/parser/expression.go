package parser

import (
	"fmt"
	"strconv"

	"golang.org/x/text/unicode/norm"

	"storyscript/internal/ast"
	"storyscript/internal/diag"
	"storyscript/internal/token"
)

// parseExpr — вход в разбор выражения: начинаем с самого низкого приоритета.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(precAssignment)
}

// parseBinaryExpr — precedence climbing по таблице из op_table.go.
// Присваивание правоассоциативно; его цель должна быть переменной.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		prec, rightAssoc := binaryOperatorPrec(p.current.Kind)
		if prec < minPrec {
			break
		}
		op := p.advance()

		nextMin := prec + 1
		if rightAssoc {
			nextMin = prec
		}
		right, ok := p.parseBinaryExpr(nextMin)
		if !ok {
			return ast.NoExprID, false
		}

		if op.Kind == token.Assign {
			if _, isVar := p.arenas.Exprs.Variable(left); !isVar {
				// цель остаётся левой частью, значение отбрасывается;
				// ошибка на '=', а не на токене после правой части
				p.errorAt(op, diag.SynInvalidAssignTarget, "Invalid assignment target.")
				continue
			}
		}

		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, left, op, right)
	}
	return left, true
}

// parseUnaryExpr: ('-' | 'not') unary | postfix
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	if p.check(token.Minus) || p.check(token.KwNot) {
		op := p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		span := op.Span.Cover(p.arenas.Exprs.Get(operand).Span)
		return p.arenas.Exprs.NewUnary(span, op, operand), true
	}
	return p.parsePostfixExpr()
}

// parsePostfixExpr обрабатывает вызовы и доступ к свойству после primary.
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		switch {
		case p.match(token.LParen):
			if expr, ok = p.finishCall(expr); !ok {
				return ast.NoExprID, false
			}
		case p.match(token.Dot):
			dot := p.previous
			if !p.check(token.Ident) {
				name := p.consume(token.Ident, "Expected property name after '.'.")
				expr = p.arenas.Exprs.NewVariable(name.Span, name)
				continue
			}
			name := p.advance()
			base := p.arenas.Exprs.Get(expr).Span
			p.info(diag.SynPropertyBaseDropped, name.Span,
				fmt.Sprintf("property access '.%s' is read as a plain reference to '%s'", name.Text, name.Text),
				base.Cover(dot.Span), "this base expression is discarded")
			expr = p.arenas.Exprs.NewVariable(name.Span, name)
		default:
			return expr, true
		}
	}
}

// finishCall: '(' уже съеден; аргументы через запятую до ')'.
func (p *Parser) finishCall(callee ast.ExprID) (ast.ExprID, bool) {
	var args []ast.ExprID
	if !p.check(token.RParen) {
		for {
			arg, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			args = append(args, arg)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren := p.consume(token.RParen, "Expected ')' after arguments.")
	span := p.arenas.Exprs.Get(callee).Span.Cover(p.previous.Span)
	return p.arenas.Exprs.NewCall(span, callee, paren, args), true
}

// parsePrimaryExpr — литералы, идентификаторы и скобки.
// Это единственное место, где ошибка прерывает разбор конструкции целиком.
func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	switch p.current.Kind {
	case token.KwTrue, token.KwFalse:
		tok := p.advance()
		return p.arenas.Exprs.NewBool(tok.Span, tok.Kind == token.KwTrue), true

	case token.NumberLit:
		tok := p.advance()
		// лексер пропускает только цифры и одну точку, так что ошибка тут одна: ErrRange
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			p.errorAt(tok, diag.SynNumberOutOfRange, "Number literal out of range.")
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewNumber(tok.Span, v), true

	case token.StringLit:
		tok := p.advance()
		return p.arenas.Exprs.NewString(tok.Span, unquote(tok.Text)), true

	case token.Ident:
		tok := p.advance()
		return p.arenas.Exprs.NewVariable(tok.Span, tok), true

	case token.LParen:
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		p.consume(token.RParen, "Expected ')' after expression.")
		return inner, true

	default:
		p.errorAt(p.current, diag.SynExpectExpression, "Expected expression.")
		return ast.NoExprID, false
	}
}

// unquote снимает кавычки и приводит текст к NFC; escape-последовательностей нет.
func unquote(text string) string {
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	return norm.NFC.String(text)
}
