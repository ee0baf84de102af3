package dialect

import (
	"fmt"

	"storyscript/internal/token"
)

// ObserveTokenPair records token-pattern evidence, if any, using a sliding 2-token
// window. The caller is responsible for feeding tokens in source order.
func ObserveTokenPair(e *Evidence, prev, tok token.Token) {
	if e == nil {
		return
	}

	adjacent := prev.Span.File == tok.Span.File && prev.Span.End == tok.Span.Start

	// Ink divert: -> knot
	if prev.Kind == token.Minus && tok.Kind == token.Gt && adjacent {
		e.Add(Hint{
			Dialect: Ink,
			Score:   5,
			Reason:  "ink divert `->`",
			Span:    prev.Span.Cover(tok.Span),
		})
	}

	// JavaScript arrow function: =>
	if prev.Kind == token.Assign && tok.Kind == token.Gt && adjacent {
		e.Add(Hint{
			Dialect: JavaScript,
			Score:   5,
			Reason:  "javascript arrow function `=>`",
			Span:    prev.Span.Cover(tok.Span),
		})
	}

	// `===` is an Ink knot header and JavaScript strict equality
	if prev.Kind == token.EqEq && tok.Kind == token.Assign && adjacent {
		sp := prev.Span.Cover(tok.Span)
		e.Add(Hint{Dialect: Ink, Score: 2, Reason: "ink knot header `===`", Span: sp})
		e.Add(Hint{Dialect: JavaScript, Score: 2, Reason: "javascript strict equality `===`", Span: sp})
	}

	// && / ||
	if prev.Kind == token.Invalid && tok.Kind == token.Invalid && adjacent && prev.Text == tok.Text {
		switch prev.Text {
		case "&", "|":
			e.Add(Hint{
				Dialect: JavaScript,
				Score:   3,
				Reason:  fmt.Sprintf("javascript logical operator `%s%s`", prev.Text, tok.Text),
				Span:    prev.Span.Cover(tok.Span),
			})
		}
	}

	// Ink logic line: ~ expr
	if tok.Kind == token.Invalid && tok.Text == "~" {
		e.Add(Hint{Dialect: Ink, Score: 2, Reason: "ink logic line `~`", Span: tok.Span})
	}

	// legacy goto names a room directly: goto kitchen
	if prev.Kind == token.KwGoto && tok.Kind == token.Ident {
		e.Add(Hint{
			Dialect: Legacy,
			Score:   4,
			Reason:  fmt.Sprintf("legacy `goto %s` without parentheses", tok.Text),
			Span:    prev.Span.Cover(tok.Span),
		})
	}

	// Python block header: else:
	if prev.Kind == token.KwElse && tok.Kind == token.Colon {
		e.Add(Hint{
			Dialect: Python,
			Score:   3,
			Reason:  "python block colon `else:`",
			Span:    prev.Span.Cover(tok.Span),
		})
	}
}
