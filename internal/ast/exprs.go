package ast

import (
	"storyscript/internal/source"
	"storyscript/internal/token"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena     *Arena[Expr]
	Literals  *Arena[ExprLiteralData]
	Variables *Arena[ExprVariableData]
	Binaries  *Arena[ExprBinaryData]
	Unaries   *Arena[ExprUnaryData]
	Calls     *Arena[ExprCallData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Literals:  NewArena[ExprLiteralData](capHint),
		Variables: NewArena[ExprVariableData](capHint),
		Binaries:  NewArena[ExprBinaryData](capHint),
		Unaries:   NewArena[ExprUnaryData](capHint),
		Calls:     NewArena[ExprCallData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

// NewNumber creates a numeric literal.
func (e *Exprs) NewNumber(span source.Span, v float64) ExprID {
	return e.new(ExprLiteral, span, e.Literals.Allocate(ExprLiteralData{Kind: LitNumber, Number: v}))
}

// NewString creates a string literal; s is the unquoted value.
func (e *Exprs) NewString(span source.Span, s string) ExprID {
	return e.new(ExprLiteral, span, e.Literals.Allocate(ExprLiteralData{Kind: LitString, Str: s}))
}

// NewBool creates a boolean literal.
func (e *Exprs) NewBool(span source.Span, v bool) ExprID {
	return e.new(ExprLiteral, span, e.Literals.Allocate(ExprLiteralData{Kind: LitBool, Bool: v}))
}

// Literal returns the literal data for the given expression ID.
func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	p, ok := e.payload(id, ExprLiteral)
	if !ok {
		return nil, false
	}
	return e.Literals.Get(p), true
}

// NewVariable creates a variable reference.
func (e *Exprs) NewVariable(span source.Span, name token.Token) ExprID {
	return e.new(ExprVariable, span, e.Variables.Allocate(ExprVariableData{Name: name}))
}

// Variable returns the variable data for the given expression ID.
func (e *Exprs) Variable(id ExprID) (*ExprVariableData, bool) {
	p, ok := e.payload(id, ExprVariable)
	if !ok {
		return nil, false
	}
	return e.Variables.Get(p), true
}

// NewBinary creates a new binary expression.
func (e *Exprs) NewBinary(span source.Span, left ExprID, op token.Token, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(ExprBinaryData{Left: left, Op: op, Right: right}))
}

// Binary returns the binary data for the given expression ID.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(p), true
}

// NewUnary creates a new unary expression.
func (e *Exprs) NewUnary(span source.Span, op token.Token, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
}

// Unary returns the unary data for the given expression ID.
func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprUnary)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(p), true
}

// NewCall creates a new function call expression.
func (e *Exprs) NewCall(span source.Span, callee ExprID, paren token.Token, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{
		Callee: callee,
		Paren:  paren,
		Args:   append([]ExprID(nil), args...),
	})
	return e.new(ExprCall, span, payload)
}

// Call returns the call data for the given expression ID.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(p), true
}
