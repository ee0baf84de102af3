package parser

import "storyscript/internal/token"

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precAssignment     = 1 // =
	precLogicalOr      = 2 // or
	precLogicalAnd     = 3 // and
	precEquality       = 4 // == !=
	precComparison     = 5 // < <= > >=
	precAdditive       = 6 // + -
	precMultiplicative = 7 // * / %
)

// binaryOperatorPrec возвращает приоритет и ассоциативность оператора.
// Для не-операторов приоритет -1.
func binaryOperatorPrec(kind token.Kind) (int, bool) {
	switch kind {
	// Присваивание (правоассоциативно)
	case token.Assign:
		return precAssignment, true

	// Логические операторы
	case token.KwOr:
		return precLogicalOr, false
	case token.KwAnd:
		return precLogicalAnd, false

	// Операторы равенства
	case token.EqEq, token.BangEq:
		return precEquality, false

	// Операторы сравнения
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false

	// Арифметические операторы
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false

	default:
		return -1, false
	}
}
