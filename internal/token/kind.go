package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token (unknown character, unterminated string).
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Comment is never produced by the lexer.
	Comment

	// Ident represents an identifier token.
	Ident
	// StringLit represents a double-quoted string literal, quotes included.
	StringLit
	// NumberLit represents a decimal number literal.
	NumberLit

	KwRoom     // room
	KwItem     // item
	KwVar      // var
	KwFunction // function
	KwIf       // if
	KwElse     // else
	KwWhile    // while
	KwFor      // for
	KwReturn   // return
	KwWhen     // when
	KwEntered  // entered
	KwSay      // say
	KwGoto     // goto
	KwTrue     // true
	KwFalse    // false
	KwNot      // not, !
	KwAnd      // and
	KwOr       // or

	Plus    // +
	Minus   // -
	Star    // *
	Slash   // /
	Percent // %
	Assign  // =
	EqEq    // ==
	BangEq  // !=
	Lt      // <
	Gt      // >
	LtEq    // <=
	GtEq    // >=

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	Colon     // :
	Comma     // ,
	Semicolon // ;
	Dot       // .

	kindCount
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Comment:    "Comment",
	Ident:      "Ident",
	StringLit:  "StringLit",
	NumberLit:  "NumberLit",
	KwRoom:     "KwRoom",
	KwItem:     "KwItem",
	KwVar:      "KwVar",
	KwFunction: "KwFunction",
	KwIf:       "KwIf",
	KwElse:     "KwElse",
	KwWhile:    "KwWhile",
	KwFor:      "KwFor",
	KwReturn:   "KwReturn",
	KwWhen:     "KwWhen",
	KwEntered:  "KwEntered",
	KwSay:      "KwSay",
	KwGoto:     "KwGoto",
	KwTrue:     "KwTrue",
	KwFalse:    "KwFalse",
	KwNot:      "KwNot",
	KwAnd:      "KwAnd",
	KwOr:       "KwOr",
	Plus:       "Plus",
	Minus:      "Minus",
	Star:       "Star",
	Slash:      "Slash",
	Percent:    "Percent",
	Assign:     "Assign",
	EqEq:       "EqEq",
	BangEq:     "BangEq",
	Lt:         "Lt",
	Gt:         "Gt",
	LtEq:       "LtEq",
	GtEq:       "GtEq",
	LParen:     "LParen",
	RParen:     "RParen",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	Colon:      "Colon",
	Comma:      "Comma",
	Semicolon:  "Semicolon",
	Dot:        "Dot",
}

var kindLexemes = [...]string{
	KwRoom:     "room",
	KwItem:     "item",
	KwVar:      "var",
	KwFunction: "function",
	KwIf:       "if",
	KwElse:     "else",
	KwWhile:    "while",
	KwFor:      "for",
	KwReturn:   "return",
	KwWhen:     "when",
	KwEntered:  "entered",
	KwSay:      "say",
	KwGoto:     "goto",
	KwTrue:     "true",
	KwFalse:    "false",
	KwNot:      "not",
	KwAnd:      "and",
	KwOr:       "or",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Assign:     "=",
	EqEq:       "==",
	BangEq:     "!=",
	Lt:         "<",
	Gt:         ">",
	LtEq:       "<=",
	GtEq:       ">=",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	Colon:      ":",
	Comma:      ",",
	Semicolon:  ";",
	Dot:        ".",
}

// String returns the stable name of the kind, e.g. "KwRoom" or "Semicolon".
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Lexeme returns the fixed spelling of a keyword or punctuation kind,
// or an empty string for kinds whose text varies (identifiers, literals, sentinels).
func (k Kind) Lexeme() string {
	if int(k) < len(kindLexemes) {
		return kindLexemes[k]
	}
	return ""
}

// Describe returns a human-friendly name for diagnostics: the quoted lexeme when
// the kind has one, otherwise a lowercase category.
func (k Kind) Describe() string {
	if lx := k.Lexeme(); lx != "" {
		return "'" + lx + "'"
	}
	switch k {
	case Ident:
		return "identifier"
	case StringLit:
		return "string"
	case NumberLit:
		return "number"
	case EOF:
		return "end of input"
	case Comment:
		return "comment"
	default:
		return "invalid token"
	}
}
