package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002

	// Парсерные
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynInvalidAssignTarget Code = 2002
	SynExpectExpression    Code = 2003
	SynNumberOutOfRange    Code = 2004
	SynPropertyBaseDropped Code = 2100

	// Ошибки I/O
	IOLoadFileError Code = 4001

	// Ошибки проекта
	ProjManifestInvalid Code = 5001

	// Подсказки о чужих диалектах
	AlnLegacyDialect Code = 8001
	AlnInkDialect    Code = 8002
	AlnPythonDialect Code = 8003
	AlnJSDialect     Code = 8004
)

var codeDescription = map[Code]string{
	UnknownCode:            "Unknown error",
	LexInfo:                "Lexical information",
	LexUnknownChar:         "Unknown character",
	LexUnterminatedString:  "Unterminated string",
	SynInfo:                "Syntax information",
	SynUnexpectedToken:     "Unexpected token",
	SynInvalidAssignTarget: "Invalid assignment target",
	SynExpectExpression:    "Expect expression",
	SynNumberOutOfRange:    "Number literal out of range",
	SynPropertyBaseDropped: "Property access base discarded",
	IOLoadFileError:        "I/O load file error",
	ProjManifestInvalid:    "Invalid project manifest",
	AlnLegacyDialect:       "alien hint: legacy table-driven dialect",
	AlnInkDialect:          "alien hint: ink syntax",
	AlnPythonDialect:       "alien hint: python syntax",
	AlnJSDialect:           "alien hint: javascript syntax",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 8000 && ic < 9000:
		return fmt.Sprintf("ALN%04d", ic)
	}
	return "E0000"
}

// Title returns the short human description of the code.
func (c Code) Title() string {
	if d, ok := codeDescription[c]; ok {
		return d
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return c.ID()
}
