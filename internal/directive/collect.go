package directive

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"storyscript/internal/lexer"
	"storyscript/internal/source"
	"storyscript/internal/token"
)

const directivePrefix = "expect-"

// parseDirective разбирает текст комментария без `//`.
func parseDirective(text string) (namespace, argument string, ok bool) {
	text = strings.TrimSpace(text)
	rest, found := strings.CutPrefix(text, directivePrefix)
	if !found {
		return "", "", false
	}
	namespace, argument, found = strings.Cut(rest, ":")
	if !found {
		return "", "", false
	}
	namespace = strings.TrimSpace(namespace)
	if namespace == "" || strings.ContainsAny(namespace, " \t") {
		return "", "", false
	}
	return namespace, strings.TrimSpace(argument), true
}

// lastLine — строка, на которой заканчивается токен (строки бывают многострочными).
func lastLine(tok token.Token) uint32 {
	return tok.Pos.Line + mustU32(strings.Count(tok.Text, "\n"))
}

func mustU32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("directive offset overflow: %w", err))
	}
	return v
}

// scanFile находит директивы в комментариях: их видно только в промежутках
// между токенами, поэтому `//` внутри строк не путается с комментарием.
func scanFile(sf *source.File, emit func(sc Scenario)) {
	toks := lexer.New(sf, lexer.Options{}).Tokenize()
	var (
		prev    token.Token
		hasPrev bool
		prevEnd uint32
	)
	for _, tok := range toks {
		g := sf.Content[prevEnd:tok.Span.Start]
		sameLine := hasPrev
		for i := 0; i < len(g); {
			switch {
			case g[i] == '\n':
				sameLine = false
				i++
			case g[i] == '/' && i+1 < len(g) && g[i+1] == '/':
				j := i
				for j < len(g) && g[j] != '\n' {
					j++
				}
				if ns, arg, ok := parseDirective(string(g[i+2 : j])); ok {
					line := tok.Pos.Line
					if sameLine {
						line = lastLine(prev)
					}
					emit(Scenario{
						Namespace:  ns,
						SourceFile: sf.Path,
						Span:       source.Span{File: sf.ID, Start: prevEnd + mustU32(i), End: prevEnd + mustU32(j)},
						Line:       line,
						Argument:   arg,
					})
				}
				sameLine = false
				i = j
			default:
				i++
			}
		}
		prev, hasPrev = tok, true
		prevEnd = tok.Span.End
	}
}
