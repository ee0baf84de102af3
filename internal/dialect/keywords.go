package dialect

import (
	"storyscript/internal/source"
)

type keywordSignal struct {
	Dialect Kind
	Score   int
	Reason  string
}

// Only identifiers reach this table: StoryScript keywords are never recorded.
var keywordSignals = map[string][]keywordSignal{
	// legacy table-driven StoryScript
	"story":  {{Dialect: Legacy, Score: 5, Reason: "legacy `story { }` wrapper"}},
	"choice": {{Dialect: Legacy, Score: 4, Reason: "legacy `choice` block"}},
	"option": {{Dialect: Legacy, Score: 3, Reason: "legacy `option` entry"}},
	"scene":  {{Dialect: Legacy, Score: 1, Reason: "legacy `scene` name"}},

	// Ink-ish
	"VAR":     {{Dialect: Ink, Score: 4, Reason: "ink global `VAR`"}},
	"CONST":   {{Dialect: Ink, Score: 3, Reason: "ink `CONST`"}},
	"INCLUDE": {{Dialect: Ink, Score: 4, Reason: "ink `INCLUDE`"}},
	"DONE":    {{Dialect: Ink, Score: 3, Reason: "ink `DONE` divert target"}},
	"END":     {{Dialect: Ink, Score: 2, Reason: "ink `END` divert target"}},

	// Python-ish
	"def":    {{Dialect: Python, Score: 4, Reason: "python keyword `def`"}},
	"elif":   {{Dialect: Python, Score: 4, Reason: "python keyword `elif`"}},
	"None":   {{Dialect: Python, Score: 4, Reason: "python `None`"}},
	"True":   {{Dialect: Python, Score: 3, Reason: "python `True`"}},
	"False":  {{Dialect: Python, Score: 3, Reason: "python `False`"}},
	"lambda": {{Dialect: Python, Score: 3, Reason: "python keyword `lambda`"}},
	"print":  {{Dialect: Python, Score: 2, Reason: "python `print`"}},
	"import": {
		{Dialect: Python, Score: 1, Reason: "python keyword `import`"},
		{Dialect: JavaScript, Score: 1, Reason: "javascript keyword `import`"},
	},

	// JavaScript-ish
	"let":       {{Dialect: JavaScript, Score: 3, Reason: "javascript keyword `let`"}},
	"const":     {{Dialect: JavaScript, Score: 4, Reason: "javascript keyword `const`"}},
	"console":   {{Dialect: JavaScript, Score: 4, Reason: "javascript `console`"}},
	"undefined": {{Dialect: JavaScript, Score: 4, Reason: "javascript `undefined`"}},
	"typeof":    {{Dialect: JavaScript, Score: 4, Reason: "javascript keyword `typeof`"}},
	"null":      {{Dialect: JavaScript, Score: 2, Reason: "javascript `null`"}},
}

// RecordIdent collects keyword evidence for an identifier token. Matching is
// exact: Ink and Python signals are case-significant.
func RecordIdent(e *Evidence, ident string, span source.Span) {
	if e == nil || ident == "" {
		return
	}
	for _, sig := range keywordSignals[ident] {
		e.Add(Hint{
			Dialect: sig.Dialect,
			Score:   sig.Score,
			Reason:  sig.Reason,
			Span:    span,
		})
	}
}
