package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"storyscript/internal/source"
	"storyscript/internal/token"
)

type TokenOutput struct {
	Kind   string `json:"kind"`
	Text   string `json:"text,omitempty"`
	Start  uint32 `json:"start"`
	End    uint32 `json:"end"`
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
	Error  string `json:"error,omitempty"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-12s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text) //nolint:errcheck
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", //nolint:errcheck
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)
		if tok.Err != "" {
			fmt.Fprintf(w, " (%s)", tok.Err) //nolint:errcheck
		}
		fmt.Fprintln(w) //nolint:errcheck

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:   tok.Kind.String(),
			Text:   tok.Text,
			Start:  tok.Span.Start,
			End:    tok.Span.End,
			Line:   tok.Pos.Line,
			Column: tok.Pos.Col,
			Error:  tok.Err,
		})
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
