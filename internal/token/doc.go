// Package token defines lexical token kinds for StoryScript.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Comments and whitespace are skipped by the lexer and never become tokens;
//     the Comment kind exists only to keep the enumeration closed.
//   - A lone '!' is lexed as KwNot, the same kind the 'not' keyword produces.
package token
