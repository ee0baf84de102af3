// Package dialect provides lightweight detection for "foreign dialect" signals
// (legacy StoryScript, Ink, Python, JavaScript) that can be used to emit extra
// diagnostics.
//
// Evidence collection never changes lexing or parsing behavior, and hint
// diagnostics are always optional.
package dialect
