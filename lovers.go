// Package lovers is the front-end of a compiler for the Lovers
// imperative language: a hand-written lexer with contextual follow-set
// validation, an optional structural shape check, and a recursive-descent
// syntax analyzer. It produces either a validated token-row listing or a
// set of diagnostics; there is no AST, type checking, or code generation
// here.
package lovers

import (
	"github.com/lovers-lang/lovers/pkg/lexer"
	"github.com/lovers-lang/lovers/pkg/parser"
	"github.com/lovers-lang/lovers/pkg/structural"
	"github.com/lovers-lang/lovers/pkg/token"
)

// Tokenize scans source into a token stream, stopping at the first
// lexical error. Use TokenizeWithErrors to collect every diagnostic
// instead of failing fast.
func Tokenize(source string) ([]token.Token, error) {
	return lexer.New(source).Tokenize()
}

// TokenizeWithErrors scans source into a token stream, collecting every
// lexical diagnostic found along the way.
func TokenizeWithErrors(source string) ([]token.Token, []*lexer.LexError) {
	return lexer.New(source).TokenizeWithErrors()
}

// ValidateStructure checks that tokens has the overall shape of a Lovers
// program: a `love <identifier>() { ... }` entry point, optionally
// preceded by C-style global declarations, with balanced delimiters
// throughout.
func ValidateStructure(tokens []token.Token) structural.Verdict {
	return structural.ValidateStructure(tokens)
}

// Result is the outcome of a full Parse: either a successful token-row
// listing, or the syntax errors found.
type Result struct {
	OK     bool
	Rows   []token.Row
	Errors []*parser.ParseError
}

// Parse tokenizes and parses source in one pass. A lexical failure short
// circuits straight to a Result carrying every lexical error, without
// parsing; otherwise every syntax error the parser finds is collected
// before Result is returned.
func Parse(source string) Result {
	tokens, lexErrs := lexer.New(source).TokenizeWithErrors()
	if len(lexErrs) > 0 {
		return Result{OK: false, Errors: lexErrsToParseErrors(lexErrs)}
	}

	ok, rows, errs := parser.New(tokens, source).Parse()
	if !ok {
		return Result{OK: false, Errors: errs}
	}
	return Result{OK: true, Rows: rows}
}

// lexErrsToParseErrors adapts lexical diagnostics into the same
// ParseError shape Parse returns on syntax failure, so callers have one
// error type to render regardless of which phase failed.
func lexErrsToParseErrors(lexErrs []*lexer.LexError) []*parser.ParseError {
	out := make([]*parser.ParseError, 0, len(lexErrs))
	for _, e := range lexErrs {
		out = append(out, &parser.ParseError{
			Message:  e.Message,
			Pos:      e.Pos,
			Expected: e.Expected,
			Context:  e.Context,
		})
	}
	return out
}
