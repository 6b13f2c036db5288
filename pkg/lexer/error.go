package lexer

import (
	"fmt"

	"github.com/lovers-lang/lovers/pkg/diag"
	"github.com/lovers-lang/lovers/pkg/token"
)

// LexError is a single lexical diagnostic: an illegal character, a
// malformed literal, a reserved-word case mismatch, or a follow-set
// violation. Every LexError carries enough structure for a caller to sort,
// dedupe, or filter diagnostics without parsing message text.
type LexError struct {
	Code     string
	Message  string
	Pos      token.Position
	Expected []diag.Expectation
	Context  string
}

// Error implements the error interface.
func (e *LexError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("lexer error at line %d, column %d: %s\n%s",
			e.Pos.Line, e.Pos.Column, e.Message, e.Context)
	}
	return fmt.Sprintf("lexer error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

func newError(source string, pos token.Position, code, message string, expected ...diag.Expectation) *LexError {
	return &LexError{
		Code:     code,
		Message:  message,
		Pos:      pos,
		Expected: expected,
		Context:  diag.GenerateErrorContext(source, pos.Line, pos.Column),
	}
}

const (
	ErrIllegalChar          = "ERR_ILLEGAL_CHAR"
	ErrIdentifierTooLong    = "ERR_IDENTIFIER_TOO_LONG"
	ErrReservedWordCase     = "ERR_RESERVED_WORD_CASE"
	ErrDisallowedIdentifier = "ERR_DISALLOWED_IDENTIFIER"
	ErrUnterminatedString   = "ERR_UNTERMINATED_STRING"
	ErrInvalidStringQuote   = "ERR_INVALID_STRING_QUOTE"
	ErrInvalidEscape        = "ERR_INVALID_ESCAPE"
	ErrUnterminatedComment  = "ERR_UNTERMINATED_COMMENT"
	ErrInvalidFollow        = "ERR_INVALID_FOLLOW"
	ErrBadSymbolAfterIdent  = "ERR_BAD_SYMBOL_AFTER_IDENTIFIER"
	ErrNumericRange         = "ERR_NUMERIC_RANGE"
)

// MaxIdentifierLength is the longest lexeme accepted as an identifier or
// reserved word before the lexer reports ErrIdentifierTooLong.
const MaxIdentifierLength = 20
