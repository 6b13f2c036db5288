package parser

import (
	"fmt"

	"github.com/lovers-lang/lovers/pkg/diag"
	"github.com/lovers-lang/lovers/pkg/token"
)

// ParseError is a single syntax diagnostic: a message, the offending
// token's position, and what the grammar expected to see instead.
type ParseError struct {
	Message  string
	Pos      token.Position
	Expected []diag.Expectation
	Token    token.Token
	Context  string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("parser error at line %d, column %d: %s\n%s",
			e.Pos.Line, e.Pos.Column, e.Message, e.Context)
	}
	return fmt.Sprintf("parser error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}
