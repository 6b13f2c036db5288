// Package structural performs a lightweight, whole-program shape check
// ahead of full parsing: balanced delimiters and a `love <identifier>() {
// ... }` entry point, with zero or more C-style global declarations
// permitted before it.
package structural

import (
	"github.com/lovers-lang/lovers/pkg/diag"
	"github.com/lovers-lang/lovers/pkg/token"
)

// Verdict is the outcome of ValidateStructure: either ok, or the first
// structural failure encountered.
type Verdict struct {
	OK       bool
	Code     string
	Message  string
	Pos      token.Position
	Expected []diag.Expectation
}

const (
	ErrEmpty                    = "ERR_EMPTY"
	ErrExpectedLove              = "ERR_EXPECTED_LOVE"
	ErrExpectedMain              = "ERR_EXPECTED_MAIN"
	ErrExpectedLParen            = "ERR_EXPECTED_LPAREN"
	ErrExpectedRParen            = "ERR_EXPECTED_RPAREN"
	ErrExpectedLBrace            = "ERR_EXPECTED_LBRACE"
	ErrExpectedRBrace            = "ERR_EXPECTED_RBRACE"
	ErrExpectedSemicolon         = "ERR_EXPECTED_SEMICOLON"
	ErrExpectedLBraceOrSemicolon = "ERR_EXPECTED_LBRACE_OR_SEMICOLON"
	ErrUnexpectedRParen          = "ERR_UNEXPECTED_RPAREN"
	ErrUnexpectedRBrace          = "ERR_UNEXPECTED_RBRACE"
	ErrUnexpectedRBracket        = "ERR_UNEXPECTED_RBRACKET"
	ErrExpectedRBracket          = "ERR_EXPECTED_RBRACKET"
	ErrUnexpectedTokenAfterMain  = "ERR_UNEXPECTED_TOKEN_AFTER_MAIN"
)

var ignoredKinds = map[token.Kind]bool{
	token.NEWLINE: true,
	token.EOF:     true,
}

// allowedTypeKinds are the kinds a C-style global declaration may start
// with: the four builtin type keywords plus a user-defined type name.
var allowedTypeKinds = map[token.Kind]bool{
	token.DEAR: true, token.DEAREST: true, token.RANT: true, token.STATUS: true,
	token.IDENTIFIER: true,
}

var delimOpenToClose = map[string]string{"(": ")", "{": "}", "[": "]"}
var delimCloseToOpen = map[string]string{")": "(", "}": "{", "]": "["}
var delimMissingCode = map[string]string{"(": ErrExpectedRParen, "{": ErrExpectedRBrace, "[": ErrExpectedRBracket}
var delimUnexpectedCode = map[string]string{")": ErrUnexpectedRParen, "}": ErrUnexpectedRBrace, "]": ErrUnexpectedRBracket}

// ValidateStructure checks the overall shape of a token stream and
// returns the first structural failure found, or an OK verdict.
func ValidateStructure(tokens []token.Token) Verdict {
	filtered := filterTrivia(tokens)
	if len(filtered) == 0 {
		return fail(ErrEmpty, "source is empty; expected `love <identifier>() { ... }`", token.Position{}, nil)
	}

	if v, bad := checkBalancedDelimiters(filtered); bad {
		return v
	}

	idx := 0
	for idx < len(filtered) && looksLikeGlobalDecl(filtered, idx) {
		next, v, bad := consumeGlobalDecl(filtered, idx)
		if bad {
			return v
		}
		idx = next
	}

	consumed, v, bad := consumeMainSignature(filtered[idx:])
	if bad {
		return v
	}
	idx += consumed

	if v, bad := ensureProgramEndsAfterMain(filtered, idx); bad {
		return v
	}

	return ok()
}

func ok() Verdict { return Verdict{OK: true} }

func fail(code, message string, pos token.Position, expected []diag.Expectation) Verdict {
	return Verdict{OK: false, Code: code, Message: message, Pos: pos, Expected: expected}
}

func filterTrivia(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, t := range tokens {
		if ignoredKinds[t.Kind] {
			continue
		}
		out = append(out, t)
	}
	return out
}

func checkBalancedDelimiters(tokens []token.Token) (Verdict, bool) {
	var stack []token.Token
	for _, t := range tokens {
		lex := t.Lexeme
		if _, isOpen := delimOpenToClose[lex]; isOpen {
			stack = append(stack, t)
			continue
		}
		if open, isClose := delimCloseToOpen[lex]; isClose {
			if len(stack) == 0 {
				return fail(delimUnexpectedCode[lex],
					"found closing `"+lex+"` without a matching `"+open+"`",
					t.Pos, []diag.Expectation{diag.LiteralOf(open)}), true
			}
			opening := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if opening.Lexeme != open {
				expected := delimOpenToClose[opening.Lexeme]
				return fail(delimMissingCode[opening.Lexeme],
					"expected `"+expected+"` to close `"+opening.Lexeme+"` opened earlier, but found `"+lex+"`",
					t.Pos, []diag.Expectation{diag.LiteralOf(expected)}), true
			}
		}
	}
	if len(stack) > 0 {
		opening := stack[len(stack)-1]
		expected := delimOpenToClose[opening.Lexeme]
		return fail(delimMissingCode[opening.Lexeme],
			"missing closing `"+expected+"` for `"+opening.Lexeme+"`",
			opening.Pos, []diag.Expectation{diag.LiteralOf(expected)}), true
	}
	return Verdict{}, false
}

func looksLikeGlobalDecl(tokens []token.Token, idx int) bool {
	return idx+1 < len(tokens) &&
		allowedTypeKinds[tokens[idx].Kind] &&
		tokens[idx+1].Kind == token.IDENTIFIER
}

// consumeGlobalDecl consumes one C-style global declaration, function
// prototype, or function definition and returns the index of the token
// following it.
func consumeGlobalDecl(tokens []token.Token, idx int) (int, Verdict, bool) {
	i := idx + 2 // skip type + name

	if i < len(tokens) && tokens[i].Lexeme == "(" {
		depth := 1
		j := i + 1
		for j < len(tokens) && depth > 0 {
			switch tokens[j].Lexeme {
			case "(":
				depth++
			case ")":
				depth--
			}
			j++
		}
		if depth != 0 {
			return idx, fail(ErrExpectedRParen, "unterminated parameter list in global declaration",
				lastPos(tokens, j), []diag.Expectation{diag.LiteralOf(")")}), true
		}

		after := j
		if after < len(tokens) && tokens[after].Lexeme == ";" {
			return after + 1, Verdict{}, false
		}
		if after < len(tokens) && tokens[after].Lexeme == "{" {
			depth = 1
			k := after + 1
			for k < len(tokens) && depth > 0 {
				switch tokens[k].Lexeme {
				case "{":
					depth++
				case "}":
					depth--
				}
				k++
			}
			if depth != 0 {
				return idx, fail(ErrExpectedRBrace, "unterminated global function body",
					lastPos(tokens, k), []diag.Expectation{diag.LiteralOf("}")}), true
			}
			return k, Verdict{}, false
		}

		var pos token.Position
		if after < len(tokens) {
			pos = tokens[after].Pos
		}
		return idx, fail(ErrExpectedLBraceOrSemicolon, "expected `{` for function body or `;` for prototype",
			pos, []diag.Expectation{diag.LiteralOf("{"), diag.LiteralOf(";")}), true
	}

	// plain variable declaration: type name [= ...] ;
	for i < len(tokens) && tokens[i].Lexeme != ";" {
		i++
	}
	if i >= len(tokens) {
		return idx, fail(ErrExpectedSemicolon, "missing `;` after global declaration",
			token.Position{}, []diag.Expectation{diag.LiteralOf(";")}), true
	}
	return i + 1, Verdict{}, false
}

func lastPos(tokens []token.Token, idx int) token.Position {
	if idx-1 >= 0 && idx-1 < len(tokens) {
		return tokens[idx-1].Pos
	}
	return token.Position{}
}

type signatureCheck struct {
	match    func(token.Token) bool
	message  string
	code     string
	expected []diag.Expectation
}

func consumeMainSignature(tokens []token.Token) (int, Verdict, bool) {
	checks := []signatureCheck{
		{func(t token.Token) bool { return t.Lexeme == "love" }, "program must start with `love` keyword", ErrExpectedLove, []diag.Expectation{diag.LiteralOf("love")}},
		{func(t token.Token) bool { return t.Kind == token.IDENTIFIER }, "expected identifier after `love`", ErrExpectedMain, []diag.Expectation{diag.ClassOf("<identifier>")}},
		{func(t token.Token) bool { return t.Lexeme == "(" }, "expected `(` after function name", ErrExpectedLParen, []diag.Expectation{diag.LiteralOf("(")}},
		{func(t token.Token) bool { return t.Lexeme == ")" }, "expected `)` to close parameters", ErrExpectedRParen, []diag.Expectation{diag.LiteralOf(")")}},
		{func(t token.Token) bool { return t.Lexeme == "{" }, "expected `{` to start main block", ErrExpectedLBrace, []diag.Expectation{diag.LiteralOf("{")}},
	}

	idx := 0
	for _, c := range checks {
		if idx >= len(tokens) || !c.match(tokens[idx]) {
			var pos token.Position
			if idx < len(tokens) {
				pos = tokens[idx].Pos
			}
			return idx, fail(c.code, c.message, pos, c.expected), true
		}
		idx++
	}
	return idx, Verdict{}, false
}

func ensureProgramEndsAfterMain(tokens []token.Token, startIdx int) (Verdict, bool) {
	depth := 1
	for pos := startIdx; pos < len(tokens); pos++ {
		switch tokens[pos].Lexeme {
		case "{":
			depth++
		case "}":
			depth--
			if depth == 0 {
				if pos != len(tokens)-1 {
					next := tokens[pos+1]
					return fail(ErrUnexpectedTokenAfterMain,
						"program must end immediately after the closing `}` of the `love` block",
						next.Pos, nil), true
				}
				return Verdict{}, false
			}
		}
	}
	return fail(ErrExpectedRBrace, "missing closing `}` for the `love` block",
		token.Position{}, []diag.Expectation{diag.LiteralOf("}")}), true
}
