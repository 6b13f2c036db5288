// Package lexer scans Lovers source text into a token stream, validating
// each reserved word and operator against its declared follow-set as it
// goes.
package lexer

import (
	"log/slog"
	"strings"

	"github.com/lovers-lang/lovers/internal/charset"
	"github.com/lovers-lang/lovers/pkg/diag"
	"github.com/lovers-lang/lovers/pkg/logger"
	"github.com/lovers-lang/lovers/pkg/token"
)

// multiCharOperators maps every two-character operator lexeme to its kind.
// These are tried before single-char tokens, so the longer match wins.
var multiCharOperators = map[string]token.Kind{
	"==": token.EQ, "!=": token.NEQ, ">=": token.GTE, "<=": token.LTE,
	"&&": token.AND, "||": token.OR, "++": token.INC, "--": token.DEC,
	"+=": token.PLUS_ASSIGN, "-=": token.MINUS_ASSIGN, "*=": token.MUL_ASSIGN,
	"/=": token.DIV_ASSIGN, "%=": token.MOD_ASSIGN, "::": token.SCOPE, "->": token.ARROW,
	">>": token.RSHIFT, "<<": token.LSHIFT,
}

var singleCharTokens = map[byte]token.Kind{
	';': token.SEMICOLON, ',': token.COMMA, '(': token.LPAREN, ')': token.RPAREN,
	'{': token.LBRACE, '}': token.RBRACE, '[': token.LBRACKET, ']': token.RBRACKET,
	':': token.COLON, '?': token.QUESTION, '.': token.DOT, '+': token.PLUS,
	'-': token.MINUS, '*': token.STAR, '/': token.SLASH, '%': token.PERCENT,
	'=': token.ASSIGN, '>': token.GT, '<': token.LT, '!': token.BANG,
	'&': token.AMPERSAND, '|': token.PIPE, '#': token.HASH,
}

// Lexer performs lexical analysis on Lovers source code.
type Lexer struct {
	source string
	pos    int
	ch     byte
	line   int
	column int
	log    *slog.Logger
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithLogger overrides the lexer's diagnostic logger (default:
// logger.Get()).
func WithLogger(l *slog.Logger) Option {
	return func(lx *Lexer) { lx.log = l }
}

// New creates a Lexer positioned at the start of source.
func New(source string, opts ...Option) *Lexer {
	lx := &Lexer{source: source, line: 1, column: 1}
	for _, opt := range opts {
		opt(lx)
	}
	lx.log = logger.OrDefault(lx.log)
	if len(source) > 0 {
		lx.ch = source[0]
	}
	return lx
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.source)
}

// advance consumes and returns the current character, updating line/column
// to the position immediately after it.
func (l *Lexer) advance() byte {
	ch := l.ch
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	if l.pos < len(l.source) {
		l.ch = l.source[l.pos]
	} else {
		l.ch = 0
	}
	return ch
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.ch
}

func (l *Lexer) peekAt(offset int) byte {
	idx := l.pos + offset
	if idx >= len(l.source) {
		return 0
	}
	return l.source[idx]
}

func (l *Lexer) pos1() token.Position {
	return token.Position{Line: l.line, Column: l.column}
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlnum(ch byte) bool {
	return isAlpha(ch) || isDigit(ch)
}

// scanner holds the mutable state of one Tokenize pass: the underlying
// Lexer plus the errors accumulated along the way.
type scanner struct {
	*Lexer
	errs []*LexError
}

func (s *scanner) report(pos token.Position, code, message string, expected ...diag.Expectation) {
	s.errs = append(s.errs, newError(s.source, pos, code, message, expected...))
}

// Tokenize scans source to completion, stopping and returning immediately
// after the first lexical error encountered (fail-fast variant). Use
// TokenizeWithErrors to collect every diagnostic instead.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	s := &scanner{Lexer: l}
	var tokens []token.Token
	for {
		before := len(s.errs)
		tok := s.nextToken()
		tokens = append(tokens, tok)
		if len(s.errs) > before {
			return tokens, s.errs[before]
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, nil
}

// TokenizeWithErrors scans source to completion, collecting every lexical
// diagnostic instead of stopping at the first one.
func (l *Lexer) TokenizeWithErrors() ([]token.Token, []*LexError) {
	s := &scanner{Lexer: l}
	var tokens []token.Token
	for {
		tok := s.nextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, s.errs
}

func (s *scanner) skipWhitespaceAndComments() {
	for {
		for s.ch == ' ' || s.ch == '\t' || s.ch == '\r' || s.ch == '\f' {
			s.advance()
		}
		if s.ch == '/' && s.peekAt(1) == '/' {
			for s.ch != '\n' && !s.atEnd() {
				s.advance()
			}
			continue
		}
		if s.ch == '/' && s.peekAt(1) == '*' {
			startPos := s.pos1()
			s.advance()
			s.advance()
			closed := false
			for !s.atEnd() {
				if s.ch == '*' && s.peekAt(1) == '/' {
					s.advance()
					s.advance()
					closed = true
					break
				}
				s.advance()
			}
			if !closed {
				s.report(startPos, ErrUnterminatedComment, "unterminated block comment")
			}
			continue
		}
		break
	}
}

// nextToken returns the next token. Lexical errors (malformed tokens as
// well as follow-set violations) are appended to s.errs as they're found;
// the token stream keeps going regardless so callers collecting
// diagnostics see the whole file in one pass.
func (s *scanner) nextToken() token.Token {
	s.skipWhitespaceAndComments()

	if s.atEnd() {
		return token.NewToken(token.EOF, "", s.pos1())
	}

	startPos := s.pos1()

	if s.ch == '\n' {
		s.advance()
		return token.NewToken(token.NEWLINE, "\\n", startPos)
	}

	if s.ch == '\'' {
		s.advance()
		s.report(startPos, ErrInvalidStringQuote,
			"string values must be enclosed in double quotes (\")", diag.LiteralOf("\""))
		return token.NewToken(token.ILLEGAL, "'", startPos)
	}

	if s.ch == '"' {
		return s.scanString(startPos)
	}

	if isDigit(s.ch) {
		return s.scanNumber(startPos)
	}

	if isAlpha(s.ch) {
		return s.scanIdentifier(startPos)
	}

	two := string([]byte{s.ch, s.peekAt(1)})
	if kind, ok := multiCharOperators[two]; ok {
		s.advance()
		s.advance()
		tok := token.NewToken(kind, two, startPos)
		s.validateSymbolFollow(two, startPos)
		return tok
	}

	if kind, ok := singleCharTokens[s.ch]; ok {
		lexeme := string(s.ch)
		s.advance()
		tok := token.NewToken(kind, lexeme, startPos)
		s.validateSymbolFollow(lexeme, startPos)
		return tok
	}

	bad := s.ch
	s.advance()
	s.report(startPos, ErrIllegalChar, "illegal character '"+string(bad)+"'")
	return token.NewToken(token.ILLEGAL, string(bad), startPos)
}

func (s *scanner) scanIdentifier(startPos token.Position) token.Token {
	start := s.pos
	for isAlnum(s.ch) {
		s.advance()
	}
	lexeme := s.source[start:s.pos]

	if len(lexeme) > MaxIdentifierLength {
		s.report(startPos, ErrIdentifierTooLong,
			"identifier `"+lexeme+"` exceeds the maximum length of 20 characters")
		return token.NewToken(token.IDENTIFIER, lexeme, startPos)
	}

	if kind, ok := token.LookupReserved(lexeme); ok {
		tok := token.NewToken(kind, lexeme, startPos)
		s.validateWordFollow(lexeme, startPos)
		return tok
	}

	lowered := toLower(lexeme)
	if lowered != lexeme && token.IsReservedCaseInsensitive(lowered) {
		s.report(startPos, ErrReservedWordCase,
			"reserved word `"+lowered+"` must be written in lowercase")
		return token.NewToken(token.IDENTIFIER, lexeme, startPos)
	}

	if lowered == "true" || lowered == "false" {
		s.report(startPos, ErrDisallowedIdentifier,
			"identifier `"+lexeme+"` is disallowed; use `greenflag` or `redflag`")
		return token.NewToken(token.IDENTIFIER, lexeme, startPos)
	}

	tok := token.NewToken(token.IDENTIFIER, lexeme, startPos)
	s.validateIdentifierFollow(lexeme, startPos)
	return tok
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

const (
	maxIntDigits              = 10
	maxIntDigitsValue         = "9999999999"
	maxFloatIntDigits         = 10
	maxFloatSignificantDigits = 16
	maxFloatFracValue         = "999999"
)

func (s *scanner) scanNumber(startPos token.Position) token.Token {
	start := s.pos
	for isDigit(s.ch) {
		s.advance()
	}
	intEnd := s.pos
	kind := token.INT_LITERAL
	if s.ch == '.' && isDigit(s.peekAt(1)) {
		kind = token.FLOAT_LITERAL
		s.advance()
		for isDigit(s.ch) {
			s.advance()
		}
	}
	lexeme := s.source[start:s.pos]
	s.checkFollow(charset.IdentifierFollow(), startPos, lexeme)

	if kind == token.INT_LITERAL {
		s.validateIntRange(lexeme, startPos)
		return token.NewToken(kind, lexeme, startPos).WithLiteral(lexeme)
	}

	intPart := s.source[start:intEnd]
	fracPart := s.source[intEnd+1 : s.pos]
	s.validateFloatRange(lexeme, intPart, fracPart, startPos)
	return token.NewToken(kind, lexeme, startPos).WithLiteral(normalizeFloatLiteral(intPart, fracPart))
}

// validateIntRange reports ErrNumericRange when lexeme has more than 10
// digits once leading zeros are stripped, or denotes a value greater than
// 9,999,999,999.
func (s *scanner) validateIntRange(lexeme string, pos token.Position) {
	significant := strings.TrimLeft(lexeme, "0")
	if len(significant) > maxIntDigits {
		s.report(pos, ErrNumericRange,
			"integer literal `"+lexeme+"` exceeds maximum length of 10 digits")
		return
	}
	if digitsExceed(lexeme, maxIntDigitsValue) {
		s.report(pos, ErrNumericRange,
			"integer literal `"+lexeme+"` exceeds maximum value of 9999999999")
	}
}

// validateFloatRange reports ErrNumericRange when the raw integer part has
// more than 10 digits, the literal carries more than 16 significant digits
// in total, or the value exceeds 9,999,999,999.999999.
func (s *scanner) validateFloatRange(lexeme, intPart, fracPart string, pos token.Position) {
	if len(intPart) > maxFloatIntDigits {
		s.report(pos, ErrNumericRange,
			"float literal `"+lexeme+"` has more than 10 digits before the decimal point")
		return
	}
	significant := len(strings.TrimLeft(intPart, "0")) + len(fracPart)
	if significant > maxFloatSignificantDigits {
		s.report(pos, ErrNumericRange,
			"float literal `"+lexeme+"` exceeds 16 significant digits")
		return
	}
	if floatValueExceeds(intPart, fracPart) {
		s.report(pos, ErrNumericRange,
			"float literal `"+lexeme+"` exceeds maximum value of 9999999999.999999")
	}
}

// digitsExceed reports whether the decimal digit string digits denotes a
// larger value than max, ignoring leading zeros in digits.
func digitsExceed(digits, max string) bool {
	d := strings.TrimLeft(digits, "0")
	if d == "" {
		d = "0"
	}
	if len(d) != len(max) {
		return len(d) > len(max)
	}
	return d > max
}

// floatValueExceeds reports whether intPart.fracPart denotes a value
// greater than 9999999999.999999.
func floatValueExceeds(intPart, fracPart string) bool {
	if digitsExceed(intPart, maxIntDigitsValue) {
		return true
	}
	trimmed := strings.TrimLeft(intPart, "0")
	if trimmed != maxIntDigitsValue {
		return false
	}
	if len(fracPart) <= len(maxFloatFracValue) {
		padded := fracPart + strings.Repeat("0", len(maxFloatFracValue)-len(fracPart))
		return padded > maxFloatFracValue
	}
	head := fracPart[:len(maxFloatFracValue)]
	if head != maxFloatFracValue {
		return head > maxFloatFracValue
	}
	for _, c := range fracPart[len(maxFloatFracValue):] {
		if c != '0' {
			return true
		}
	}
	return false
}

// normalizeFloatLiteral strips leading zeros from the integer part (keeping
// a single `0` if it would otherwise be empty), truncates trailing zeros
// from the fractional part and then caps it at 6 digits.
func normalizeFloatLiteral(intPart, fracPart string) string {
	ip := strings.TrimLeft(intPart, "0")
	if ip == "" {
		ip = "0"
	}
	fp := strings.TrimRight(fracPart, "0")
	if len(fp) > 6 {
		fp = fp[:6]
	}
	if fp == "" {
		fp = "0"
	}
	return ip + "." + fp
}

// scanString reads a double-quoted string literal, decoding `\"`, `\\`,
// `\n` and `\t` escapes into their actual characters for Literal. Any
// other escape is reported as ErrInvalidEscape; the lexeme keeps scanning
// past it so later errors in the same string are still found.
func (s *scanner) scanString(startPos token.Position) token.Token {
	start := s.pos
	s.advance() // opening quote
	var decoded []byte
	for !s.atEnd() {
		c := s.ch
		if c == '\\' {
			escPos := s.pos1()
			s.advance()
			if s.atEnd() {
				break
			}
			esc := s.ch
			switch esc {
			case '"':
				decoded = append(decoded, '"')
			case '\\':
				decoded = append(decoded, '\\')
			case 'n':
				decoded = append(decoded, '\n')
			case 't':
				decoded = append(decoded, '\t')
			default:
				s.report(escPos, ErrInvalidEscape,
					"invalid escape sequence `\\"+string(esc)+"` in string")
				decoded = append(decoded, esc)
			}
			s.advance()
			continue
		}
		if c == '"' {
			s.advance()
			lexeme := s.source[start:s.pos]
			return token.NewToken(token.STRING_LITERAL, lexeme, startPos).WithLiteral(string(decoded))
		}
		if c == '\n' {
			break
		}
		decoded = append(decoded, c)
		s.advance()
	}
	lexeme := s.source[start:s.pos]
	s.report(startPos, ErrUnterminatedString, "unterminated string")
	return token.NewToken(token.STRING_LITERAL, lexeme, startPos)
}

// validateWordFollow checks the character immediately after a reserved
// word against its declared follow-set.
func (s *scanner) validateWordFollow(lexeme string, startPos token.Position) {
	if charset.IsFollowExempt(lexeme) {
		return
	}
	set := charset.ReservedWordFollow(lexeme)
	s.checkFollow(set, startPos, lexeme)
}

func (s *scanner) validateSymbolFollow(lexeme string, startPos token.Position) {
	if charset.IsFollowExempt(lexeme) {
		return
	}
	set, ok := charset.ReservedSymbolFollow(lexeme)
	if !ok {
		return
	}
	s.checkFollow(set, startPos, lexeme)
}

func (s *scanner) validateIdentifierFollow(lexeme string, startPos token.Position) {
	next := s.peek()
	if next == 0 {
		return
	}
	// `!=` and `||` are always permitted directly after an identifier even
	// though `!` and `|` alone are not.
	if next == '!' && s.peekAt(1) == '=' {
		return
	}
	if next == '|' && s.peekAt(1) == '|' {
		return
	}
	if charset.BadSymbolsAfterIdentifier.Contains(next) {
		s.log.Debug("identifier followed by disallowed symbol", "lexeme", lexeme, "next", string(next))
		s.report(s.pos1(), ErrBadSymbolAfterIdent,
			"identifier `"+lexeme+"` may not be directly followed by `"+string(next)+"`")
		return
	}
	if !charset.IdentifierFollow().Contains(next) {
		s.report(s.pos1(), ErrInvalidFollow,
			"unexpected character `"+string(next)+"` after identifier `"+lexeme+"`")
	}
}

// checkFollow reports an ErrInvalidFollow diagnostic when the character
// immediately following lexeme is outside set. EOF is always permitted.
func (s *scanner) checkFollow(set charset.Set, startPos token.Position, lexeme string) {
	next := s.peek()
	if next == 0 {
		return
	}
	if !set.Contains(next) {
		s.log.Debug("follow-set violation", "lexeme", lexeme, "next", string(next))
		s.report(s.pos1(), ErrInvalidFollow,
			"unexpected character `"+string(next)+"` after `"+lexeme+"`")
	}
}
