// Package parser performs recursive-descent syntax analysis over a
// Lovers token stream. It is validation-only: there is no downstream
// compilation stage in this front-end, so the parser reports success or
// a list of syntax errors rather than building an AST.
package parser

import (
	"log/slog"

	"github.com/lovers-lang/lovers/pkg/diag"
	"github.com/lovers-lang/lovers/pkg/logger"
	"github.com/lovers-lang/lovers/pkg/token"
)

// tokenStream is a simple cursor over a token slice.
type tokenStream struct {
	tokens []token.Token
	pos    int
}

func (ts *tokenStream) peek() token.Token {
	return ts.tokens[ts.pos]
}

func (ts *tokenStream) atEnd() bool {
	return ts.peek().Kind == token.EOF
}

func (ts *tokenStream) advance() token.Token {
	tok := ts.tokens[ts.pos]
	if !ts.atEnd() {
		ts.pos++
	}
	return tok
}

func (ts *tokenStream) match(kinds ...token.Kind) bool {
	cur := ts.peek().Kind
	for _, k := range kinds {
		if cur == k {
			ts.advance()
			return true
		}
	}
	return false
}

// Parser consumes a token stream and validates it against the Lovers
// grammar, collecting every syntax error it encounters along the way
// rather than stopping at the first one.
type Parser struct {
	ts     *tokenStream
	source string
	errors []*ParseError
	log    *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger overrides the parser's diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) { p.log = l }
}

// New creates a Parser over tokens. source is used only to render
// two-line diagnostic context around reported errors.
func New(tokens []token.Token, source string, opts ...Option) *Parser {
	p := &Parser{ts: &tokenStream{tokens: tokens}, source: source}
	for _, opt := range opts {
		opt(p)
	}
	p.log = logger.OrDefault(p.log)
	return p
}

// Parse runs the grammar against the full token stream. ok is true when
// no syntax errors were found, in which case rows is the token-row
// projection of the whole stream; otherwise errs holds every error found.
func (p *Parser) Parse() (ok bool, rows []token.Row, errs []*ParseError) {
	p.program()
	if len(p.errors) > 0 {
		return false, nil, p.errors
	}
	return true, token.ToRows(p.ts.tokens), nil
}

func typeKeyword(k token.Kind) bool {
	switch k {
	case token.DEAR, token.DEAREST, token.RANT, token.STATUS:
		return true
	default:
		return false
	}
}

var literalKinds = map[token.Kind]bool{
	token.IDENTIFIER: true, token.INT_LITERAL: true, token.FLOAT_LITERAL: true,
	token.STRING_LITERAL: true, token.BOOL_LITERAL_TRUE: true, token.BOOL_LITERAL_FALSE: true,
}

func (p *Parser) errorf(tok token.Token, message string, expected ...diag.Expectation) {
	p.errors = append(p.errors, &ParseError{
		Message:  message,
		Pos:      tok.Pos,
		Expected: expected,
		Token:    tok,
		Context:  diag.GenerateErrorContext(p.source, tok.Pos.Line, tok.Pos.Column),
	})
}

func (p *Parser) synchronize() {
	from := p.ts.peek().Pos
	for !p.ts.atEnd() {
		if p.ts.peek().Kind == token.SEMICOLON || p.ts.peek().Kind == token.RBRACE {
			p.ts.advance()
			p.log.Debug("parser resynchronized", "from_line", from.Line, "to_line", p.ts.peek().Pos.Line)
			return
		}
		p.ts.advance()
	}
}

func (p *Parser) skipNewlines() {
	for !p.ts.atEnd() && p.ts.peek().Kind == token.NEWLINE {
		p.ts.advance()
	}
}

// program -> boundaries_opt globals love_main
func (p *Parser) program() {
	p.skipNewlines()
	p.boundariesOpt()
	p.globals()
	p.loveMain()
	p.skipNewlines()
	if !p.ts.atEnd() {
		p.errorf(p.ts.peek(), "unexpected tokens after program end")
	}
}

func (p *Parser) boundariesOpt() {
	if p.ts.peek().Lexeme != "boundaries" {
		return
	}
	p.ts.advance()
	if !p.ts.match(token.IDENTIFIER) {
		p.errorf(p.ts.peek(), "expected identifier after `boundaries`", diag.ClassOf("identifier"))
	}
	if !p.ts.match(token.LBRACE) {
		p.errorf(p.ts.peek(), "expected `{` after boundaries name", diag.LiteralOf("{"))
	}
	p.globals()
	if !p.ts.match(token.RBRACE) {
		p.errorf(p.ts.peek(), "expected `}` after boundaries block", diag.LiteralOf("}"))
	}
}

func (p *Parser) globals() {
	for !p.ts.atEnd() && p.ts.peek().Lexeme != "love" {
		p.skipNewlines()
		if p.ts.atEnd() || p.ts.peek().Lexeme == "love" {
			break
		}
		if !p.declarationOrFunction() {
			p.synchronize()
		}
	}
}

func (p *Parser) loveMain() {
	tok := p.ts.peek()
	if tok.Lexeme != "love" {
		p.errorf(tok, "program must start with a `love` block", diag.LiteralOf("love"))
		return
	}
	p.ts.advance()
	if !p.ts.match(token.IDENTIFIER) {
		p.errorf(p.ts.peek(), "expected identifier after `love`", diag.ClassOf("identifier"))
	}
	if !p.ts.match(token.LPAREN) {
		p.errorf(p.ts.peek(), "expected `(` after main name", diag.LiteralOf("("))
	}
	if !p.ts.match(token.RPAREN) {
		p.errorf(p.ts.peek(), "expected `)` after parameters", diag.LiteralOf(")"))
	}
	p.block()
}

func (p *Parser) declarationOrFunction() bool {
	if !typeKeyword(p.ts.peek().Kind) {
		return false
	}
	if p.lookaheadIsFunction() {
		p.functionDef()
	} else {
		p.declaration()
	}
	return true
}

func (p *Parser) lookaheadIsFunction() bool {
	save := p.ts.pos
	p.ts.advance() // type
	isFunc := p.ts.match(token.IDENTIFIER) && p.ts.match(token.LPAREN)
	p.ts.pos = save
	return isFunc
}

func (p *Parser) functionDef() {
	p.ts.advance() // return type
	if !p.ts.match(token.IDENTIFIER) {
		p.errorf(p.ts.peek(), "expected function name", diag.ClassOf("identifier"))
	}
	p.paramList()
	p.block()
}

func (p *Parser) paramList() {
	if !p.ts.match(token.LPAREN) {
		p.errorf(p.ts.peek(), "expected `(` in parameter list", diag.LiteralOf("("))
		return
	}
	if typeKeyword(p.ts.peek().Kind) {
		p.param()
		for p.ts.match(token.COMMA) {
			p.param()
		}
	}
	if !p.ts.match(token.RPAREN) {
		p.errorf(p.ts.peek(), "expected `)` to close parameters", diag.LiteralOf(")"))
	}
}

func (p *Parser) param() {
	p.ts.advance() // type
	if !p.ts.match(token.IDENTIFIER) {
		p.errorf(p.ts.peek(), "expected parameter name", diag.ClassOf("identifier"))
	}
	p.arrayDecl()
}

func (p *Parser) declaration() {
	p.ts.advance() // type
	p.declarator()
	for p.ts.match(token.COMMA) {
		p.declarator()
	}
	if !p.ts.match(token.SEMICOLON) {
		p.errorf(p.ts.peek(), "expected `;` after declaration", diag.LiteralOf(";"))
	}
}

func (p *Parser) declarator() {
	if !p.ts.match(token.IDENTIFIER) {
		p.errorf(p.ts.peek(), "expected identifier in declaration", diag.ClassOf("identifier"))
		return
	}
	p.arrayDecl()
	if p.ts.match(token.ASSIGN) {
		p.expr()
	}
}

func (p *Parser) arrayDecl() {
	for p.ts.match(token.LBRACKET) {
		if !p.ts.match(token.RBRACKET) {
			cur := p.ts.peek().Kind
			if cur != token.INT_LITERAL && cur != token.IDENTIFIER {
				p.errorf(p.ts.peek(), "expected array size or `]`",
					diag.LiteralOf("]"), diag.ClassOf("INT_LITERAL"), diag.ClassOf("identifier"))
			} else {
				p.expr()
			}
			if !p.ts.match(token.RBRACKET) {
				p.errorf(p.ts.peek(), "expected `]`", diag.LiteralOf("]"))
			}
		}
	}
}

func (p *Parser) block() {
	if !p.ts.match(token.LBRACE) {
		p.errorf(p.ts.peek(), "expected `{` to start block", diag.LiteralOf("{"))
		return
	}
	for !p.ts.atEnd() {
		p.skipNewlines()
		if p.ts.peek().Kind == token.RBRACE {
			break
		}
		if typeKeyword(p.ts.peek().Kind) {
			p.declaration()
		} else {
			p.statement()
		}
	}
	if !p.ts.match(token.RBRACE) {
		p.errorf(p.ts.peek(), "expected `}` to close block", diag.LiteralOf("}"))
	}
}

func (p *Parser) statement() {
	p.skipNewlines()
	tok := p.ts.peek()
	switch tok.Kind {
	case token.GIVE:
		p.inputStatement()
		return
	case token.EXPRESS:
		p.outputStatement()
		return
	case token.OVERSHARE:
		p.oversharestatement()
		return
	case token.FOREVER:
		p.conditionalStatement()
		return
	case token.FOR, token.WHILE, token.PURSUE:
		p.loopStatement()
		return
	case token.CHOOSE:
		p.chooseStatement()
		return
	case token.BREAKUP, token.MOVEON:
		p.controlFlowStatement()
		return
	case token.COMEBACK:
		p.comebackStatement()
		return
	}

	p.expr()
	p.skipNewlines()
	if !p.ts.match(token.SEMICOLON) {
		p.errorf(p.ts.peek(), "expected `;` after statement", diag.LiteralOf(";"), diag.LiteralOf("}"))
	}
}

// --- expressions, precedence-climbing ---------------------------------

var assignKinds = []token.Kind{
	token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN,
	token.MUL_ASSIGN, token.DIV_ASSIGN, token.MOD_ASSIGN,
}

func (p *Parser) expr() {
	p.assignment()
}

func (p *Parser) assignment() {
	p.logicalOr()
	if containsKind(assignKinds, p.ts.peek().Kind) {
		p.ts.advance()
		p.assignment()
	}
}

func containsKind(kinds []token.Kind, k token.Kind) bool {
	for _, want := range kinds {
		if want == k {
			return true
		}
	}
	return false
}

func (p *Parser) logicalOr() {
	p.logicalAnd()
	for p.ts.peek().Kind == token.OR {
		p.ts.advance()
		p.logicalAnd()
	}
}

func (p *Parser) logicalAnd() {
	p.equality()
	for p.ts.peek().Kind == token.AND {
		p.ts.advance()
		p.equality()
	}
}

func (p *Parser) equality() {
	p.comparison()
	for p.ts.peek().Kind == token.EQ || p.ts.peek().Kind == token.NEQ {
		p.ts.advance()
		p.comparison()
	}
}

func (p *Parser) comparison() {
	p.term()
	for {
		k := p.ts.peek().Kind
		if k == token.GT || k == token.LT || k == token.GTE || k == token.LTE {
			p.ts.advance()
			p.term()
			continue
		}
		break
	}
}

func (p *Parser) term() {
	p.factor()
	for p.ts.peek().Kind == token.PLUS || p.ts.peek().Kind == token.MINUS {
		p.ts.advance()
		p.factor()
	}
}

func (p *Parser) factor() {
	p.unary()
	for {
		k := p.ts.peek().Kind
		if k == token.STAR || k == token.SLASH || k == token.PERCENT {
			p.ts.advance()
			p.unary()
			continue
		}
		break
	}
}

func (p *Parser) unary() {
	k := p.ts.peek().Kind
	if k == token.BANG || k == token.MINUS || k == token.INC || k == token.DEC {
		p.ts.advance()
		p.unary()
		return
	}
	p.primary()
}

func (p *Parser) primary() {
	tok := p.ts.peek()
	if literalKinds[tok.Kind] {
		p.ts.advance()
		p.postfix()
		return
	}
	if tok.Kind == token.LPAREN {
		p.ts.advance()
		p.expr()
		if !p.ts.match(token.RPAREN) {
			p.errorf(p.ts.peek(), "expected `)` after expression", diag.LiteralOf(")"))
		}
		return
	}
	p.errorf(tok, "expected expression", diag.ClassOf("identifier"), diag.ClassOf("literal"), diag.LiteralOf("("))
	p.ts.advance()
}

func (p *Parser) postfix() {
	for {
		if p.ts.match(token.LPAREN) {
			for p.ts.peek().Kind != token.RPAREN && !p.ts.atEnd() {
				p.expr()
				if !p.ts.match(token.COMMA) {
					break
				}
			}
			if !p.ts.match(token.RPAREN) {
				p.errorf(p.ts.peek(), "expected `)` after arguments", diag.LiteralOf(")"))
			}
			continue
		}
		if p.ts.match(token.LBRACKET) {
			p.expr()
			if !p.ts.match(token.RBRACKET) {
				p.errorf(p.ts.peek(), "expected `]` after index", diag.LiteralOf("]"))
			}
			continue
		}
		break
	}
}

// --- I/O statements -----------------------------------------------------

func (p *Parser) inputStatement() {
	p.ts.advance() // give
	if !p.ts.match(token.RSHIFT) {
		p.errorf(p.ts.peek(), "expected `>>` after `give`", diag.LiteralOf(">>"))
		return
	}
	p.expr()
	p.skipNewlines()
	if !p.ts.match(token.SEMICOLON) {
		p.errorf(p.ts.peek(), "expected `;` after input statement", diag.LiteralOf(";"))
	}
}

func (p *Parser) outputStatement() {
	p.ts.advance() // express
	if !p.ts.match(token.LSHIFT) {
		p.errorf(p.ts.peek(), "expected `<<` after `express`", diag.LiteralOf("<<"))
		return
	}
	p.outputChain()
	p.skipNewlines()
	if !p.ts.match(token.SEMICOLON) {
		p.errorf(p.ts.peek(), "expected `;` after output statement", diag.LiteralOf(";"))
	}
}

func (p *Parser) outputChain() {
	p.outputValue()
	for p.ts.match(token.LSHIFT) {
		p.outputValue()
	}
}

func (p *Parser) outputValue() {
	tok := p.ts.peek()
	if tok.Kind == token.PERIODT {
		p.ts.advance()
		return
	}
	if literalKinds[tok.Kind] || tok.Kind == token.LPAREN {
		p.expr()
		return
	}
	p.errorf(tok, "expected a value after `<<`",
		diag.ClassOf("identifier"), diag.ClassOf("literal"), diag.LiteralOf("("), diag.LiteralOf("periodt"))
	p.ts.advance()
}

func (p *Parser) oversharestatement() {
	p.ts.advance() // overshare
	if !p.ts.match(token.LPAREN) {
		p.errorf(p.ts.peek(), "expected `(` after `overshare`", diag.LiteralOf("("))
		return
	}
	p.arguments()
	if !p.ts.match(token.RPAREN) {
		p.errorf(p.ts.peek(), "expected `)` after overshare arguments", diag.LiteralOf(")"))
	}
	p.skipNewlines()
	if !p.ts.match(token.SEMICOLON) {
		p.errorf(p.ts.peek(), "expected `;` after overshare statement", diag.LiteralOf(";"))
	}
}

func (p *Parser) arguments() {
	if p.ts.peek().Kind == token.RPAREN {
		return
	}
	p.expr()
	for p.ts.match(token.COMMA) {
		p.expr()
	}
}

// --- Conditionals, loops, switch ----------------------------------------

func (p *Parser) conditionalStatement() {
	p.ts.advance() // forever
	if !p.ts.match(token.LPAREN) {
		p.errorf(p.ts.peek(), "expected `(` after `forever`", diag.LiteralOf("("))
	} else {
		p.expr()
		if !p.ts.match(token.RPAREN) {
			p.errorf(p.ts.peek(), "expected `)` after condition", diag.LiteralOf(")"))
		}
	}
	p.block()
	for p.ts.peek().Kind == token.FOREVERMORE {
		p.ts.advance()
		if !p.ts.match(token.LPAREN) {
			p.errorf(p.ts.peek(), "expected `(` after `forevermore`", diag.LiteralOf("("))
		} else {
			p.expr()
			if !p.ts.match(token.RPAREN) {
				p.errorf(p.ts.peek(), "expected `)` after condition", diag.LiteralOf(")"))
			}
		}
		p.block()
	}
	if p.ts.peek().Kind == token.MORE {
		p.ts.advance()
		p.block()
	}
}

func (p *Parser) loopStatement() {
	switch p.ts.peek().Kind {
	case token.FOR:
		p.ts.advance()
		if !p.ts.match(token.LPAREN) {
			p.errorf(p.ts.peek(), "expected `(` after `for`", diag.LiteralOf("("))
		} else {
			if typeKeyword(p.ts.peek().Kind) {
				p.declaration()
			} else {
				p.expr()
				if !p.ts.match(token.SEMICOLON) {
					p.errorf(p.ts.peek(), "expected `;` after for-loop initializer", diag.LiteralOf(";"))
				}
			}
			p.expr()
			if !p.ts.match(token.SEMICOLON) {
				p.errorf(p.ts.peek(), "expected `;` after for-loop condition", diag.LiteralOf(";"))
			}
			p.expr()
			if !p.ts.match(token.RPAREN) {
				p.errorf(p.ts.peek(), "expected `)` after for-loop update", diag.LiteralOf(")"))
			}
		}
		p.block()
	case token.WHILE:
		p.ts.advance()
		if !p.ts.match(token.LPAREN) {
			p.errorf(p.ts.peek(), "expected `(` after `while`", diag.LiteralOf("("))
		} else {
			p.expr()
			if !p.ts.match(token.RPAREN) {
				p.errorf(p.ts.peek(), "expected `)` after condition", diag.LiteralOf(")"))
			}
		}
		p.block()
	case token.PURSUE:
		p.ts.advance()
		p.block()
		if !p.ts.match(token.WHILE) {
			p.errorf(p.ts.peek(), "expected `while` after `pursue` block", diag.LiteralOf("while"))
		} else {
			if !p.ts.match(token.LPAREN) {
				p.errorf(p.ts.peek(), "expected `(` after `while`", diag.LiteralOf("("))
			} else {
				p.expr()
				if !p.ts.match(token.RPAREN) {
					p.errorf(p.ts.peek(), "expected `)` after condition", diag.LiteralOf(")"))
				}
			}
			if !p.ts.match(token.SEMICOLON) {
				p.errorf(p.ts.peek(), "expected `;` after `pursue` ... `while`", diag.LiteralOf(";"))
			}
		}
	}
}

func (p *Parser) chooseStatement() {
	p.ts.advance() // choose
	if !p.ts.match(token.LPAREN) {
		p.errorf(p.ts.peek(), "expected `(` after `choose`", diag.LiteralOf("("))
	} else {
		p.expr()
		if !p.ts.match(token.RPAREN) {
			p.errorf(p.ts.peek(), "expected `)` after choose expression", diag.LiteralOf(")"))
		}
	}
	if !p.ts.match(token.LBRACE) {
		p.errorf(p.ts.peek(), "expected `{` after `choose`", diag.LiteralOf("{"))
		return
	}
	p.skipNewlines()
	for p.ts.peek().Kind == token.PHASE {
		p.ts.advance()
		p.expr()
		if !p.ts.match(token.COLON) {
			p.errorf(p.ts.peek(), "expected `:` after phase value", diag.LiteralOf(":"))
		}
		p.block()
		p.skipNewlines()
	}
	if p.ts.peek().Kind == token.BAREMINIMUM {
		p.ts.advance()
		if !p.ts.match(token.COLON) {
			p.errorf(p.ts.peek(), "expected `:` after `bareminimum`", diag.LiteralOf(":"))
		}
		p.block()
		p.skipNewlines()
	}
	if !p.ts.match(token.RBRACE) {
		p.errorf(p.ts.peek(), "expected `}` after choose cases", diag.LiteralOf("}"))
	}
}

func (p *Parser) controlFlowStatement() {
	p.ts.advance() // breakup | moveon
	if !p.ts.match(token.SEMICOLON) {
		p.errorf(p.ts.peek(), "expected `;` after control-flow statement", diag.LiteralOf(";"))
	}
}

func (p *Parser) comebackStatement() {
	p.ts.advance() // comeback
	if p.ts.peek().Kind != token.SEMICOLON {
		p.expr()
	}
	if !p.ts.match(token.SEMICOLON) {
		p.errorf(p.ts.peek(), "expected `;` after `comeback`", diag.LiteralOf(";"))
	}
}
