package token

// Row is the flattened, display-oriented projection of a Token returned to
// callers on a successful parse — no AST, just a lexeme/token/kind triple
// per non-trivia token.
type Row struct {
	Lexeme    string
	Token     string // symbol/keyword spelling, or the decoded literal value
	TokenType string // coarse display category (12 characters or fewer)
}

// labelOverrides collapses paired delimiter kinds down to one shared label
// for display, mirroring how open/close brackets read the same in a token
// listing.
var labelOverrides = map[Kind]string{
	LPAREN:    "PAR",
	RPAREN:    "PAR",
	LBRACE:    "BRACE",
	RBRACE:    "BRACE",
	LBRACKET:  "BRACKET",
	RBRACKET:  "BRACKET",
	GT:        "GREATER_THAN",
	LT:        "LESS_THAN",
	SEMICOLON: "TERM",
}

// typeOverrides buckets individual punctuation/operator kinds into the
// coarse categories a token-row display groups them under.
var typeOverrides = map[Kind]string{
	LPAREN: "BRACKET", RPAREN: "BRACKET", LBRACKET: "BRACKET", RBRACKET: "BRACKET",
	LBRACE: "BRACE", RBRACE: "BRACE",
	SEMICOLON: "DELIMITER", COMMA: "DELIMITER", COLON: "DELIMITER",
	QUESTION: "DELIMITER", DOT: "DELIMITER",
	PLUS: "OPERATOR", MINUS: "OPERATOR", STAR: "OPERATOR", SLASH: "OPERATOR",
	PERCENT: "OPERATOR", ASSIGN: "OPERATOR", GT: "OPERATOR", LT: "OPERATOR",
	BANG: "OPERATOR", AMPERSAND: "OPERATOR", PIPE: "OPERATOR", HASH: "OPERATOR",
}

// multiCharOperators is the set of kinds displayed by their bare symbol
// (stripped of any descriptive prefix) rather than a kind name.
var multiCharOperators = map[Kind]bool{
	EQ: true, NEQ: true, GTE: true, LTE: true, AND: true, OR: true,
	INC: true, DEC: true, PLUS_ASSIGN: true, MINUS_ASSIGN: true,
	MUL_ASSIGN: true, DIV_ASSIGN: true, MOD_ASSIGN: true, SCOPE: true, ARROW: true,
}

// ToRow projects t into its display Row. EOF and NEWLINE tokens have no
// useful projection; callers filter them out before calling ToRow (see
// ToRows).
func (t Token) ToRow() Row {
	return Row{
		Lexeme:    t.Lexeme,
		Token:     displayToken(t),
		TokenType: displayType(t.Kind),
	}
}

func displayToken(t Token) string {
	if t.Kind.IsReserved() {
		return t.Lexeme
	}
	if t.Kind == IDENTIFIER {
		return t.Lexeme
	}
	if t.Literal != "" {
		return t.Literal
	}
	if multiCharOperators[t.Kind] {
		return t.Kind.String()
	}
	if name, ok := labelOverrides[t.Kind]; ok {
		return name
	}
	return t.Kind.String()
}

func displayType(k Kind) string {
	switch k {
	case INT_LITERAL:
		return "INT_LIT"
	case FLOAT_LITERAL:
		return "FLOAT_LIT"
	case STRING_LITERAL:
		return "STRING_LIT"
	case BOOL_LITERAL_TRUE, BOOL_LITERAL_FALSE:
		return "BOOL_LIT"
	}
	if name, ok := typeOverrides[k]; ok {
		return name
	}
	return truncate(k.String(), 12)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// ToRows projects a token slice into its Row listing, dropping EOF and
// NEWLINE tokens.
func ToRows(tokens []Token) []Row {
	rows := make([]Row, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind == EOF || t.Kind == NEWLINE {
			continue
		}
		rows = append(rows, t.ToRow())
	}
	return rows
}
