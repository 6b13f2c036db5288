package lexer

import (
	"testing"

	"github.com/alecthomas/repr"
	"github.com/lovers-lang/lovers/pkg/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeMainSkeleton(t *testing.T) {
	src := "love main() {\n}\n"
	tokens, err := New(src).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := kinds(tokens)
	want := []token.Kind{
		token.LOVE, token.IDENTIFIER, token.LPAREN, token.RPAREN, token.LBRACE,
		token.NEWLINE, token.RBRACE, token.NEWLINE, token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeLiterals(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind token.Kind
		lit  string
	}{
		{"int", "42", token.INT_LITERAL, "42"},
		{"float", "3.14", token.FLOAT_LITERAL, "3.14"},
		{"string", `"hi"`, token.STRING_LITERAL, "hi"},
		{"true", "greenflag", token.BOOL_LITERAL_TRUE, ""},
		{"false", "redflag", token.BOOL_LITERAL_FALSE, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := New(tt.src).Tokenize()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tokens[0].Kind != tt.kind {
				t.Fatalf("kind = %v, want %v", tokens[0].Kind, tt.kind)
			}
			if tt.lit != "" && tokens[0].Literal != tt.lit {
				t.Fatalf("literal = %q, want %q", tokens[0].Literal, tt.lit)
			}
		})
	}
}

func TestTokenizeComments(t *testing.T) {
	src := "// a comment\ndear x;\n/* block\ncomment */dearest y;"
	tokens, err := New(src).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := kinds(tokens)
	foundDear, foundDearest := false, false
	for _, k := range got {
		if k == token.DEAR {
			foundDear = true
		}
		if k == token.DEAREST {
			foundDearest = true
		}
	}
	if !foundDear || !foundDearest {
		t.Fatalf("expected both DEAR and DEAREST tokens, got %v", got)
	}
}

func TestTokenizeWithErrorsCollectsAll(t *testing.T) {
	src := "dear $x; rant @y;"
	_, errs := New(src).TokenizeWithErrors()
	if len(errs) < 2 {
		t.Fatalf("expected at least 2 errors, got %d:\n%s", len(errs), repr.Repr(errs))
	}
}

func TestIdentifierTooLong(t *testing.T) {
	src := "abcdefghijklmnopqrstuvwxyz"
	_, errs := New(src).TokenizeWithErrors()
	found := false
	for _, e := range errs {
		if e.Code == ErrIdentifierTooLong {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ErrIdentifierTooLong, got %v", errs)
	}
}

func TestReservedWordWrongCase(t *testing.T) {
	src := "Love x;"
	_, errs := New(src).TokenizeWithErrors()
	found := false
	for _, e := range errs {
		if e.Code == ErrReservedWordCase {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ErrReservedWordCase, got %v", errs)
	}
}

func TestUnterminatedString(t *testing.T) {
	src := `rant s = "unterminated`
	_, errs := New(src).TokenizeWithErrors()
	if len(errs) != 1 || errs[0].Code != ErrUnterminatedString {
		t.Fatalf("expected a single ErrUnterminatedString, got %v", errs)
	}
}

func TestSingleQuoteStringRejected(t *testing.T) {
	src := "'x'"
	_, errs := New(src).TokenizeWithErrors()
	if len(errs) == 0 || errs[0].Code != ErrInvalidStringQuote {
		t.Fatalf("expected ErrInvalidStringQuote, got %v", errs)
	}
}

func TestFollowSetViolationOnDear(t *testing.T) {
	// `dear` may only be followed by whitespace; `dear+x;` violates that.
	src := "dear+x;"
	_, errs := New(src).TokenizeWithErrors()
	found := false
	for _, e := range errs {
		if e.Code == ErrInvalidFollow {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ErrInvalidFollow for `dear`, got %v", errs)
	}
}

func TestIntegerLiteralTooManyDigits(t *testing.T) {
	src := "love main() { dear x = 99999999999; }"
	_, errs := New(src).TokenizeWithErrors()
	found := false
	for _, e := range errs {
		if e.Code == ErrNumericRange {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ErrNumericRange for an 11-digit integer, got %v", errs)
	}
}

func TestIntegerLiteralAtMaxDigitsIsValid(t *testing.T) {
	tokens, err := New("9999999999").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Kind != token.INT_LITERAL || tokens[0].Literal != "9999999999" {
		t.Fatalf("got %+v, want INT_LITERAL 9999999999", tokens[0])
	}
}

func TestFloatLiteralTooManyIntDigits(t *testing.T) {
	_, errs := New("12345678901.5").TokenizeWithErrors()
	found := false
	for _, e := range errs {
		if e.Code == ErrNumericRange {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ErrNumericRange for 11 digits before the decimal point, got %v", errs)
	}
}

func TestFloatLiteralExceedsValue(t *testing.T) {
	_, errs := New("9999999999.9999999").TokenizeWithErrors()
	found := false
	for _, e := range errs {
		if e.Code == ErrNumericRange {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ErrNumericRange, got %v", errs)
	}
}

func TestFloatLiteralNormalization(t *testing.T) {
	tokens, err := New("007.123000").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Literal != "7.123" {
		t.Fatalf("literal = %q, want %q", tokens[0].Literal, "7.123")
	}
}

func TestFloatLiteralFracTruncatedToSixDigits(t *testing.T) {
	tokens, err := New("1.123456789").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Literal != "1.123456" {
		t.Fatalf("literal = %q, want %q", tokens[0].Literal, "1.123456")
	}
}

func TestNumeralAbuttingIllegalCharacter(t *testing.T) {
	_, errs := New("42@").TokenizeWithErrors()
	found := false
	for _, e := range errs {
		if e.Code == ErrInvalidFollow {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ErrInvalidFollow for a numeral abutting `@`, got %v", errs)
	}
}

func TestDisallowedIdentifierTrueFalse(t *testing.T) {
	for _, src := range []string{"true", "False"} {
		_, errs := New(src).TokenizeWithErrors()
		found := false
		for _, e := range errs {
			if e.Code == ErrDisallowedIdentifier {
				found = true
			}
		}
		if !found {
			t.Fatalf("source %q: expected ErrDisallowedIdentifier, got %v", src, errs)
		}
	}
}

func TestInvalidEscapeSequence(t *testing.T) {
	src := `rant s = "\q";`
	_, errs := New(src).TokenizeWithErrors()
	found := false
	for _, e := range errs {
		if e.Code == ErrInvalidEscape {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ErrInvalidEscape, got %v", errs)
	}
}

func TestStringEscapeDecoding(t *testing.T) {
	src := `"a\tb\nc\"d\\e"`
	tokens, err := New(src).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "a\tb\nc\"d\\e"
	if tokens[0].Literal != want {
		t.Fatalf("literal = %q, want %q", tokens[0].Literal, want)
	}
}

func TestPositionTracking(t *testing.T) {
	src := "dear\nx;"
	tokens, err := New(src).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Pos.Line != 1 || tokens[0].Pos.Column != 1 {
		t.Fatalf("dear position = %+v, want {1 1}", tokens[0].Pos)
	}
	// tokens[1] is NEWLINE, tokens[2] is `x` on line 2.
	if tokens[2].Pos.Line != 2 || tokens[2].Pos.Column != 1 {
		t.Fatalf("x position = %+v, want {2 1}", tokens[2].Pos)
	}
}
