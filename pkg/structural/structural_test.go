package structural

import (
	"testing"

	"github.com/lovers-lang/lovers/pkg/lexer"
)

func validate(t *testing.T, src string) Verdict {
	t.Helper()
	tokens, err := lexer.New(src).Tokenize()
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	return ValidateStructure(tokens)
}

func TestValidateStructureMinimalMain(t *testing.T) {
	v := validate(t, "love main() {\n}\n")
	if !v.OK {
		t.Fatalf("expected OK, got %+v", v)
	}
}

func TestValidateStructureEmpty(t *testing.T) {
	v := validate(t, "")
	if v.OK || v.Code != ErrEmpty {
		t.Fatalf("expected ERR_EMPTY, got %+v", v)
	}
}

func TestValidateStructureMissingLove(t *testing.T) {
	v := validate(t, "dearest x;\n")
	if v.OK || v.Code != ErrExpectedLove {
		t.Fatalf("expected ERR_EXPECTED_LOVE, got %+v", v)
	}
}

func TestValidateStructureGlobalThenMain(t *testing.T) {
	v := validate(t, "dear counter;\nlove main() {\n}\n")
	if !v.OK {
		t.Fatalf("expected OK, got %+v", v)
	}
}

func TestValidateStructureGlobalFunctionPrototype(t *testing.T) {
	v := validate(t, "dear helper(dear n);\nlove main() {\n}\n")
	if !v.OK {
		t.Fatalf("expected OK, got %+v", v)
	}
}

func TestValidateStructureUnbalancedParen(t *testing.T) {
	v := validate(t, "love main( {\n}\n")
	if v.OK {
		t.Fatal("expected failure for unbalanced paren")
	}
}

func TestValidateStructureTrailingTokens(t *testing.T) {
	v := validate(t, "love main() {\n}\ndear leftover;")
	if v.OK || v.Code != ErrUnexpectedTokenAfterMain {
		t.Fatalf("expected ERR_UNEXPECTED_TOKEN_AFTER_MAIN, got %+v", v)
	}
}

func TestValidateStructureMismatchedBrace(t *testing.T) {
	v := validate(t, "love main() {\n]\n")
	if v.OK {
		t.Fatal("expected failure for mismatched delimiter")
	}
}
