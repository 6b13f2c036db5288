package parser

import (
	"testing"

	"github.com/alecthomas/repr"
	"github.com/lovers-lang/lovers/pkg/lexer"
)

func parseSource(t *testing.T, src string) (bool, []*ParseError) {
	t.Helper()
	tokens, err := lexer.New(src).Tokenize()
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	ok, _, errs := New(tokens, src).Parse()
	return ok, errs
}

func TestParseMinimalProgram(t *testing.T) {
	ok, errs := parseSource(t, "love main() {\n}\n")
	if !ok {
		t.Fatalf("expected parse success, got errors: %v", errs)
	}
}

func TestParseDeclarationsAndStatements(t *testing.T) {
	src := `love main() {
  dear x = 1;
  dearest y = 2.5;
  rant s = "hi";
  status flag = greenflag;
  express << x << periodt;
  give >> x;
  x = x + 1;
}
`
	ok, errs := parseSource(t, src)
	if !ok {
		t.Fatalf("expected parse success, got errors: %v", errs)
	}
}

func TestParseConditional(t *testing.T) {
	src := `love main() {
  dear x = 1;
  forever (x > 0) {
    x = x - 1;
  } forevermore (x == 0) {
    x = 1;
  } more {
    x = 2;
  }
}
`
	ok, errs := parseSource(t, src)
	if !ok {
		t.Fatalf("expected parse success, got errors: %v", errs)
	}
}

func TestParseLoops(t *testing.T) {
	src := `love main() {
  for (dear i = 0; i < 10; ++i) {
    moveon;
  }
  while (greenflag) {
    breakup;
  }
  pursue {
    x = 1;
  } while (redflag);
}
`
	ok, errs := parseSource(t, src)
	if !ok {
		t.Fatalf("expected parse success, got errors: %v", errs)
	}
}

func TestParseChoose(t *testing.T) {
	src := `love main() {
  choose (x) {
    phase 1: {
      breakup;
    }
    bareminimum: {
      breakup;
    }
  }
}
`
	ok, errs := parseSource(t, src)
	if !ok {
		t.Fatalf("expected parse success, got errors: %v", errs)
	}
}

func TestParseFunctionAndReturn(t *testing.T) {
	src := `dear add(dear a, dear b) {
  comeback a + b;
}
love main() {
  dear sum = add(1, 2);
}
`
	ok, errs := parseSource(t, src)
	if !ok {
		t.Fatalf("expected parse success, got errors: %v", errs)
	}
}

func TestParseMissingSemicolonCollectsError(t *testing.T) {
	src := `love main() {
  dear x = 1
  dear y = 2;
}
`
	ok, errs := parseSource(t, src)
	if ok {
		t.Fatal("expected parse failure")
	}
	if len(errs) == 0 {
		t.Fatal("expected at least one error")
	}
}

func TestParseMultipleErrorsCollected(t *testing.T) {
	src := `love main() {
  dear x = ;
  dearest y = ;
}
`
	ok, errs := parseSource(t, src)
	if ok {
		t.Fatal("expected parse failure")
	}
	if len(errs) < 2 {
		t.Fatalf("expected multiple collected errors, got %d:\n%s", len(errs), repr.Repr(errs))
	}
}

func TestParseArrayDeclaration(t *testing.T) {
	src := `love main() {
  dear arr[10];
  arr[0] = 1;
}
`
	ok, errs := parseSource(t, src)
	if !ok {
		t.Fatalf("expected parse success, got errors: %v", errs)
	}
}
