// Package diag holds diagnostic formatting shared by the lexer, structural
// validator, and parser: source-context rendering and expected-follower
// grouping.
package diag

import (
	"fmt"
	"sort"
	"strings"
)

// GenerateErrorContext renders up to two lines of source before and after
// line, with a `^` pointer at column. Mirrors the two-line-context style
// used throughout this front-end's diagnostics.
func GenerateErrorContext(source string, line, column int) string {
	if source == "" || line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}

	start := line - 3
	if start < 0 {
		start = 0
	}
	end := line + 2
	if end > len(lines) {
		end = len(lines)
	}

	var buf strings.Builder
	lineNumWidth := len(fmt.Sprintf("%d", end))

	for i := start; i < end; i++ {
		lineNum := i + 1
		lineContent := lines[i]

		if lineNum == line {
			buf.WriteString(fmt.Sprintf("> %*d | %s\n", lineNumWidth, lineNum, lineContent))
			pointerIndent := 2 + lineNumWidth + 3
			if column > 0 {
				buf.WriteString(fmt.Sprintf("%s%s^\n", strings.Repeat(" ", pointerIndent), strings.Repeat(" ", column-1)))
			} else {
				buf.WriteString(fmt.Sprintf("%s^\n", strings.Repeat(" ", pointerIndent)))
			}
		} else {
			buf.WriteString(fmt.Sprintf("  %*d | %s\n", lineNumWidth, lineNum, lineContent))
		}
	}

	return buf.String()
}

// Expectation is a single named thing a diagnostic says was expected at a
// position: either a class of characters ("whitespace", "digit") or one
// specific literal character/lexeme.
type Expectation struct {
	Class   string // non-empty when this expectation names a character class
	Literal string // non-empty when this expectation names one specific char/lexeme
}

// ClassOf builds a class-level Expectation.
func ClassOf(name string) Expectation { return Expectation{Class: name} }

// LiteralOf builds a single-literal Expectation.
func LiteralOf(lexeme string) Expectation { return Expectation{Literal: lexeme} }

// FormatExpected renders a list of expectations into a single
// human-readable clause, grouping character classes ahead of individual
// literals, sorting and deduplicating both, e.g. "digit, whitespace, or one of `(`, `;`".
func FormatExpected(expected []Expectation) string {
	if len(expected) == 0 {
		return ""
	}

	classSeen := map[string]bool{}
	var classes []string
	litSeen := map[string]bool{}
	var literals []string

	for _, e := range expected {
		if e.Class != "" && !classSeen[e.Class] {
			classSeen[e.Class] = true
			classes = append(classes, e.Class)
		}
		if e.Literal != "" && !litSeen[e.Literal] {
			litSeen[e.Literal] = true
			literals = append(literals, e.Literal)
		}
	}
	sort.Strings(classes)
	sort.Strings(literals)

	var parts []string
	parts = append(parts, classes...)
	if len(literals) > 0 {
		quoted := make([]string, len(literals))
		for i, l := range literals {
			quoted[i] = "`" + l + "`"
		}
		if len(quoted) == 1 {
			parts = append(parts, quoted[0])
		} else {
			parts = append(parts, "one of "+strings.Join(quoted, ", "))
		}
	}

	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + ", or " + parts[len(parts)-1]
	}
}
