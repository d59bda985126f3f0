package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// Parsing the canonical form must reproduce the canonical form exactly,
// otherwise the optimizer's printed output would drift between runs.
func TestPrintParseRoundTrip(t *testing.T) {
	sources := []string{
		"let x := 1\n",
		"let a, b := fetch()\nfunction fetch() -> x, y {\n    x := 1\n    y := 2\n}\n",
		"let v := 0\nv := add(v, 1)\n",
		"sstore(0, add(sload(0), 1))\n",
		"if iszero(calldatasize()) {\n    revert(0, 0)\n}\n",
		"switch calldataload(0)\ncase 0 {\n    leave\n}\ncase 0x20 { }\ndefault {\n    revert(0, 0)\n}\n",
		"for {\n    let i := 0\n} lt(i, 10) {\n    i := add(i, 1)\n} {\n    continue\n}\n",
		"function noop() { }\n",
		"{\n    let scoped := 1\n}\n",
		"let t := true\nlet f := false\n",
	}

	for _, source := range sources {
		program, parseErrors := ParseSource("test.sumi", source)
		assert.Empty(t, parseErrors, "Source should parse cleanly: %q", source)
		if program == nil {
			continue
		}

		printed := program.String()
		reparsed, parseErrors := ParseSource("test.sumi", printed)
		assert.Empty(t, parseErrors, "Canonical form should reparse: %q", printed)
		if reparsed == nil {
			continue
		}

		if diff := cmp.Diff(printed, reparsed.String()); diff != "" {
			t.Errorf("Round trip not stable for %q (-first +second):\n%s", source, diff)
		}
	}
}

func TestCanonicalFormNormalizesLayout(t *testing.T) {
	messy := "let   x:=1\n\n\n  if  iszero( x ) { x := 2\n }"
	clean := "let x := 1\nif iszero(x) {\n    x := 2\n}\n"

	program, parseErrors := ParseSource("test.sumi", messy)
	assert.Empty(t, parseErrors, "Messy layout should still parse")

	if diff := cmp.Diff(clean, program.String()); diff != "" {
		t.Errorf("Canonical form mismatch (-want +got):\n%s", diff)
	}
}

func TestCommentsAreNotPreserved(t *testing.T) {
	source := `// account balance lives in slot 0
let balance := sload(0) // cached read`

	program, parseErrors := ParseSource("test.sumi", source)
	assert.Empty(t, parseErrors, "Commented source should parse")

	if diff := cmp.Diff("let balance := sload(0)\n", program.String()); diff != "" {
		t.Errorf("Comments should be dropped from the canonical form (-want +got):\n%s", diff)
	}
}

func TestLiteralSpellingSurvivesRoundTrip(t *testing.T) {
	source := "let selector := 0x70a08231\nlet plain := 42\n"

	program, parseErrors := ParseSource("test.sumi", source)
	assert.Empty(t, parseErrors)

	if diff := cmp.Diff(source, program.String()); diff != "" {
		t.Errorf("Literal spelling should be preserved (-want +got):\n%s", diff)
	}
}
