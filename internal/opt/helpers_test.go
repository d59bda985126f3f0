package opt

import (
	"testing"

	"sumi/internal/ast"
	"sumi/internal/parser"
)

// parseProgram parses a test source and fails the test on any diagnostic,
// so pass tests only ever see valid trees.
func parseProgram(t *testing.T, source string) *ast.Program {
	t.Helper()
	program, errs := parser.ParseSource("test.sumi", source)
	if len(errs) > 0 {
		t.Fatalf("parse failed: %s", errs[0].Message)
	}
	return program
}

// applyPass parses source, runs a single pass over it and returns the
// canonical form together with the pass's change report.
func applyPass(t *testing.T, pass Pass, source string) (string, bool) {
	t.Helper()
	program := parseProgram(t, source)
	changed := pass.Apply(program)
	return program.String(), changed
}
