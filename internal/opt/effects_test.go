package opt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sumi/internal/ast"
	"sumi/internal/builtins"
)

// analyzeFunctions builds an analysis over source and returns it with the
// top-level functions keyed by name.
func analyzeFunctions(t *testing.T, source string) (*Analysis, map[string]*ast.Function) {
	t.Helper()
	program := parseProgram(t, source)
	analysis := NewAnalysis(program)
	return analysis, functionsByName(analysis.Graph())
}

func firstExpr(t *testing.T, source string) (*Analysis, ast.Expr) {
	t.Helper()
	program := parseProgram(t, source)
	analysis := NewAnalysis(program)
	switch s := program.Entry.Statements[0].(type) {
	case *ast.ExprStmt:
		return analysis, s.Expr
	case *ast.LetStmt:
		return analysis, s.Expr
	}
	t.Fatalf("first statement carries no expression")
	return nil, nil
}

func TestExprEffectOfBuiltins(t *testing.T) {
	cases := []struct {
		source string
		want   builtins.Effect
	}{
		{"let x := add(1, 2)", builtins.Pure},
		{"let x := sload(0)", builtins.ReadsState},
		{"let x := calldataload(4)", builtins.ReadsState},
		{"sstore(0, 1)", builtins.HasSideEffect},
		{"let x := gas()", builtins.HasSideEffect},
		{"let x := msize()", builtins.HasSideEffect},
		{"revert(0, 0)", builtins.NeverReturns},
		{"stop()", builtins.NeverReturns},
		{"let x := add(sload(0), 1)", builtins.ReadsState},
		{"mstore(0, add(1, 2))", builtins.HasSideEffect},
	}
	for _, tc := range cases {
		analysis, expr := firstExpr(t, tc.source)
		assert.Equal(t, tc.want, analysis.ExprEffect(expr), "effect of %q", tc.source)
	}
}

func TestFunctionEffectClasses(t *testing.T) {
	analysis, fns := analyzeFunctions(t, `function pure_helper(x) -> y {
    y := add(x, 1)
}
function reader() -> v {
    v := sload(0)
}
function writer(v) {
    sstore(0, v)
}
function thrower() {
    revert(0, 0)
}
function maybe_throw(c) {
    if c {
        revert(0, 0)
    }
}
function via_reader() -> v {
    v := add(reader(), 1)
}
let v := add(pure_helper(1), via_reader())
sstore(0, add(v, writer_probe()))
function writer_probe() -> r {
    writer(2)
    r := maybe_throw_probe()
}
function maybe_throw_probe() -> r {
    maybe_throw(0)
    r := 1
    thrower()
}`)

	assert.Equal(t, builtins.Pure, analysis.FunctionEffect(fns["pure_helper"]))
	assert.Equal(t, builtins.ReadsState, analysis.FunctionEffect(fns["reader"]))
	assert.Equal(t, builtins.HasSideEffect, analysis.FunctionEffect(fns["writer"]))
	assert.Equal(t, builtins.NeverReturns, analysis.FunctionEffect(fns["thrower"]))
	assert.Equal(t, builtins.HasSideEffect, analysis.FunctionEffect(fns["maybe_throw"]),
		"a halt behind a condition is an effect, not a guarantee")
	assert.Equal(t, builtins.ReadsState, analysis.FunctionEffect(fns["via_reader"]),
		"classes propagate through user calls")
	assert.Equal(t, builtins.NeverReturns, analysis.FunctionEffect(fns["maybe_throw_probe"]),
		"an unconditional halting call at the top level never returns")
}

func TestRecursiveFunctionsClassifyConservatively(t *testing.T) {
	analysis, fns := analyzeFunctions(t, `function ping(n) -> r {
    r := pong(n)
}
function pong(n) -> r {
    r := ping(n)
}
let v := ping(1)
sstore(0, v)`)

	assert.Equal(t, builtins.HasSideEffect, analysis.FunctionEffect(fns["ping"]))
	assert.Equal(t, builtins.HasSideEffect, analysis.FunctionEffect(fns["pong"]))
}

func TestLeaveBlocksNeverReturns(t *testing.T) {
	analysis, fns := analyzeFunctions(t, `function guarded(c) -> r {
    if c {
        r := 1
        leave
    }
    revert(0, 0)
}
let v := guarded(1)
sstore(0, v)`)

	assert.Equal(t, builtins.HasSideEffect, analysis.FunctionEffect(fns["guarded"]),
		"a leave before the halt means the function can return")
}

func TestTerminates(t *testing.T) {
	program := parseProgram(t, `function halts() {
    revert(0, 0)
}
sstore(0, 1)
halts()
revert(0, 0)`)

	analysis := NewAnalysis(program)
	stmts := program.Entry.Statements
	require.Len(t, stmts, 4)

	assert.False(t, analysis.Terminates(stmts[0]), "a definition runs nothing")
	assert.False(t, analysis.Terminates(stmts[1]), "a store continues")
	assert.True(t, analysis.Terminates(stmts[2]), "a call to a never-returning function halts")
	assert.True(t, analysis.Terminates(stmts[3]))
}

func TestLoopNeverExits(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   bool
	}{
		{"literal condition no exit", `for { } 1 { } {
    sstore(0, 1)
}`, true},
		{"break escapes", `for { } 1 { } {
    break
}`, false},
		{"leave escapes", `function f() {
    for { } 1 { } {
        leave
    }
}
f()`, false},
		{"zero condition exits immediately", `for { } 0 { } {
    sstore(0, 1)
}`, false},
		{"computed condition might exit", `for {
    let i := 0
} lt(i, 10) {
    i := add(i, 1)
} {
    sstore(i, i)
}`, false},
		{"break in nested loop stays inner", `for { } 1 { } {
    for { } 1 { } {
        break
    }
}`, true},
		{"leave in nested function stays inner", `for { } 1 { } {
    function quit() -> r {
        r := 1
        leave
    }
    sstore(0, quit())
}`, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			program := parseProgram(t, tc.source)
			analysis := NewAnalysis(program)
			var loop *ast.ForStmt
			ast.Inspect(program, func(n ast.Node) bool {
				if l, ok := n.(*ast.ForStmt); ok && loop == nil {
					loop = l
				}
				return loop == nil
			})
			require.NotNil(t, loop)
			assert.Equal(t, tc.want, analysis.LoopNeverExits(loop))
		})
	}
}
