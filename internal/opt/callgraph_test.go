package opt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sumi/internal/ast"
)

// callsTo collects the call expressions naming callee, in traversal order.
func callsTo(program *ast.Program, callee string) []*ast.CallExpr {
	var calls []*ast.CallExpr
	ast.Inspect(program, func(n ast.Node) bool {
		if call, ok := n.(*ast.CallExpr); ok && call.Callee.Value == callee {
			calls = append(calls, call)
		}
		return true
	})
	return calls
}

func functionsByName(graph *CallGraph) map[string]*ast.Function {
	byName := make(map[string]*ast.Function)
	for _, fn := range graph.Functions() {
		byName[fn.Name.Value] = fn
	}
	return byName
}

func TestCallGraphResolvesHoistedCalls(t *testing.T) {
	program := parseProgram(t, `let v := helper()
sstore(0, v)
function helper() -> r {
    r := 7
}`)

	graph := BuildCallGraph(program)
	require.Len(t, graph.Functions(), 1)
	helper := graph.Functions()[0]

	calls := callsTo(program, "helper")
	require.Len(t, calls, 1)
	assert.Same(t, helper, graph.Callee(calls[0]))
	assert.Equal(t, 1, graph.SiteCount(helper))
	assert.Equal(t, []*ast.Function{helper}, graph.Callees(nil),
		"entry should have exactly one outgoing edge")
}

func TestCallGraphDistinguishesSiblingFunctions(t *testing.T) {
	program := parseProgram(t, `{
    function f() -> r {
        r := 1
    }
    let a := f()
    sstore(0, a)
}
{
    function f() -> r {
        r := 2
    }
    let b := f()
    sstore(1, b)
}`)

	graph := BuildCallGraph(program)
	fns := graph.Functions()
	require.Len(t, fns, 2)

	calls := callsTo(program, "f")
	require.Len(t, calls, 2)
	assert.Same(t, fns[0], graph.Callee(calls[0]), "first call binds the first sibling")
	assert.Same(t, fns[1], graph.Callee(calls[1]), "second call binds the second sibling")
	assert.Equal(t, 1, graph.SiteCount(fns[0]))
	assert.Equal(t, 1, graph.SiteCount(fns[1]))
}

func TestCallGraphSeesThroughFunctionBoundaries(t *testing.T) {
	program := parseProgram(t, `function base() -> r {
    r := 42
}
function wrapper() -> r {
    r := base()
}
let v := wrapper()
sstore(0, v)`)

	graph := BuildCallGraph(program)
	byName := functionsByName(graph)
	require.Contains(t, byName, "base")
	require.Contains(t, byName, "wrapper")

	assert.Equal(t, []*ast.Function{byName["base"]}, graph.Callees(byName["wrapper"]),
		"nested bodies resolve functions defined outside them")
	assert.Equal(t, []*ast.Function{byName["wrapper"]}, graph.Callees(nil))
	assert.Equal(t, 1, graph.SiteCount(byName["base"]))
}

func TestCallGraphMarksRecursion(t *testing.T) {
	program := parseProgram(t, `function fact(n) -> r {
    r := 1
    if n {
        let m := fact(sub(n, 1))
        r := mul(n, m)
    }
}
function is_even(n) -> b {
    b := 1
    if n {
        b := is_odd(sub(n, 1))
    }
}
function is_odd(n) -> b {
    b := 0
    if n {
        b := is_even(sub(n, 1))
    }
}
function straight(n) -> r {
    r := fact(n)
}
let v := straight(3)
sstore(0, v)`)

	graph := BuildCallGraph(program)
	byName := functionsByName(graph)

	assert.True(t, graph.IsRecursive(byName["fact"]), "self call")
	assert.True(t, graph.IsRecursive(byName["is_even"]), "mutual cycle")
	assert.True(t, graph.IsRecursive(byName["is_odd"]), "mutual cycle")
	assert.False(t, graph.IsRecursive(byName["straight"]), "calling into a cycle is not being on it")
}

func TestPostOrderListsCalleesFirst(t *testing.T) {
	program := parseProgram(t, `function outer() -> r {
    r := middle()
}
function middle() -> r {
    r := inner()
}
function inner() -> r {
    r := 1
}
let v := outer()
sstore(0, v)`)

	graph := BuildCallGraph(program)
	order := graph.PostOrder()
	require.Len(t, order, 3)

	position := make(map[string]int)
	for i, fn := range order {
		position[fn.Name.Value] = i
	}
	assert.Less(t, position["inner"], position["middle"])
	assert.Less(t, position["middle"], position["outer"])
}

func TestSiteCountCountsEverySite(t *testing.T) {
	program := parseProgram(t, `function slot(k) -> s {
    mstore(0, k)
    s := keccak256(0, 32)
}
let a := slot(1)
let b := slot(2)
sstore(a, b)
function reader() -> v {
    v := sload(slot(3))
}
let c := reader()
sstore(0, c)`)

	graph := BuildCallGraph(program)
	byName := functionsByName(graph)
	assert.Equal(t, 3, graph.SiteCount(byName["slot"]))
	assert.Equal(t, 1, graph.SiteCount(byName["reader"]))
}
