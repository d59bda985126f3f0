package opt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitHoistsArgumentsInEvaluationOrder(t *testing.T) {
	got, changed := applyPass(t, NewSplitter(), `sstore(add(1, 2), mload(0))
`)
	want := `let mload_1 := mload(0)
let add_1 := add(1, 2)
sstore(add_1, mload_1)
`
	if !changed {
		t.Fatal("splitter should report a change")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rightmost argument should bind first (-want +got):\n%s", diff)
	}
}

func TestSplitHandlesNestedCalls(t *testing.T) {
	got, _ := applyPass(t, NewSplitter(), `sstore(0, add(mload(keccak256(0, 32)), 1))
`)
	want := `let keccak256_1 := keccak256(0, 32)
let mload_1 := mload(keccak256_1)
let add_1 := add(mload_1, 1)
sstore(0, add_1)
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("inner calls should bind before the calls that consume them (-want +got):\n%s", diff)
	}
}

func TestSplitHoistsConditionAndScrutinee(t *testing.T) {
	got, _ := applyPass(t, NewSplitter(), `if iszero(calldatasize()) {
    revert(0, 0)
}
switch shr(224, calldataload(0))
case 0 {
    stop()
}
default {
    revert(0, 0)
}
`)
	want := `let calldatasize_1 := calldatasize()
let iszero_1 := iszero(calldatasize_1)
if iszero_1 {
    revert(0, 0)
}
let calldataload_1 := calldataload(0)
let shr_1 := shr(224, calldataload_1)
switch shr_1
case 0 {
    stop()
}
default {
    revert(0, 0)
}
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("conditions and scrutinees should hoist (-want +got):\n%s", diff)
	}
}

func TestSplitLeavesLoopConditionsAlone(t *testing.T) {
	source := `for {
    let i := 0
} lt(i, mload(0)) {
    i := add(i, 1)
} {
    sstore(i, i)
}
`
	got, changed := applyPass(t, NewSplitter(), source)
	if changed {
		t.Fatal("a loop condition re-evaluates per iteration and must not hoist")
	}
	if diff := cmp.Diff(source, got); diff != "" {
		t.Errorf("loop should be untouched (-want +got):\n%s", diff)
	}
}

func TestSplitRewritesLoopBodies(t *testing.T) {
	got, _ := applyPass(t, NewSplitter(), `for {
    let i := 0
} lt(i, 4) {
    i := add(i, 1)
} {
    sstore(i, mload(add(i, 32)))
}
`)
	want := `for {
    let i := 0
} lt(i, 4) {
    i := add(i, 1)
} {
    let add_1 := add(i, 32)
    let mload_1 := mload(add_1)
    sstore(i, mload_1)
}
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loop body statements still split (-want +got):\n%s", diff)
	}
}

func TestSplitIsIdempotent(t *testing.T) {
	program := parseProgram(t, `function slot(k) -> s {
    mstore(0, k)
    s := keccak256(0, 32)
}
sstore(slot(add(1, 2)), sload(slot(3)))
`)
	NewSplitter().Apply(program)
	first := program.String()

	if NewSplitter().Apply(program) {
		t.Fatal("second run should find nothing to hoist")
	}
	if diff := cmp.Diff(first, program.String()); diff != "" {
		t.Errorf("second run should not move anything (-want +got):\n%s", diff)
	}
}

func TestSplitKeepsLeafArgumentsInPlace(t *testing.T) {
	source := `let x := 1
sstore(x, 2)
let y := add(x, 3)
`
	got, changed := applyPass(t, NewSplitter(), source)
	if changed {
		t.Fatal("leaf arguments need no hoisting")
	}
	if diff := cmp.Diff(source, got); diff != "" {
		t.Errorf("program should be unchanged (-want +got):\n%s", diff)
	}
}
