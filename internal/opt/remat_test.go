package opt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRematForwardsLiterals(t *testing.T) {
	got, changed := applyPass(t, NewRematerializer(), `let x := 5
sstore(0, x)
`)
	want := `let x := 5
sstore(0, 5)
`
	if !changed {
		t.Fatal("rematerializer should report a change")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("literal should reach the use (-want +got):\n%s", diff)
	}
}

func TestRematForwardsStableAliases(t *testing.T) {
	got, _ := applyPass(t, NewRematerializer(), `let a := sload(0)
let b := a
sstore(0, b)
sstore(1, b)
`)
	want := `let a := sload(0)
let b := a
sstore(0, a)
sstore(1, a)
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("alias should collapse to its source (-want +got):\n%s", diff)
	}
}

func TestRematResolvesChainsInOnePass(t *testing.T) {
	got, _ := applyPass(t, NewRematerializer(), `let a := 5
let b := a
sstore(0, b)
`)
	want := `let a := 5
let b := 5
sstore(0, 5)
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("the chain should settle in a single run (-want +got):\n%s", diff)
	}
}

func TestRematNeverForwardsReassignedVariables(t *testing.T) {
	source := `let a := 5
a := 6
sstore(0, a)
`
	got, changed := applyPass(t, NewRematerializer(), source)
	if changed {
		t.Fatal("a reassigned variable has no single definition")
	}
	if diff := cmp.Diff(source, got); diff != "" {
		t.Errorf("program should be unchanged (-want +got):\n%s", diff)
	}
}

func TestRematNeverForwardsAliasOfReassignedSource(t *testing.T) {
	source := `let a := sload(0)
let b := a
a := 1
sstore(0, b)
`
	got, changed := applyPass(t, NewRematerializer(), source)
	if changed {
		t.Fatal("the alias read must see the value at binding time")
	}
	if diff := cmp.Diff(source, got); diff != "" {
		t.Errorf("program should be unchanged (-want +got):\n%s", diff)
	}
}

func TestRematNeverForwardsCallDefinitions(t *testing.T) {
	// Re-evaluating a state read at the use would observe later writes.
	source := `let a := sload(0)
sstore(0, 1)
sstore(1, a)
`
	got, changed := applyPass(t, NewRematerializer(), source)
	if changed {
		t.Fatal("only literals and stable aliases forward")
	}
	if diff := cmp.Diff(source, got); diff != "" {
		t.Errorf("program should be unchanged (-want +got):\n%s", diff)
	}
}

func TestRematKeepsSiblingScopesApart(t *testing.T) {
	got, _ := applyPass(t, NewRematerializer(), `{
    let t := 1
    sstore(0, t)
}
{
    let t := sload(0)
    sstore(1, t)
}
`)
	want := `{
    let t := 1
    sstore(0, 1)
}
{
    let t := sload(0)
    sstore(1, t)
}
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("each sibling keeps its own definition (-want +got):\n%s", diff)
	}
}

func TestRematForwardsParameterAliases(t *testing.T) {
	got, _ := applyPass(t, NewRematerializer(), `function f(p) -> r {
    let q := p
    r := add(q, q)
}
let v := f(3)
sstore(0, v)
`)
	want := `function f(p) -> r {
    let q := p
    r := add(p, p)
}
let v := f(3)
sstore(0, v)
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("a never-reassigned parameter is a stable source (-want +got):\n%s", diff)
	}
}

func TestRematHandlesLoopScopes(t *testing.T) {
	// The loop variable is reassigned; the bound is a forwardable literal.
	got, _ := applyPass(t, NewRematerializer(), `let bound := 10
for {
    let i := 0
} lt(i, bound) {
    i := add(i, 1)
} {
    sstore(i, bound)
}
`)
	want := `let bound := 10
for {
    let i := 0
} lt(i, 10) {
    i := add(i, 1)
} {
    sstore(i, 10)
}
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loop positions forward too, the loop variable does not (-want +got):\n%s", diff)
	}
}
