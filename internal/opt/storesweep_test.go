package opt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStoreSweepDropsSupersededWrite(t *testing.T) {
	got, changed := applyPass(t, NewStoreSweeper(), `let v := 0
v := 1
v := 2
sstore(0, v)
`)
	want := `let v := 0
v := 2
sstore(0, v)
`
	if !changed {
		t.Fatal("sweeper should report a change")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("first write is unobserved (-want +got):\n%s", diff)
	}
}

func TestStoreSweepKeepsWriteWithInterveningRead(t *testing.T) {
	source := `let v := 0
v := 1
sstore(0, v)
v := 2
sstore(1, v)
`
	got, changed := applyPass(t, NewStoreSweeper(), source)
	if changed {
		t.Fatal("a read between the writes observes the first value")
	}
	if diff := cmp.Diff(source, got); diff != "" {
		t.Errorf("program should be unchanged (-want +got):\n%s", diff)
	}
}

func TestStoreSweepKeepsSelfReferencingChain(t *testing.T) {
	// The second write reads the first value, so nothing is redundant.
	source := `let v := 0
v := 1
v := add(v, 1)
sstore(0, v)
`
	got, changed := applyPass(t, NewStoreSweeper(), source)
	if changed {
		t.Fatal("add(v, 1) observes the previous write")
	}
	if diff := cmp.Diff(source, got); diff != "" {
		t.Errorf("program should be unchanged (-want +got):\n%s", diff)
	}
}

func TestStoreSweepScansPastUnrelatedStatements(t *testing.T) {
	got, _ := applyPass(t, NewStoreSweeper(), `let v := 0
let w := 0
v := 1
w := 5
sstore(0, 9)
v := 2
sstore(1, v)
`)
	want := `let v := 0
let w := 0
w := 5
sstore(0, 9)
v := 2
sstore(1, v)
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("statements that cannot see v do not protect the write (-want +got):\n%s", diff)
	}
}

func TestStoreSweepStopsAtControlFlow(t *testing.T) {
	// The if body may read v, so the scan gives up at the statement.
	source := `let v := 0
let c := calldataload(0)
v := 1
if c {
    sstore(0, v)
}
v := 2
sstore(1, v)
`
	got, changed := applyPass(t, NewStoreSweeper(), source)
	if changed {
		t.Fatal("control flow ends the straight line")
	}
	if diff := cmp.Diff(source, got); diff != "" {
		t.Errorf("program should be unchanged (-want +got):\n%s", diff)
	}
}

func TestStoreSweepStopsAtHaltingStatements(t *testing.T) {
	source := `let v := 0
v := 1
revert(0, 0)
v := 2
sstore(0, v)
`
	got, changed := applyPass(t, NewStoreSweeper(), source)
	if changed {
		t.Fatal("nothing after a halt supersedes anything before it")
	}
	if diff := cmp.Diff(source, got); diff != "" {
		t.Errorf("program should be unchanged (-want +got):\n%s", diff)
	}
}

func TestStoreSweepKeepsImpureValues(t *testing.T) {
	// Dropping the first write would drop the sload with it.
	source := `let v := 0
v := sload(0)
v := 2
sstore(0, v)
`
	got, changed := applyPass(t, NewStoreSweeper(), source)
	if changed {
		t.Fatal("only pure values may be discarded")
	}
	if diff := cmp.Diff(source, got); diff != "" {
		t.Errorf("program should be unchanged (-want +got):\n%s", diff)
	}
}

func TestStoreSweepWorksInsideNestedBlocks(t *testing.T) {
	got, _ := applyPass(t, NewStoreSweeper(), `function f() -> r {
    r := 1
    r := 2
}
let v := f()
sstore(0, v)
`)
	want := `function f() -> r {
    r := 2
}
let v := f()
sstore(0, v)
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("function bodies sweep too (-want +got):\n%s", diff)
	}
}
