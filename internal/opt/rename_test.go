package opt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRenameRestoresStem(t *testing.T) {
	source := "let x_1 := 1\nsstore(0, x_1)\n"
	got, changed := applyPass(t, NewRenamer(), source)
	if !changed {
		t.Fatal("expected the suffixed name to be restored")
	}

	want := "let x := 1\nsstore(0, x)\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("program mismatch (-want +got):\n%s", diff)
	}
}

func TestRenameKeepsNameWhenStemInUse(t *testing.T) {
	source := "let x := 1\nlet x_1 := 2\nsstore(x, x_1)\n"
	got, changed := applyPass(t, NewRenamer(), source)
	if changed {
		t.Error("x_1 must keep its suffix while x is claimed")
	}
	if diff := cmp.Diff(source, got); diff != "" {
		t.Errorf("program mismatch (-want +got):\n%s", diff)
	}
}

func TestRenameLowestSuffixWinsTheStem(t *testing.T) {
	source := "let x_1 := 1\nlet x_2 := 2\nsstore(x_1, x_2)\n"
	got, changed := applyPass(t, NewRenamer(), source)
	if !changed {
		t.Fatal("expected x_1 to take the stem")
	}

	want := "let x := 1\nlet x_2 := 2\nsstore(x, x_2)\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("program mismatch (-want +got):\n%s", diff)
	}
}

func TestRenameSkipsBuiltinStems(t *testing.T) {
	source := "let add_1 := 1\nsstore(0, add_1)\n"
	got, changed := applyPass(t, NewRenamer(), source)
	if changed {
		t.Error("a builtin name must never be claimed")
	}
	if diff := cmp.Diff(source, got); diff != "" {
		t.Errorf("program mismatch (-want +got):\n%s", diff)
	}
}

func TestRenameSkipsKeywordStems(t *testing.T) {
	source := "let leave_1 := 5\nsstore(0, leave_1)\n"
	got, changed := applyPass(t, NewRenamer(), source)
	if changed {
		t.Error("a reserved word must never be claimed")
	}
	if diff := cmp.Diff(source, got); diff != "" {
		t.Errorf("program mismatch (-want +got):\n%s", diff)
	}
}

func TestRenameCoversFunctionsParamsAndUses(t *testing.T) {
	source := `function scale_1(x_1) -> r_1 {
    r_1 := mul(x_1, 2)
}
let v_1 := scale_1(3)
sstore(0, v_1)
`
	got, changed := applyPass(t, NewRenamer(), source)
	if !changed {
		t.Fatal("expected every suffixed name to be restored")
	}

	want := `function scale(x) -> r {
    r := mul(x, 2)
}
let v := scale(3)
sstore(0, v)
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("program mismatch (-want +got):\n%s", diff)
	}
}

func TestRenameChainsSettleOverRounds(t *testing.T) {
	// a_1_2 waits for a_1 to vacate its stem, which takes a second round.
	source := "let a_1 := 1\nlet a_1_2 := 2\nsstore(a_1, a_1_2)\n"
	program := parseProgram(t, source)
	pass := NewRenamer()

	if !pass.Apply(program) {
		t.Fatal("first round should rename a_1")
	}
	first := "let a := 1\nlet a_1_2 := 2\nsstore(a, a_1_2)\n"
	if diff := cmp.Diff(first, program.String()); diff != "" {
		t.Fatalf("after first round (-want +got):\n%s", diff)
	}

	if !pass.Apply(program) {
		t.Fatal("second round should rename a_1_2")
	}
	second := "let a := 1\nlet a_1 := 2\nsstore(a, a_1)\n"
	if diff := cmp.Diff(second, program.String()); diff != "" {
		t.Fatalf("after second round (-want +got):\n%s", diff)
	}

	if pass.Apply(program) {
		t.Error("third round should find nothing to rename")
	}
}
