package opt

import "testing"

func TestFreshAvoidsDeclaredNames(t *testing.T) {
	program := parseProgram(t, `let tmp := 1
function helper(arg) -> out {
    out := arg
}
sstore(0, add(tmp, helper(2)))`)

	d := NewNameDispenser(program)
	cases := map[string]string{
		"tmp":    "tmp_1", // declared at the top level
		"arg":    "arg_1", // parameters count even inside functions
		"out":    "out_1",
		"helper": "helper_1",
		"other":  "other", // unclaimed stems come back unchanged
	}
	for hint, want := range cases {
		if got := d.Fresh(hint); got != want {
			t.Errorf("Fresh(%q) = %q, want %q", hint, got, want)
		}
	}
}

func TestFreshNeverRepeats(t *testing.T) {
	d := NewNameDispenser(nil)
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		name := d.Fresh("v")
		if seen[name] {
			t.Fatalf("Fresh returned %q twice", name)
		}
		seen[name] = true
	}
}

func TestFreshAvoidsBuiltinsAndKeywords(t *testing.T) {
	d := NewNameDispenser(nil)
	if got := d.Fresh("add"); got != "add_1" {
		t.Errorf("builtin hint: got %q, want add_1", got)
	}
	if got := d.Fresh("switch"); got != "switch_1" {
		t.Errorf("keyword hint: got %q, want switch_1", got)
	}
}

func TestFreshStripsExistingSuffix(t *testing.T) {
	program := parseProgram(t, `let x := 1
let x_1 := 2
sstore(x, x_1)`)

	d := NewNameDispenser(program)
	// The hint x_1 reduces to the stem x, and both x and x_1 are taken.
	if got := d.Fresh("x_1"); got != "x_2" {
		t.Errorf("Fresh(%q) = %q, want x_2", "x_1", got)
	}
}

func TestMarkUsedReservesWithoutDispensing(t *testing.T) {
	d := NewNameDispenser(nil)
	d.MarkUsed("slot")
	if got := d.Fresh("slot"); got != "slot_1" {
		t.Errorf("Fresh after MarkUsed = %q, want slot_1", got)
	}
}

func TestStripSuffix(t *testing.T) {
	cases := map[string]string{
		"tmp_3":    "tmp",
		"tmp_":     "tmp_",  // nothing after the underscore
		"x3":       "x3",    // no underscore
		"_7":       "_7",    // leading underscore is part of the name
		"a_b_12":   "a_b",   // only the last group strips
		"a_1_2":    "a_1",   // one group per call
		"value_x1": "value_x1",
	}
	for in, want := range cases {
		if got := stripSuffix(in); got != want {
			t.Errorf("stripSuffix(%q) = %q, want %q", in, got, want)
		}
	}
}
