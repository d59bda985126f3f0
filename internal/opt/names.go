package opt

import (
	"strconv"
	"strings"

	"sumi/internal/ast"
	"sumi/internal/builtins"
	"sumi/token"
)

// NameDispenser hands out identifiers that collide with nothing: no name
// declared anywhere in the program, no builtin, no keyword, and no name the
// dispenser already handed out. Passes that introduce variables share one
// dispenser per run so their fresh names stay distinct.
type NameDispenser struct {
	used map[string]bool
}

// NewNameDispenser collects every declared name in the program: variables,
// parameters, named returns and functions. Builtin names are reserved up
// front since the validator rejects declarations that use them.
func NewNameDispenser(program *ast.Program) *NameDispenser {
	d := &NameDispenser{used: make(map[string]bool)}
	for _, b := range builtins.All {
		d.used[b.Name] = true
	}
	if program == nil {
		return d
	}
	ast.Inspect(program, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.LetStmt:
			for _, name := range n.Names {
				d.used[name.Value] = true
			}
		case *ast.Function:
			d.used[n.Name.Value] = true
			for _, p := range n.Params {
				d.used[p.Name.Value] = true
			}
			for _, r := range n.Returns {
				d.used[r.Name.Value] = true
			}
		}
		return true
	})
	return d
}

// Fresh returns an unused name derived from hint and marks it used. A
// trailing _<digits> suffix on the hint is stripped first so inlining an
// already-inlined body dispenses x_2, not x_1_1.
func (d *NameDispenser) Fresh(hint string) string {
	stem := stripSuffix(hint)
	if stem == "" {
		stem = "v"
	}
	if !d.inUse(stem) {
		d.used[stem] = true
		return stem
	}
	for n := 1; ; n++ {
		candidate := stem + "_" + strconv.Itoa(n)
		if !d.inUse(candidate) {
			d.used[candidate] = true
			return candidate
		}
	}
}

// MarkUsed reserves a name without dispensing it.
func (d *NameDispenser) MarkUsed(name string) {
	d.used[name] = true
}

func (d *NameDispenser) inUse(name string) bool {
	return d.used[name] || token.IsKeyword(name)
}

// stripSuffix removes one trailing _<digits> group from a name. "tmp_3"
// becomes "tmp"; "tmp_" and "x3" are returned unchanged.
func stripSuffix(name string) string {
	i := strings.LastIndexByte(name, '_')
	if i <= 0 || i == len(name)-1 {
		return name
	}
	for _, c := range name[i+1:] {
		if c < '0' || c > '9' {
			return name
		}
	}
	return name[:i]
}
