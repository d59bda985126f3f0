package opt

import (
	"sort"

	"sumi/internal/ast"
	"sumi/internal/builtins"
	"sumi/token"
)

// Renamer undoes the dispenser's numeric suffixes once the pipeline has
// settled: value_2 becomes value again when nothing in the program claims
// the stem. A rename is global and consistent, so resolution is unchanged
// even where sibling scopes reuse a name. Chains like v_1_2 settle over
// fixpoint rounds as each round frees the next stem.
type Renamer struct{}

// NewRenamer creates the name tidying pass. It is not part of the default
// sequence; callers opt in.
func NewRenamer() *Renamer {
	return &Renamer{}
}

func (r *Renamer) Name() string {
	return "rename"
}

func (r *Renamer) Description() string {
	return "Restores suffixed generated names to their stems where free"
}

func (r *Renamer) Apply(program *ast.Program) bool {
	taken := make(map[string]bool)
	ast.Inspect(program, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Ident:
			taken[n.Value] = true
		case *ast.IdentExpr:
			taken[n.Name] = true
		}
		return true
	})

	var candidates []string
	for name := range taken {
		if stripSuffix(name) != name {
			candidates = append(candidates, name)
		}
	}
	sort.Strings(candidates)

	renames := make(map[string]string)
	for _, name := range candidates {
		stem := stripSuffix(name)
		if taken[stem] || builtins.IsBuiltin(stem) || token.IsKeyword(stem) {
			continue
		}
		taken[stem] = true
		renames[name] = stem
	}
	if len(renames) == 0 {
		return false
	}

	ast.Inspect(program, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Ident:
			if stem, ok := renames[n.Value]; ok {
				n.Value = stem
			}
		case *ast.IdentExpr:
			if stem, ok := renames[n.Name]; ok {
				n.Name = stem
			}
		}
		return true
	})
	return true
}
