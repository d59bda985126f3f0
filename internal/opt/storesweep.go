package opt

import (
	"sumi/internal/ast"
	"sumi/internal/builtins"
)

// StoreSweeper drops assignments whose value is overwritten before anyone
// can look at it: a later assignment to the same variable in the same
// block, with nothing in between but simple statements that neither read
// the variable nor leave the straight line. Control cannot escape such a
// run of statements, so the first value is provably unobserved.
type StoreSweeper struct {
	analysis *Analysis
	changed  bool
}

// NewStoreSweeper creates the redundant assignment sweep.
func NewStoreSweeper() *StoreSweeper {
	return &StoreSweeper{}
}

func (sw *StoreSweeper) Name() string {
	return "storesweep"
}

func (sw *StoreSweeper) Description() string {
	return "Removes assignments overwritten before any intervening read"
}

func (sw *StoreSweeper) Apply(program *ast.Program) bool {
	sw.analysis = NewAnalysis(program)
	sw.changed = false
	sw.sweepBlock(program.Entry)
	return sw.changed
}

func (sw *StoreSweeper) sweepBlock(b *ast.Block) {
	dead := make(map[int]bool)
	for i, s := range b.Statements {
		assign, ok := s.(*ast.AssignStmt)
		if !ok || len(assign.Targets) != 1 {
			continue
		}
		if sw.analysis.ExprEffect(assign.Value) != builtins.Pure {
			continue
		}
		target := assign.Targets[0].Value
		for j := i + 1; j < len(b.Statements); j++ {
			next := b.Statements[j]
			if !isSimple(next) || sw.analysis.Terminates(next) {
				break
			}
			if readsVariable(next, target) {
				break
			}
			if w, ok := next.(*ast.AssignStmt); ok && len(w.Targets) == 1 && w.Targets[0].Value == target {
				dead[i] = true
				sw.changed = true
				break
			}
		}
	}

	if len(dead) > 0 {
		kept := b.Statements[:0]
		for i, s := range b.Statements {
			if !dead[i] {
				kept = append(kept, s)
			}
		}
		b.Statements = kept
	}

	for _, s := range b.Statements {
		switch s := s.(type) {
		case *ast.IfStmt:
			sw.sweepBlock(s.Body)
		case *ast.SwitchStmt:
			for _, c := range s.Cases {
				sw.sweepBlock(c.Body)
			}
			if s.Default != nil {
				sw.sweepBlock(s.Default)
			}
		case *ast.ForStmt:
			sw.sweepBlock(s.Init)
			sw.sweepBlock(s.Post)
			sw.sweepBlock(s.Body)
		case *ast.Block:
			sw.sweepBlock(s)
		case *ast.Function:
			sw.sweepBlock(s.Body)
		}
	}
}

// isSimple reports whether a statement is straight-line: declarations,
// assignments and expression statements. Anything with nested control flow
// or a jump ends a sweep scan.
func isSimple(s ast.Stmt) bool {
	switch s.(type) {
	case *ast.LetStmt, *ast.AssignStmt, *ast.ExprStmt:
		return true
	}
	return false
}

// readsVariable reports whether a simple statement reads the named
// variable. Function bodies cannot see it, so scanning the statement's own
// expressions is exhaustive.
func readsVariable(s ast.Stmt, name string) bool {
	var e ast.Expr
	switch s := s.(type) {
	case *ast.LetStmt:
		e = s.Expr
	case *ast.AssignStmt:
		e = s.Value
	case *ast.ExprStmt:
		e = s.Expr
	}
	if e == nil {
		return false
	}
	found := false
	ast.Inspect(e, func(n ast.Node) bool {
		if ident, ok := n.(*ast.IdentExpr); ok && ident.Name == name {
			found = true
		}
		return !found
	})
	return found
}
