package opt

import (
	"sumi/internal/ast"
	"sumi/internal/builtins"
)

// Analysis classifies expressions and user functions on the effect lattice
// Pure < ReadsState < HasSideEffect < NeverReturns. Function classes are
// computed once, bottom-up over the call graph; everything else is answered
// from the tree on demand. Like the call graph, an Analysis is built at the
// start of a pass and discarded with it.
type Analysis struct {
	graph   *CallGraph
	classes map[*ast.Function]builtins.Effect
}

// NewAnalysis builds the call graph for the program and computes the effect
// class of every user function. Functions on a call-graph cycle are
// conservatively HasSideEffect.
func NewAnalysis(program *ast.Program) *Analysis {
	a := &Analysis{
		graph:   BuildCallGraph(program),
		classes: make(map[*ast.Function]builtins.Effect),
	}
	for _, fn := range a.graph.PostOrder() {
		if a.graph.IsRecursive(fn) {
			a.classes[fn] = builtins.HasSideEffect
			continue
		}
		a.classes[fn] = a.computeClass(fn)
	}
	return a
}

// Graph exposes the call graph the analysis was built over so passes do not
// build it twice.
func (a *Analysis) Graph() *CallGraph {
	return a.graph
}

// ExprEffect classifies one expression. A call joins its arguments with the
// callee's class.
func (a *Analysis) ExprEffect(e ast.Expr) builtins.Effect {
	call, ok := e.(*ast.CallExpr)
	if !ok {
		return builtins.Pure
	}
	effect := a.CalleeEffect(call)
	for _, arg := range call.Args {
		effect = effect.Join(a.ExprEffect(arg))
	}
	return effect
}

// CalleeEffect classifies the operation a call invokes, ignoring its
// arguments.
func (a *Analysis) CalleeEffect(call *ast.CallExpr) builtins.Effect {
	if b, ok := builtins.Lookup(call.Callee.Value); ok {
		return b.Effect
	}
	if fn := a.graph.Callee(call); fn != nil {
		return a.FunctionEffect(fn)
	}
	// Unresolved names only appear in invalid programs. Stay safe.
	return builtins.HasSideEffect
}

// FunctionEffect returns the memoized class of a user function.
func (a *Analysis) FunctionEffect(fn *ast.Function) builtins.Effect {
	if class, ok := a.classes[fn]; ok {
		return class
	}
	return builtins.HasSideEffect
}

// Terminates reports whether control cannot reach the statement after s in
// the same block: a loop exit, a function exit, or a statement whose
// evaluation halts execution.
func (a *Analysis) Terminates(s ast.Stmt) bool {
	switch s := s.(type) {
	case *ast.BreakStmt, *ast.ContinueStmt, *ast.LeaveStmt:
		return true
	case *ast.ExprStmt:
		return a.ExprEffect(s.Expr) == builtins.NeverReturns
	case *ast.LetStmt:
		return s.Expr != nil && a.ExprEffect(s.Expr) == builtins.NeverReturns
	case *ast.AssignStmt:
		return a.ExprEffect(s.Value) == builtins.NeverReturns
	case *ast.ForStmt:
		return a.LoopNeverExits(s)
	}
	return false
}

// LoopNeverExits reports whether a loop can never transfer control to the
// statement after it: a literal nonzero condition with no break bound to
// this loop and no leave in the body.
func (a *Analysis) LoopNeverExits(l *ast.ForStmt) bool {
	lit, ok := l.Condition.(*ast.LiteralExpr)
	if !ok {
		return false
	}
	v, ok := lit.NumericValue()
	if !ok || v.Sign() == 0 {
		return false
	}
	return !containsLoopBreak(l.Body) && !containsLeave(l.Body)
}

// computeClass joins the effects of everything a function's body evaluates.
// A halting statement reached only on some paths degrades to HasSideEffect;
// the class is NeverReturns only when the body cannot fall through or leave.
func (a *Analysis) computeClass(fn *ast.Function) builtins.Effect {
	effect := a.blockClass(fn.Body)
	if effect == builtins.NeverReturns {
		effect = builtins.HasSideEffect
	}
	if a.neverReturns(fn) {
		return builtins.NeverReturns
	}
	return effect
}

func (a *Analysis) blockClass(b *ast.Block) builtins.Effect {
	effect := builtins.Pure
	for _, s := range b.Statements {
		effect = effect.Join(a.stmtClass(s))
	}
	return effect
}

func (a *Analysis) stmtClass(s ast.Stmt) builtins.Effect {
	switch s := s.(type) {
	case *ast.ExprStmt:
		return a.capped(s.Expr)
	case *ast.LetStmt:
		if s.Expr == nil {
			return builtins.Pure
		}
		return a.capped(s.Expr)
	case *ast.AssignStmt:
		return a.capped(s.Value)
	case *ast.IfStmt:
		return a.capped(s.Condition).Join(a.blockClass(s.Body))
	case *ast.SwitchStmt:
		effect := a.capped(s.Value)
		for _, c := range s.Cases {
			effect = effect.Join(a.blockClass(c.Body))
		}
		if s.Default != nil {
			effect = effect.Join(a.blockClass(s.Default))
		}
		return effect
	case *ast.ForStmt:
		effect := a.blockClass(s.Init).Join(a.capped(s.Condition))
		return effect.Join(a.blockClass(s.Post)).Join(a.blockClass(s.Body))
	case *ast.Block:
		return a.blockClass(s)
	}
	// Nested definitions count only where they are called; break, continue
	// and leave carry no effect of their own.
	return builtins.Pure
}

// capped classifies an expression for the enclosing function's class, where
// a conditional halt is still an observable effect but not a guarantee the
// function never returns.
func (a *Analysis) capped(e ast.Expr) builtins.Effect {
	effect := a.ExprEffect(e)
	if effect == builtins.NeverReturns {
		return builtins.HasSideEffect
	}
	return effect
}

// neverReturns reports whether calling fn can never hand control back: the
// body contains no leave at all and its top-level statement list runs into
// a halting statement or a loop that never exits.
func (a *Analysis) neverReturns(fn *ast.Function) bool {
	if containsLeave(fn.Body) {
		return false
	}
	for _, s := range fn.Body.Statements {
		switch s := s.(type) {
		case *ast.ExprStmt:
			if a.ExprEffect(s.Expr) == builtins.NeverReturns {
				return true
			}
		case *ast.LetStmt:
			if s.Expr != nil && a.ExprEffect(s.Expr) == builtins.NeverReturns {
				return true
			}
		case *ast.AssignStmt:
			if a.ExprEffect(s.Value) == builtins.NeverReturns {
				return true
			}
		case *ast.ForStmt:
			if a.LoopNeverExits(s) {
				return true
			}
		}
	}
	return false
}

// containsLeave scans a block for a leave that would exit the function the
// block belongs to. Nested function bodies bind their own leaves and are
// skipped.
func containsLeave(b *ast.Block) bool {
	found := false
	ast.Inspect(b, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.LeaveStmt:
			found = true
			return false
		case *ast.Function:
			return false
		}
		return !found
	})
	return found
}

// containsLoopBreak scans a loop body for a break bound to that loop.
// Nested loops and nested functions bind their own breaks and are skipped.
func containsLoopBreak(b *ast.Block) bool {
	found := false
	var scan func(s ast.Stmt)
	scanBlock := func(inner *ast.Block) {
		for _, s := range inner.Statements {
			scan(s)
		}
	}
	scan = func(s ast.Stmt) {
		if found {
			return
		}
		switch s := s.(type) {
		case *ast.BreakStmt:
			found = true
		case *ast.IfStmt:
			scanBlock(s.Body)
		case *ast.SwitchStmt:
			for _, c := range s.Cases {
				scanBlock(c.Body)
			}
			if s.Default != nil {
				scanBlock(s.Default)
			}
		case *ast.Block:
			scanBlock(s)
		}
	}
	scanBlock(b)
	return found
}
