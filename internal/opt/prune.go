package opt

import (
	"sumi/internal/ast"
	"sumi/internal/builtins"
)

// Pruner removes code that provably does nothing: declarations never read
// whose initializer is Pure or absent (together with the assignments that
// feed them), function definitions without a single call site, and Pure
// expression statements. Removing one thing often exposes the next, so the
// pass iterates until a sweep finds nothing.
type Pruner struct {
	changed bool
}

// NewPruner creates the unused definition sweep.
func NewPruner() *Pruner {
	return &Pruner{}
}

func (p *Pruner) Name() string {
	return "prune"
}

func (p *Pruner) Description() string {
	return "Removes unread declarations, uncalled functions and pure statements"
}

func (p *Pruner) Apply(program *ast.Program) bool {
	p.changed = false
	for p.sweep(program) {
		p.changed = true
	}
	return p.changed
}

// varUse tracks one declared variable. Parameters and named returns are
// registered with a nil decl: they are part of a signature and never
// removable, but their uses must still resolve locally so they do not
// count against a same-named outer variable.
type varUse struct {
	decl   *ast.LetStmt
	reads  int
	writes []*ast.AssignStmt
}

type pruneScope struct {
	vars     map[string]*varUse
	boundary bool // function bodies do not see outer variables
}

type pruneScan struct {
	scopes      []*pruneScope
	assignments map[*ast.AssignStmt][]*varUse
	lets        []*ast.LetStmt
	names       map[*ast.LetStmt][]*varUse
}

// sweep performs one analyze-and-rewrite cycle and reports whether it
// removed anything.
func (p *Pruner) sweep(program *ast.Program) bool {
	analysis := NewAnalysis(program)
	graph := analysis.Graph()

	scan := &pruneScan{
		assignments: make(map[*ast.AssignStmt][]*varUse),
		names:       make(map[*ast.LetStmt][]*varUse),
	}
	scan.block(program.Entry)

	// Assignments drop when every target is a dead local and the value is
	// pure. Declarations additionally need every surviving write gone,
	// otherwise removing the declaration would orphan them.
	deadAssign := make(map[*ast.AssignStmt]bool)
	for assign, targets := range scan.assignments {
		if len(targets) == 0 || len(targets) != len(assign.Targets) {
			continue
		}
		removable := analysis.ExprEffect(assign.Value) == builtins.Pure
		for _, vu := range targets {
			if vu.decl == nil || vu.reads > 0 {
				removable = false
				break
			}
		}
		if removable {
			deadAssign[assign] = true
		}
	}

	deadLet := make(map[*ast.LetStmt]bool)
	for _, let := range scan.lets {
		uses := scan.names[let]
		removable := let.Expr == nil || analysis.ExprEffect(let.Expr) == builtins.Pure
		for _, vu := range uses {
			if vu.reads > 0 {
				removable = false
				break
			}
			for _, w := range vu.writes {
				if !deadAssign[w] {
					removable = false
					break
				}
			}
		}
		if removable {
			deadLet[let] = true
		}
	}

	removed := false
	var rewrite func(b *ast.Block)
	rewrite = func(b *ast.Block) {
		kept := b.Statements[:0]
		for _, s := range b.Statements {
			switch s := s.(type) {
			case *ast.LetStmt:
				if deadLet[s] {
					removed = true
					continue
				}
			case *ast.AssignStmt:
				if deadAssign[s] {
					removed = true
					continue
				}
			case *ast.ExprStmt:
				if analysis.ExprEffect(s.Expr) == builtins.Pure {
					removed = true
					continue
				}
			case *ast.Function:
				if graph.SiteCount(s) == 0 {
					removed = true
					continue
				}
				rewrite(s.Body)
			case *ast.IfStmt:
				rewrite(s.Body)
			case *ast.SwitchStmt:
				for _, c := range s.Cases {
					rewrite(c.Body)
				}
				if s.Default != nil {
					rewrite(s.Default)
				}
			case *ast.ForStmt:
				rewrite(s.Init)
				rewrite(s.Post)
				rewrite(s.Body)
			case *ast.Block:
				rewrite(s)
			}
			kept = append(kept, s)
		}
		b.Statements = kept
	}
	rewrite(program.Entry)
	return removed
}

func (sc *pruneScan) push(boundary bool) {
	sc.scopes = append(sc.scopes, &pruneScope{vars: make(map[string]*varUse), boundary: boundary})
}

func (sc *pruneScan) pop() {
	sc.scopes = sc.scopes[:len(sc.scopes)-1]
}

func (sc *pruneScan) top() *pruneScope {
	return sc.scopes[len(sc.scopes)-1]
}

// resolve walks the scope stack for a variable, stopping at function
// boundaries the way the validator does.
func (sc *pruneScan) resolve(name string) *varUse {
	for i := len(sc.scopes) - 1; i >= 0; i-- {
		if vu, ok := sc.scopes[i].vars[name]; ok {
			return vu
		}
		if sc.scopes[i].boundary {
			return nil
		}
	}
	return nil
}

func (sc *pruneScan) block(b *ast.Block) {
	sc.push(false)
	for _, s := range b.Statements {
		sc.stmt(s)
	}
	sc.pop()
}

func (sc *pruneScan) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.LetStmt:
		if s.Expr != nil {
			sc.expr(s.Expr)
		}
		sc.lets = append(sc.lets, s)
		for _, name := range s.Names {
			vu := &varUse{decl: s}
			sc.top().vars[name.Value] = vu
			sc.names[s] = append(sc.names[s], vu)
		}
	case *ast.AssignStmt:
		sc.expr(s.Value)
		for _, target := range s.Targets {
			if vu := sc.resolve(target.Value); vu != nil {
				vu.writes = append(vu.writes, s)
				sc.assignments[s] = append(sc.assignments[s], vu)
			}
		}
	case *ast.ExprStmt:
		sc.expr(s.Expr)
	case *ast.IfStmt:
		sc.expr(s.Condition)
		sc.block(s.Body)
	case *ast.SwitchStmt:
		sc.expr(s.Value)
		for _, c := range s.Cases {
			sc.block(c.Body)
		}
		if s.Default != nil {
			sc.block(s.Default)
		}
	case *ast.ForStmt:
		// Init declarations stay visible in the condition, post and body.
		sc.push(false)
		for _, init := range s.Init.Statements {
			sc.stmt(init)
		}
		sc.expr(s.Condition)
		sc.block(s.Post)
		sc.block(s.Body)
		sc.pop()
	case *ast.Function:
		sc.push(true)
		for _, param := range s.Params {
			sc.top().vars[param.Name.Value] = &varUse{}
		}
		for _, ret := range s.Returns {
			sc.top().vars[ret.Name.Value] = &varUse{}
		}
		sc.block(s.Body)
		sc.pop()
	case *ast.Block:
		sc.block(s)
	}
}

func (sc *pruneScan) expr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.IdentExpr:
		if vu := sc.resolve(e.Name); vu != nil {
			vu.reads++
		}
	case *ast.CallExpr:
		for _, a := range e.Args {
			sc.expr(a)
		}
	}
}
