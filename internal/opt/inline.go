package opt

import (
	"fmt"

	"sumi/internal/ast"
	"sumi/internal/errors"
)

// Inline limits. A callee bigger than the size threshold is only expanded
// when it has a single call site; the depth budget bounds how far expansion
// chases calls exposed by previous expansions.
const (
	DefaultInlineMaxSize  = 48
	DefaultInlineMaxDepth = 8
)

// Inliner expands statement-position calls to eligible user functions.
// Bodies are processed in call-graph post-order with the entry block last,
// so every callee is fully reduced before it gets copied anywhere.
//
// A site is all-or-nothing: either every eligibility condition holds and
// the statement is replaced by the expansion, or the site stays untouched.
type Inliner struct {
	MaxSize  int
	MaxDepth int

	graph    *CallGraph
	analysis *Analysis
	names    *NameDispenser
	scope    funcScope
	notices  []errors.CompilerError
	stats    InlineStats
	changed  bool
}

// InlineStats counts what one run did, for logs and the CLI's verbose
// output.
type InlineStats struct {
	Considered       int // statement-position calls to user functions
	Expanded         int
	SkippedRecursive int
	SkippedShape     int // stray leave, nested definition, or resolution mismatch
	SkippedSize      int
	SkippedDepth     int
}

// NewInliner creates the inlining pass with default limits.
func NewInliner() *Inliner {
	return &Inliner{MaxSize: DefaultInlineMaxSize, MaxDepth: DefaultInlineMaxDepth}
}

func (il *Inliner) Name() string {
	return "inline"
}

func (il *Inliner) Description() string {
	return "Expands calls to small or singly-called functions at their call sites"
}

// Notices returns the resource-limit warnings of the latest run.
func (il *Inliner) Notices() []errors.CompilerError {
	return il.notices
}

// Stats returns the counters of the latest run.
func (il *Inliner) Stats() InlineStats {
	return il.stats
}

func (il *Inliner) Apply(program *ast.Program) bool {
	il.analysis = NewAnalysis(program)
	il.graph = il.analysis.Graph()
	il.names = NewNameDispenser(program)
	il.notices = nil
	il.stats = InlineStats{}
	il.changed = false

	for _, fn := range il.graph.PostOrder() {
		il.scope = il.graph.DefinitionEnv(fn)
		il.rewriteBlock(fn.Body, 0)
	}
	il.scope = nil
	il.rewriteBlock(program.Entry, 0)
	return il.changed
}

func (il *Inliner) maxSize() int {
	if il.MaxSize > 0 {
		return il.MaxSize
	}
	return DefaultInlineMaxSize
}

func (il *Inliner) maxDepth() int {
	if il.MaxDepth > 0 {
		return il.MaxDepth
	}
	return DefaultInlineMaxDepth
}

func (il *Inliner) rewriteBlock(b *ast.Block, depth int) {
	saved := il.scope
	il.scope = append(il.scope, hoistedFunctions(b))
	b.Statements = il.rewriteStmts(b.Statements, depth)
	il.scope = saved
}

// rewriteStmts expands eligible sites in a statement list. Statements
// spliced in by an expansion are re-examined one depth level further down,
// which is how calls exposed by inlining get inlined in the same run.
func (il *Inliner) rewriteStmts(stmts []ast.Stmt, depth int) []ast.Stmt {
	out := make([]ast.Stmt, 0, len(stmts))
	for _, s := range stmts {
		if expansion, ok := il.expandSite(s, depth); ok {
			out = append(out, il.rewriteStmts(expansion, depth+1)...)
			continue
		}
		il.descend(s, depth)
		out = append(out, s)
	}
	return out
}

// descend walks into the nested blocks of a statement that is not itself an
// inline site. Function definitions are skipped: their bodies are rewritten
// by the post-order loop in Apply.
func (il *Inliner) descend(s ast.Stmt, depth int) {
	switch s := s.(type) {
	case *ast.IfStmt:
		il.rewriteBlock(s.Body, depth)
	case *ast.SwitchStmt:
		for _, c := range s.Cases {
			il.rewriteBlock(c.Body, depth)
		}
		if s.Default != nil {
			il.rewriteBlock(s.Default, depth)
		}
	case *ast.ForStmt:
		// Functions hoisted in the init block are visible to the post
		// block and body.
		saved := il.scope
		il.scope = append(il.scope, hoistedFunctions(s.Init))
		s.Init.Statements = il.rewriteStmts(s.Init.Statements, depth)
		il.rewriteBlock(s.Post, depth)
		il.rewriteBlock(s.Body, depth)
		il.scope = saved
	case *ast.Block:
		il.rewriteBlock(s, depth)
	}
}

// expandSite checks one statement against the eligibility conditions and,
// when all hold, returns the replacement statements.
func (il *Inliner) expandSite(s ast.Stmt, depth int) ([]ast.Stmt, bool) {
	var call *ast.CallExpr
	var letSite *ast.LetStmt
	var assignSite *ast.AssignStmt
	switch s := s.(type) {
	case *ast.ExprStmt:
		call, _ = s.Expr.(*ast.CallExpr)
	case *ast.LetStmt:
		if c, ok := s.Expr.(*ast.CallExpr); ok {
			call, letSite = c, s
		}
	case *ast.AssignStmt:
		if c, ok := s.Value.(*ast.CallExpr); ok {
			call, assignSite = c, s
		}
	}
	if call == nil {
		return nil, false
	}
	callee := il.graph.Callee(call)
	if callee == nil {
		return nil, false
	}
	il.stats.Considered++

	if il.graph.IsRecursive(callee) {
		il.stats.SkippedRecursive++
		return nil, false
	}
	if !il.bodyShapeAllows(callee) {
		il.stats.SkippedShape++
		return nil, false
	}
	if !il.resolutionMatches(callee) {
		il.stats.SkippedShape++
		return nil, false
	}
	if size := ast.CountNodes(callee.Body); size > il.maxSize() && il.graph.SiteCount(callee) != 1 {
		il.stats.SkippedSize++
		return nil, false
	}
	if depth >= il.maxDepth() {
		il.stats.SkippedDepth++
		il.notices = append(il.notices, errors.ResourceLimit(il.Name(),
			fmt.Sprintf("inline depth %d reached at call to '%s'", il.maxDepth(), callee.Name.Value),
			call.Pos))
		return nil, false
	}

	return il.expand(call, callee, letSite, assignSite), true
}

// bodyShapeAllows rejects callees the rewrite cannot express: a nested
// function definition would need re-hoisting, and a leave anywhere but the
// final statement would need a jump after splicing.
func (il *Inliner) bodyShapeAllows(callee *ast.Function) bool {
	var finalLeave *ast.LeaveStmt
	if n := len(callee.Body.Statements); n > 0 {
		finalLeave, _ = callee.Body.Statements[n-1].(*ast.LeaveStmt)
	}
	allowed := true
	ast.Inspect(callee.Body, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Function:
			allowed = false
		case *ast.LeaveStmt:
			if n != finalLeave {
				allowed = false
			}
		}
		return allowed
	})
	return allowed
}

// resolutionMatches checks that every function the callee's body calls
// resolves to the same definition at the inline site. Without this, moving
// the body into a scope with a same-named sibling would silently retarget
// its calls.
func (il *Inliner) resolutionMatches(callee *ast.Function) bool {
	matches := true
	ast.Inspect(callee.Body, func(n ast.Node) bool {
		if call, ok := n.(*ast.CallExpr); ok {
			if target := il.graph.Callee(call); target != nil {
				if il.scope.resolve(call.Callee.Value) != target {
					matches = false
				}
			}
		}
		return matches
	})
	return matches
}

// expand builds the replacement statement sequence for one site.
func (il *Inliner) expand(call *ast.CallExpr, callee *ast.Function, letSite *ast.LetStmt, assignSite *ast.AssignStmt) []ast.Stmt {
	il.stats.Expanded++
	il.changed = true
	il.graph.siteCounts[callee]--

	subst := make(map[string]string)
	var out []ast.Stmt

	// Arguments bind rightmost first: the binding order on the page is the
	// order the original call evaluated them in.
	argNames := make([]string, len(call.Args))
	for i := len(call.Args) - 1; i >= 0; i-- {
		fresh := il.names.Fresh(callee.Params[i].Name.Value)
		argNames[i] = fresh
		arg := call.Args[i]
		out = append(out, &ast.LetStmt{
			Pos:    arg.NodePos(),
			EndPos: arg.NodeEndPos(),
			Names:  []ast.Ident{{Pos: arg.NodePos(), EndPos: arg.NodeEndPos(), Value: fresh}},
			Expr:   arg,
		})
	}
	for i, p := range callee.Params {
		subst[p.Name.Value] = argNames[i]
	}

	// Results start at zero, exactly like the callee's named returns.
	if len(callee.Returns) > 0 {
		names := make([]ast.Ident, len(callee.Returns))
		for i, r := range callee.Returns {
			fresh := il.names.Fresh(r.Name.Value)
			subst[r.Name.Value] = fresh
			names[i] = ast.Ident{Pos: call.Pos, EndPos: call.EndPos, Value: fresh}
		}
		out = append(out, &ast.LetStmt{Pos: call.Pos, EndPos: call.EndPos, Names: names})
	}

	for _, local := range localNames(callee.Body) {
		subst[local] = il.names.Fresh(local)
	}

	body := ast.CloneBlock(callee.Body)
	il.registerClonedCalls(callee.Body, body)
	renameLocals(body, subst)

	spliced := body.Statements
	if n := len(spliced); n > 0 {
		if _, ok := spliced[n-1].(*ast.LeaveStmt); ok {
			spliced = spliced[:n-1]
		}
	}
	out = append(out, spliced...)

	// Bind the site's targets to the result variables, one statement per
	// target since the surface syntax has no tuples outside calls.
	switch {
	case letSite != nil:
		for i, name := range letSite.Names {
			out = append(out, &ast.LetStmt{
				Pos:    letSite.Pos,
				EndPos: letSite.EndPos,
				Names:  []ast.Ident{name},
				Expr:   &ast.IdentExpr{Pos: name.Pos, EndPos: name.EndPos, Name: subst[callee.Returns[i].Name.Value]},
			})
		}
	case assignSite != nil:
		for i, target := range assignSite.Targets {
			out = append(out, &ast.AssignStmt{
				Pos:     assignSite.Pos,
				EndPos:  assignSite.EndPos,
				Targets: []ast.Ident{target},
				Value:   &ast.IdentExpr{Pos: target.Pos, EndPos: target.EndPos, Name: subst[callee.Returns[i].Name.Value]},
			})
		}
	}
	return out
}

// localNames collects every let-bound name in a callee body in source
// order. The body has no nested definitions by the time this runs, so the
// collected names are exactly the locals the rewrite must rename.
func localNames(b *ast.Block) []string {
	var names []string
	seen := make(map[string]bool)
	ast.Inspect(b, func(n ast.Node) bool {
		if let, ok := n.(*ast.LetStmt); ok {
			for _, name := range let.Names {
				if !seen[name.Value] {
					seen[name.Value] = true
					names = append(names, name.Value)
				}
			}
		}
		return true
	})
	return names
}

// registerClonedCalls copies call resolutions and site counts onto the
// clone so sites inside it stay inlinable in this run. Cloning preserves
// traversal order, so the two collections line up index by index.
func (il *Inliner) registerClonedCalls(orig, clone *ast.Block) {
	origCalls := collectCalls(orig)
	cloneCalls := collectCalls(clone)
	for i, oc := range origCalls {
		if target := il.graph.Callee(oc); target != nil {
			il.graph.resolution[cloneCalls[i]] = target
			il.graph.siteCounts[target]++
		}
	}
}

func collectCalls(b *ast.Block) []*ast.CallExpr {
	var calls []*ast.CallExpr
	ast.Inspect(b, func(n ast.Node) bool {
		if call, ok := n.(*ast.CallExpr); ok {
			calls = append(calls, call)
		}
		return true
	})
	return calls
}

// renameLocals rewrites declarations, assignment targets and variable
// references per the substitution. Callee names are left alone: functions
// are never in the substitution and variables cannot be called.
func renameLocals(b *ast.Block, subst map[string]string) {
	ast.Inspect(b, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.LetStmt:
			for i := range n.Names {
				if r, ok := subst[n.Names[i].Value]; ok {
					n.Names[i].Value = r
				}
			}
		case *ast.AssignStmt:
			for i := range n.Targets {
				if r, ok := subst[n.Targets[i].Value]; ok {
					n.Targets[i].Value = r
				}
			}
		case *ast.IdentExpr:
			if r, ok := subst[n.Name]; ok {
				n.Name = r
			}
		}
		return true
	})
}
