package opt

import "sumi/internal/ast"

// CallGraph records who calls whom. Function definitions are the nodes (two
// functions with the same name in sibling scopes are distinct nodes); the
// entry block acts as a virtual root. Built fresh by every pass that needs
// it and thrown away afterwards, never cached across passes.
type CallGraph struct {
	program *ast.Program

	// functions in definition order, the order DFS roots are taken in
	functions []*ast.Function

	// resolution maps every call in the program to the definition its
	// callee name resolves to, nil for builtins
	resolution map[*ast.CallExpr]*ast.Function

	// adjacency lists direct callees per caller in first-occurrence
	// source order; the nil key is the entry block
	adjacency map[*ast.Function][]*ast.Function

	siteCounts map[*ast.Function]int
	recursive  map[*ast.Function]bool
	defEnv     map[*ast.Function]funcScope
}

// funcScope is a stack of visibility frames for function names. Function
// symbols resolve through block and function boundaries alike, so a plain
// stack models the whole chain.
type funcScope []map[string]*ast.Function

func (s funcScope) resolve(name string) *ast.Function {
	for i := len(s) - 1; i >= 0; i-- {
		if fn, ok := s[i][name]; ok {
			return fn
		}
	}
	return nil
}

func (s funcScope) snapshot() funcScope {
	out := make(funcScope, len(s))
	copy(out, s)
	return out
}

// hoistedFunctions collects the function definitions of a single block.
// They are visible from the top of the block, before their definition.
func hoistedFunctions(b *ast.Block) map[string]*ast.Function {
	frame := make(map[string]*ast.Function)
	for _, s := range b.Statements {
		if fn, ok := s.(*ast.Function); ok {
			frame[fn.Name.Value] = fn
		}
	}
	return frame
}

// BuildCallGraph walks the program once, resolving every call through the
// lexical scope chain, and precomputes recursion flags.
func BuildCallGraph(program *ast.Program) *CallGraph {
	g := &CallGraph{
		program:    program,
		resolution: make(map[*ast.CallExpr]*ast.Function),
		adjacency:  make(map[*ast.Function][]*ast.Function),
		siteCounts: make(map[*ast.Function]int),
		recursive:  make(map[*ast.Function]bool),
		defEnv:     make(map[*ast.Function]funcScope),
	}
	g.walkBlock(program.Entry, nil, nil)
	g.markRecursion()
	return g
}

// Callee returns the definition a call resolves to, nil for builtin calls.
func (g *CallGraph) Callee(call *ast.CallExpr) *ast.Function {
	return g.resolution[call]
}

// Functions returns all function definitions in source order.
func (g *CallGraph) Functions() []*ast.Function {
	return g.functions
}

// Callees returns the direct callees of fn in first-occurrence source
// order. The nil caller stands for the entry block.
func (g *CallGraph) Callees(fn *ast.Function) []*ast.Function {
	return g.adjacency[fn]
}

// SiteCount returns how many call sites the whole program has for fn.
func (g *CallGraph) SiteCount(fn *ast.Function) int {
	return g.siteCounts[fn]
}

// IsRecursive reports whether fn sits on any call-graph cycle, including a
// self edge.
func (g *CallGraph) IsRecursive(fn *ast.Function) bool {
	return g.recursive[fn]
}

// DefinitionEnv returns the scope chain in force where fn is defined,
// including fn's own siblings. Calls inside fn's body resolve through it.
func (g *CallGraph) DefinitionEnv(fn *ast.Function) funcScope {
	return g.defEnv[fn]
}

// PostOrder returns every function with callees before their callers.
// Adjacency order is source order and roots are taken in definition order,
// so the result is deterministic.
func (g *CallGraph) PostOrder() []*ast.Function {
	visited := make(map[*ast.Function]bool)
	order := make([]*ast.Function, 0, len(g.functions))
	var visit func(fn *ast.Function)
	visit = func(fn *ast.Function) {
		if visited[fn] {
			return
		}
		visited[fn] = true
		for _, callee := range g.adjacency[fn] {
			visit(callee)
		}
		order = append(order, fn)
	}
	for _, fn := range g.functions {
		visit(fn)
	}
	return order
}

func (g *CallGraph) walkBlock(b *ast.Block, caller *ast.Function, scope funcScope) {
	scope = append(scope, hoistedFunctions(b))
	for _, s := range b.Statements {
		g.walkStmt(s, caller, scope)
	}
}

func (g *CallGraph) walkStmt(s ast.Stmt, caller *ast.Function, scope funcScope) {
	switch s := s.(type) {
	case *ast.Function:
		g.functions = append(g.functions, s)
		g.defEnv[s] = scope.snapshot()
		if _, ok := g.adjacency[s]; !ok {
			g.adjacency[s] = nil
		}
		g.walkBlock(s.Body, s, scope)
	case *ast.ExprStmt:
		g.walkExpr(s.Expr, caller, scope)
	case *ast.LetStmt:
		if s.Expr != nil {
			g.walkExpr(s.Expr, caller, scope)
		}
	case *ast.AssignStmt:
		g.walkExpr(s.Value, caller, scope)
	case *ast.IfStmt:
		g.walkExpr(s.Condition, caller, scope)
		g.walkBlock(s.Body, caller, scope)
	case *ast.SwitchStmt:
		g.walkExpr(s.Value, caller, scope)
		for _, c := range s.Cases {
			g.walkBlock(c.Body, caller, scope)
		}
		if s.Default != nil {
			g.walkBlock(s.Default, caller, scope)
		}
	case *ast.ForStmt:
		// Functions hoisted in the init block stay visible in the
		// condition, post and body.
		scope = append(scope, hoistedFunctions(s.Init))
		for _, init := range s.Init.Statements {
			g.walkStmt(init, caller, scope)
		}
		g.walkExpr(s.Condition, caller, scope)
		g.walkBlock(s.Post, caller, scope)
		g.walkBlock(s.Body, caller, scope)
	case *ast.Block:
		g.walkBlock(s, caller, scope)
	}
}

func (g *CallGraph) walkExpr(e ast.Expr, caller *ast.Function, scope funcScope) {
	call, ok := e.(*ast.CallExpr)
	if !ok {
		return
	}
	// Arguments evaluate right to left, but edge order follows source
	// order: recurse left to right, callee edge first.
	if target := scope.resolve(call.Callee.Value); target != nil {
		g.resolution[call] = target
		g.siteCounts[target]++
		g.addEdge(caller, target)
	}
	for _, a := range call.Args {
		g.walkExpr(a, caller, scope)
	}
}

func (g *CallGraph) addEdge(caller, callee *ast.Function) {
	for _, existing := range g.adjacency[caller] {
		if existing == callee {
			return
		}
	}
	g.adjacency[caller] = append(g.adjacency[caller], callee)
}

// markRecursion runs Tarjan's SCC over the function nodes. A function is
// recursive when its component has more than one member or it calls itself.
func (g *CallGraph) markRecursion() {
	index := make(map[*ast.Function]int)
	lowlink := make(map[*ast.Function]int)
	onStack := make(map[*ast.Function]bool)
	var stack []*ast.Function
	next := 0

	var strongconnect func(fn *ast.Function)
	strongconnect = func(fn *ast.Function) {
		index[fn] = next
		lowlink[fn] = next
		next++
		stack = append(stack, fn)
		onStack[fn] = true

		for _, callee := range g.adjacency[fn] {
			if _, seen := index[callee]; !seen {
				strongconnect(callee)
				if lowlink[callee] < lowlink[fn] {
					lowlink[fn] = lowlink[callee]
				}
			} else if onStack[callee] && index[callee] < lowlink[fn] {
				lowlink[fn] = index[callee]
			}
		}

		if lowlink[fn] == index[fn] {
			var component []*ast.Function
			for {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[top] = false
				component = append(component, top)
				if top == fn {
					break
				}
			}
			if len(component) > 1 {
				for _, member := range component {
					g.recursive[member] = true
				}
			}
		}
	}

	for _, fn := range g.functions {
		if _, seen := index[fn]; !seen {
			strongconnect(fn)
		}
	}

	// Self edges form a cycle of their own.
	for _, fn := range g.functions {
		for _, callee := range g.adjacency[fn] {
			if callee == fn {
				g.recursive[fn] = true
			}
		}
	}
}
