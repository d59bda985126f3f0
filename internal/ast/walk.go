package ast

// Inspect traverses the tree rooted at node in depth-first order, calling f
// for each node first. If f returns false the children of that node are
// skipped. Traversal follows source order, so callers that collect names or
// call sites see them deterministically.
func Inspect(node Node, f func(Node) bool) {
	if node == nil {
		return
	}
	if !f(node) {
		return
	}
	visitChildren(node, f)
}

func visitChildren(node Node, f func(Node) bool) {
	switch n := node.(type) {
	case *Program:
		Inspect(n.Entry, f)

	case *Block:
		for _, s := range n.Statements {
			Inspect(s, f)
		}

	case *Function:
		Inspect(&n.Name, f)
		for _, p := range n.Params {
			Inspect(p, f)
		}
		for _, r := range n.Returns {
			Inspect(r, f)
		}
		Inspect(n.Body, f)

	case *FunctionParam:
		Inspect(&n.Name, f)

	case *ExprStmt:
		Inspect(n.Expr, f)

	case *LetStmt:
		for i := range n.Names {
			Inspect(&n.Names[i], f)
		}
		if n.Expr != nil {
			Inspect(n.Expr, f)
		}

	case *AssignStmt:
		for i := range n.Targets {
			Inspect(&n.Targets[i], f)
		}
		Inspect(n.Value, f)

	case *IfStmt:
		Inspect(n.Condition, f)
		Inspect(n.Body, f)

	case *SwitchStmt:
		Inspect(n.Value, f)
		for _, c := range n.Cases {
			Inspect(c, f)
		}
		if n.Default != nil {
			Inspect(n.Default, f)
		}

	case *SwitchCase:
		Inspect(n.Value, f)
		Inspect(n.Body, f)

	case *ForStmt:
		Inspect(n.Init, f)
		Inspect(n.Condition, f)
		Inspect(n.Post, f)
		Inspect(n.Body, f)

	case *CallExpr:
		Inspect(&n.Callee, f)
		for _, a := range n.Args {
			Inspect(a, f)
		}
	}
}

// CountNodes reports how many nodes the tree rooted at node contains.
func CountNodes(node Node) int {
	count := 0
	Inspect(node, func(Node) bool {
		count++
		return true
	})
	return count
}
